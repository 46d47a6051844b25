// Package anomaly flags drilling telemetry samples that drift away from
// their recent history or from a physics baseline.
package anomaly

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
)

const (
	DefaultWindowSize = 60
	DefaultZThreshold = 3.0
	DefaultMinSamples = 30

	// Below this the window is treated as flat and no z-score is produced.
	stdevFloor = 1e-9
)

// Observation describes a value that crossed the z-score threshold.
type Observation struct {
	Value  float64 `json:"value"`
	Mean   float64 `json:"mean"`
	Stdev  float64 `json:"stdev"`
	ZScore float64 `json:"z_score"`
}

// RollingZScore scores each incoming value against the mean and population
// standard deviation of the preceding window. The incoming value joins the
// window only after it has been scored, so a spike cannot mask itself.
type RollingZScore struct {
	windowSize int
	zThreshold float64
	minSamples int

	window []float64
}

func NewRollingZScore(windowSize int, zThreshold float64, minSamples int) (*RollingZScore, error) {
	if windowSize <= 1 {
		return nil, fmt.Errorf("window size must be > 1, got %d", windowSize)
	}
	if minSamples < 1 {
		return nil, fmt.Errorf("min samples must be >= 1, got %d", minSamples)
	}
	if minSamples > windowSize {
		return nil, fmt.Errorf("min samples %d cannot exceed window size %d", minSamples, windowSize)
	}
	return &RollingZScore{
		windowSize: windowSize,
		zThreshold: zThreshold,
		minSamples: minSamples,
		window:     make([]float64, 0, windowSize),
	}, nil
}

// Update scores value against the current window, then admits it. It returns
// a non-nil Observation when |z| meets the threshold, and nil while the
// window is still warming up or the value is unremarkable.
func (r *RollingZScore) Update(value float64) *Observation {
	if len(r.window) < r.minSamples {
		r.push(value)
		return nil
	}

	mean, _ := stats.Mean(r.window)
	stdev, _ := stats.StandardDeviationPopulation(r.window)
	if stdev <= stdevFloor {
		r.push(value)
		return nil
	}

	z := (value - mean) / stdev
	r.push(value)

	if math.Abs(z) < r.zThreshold {
		return nil
	}
	return &Observation{
		Value:  value,
		Mean:   mean,
		Stdev:  stdev,
		ZScore: z,
	}
}

func (r *RollingZScore) push(value float64) {
	if len(r.window) == r.windowSize {
		copy(r.window, r.window[1:])
		r.window = r.window[:r.windowSize-1]
	}
	r.window = append(r.window, value)
}
