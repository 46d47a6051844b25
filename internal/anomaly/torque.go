package anomaly

import (
	"fmt"
	"time"

	"github.com/ares-data/wellbore.report/internal/physics"
)

// ModelParams records the baseline and detector configuration that produced
// an event, so downstream consumers can reproduce the residual.
type ModelParams struct {
	Mu         float64 `json:"mu"`
	RadiusM    float64 `json:"r_m"`
	FnPerM     float64 `json:"fn_per_m"`
	WindowSize int     `json:"window_size"`
	MinSamples int     `json:"min_samples"`
}

// Event is an anomalous torque observation with its physics context.
type Event struct {
	EventType  string      `json:"event_type"`
	Timestamp  string      `json:"timestamp"`
	DepthM     float64     `json:"depth_m"`
	TorqueNM   float64     `json:"torque_nm"`
	BaselineNM float64     `json:"baseline_nm"`
	ResidualNM float64     `json:"residual_nm"`
	ZScore     float64     `json:"z_score"`
	ZThreshold float64     `json:"z_threshold"`
	Model      ModelParams `json:"model"`
}

// TorqueDetectorConfig configures a TorqueDetector. The zero value is not
// usable; start from DefaultTorqueDetectorConfig.
type TorqueDetectorConfig struct {
	Mu         float64
	RadiusM    float64
	FnPerM     float64
	ZThreshold float64
	WindowSize int
	MinSamples int
}

func DefaultTorqueDetectorConfig() TorqueDetectorConfig {
	return TorqueDetectorConfig{
		Mu:         0.35,
		RadiusM:    0.1,
		FnPerM:     3500.0,
		ZThreshold: DefaultZThreshold,
		WindowSize: DefaultWindowSize,
		MinSamples: DefaultMinSamples,
	}
}

// TorqueDetector compares observed torque against the physics baseline for
// the current depth and runs the residual through a rolling z-score.
type TorqueDetector struct {
	cfg      TorqueDetectorConfig
	detector *RollingZScore
	now      func() time.Time
}

func NewTorqueDetector(cfg TorqueDetectorConfig) (*TorqueDetector, error) {
	detector, err := NewRollingZScore(cfg.WindowSize, cfg.ZThreshold, cfg.MinSamples)
	if err != nil {
		return nil, fmt.Errorf("failed to build residual detector: %w", err)
	}
	return &TorqueDetector{cfg: cfg, detector: detector, now: time.Now}, nil
}

// SetNow overrides the event timestamp source for tests.
func (d *TorqueDetector) SetNow(now func() time.Time) {
	d.now = now
}

// Update scores one depth/torque pair. It returns a non-nil Event when the
// torque residual is anomalous.
func (d *TorqueDetector) Update(depthM, torqueNM float64) (*Event, error) {
	baseline, err := physics.TorqueBaseline(depthM, d.cfg.Mu, d.cfg.RadiusM, d.cfg.FnPerM)
	if err != nil {
		return nil, fmt.Errorf("failed to compute torque baseline: %w", err)
	}

	residual := torqueNM - baseline
	obs := d.detector.Update(residual)
	if obs == nil {
		return nil, nil
	}

	return &Event{
		EventType:  "torque_anomaly",
		Timestamp:  d.now().UTC().Format(time.RFC3339Nano),
		DepthM:     depthM,
		TorqueNM:   torqueNM,
		BaselineNM: baseline,
		ResidualNM: residual,
		ZScore:     obs.ZScore,
		ZThreshold: d.cfg.ZThreshold,
		Model: ModelParams{
			Mu:         d.cfg.Mu,
			RadiusM:    d.cfg.RadiusM,
			FnPerM:     d.cfg.FnPerM,
			WindowSize: d.cfg.WindowSize,
			MinSamples: d.cfg.MinSamples,
		},
	}, nil
}
