package health

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// RunningStat accumulates count, mean, M2 (sum of squared deviations) and
// min/max over a numeric stream observed in bounded-size batches. Batches are
// folded in with the parallel-variance combination (Chan et al.), which keeps
// the merge associative and avoids catastrophic cancellation on
// large-magnitude columns; a naive sum-of-squares rederivation is not an
// acceptable substitute. Min and Max are undefined until Count > 0.
type RunningStat struct {
	Count int64
	Mean  float64
	M2    float64
	Min   float64
	Max   float64
}

// Update folds a batch of numeric values into the accumulator. Callers drop
// non-numeric and missing entries before calling; an empty batch is a no-op.
func (s *RunningStat) Update(values []float64) {
	if len(values) == 0 {
		return
	}

	batchMean, batchVar := stat.PopMeanVariance(values, nil)
	batchCount := int64(len(values))
	batchM2 := batchVar * float64(batchCount)

	s.merge(batchCount, batchMean, batchM2, floats.Min(values), floats.Max(values))
}

// Merge combines another accumulator into this one. Merging in any chunk
// partition of the same stream yields the same Mean and M2 as a single pass,
// up to floating-point rounding.
func (s *RunningStat) Merge(other RunningStat) {
	if other.Count == 0 {
		return
	}
	s.merge(other.Count, other.Mean, other.M2, other.Min, other.Max)
}

func (s *RunningStat) merge(n2 int64, mean2, m2, min2, max2 float64) {
	if s.Count == 0 {
		s.Count = n2
		s.Mean = mean2
		s.M2 = m2
		s.Min = min2
		s.Max = max2
		return
	}

	delta := mean2 - s.Mean
	n1 := float64(s.Count)
	total := s.Count + n2
	s.Mean += delta * float64(n2) / float64(total)
	s.M2 += m2 + delta*delta*n1*float64(n2)/float64(total)
	s.Count = total

	if min2 < s.Min {
		s.Min = min2
	}
	if max2 > s.Max {
		s.Max = max2
	}
}

// Variance returns the population variance, 0.0 when Count <= 1.
func (s *RunningStat) Variance() float64 {
	if s.Count <= 1 {
		return 0.0
	}
	return s.M2 / float64(s.Count)
}

// Std returns the population standard deviation, 0.0 when Count <= 1.
func (s *RunningStat) Std() float64 {
	return math.Sqrt(s.Variance())
}
