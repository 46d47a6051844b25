package health

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
)

func TestRunningStatSingleBatch(t *testing.T) {
	t.Parallel()

	var s RunningStat
	s.Update([]float64{1, 2, 3, 4})

	assert.Equal(t, int64(4), s.Count)
	assert.InDelta(t, 2.5, s.Mean, 1e-12)
	assert.InDelta(t, 1.0, s.Min, 1e-12)
	assert.InDelta(t, 4.0, s.Max, 1e-12)

	// Population std of {1,2,3,4} is sqrt(1.25).
	assert.InDelta(t, math.Sqrt(1.25), s.Std(), 1e-12)
}

func TestRunningStatEmptyBatchNoOp(t *testing.T) {
	t.Parallel()

	var s RunningStat
	s.Update(nil)
	assert.Equal(t, int64(0), s.Count)
	assert.Equal(t, 0.0, s.Std())

	s.Update([]float64{7})
	s.Update(nil)
	assert.Equal(t, int64(1), s.Count)
	assert.InDelta(t, 7.0, s.Min, 1e-12)
	assert.InDelta(t, 7.0, s.Max, 1e-12)
	assert.Equal(t, 0.0, s.Std(), "count <= 1 must report zero std")
}

// TestRunningStatMergeMatchesSinglePass is the core correctness property:
// folding a sequence in chunks of any partition must reproduce the
// single-pass mean and std within floating-point tolerance.
func TestRunningStatMergeMatchesSinglePass(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(7))
	values := make([]float64, 10_000)
	for i := range values {
		// Large magnitude plus small spread to punish naive sum-of-squares.
		values[i] = 1e9 + rng.NormFloat64()*3.5
	}

	var whole RunningStat
	whole.Update(values)

	partitions := [][]int{
		{10_000},
		{1, 9_999},
		{2, 3, 1, 9_994},
		{5_000, 5_000},
		{1_234, 4_321, 2_345, 2_100},
	}

	for _, partition := range partitions {
		var chunked RunningStat
		off := 0
		for _, n := range partition {
			chunked.Update(values[off : off+n])
			off += n
		}
		require.Equal(t, len(values), off)

		assert.Equal(t, whole.Count, chunked.Count)
		assert.InEpsilon(t, whole.Mean, chunked.Mean, 1e-9, "partition %v", partition)
		assert.InEpsilon(t, whole.Std(), chunked.Std(), 1e-9, "partition %v", partition)
		assert.Equal(t, whole.Min, chunked.Min)
		assert.Equal(t, whole.Max, chunked.Max)
	}

	// Cross-check the single pass against gonum directly.
	mean, variance := stat.PopMeanVariance(values, nil)
	assert.InEpsilon(t, mean, whole.Mean, 1e-12)
	assert.InEpsilon(t, math.Sqrt(variance), whole.Std(), 1e-9)
}

func TestRunningStatMergeAccumulators(t *testing.T) {
	t.Parallel()

	var a, b, whole RunningStat
	left := []float64{100, -5, 200}
	right := []float64{150, 300, 50}

	a.Update(left)
	b.Update(right)
	whole.Update(append(append([]float64{}, left...), right...))

	a.Merge(b)
	assert.Equal(t, whole.Count, a.Count)
	assert.InDelta(t, whole.Mean, a.Mean, 1e-9)
	assert.InDelta(t, whole.M2, a.M2, 1e-6)
	assert.Equal(t, -5.0, a.Min)
	assert.Equal(t, 300.0, a.Max)

	// Merging an empty accumulator changes nothing.
	before := a
	a.Merge(RunningStat{})
	assert.Equal(t, before, a)
}

func TestRunningStatMergeIntoEmpty(t *testing.T) {
	t.Parallel()

	var a, b RunningStat
	b.Update([]float64{3, 9})

	a.Merge(b)
	assert.Equal(t, b, a, "merging into an empty accumulator adopts the batch outright")
}
