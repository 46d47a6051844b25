package health

import "fmt"

// scoreInputs gathers the finalized aggregates the flag and scoring rules
// consume.
type scoreInputs struct {
	Columns             StandardColumns
	DepthRate           float64
	ROPRate             float64
	VibrationRate       float64
	TimeRate            float64
	FullyEmptyRate      float64
	NegativeDepth       int64
	ROPStats            *NumericSummary
	VibrationRange      *Range
	VibrationOutOfRange int64
}

// unitFlags evaluates the independent unit-sanity checks. All flags may fire
// together; each is a warning that a column's observed values suggest a wrong
// physical unit or scale.
func (c Config) unitFlags(in scoreInputs) []string {
	flags := []string{}

	if in.NegativeDepth > 0 {
		flags = append(flags, "Negative depth values detected")
	}
	if in.ROPStats != nil {
		if in.ROPStats.Max > c.ROPMaxCeiling {
			flags = append(flags, fmt.Sprintf("ROP max exceeds %g m/h (unit check)", c.ROPMaxCeiling))
		}
		if in.ROPStats.Mean < c.ROPMeanFloor {
			flags = append(flags, "ROP mean is extremely low (possible unit mismatch)")
		}
	}
	if in.VibrationOutOfRange > 0 && in.VibrationRange != nil {
		flags = append(flags, fmt.Sprintf("Vibration values outside expected %g-%g range",
			in.VibrationRange.Low, in.VibrationRange.High))
	}

	return flags
}

// fitScore applies the scoring rubric in its fixed order, each rule at most
// once, and clamps the result to [0, 100]. This is a heuristic rubric for
// replay readiness, not a statistically derived model.
func (c ScoreConfig) fitScore(in scoreInputs) (int, []ScoreContribution) {
	score := 0
	notes := []ScoreContribution{}

	apply := func(reason string, points int) {
		score += points
		notes = append(notes, ScoreContribution{Reason: reason, Points: points})
	}

	coverage := func(field string, rule ScoreRule) string {
		return fmt.Sprintf("%s coverage >%d%%", field, int(rule.MinRate*100))
	}

	switch {
	case in.Columns.Depth.Resolved && in.DepthRate > c.DepthStrong.MinRate:
		apply(coverage("Depth", c.DepthStrong), c.DepthStrong.Points)
	case in.Columns.Depth.Resolved && in.DepthRate > c.DepthWeak.MinRate:
		apply(coverage("Depth", c.DepthWeak), c.DepthWeak.Points)
	}

	switch {
	case in.Columns.ROP.Resolved && in.ROPRate > c.ROPStrong.MinRate:
		apply(coverage("ROP", c.ROPStrong), c.ROPStrong.Points)
	case in.Columns.ROP.Resolved && in.ROPRate > c.ROPWeak.MinRate:
		apply(coverage("ROP", c.ROPWeak), c.ROPWeak.Points)
	}

	switch {
	case in.Columns.Vibration.Resolved && in.VibrationRate > c.VibrationStrong.MinRate:
		apply(coverage("Vibration", c.VibrationStrong), c.VibrationStrong.Points)
	case in.Columns.Vibration.Resolved && in.VibrationRate > c.VibrationWeak.MinRate:
		apply(coverage("Vibration", c.VibrationWeak), c.VibrationWeak.Points)
	}

	if in.Columns.Time.Resolved && in.TimeRate > c.Time.MinRate {
		apply(coverage("TIME", c.Time), c.Time.Points)
	}

	if in.FullyEmptyRate > c.EmptyRowPenalty.MinRate {
		apply(fmt.Sprintf("Fully empty rows >%d%%", int(c.EmptyRowPenalty.MinRate*100)), c.EmptyRowPenalty.Points)
	}

	if in.NegativeDepth > 0 {
		apply("Negative depth values", c.NegativeDepthPenalty)
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return score, notes
}
