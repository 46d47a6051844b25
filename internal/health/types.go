package health

// Report is the final structured output: one health record per analyzed
// dataset. Serialization of this structure is the caller's concern.
type Report struct {
	GeneratedAt string                 `json:"generated_at"`
	Datasets    []*DatasetHealthRecord `json:"datasets"`
}

// DatasetHealthRecord is the finalized, immutable health summary for one
// dataset. It is created once at the end of a scan and never mutated.
type DatasetHealthRecord struct {
	Path      string   `json:"path"`
	SizeBytes int64    `json:"size_bytes"`
	Rows      int64    `json:"rows"`
	Cols      int      `json:"cols"`
	Columns   []string `json:"columns"`

	Missingness  map[string]ColumnMissingness `json:"missingness"`
	NumericStats map[string]NumericSummary    `json:"numeric_stats"`

	FullyEmptyRows   int64   `json:"fully_empty_rows"`
	FullyEmptyRowPct float64 `json:"fully_empty_row_pct"`

	DuplicateSample DuplicateSample `json:"duplicate_sample"`
	StandardColumns StandardColumns `json:"standard_columns"`

	// Domain sub-records are present only when their column resolved.
	Depth     *DepthSummary     `json:"depth,omitempty"`
	ROP       *ROPSummary       `json:"rop,omitempty"`
	Vibration *VibrationSummary `json:"vibration,omitempty"`
	Time      *TimeSummary      `json:"time,omitempty"`

	UnitFlags     []string            `json:"unit_flags"`
	FitScore      int                 `json:"fit_score"`
	FitScoreNotes []ScoreContribution `json:"fit_score_notes"`
}

// ColumnMissingness reports how many values a column is missing.
// MissingRate + NonNullRate is 1.0 whenever the dataset has rows; both are
// 0.0 for an empty dataset.
type ColumnMissingness struct {
	Missing     int64   `json:"missing"`
	MissingRate float64 `json:"missing_rate"`
	NonNull     int64   `json:"non_null"`
	NonNullRate float64 `json:"non_null_rate"`
}

// NumericSummary summarizes the numeric observations of one column. Columns
// with zero numeric observations are omitted from the record entirely.
type NumericSummary struct {
	Count int64   `json:"count"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Mean  float64 `json:"mean"`
	Std   float64 `json:"std"`
}

// DepthSummary carries the depth sanity aggregates. Min/Max are nil when the
// column had no numeric observations.
type DepthSummary struct {
	Column        string   `json:"column"`
	Min           *float64 `json:"min"`
	Max           *float64 `json:"max"`
	NegativeCount int64    `json:"negative_count"`
}

// ROPSummary carries the rate-of-penetration aggregates.
type ROPSummary struct {
	Column string   `json:"column"`
	Min    *float64 `json:"min"`
	Max    *float64 `json:"max"`
	Mean   *float64 `json:"mean"`
	Std    *float64 `json:"std"`
}

// VibrationSummary carries the vibration aggregates and the range check
// outcome. ExpectedRange is nil when no range was derived from the column
// name.
type VibrationSummary struct {
	Column          string   `json:"column"`
	Min             *float64 `json:"min"`
	Max             *float64 `json:"max"`
	Mean            *float64 `json:"mean"`
	Std             *float64 `json:"std"`
	ExpectedRange   *Range   `json:"expected_range"`
	OutOfRangeCount int64    `json:"out_of_range_count"`
}

// TimeSummary carries the time column coverage.
type TimeSummary struct {
	Column      string  `json:"column"`
	NonNullRate float64 `json:"non_null_rate"`
}

// ScoreContribution records one fit scoring rule that fired, with its
// human-readable justification and point delta, for auditability.
type ScoreContribution struct {
	Reason string `json:"reason"`
	Points int    `json:"points"`
}
