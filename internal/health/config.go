// Package health implements the streaming dataset health analyzer: per-column
// statistics, missingness, duplicate estimation, unit sanity checks, and the
// fit score used to decide whether a drilling dataset is usable for replay.
package health

// Defaults for the analyzer configuration. Chunk and sample sizes bound peak
// memory regardless of dataset size.
const (
	DefaultChunkSize           = 200_000
	DefaultDuplicateSampleRows = 200_000
	DefaultLargeFileBytes      = 500 * 1024 * 1024
)

// Config carries every constant the analyzer consumes: chunk and sample
// sizing, the candidate alias lists for the standard logical fields, the unit
// sanity thresholds, and the fit scoring rubric. Thresholds are fixed inputs,
// never tuned by the analyzer itself.
type Config struct {
	// ChunkSize is the maximum number of rows requested per chunk.
	ChunkSize int

	// DuplicateSampleRows caps the duplicate-detection prefix sample.
	DuplicateSampleRows int

	// LargeFileBytes is an advisory threshold; files above it are still
	// processed in chunks, with a log line.
	LargeFileBytes int64

	// Alias candidate lists, in priority order, for resolving the standard
	// columns against an unknown header.
	DepthAliases     []string
	ROPAliases       []string
	VibrationAliases []string
	TimeAliases      []string

	// ROPMaxCeiling is the highest plausible rate of penetration in m/h.
	ROPMaxCeiling float64

	// ROPMeanFloor is the lowest plausible mean ROP; below it the column is
	// probably recorded in the wrong unit.
	ROPMeanFloor float64

	Score ScoreConfig
}

// ScoreRule pairs a non-null-rate threshold with the points it contributes.
type ScoreRule struct {
	MinRate float64
	Points  int
}

// ScoreConfig is the fit scoring rubric. Rules apply in a fixed order, each at
// most once; strong rules shadow their weak counterparts.
type ScoreConfig struct {
	DepthStrong     ScoreRule
	DepthWeak       ScoreRule
	ROPStrong       ScoreRule
	ROPWeak         ScoreRule
	VibrationStrong ScoreRule
	VibrationWeak   ScoreRule
	Time            ScoreRule

	// EmptyRowPenalty fires when the fully-empty-row rate exceeds MinRate.
	EmptyRowPenalty ScoreRule

	// NegativeDepthPenalty applies once if any negative depth was observed.
	NegativeDepthPenalty int
}

// DefaultConfig returns the analyzer configuration used in production.
func DefaultConfig() Config {
	return Config{
		ChunkSize:           DefaultChunkSize,
		DuplicateSampleRows: DefaultDuplicateSampleRows,
		LargeFileBytes:      DefaultLargeFileBytes,

		DepthAliases: []string{
			"BIT_DEPTH", "BIT_DEPTH_M", "BIT MEASURED DEPTH", "DEPTH", "MD", "HOLE DEPTH",
		},
		ROPAliases: []string{
			"ROP", "ROP_MH", "ROP_M/H", "RATE OF PENETRATION", "TIME AVERAGED ROP",
		},
		VibrationAliases: []string{
			"VIBRATION_0_5", "VIBRATION", "VIBRATION_RAW", "LATERAL VIBRATION", "VIBRATION_PROXY",
		},
		TimeAliases: []string{
			"TIME", "TIMESTAMP", "DATETIME", "DATE TIME",
		},

		ROPMaxCeiling: 300,
		ROPMeanFloor:  0.01,

		Score: ScoreConfig{
			DepthStrong:          ScoreRule{MinRate: 0.9, Points: 30},
			DepthWeak:            ScoreRule{MinRate: 0.7, Points: 15},
			ROPStrong:            ScoreRule{MinRate: 0.7, Points: 20},
			ROPWeak:              ScoreRule{MinRate: 0.4, Points: 10},
			VibrationStrong:      ScoreRule{MinRate: 0.7, Points: 20},
			VibrationWeak:        ScoreRule{MinRate: 0.4, Points: 10},
			Time:                 ScoreRule{MinRate: 0.5, Points: 10},
			EmptyRowPenalty:      ScoreRule{MinRate: 0.1, Points: -10},
			NegativeDepthPenalty: -10,
		},
	}
}
