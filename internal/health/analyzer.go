package health

import (
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ares-data/wellbore.report/internal/monitoring"
)

// Source is the chunked tabular input the analyzer consumes: a fixed header
// followed by rows readable in bounded-size chunks. Each row is an ordered
// cell slice aligned to the header; missing cells are empty strings. ReadChunk
// returns io.EOF once the rows are exhausted.
type Source interface {
	Header() []string
	ReadChunk(max int) ([][]string, error)
}

// Analyzer drives one dataset end-to-end and produces one
// DatasetHealthRecord. Analyzers are cheap and hold no state between
// Analyze calls.
type Analyzer struct {
	cfg Config
}

// NewAnalyzer creates an analyzer with the given configuration.
func NewAnalyzer(cfg Config) *Analyzer {
	return &Analyzer{cfg: cfg}
}

// heartbeatChunks controls how often the scan logs a progress line.
const heartbeatChunks = 10

// cell classification states. A present value that does not parse as a number
// is excluded from the numeric stream without being flagged missing.
const (
	cellMissing = iota
	cellNumeric
	cellText
)

func classifyCell(raw string) (float64, int) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, cellMissing
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, cellText
	}
	if math.IsNaN(v) {
		return 0, cellMissing
	}
	return v, cellNumeric
}

// Analyze streams the dataset in chunks and finalizes a health record. The
// path is recorded verbatim; sizeBytes is advisory and only drives the
// large-file log line. A mid-stream read failure aborts this dataset only;
// the caller is expected to skip and continue with the rest of the batch.
func (a *Analyzer) Analyze(path string, sizeBytes int64, src Source) (*DatasetHealthRecord, error) {
	cfg := a.cfg

	if sizeBytes > cfg.LargeFileBytes {
		monitoring.Logf("Large file detected (%d bytes). Processing in chunks.", sizeBytes)
	}

	header := src.Header()
	columns := cfg.DetectStandardColumns(header)

	vibRange, vibRangeOK := ExpectVibrationRange(columns.Vibration)

	depthIdx := columnIndex(header, columns.Depth)
	vibIdx := columnIndex(header, columns.Vibration)

	missing := make([]int64, len(header))
	stats := make([]RunningStat, len(header))
	numeric := make([][]float64, len(header))

	sampler := NewDuplicateSampler(cfg.DuplicateSampleRows)

	var (
		rowCount       int64
		fullyEmptyRows int64
		depthNegative  int64
		vibOutOfRange  int64
		chunkIndex     int
	)

	for {
		chunk, err := src.ReadChunk(cfg.ChunkSize)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read chunk %d: %w", chunkIndex, err)
		}

		rowCount += int64(len(chunk))

		for i := range numeric {
			numeric[i] = numeric[i][:0]
		}

		for _, row := range chunk {
			empty := true
			for i := range header {
				var raw string
				if i < len(row) {
					raw = row[i]
				}

				v, state := classifyCell(raw)
				switch state {
				case cellMissing:
					missing[i]++
				case cellNumeric:
					empty = false
					numeric[i] = append(numeric[i], v)

					if i == depthIdx && v < 0 {
						depthNegative++
					}
					if i == vibIdx && vibRangeOK && (v < vibRange.Low || v > vibRange.High) {
						vibOutOfRange++
					}
				case cellText:
					empty = false
				}
			}
			if empty {
				fullyEmptyRows++
			}
		}

		for i := range stats {
			stats[i].Update(numeric[i])
		}

		sampler.Add(chunk)

		chunkIndex++
		if chunkIndex%heartbeatChunks == 0 {
			monitoring.Logf("Processed %d rows from %s", rowCount, filepath.Base(path))
		}
	}

	return a.finalize(path, sizeBytes, header, columns, finalizeState{
		rowCount:       rowCount,
		fullyEmptyRows: fullyEmptyRows,
		depthNegative:  depthNegative,
		vibOutOfRange:  vibOutOfRange,
		vibRange:       vibRange,
		vibRangeOK:     vibRangeOK,
		missing:        missing,
		stats:          stats,
		sampler:        sampler,
	}), nil
}

type finalizeState struct {
	rowCount       int64
	fullyEmptyRows int64
	depthNegative  int64
	vibOutOfRange  int64
	vibRange       Range
	vibRangeOK     bool
	missing        []int64
	stats          []RunningStat
	sampler        *DuplicateSampler
}

func (a *Analyzer) finalize(path string, sizeBytes int64, header []string, columns StandardColumns, st finalizeState) *DatasetHealthRecord {
	missingness := make(map[string]ColumnMissingness, len(header))
	for i, col := range header {
		m := ColumnMissingness{
			Missing: st.missing[i],
			NonNull: st.rowCount - st.missing[i],
		}
		if st.rowCount > 0 {
			m.MissingRate = float64(m.Missing) / float64(st.rowCount)
			m.NonNullRate = float64(m.NonNull) / float64(st.rowCount)
		}
		missingness[col] = m
	}

	numericStats := make(map[string]NumericSummary)
	for i, col := range header {
		s := st.stats[i]
		if s.Count == 0 {
			continue
		}
		numericStats[col] = NumericSummary{
			Count: s.Count,
			Min:   s.Min,
			Max:   s.Max,
			Mean:  s.Mean,
			Std:   s.Std(),
		}
	}

	fullyEmptyPct := 0.0
	if st.rowCount > 0 {
		fullyEmptyPct = float64(st.fullyEmptyRows) / float64(st.rowCount)
	}

	record := &DatasetHealthRecord{
		Path:             path,
		SizeBytes:        sizeBytes,
		Rows:             st.rowCount,
		Cols:             len(header),
		Columns:          append([]string(nil), header...),
		Missingness:      missingness,
		NumericStats:     numericStats,
		FullyEmptyRows:   st.fullyEmptyRows,
		FullyEmptyRowPct: fullyEmptyPct,
		DuplicateSample:  st.sampler.Result(),
		StandardColumns:  columns,
	}

	nonNullRate := func(c ResolvedColumn) float64 {
		if !c.Resolved {
			return 0.0
		}
		return missingness[c.Name].NonNullRate
	}

	summaryOf := func(c ResolvedColumn) *NumericSummary {
		if !c.Resolved {
			return nil
		}
		if s, ok := numericStats[c.Name]; ok {
			return &s
		}
		return nil
	}

	if columns.Depth.Resolved {
		d := &DepthSummary{Column: columns.Depth.Name, NegativeCount: st.depthNegative}
		if s := summaryOf(columns.Depth); s != nil {
			d.Min = floatPtr(s.Min)
			d.Max = floatPtr(s.Max)
		}
		record.Depth = d
	}

	if columns.ROP.Resolved {
		r := &ROPSummary{Column: columns.ROP.Name}
		if s := summaryOf(columns.ROP); s != nil {
			r.Min = floatPtr(s.Min)
			r.Max = floatPtr(s.Max)
			r.Mean = floatPtr(s.Mean)
			r.Std = floatPtr(s.Std)
		}
		record.ROP = r
	}

	if columns.Vibration.Resolved {
		v := &VibrationSummary{Column: columns.Vibration.Name, OutOfRangeCount: st.vibOutOfRange}
		if s := summaryOf(columns.Vibration); s != nil {
			v.Min = floatPtr(s.Min)
			v.Max = floatPtr(s.Max)
			v.Mean = floatPtr(s.Mean)
			v.Std = floatPtr(s.Std)
		}
		if st.vibRangeOK {
			rng := st.vibRange
			v.ExpectedRange = &rng
		}
		record.Vibration = v
	}

	if columns.Time.Resolved {
		record.Time = &TimeSummary{
			Column:      columns.Time.Name,
			NonNullRate: nonNullRate(columns.Time),
		}
	}

	in := scoreInputs{
		Columns:             columns,
		DepthRate:           nonNullRate(columns.Depth),
		ROPRate:             nonNullRate(columns.ROP),
		VibrationRate:       nonNullRate(columns.Vibration),
		TimeRate:            nonNullRate(columns.Time),
		FullyEmptyRate:      fullyEmptyPct,
		NegativeDepth:       st.depthNegative,
		ROPStats:            summaryOf(columns.ROP),
		VibrationOutOfRange: st.vibOutOfRange,
	}
	if st.vibRangeOK {
		rng := st.vibRange
		in.VibrationRange = &rng
	}

	record.UnitFlags = a.cfg.unitFlags(in)
	record.FitScore, record.FitScoreNotes = a.cfg.Score.fitScore(in)

	return record
}

// columnIndex maps a resolved column back to its header position, -1 when
// unresolved. Header collisions resolve to the first position; the matcher's
// last-wins normalization quirk only affects which original name is reported.
func columnIndex(header []string, c ResolvedColumn) int {
	if !c.Resolved {
		return -1
	}
	for i, col := range header {
		if col == c.Name {
			return i
		}
	}
	return -1
}

func floatPtr(v float64) *float64 { return &v }
