// Package testutil provides shared test utilities and fixtures.
//
// This package centralises common test helpers to reduce duplication across
// test files: in-memory CSV fixtures and a deterministic chunked row source.
package testutil

import (
	"bytes"
	"encoding/csv"
	"io"
	"testing"

	"github.com/ares-data/wellbore.report/internal/fsutil"
)

// WriteCSV writes a header and rows as a CSV file into the given filesystem.
func WriteCSV(t *testing.T, fsys fsutil.FileSystem, path string, header []string, rows [][]string) {
	t.Helper()

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		t.Fatalf("failed to write csv header: %v", err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			t.Fatalf("failed to write csv row: %v", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		t.Fatalf("failed to flush csv: %v", err)
	}

	if err := fsys.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("failed to write csv fixture %s: %v", path, err)
	}
}

// SliceSource is an in-memory chunked row source. Its method set matches the
// analyzer's Source interface so tests can drive a scan without touching
// files. ChunkSizes, when set, overrides the caller's chunk size so tests can
// pin exact chunk partitions.
type SliceSource struct {
	header []string
	rows   [][]string
	off    int

	// ChunkSizes forces the size of successive chunks when non-empty.
	ChunkSizes []int
	chunkIdx   int
}

// NewSliceSource creates a SliceSource over the given header and rows.
func NewSliceSource(header []string, rows [][]string) *SliceSource {
	return &SliceSource{header: header, rows: rows}
}

// Header returns the column names.
func (s *SliceSource) Header() []string { return s.header }

// ReadChunk returns the next chunk of at most max rows, or io.EOF when the
// rows are exhausted.
func (s *SliceSource) ReadChunk(max int) ([][]string, error) {
	if s.off >= len(s.rows) {
		return nil, io.EOF
	}

	n := max
	if s.chunkIdx < len(s.ChunkSizes) {
		n = s.ChunkSizes[s.chunkIdx]
		s.chunkIdx++
	}
	if remaining := len(s.rows) - s.off; n > remaining {
		n = remaining
	}

	chunk := s.rows[s.off : s.off+n]
	s.off += n
	return chunk, nil
}

// Close implements the source Close contract; it never fails.
func (s *SliceSource) Close() error { return nil }
