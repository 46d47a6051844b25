// Package source provides chunked tabular readers over well log datasets.
// Every reader exposes a fixed header and row iteration in bounded-size
// chunks, so callers never hold a whole dataset in memory.
package source

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ares-data/wellbore.report/internal/fsutil"
)

// Source is a readable, chunked tabular dataset. Rows are ordered cell
// slices aligned to the header; missing cells are empty strings. ReadChunk
// returns io.EOF once the rows are exhausted.
type Source interface {
	Header() []string
	ReadChunk(max int) ([][]string, error)
	Close() error
}

// Open opens a dataset by file extension: .csv via the streaming CSV reader,
// .xlsx via the workbook reader (first sheet).
func Open(fsys fsutil.FileSystem, path string) (Source, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return OpenCSV(fsys, path)
	case ".xlsx":
		return OpenXLSX(fsys, path, "")
	default:
		return nil, fmt.Errorf("unsupported dataset format: %s", path)
	}
}
