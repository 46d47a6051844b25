package source

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/ares-data/wellbore.report/internal/fsutil"
)

// XLSXSource streams one sheet of a workbook as a tabular dataset. The first
// row is the header. Cell values arrive as excelize renders them; the
// analyzer's numeric parsing handles the rest.
type XLSXSource struct {
	file   *excelize.File
	rows   *excelize.Rows
	header []string
	done   bool
}

// OpenXLSX opens a workbook sheet as a dataset. An empty sheet name selects
// the first sheet.
func OpenXLSX(fsys fsutil.FileSystem, path, sheet string) (*XLSXSource, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer f.Close()

	book, err := excelize.OpenReader(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse workbook %s: %w", path, err)
	}

	if sheet == "" {
		sheets := book.GetSheetList()
		if len(sheets) == 0 {
			book.Close()
			return nil, fmt.Errorf("workbook %s has no sheets", path)
		}
		sheet = sheets[0]
	}

	rows, err := book.Rows(sheet)
	if err != nil {
		book.Close()
		return nil, fmt.Errorf("failed to iterate sheet %q of %s: %w", sheet, path, err)
	}

	if !rows.Next() {
		rows.Close()
		book.Close()
		return nil, fmt.Errorf("failed to read header of %s: sheet %q is empty", path, sheet)
	}
	header, err := rows.Columns()
	if err != nil {
		rows.Close()
		book.Close()
		return nil, fmt.Errorf("failed to read header of %s: %w", path, err)
	}

	return &XLSXSource{file: book, rows: rows, header: header}, nil
}

// Header returns the first row of the sheet.
func (s *XLSXSource) Header() []string { return s.header }

// ReadChunk reads up to max rows, io.EOF once the sheet is exhausted.
func (s *XLSXSource) ReadChunk(max int) ([][]string, error) {
	if s.done {
		return nil, io.EOF
	}
	if max <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", max)
	}

	chunk := make([][]string, 0, min(max, 1024))
	for len(chunk) < max {
		if !s.rows.Next() {
			s.done = true
			break
		}
		cells, err := s.rows.Columns()
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet row: %w", err)
		}
		chunk = append(chunk, cells)
	}

	if s.done {
		if err := s.rows.Error(); err != nil {
			return nil, fmt.Errorf("failed to iterate sheet rows: %w", err)
		}
	}
	if len(chunk) == 0 {
		return nil, io.EOF
	}
	return chunk, nil
}

// Close releases the row iterator and workbook.
func (s *XLSXSource) Close() error {
	rerr := s.rows.Close()
	ferr := s.file.Close()
	if rerr != nil {
		return rerr
	}
	return ferr
}
