package source

import (
	"encoding/csv"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/ares-data/wellbore.report/internal/fsutil"
)

// CSVSource streams a CSV dataset with a header row. It tolerates ragged
// records: short rows leave trailing cells missing, long rows carry extras
// the analyzer ignores.
type CSVSource struct {
	file   fs.File
	reader *csv.Reader
	header []string
	done   bool
}

// OpenCSV opens a CSV dataset and reads its header. A file whose header
// cannot be read is unusable and reported as an error.
func OpenCSV(fsys fsutil.FileSystem, path string) (*CSVSource, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset %s: %w", path, err)
	}

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.ReuseRecord = false

	header, err := r.Read()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to read header of %s: %w", path, err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	return &CSVSource{file: f, reader: r, header: header}, nil
}

// Header returns the column names as they appear in the file.
func (s *CSVSource) Header() []string { return s.header }

// ReadChunk reads up to max rows. It returns io.EOF only when no rows remain;
// a short final chunk is returned with a nil error.
func (s *CSVSource) ReadChunk(max int) ([][]string, error) {
	if s.done {
		return nil, io.EOF
	}
	if max <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", max)
	}

	chunk := make([][]string, 0, min(max, 1024))
	for len(chunk) < max {
		record, err := s.reader.Read()
		if err == io.EOF {
			s.done = true
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv record: %w", err)
		}
		chunk = append(chunk, record)
	}

	if len(chunk) == 0 {
		return nil, io.EOF
	}
	return chunk, nil
}

// Close releases the underlying file.
func (s *CSVSource) Close() error { return s.file.Close() }
