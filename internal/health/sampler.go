package health

import "strings"

// rowKeySep joins cell values into a row identity key. The unit separator
// does not occur in well log data, so distinct rows cannot collide.
const rowKeySep = "\x1f"

// DuplicateSampler retains the first cap rows of a dataset verbatim, in
// encounter order, and estimates the row duplication rate over that prefix.
// Rows arriving after the cap is reached are ignored; the resulting rate is
// explicitly an estimate for datasets larger than the cap, never an exact
// count. The sampling is deterministic: no reservoir randomness.
type DuplicateSampler struct {
	cap  int
	rows []string
}

// NewDuplicateSampler creates a sampler retaining at most cap rows. A
// non-positive cap retains nothing.
func NewDuplicateSampler(cap int) *DuplicateSampler {
	if cap < 0 {
		cap = 0
	}
	return &DuplicateSampler{cap: cap}
}

// Add offers rows in streaming order; only the prefix up to the cap is kept.
func (d *DuplicateSampler) Add(rows [][]string) {
	for _, row := range rows {
		if len(d.rows) >= d.cap {
			return
		}
		d.rows = append(d.rows, strings.Join(row, rowKeySep))
	}
}

// Len returns the number of retained rows.
func (d *DuplicateSampler) Len() int { return len(d.rows) }

// Result counts retained rows that exactly repeat an earlier retained row,
// over all column values as observed.
func (d *DuplicateSampler) Result() DuplicateSample {
	if len(d.rows) == 0 {
		return DuplicateSample{Method: "sampled"}
	}

	seen := make(map[string]struct{}, len(d.rows))
	duplicates := int64(0)
	for _, key := range d.rows {
		if _, ok := seen[key]; ok {
			duplicates++
			continue
		}
		seen[key] = struct{}{}
	}

	return DuplicateSample{
		Method:        "first_rows",
		SampleRows:    int64(len(d.rows)),
		DuplicateRows: duplicates,
		DuplicateRate: float64(duplicates) / float64(len(d.rows)),
	}
}

// DuplicateSample is the finalized duplicate estimate for one dataset.
type DuplicateSample struct {
	Method        string  `json:"method"`
	SampleRows    int64   `json:"sample_rows"`
	DuplicateRows int64   `json:"duplicate_rows"`
	DuplicateRate float64 `json:"duplicate_rate"`
}
