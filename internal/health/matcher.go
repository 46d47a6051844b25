package health

import (
	"encoding/json"
	"strings"
)

// ResolvedColumn is the outcome of resolving a logical field against a
// dataset header. Resolved false means the field is absent; Name is only
// meaningful when Resolved is true, so a legitimately empty column name stays
// unambiguous.
type ResolvedColumn struct {
	Name     string
	Resolved bool
}

// MarshalJSON emits the original column name, or null when unresolved.
func (c ResolvedColumn) MarshalJSON() ([]byte, error) {
	if !c.Resolved {
		return []byte("null"), nil
	}
	return json.Marshal(c.Name)
}

// UnmarshalJSON accepts a column name or null.
func (c *ResolvedColumn) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*c = ResolvedColumn{}
		return nil
	}
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	*c = ResolvedColumn{Name: name, Resolved: true}
	return nil
}

// StandardColumns holds the resolved source column for each logical field.
type StandardColumns struct {
	Depth     ResolvedColumn `json:"depth"`
	ROP       ResolvedColumn `json:"rop"`
	Vibration ResolvedColumn `json:"vibration"`
	Time      ResolvedColumn `json:"time"`
}

// NormalizeName lowercases a column name and collapses every run of
// non-alphanumeric characters to a single space, trimming the ends.
// "Bit Measured Depth (m)" becomes "bit measured depth m".
func NormalizeName(value string) string {
	var b strings.Builder
	b.Grow(len(value))

	pendingSpace := false
	for _, r := range strings.ToLower(value) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(r)
		} else {
			pendingSpace = true
		}
	}
	return b.String()
}

// FindColumn resolves a logical field against a header using the candidate
// aliases in priority order. Exact normalized matches are tried across all
// candidates before any substring match, so a short alias cannot shadow a
// column that matches a later candidate exactly. Header names that collide
// after normalization resolve to the last occurrence.
func FindColumn(header []string, candidates []string) (string, bool) {
	normalized := make(map[string]string, len(header))
	order := make([]string, 0, len(header))
	for _, col := range header {
		norm := NormalizeName(col)
		if _, seen := normalized[norm]; !seen {
			order = append(order, norm)
		}
		normalized[norm] = col
	}

	for _, candidate := range candidates {
		if original, ok := normalized[NormalizeName(candidate)]; ok {
			return original, true
		}
	}

	for _, candidate := range candidates {
		key := NormalizeName(candidate)
		if key == "" {
			continue
		}
		for _, norm := range order {
			if strings.Contains(norm, key) {
				return normalized[norm], true
			}
		}
	}

	return "", false
}

// DetectStandardColumns locates the depth, ROP, vibration and time columns
// using the configured alias lists.
func (c Config) DetectStandardColumns(header []string) StandardColumns {
	resolve := func(candidates []string) ResolvedColumn {
		name, ok := FindColumn(header, candidates)
		return ResolvedColumn{Name: name, Resolved: ok}
	}

	return StandardColumns{
		Depth:     resolve(c.DepthAliases),
		ROP:       resolve(c.ROPAliases),
		Vibration: resolve(c.VibrationAliases),
		Time:      resolve(c.TimeAliases),
	}
}

// Range is a closed numeric interval.
type Range struct {
	Low  float64
	High float64
}

// MarshalJSON emits the range as a [low, high] pair, matching the report
// format consumers already parse.
func (r Range) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{r.Low, r.High})
}

// UnmarshalJSON accepts a [low, high] pair.
func (r *Range) UnmarshalJSON(data []byte) error {
	var pair [2]float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	r.Low, r.High = pair[0], pair[1]
	return nil
}

// ExpectVibrationRange infers the expected numeric range for a vibration
// column from its name. Columns whose normalized name contains "vibration"
// but not "raw" (the canonical "vibration 0 5" form included) are expected to
// sit in [0, 5]. This is a naming-convention heuristic, not a physical law:
// raw or proxy vibration channels get no enforced range.
func ExpectVibrationRange(column ResolvedColumn) (Range, bool) {
	if !column.Resolved {
		return Range{}, false
	}
	normalized := NormalizeName(column.Name)
	if strings.Contains(normalized, "vibration 0 5") ||
		(strings.Contains(normalized, "vibration") && !strings.Contains(normalized, "raw")) {
		return Range{Low: 0, High: 5}, true
	}
	return Range{}, false
}
