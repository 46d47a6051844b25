// Package config loads optional analyzer settings from a JSON file and
// applies them over the built-in defaults.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ares-data/wellbore.report/internal/health"
)

// AnalyzerConfig mirrors the overridable subset of health.Config. Every field
// is a pointer so an absent key leaves the default untouched, and the same
// JSON document can be partial or complete.
type AnalyzerConfig struct {
	ChunkSize           *int   `json:"chunk_size,omitempty"`
	DuplicateSampleRows *int   `json:"duplicate_sample_rows,omitempty"`
	LargeFileBytes      *int64 `json:"large_file_bytes,omitempty"`

	DepthAliases     []string `json:"depth_aliases,omitempty"`
	ROPAliases       []string `json:"rop_aliases,omitempty"`
	VibrationAliases []string `json:"vibration_aliases,omitempty"`
	TimeAliases      []string `json:"time_aliases,omitempty"`

	ROPMaxCeiling *float64 `json:"rop_max_ceiling,omitempty"`
	ROPMeanFloor  *float64 `json:"rop_mean_floor,omitempty"`
}

// Load reads an AnalyzerConfig from a JSON file.
func Load(path string) (*AnalyzerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var cfg AnalyzerConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// Apply overlays the set fields onto a health.Config.
func (c *AnalyzerConfig) Apply(cfg *health.Config) {
	if c == nil {
		return
	}

	if c.ChunkSize != nil {
		cfg.ChunkSize = *c.ChunkSize
	}
	if c.DuplicateSampleRows != nil {
		cfg.DuplicateSampleRows = *c.DuplicateSampleRows
	}
	if c.LargeFileBytes != nil {
		cfg.LargeFileBytes = *c.LargeFileBytes
	}

	if len(c.DepthAliases) > 0 {
		cfg.DepthAliases = c.DepthAliases
	}
	if len(c.ROPAliases) > 0 {
		cfg.ROPAliases = c.ROPAliases
	}
	if len(c.VibrationAliases) > 0 {
		cfg.VibrationAliases = c.VibrationAliases
	}
	if len(c.TimeAliases) > 0 {
		cfg.TimeAliases = c.TimeAliases
	}

	if c.ROPMaxCeiling != nil {
		cfg.ROPMaxCeiling = *c.ROPMaxCeiling
	}
	if c.ROPMeanFloor != nil {
		cfg.ROPMeanFloor = *c.ROPMeanFloor
	}
}
