package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ares-data/wellbore.report/internal/health"
)

func TestLoadAndApplyPartialOverride(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "analyzer.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"chunk_size": 5000,
		"rop_max_ceiling": 250,
		"depth_aliases": ["WELL_DEPTH"]
	}`), 0644))

	loaded, err := Load(path)
	require.NoError(t, err)

	cfg := health.DefaultConfig()
	loaded.Apply(&cfg)

	assert.Equal(t, 5000, cfg.ChunkSize)
	assert.Equal(t, 250.0, cfg.ROPMaxCeiling)
	assert.Equal(t, []string{"WELL_DEPTH"}, cfg.DepthAliases)

	// Untouched keys keep their defaults.
	assert.Equal(t, health.DefaultDuplicateSampleRows, cfg.DuplicateSampleRows)
	assert.Equal(t, 0.01, cfg.ROPMeanFloor)
	assert.NotEmpty(t, cfg.ROPAliases)
}

func TestApplyNilIsNoOp(t *testing.T) {
	t.Parallel()

	cfg := health.DefaultConfig()
	var loaded *AnalyzerConfig
	loaded.Apply(&cfg)
	assert.Equal(t, health.DefaultConfig().ChunkSize, cfg.ChunkSize)
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestLoadMalformedJSON(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}
