package source

import (
	"path/filepath"

	"github.com/ares-data/wellbore.report/internal/fsutil"
	"github.com/ares-data/wellbore.report/internal/monitoring"
)

// DefaultDatasetCandidates lists the Volve-derived datasets in priority
// order: the replay-ready primary file first, then its upstream artifacts.
var DefaultDatasetCandidates = []string{
	"volve_drilling_ares1_ready.csv",
	"volve_drilling_best.csv",
	"volve_drilling_best_wide.csv",
}

// Dataset identifies a discovered dataset file.
type Dataset struct {
	Path      string
	SizeBytes int64
}

// Discover resolves candidate dataset names under dir, in the given priority
// order. Missing candidates are logged and skipped; discovery never fails.
func Discover(fsys fsutil.FileSystem, dir string, candidates []string) []Dataset {
	datasets := make([]Dataset, 0, len(candidates))
	for _, name := range candidates {
		path := filepath.Join(dir, name)
		info, err := fsys.Stat(path)
		if err != nil {
			monitoring.Logf("Dataset not found (skipping): %s", path)
			continue
		}
		datasets = append(datasets, Dataset{Path: path, SizeBytes: info.Size()})
	}
	return datasets
}
