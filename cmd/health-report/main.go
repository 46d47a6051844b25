// Package main generates a dataset health report for well log exports. It
// scans the configured datasets chunk by chunk, writes the JSON report, and
// optionally persists the run to a sqlite history database.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"path/filepath"
	"time"

	"github.com/ares-data/wellbore.report/internal/config"
	"github.com/ares-data/wellbore.report/internal/db"
	"github.com/ares-data/wellbore.report/internal/fsutil"
	"github.com/ares-data/wellbore.report/internal/health"
	"github.com/ares-data/wellbore.report/internal/source"
)

func main() {
	var (
		dataDir    = flag.String("data", "data", "Directory holding the dataset files")
		outPath    = flag.String("out", "outputs/dataset_health_report.json", "Report JSON output path")
		dbPath     = flag.String("db", "", "SQLite history database path (optional)")
		configPath = flag.String("config", "", "Analyzer config JSON path (optional)")
		chunkSize  = flag.Int("chunk-size", 0, "Rows per scan chunk (0 = default)")
		sampleRows = flag.Int("sample-rows", 0, "Rows sampled for duplicate detection (0 = default)")
	)
	flag.Parse()

	cfg := health.DefaultConfig()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		loaded.Apply(&cfg)
	}
	if *chunkSize > 0 {
		cfg.ChunkSize = *chunkSize
	}
	if *sampleRows > 0 {
		cfg.DuplicateSampleRows = *sampleRows
	}

	fsys := fsutil.OSFileSystem{}

	// Explicit paths on the command line override discovery.
	var datasets []source.Dataset
	if args := flag.Args(); len(args) > 0 {
		for _, path := range args {
			info, err := fsys.Stat(path)
			if err != nil {
				log.Fatalf("Failed to stat dataset %s: %v", path, err)
			}
			datasets = append(datasets, source.Dataset{Path: path, SizeBytes: info.Size()})
		}
	} else {
		datasets = source.Discover(fsys, *dataDir, source.DefaultDatasetCandidates)
	}
	if len(datasets) == 0 {
		log.Fatalf("No datasets found under %s", *dataDir)
	}

	analyzer := health.NewAnalyzer(cfg)
	report := &health.Report{
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}

	for _, dataset := range datasets {
		record, err := analyzeDataset(fsys, analyzer, dataset)
		if err != nil {
			log.Printf("Failed to analyse %s (skipping): %v", dataset.Path, err)
			continue
		}
		report.Datasets = append(report.Datasets, record)
		log.Printf("%s: %d rows, fit score %d/100", dataset.Path, record.Rows, record.FitScore)
		for _, flagged := range record.UnitFlags {
			log.Printf("  flag: %s", flagged)
		}
	}
	if len(report.Datasets) == 0 {
		log.Fatalf("All datasets failed to analyse")
	}

	if err := writeReport(fsys, *outPath, report); err != nil {
		log.Fatalf("Failed to write report: %v", err)
	}
	log.Printf("Report written to %s", *outPath)

	if *dbPath != "" {
		store, err := db.NewDB(*dbPath)
		if err != nil {
			log.Fatalf("Failed to open history database: %v", err)
		}
		defer store.Close()

		reportID, err := store.RecordReport(report)
		if err != nil {
			log.Fatalf("Failed to persist report: %v", err)
		}
		log.Printf("Report recorded as %s", reportID)
	}
}

func analyzeDataset(fsys fsutil.FileSystem, analyzer *health.Analyzer, dataset source.Dataset) (*health.DatasetHealthRecord, error) {
	src, err := source.Open(fsys, dataset.Path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	return analyzer.Analyze(dataset.Path, dataset.SizeBytes, src)
}

func writeReport(fsys fsutil.FileSystem, path string, report *health.Report) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := fsys.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	return fsys.WriteFile(path, append(data, '\n'), 0644)
}
