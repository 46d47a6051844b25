// Package main renders a dataset health report as a standalone HTML chart:
// fit scores per dataset as bars, with missingness-heavy columns called out
// in the subtitle.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/ares-data/wellbore.report/internal/health"
)

func main() {
	var (
		reportPath = flag.String("report", "outputs/dataset_health_report.json", "Report JSON path")
		outPath    = flag.String("out", "outputs/dataset_health_chart.html", "Chart HTML output path")
	)
	flag.Parse()

	data, err := os.ReadFile(*reportPath)
	if err != nil {
		log.Fatalf("Failed to read report: %v", err)
	}

	var report health.Report
	if err := json.Unmarshal(data, &report); err != nil {
		log.Fatalf("Failed to parse report: %v", err)
	}
	if len(report.Datasets) == 0 {
		log.Fatalf("Report has no datasets")
	}

	bar := buildChart(&report)

	if err := os.MkdirAll(filepath.Dir(*outPath), 0755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}
	f, err := os.Create(*outPath)
	if err != nil {
		log.Fatalf("Failed to create chart file: %v", err)
	}
	defer f.Close()

	if err := bar.Render(f); err != nil {
		log.Fatalf("Failed to render chart: %v", err)
	}
	log.Printf("Chart written to %s", *outPath)
}

func buildChart(report *health.Report) *charts.Bar {
	var (
		labels []string
		scores []opts.BarData
	)
	for _, record := range report.Datasets {
		labels = append(labels, filepath.Base(record.Path))
		scores = append(scores, opts.BarData{Value: record.FitScore})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Dataset Health", Width: "900px", Height: "500px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Dataset fit scores",
			Subtitle: fmt.Sprintf("generated %s, %s", report.GeneratedAt, worstColumns(report)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Min: 0, Max: 100, Name: "fit score"}),
	)
	bar.SetXAxis(labels)
	bar.AddSeries("fit score", scores)
	return bar
}

// worstColumns names the most missingness-heavy column across the report.
func worstColumns(report *health.Report) string {
	type missing struct {
		column string
		rate   float64
	}
	var all []missing
	for _, record := range report.Datasets {
		for column, m := range record.Missingness {
			all = append(all, missing{column: column, rate: m.MissingRate})
		}
	}
	if len(all) == 0 {
		return "no column stats"
	}
	sort.Slice(all, func(i, j int) bool { return all[i].rate > all[j].rate })
	return fmt.Sprintf("worst column: %s (%.0f%% missing)", all[0].column, all[0].rate*100)
}
