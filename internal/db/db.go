// Package db persists dataset health reports in sqlite.
package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/ares-data/wellbore.report/internal/health"
)

// ErrNotFound is returned when no report matches a lookup.
var ErrNotFound = errors.New("report not found")

type DB struct {
	*sql.DB
}

// NewDB opens (and if needed initializes) a report database at path.
func NewDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS reports (
			report_id         TEXT PRIMARY KEY,
			generated_at      TEXT,
			dataset_count     BIGINT,
			created_at        TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
		CREATE TABLE IF NOT EXISTS report_datasets (
			report_id         TEXT,
			path              TEXT,
			rows              BIGINT,
			cols              BIGINT,
			fit_score         BIGINT,
			record            TEXT,
			FOREIGN KEY(report_id) REFERENCES reports(report_id)
		);
		CREATE INDEX IF NOT EXISTS idx_report_datasets_path
			ON report_datasets(path);
	`)
	if err != nil {
		return nil, err
	}

	return &DB{db}, nil
}

// RecordReport stores a health report and returns its assigned ID.
func (db *DB) RecordReport(report *health.Report) (string, error) {
	reportID := uuid.NewString()

	tx, err := db.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO reports (report_id, generated_at, dataset_count) VALUES (?, ?, ?)`,
		reportID, report.GeneratedAt, len(report.Datasets),
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert report: %v", err)
	}

	for _, record := range report.Datasets {
		blob, err := json.Marshal(record)
		if err != nil {
			return "", fmt.Errorf("failed to encode record for %s: %v", record.Path, err)
		}
		_, err = tx.Exec(
			`INSERT INTO report_datasets (report_id, path, rows, cols, fit_score, record)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			reportID, record.Path, record.Rows, record.Cols, record.FitScore, string(blob),
		)
		if err != nil {
			return "", fmt.Errorf("failed to insert dataset record: %v", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit report: %v", err)
	}
	return reportID, nil
}

// StoredReport is a persisted report with its assigned ID.
type StoredReport struct {
	ReportID    string                        `json:"report_id"`
	GeneratedAt string                        `json:"generated_at"`
	Datasets    []*health.DatasetHealthRecord `json:"datasets"`
}

// LatestReport returns the most recently stored report.
func (db *DB) LatestReport() (*StoredReport, error) {
	row := db.QueryRow(
		`SELECT report_id, generated_at FROM reports ORDER BY created_at DESC, rowid DESC LIMIT 1`,
	)

	var report StoredReport
	if err := row.Scan(&report.ReportID, &report.GeneratedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query latest report: %v", err)
	}

	return db.loadDatasets(&report)
}

// Report returns a stored report by ID.
func (db *DB) Report(reportID string) (*StoredReport, error) {
	row := db.QueryRow(
		`SELECT report_id, generated_at FROM reports WHERE report_id = ?`, reportID,
	)

	var report StoredReport
	if err := row.Scan(&report.ReportID, &report.GeneratedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query report %s: %v", reportID, err)
	}

	return db.loadDatasets(&report)
}

func (db *DB) loadDatasets(report *StoredReport) (*StoredReport, error) {
	rows, err := db.Query(
		`SELECT record FROM report_datasets WHERE report_id = ? ORDER BY rowid`, report.ReportID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query report datasets: %v", err)
	}
	defer rows.Close()

	for rows.Next() {
		var blob string
		if err := rows.Scan(&blob); err != nil {
			return nil, fmt.Errorf("failed to scan dataset record: %v", err)
		}
		var record health.DatasetHealthRecord
		if err := json.Unmarshal([]byte(blob), &record); err != nil {
			return nil, fmt.Errorf("failed to decode dataset record: %v", err)
		}
		report.Datasets = append(report.Datasets, &record)
	}
	return report, rows.Err()
}

// FitScorePoint is one dataset's fit score in one report.
type FitScorePoint struct {
	ReportID    string `json:"report_id"`
	GeneratedAt string `json:"generated_at"`
	Path        string `json:"path"`
	FitScore    int    `json:"fit_score"`
}

// FitScoreHistory returns the fit score trail for a dataset path, oldest
// first. An empty path returns the trail for every dataset.
func (db *DB) FitScoreHistory(path string) ([]FitScorePoint, error) {
	query := `
		SELECT d.report_id, r.generated_at, d.path, d.fit_score
		FROM report_datasets d
		JOIN reports r ON r.report_id = d.report_id`
	args := []interface{}{}
	if path != "" {
		query += ` WHERE d.path = ?`
		args = append(args, path)
	}
	query += ` ORDER BY r.created_at, d.rowid`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query fit score history: %v", err)
	}
	defer rows.Close()

	var points []FitScorePoint
	for rows.Next() {
		var p FitScorePoint
		if err := rows.Scan(&p.ReportID, &p.GeneratedAt, &p.Path, &p.FitScore); err != nil {
			return nil, fmt.Errorf("failed to scan fit score row: %v", err)
		}
		points = append(points, p)
	}
	return points, rows.Err()
}
