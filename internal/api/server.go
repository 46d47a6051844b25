// Package api serves stored dataset health reports over HTTP.
package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ares-data/wellbore.report/internal/db"
	"github.com/ares-data/wellbore.report/internal/httputil"
	"github.com/ares-data/wellbore.report/internal/version"
)

// ReportStore is the read side of the report database used by the server.
type ReportStore interface {
	LatestReport() (*db.StoredReport, error)
	Report(reportID string) (*db.StoredReport, error)
	FitScoreHistory(path string) ([]db.FitScorePoint, error)
}

type Server struct {
	store ReportStore
}

func NewServer(store ReportStore) *Server {
	return &Server{store: store}
}

func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/reports/latest", s.latestReportHandler)
	mux.HandleFunc("/api/reports/", s.reportHandler)
	mux.HandleFunc("/api/datasets", s.datasetsHandler)
	mux.HandleFunc("/healthz", s.healthzHandler)
	return mux
}

func (s *Server) healthzHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	httputil.WriteJSONOK(w, map[string]string{
		"status":  "ok",
		"version": version.Version,
	})
}

func (s *Server) latestReportHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}

	report, err := s.store.LatestReport()
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	httputil.WriteJSONOK(w, report)
}

func (s *Server) reportHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}

	reportID := strings.TrimPrefix(r.URL.Path, "/api/reports/")
	if reportID == "" || strings.Contains(reportID, "/") {
		httputil.BadRequest(w, "missing or malformed report ID")
		return
	}

	report, err := s.store.Report(reportID)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	httputil.WriteJSONOK(w, report)
}

// datasetsHandler returns the fit score history, optionally filtered to one
// dataset path via ?path=.
func (s *Server) datasetsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}

	points, err := s.store.FitScoreHistory(r.URL.Query().Get("path"))
	if err != nil {
		httputil.InternalServerError(w, err.Error())
		return
	}
	if points == nil {
		points = []db.FitScorePoint{}
	}
	httputil.WriteJSONOK(w, points)
}

func (s *Server) writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, db.ErrNotFound) {
		httputil.NotFound(w, err.Error())
		return
	}
	httputil.InternalServerError(w, err.Error())
}
