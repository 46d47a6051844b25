package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ares-data/wellbore.report/internal/db"
	"github.com/ares-data/wellbore.report/internal/health"
)

type fakeStore struct {
	reports map[string]*db.StoredReport
	latest  string
	history []db.FitScorePoint
}

func (f *fakeStore) LatestReport() (*db.StoredReport, error) {
	if f.latest == "" {
		return nil, db.ErrNotFound
	}
	return f.reports[f.latest], nil
}

func (f *fakeStore) Report(reportID string) (*db.StoredReport, error) {
	report, ok := f.reports[reportID]
	if !ok {
		return nil, db.ErrNotFound
	}
	return report, nil
}

func (f *fakeStore) FitScoreHistory(path string) ([]db.FitScorePoint, error) {
	if path == "" {
		return f.history, nil
	}
	var points []db.FitScorePoint
	for _, p := range f.history {
		if p.Path == path {
			points = append(points, p)
		}
	}
	return points, nil
}

func newTestServer(store ReportStore) *httptest.Server {
	return httptest.NewServer(NewServer(store).ServeMux())
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestLatestReport(t *testing.T) {
	t.Parallel()

	store := &fakeStore{
		latest: "r2",
		reports: map[string]*db.StoredReport{
			"r2": {
				ReportID:    "r2",
				GeneratedAt: "2026-08-24T10:00:00Z",
				Datasets: []*health.DatasetHealthRecord{
					{Path: "a.csv", FitScore: 80},
				},
			},
		},
	}
	ts := newTestServer(store)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/reports/latest")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var report db.StoredReport
	decodeBody(t, resp, &report)
	assert.Equal(t, "r2", report.ReportID)
	require.Len(t, report.Datasets, 1)
	assert.Equal(t, 80, report.Datasets[0].FitScore)
}

func TestLatestReportEmptyStore(t *testing.T) {
	t.Parallel()

	ts := newTestServer(&fakeStore{})
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/reports/latest")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestReportByID(t *testing.T) {
	t.Parallel()

	store := &fakeStore{
		reports: map[string]*db.StoredReport{
			"r1": {ReportID: "r1", GeneratedAt: "2026-08-23T10:00:00Z"},
		},
	}
	ts := newTestServer(store)
	defer ts.Close()

	t.Run("found", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/api/reports/r1")
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var report db.StoredReport
		decodeBody(t, resp, &report)
		assert.Equal(t, "r1", report.ReportID)
	})

	t.Run("unknown ID", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/api/reports/no-such-report")
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("missing ID", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/api/reports/")
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestDatasetHistory(t *testing.T) {
	t.Parallel()

	store := &fakeStore{
		history: []db.FitScorePoint{
			{ReportID: "r1", Path: "a.csv", FitScore: 40},
			{ReportID: "r2", Path: "a.csv", FitScore: 65},
			{ReportID: "r2", Path: "b.csv", FitScore: 90},
		},
	}
	ts := newTestServer(store)
	defer ts.Close()

	t.Run("filtered by path", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/api/datasets?path=a.csv")
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var points []db.FitScorePoint
		decodeBody(t, resp, &points)
		require.Len(t, points, 2)
		assert.Equal(t, 65, points[1].FitScore)
	})

	t.Run("all paths", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/api/datasets")
		require.NoError(t, err)

		var points []db.FitScorePoint
		decodeBody(t, resp, &points)
		assert.Len(t, points, 3)
	})

	t.Run("unknown path yields empty array", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/api/datasets?path=missing.csv")
		require.NoError(t, err)

		var points []db.FitScorePoint
		decodeBody(t, resp, &points)
		assert.NotNil(t, points)
		assert.Empty(t, points)
	})
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	ts := newTestServer(&fakeStore{})
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)

	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "ok", body["status"])
}

func TestMethodNotAllowed(t *testing.T) {
	t.Parallel()

	ts := newTestServer(&fakeStore{})
	defer ts.Close()

	for _, path := range []string{"/api/reports/latest", "/api/reports/r1", "/api/datasets", "/healthz"} {
		resp, err := http.Post(ts.URL+path, "application/json", nil)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode, path)
	}
}
