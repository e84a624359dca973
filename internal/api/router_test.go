package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/momentum-screener/internal/api/handlers"
	"github.com/wonny/momentum-screener/internal/audit"
	"github.com/wonny/momentum-screener/internal/contracts"
	"github.com/wonny/momentum-screener/internal/store"
	"github.com/wonny/momentum-screener/pkg/config"
	"github.com/wonny/momentum-screener/pkg/logger"
)

func newTestRouter(t *testing.T) (http.Handler, *store.JSONStore) {
	t.Helper()
	st := store.New(config.StateConfig{
		Dir:          t.TempDir(),
		SnapshotFile: "screener_data.json",
		PrevRankFile: "prev_ranks.json",
		HistoryFile:  "history.json",
	}, logger.Nop())
	return NewRouter(handlers.NewScreenerHandler(st, audit.NewAnalyzer(logger.Nop()), logger.Nop()), logger.Nop()), st
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func commitSample(t *testing.T, st *store.JSONStore) {
	t.Helper()
	snap := &contracts.Snapshot{
		Updated:       "2024-06-01 06:00 UTC",
		Date:          "2024-06-01",
		Universe:      "DAX + MDAX + SDAX",
		TotalScreened: 2,
		Top: []contracts.RankedStock{
			{StockMetrics: contracts.StockMetrics{Name: "SAP", Ticker: "SAP.DE", Price: 180.5}, Composite: 90, Rank: 1},
			{StockMetrics: contracts.StockMetrics{Name: "Siemens", Ticker: "SIE.DE", Price: 170.2}, Composite: 40, Rank: 2},
		},
		Skipped: []contracts.SkippedStock{},
	}
	prior := contracts.PriorRankIndex{"SAP.DE": 1, "SIE.DE": 2}
	require.NoError(t, st.Commit(snap, prior, []contracts.HistoryEntry{snap.ToHistoryEntry()}))
}

func TestHealth(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := get(t, router, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestSnapshot_NotFoundBeforeFirstRun(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := get(t, router, "/api/snapshot")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSnapshot_ReturnsCommittedState(t *testing.T) {
	router, st := newTestRouter(t)
	commitSample(t, st)

	rec := get(t, router, "/api/snapshot")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var snap contracts.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	require.Len(t, snap.Top, 2)
	assert.Equal(t, "SAP.DE", snap.Top[0].Ticker)
	assert.Nil(t, snap.Top[0].PrevRank)
}

func TestPriorRanks(t *testing.T) {
	router, st := newTestRouter(t)
	commitSample(t, st)

	rec := get(t, router, "/api/ranks")
	require.Equal(t, http.StatusOK, rec.Code)

	var prior map[string]int
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &prior))
	assert.Equal(t, map[string]int{"SAP.DE": 1, "SIE.DE": 2}, prior)
}

func TestHistory(t *testing.T) {
	router, st := newTestRouter(t)

	rec := get(t, router, "/api/history")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"count":0`)

	commitSample(t, st)
	rec = get(t, router, "/api/history")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"count":1`)
}

func TestTickerTrend(t *testing.T) {
	router, st := newTestRouter(t)
	commitSample(t, st)

	rec := get(t, router, "/api/history/SIE.DE")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Ticker string `json:"ticker"`
		Points []struct {
			Date string `json:"date"`
			Rank int    `json:"rank"`
		} `json:"points"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "SIE.DE", body.Ticker)
	require.Len(t, body.Points, 1)
	assert.Equal(t, "2024-06-01", body.Points[0].Date)
	assert.Equal(t, 2, body.Points[0].Rank)

	rec = get(t, router, "/api/history/NOPE.DE")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAudit(t *testing.T) {
	router, st := newTestRouter(t)

	rec := get(t, router, "/api/audit")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	commitSample(t, st)
	rec = get(t, router, "/api/audit")
	require.Equal(t, http.StatusOK, rec.Code)

	var report audit.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, 1, report.Entries)
	require.Len(t, report.Persistence, 2)
	assert.Equal(t, "SAP.DE", report.Persistence[0].Ticker)
}

func TestMethodNotAllowed(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/snapshot", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
