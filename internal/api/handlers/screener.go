package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/wonny/momentum-screener/internal/audit"
	"github.com/wonny/momentum-screener/internal/contracts"
	"github.com/wonny/momentum-screener/internal/history"
	"github.com/wonny/momentum-screener/pkg/logger"
)

// ScreenerHandler serves the persisted screener state read-only
// ⭐ SSOT: 스크리너 API 핸들러는 이 구조체에서만
type ScreenerHandler struct {
	store    contracts.StateStore
	analyzer *audit.Analyzer
	logger   *logger.Logger
}

// NewScreenerHandler creates a new screener handler
func NewScreenerHandler(store contracts.StateStore, analyzer *audit.Analyzer, log *logger.Logger) *ScreenerHandler {
	return &ScreenerHandler{
		store:    store,
		analyzer: analyzer,
		logger:   log,
	}
}

// GetSnapshot returns the latest committed snapshot
// GET /api/snapshot
func (h *ScreenerHandler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := h.store.LoadSnapshot()
	if err != nil {
		h.logger.WithError(err).Error("Failed to load snapshot")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve snapshot")
		return
	}
	if snap == nil {
		respondError(w, http.StatusNotFound, "No snapshot available")
		return
	}

	respondJSON(w, http.StatusOK, snap)
}

// GetPriorRanks returns the ticker → rank index of the last committed run
// GET /api/ranks
func (h *ScreenerHandler) GetPriorRanks(w http.ResponseWriter, r *http.Request) {
	prior, err := h.store.LoadPriorRanks()
	if err != nil {
		h.logger.WithError(err).Error("Failed to load prior ranks")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve ranks")
		return
	}

	respondJSON(w, http.StatusOK, prior)
}

// GetHistory returns the stored history ledger, oldest first
// GET /api/history
func (h *ScreenerHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	entries, err := h.store.LoadHistory()
	if err != nil {
		h.logger.WithError(err).Error("Failed to load history")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve history")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":   len(entries),
		"entries": entries,
	})
}

// GetTickerTrend returns one ticker's rank trend across history
// GET /api/history/{ticker}
func (h *ScreenerHandler) GetTickerTrend(w http.ResponseWriter, r *http.Request) {
	ticker := strings.TrimSpace(mux.Vars(r)["ticker"])
	if ticker == "" {
		respondError(w, http.StatusBadRequest, "ticker is required")
		return
	}

	entries, err := h.store.LoadHistory()
	if err != nil {
		h.logger.WithError(err).Error("Failed to load history")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve history")
		return
	}

	points := history.Trend(entries, ticker)
	if len(points) == 0 {
		respondError(w, http.StatusNotFound, "Ticker not found in history")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"ticker": ticker,
		"points": points,
	})
}

// GetAudit returns turnover/persistence statistics over the history ledger
// GET /api/audit
func (h *ScreenerHandler) GetAudit(w http.ResponseWriter, r *http.Request) {
	entries, err := h.store.LoadHistory()
	if err != nil {
		h.logger.WithError(err).Error("Failed to load history")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve history")
		return
	}
	if len(entries) == 0 {
		respondError(w, http.StatusNotFound, "No history available")
		return
	}

	report, err := h.analyzer.Analyze(entries)
	if err != nil {
		h.logger.WithError(err).Error("Failed to analyze history")
		respondError(w, http.StatusInternalServerError, "Failed to analyze history")
		return
	}

	respondJSON(w, http.StatusOK, report)
}

// Helper functions

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
