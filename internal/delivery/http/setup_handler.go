package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/johnboisvert/tradingview-sub001/internal/domain"
)

// SetupHistory reads persisted setups.
type SetupHistory interface {
	RecentSetups(ctx context.Context, fromTime time.Time, limit int) ([]domain.SetupRecord, error)
}

type SetupHandler struct {
	history SetupHistory
}

func NewSetupHandler(history SetupHistory) *SetupHandler {
	return &SetupHandler{history: history}
}

// HandleRecent serves setups recorded in the last N hours.
// Query params: hours (default 24), limit (default 100).
func (h *SetupHandler) HandleRecent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if h.history == nil {
		http.Error(w, "Setup history not configured", http.StatusServiceUnavailable)
		return
	}

	hours := 24
	if v := r.URL.Query().Get("hours"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			hours = n
		}
	}
	limit := 100
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	recs, err := h.history.RecentSetups(r.Context(), time.Now().Add(-time.Duration(hours)*time.Hour), limit)
	if err != nil {
		http.Error(w, "Failed to load setups", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]any{"setups": recs, "count": len(recs)})
}
