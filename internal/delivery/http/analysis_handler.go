package http

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/johnboisvert/tradingview-sub001/internal/domain"
)

// AnalysisReader is the read side of the live analysis board.
type AnalysisReader interface {
	Get(symbol string) (domain.Analysis, bool)
	List() []domain.Analysis
	Status() domain.CycleStatus
}

type AnalysisHandler struct {
	repo AnalysisReader
}

func NewAnalysisHandler(repo AnalysisReader) *AnalysisHandler {
	return &AnalysisHandler{repo: repo}
}

// Row is the flattened table view of one analysis, ready for rendering.
type Row struct {
	Rank         int                `json:"rank"`
	Symbol       string             `json:"symbol"`
	Price        float64            `json:"price"`
	ChangePct24h float64            `json:"change_pct_24h"`
	Volume24h    float64            `json:"volume_24h"`
	Lights       map[string]string  `json:"lights"`
	Score        *float64           `json:"score"`
	Signal       string             `json:"signal"`
	RSI          map[string]float64 `json:"rsi"`
	MACDState    map[string]string  `json:"macd_state"`
	EMAPosition  map[string]string  `json:"ema_position"`
	Provenance   string             `json:"provenance"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

type ListResponse struct {
	Rows    []Row  `json:"rows"`
	Done    int    `json:"done"`
	Total   int    `json:"total"`
	Warning string `json:"warning,omitempty"`
}

// HandleList serves the full board plus load progress.
func (h *AnalysisHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	analyses := h.repo.List()
	status := h.repo.Status()

	rows := make([]Row, 0, len(analyses))
	for _, a := range analyses {
		rows = append(rows, rowFromAnalysis(a))
	}

	writeJSON(w, ListResponse{
		Rows:    rows,
		Done:    status.Done,
		Total:   status.Total,
		Warning: status.Warning,
	})
}

// HandleDetail serves one full analysis, snapshots and levels included.
// Path: /api/analysis/{symbol}
func (h *AnalysisHandler) HandleDetail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	symbol := strings.ToUpper(strings.TrimPrefix(r.URL.Path, "/api/analysis/"))
	if symbol == "" {
		http.Error(w, "Symbol is required", http.StatusBadRequest)
		return
	}

	a, ok := h.repo.Get(symbol)
	if !ok {
		http.Error(w, "Symbol not found", http.StatusNotFound)
		return
	}
	writeJSON(w, a)
}

// HandleHealth is the liveness probe, reporting cycle progress.
func (h *AnalysisHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	status := h.repo.Status()
	writeJSON(w, map[string]any{
		"status":     "ok",
		"generation": status.Generation,
		"done":       status.Done,
		"total":      status.Total,
		"warning":    status.Warning,
	})
}

func rowFromAnalysis(a domain.Analysis) Row {
	row := Row{
		Rank:         a.Rank,
		Symbol:       a.Symbol,
		Price:        a.Price,
		ChangePct24h: a.ChangePct24h,
		Volume24h:    a.QuoteVolume24h,
		Lights:       make(map[string]string, len(a.Snapshots)),
		Score:        a.Score,
		Signal:       string(a.Signal),
		RSI:          make(map[string]float64, len(a.Snapshots)),
		MACDState:    make(map[string]string, len(a.Snapshots)),
		EMAPosition:  make(map[string]string, len(a.Snapshots)),
		Provenance:   string(a.Provenance),
		UpdatedAt:    a.UpdatedAt,
	}
	for tf, snap := range a.Snapshots {
		row.Lights[tf] = string(snap.Light)
		row.RSI[tf] = snap.RSI
		row.MACDState[tf] = macdState(snap)
		row.EMAPosition[tf] = emaPosition(snap)
	}
	return row
}

func macdState(s domain.IndicatorSnapshot) string {
	switch {
	case s.MACDHist > 0:
		return "bullish"
	case s.MACDHist < 0:
		return "bearish"
	default:
		return "flat"
	}
}

func emaPosition(s domain.IndicatorSnapshot) string {
	switch {
	case s.LastClose >= s.EMAFast && s.EMAFast >= s.EMAMid:
		return "above"
	case s.LastClose < s.EMAFast && s.EMAFast < s.EMAMid:
		return "below"
	default:
		return "mixed"
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
