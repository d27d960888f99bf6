package usecase

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/johnboisvert/tradingview-sub001/internal/domain"
	"github.com/johnboisvert/tradingview-sub001/internal/infrastructure/fcm"
	"github.com/johnboisvert/tradingview-sub001/internal/metrics"
	"github.com/johnboisvert/tradingview-sub001/internal/repository"
)

// QualifyingSetups filters the current board down to actionable setups: a
// directional strong signal with a score at or above minScore and trade
// levels already computed.
func QualifyingSetups(analyses []domain.Analysis, minScore float64) []domain.SetupRecord {
	var out []domain.SetupRecord
	for _, a := range analyses {
		if a.Score == nil || *a.Score < minScore || a.Levels == nil {
			continue
		}
		if a.Signal != domain.SignalStrongBuy && a.Signal != domain.SignalStrongSell {
			continue
		}
		out = append(out, domain.SetupRecord{
			Symbol:     a.Symbol,
			Signal:     a.Signal,
			Score:      *a.Score,
			Price:      a.Price,
			StopLoss:   a.Levels.StopLoss,
			TakeProfit: a.Levels.TakeProfit,
			RiskReward: a.Levels.RiskReward,
			CreatedAt:  time.Now(),
		})
	}
	return out
}

// AlertService pushes qualifying setups to registered devices and an
// optional webhook. A per-symbol cooldown keeps repeated cycles from
// spamming the same setup.
type AlertService struct {
	fcm        *fcm.Client
	tokens     *repository.TokenRepository
	webhookURL string
	httpClient *http.Client
	cooldown   time.Duration

	mu       sync.Mutex
	lastSent map[string]time.Time
}

func NewAlertService(fcmClient *fcm.Client, tokens *repository.TokenRepository, webhookURL string, cooldown time.Duration) *AlertService {
	if cooldown <= 0 {
		cooldown = 30 * time.Minute
	}
	return &AlertService{
		fcm:        fcmClient,
		tokens:     tokens,
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		cooldown:   cooldown,
		lastSent:   make(map[string]time.Time),
	}
}

// Notify fans each setup out to FCM and the webhook, honoring the
// per-symbol cooldown. Delivery errors are logged and swallowed.
func (s *AlertService) Notify(recs []domain.SetupRecord) {
	for _, rec := range recs {
		if !s.markSent(rec.Symbol) {
			continue
		}
		s.sendPush(rec)
		s.sendWebhook(rec)
		metrics.AlertsSent.Inc()
	}
}

// markSent records a send attempt for symbol, returning false while the
// previous send is still inside the cooldown window.
func (s *AlertService) markSent(symbol string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	if last, ok := s.lastSent[symbol]; ok && now.Sub(last) < s.cooldown {
		return false
	}
	s.lastSent[symbol] = now
	// Drop expired entries so the map tracks only active cooldowns.
	for sym, t := range s.lastSent {
		if now.Sub(t) >= s.cooldown {
			delete(s.lastSent, sym)
		}
	}
	return true
}

func (s *AlertService) sendPush(rec domain.SetupRecord) {
	if s.fcm == nil || !s.fcm.IsEnabled() || s.tokens == nil {
		return
	}
	tokens := s.tokens.All()
	if len(tokens) == 0 {
		return
	}
	title := fmt.Sprintf("%s %s", rec.Signal, rec.Symbol)
	body := fmt.Sprintf("Score: %.0f | Price: $%.5f | SL: %.5f | TP: %.5f | RR: %.2f",
		rec.Score, rec.Price, rec.StopLoss, rec.TakeProfit, rec.RiskReward)
	if err := s.fcm.SendMulticast(tokens, title, body, map[string]string{
		"symbol": rec.Symbol,
		"signal": string(rec.Signal),
		"score":  fmt.Sprintf("%.2f", rec.Score),
	}); err != nil {
		log.Printf("[ERROR] fcm push %s: %v", rec.Symbol, err)
	}
}

func (s *AlertService) sendWebhook(rec domain.SetupRecord) {
	if s.webhookURL == "" {
		return
	}
	payload, err := json.Marshal(rec)
	if err != nil {
		return
	}
	resp, err := s.httpClient.Post(s.webhookURL, "application/json", bytes.NewReader(payload))
	if err != nil {
		log.Printf("[ERROR] webhook %s: %v", rec.Symbol, err)
		return
	}
	resp.Body.Close()
	if resp.StatusCode >= 300 {
		log.Printf("[ERROR] webhook %s: status %d", rec.Symbol, resp.StatusCode)
	}
}
