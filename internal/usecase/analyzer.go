package usecase

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/johnboisvert/tradingview-sub001/internal/domain"
	"github.com/johnboisvert/tradingview-sub001/internal/metrics"
)

// MarketLister supplies the coarse market listing used to seed a cycle
// before authoritative per-timeframe data arrives.
type MarketLister interface {
	FetchMarkets(ctx context.Context, limit int) ([]domain.MarketListing, error)
}

// AnalyzerConfig tunes one refresh cycle.
type AnalyzerConfig struct {
	MaxEntities   int
	MinAlertScore float64
}

// Analyzer owns the refresh cycle: market listing, fallback seeding, the
// progressive authoritative load and the alert/persist side effects. Each
// new cycle supersedes the in-flight one by cancelling its session and
// bumping the generation, so stale batches are discarded on arrival.
type Analyzer struct {
	repo   domain.AnalysisRepository
	lister MarketLister
	loader *BatchLoader
	alerts *AlertService
	setups domain.SetupRepository
	cfg    AnalyzerConfig

	gen     atomic.Uint64
	mu      sync.Mutex
	session *LoadSession
}

// NewAnalyzer wires the cycle orchestrator. alerts and setups may be nil.
func NewAnalyzer(repo domain.AnalysisRepository, lister MarketLister, loader *BatchLoader, alerts *AlertService, setups domain.SetupRepository, cfg AnalyzerConfig) *Analyzer {
	if cfg.MaxEntities < 1 {
		cfg.MaxEntities = 50
	}
	if cfg.MinAlertScore <= 0 {
		cfg.MinAlertScore = 75
	}
	return &Analyzer{
		repo:   repo,
		lister: lister,
		loader: loader,
		alerts: alerts,
		setups: setups,
		cfg:    cfg,
	}
}

// RunCycle executes one full refresh. Safe to call while a previous cycle
// is still loading: the older session is cancelled and its remaining
// results are rejected by generation.
func (a *Analyzer) RunCycle(ctx context.Context) {
	start := time.Now()
	metrics.CyclesTotal.Inc()

	session := a.beginSession()
	gen := session.Generation()
	log.Printf("[INFO] refresh cycle %d starting", gen)

	markets, err := a.lister.FetchMarkets(ctx, a.cfg.MaxEntities)
	if err != nil || len(markets) == 0 {
		// Keep showing the previous cycle's state untouched.
		log.Printf("[ERROR] cycle %d: market listing failed: %v", gen, err)
		a.repo.SetWarning(a.repo.Status().Generation, "market listing unavailable; showing last computed state")
		metrics.OutageWarnings.Inc()
		return
	}

	seed := make([]domain.Analysis, 0, len(markets))
	symbols := make([]string, 0, len(markets))
	for i, m := range markets {
		seed = append(seed, seedAnalysis(i+1, m, a.loader.cfg.Timeframes))
		symbols = append(symbols, m.Symbol)
	}
	a.repo.BeginCycle(gen, seed)

	report := a.loader.Run(ctx, session, symbols)
	metrics.EntitiesProcessed.Add(float64(report.Updated + report.Degraded + report.Failed))
	metrics.CycleDuration.Observe(time.Since(start).Seconds())

	if report.Cancelled {
		log.Printf("[INFO] cycle %d cancelled after %d batches", gen, report.Batches)
		return
	}
	if report.TotalOutage() {
		a.repo.SetWarning(gen, "price source unavailable; indicator data may be stale")
		metrics.OutageWarnings.Inc()
		log.Printf("[ERROR] cycle %d: %v (%d entities failed)", gen, domain.ErrSourceOutage, report.Failed)
		return
	}

	qualifying := QualifyingSetups(a.repo.List(), a.cfg.MinAlertScore)
	if a.alerts != nil {
		a.alerts.Notify(qualifying)
	}
	a.recordSetups(ctx, qualifying)

	log.Printf("[INFO] cycle %d done in %v: %d updated, %d degraded, %d failed",
		gen, time.Since(start), report.Updated, report.Degraded, report.Failed)
}

// Cancel requests a cooperative stop of the in-flight load, if any.
func (a *Analyzer) Cancel() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.session != nil {
		a.session.Cancel()
	}
}

func (a *Analyzer) beginSession() *LoadSession {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.session != nil {
		a.session.Cancel()
	}
	session := NewLoadSession(a.gen.Add(1))
	a.session = session
	return session
}

// recordSetups logs qualifying setups to the setup store. Failures are
// swallowed; persistence is a side effect, never part of the pipeline.
func (a *Analyzer) recordSetups(ctx context.Context, recs []domain.SetupRecord) {
	if a.setups == nil {
		return
	}
	for i := range recs {
		if err := a.setups.RecordSetup(ctx, &recs[i]); err != nil {
			log.Printf("[ERROR] record setup %s: %v", recs[i].Symbol, err)
		}
	}
}

// seedAnalysis builds the fallback entity for one market listing row. When
// the listing carries an hourly close series, approximate snapshots are
// synthesized for every timeframe so lights render before the
// authoritative load lands; score stays nil and the signal PENDING.
func seedAnalysis(rank int, m domain.MarketListing, tfs Timeframes) domain.Analysis {
	a := domain.Analysis{
		Symbol:         m.Symbol,
		Rank:           rank,
		Price:          m.Price,
		ChangePct24h:   m.ChangePct24h,
		QuoteVolume24h: m.Volume24h,
		MarketCap:      m.MarketCap,
		Snapshots:      make(map[string]domain.IndicatorSnapshot, 3),
		Signal:         domain.SignalPending,
		Provenance:     domain.ProvenanceApproximate,
		UpdatedAt:      time.Now(),
	}

	if len(m.HourlyCloses) > 0 {
		candles := domain.ApproxCandlesFromCloses(m.HourlyCloses, m.Volume24h, time.Hour, time.Now())
		for _, tf := range tfs.All() {
			a.Snapshots[tf] = BuildSnapshot(tf, candles)
		}
	} else {
		for _, tf := range tfs.All() {
			a.Snapshots[tf] = BuildSnapshot(tf, nil)
		}
	}

	return a
}
