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

// SeriesFetcher supplies ordered candle series per symbol and timeframe.
type SeriesFetcher interface {
	FetchSeries(ctx context.Context, symbol, interval string, limit int) ([]domain.Candle, error)
}

// Timeframes is the fixed short/medium/long triple one load works over.
type Timeframes struct {
	Short  string `yaml:"short"`
	Medium string `yaml:"medium"`
	Long   string `yaml:"long"`
}

// All returns the triple in short, medium, long order.
func (t Timeframes) All() []string {
	return []string{t.Short, t.Medium, t.Long}
}

// LoadSession identifies one progressive load. Its generation is attached
// to every result so the repository can discard anything produced by a
// superseded load, even a batch that was already in flight when this
// session was cancelled.
type LoadSession struct {
	gen       uint64
	cancelled atomic.Bool
}

// NewLoadSession creates a session for the given generation.
func NewLoadSession(gen uint64) *LoadSession {
	return &LoadSession{gen: gen}
}

// Generation returns the session's generation token.
func (s *LoadSession) Generation() uint64 { return s.gen }

// Cancel requests a cooperative stop. The loader honors it between
// batches only; the running batch finishes and its results are applied
// unless a newer generation has taken over.
func (s *LoadSession) Cancel() { s.cancelled.Store(true) }

// Cancelled reports whether Cancel has been called.
func (s *LoadSession) Cancelled() bool { return s.cancelled.Load() }

// EntityState classifies the outcome of one entity's load.
type EntityState string

const (
	// EntityUpdated: every timeframe fetched and rebuilt.
	EntityUpdated EntityState = "updated"
	// EntityDegraded: at least one timeframe kept its prior snapshot.
	EntityDegraded EntityState = "degraded"
	// EntityFailed: nothing could be fetched; prior state untouched.
	EntityFailed EntityState = "failed"
)

// EntityOutcome is one entity's load result within a batch.
type EntityOutcome struct {
	Symbol   string
	State    EntityState
	Analysis *domain.Analysis
}

// LoadReport summarizes one progressive load.
type LoadReport struct {
	Updated   int
	Degraded  int
	Failed    int
	Batches   int
	Cancelled bool
}

// TotalOutage reports whether not a single entity produced data.
func (r LoadReport) TotalOutage() bool {
	return r.Updated == 0 && r.Degraded == 0 && r.Failed > 0
}

// LoaderConfig tunes the progressive batch loader.
type LoaderConfig struct {
	BatchSize   int
	BatchDelay  time.Duration
	CandleLimit int
	Timeframes  Timeframes
	// OnBatchApplied fires after each batch's results were merged, with
	// the cumulative count of processed entities.
	OnBatchApplied func(done int)
}

// BatchLoader walks an entity list in fixed-size batches, fanning fetches
// out concurrently inside each batch and merging per-entity results into
// the repository after the batch completes. An individual failure leaves
// that entity's prior state unchanged; it never aborts the batch.
type BatchLoader struct {
	fetcher SeriesFetcher
	repo    domain.AnalysisRepository
	cfg     LoaderConfig
}

// NewBatchLoader wires a loader over a fetcher and the shared repository.
func NewBatchLoader(fetcher SeriesFetcher, repo domain.AnalysisRepository, cfg LoaderConfig) *BatchLoader {
	if cfg.BatchSize < 1 {
		cfg.BatchSize = 5
	}
	if cfg.CandleLimit < 1 {
		cfg.CandleLimit = 300
	}
	return &BatchLoader{fetcher: fetcher, repo: repo, cfg: cfg}
}

// Run processes symbols in ceil(N/B) sequential batches. Cancellation is
// checked between batches only; the fixed inter-batch delay rate-limits
// the upstream source.
func (l *BatchLoader) Run(ctx context.Context, session *LoadSession, symbols []string) LoadReport {
	var report LoadReport
	done := 0

	for start := 0; start < len(symbols); start += l.cfg.BatchSize {
		if session.Cancelled() || ctx.Err() != nil {
			report.Cancelled = true
			break
		}
		if start > 0 && l.cfg.BatchDelay > 0 {
			select {
			case <-time.After(l.cfg.BatchDelay):
			case <-ctx.Done():
				report.Cancelled = true
				return report
			}
		}

		end := minInt(start+l.cfg.BatchSize, len(symbols))
		outcomes := l.runBatch(ctx, symbols[start:end])
		report.Batches++
		metrics.BatchesTotal.Inc()

		for _, out := range outcomes {
			switch out.State {
			case EntityUpdated:
				report.Updated++
			case EntityDegraded:
				report.Degraded++
			case EntityFailed:
				report.Failed++
			}
			if out.Analysis == nil {
				continue
			}
			if !l.repo.Upsert(session.Generation(), *out.Analysis) {
				metrics.StaleResultsDropped.Inc()
			}
		}

		done += end - start
		l.repo.Advance(session.Generation(), end-start)
		if l.cfg.OnBatchApplied != nil {
			l.cfg.OnBatchApplied(done)
		}
	}

	return report
}

// runBatch fans one batch out across its entities and waits for all of
// them. Completion order within the batch is irrelevant; results are
// merged by symbol afterwards.
func (l *BatchLoader) runBatch(ctx context.Context, symbols []string) []EntityOutcome {
	outcomes := make([]EntityOutcome, len(symbols))
	var wg sync.WaitGroup
	for i, sym := range symbols {
		wg.Add(1)
		go func(i int, symbol string) {
			defer wg.Done()
			outcomes[i] = l.loadEntity(ctx, symbol)
		}(i, sym)
	}
	wg.Wait()
	return outcomes
}

// loadEntity refreshes one entity: fetch and rebuild each timeframe's
// snapshot, keeping the prior snapshot for any timeframe that fails, then
// recompute score, signal, S/R levels and trade levels when the full
// triple is present.
func (l *BatchLoader) loadEntity(ctx context.Context, symbol string) EntityOutcome {
	prev, ok := l.repo.Get(symbol)
	if !ok {
		return EntityOutcome{Symbol: symbol, State: EntityFailed}
	}

	next := prev.CloneSnapshots()
	tfs := l.cfg.Timeframes
	degraded := false
	fetchedAny := false
	var mediumCandles []domain.Candle

	for _, tf := range tfs.All() {
		candles, err := l.fetcher.FetchSeries(ctx, symbol, tf, l.cfg.CandleLimit)
		if err != nil || len(candles) == 0 {
			// Transient failure or malformed payload: retain the
			// last-known snapshot for this timeframe.
			metrics.FetchFailures.Inc()
			degraded = true
			continue
		}
		next.Snapshots[tf] = BuildSnapshot(tf, candles)
		fetchedAny = true
		if tf == tfs.Medium {
			mediumCandles = candles
		}
	}

	if !fetchedAny {
		return EntityOutcome{Symbol: symbol, State: EntityFailed}
	}

	short, okS := next.Snapshots[tfs.Short]
	medium, okM := next.Snapshots[tfs.Medium]
	long, okL := next.Snapshots[tfs.Long]
	if okS && okM && okL {
		price := medium.LastClose
		if price <= 0 {
			price = prev.Price
		} else {
			next.Price = price
		}

		res := ComputeScore(ScoreInput{Short: short, Medium: medium, Long: long, Price: price})
		score := res.Score
		next.Score = &score
		next.Signal = res.Signal
		next.Provenance = domain.ProvenanceAuthoritative

		if len(mediumCandles) > 0 {
			next.SRLevels = DetectSRLevels(mediumCandles, price, tfs.Medium)
		}
		next.Levels = ComputeTradeLevels(price, medium.ATR)
		if dir, hasDir := DirectionForSignal(res.Signal); hasDir {
			next.Tight = ComputeTightLevels(dir, price, mediumCandles, next.SRLevels)
		} else {
			next.Tight = nil
		}
	}

	next.UpdatedAt = time.Now()

	state := EntityUpdated
	if degraded {
		state = EntityDegraded
		log.Printf("[INFO] %s: partial refresh, keeping stale timeframes", symbol)
	}
	return EntityOutcome{Symbol: symbol, State: state, Analysis: &next}
}
