package repository

import (
	"sort"
	"sync"
	"time"

	"github.com/johnboisvert/tradingview-sub001/internal/domain"
)

// InMemoryAnalysisRepository holds the live analysis board for the current
// refresh cycle. Every write carries the generation of the cycle that
// produced it; writes from superseded generations are rejected so a slow
// batch from an old load can never overwrite fresher data.
type InMemoryAnalysisRepository struct {
	mu       sync.RWMutex
	bySymbol map[string]domain.Analysis
	order    []string
	status   domain.CycleStatus
}

func NewInMemoryAnalysisRepository() *InMemoryAnalysisRepository {
	return &InMemoryAnalysisRepository{
		bySymbol: make(map[string]domain.Analysis),
	}
}

// BeginCycle replaces the board with the seed entities of a new generation.
func (r *InMemoryAnalysisRepository) BeginCycle(gen uint64, analyses []domain.Analysis) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bySymbol = make(map[string]domain.Analysis, len(analyses))
	r.order = make([]string, 0, len(analyses))
	for _, a := range analyses {
		r.bySymbol[a.Symbol] = a
		r.order = append(r.order, a.Symbol)
	}
	r.status = domain.CycleStatus{
		Generation: gen,
		Total:      len(analyses),
		StartedAt:  time.Now(),
	}
}

// Upsert applies one loaded analysis. Returns false when gen is stale or
// when the write would downgrade an authoritative entry back to
// approximate data.
func (r *InMemoryAnalysisRepository) Upsert(gen uint64, a domain.Analysis) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if gen != r.status.Generation {
		return false
	}
	if prev, ok := r.bySymbol[a.Symbol]; ok {
		if prev.Provenance == domain.ProvenanceAuthoritative && a.Provenance == domain.ProvenanceApproximate {
			return false
		}
		a.Rank = prev.Rank
	} else {
		r.order = append(r.order, a.Symbol)
		r.status.Total++
	}
	r.bySymbol[a.Symbol] = a
	return true
}

// Advance moves the cycle progress counter, ignored for stale generations.
func (r *InMemoryAnalysisRepository) Advance(gen uint64, n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if gen != r.status.Generation {
		return
	}
	r.status.Done += n
	if r.status.Done > r.status.Total {
		r.status.Done = r.status.Total
	}
}

// SetWarning attaches a user-facing warning to the current cycle.
func (r *InMemoryAnalysisRepository) SetWarning(gen uint64, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if gen != r.status.Generation {
		return
	}
	r.status.Warning = msg
}

func (r *InMemoryAnalysisRepository) Get(symbol string) (domain.Analysis, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.bySymbol[symbol]
	return a, ok
}

// List returns the board in rank order. The slice is a copy; snapshot
// maps are shared, callers must not mutate them.
func (r *InMemoryAnalysisRepository) List() []domain.Analysis {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Analysis, 0, len(r.order))
	for _, sym := range r.order {
		if a, ok := r.bySymbol[sym]; ok {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Rank < out[j].Rank })
	return out
}

func (r *InMemoryAnalysisRepository) Status() domain.CycleStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.status
}
