package domain

import (
	"context"
	"time"
)

// CycleStatus describes the repository's current refresh cycle.
type CycleStatus struct {
	Generation uint64    `json:"generation"`
	Done       int       `json:"done"`
	Total      int       `json:"total"`
	Warning    string    `json:"warning,omitempty"`
	StartedAt  time.Time `json:"startedAt"`
}

// AnalysisRepository is the shared mutable entity list. All mutating calls
// carry the load generation that produced them; a call tagged with a stale
// generation is ignored, so a superseded load can never overwrite a newer
// cycle.
type AnalysisRepository interface {
	// BeginCycle replaces the whole list and makes gen the active generation.
	BeginCycle(gen uint64, analyses []Analysis)
	// Upsert merges one entity by symbol. Returns false when the update was
	// discarded (stale generation, unknown symbol, or provenance downgrade).
	Upsert(gen uint64, a Analysis) bool
	// Advance moves the progress counter forward by n completed entities.
	Advance(gen uint64, n int)
	// SetWarning sets the operator-visible warning for the active cycle.
	SetWarning(gen uint64, msg string)
	Get(symbol string) (Analysis, bool)
	List() []Analysis
	Status() CycleStatus
}

// SetupRepository logs qualifying high-confidence setups. Implementations
// must be safe to call from the analysis pipeline: failures are returned,
// never fatal.
type SetupRepository interface {
	RecordSetup(ctx context.Context, rec *SetupRecord) error
}
