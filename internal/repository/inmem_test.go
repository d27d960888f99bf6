package repository

import (
	"testing"
	"time"

	"github.com/johnboisvert/tradingview-sub001/internal/domain"
)

func seedAnalyses(symbols ...string) []domain.Analysis {
	out := make([]domain.Analysis, 0, len(symbols))
	for i, sym := range symbols {
		out = append(out, domain.Analysis{
			Symbol:     sym,
			Rank:       i + 1,
			Signal:     domain.SignalPending,
			Provenance: domain.ProvenanceApproximate,
			UpdatedAt:  time.Now(),
		})
	}
	return out
}

func TestBeginCycleReplacesBoard(t *testing.T) {
	repo := NewInMemoryAnalysisRepository()
	repo.BeginCycle(1, seedAnalyses("AAAUSDT", "BBBUSDT"))
	repo.BeginCycle(2, seedAnalyses("CCCUSDT"))

	if _, ok := repo.Get("AAAUSDT"); ok {
		t.Fatal("old cycle's entity survived BeginCycle")
	}
	if _, ok := repo.Get("CCCUSDT"); !ok {
		t.Fatal("new cycle's entity missing")
	}
	status := repo.Status()
	if status.Generation != 2 || status.Total != 1 || status.Done != 0 {
		t.Fatalf("unexpected status: %+v", status)
	}
}

func TestUpsertStaleGenerationRejected(t *testing.T) {
	repo := NewInMemoryAnalysisRepository()
	repo.BeginCycle(2, seedAnalyses("AAAUSDT"))

	stale := domain.Analysis{Symbol: "AAAUSDT", Provenance: domain.ProvenanceAuthoritative}
	if repo.Upsert(1, stale) {
		t.Fatal("stale generation write should be rejected")
	}
	a, _ := repo.Get("AAAUSDT")
	if a.Provenance != domain.ProvenanceApproximate {
		t.Fatal("stale write mutated the board")
	}
}

func TestUpsertNeverDowngradesProvenance(t *testing.T) {
	repo := NewInMemoryAnalysisRepository()
	repo.BeginCycle(1, seedAnalyses("AAAUSDT"))

	auth := domain.Analysis{Symbol: "AAAUSDT", Provenance: domain.ProvenanceAuthoritative, Price: 100}
	if !repo.Upsert(1, auth) {
		t.Fatal("authoritative write should pass")
	}

	approx := domain.Analysis{Symbol: "AAAUSDT", Provenance: domain.ProvenanceApproximate, Price: 90}
	if repo.Upsert(1, approx) {
		t.Fatal("approximate write over authoritative data should be rejected")
	}
	a, _ := repo.Get("AAAUSDT")
	if a.Price != 100 {
		t.Fatalf("price = %f, downgrade write leaked through", a.Price)
	}
}

func TestUpsertPreservesRank(t *testing.T) {
	repo := NewInMemoryAnalysisRepository()
	repo.BeginCycle(1, seedAnalyses("AAAUSDT", "BBBUSDT"))

	update := domain.Analysis{Symbol: "BBBUSDT", Provenance: domain.ProvenanceAuthoritative}
	repo.Upsert(1, update)

	list := repo.List()
	if len(list) != 2 {
		t.Fatalf("list length = %d, want 2", len(list))
	}
	if list[0].Symbol != "AAAUSDT" || list[1].Symbol != "BBBUSDT" {
		t.Fatalf("rank order broken: %s, %s", list[0].Symbol, list[1].Symbol)
	}
	if list[1].Rank != 2 {
		t.Fatalf("rank = %d, want preserved 2", list[1].Rank)
	}
}

func TestAdvanceClampsAndChecksGeneration(t *testing.T) {
	repo := NewInMemoryAnalysisRepository()
	repo.BeginCycle(3, seedAnalyses("AAAUSDT", "BBBUSDT"))

	repo.Advance(2, 1) // stale
	if repo.Status().Done != 0 {
		t.Fatal("stale Advance moved progress")
	}
	repo.Advance(3, 5)
	if repo.Status().Done != 2 {
		t.Fatalf("done = %d, want clamp at total 2", repo.Status().Done)
	}
}

func TestSetWarning(t *testing.T) {
	repo := NewInMemoryAnalysisRepository()
	repo.BeginCycle(1, seedAnalyses("AAAUSDT"))

	repo.SetWarning(2, "stale gen")
	if repo.Status().Warning != "" {
		t.Fatal("stale generation set a warning")
	}
	repo.SetWarning(1, "source down")
	if repo.Status().Warning != "source down" {
		t.Fatalf("warning = %q", repo.Status().Warning)
	}
}
