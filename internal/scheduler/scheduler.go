package scheduler

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"github.com/johnboisvert/tradingview-sub001/internal/usecase"
)

// Scheduler drives the periodic refresh cycle.
type Scheduler struct {
	cron     *cron.Cron
	analyzer *usecase.Analyzer
	ctx      context.Context
}

func NewScheduler(ctx context.Context, analyzer *usecase.Analyzer) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		analyzer: analyzer,
		ctx:      ctx,
	}
}

// Register schedules the refresh cycle. refreshSpec is any cron spec the
// parser accepts, including "@every 3m" descriptors.
func (s *Scheduler) Register(refreshSpec string) error {
	if _, err := s.cron.AddFunc(refreshSpec, s.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler and cancels any in-flight load.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.analyzer.Cancel()
	log.Println("[INFO] scheduler stopped")
}

// TriggerNow runs a refresh cycle immediately, superseding any load that
// is still in flight.
func (s *Scheduler) TriggerNow() {
	go s.refreshTask()
}

func (s *Scheduler) refreshTask() {
	s.analyzer.RunCycle(s.ctx)
}
