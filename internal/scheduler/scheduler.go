package scheduler

import (
	"context"
	"fmt"
	"log"

	"github.com/jouni12787/gold-live-calculator/internal/chart"
	"github.com/jouni12787/gold-live-calculator/internal/history"
	"github.com/jouni12787/gold-live-calculator/internal/recorder"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the periodic snapshot task: it records the latest served
// price and rereads the history file so a rotated dataset is picked up
// without a restart.
type Scheduler struct {
	Cron     *cron.Cron
	Service  *chart.Service
	History  *history.Loader
	Recorder recorder.Recorder
	Ctx      context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, svc *chart.Service, loader *history.Loader, rec recorder.Recorder) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Service:  svc,
		History:  loader,
		Recorder: rec,
		Ctx:      ctx,
	}
}

// Register registers the snapshot task with the given cron expression.
func (s *Scheduler) Register(snapshotCron string) error {
	if _, err := s.Cron.AddFunc(snapshotCron, s.snapshotTask); err != nil {
		return fmt.Errorf("register snapshot task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

func (s *Scheduler) snapshotTask() {
	log.Println("[INFO] running snapshot task")

	res, err := s.Service.ChartData(s.Ctx, "24h")
	if err != nil {
		log.Printf("[ERROR] snapshot fetch: %v", err)
		return
	}
	if len(res.Points) == 0 {
		log.Println("[WARN] snapshot: no points available")
		return
	}
	latest := res.Points[len(res.Points)-1]
	if err := s.Recorder.RecordSnapshot(&recorder.SnapshotEvent{
		Timestamp: latest.Timestamp,
		PriceUSD:  latest.Price,
		Source:    string(res.Source),
	}); err != nil {
		log.Printf("[ERROR] record snapshot: %v", err)
	}

	// Pick up a rotated history file on the next request.
	s.History.Reset()
}
