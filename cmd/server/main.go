package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jouni12787/gold-live-calculator/internal/chart"
	"github.com/jouni12787/gold-live-calculator/internal/collector"
	"github.com/jouni12787/gold-live-calculator/internal/config"
	"github.com/jouni12787/gold-live-calculator/internal/history"
	"github.com/jouni12787/gold-live-calculator/internal/recorder"
	"github.com/jouni12787/gold-live-calculator/internal/scheduler"
	"github.com/jouni12787/gold-live-calculator/internal/server"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] gold-live-calculator starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init history loader
	loader := history.NewLoader(cfg.History.File)

	// Init real-time fetcher
	var fetcher collector.Fetcher
	if cfg.DataSource.Endpoint != "" {
		fetcher = collector.NewRealTimeFetcher(cfg.DataSource.Endpoint, cfg.Proxy)
		log.Printf("[INFO] real-time source: %s", fetcher.Name())
	} else {
		log.Println("[INFO] no real-time endpoint configured, serving from cache only")
	}

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	svc := chart.NewService(loader, fetcher)

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Optional snapshot scheduler
	if cfg.Schedule.SnapshotCron != "" {
		sched := scheduler.NewScheduler(ctx, svc, loader, rec)
		if err := sched.Register(cfg.Schedule.SnapshotCron); err != nil {
			log.Fatalf("[FATAL] register snapshot task: %v", err)
		}
		sched.Start()
		defer sched.Stop()
	}

	// Start HTTP server
	srv := server.NewServer(cfg.Server.Port, cfg.Server.StaticDir, svc, rec)
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	log.Println("[INFO] gold-live-calculator is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
		log.Println("[INFO] shutdown signal received, stopping...")
	case err := <-errCh:
		log.Printf("[ERROR] http server: %v", err)
	}
	cancel()

	if err := srv.Shutdown(context.Background()); err != nil {
		log.Printf("[ERROR] shutdown: %v", err)
	}
	log.Println("[INFO] gold-live-calculator stopped")
}
