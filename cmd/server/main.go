package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/johnboisvert/tradingview-sub001/internal/config"
	httpdelivery "github.com/johnboisvert/tradingview-sub001/internal/delivery/http"
	"github.com/johnboisvert/tradingview-sub001/internal/delivery/websocket"
	"github.com/johnboisvert/tradingview-sub001/internal/domain"
	"github.com/johnboisvert/tradingview-sub001/internal/infrastructure/binance"
	"github.com/johnboisvert/tradingview-sub001/internal/infrastructure/db"
	"github.com/johnboisvert/tradingview-sub001/internal/infrastructure/fcm"
	"github.com/johnboisvert/tradingview-sub001/internal/infrastructure/gecko"
	"github.com/johnboisvert/tradingview-sub001/internal/metrics"
	"github.com/johnboisvert/tradingview-sub001/internal/repository"
	"github.com/johnboisvert/tradingview-sub001/internal/scheduler"
	"github.com/johnboisvert/tradingview-sub001/internal/usecase"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("[ERROR] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[ERROR] invalid config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Repositories
	repo := repository.NewInMemoryAnalysisRepository()
	tokenRepo := repository.NewTokenRepository()

	var setups domain.SetupRepository
	var history httpdelivery.SetupHistory
	if cfg.Database.URL != "" {
		pool, err := db.NewPool(ctx, cfg.Database.URL, cfg.Database.Pool)
		if err != nil {
			log.Fatalf("[ERROR] connect database: %v", err)
		}
		defer pool.Close()
		if err := db.Migrate(ctx, pool); err != nil {
			log.Fatalf("[ERROR] migrate database: %v", err)
		}
		setupRepo := repository.NewPostgresSetupRepository(pool)
		setups = setupRepo
		history = setupRepo
		log.Println("[INFO] setup persistence enabled")
	} else {
		log.Println("[INFO] no DATABASE_URL, setup persistence disabled")
	}

	// Market data sources
	candles := binance.NewClient(cfg.Sources.BinanceBaseURL)
	listings := gecko.NewClient(cfg.Sources.GeckoBaseURL, cfg.Sources.GeckoAPIKey)

	// Alerts
	fcmClient, err := fcm.NewClient()
	if err != nil {
		log.Printf("[ERROR] init FCM: %v", err)
		fcmClient = nil
	}
	alerts := usecase.NewAlertService(fcmClient, tokenRepo, cfg.Alerts.WebhookURL, cfg.Analysis.AlertCooldown)

	// Analysis pipeline
	loader := usecase.NewBatchLoader(candles, repo, usecase.LoaderConfig{
		BatchSize:   cfg.Analysis.BatchSize,
		BatchDelay:  cfg.BatchDelay(),
		CandleLimit: cfg.Analysis.CandleLimit,
		Timeframes: usecase.Timeframes{
			Short:  cfg.Analysis.ShortTF,
			Medium: cfg.Analysis.MediumTF,
			Long:   cfg.Analysis.LongTF,
		},
	})
	analyzer := usecase.NewAnalyzer(repo, listings, loader, alerts, setups, usecase.AnalyzerConfig{
		MaxEntities:   cfg.Analysis.MaxEntities,
		MinAlertScore: cfg.Analysis.MinAlertScore,
	})

	sched := scheduler.NewScheduler(ctx, analyzer)
	if err := sched.Register(cfg.Analysis.RefreshSpec); err != nil {
		log.Fatalf("[ERROR] register scheduler: %v", err)
	}
	sched.Start()
	defer sched.Stop()
	sched.TriggerNow()

	// Delivery
	analysisHandler := httpdelivery.NewAnalysisHandler(repo)
	tokenHandler := httpdelivery.NewTokenHandler(tokenRepo)
	setupHandler := httpdelivery.NewSetupHandler(history)
	wsHandler := websocket.NewHandler(repo)

	http.HandleFunc("/api/analysis", analysisHandler.HandleList)
	http.HandleFunc("/api/analysis/", analysisHandler.HandleDetail)
	http.HandleFunc("/api/setups", setupHandler.HandleRecent)
	http.HandleFunc("/api/tokens/register", tokenHandler.HandleRegisterToken)
	http.HandleFunc("/api/tokens/unregister", tokenHandler.HandleUnregisterToken)
	http.HandleFunc("/health", analysisHandler.HandleHealth)
	http.Handle("/metrics", metrics.Handler())
	http.HandleFunc("/ws", wsHandler.Handle)

	server := &http.Server{Addr: cfg.Server.Addr}
	go func() {
		<-ctx.Done()
		server.Shutdown(context.Background())
	}()

	log.Printf("[INFO] server listening on %s", cfg.Server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
