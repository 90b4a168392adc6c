package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coachdesk/ascend/internal/adapters/http/api"
	"github.com/coachdesk/ascend/internal/adapters/repository"
	"github.com/coachdesk/ascend/internal/adapters/repository/postgres"
	app "github.com/coachdesk/ascend/internal/app"
	"github.com/coachdesk/ascend/internal/config"
	"github.com/coachdesk/ascend/internal/domain/rank"
	"github.com/coachdesk/ascend/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout            = 10 * time.Second
	writeTimeout           = 10 * time.Second
	idleTimeout            = 60 * time.Second
	readHeaderTimeout      = 5 * time.Second
	shutdownTimeout        = 30 * time.Second
	serviceMetricsInterval = 5 * time.Second
)

func main() {
	// Initialize logging
	if err := logger.Init(); err != nil {
		// Use stderr for initialization errors since logger isn't available yet
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}

	loggerInstance := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	// Rank hierarchy: built-in unless a YAML override is configured.
	tableOpts := []rank.Option{}
	if cfg.RankTablePath != "" {
		ranks, err := config.LoadRankTable(ctx, cfg.RankTablePath)
		if err != nil {
			os.Stderr.WriteString("failed to load rank table: " + err.Error() + "\n")
			return
		}
		loggerInstance.Info(ctx, "loaded rank table override",
			logger.String("path", cfg.RankTablePath), logger.Int("ranks", len(ranks)))
		tableOpts = append(tableOpts, rank.WithRanks(ranks))
	}
	table := rank.NewTable(tableOpts...)

	// Record store: in-memory by default, postgres when configured.
	var store repository.Store
	switch cfg.StoreBackend {
	case "postgres":
		pg, err := postgres.New(ctx, cfg.PostgresDSN)
		if err != nil {
			os.Stderr.WriteString("failed to connect to postgres: " + err.Error() + "\n")
			return
		}
		defer pg.Close()
		store = pg
	default:
		store = repository.NewMemStore()
	}
	loggerInstance.Info(ctx, "record store ready", logger.String("backend", cfg.StoreBackend))

	// Create and start the service with configuration options
	svc := app.New(
		app.WithLogger(loggerInstance),
		app.WithStore(store),
		app.WithRankTable(table),
		app.WithClientsPerPoint(cfg.ClientsPerPoint),
		app.WithMaxActivityLimit(cfg.MaxActivityLimit),
		app.WithDedupeSize(cfg.DedupeSize),
	)
	if err := svc.Start(ctx); err != nil {
		os.Stderr.WriteString("failed to start service: " + err.Error() + "\n")
		return
	}
	defer svc.Stop()

	// Start service metrics updater
	go startServiceMetricsUpdater(ctx, svc)

	// HTTP mux and routes.
	mux := http.NewServeMux()

	// Register business API routes with the service dependency.
	apiServer := api.NewServer(svc, svc)
	apiServer.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	// Start the HTTP server
	go func() {
		loggerInstance.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
			return
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	loggerInstance.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		loggerInstance.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	loggerInstance.Info(ctx, "server stopped")
}

// startServiceMetricsUpdater refreshes service-level gauges on a timer.
// GetStats pushes the tracked-record total into the metrics manager as a
// side effect, so a periodic call keeps the gauge honest between writes.
func startServiceMetricsUpdater(ctx context.Context, svc *app.Service) {
	ticker := time.NewTicker(serviceMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = svc.GetStats()
		}
	}
}
