package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/tcorrea/cartoart/internal/adapters/http/api"
	"github.com/tcorrea/cartoart/internal/adapters/upstream/cartola"
	"github.com/tcorrea/cartoart/internal/adapters/upstream/gatomestre"
	app "github.com/tcorrea/cartoart/internal/app"
	"github.com/tcorrea/cartoart/internal/config"
	"github.com/tcorrea/cartoart/internal/domain/club"
	"github.com/tcorrea/cartoart/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	// Disable default Go metrics collection; the custom registry carries
	// only this service's metrics.
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	clubs := club.Default()
	if cfg.ClubTablePath != "" {
		clubs, err = club.FromFile(cfg.ClubTablePath)
		if err != nil {
			os.Stderr.WriteString("failed to load club table: " + err.Error() + "\n")
			return
		}
	}

	fetchTimeout := time.Duration(cfg.FetchTimeoutMS) * time.Millisecond
	opts := []app.Option{
		app.WithLogger(log),
		app.WithClubResolver(clubs),
		app.WithMarketSource(cartola.NewClient(cfg.MarketURL, cartola.WithTimeout(fetchTimeout))),
		app.WithFallbackSnapshotPath(cfg.FallbackSnapshotPath),
		app.WithRefreshInterval(time.Duration(cfg.RefreshIntervalSeconds) * time.Second),
		app.WithMaxRosterRows(cfg.MaxRosterRows),
	}
	if cfg.ValuationURL != "" {
		opts = append(opts, app.WithValuationSource(
			gatomestre.NewClient(cfg.ValuationURL, cfg.ValuationToken, gatomestre.WithTimeout(fetchTimeout)),
		))
	}

	svc := app.New(opts...)
	if err := svc.Start(ctx); err != nil {
		os.Stderr.WriteString("failed to start service: " + err.Error() + "\n")
		return
	}
	defer svc.Stop()

	// HTTP mux and routes.
	mux := http.NewServeMux()
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

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
			return
		}
	}()

	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
}
