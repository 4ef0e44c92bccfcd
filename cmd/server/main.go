// Package main is the entry point for the stockdash API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stockdash/internal/config"
	"stockdash/internal/core/role"
	"stockdash/internal/domain/audit"
	"stockdash/internal/domain/inventory"
	v1 "stockdash/internal/infrastructure/http/v1"
	"stockdash/internal/infrastructure/upstream"
	"stockdash/pkg/logger"
)

const version = "1.0.0"

func main() {
	cfg := config.Load()

	// Initialize logger
	log, err := logger.New(logger.Config{
		Level:       cfg.Logger.Level,
		Development: cfg.Logger.Development,
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()
	rootCtx = logger.WithLogger(rootCtx, log)

	log.Info("starting stockdash server")

	// --- Core state ---
	inv := inventory.NewService()
	roleStore := role.NewStore()
	health := &upstream.Health{}

	trail, err := audit.NewTrail(cfg.Audit.MaxEntries)
	if err != nil {
		log.Fatalw("failed to initialize audit trail", "error", err)
	}

	// Losing admin rights must close any open edit draft.
	roleStore.OnChange(func(r role.Role) {
		if !role.CanMutate(r) {
			inv.DiscardDraftIfAny(rootCtx)
		}
	})

	// --- Upstream client and refresher ---
	client := upstream.New(upstream.Config{
		BaseURL:        cfg.Upstream.URL,
		MaxRetries:     cfg.Upstream.MaxRetries,
		InitialDelay:   cfg.Upstream.InitialDelay,
		MaxDelay:       cfg.Upstream.MaxDelay,
		JitterFraction: cfg.Upstream.JitterFraction,
		RequestTimeout: cfg.Upstream.RequestTimeout,
	})
	refresher := upstream.NewRefresher(client, inv, health, cfg.Upstream.RefreshInterval)

	// Initial load in the background so the server can come up and report
	// readiness honestly. A failed initial fetch leaves an empty snapshot
	// and a visible error - degraded, not dead.
	go func() {
		if err := refresher.RefreshOnce(rootCtx); err != nil {
			log.Warnw("initial fetch failed", "error", err)
		}
	}()

	// Periodic refresh (disabled unless configured)
	go refresher.Run(rootCtx)

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Logger:    log,
		RoleStore: roleStore,
		Inventory: inv,
		Refresher: refresher,
		Health:    health,
		Trail:     trail,
		Version:   version,
	})

	// --- HTTP Server ---
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Infow("server starting", "port", cfg.Server.Port, "upstream", cfg.Upstream.URL)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")
	stop() // cancels any in-flight fetch retry wait

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}
