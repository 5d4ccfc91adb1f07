package main

import (
	"context"
	goerrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"messenger/domain"
	"messenger/infrastructure/http/client"
	"messenger/internal"
	"messenger/observability"
	"messenger/repositories"
	"messenger/runtime"
	"messenger/runtime/workers"
	"messenger/services"

	"github.com/dgraph-io/badger/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// app holds every long lived component of one command invocation.
type app struct {
	log           *slog.Logger
	db            *badger.DB
	orchestrator  *runtime.Orchestrator
	service       *services.ChatService
	drafts        repositories.DraftRepository
	userID        domain.UserID
	metricsServer *http.Server
}

func newApp(ctx context.Context, config internal.Config, logger *slog.Logger) (*app, error) {
	opts, err := config.Options()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errConfig, err)
	}
	moderator, err := config.Moderator()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errConfig, err)
	}

	registry := prometheus.NewRegistry()
	metrics := observability.NewMetrics(registry)

	api, err := client.NewMessengerClient(config.APIURL, config.HTTPTimeout, logger, metrics)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errConfig, err)
	}

	db, err := repositories.OpenDraftDB(config.BadgerFilepath)
	if err != nil {
		return nil, fmt.Errorf("database opening failed: %w", err)
	}
	drafts := repositories.NewDraftRepository(db, logger)

	supervisor := workers.NewSupervisor(logger)
	orchestrator := runtime.NewOrchestrator(logger, api, drafts, metrics, supervisor, runtime.NewRegistry(), opts)
	orchestrator.Start(ctx)

	a := &app{
		log:          logger,
		db:           db,
		orchestrator: orchestrator,
		service:      services.NewChatService(orchestrator, moderator, opts.UserID),
		drafts:       drafts,
		userID:       opts.UserID,
	}
	if config.MetricsAddr != "" {
		a.serveMetrics(config.MetricsAddr, registry)
	}
	return a, nil
}

func (a *app) serveMetrics(addr string, registry *prometheus.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	a.metricsServer = &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		a.log.Info("Serving metrics", "address", addr)
		if err := a.metricsServer.ListenAndServe(); err != nil && !goerrors.Is(err, http.ErrServerClosed) {
			a.log.Error("Metrics server failed", "error", err)
		}
	}()
}

// Close stops background tasks before releasing the draft store.
func (a *app) Close() {
	a.orchestrator.Stop()
	if a.metricsServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = a.metricsServer.Shutdown(ctx)
	}
	a.log.Info("Closing BadgerDB...")
	_ = a.db.Close()
}
