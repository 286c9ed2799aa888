// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal/client/service.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"crmsimples/internal/client/handler"
	"crmsimples/internal/client/metrics"
	"crmsimples/internal/client/service"
	"crmsimples/internal/client/store"
	"crmsimples/internal/platform/config"
	"crmsimples/internal/platform/httpserver"
	"crmsimples/internal/platform/logger"
	"crmsimples/internal/platform/middleware"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "crmsimples: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.FromEnv()
	log := logger.New()

	clientStore, cleanup, err := newStore(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	m := metrics.New()
	svc := service.New(clientStore,
		service.WithLogger(log),
		service.WithMetrics(m),
	)
	h := handler.New(svc, log)

	router := chi.NewRouter()
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.RequestID)
	router.Use(middleware.RequestTime)
	h.Register(router)
	router.Method(http.MethodGet, "/metrics", promhttp.Handler())
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	srv := httpserver.New(cfg.Addr, router)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("starting crmsimples", "addr", cfg.Addr, "store", cfg.StoreBackend)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("crmsimples stopped")
	return nil
}

// newStore selects the persistence backend. The in-memory store is the
// default for local development; production runs against Postgres.
func newStore(cfg config.Server) (service.ClientStore, func(), error) {
	switch cfg.StoreBackend {
	case config.StoreMemory:
		return store.NewInMemory(), func() {}, nil
	case config.StorePostgres:
		if cfg.DatabaseURL == "" {
			return nil, nil, fmt.Errorf("DATABASE_URL is required when CRM_STORE=postgres")
		}
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("open database: %w", err)
		}
		if err := db.Ping(); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("ping database: %w", err)
		}
		return store.NewPostgres(db), func() { _ = db.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown CRM_STORE %q", cfg.StoreBackend)
	}
}
