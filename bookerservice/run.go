// Package bookerservice boots the booking-game HTTP service.
package bookerservice

import (
	"context"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/kayfabe/kayfabe-booker/internal/api"
	"github.com/kayfabe/kayfabe-booker/internal/config"
	"github.com/kayfabe/kayfabe-booker/internal/docstore"
	"github.com/kayfabe/kayfabe-booker/internal/factory"
	"github.com/kayfabe/kayfabe-booker/internal/logger"
	"github.com/kayfabe/kayfabe-booker/internal/narrative"
	"github.com/kayfabe/kayfabe-booker/internal/seed"
	"github.com/kayfabe/kayfabe-booker/internal/session"
)

// Run starts the booker service HTTP server and blocks until shutdown or error.
func Run() error {
	log := logger.New("booker-service")

	cfg, err := config.New()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		return err
	}

	log.Info().
		Str("db_driver", cfg.DBDriver).
		Int("http_port", cfg.HTTPPort).
		Bool("narrative_enabled", cfg.NarrativeEnabled).
		Str("narrative_model", cfg.NarrativeModel).
		Msg("Booker service starting")

	// Cancellable root context bound to SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := factory.NewStore(cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("Document store unavailable")
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.HealthPing(ctx); err != nil {
		log.Error().Err(err).Msg("Document store not healthy at startup")
		return err
	}

	if err := seedOnStartup(ctx, store, log); err != nil {
		return err
	}

	gen := newGenerator(cfg, log)
	mgr := session.NewManager(store, gen, cfg, log)
	router := api.NewRouter(store, mgr)

	server := &http.Server{
		Addr:              cfg.GetHTTPAddr(),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.HTTPPort).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down server")
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctxShutdown); err != nil {
			log.Error().Err(err).Msg("Server forced to shutdown")
			return err
		}
		log.Info().Msg("Server exited")
		return nil
	case err := <-errCh:
		log.Error().Err(err).Msg("HTTP server failed")
		return err
	}
}

// seedOnStartup makes sure the built-in template dataset exists so a fresh
// install can start a game immediately.
func seedOnStartup(ctx context.Context, store docstore.Store, log zerolog.Logger) error {
	seeded, err := seed.EnsureDefaultDataset(ctx, store)
	if err != nil {
		log.Error().Err(err).Msg("Default dataset seeding failed")
		return err
	}
	if seeded {
		log.Info().Str("dataset_id", seed.DefaultDatasetID).Msg("Default dataset seeded")
	}
	return nil
}

// newGenerator picks the narrative backend. Without a key (or when disabled)
// every caller degrades to its fallback text.
func newGenerator(cfg *config.Config, log zerolog.Logger) narrative.Generator {
	if !cfg.NarrativeEnabled || cfg.NarrativeAPIKey == "" {
		log.Info().Msg("Narrative generation disabled; using fallback text")
		return narrative.Disabled{}
	}
	return narrative.NewClient(cfg.NarrativeURL, cfg.NarrativeModel, cfg.NarrativeAPIKey)
}
