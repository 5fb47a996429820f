// Package plannerservice boots the planner HTTP service.
package plannerservice

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/grupo-nexus/planner/internal/api"
	"github.com/grupo-nexus/planner/internal/auth"
	"github.com/grupo-nexus/planner/internal/config"
	"github.com/grupo-nexus/planner/internal/directory"
	"github.com/grupo-nexus/planner/internal/factory"
	"github.com/grupo-nexus/planner/internal/logger"
	"github.com/grupo-nexus/planner/internal/store"
)

// Run starts the planner HTTP server and blocks until shutdown or error.
func Run() error {
	log := logger.New("planner-service")

	cfg, err := config.New()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		return err
	}

	log.Info().
		Str("environment", string(cfg.Environment)).
		Str("db_driver", cfg.DBDriver).
		Int("http_port", cfg.HTTPPort).
		Msg("Planner service starting")

	// Root context cancelled on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, dir, err := initDependencies(ctx, cfg, log)
	if err != nil {
		return err
	}

	authorizer := auth.NewSessionAuthorizer(
		st,
		time.Duration(cfg.SessionTTLMinutes)*time.Minute,
		cfg.LoginMaxFailures,
		time.Duration(cfg.LoginWindowMinutes)*time.Minute,
	)

	router := api.NewRouter(st, dir, authorizer)
	server := newHTTPServer(ctx, cfg, router)
	errCh := serveHTTP(server, log, cfg)

	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down server")
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctxShutdown); err != nil {
			log.Error().Stack().Err(err).Msg("Server forced to shutdown")
			return err
		}
		log.Info().Msg("Server exited")
		return nil
	case err := <-errCh:
		log.Error().Stack().Err(err).Msg("HTTP server failed")
		return err
	}
}

// initDependencies constructs the store and directory, failing fast when either
// is unavailable.
func initDependencies(ctx context.Context, cfg *config.Config, log zerolog.Logger) (store.Store, *directory.Directory, error) {
	st, err := factory.NewStore(ctx, cfg, log)
	if err != nil {
		log.Error().Stack().Err(err).Msg("Store adapter unavailable")
		return nil, nil, err
	}

	dir := directory.Default()
	if cfg.DirectoryPath != "" {
		dir, err = directory.LoadFile(cfg.DirectoryPath)
		if err != nil {
			log.Error().Stack().Err(err).Str("path", cfg.DirectoryPath).Msg("Failed to load directory file")
			return nil, nil, err
		}
		log.Info().Str("path", cfg.DirectoryPath).Msg("Loaded directory file")
	}
	return st, dir, nil
}

func newHTTPServer(ctx context.Context, cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
}

func serveHTTP(server *http.Server, log zerolog.Logger, cfg *config.Config) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.HTTPPort).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()
	return errCh
}
