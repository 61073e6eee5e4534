// Package app assembles the backend and the HTTP server from configuration
// and runs them until the context is cancelled.
package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"agency/internal/backend"
	"agency/internal/config"
	apphttp "agency/internal/http"
	"agency/internal/log"
)

type App struct {
	cfg     *config.Config
	logger  *log.Logger
	backend *backend.Result
	Server  *apphttp.Server
}

func New(ctx context.Context, cfg *config.Config, logger *log.Logger) (*App, error) {
	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("backend config: %w", err)
	}
	res, err := backend.NewFactory(logger).CreateBackend(ctx, bcfg)
	if err != nil {
		return nil, err
	}

	srv, err := apphttp.NewServer(cfg.Addr(), apphttp.Deps{
		Services:  res.Services,
		Analytics: res.Analytics,
		Logger:    logger,
	})
	if err != nil {
		_ = res.Cleanup()
		return nil, fmt.Errorf("create http server: %w", err)
	}
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16

	return &App{cfg: cfg, logger: logger, backend: res, Server: srv}, nil
}

// Listen binds the configured address.
func (a *App) Listen() (net.Listener, error) {
	ln, err := net.Listen("tcp", a.cfg.Addr())
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", a.cfg.Addr(), err)
	}
	return ln, nil
}

// Run listens on the configured address and serves until ctx is done.
func (a *App) Run(ctx context.Context) error {
	ln, err := a.Listen()
	if err != nil {
		_ = a.backend.Cleanup()
		return err
	}
	return a.Serve(ctx, ln)
}

// Serve handles requests on ln until ctx is cancelled or the server fails,
// then shuts down within the configured timeout and releases the backend.
func (a *App) Serve(ctx context.Context, ln net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.Info("Starting agency server", "addr", ln.Addr().String(), log.FieldOperation, log.OpStartup)
		if err := a.Server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
		defer cancel()
		if err := a.Server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	err := g.Wait()
	if cerr := a.backend.Cleanup(); cerr != nil {
		a.logger.Error("Backend cleanup failed", log.FieldError, cerr)
		err = errors.Join(err, cerr)
	}
	if err == nil {
		a.logger.Info("Server stopped gracefully")
	}
	return err
}

// WaitReady polls baseURL/healthz until it answers 200 or ctx is done.
func WaitReady(ctx context.Context, baseURL string) error {
	client := &http.Client{Timeout: time.Second}
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/healthz", nil)
		if err != nil {
			return err
		}
		if resp, err := client.Do(req); err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("server at %s not ready: %w", baseURL, ctx.Err())
		case <-ticker.C:
		}
	}
}
