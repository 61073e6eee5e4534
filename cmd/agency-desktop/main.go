// Command agency-desktop runs the dashboard server in-process and shows it
// in a native window. Closing the window stops the server.
package main

import (
	"context"
	"os"
	"strings"
	"time"

	webview "github.com/webview/webview_go"

	"agency/internal/app"
	"agency/internal/cli"
	"agency/internal/log"
)

const windowTitle = "AgencyOS | Owner Tracker"

func main() {
	cli.LoadEnvFile()
	cfg, logger := cli.LoadAndValidateConfig(log.ComponentDesktop)

	ctx, cancel := cli.SignalContext(logger)
	defer cancel()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize application", log.FieldError, err)
		os.Exit(1)
	}
	ln, err := a.Listen()
	if err != nil {
		logger.Error("Failed to bind server address", log.FieldError, err)
		os.Exit(1)
	}

	served := make(chan error, 1)
	go func() { served <- a.Serve(ctx, ln) }()

	base := strings.TrimSuffix(cfg.BaseURL(), "/")
	readyCtx, readyCancel := context.WithTimeout(ctx, 15*time.Second)
	err = app.WaitReady(readyCtx, base)
	readyCancel()
	if err != nil {
		logger.Error("Server did not become ready", log.FieldError, err)
		cancel()
		<-served
		os.Exit(1)
	}

	// webview owns the main thread until the window closes.
	w := webview.New(false)
	w.SetTitle(windowTitle)
	w.SetSize(cfg.WindowWidth, cfg.WindowHeight, webview.HintNone)
	w.Navigate(cfg.BaseURL())
	logger.Info("Window opened", "url", cfg.BaseURL())

	closed := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			w.Dispatch(w.Terminate)
		case <-closed:
		}
	}()

	w.Run()
	close(closed)
	w.Destroy()

	logger.Info("Window closed, stopping server", log.FieldOperation, log.OpShutdown)
	cancel()
	if err := <-served; err != nil {
		logger.Error("Server shutdown error", log.FieldError, err)
		os.Exit(1)
	}
}
