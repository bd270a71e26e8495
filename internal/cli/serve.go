package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/gyaneshwarpardhi/inspector/internal/api"
	"github.com/gyaneshwarpardhi/inspector/internal/config"
)

var serveAddr string

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "HTTP listen address")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the inspector HTTP API",
	Long:  "Accepts panel events over HTTP, keeps the stream history in memory and\nserves merged entries. The tables file is hot-reloaded on change.",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	loader, eng, err := newEngine(configPath)
	if err != nil {
		return err
	}
	eng.Follow(loader)
	loader.OnChange(func(cfg *config.Config) {
		slog.Info("tables hot-reloaded", "kinds", len(cfg.Tables.Kinds))
	})

	if loader.Path() != "" {
		stopWatch, err := loader.Watch()
		if err != nil {
			slog.Warn("config watcher unavailable (hot-reload disabled)", "err", err)
		} else {
			defer stopWatch()
		}
	} else {
		slog.Info("no config file given, using built-in tables")
	}

	srv := &http.Server{
		Addr:         serveAddr,
		Handler:      api.New(eng, loader),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", serveAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		return err
	case <-quit:
	}
	slog.Info("shutting down…")

	shutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutCtx); err != nil {
		return err
	}
	slog.Info("goodbye")
	return nil
}
