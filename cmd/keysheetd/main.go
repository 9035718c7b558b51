package main

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

	"enigmasim/internal/relay"
)

const (
	envAddr  = "KEYSHEETD_ADDR"
	envToken = "KEYSHEETD_TOKEN"

	shutdownTimeout = 10 * time.Second
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		addr      string
		token     string
		jsonLogs  bool
		debugLogs bool
	)
	cmd := &cobra.Command{
		Use:          "keysheetd",
		Short:        "Relay for sealed enigma key sheets",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = envOr(envAddr, addr)
			}
			if !cmd.Flags().Changed("token") {
				token = os.Getenv(envToken)
			}

			opts := &slog.HandlerOptions{Level: slog.LevelInfo}
			if debugLogs {
				opts.Level = slog.LevelDebug
			}
			var h slog.Handler = slog.NewTextHandler(cmd.ErrOrStderr(), opts)
			if jsonLogs {
				h = slog.NewJSONHandler(cmd.ErrOrStderr(), opts)
			}
			logger := slog.New(h)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, addr, token, logger)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address ($"+envAddr+")")
	cmd.Flags().StringVar(&token, "token", "", "bearer token required to publish ($"+envToken+")")
	cmd.Flags().BoolVar(&jsonLogs, "json", false, "log as JSON")
	cmd.Flags().BoolVar(&debugLogs, "debug", false, "log at debug level")
	return cmd
}

// serve runs the relay on addr until ctx is cancelled.
func serve(ctx context.Context, addr, token string, logger *slog.Logger) error {
	rs, err := relay.NewServer(token, logger)
	if err != nil {
		return err
	}
	if token == "" {
		logger.Warn("no publish token configured, publishing disabled")
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           rs.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("keysheetd listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
