package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/numbernexus/internal/config"
	"github.com/abhisek/numbernexus/internal/handler"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the JSON API and Prometheus metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx)
	},
}

func init() {
	f := serveCmd.Flags()
	f.String(config.KeyAddr, ":8080", "Listen address")
	f.StringSlice(config.KeyCORSOrigins, []string{"*"}, "Allowed CORS origins")
	f.Int(config.KeyRateLimit, 120, "Requests per window and client IP (0 disables)")
	f.Duration(config.KeyRateWindow, time.Minute, "Rate limit window")
	bindFlags(f, config.KeyAddr, config.KeyCORSOrigins, config.KeyRateLimit, config.KeyRateWindow)
}

func serve(ctx context.Context) error {
	rt, err := openRuntime(nil)
	if err != nil {
		return err
	}
	defer rt.Close()

	h, err := handler.New(handler.Deps{
		Store:     rt.store,
		Stats:     rt.stats,
		Dashboard: rt.dashboard,
		Generator: rt.generator,
		Hints:     rt.hints,
		Metrics:   rt.metrics,
		Logger:    rt.logger,
		Version:   version,
	})
	if err != nil {
		return fmt.Errorf("build handler: %w", err)
	}

	srv := &http.Server{
		Addr: cfg.Addr,
		Handler: h.Router(handler.RouterConfig{
			CORSOrigins: cfg.CORSOrigins,
			RateLimit:   cfg.RateLimit,
			RateWindow:  cfg.RateWindow,
			Translator:  rt.translator,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		rt.logger.Info("listening", zap.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	rt.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}
