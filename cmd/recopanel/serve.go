package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/recopanel/internal/config"
	"github.com/kailas-cloud/recopanel/internal/metrics"
	chiTransport "github.com/kailas-cloud/recopanel/internal/transport/chi"
	"github.com/kailas-cloud/recopanel/internal/version"
	healthuc "github.com/kailas-cloud/recopanel/internal/usecase/health"
	"github.com/kailas-cloud/recopanel/internal/usecase/recommend"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the query panel over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if port != 0 {
				cfg.HTTP.Port = port
			}
			logger, err := opts.newLogger(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			return serve(cmd.Context(), cfg, opts.env, logger)
		},
	}
	cmd.Flags().IntVar(&port, "port", 0, "listen port (overrides config)")
	return cmd
}

func serve(ctx context.Context, cfg config.Config, env string, logger *zap.Logger) error {
	collab := newCollaborator(cfg, logger)

	logger.Info("Starting recopanel web server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("api_url", collab.BaseURL()),
	)

	// Register collaborator and panel metrics explicitly (no init())
	metrics.RegisterCollaboratorMetrics()

	recommendSvc := recommend.New(collab, logger)
	healthSvc := healthuc.New(collab, logger)

	server := chiTransport.NewServer(recommendSvc, healthSvc, chiTransport.Page{
		Title:       cfg.UI.Title,
		Heading:     cfg.UI.Heading,
		Tagline:     cfg.UI.Tagline,
		Placeholder: cfg.UI.Placeholder,
	}, logger)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      chiTransport.NewRouter(server, logger),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
		logger.Info("Received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("Server stopped gracefully")
	return nil
}
