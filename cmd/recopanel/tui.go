package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	logpkg "github.com/kailas-cloud/recopanel/internal/logger"
	"github.com/kailas-cloud/recopanel/internal/tui"
	"github.com/kailas-cloud/recopanel/internal/usecase/recommend"
)

func newTUICmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the query panel in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			// The terminal belongs to the panel; diagnostics go to the log file.
			logger, err := logpkg.NewFileLogger(opts.env, cfg.Logging.File, cfg.Logging.Level)
			if err != nil {
				return fmt.Errorf("create logger: %w", err)
			}
			defer func() { _ = logger.Sync() }()

			collab := newCollaborator(cfg, logger)
			logger.Info("Starting terminal panel", zap.String("api_url", collab.BaseURL()))

			svc := recommend.New(collab, logger)
			return tui.Run(cmd.Context(), svc, tui.Page{
				Title:       cfg.UI.Title,
				Heading:     cfg.UI.Heading,
				Tagline:     cfg.UI.Tagline,
				Placeholder: cfg.UI.Placeholder,
			}, tui.WithLogger(logger))
		},
	}
}
