package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/recopanel/internal/config"
	logpkg "github.com/kailas-cloud/recopanel/internal/logger"
	"github.com/kailas-cloud/recopanel/internal/transport/collaborator"
)

type rootOptions struct {
	env    string
	apiURL string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "recopanel",
		Short:         "Query panel for the SHL assessment recommender",
		SilenceUsage:  true, // don't print usage on operational errors
		SilenceErrors: true, // main prints the error once
		Long: `recopanel sends a job description, role or skill (or a link to a job
posting) to the recommendation service and shows the suggested assessments.`,
	}
	root.PersistentFlags().StringVar(&opts.env, "env", config.GetEnv(), "config environment (local, dev, prod)")
	root.PersistentFlags().StringVar(&opts.apiURL, "api-url", "", "recommendation service address (overrides config)")

	root.AddCommand(
		newServeCmd(opts),
		newTUICmd(opts),
		newAskCmd(opts),
		newHealthCmd(opts),
		newVersionCmd(),
	)
	return root
}

// loadConfig reads the environment config and applies the --api-url override.
func (o *rootOptions) loadConfig() (config.Config, error) {
	cfg, err := config.Load(o.env)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if o.apiURL != "" {
		cfg.Collaborator.BaseURL = strings.TrimRight(o.apiURL, "/")
		if err := cfg.Validate(); err != nil {
			return config.Config{}, fmt.Errorf("invalid --api-url: %w", err)
		}
	}
	return cfg, nil
}

func (o *rootOptions) newLogger(cfg config.Config) (*zap.Logger, error) {
	logger, err := logpkg.NewLogger(o.env, cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return logger, nil
}

func newCollaborator(cfg config.Config, logger *zap.Logger) *collaborator.Client {
	return collaborator.NewClient(&collaborator.Config{
		BaseURL: cfg.Collaborator.BaseURL,
		Timeout: time.Duration(cfg.Collaborator.TimeoutSec) * time.Second,
		Logger:  logger,
	})
}
