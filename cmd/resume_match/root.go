package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/config"
	"github.com/jonathan/resume-matcher/internal/fetch"
	"github.com/jonathan/resume-matcher/internal/llm"
	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/jonathan/resume-matcher/internal/pipeline"
)

// flagKeys maps config keys to the flags that may override them
var flagKeys = map[string]string{
	"log.debug":   "debug",
	"log.json":    "json-logs",
	"port":        "port",
	"model":       "model",
	"use_browser": "browser",
}

type appKey struct{}

// app carries what every subcommand needs once flags are parsed
type app struct {
	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:   "resume_match",
		Short: "Résumé and job matching toolkit",
		Long: `resume_match parses résumés and job postings, scores how well they match,
and cleans up tailored drafts produced by a text generator.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			v := config.NewViper()
			if err := config.BindFlags(v, cmd.Flags(), flagKeys); err != nil {
				return err
			}
			cfg, err := config.Load(v, cfgFile)
			if err != nil {
				return err
			}
			logger, err := observability.NewLogger(cfg.Log.JSON, cfg.Log.Debug)
			if err != nil {
				return fmt.Errorf("creating a logger: %w", err)
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(context.WithValue(ctx, appKey{}, &app{cfg: cfg, logger: logger}))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if a := appFrom(cmd); a != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML, JSON or TOML)")
	root.PersistentFlags().BoolP("debug", "d", false, "verbose/debug logging")
	root.PersistentFlags().Bool("json-logs", false, "JSON format for logging")

	root.AddCommand(
		newParseCmd(),
		newQuickScoreCmd(),
		newScoreCmd(),
		newTailorCmd(),
		newServeCmd(),
		newTokenCmd(),
	)
	return root
}

func appFrom(cmd *cobra.Command) *app {
	if cmd.Context() == nil {
		return nil
	}
	a, _ := cmd.Context().Value(appKey{}).(*app)
	return a
}

// fetcher builds the cached job fetcher from config
func (a *app) fetcher() *fetch.CachedFetcher {
	opts := fetch.DefaultOptions()
	if a.cfg.FetchTimeout > 0 {
		opts.Timeout = a.cfg.FetchTimeout
	}
	opts.UseBrowser = a.cfg.UseBrowser
	return fetch.NewCachedFetcher(fetch.NewClient(opts, a.logger), fetch.DefaultCacheTTL)
}

// pipeline builds a pipeline. With an API key it also wires the generator;
// the returned close func releases the model client.
func (a *app) pipeline(ctx context.Context, opts ...pipeline.Option) (*pipeline.Pipeline, func(), error) {
	base := []pipeline.Option{
		pipeline.WithFetcher(a.fetcher()),
		pipeline.WithBoostOptions(a.cfg.BoostOptions()),
		pipeline.WithLogger(a.logger),
	}
	closeFn := func() {}

	if a.cfg.APIKey != "" {
		llmCfg := a.cfg.LLMConfig()
		client, err := llm.NewGeminiClient(ctx, llmCfg, a.cfg.APIKey)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create model client: %w", err)
		}
		base = append(base, pipeline.WithGenerator(llm.NewDraftGenerator(client, llmCfg)))
		closeFn = func() {
			if err := client.Close(); err != nil {
				a.logger.Warn("failed to close model client", zap.Error(err))
			}
		}
	}

	return pipeline.New(append(base, opts...)...), closeFn, nil
}

// tokenTTL is the default lifetime of issued API tokens
const tokenTTL = 24 * time.Hour
