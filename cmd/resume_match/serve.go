package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/server"
	"github.com/jonathan/resume-matcher/internal/server/ratelimit"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		Long:  `Start an HTTP server that exposes the parsing, scoring and tailoring endpoints.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := appFrom(cmd)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			p, closeFn, err := a.pipeline(ctx)
			if err != nil {
				return err
			}
			defer closeFn()

			jwtCfg, err := a.cfg.JWT()
			if err != nil {
				return err
			}
			if jwtCfg == nil {
				a.logger.Warn("jwt_secret is not set; tailoring endpoints are unauthenticated")
			}

			rl := a.cfg.RateLimit
			limits := ratelimit.NewConfig(rl.RequestsPerMinute, rl.Burst, rl.Whitelist)

			srv := server.New(server.Config{
				Port:      a.cfg.Port,
				Pipeline:  p,
				RateLimit: limits,
				JWT:       jwtCfg,
				Logger:    a.logger,
			})
			return srv.Start(ctx)
		},
	}

	cmd.Flags().Int("port", 0, "Port to listen on (default 8080)")
	cmd.Flags().String("model", "", "Model used for draft generation")
	cmd.Flags().Bool("browser", false, "Render script-heavy job pages with a headless browser")
	return cmd
}
