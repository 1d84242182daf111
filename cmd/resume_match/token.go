package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/server"
)

func newTokenCmd() *cobra.Command {
	var (
		subject string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for the tailoring endpoints",
		RunE: func(cmd *cobra.Command, _ []string) error {
			jwtCfg, err := appFrom(cmd).cfg.JWT()
			if err != nil {
				return err
			}
			if jwtCfg == nil {
				return fmt.Errorf("jwt_secret is not configured")
			}

			token, err := server.NewJWTVerifier(jwtCfg).IssueToken(subject, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "Token subject (client or user name)")
	cmd.Flags().DurationVar(&ttl, "ttl", tokenTTL, "Token lifetime")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}
