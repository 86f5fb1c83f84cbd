package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/guttosm/epq-service/internal/middleware"
)

func newTokenCmd() *cobra.Command {
	var subject, scopes string
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for the HTTP API",
		Long: `Signs an HS256 bearer token with JWT_SECRET_KEY. Scopes are a
comma-separated subset of "optimize" and "history:read".`,
		Example: `  JWT_SECRET_KEY=... epqctl token --subject planner --scopes optimize --ttl 24h`,
		RunE: func(cmd *cobra.Command, args []string) error {
			secret := os.Getenv("JWT_SECRET_KEY")
			if secret == "" {
				return errors.New("JWT_SECRET_KEY is not set")
			}

			var granted []string
			for _, s := range strings.Split(scopes, ",") {
				if s = strings.TrimSpace(s); s != "" {
					granted = append(granted, s)
				}
			}

			token, err := middleware.IssueToken([]byte(secret), subject, granted, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "Token subject recorded in audit logs")
	cmd.Flags().StringVar(&scopes, "scopes", strings.Join(middleware.AllScopes, ","), "Comma-separated scopes")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "Token lifetime, 0 for no expiry")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}
