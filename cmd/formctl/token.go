package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/sujay090/Dynamic-form-sub001/internal/auth"
)

func newTokenCmd(e *env) *cobra.Command {
	var (
		subject string
		role    string
		ttl     time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Sign a bearer token with the configured secret",
		Long: "Sign a bearer token with the configured secret. Meant for local " +
			"development; deployed tokens come from the identity service.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := e.config()
			if err != nil {
				return err
			}
			id := uuid.New()
			if subject != "" {
				if id, err = uuid.Parse(subject); err != nil {
					return fmt.Errorf("invalid --subject: %w", err)
				}
			}
			if role == "" {
				role = cfg.Auth.AdminRole
			}
			token, err := auth.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer).Issue(id, role, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "", "user id (random when empty)")
	cmd.Flags().StringVar(&role, "role", "", "role claim (defaults to the admin role)")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	return cmd
}
