package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agencysite/internal/service"
	"github.com/spf13/cobra"
)

func newCreateAdminCmd(open opener) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin account, or promote an existing one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			email = strings.TrimSpace(email)
			if email == "" || strings.TrimSpace(password) == "" {
				return errors.New("--email and --password are required")
			}
			if len(password) < 6 {
				return errors.New("password must be at least 6 characters")
			}

			gdb, err := open()
			if err != nil {
				return err
			}
			if err := service.NewAuthService(gdb).EnsureAdmin(cmd.Context(), email, password); err != nil {
				return fmt.Errorf("create admin: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "admin account ready: %s\n", strings.ToLower(email))
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "admin email address")
	cmd.Flags().StringVar(&password, "password", "", "admin password (existing accounts keep their password)")
	return cmd
}
