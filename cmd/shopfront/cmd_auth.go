package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLoginCmd(a *app) *cobra.Command {
	var email, password string

	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate against the backend and cache the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.auth.Login(cmd.Context(), email, password)
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}

			if err := saveSession(a.cfg.StateDir, session{Token: s.Token, User: s.User}); err != nil {
				return fmt.Errorf("failed to cache session: %w", err)
			}

			fmt.Printf("Logged in as %s (%s)\n", s.User.Name, s.User.Role)
			return nil
		},
	}
	loginCmd.Flags().StringVar(&email, "email", "", "account email")
	loginCmd.Flags().StringVar(&password, "password", "", "account password")
	_ = loginCmd.MarkFlagRequired("email")
	_ = loginCmd.MarkFlagRequired("password")

	return loginCmd
}

func newCheckoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "checkout",
		Short: "Submit the cart as an order and clear it",
		RunE: func(cmd *cobra.Command, args []string) error {
			order, err := a.checkout.Submit(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Printf("Order %s created (status %s, total %s)\n", order.ID, order.Status, order.Total)
			return nil
		},
	}
}
