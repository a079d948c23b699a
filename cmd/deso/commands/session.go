package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func loginCmd() *cobra.Command {
	var accessLevel int

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in through the custody context and store the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			client, err := newClient()
			if err != nil {
				return
			}
			defer client.Close()

			ctx, cancel := interruptible(cmd.Context())
			defer cancel()

			session, err := client.Login(ctx, accessLevel)
			if err != nil {
				return
			}
			fmt.Fprintf(cmd.OutOrStdout(), "logged in as %s\n", session.PublicKey)
			return
		},
	}

	cmd.Flags().IntVar(&accessLevel, "access-level", 0, "requested access level (default 4)")
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out through the custody context and clear the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			client, err := newClient()
			if err != nil {
				return
			}
			defer client.Close()

			ctx, cancel := interruptible(cmd.Context())
			defer cancel()

			if err = client.Logout(ctx); err != nil {
				return
			}
			fmt.Fprintln(cmd.OutOrStdout(), "logged out")
			return
		},
	}
}

func sessionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "session",
		Short: "Print the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			client, err := newClient()
			if err != nil {
				return
			}
			defer client.Close()

			session := client.Bridge().Session()
			if session == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "not logged in")
				return
			}
			fmt.Fprintf(cmd.OutOrStdout(), "public key:  %s\nnetwork:     %s\n", session.PublicKey, session.Network)
			return
		},
	}
}

// sign <hex>: sign an already constructed transaction without submitting.
func signCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sign <unsigned hex>",
		Short: "Have the custody context sign a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			client, err := newClient()
			if err != nil {
				return
			}
			defer client.Close()

			ctx, cancel := interruptible(cmd.Context())
			defer cancel()

			signed, err := client.Bridge().Sign(ctx, args[0])
			if err != nil {
				return
			}
			fmt.Fprintln(cmd.OutOrStdout(), signed)
			return
		},
	}
}
