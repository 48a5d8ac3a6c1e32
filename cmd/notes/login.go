package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dukerupert/notesync/internal/client"
)

var loginCmd = &cobra.Command{
	Use:   "login <username> <password>",
	Short: "Log in and save the session",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, sess, path, err := newClient(false)
		if err != nil {
			return err
		}
		s, err := c.Login(cmd.Context(), args[0], args[1])
		if err != nil {
			return fmt.Errorf("login: %w", err)
		}
		return saveLogin(cmd, sess, path, s)
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the saved session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveSessionPath()
		if err != nil {
			return err
		}
		if err := client.ClearSession(path); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
		return nil
	},
}

var meCmd = &cobra.Command{
	Use:   "me",
	Short: "Show the logged in user (GraphQL)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, _, _, err := newClient(true)
		if err != nil {
			return err
		}
		u, err := c.Me(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Username: %s\n", u.Username)
		fmt.Fprintf(out, "Email:    %s\n", u.Email)
		fmt.Fprintf(out, "ID:       %s\n", u.ID)
		fmt.Fprintf(out, "Joined:   %s\n", localTime(u.CreatedAt))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd, logoutCmd, meCmd)
}
