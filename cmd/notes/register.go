package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dukerupert/notesync/internal/client"
)

var registerCmd = &cobra.Command{
	Use:   "register <username> <email> <password>",
	Short: "Create an account and save the session",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, sess, path, err := newClient(false)
		if err != nil {
			return err
		}
		s, err := c.Register(cmd.Context(), args[0], args[1], args[2])
		if err != nil {
			return fmt.Errorf("register: %w", err)
		}
		return saveLogin(cmd, sess, path, s)
	},
}

func saveLogin(cmd *cobra.Command, sess *client.SessionFile, path string, s *client.Session) error {
	sess.Token = s.Token
	sess.Username = s.User.Username
	if err := sess.Save(path); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", s.User.Username, s.User.ID)
	return nil
}

func init() {
	rootCmd.AddCommand(registerCmd)
}
