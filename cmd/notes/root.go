package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dukerupert/notesync/internal/client"
	"github.com/dukerupert/notesync/internal/logging"
)

var (
	verbose     bool
	serverURL   string
	sessionPath string
)

var rootCmd = &cobra.Command{
	Use:   "notes",
	Short: "Command line client for a notesync server",
	Long: `notes registers, logs in and manages notes on a notesync server.
Queries go through GraphQL unless the command name says otherwise, and
subscribe streams realtime note events over a websocket.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := "warn"
		if verbose {
			level = "debug"
		}
		logging.Setup(level)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "Server URL (defaults to the saved session or "+client.DefaultServer+")")
	rootCmd.PersistentFlags().StringVar(&sessionPath, "session", "", "Session file (defaults to the user config dir)")
}

func resolveSessionPath() (string, error) {
	if sessionPath != "" {
		return sessionPath, nil
	}
	return client.DefaultSessionPath()
}

func loadSession() (*client.SessionFile, string, error) {
	path, err := resolveSessionPath()
	if err != nil {
		return nil, "", err
	}
	sess, err := client.LoadSession(path)
	if err != nil {
		return nil, "", err
	}
	if serverURL != "" {
		sess.Server = serverURL
	}
	slog.Debug("session loaded", "path", path, "server", sess.Server, "user", sess.Username)
	return sess, path, nil
}

// newClient builds a client from the saved session. Commands that act on
// notes call it with requireLogin set.
func newClient(requireLogin bool) (*client.Client, *client.SessionFile, string, error) {
	sess, path, err := loadSession()
	if err != nil {
		return nil, nil, "", err
	}
	if requireLogin && sess.Token == "" {
		return nil, nil, "", fmt.Errorf("not authenticated, run 'notes login' first")
	}
	return client.New(sess.Server, client.WithToken(sess.Token)), sess, path, nil
}
