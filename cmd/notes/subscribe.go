package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dukerupert/notesync/internal/model"
)

var subscribeCmd = &cobra.Command{
	Use:   "subscribe",
	Short: "Stream realtime note events until interrupted",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, sess, _, err := newClient(true)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Listening for events on %s (Ctrl+C to stop)\n", sess.Server)
		err = c.Subscribe(cmd.Context(), func(ev model.Event) { printEvent(out, ev) })
		if err != nil {
			return err
		}
		slog.Debug("subscription closed")
		fmt.Fprintln(out, "Disconnected")
		return nil
	},
}

func printEvent(w io.Writer, ev model.Event) {
	switch ev.Type {
	case model.EventNoteAdded, model.EventNoteUpdated:
		if ev.Note == nil {
			return
		}
		label := "NEW NOTE"
		if ev.Type == model.EventNoteUpdated {
			label = "UPDATED NOTE"
		}
		fmt.Fprintln(w, label)
		fmt.Fprintf(w, "   %s\n", ev.Note.Title)
		if ev.Note.Owner != nil {
			fmt.Fprintf(w, "   by %s\n", ev.Note.Owner.Username)
		}
		if len(ev.Note.Tags) > 0 {
			fmt.Fprintf(w, "   %s\n", strings.Join(ev.Note.Tags, ", "))
		}
	case model.EventNoteDeleted:
		fmt.Fprintln(w, "DELETED NOTE")
		fmt.Fprintf(w, "   ID: %s\n", ev.ID)
		fmt.Fprintf(w, "   by %s\n", ev.DeletedBy)
	default:
		slog.Debug("unknown event", "type", ev.Type)
		return
	}
	fmt.Fprintln(w)
}

func init() {
	rootCmd.AddCommand(subscribeCmd)
}
