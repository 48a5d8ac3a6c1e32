package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	listTag   string
	listOwner string
	listJSON  bool
)

var listNotesCmd = &cobra.Command{
	Use:   "list-notes",
	Short: "List notes, newest first (GraphQL)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, _, _, err := newClient(true)
		if err != nil {
			return err
		}
		notes, err := c.ListNotes(cmd.Context(), listTag, listOwner)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if listJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(notes)
		}
		if len(notes) == 0 {
			fmt.Fprintln(out, "No notes found")
			return nil
		}
		for _, n := range notes {
			printNoteLine(out, n)
		}
		return nil
	},
}

var getNoteCmd = &cobra.Command{
	Use:   "get-note <id>",
	Short: "Show one note (GraphQL)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, _, _, err := newClient(true)
		if err != nil {
			return err
		}
		n, err := c.GetNote(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printNote(cmd.OutOrStdout(), *n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listNotesCmd, getNoteCmd)
	listNotesCmd.Flags().StringVar(&listTag, "tag", "", "Only notes carrying this tag")
	listNotesCmd.Flags().StringVar(&listOwner, "owner", "", "Only notes owned by this user ID")
	listNotesCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
}
