package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dukerupert/notesync/internal/model"
)

var createNoteCmd = &cobra.Command{
	Use:   "create-note <title> <content> [tags...]",
	Short: "Create a note (GraphQL)",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, _, _, err := newClient(true)
		if err != nil {
			return err
		}
		n, err := c.CreateNote(cmd.Context(), noteInput(args))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created note %s\n", n.ID)
		printNote(cmd.OutOrStdout(), *n)
		return nil
	},
}

var createNoteRESTCmd = &cobra.Command{
	Use:   "create-note-rest <title> <content> [tags...]",
	Short: "Create a note (REST)",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, _, _, err := newClient(true)
		if err != nil {
			return err
		}
		n, err := c.CreateNoteREST(cmd.Context(), noteInput(args))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created note %s\n", n.ID)
		printNote(cmd.OutOrStdout(), *n)
		return nil
	},
}

func noteInput(args []string) model.NoteInput {
	return model.NoteInput{Title: args[0], Content: args[1], Tags: args[2:]}
}

func init() {
	rootCmd.AddCommand(createNoteCmd, createNoteRESTCmd)
}
