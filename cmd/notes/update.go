package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dukerupert/notesync/internal/model"
)

var (
	updateTitle   string
	updateContent string
	updateTags    []string
)

var updateNoteCmd = &cobra.Command{
	Use:   "update-note <id>",
	Short: "Update a note you own (GraphQL)",
	Long: `Update the title, content or tags of a note you own. Only the flags
you pass are changed; --tags replaces the whole tag list.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var patch model.NotePatch
		flags := cmd.Flags()
		if flags.Changed("title") {
			patch.Title = &updateTitle
		}
		if flags.Changed("content") {
			patch.Content = &updateContent
		}
		if flags.Changed("tags") {
			tags := append([]string{}, updateTags...)
			patch.Tags = &tags
		}
		if patch.Title == nil && patch.Content == nil && patch.Tags == nil {
			return errors.New("nothing to update, pass --title, --content or --tags")
		}

		c, _, _, err := newClient(true)
		if err != nil {
			return err
		}
		n, err := c.UpdateNote(cmd.Context(), args[0], patch)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated note %s at %s\n", n.ID, localTime(n.UpdatedAt))
		return nil
	},
}

var deleteNoteCmd = &cobra.Command{
	Use:   "delete-note <id>",
	Short: "Delete a note you own (GraphQL)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, _, _, err := newClient(true)
		if err != nil {
			return err
		}
		if err := c.DeleteNote(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted note %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(updateNoteCmd, deleteNoteCmd)
	updateNoteCmd.Flags().StringVarP(&updateTitle, "title", "t", "", "New title")
	updateNoteCmd.Flags().StringVarP(&updateContent, "content", "c", "", "New content")
	updateNoteCmd.Flags().StringSliceVar(&updateTags, "tags", nil, "New tags, comma separated")
}
