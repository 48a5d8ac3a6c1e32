package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dukerupert/notesync/internal/client"
)

const stamp = "2006-01-02 15:04:05"

func printNoteLine(w io.Writer, n client.Note) {
	owner := ""
	if n.Owner != nil {
		owner = n.Owner.Username
	}
	fmt.Fprintf(w, "%s  %s", n.ID, n.Title)
	if owner != "" {
		fmt.Fprintf(w, "  by %s", owner)
	}
	if len(n.Tags) > 0 {
		fmt.Fprintf(w, "  [%s]", strings.Join(n.Tags, ", "))
	}
	fmt.Fprintln(w)
}

func printNote(w io.Writer, n client.Note) {
	fmt.Fprintln(w, n.Title)
	fmt.Fprintln(w, strings.Repeat("-", 60))
	fmt.Fprintln(w, n.Content)
	fmt.Fprintln(w, strings.Repeat("-", 60))
	if len(n.Tags) > 0 {
		fmt.Fprintf(w, "Tags:    %s\n", strings.Join(n.Tags, ", "))
	}
	if n.Owner != nil {
		if n.Owner.Email != "" {
			fmt.Fprintf(w, "Owner:   %s (%s)\n", n.Owner.Username, n.Owner.Email)
		} else {
			fmt.Fprintf(w, "Owner:   %s\n", n.Owner.Username)
		}
	}
	fmt.Fprintf(w, "Created: %s\n", localTime(n.CreatedAt))
	fmt.Fprintf(w, "Updated: %s\n", localTime(n.UpdatedAt))
	fmt.Fprintf(w, "ID:      %s\n", n.ID)
}

func localTime(t time.Time) string {
	return t.Local().Format(stamp)
}
