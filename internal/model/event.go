package model

type EventType string

const (
	EventNoteAdded   EventType = "noteAdded"
	EventNoteUpdated EventType = "noteUpdated"
	EventNoteDeleted EventType = "noteDeleted"
)

// Event is an immutable record of a committed note mutation. It is also the
// realtime wire format: noteAdded/noteUpdated carry Note, noteDeleted carries
// ID and DeletedBy.
type Event struct {
	Type      EventType `json:"type"`
	Note      *Note     `json:"note,omitempty"`
	ID        string    `json:"id,omitempty"`
	DeletedBy string    `json:"deletedBy,omitempty"`
}

func NoteAdded(n Note) Event {
	return Event{Type: EventNoteAdded, Note: &n}
}

func NoteUpdated(n Note) Event {
	return Event{Type: EventNoteUpdated, Note: &n}
}

func NoteDeleted(id, deletedBy string) Event {
	return Event{Type: EventNoteDeleted, ID: id, DeletedBy: deletedBy}
}
