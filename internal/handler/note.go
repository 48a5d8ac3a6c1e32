package handler

import (
	"log/slog"
	"net/http"

	"github.com/dukerupert/notesync/internal/auth"
	"github.com/dukerupert/notesync/internal/model"
	"github.com/dukerupert/notesync/internal/notes"
)

type NoteHandler struct {
	notes  *notes.Service
	logger *slog.Logger
}

func NewNoteHandler(ns *notes.Service, logger *slog.Logger) *NoteHandler {
	return &NoteHandler{notes: ns, logger: logger}
}

func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, err := auth.CallerFrom(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	var req model.NoteInput
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	note, err := h.notes.CreateNote(r.Context(), caller, req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, note)
}

func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	caller, err := auth.CallerFrom(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	q := r.URL.Query()
	list, err := h.notes.ListNotes(r.Context(), caller, model.NoteFilter{
		Tag:     q.Get("tag"),
		OwnerID: q.Get("owner"),
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *NoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	caller, err := auth.CallerFrom(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	note, err := h.notes.GetNote(r.Context(), caller, r.PathValue("id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, note)
}

func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller, err := auth.CallerFrom(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	var patch model.NotePatch
	if err := decodeJSON(r, &patch); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	note, err := h.notes.UpdateNote(r.Context(), caller, r.PathValue("id"), patch)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, note)
}

func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, err := auth.CallerFrom(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := h.notes.DeleteNote(r.Context(), caller, r.PathValue("id")); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
