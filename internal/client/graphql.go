package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dukerupert/notesync/internal/model"
)

const noteFields = `id title content tags createdAt updatedAt owner { id username email }`

type gqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type gqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func (c *Client) graphql(ctx context.Context, query string, vars map[string]any, out any) error {
	b, err := json.Marshal(gqlRequest{Query: query, Variables: vars})
	if err != nil {
		return fmt.Errorf("encode query: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/graphql", bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("graphql: %w", err)
	}
	defer resp.Body.Close()

	var gr gqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		if resp.StatusCode >= 300 {
			return &APIError{Status: resp.StatusCode}
		}
		return fmt.Errorf("decode graphql response: %w", err)
	}
	if len(gr.Errors) > 0 {
		ge := &GraphQLError{}
		for _, e := range gr.Errors {
			ge.Messages = append(ge.Messages, e.Message)
		}
		return ge
	}
	if out == nil || len(gr.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(gr.Data, out); err != nil {
		return fmt.Errorf("decode graphql data: %w", err)
	}
	return nil
}

func (c *Client) Me(ctx context.Context) (*User, error) {
	var data struct {
		Me *User `json:"me"`
	}
	if err := c.graphql(ctx, `query { me { id username email createdAt } }`, nil, &data); err != nil {
		return nil, err
	}
	return data.Me, nil
}

func (c *Client) CreateNote(ctx context.Context, in model.NoteInput) (*Note, error) {
	input := map[string]any{"title": in.Title, "content": in.Content}
	if in.Tags != nil {
		input["tags"] = in.Tags
	}
	var data struct {
		CreateNote Note `json:"createNote"`
	}
	q := `mutation CreateNote($input: CreateNoteInput!) { createNote(input: $input) { ` + noteFields + ` } }`
	if err := c.graphql(ctx, q, map[string]any{"input": input}, &data); err != nil {
		return nil, err
	}
	return &data.CreateNote, nil
}

func (c *Client) ListNotes(ctx context.Context, tag, owner string) ([]Note, error) {
	vars := map[string]any{}
	if tag != "" {
		vars["tag"] = tag
	}
	if owner != "" {
		vars["owner"] = owner
	}
	var data struct {
		Notes []Note `json:"notes"`
	}
	q := `query Notes($tag: String, $owner: ID) { notes(tag: $tag, owner: $owner) { ` + noteFields + ` } }`
	if err := c.graphql(ctx, q, vars, &data); err != nil {
		return nil, err
	}
	return data.Notes, nil
}

func (c *Client) GetNote(ctx context.Context, id string) (*Note, error) {
	var data struct {
		Note Note `json:"note"`
	}
	q := `query Note($id: ID!) { note(id: $id) { ` + noteFields + ` } }`
	if err := c.graphql(ctx, q, map[string]any{"id": id}, &data); err != nil {
		return nil, err
	}
	return &data.Note, nil
}

func (c *Client) UpdateNote(ctx context.Context, id string, patch model.NotePatch) (*Note, error) {
	input := map[string]any{}
	if patch.Title != nil {
		input["title"] = *patch.Title
	}
	if patch.Content != nil {
		input["content"] = *patch.Content
	}
	if patch.Tags != nil {
		input["tags"] = *patch.Tags
	}
	var data struct {
		UpdateNote Note `json:"updateNote"`
	}
	q := `mutation UpdateNote($id: ID!, $input: UpdateNoteInput!) { updateNote(id: $id, input: $input) { ` + noteFields + ` } }`
	if err := c.graphql(ctx, q, map[string]any{"id": id, "input": input}, &data); err != nil {
		return nil, err
	}
	return &data.UpdateNote, nil
}

func (c *Client) DeleteNote(ctx context.Context, id string) error {
	var data struct {
		DeleteNote bool `json:"deleteNote"`
	}
	q := `mutation DeleteNote($id: ID!) { deleteNote(id: $id) }`
	if err := c.graphql(ctx, q, map[string]any{"id": id}, &data); err != nil {
		return err
	}
	if !data.DeleteNote {
		return fmt.Errorf("delete %s: server reported failure", id)
	}
	return nil
}
