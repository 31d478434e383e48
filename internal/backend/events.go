package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/agenda-app/client/internal/models"
)

const eventsPath = "events"

// Events is the events resource.
type Events struct {
	c *Client
}

// Create posts a new event and returns it as stored.
func (e *Events) Create(ctx context.Context, ev models.Event) (models.Event, error) {
	ev.ID = ""
	return e.one(ctx, http.MethodPost, []string{eventsPath}, ev)
}

// List returns every event.
func (e *Events) List(ctx context.Context) ([]models.Event, error) {
	var raw json.RawMessage
	if err := e.c.do(ctx, http.MethodGet, []string{eventsPath}, nil, &raw); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}
	events, err := models.DecodeEvents(raw, e.c.loc)
	if err != nil {
		return nil, fmt.Errorf("decoding GET %s response: %w", eventsPath, err)
	}
	return events, nil
}

// Get fetches one event.
func (e *Events) Get(ctx context.Context, id string) (models.Event, error) {
	return e.one(ctx, http.MethodGet, []string{eventsPath, id}, nil)
}

// Update replaces an event.
func (e *Events) Update(ctx context.Context, id string, ev models.Event) (models.Event, error) {
	ev.ID = ""
	return e.one(ctx, http.MethodPut, []string{eventsPath, id}, ev)
}

// UpdateSpan sends only the time span of an event.
func (e *Events) UpdateSpan(ctx context.Context, id string, span models.EventSpan) (models.Event, error) {
	return e.one(ctx, http.MethodPut, []string{eventsPath, id}, span)
}

// Delete removes an event.
func (e *Events) Delete(ctx context.Context, id string) error {
	return e.c.do(ctx, http.MethodDelete, []string{eventsPath, id}, nil, nil)
}

// one issues a call answered by a single event. Zone-less instants are
// read in the client location.
func (e *Events) one(ctx context.Context, method string, path []string, in any) (models.Event, error) {
	var raw json.RawMessage
	if err := e.c.do(ctx, method, path, in, &raw); err != nil {
		return models.Event{}, err
	}
	if len(raw) == 0 {
		return models.Event{}, nil
	}
	ev, err := models.DecodeEvent(raw, e.c.loc)
	if err != nil {
		return models.Event{}, fmt.Errorf("decoding %s %s response: %w", method, strings.Join(path, "/"), err)
	}
	return ev, nil
}
