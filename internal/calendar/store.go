// Package calendar reconciles the local view of events with the backend:
// the event form session, the split-field conversions and the calendar
// surface that applies drag and resize gestures.
package calendar

import (
	"context"
	"errors"

	"github.com/agenda-app/client/internal/models"
)

//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=../mocks/mock_event_store.go -package=mocks

// EventStore is the backend surface the engine needs.
type EventStore interface {
	Create(ctx context.Context, ev models.Event) (models.Event, error)
	List(ctx context.Context) ([]models.Event, error)
	Get(ctx context.Context, id string) (models.Event, error)
	Update(ctx context.Context, id string, ev models.Event) (models.Event, error)
	UpdateSpan(ctx context.Context, id string, span models.EventSpan) (models.Event, error)
	Delete(ctx context.Context, id string) error
}

var (
	// ErrSessionClosed is returned by a session that already ended.
	ErrSessionClosed = errors.New("editing session closed")
	// ErrNotEditing is returned when deleting from a create session.
	ErrNotEditing = errors.New("session is not editing an existing event")
	// ErrUnknownEvent is returned for gestures on events not on the surface.
	ErrUnknownEvent = errors.New("event not on the calendar")
)
