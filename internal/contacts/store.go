// Package contacts is the address book counterpart of the calendar
// engine: the contact form session and the sorted, filterable listing.
package contacts

import (
	"context"
	"errors"

	"github.com/agenda-app/client/internal/models"
)

//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=../mocks/mock_contact_store.go -package=mocks

// ContactStore is the backend surface used for contacts.
type ContactStore interface {
	Create(ctx context.Context, c models.Contact) (models.Contact, error)
	List(ctx context.Context) ([]models.Contact, error)
	Get(ctx context.Context, id string) (models.Contact, error)
	Update(ctx context.Context, id string, c models.Contact) (models.Contact, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrSessionClosed = errors.New("contact session closed")
	ErrNotEditing    = errors.New("session is not editing an existing contact")
)
