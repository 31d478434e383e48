package backend

import (
	"context"
	"net/http"

	"github.com/agenda-app/client/internal/models"
)

const contactsPath = "contacts"

// Contacts is the contacts resource.
type Contacts struct {
	c *Client
}

// Create posts a new contact.
func (r *Contacts) Create(ctx context.Context, contact models.Contact) (models.Contact, error) {
	contact.ID = ""
	var out models.Contact
	err := r.c.do(ctx, http.MethodPost, []string{contactsPath}, contact, &out)
	return out, err
}

// List returns every contact in backend order.
func (r *Contacts) List(ctx context.Context) ([]models.Contact, error) {
	var out []models.Contact
	err := r.c.do(ctx, http.MethodGet, []string{contactsPath}, nil, &out)
	return out, err
}

// Get fetches one contact.
func (r *Contacts) Get(ctx context.Context, id string) (models.Contact, error) {
	var out models.Contact
	err := r.c.do(ctx, http.MethodGet, []string{contactsPath, id}, nil, &out)
	return out, err
}

// Update replaces a contact.
func (r *Contacts) Update(ctx context.Context, id string, contact models.Contact) (models.Contact, error) {
	contact.ID = ""
	var out models.Contact
	err := r.c.do(ctx, http.MethodPut, []string{contactsPath, id}, contact, &out)
	return out, err
}

// Delete removes a contact.
func (r *Contacts) Delete(ctx context.Context, id string) error {
	return r.c.do(ctx, http.MethodDelete, []string{contactsPath, id}, nil, nil)
}
