package contacts

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/agenda-app/client/internal/models"
	"github.com/agenda-app/client/internal/notify"
	"github.com/samber/lo"
)

// LoadFailedMessage is published when the listing cannot be loaded.
const LoadFailedMessage = "Error fetching the contacts"

// List is the address book as last fetched, sorted by name.
type List struct {
	store ContactStore
	bus   notify.Publisher
	log   *slog.Logger

	mu       sync.RWMutex
	contacts []models.Contact
}

// NewList creates an empty listing.
func NewList(store ContactStore, bus notify.Publisher, log *slog.Logger) *List {
	return &List{store: store, bus: bus, log: log}
}

// Load fetches every contact and orders them by name. Equal names keep
// the backend order.
func (l *List) Load(ctx context.Context) error {
	fetched, err := l.store.List(ctx)
	if err != nil {
		l.log.Warn("loading contacts failed", "error", err)
		l.bus.Publish(notify.Error(LoadFailedMessage))
		return fmt.Errorf("listing contacts: %w", notify.Shown(err))
	}

	slices.SortStableFunc(fetched, func(a, b models.Contact) int {
		return cmp.Compare(a.Name, b.Name)
	})

	l.mu.Lock()
	l.contacts = fetched
	l.mu.Unlock()
	return nil
}

// All returns the loaded contacts in order.
func (l *List) All() []models.Contact {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.contacts)
}

// Filter returns the contacts whose name or surname contains term,
// ignoring case. An empty term matches everything.
func (l *List) Filter(term string) []models.Contact {
	term = strings.ToLower(strings.TrimSpace(term))

	l.mu.RLock()
	defer l.mu.RUnlock()
	return lo.Filter(l.contacts, func(c models.Contact, _ int) bool {
		return strings.Contains(strings.ToLower(c.Name), term) ||
			strings.Contains(strings.ToLower(c.Surname), term)
	})
}
