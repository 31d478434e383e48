package calendar

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/agenda-app/client/internal/backend"
	"github.com/agenda-app/client/internal/models"
	"github.com/agenda-app/client/internal/nav"
	"github.com/agenda-app/client/internal/notify"
	"github.com/samber/lo"
)

// LoadFailedMessage is published when the calendar cannot be loaded.
const LoadFailedMessage = "Error fetching the events"

// Item is an event as the calendar widget renders it.
type Item struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	AllDay          bool      `json:"allDay"`
	BackgroundColor string    `json:"backgroundColor"`
	BorderColor     string    `json:"borderColor"`
	TextColor       string    `json:"textColor"`
}

// ToItem maps a stored event to its calendar rendering.
func ToItem(ev models.Event) Item {
	return Item{
		ID:              ev.ID,
		Title:           ev.Title,
		Start:           ev.Start.Time,
		End:             ev.End.Time,
		AllDay:          ev.AllDay,
		BackgroundColor: ev.BackgroundColor,
		BorderColor:     ev.BorderColor,
		TextColor:       ev.TextColor,
	}
}

// Change is the outcome of a drag or resize gesture. End is nil when the
// widget reports no end.
type Change struct {
	ID     string     `json:"id"`
	Start  time.Time  `json:"start"`
	End    *time.Time `json:"end,omitempty"`
	AllDay bool       `json:"allDay"`
}

func (c Change) span() models.EventSpan {
	end := c.Start
	if c.End != nil {
		end = *c.End
	}
	return models.EventSpan{
		Start:  models.NewInstant(c.Start),
		End:    models.NewInstant(end),
		AllDay: c.AllDay,
	}
}

// Surface owns the events shown on the calendar. Gestures update the
// local items first and then the backend; a failed update is reported
// but not rolled back.
type Surface struct {
	store EventStore
	bus   notify.Publisher
	nav   nav.Navigator
	log   *slog.Logger

	mu        sync.Mutex
	items     []Item
	listeners []func([]Item)
}

// NewSurface creates an empty surface.
func NewSurface(store EventStore, bus notify.Publisher, navigator nav.Navigator, log *slog.Logger) *Surface {
	return &Surface{store: store, bus: bus, nav: navigator, log: log}
}

// OnChange registers fn to receive the items after every load or gesture.
func (s *Surface) OnChange(fn func([]Item)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Load replaces the items with the backend's events.
func (s *Surface) Load(ctx context.Context) error {
	events, err := s.store.List(ctx)
	if err != nil {
		s.log.Warn("loading events failed", "error", err)
		s.bus.Publish(notify.Error(LoadFailedMessage))
		return fmt.Errorf("listing events: %w", notify.Shown(err))
	}

	items := lo.Map(events, func(ev models.Event, _ int) Item { return ToItem(ev) })
	s.log.Debug("calendar loaded", "events", len(items))
	s.replace(items)
	return nil
}

// Items returns a copy of the rendered items.
func (s *Surface) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.items)
}

// Item returns one rendered item.
func (s *Surface) Item(id string) (Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return lo.Find(s.items, func(it Item) bool { return it.ID == id })
}

// Move applies a drag gesture.
func (s *Surface) Move(ctx context.Context, c Change) error {
	return s.reschedule(ctx, "moving", c)
}

// Resize applies a resize gesture.
func (s *Surface) Resize(ctx context.Context, c Change) error {
	return s.reschedule(ctx, "resizing", c)
}

// Click opens the form for the event.
func (s *Surface) Click(id string) {
	s.nav.Navigate(nav.EditEvent(id))
}

func (s *Surface) reschedule(ctx context.Context, action string, c Change) error {
	span := c.span()

	s.mu.Lock()
	i := slices.IndexFunc(s.items, func(it Item) bool { return it.ID == c.ID })
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%s event %s: %w", action, c.ID, ErrUnknownEvent)
	}
	s.items[i].Start = span.Start.Time
	s.items[i].End = span.End.Time
	s.items[i].AllDay = span.AllDay
	items := slices.Clone(s.items)
	listeners := slices.Clone(s.listeners)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(items)
	}

	if _, err := s.store.UpdateSpan(ctx, c.ID, span); err != nil {
		s.log.Warn(action+" event failed", "id", c.ID, "error", err)
		s.bus.Publish(notify.Error(backend.Message(err)))
		return fmt.Errorf("%s event %s: %w", action, c.ID, notify.Shown(err))
	}

	s.log.Debug("event rescheduled", "id", c.ID, "start", span.Start, "end", span.End)
	return nil
}

func (s *Surface) replace(items []Item) {
	s.mu.Lock()
	s.items = items
	snapshot := slices.Clone(items)
	listeners := slices.Clone(s.listeners)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(snapshot)
	}
}
