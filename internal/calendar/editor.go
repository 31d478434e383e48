package calendar

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/agenda-app/client/internal/backend"
	"github.com/agenda-app/client/internal/nav"
	"github.com/agenda-app/client/internal/notify"
	"github.com/agenda-app/client/internal/prompt"
)

// State is the phase of an editing session.
type State int

const (
	StateLoading State = iota
	StateCreate
	StateEdit
	StateSaved
	StateDeleted
	StateCancelled
)

var stateNames = map[State]string{
	StateLoading:   "loading",
	StateCreate:    "create",
	StateEdit:      "edit",
	StateSaved:     "saved",
	StateDeleted:   "deleted",
	StateCancelled: "cancelled",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Terminal reports whether the session has ended.
func (s State) Terminal() bool {
	return s >= StateSaved
}

var deletePrompt = prompt.Question{
	Title:   "Delete event",
	Text:    "Are you sure you want to delete this event?",
	Confirm: "Confirm",
	Cancel:  "Cancel",
}

// Sessions opens event editing sessions.
type Sessions struct {
	store   EventStore
	bus     notify.Publisher
	nav     nav.Navigator
	confirm prompt.Confirmer
	log     *slog.Logger
	now     func() time.Time
	loc     *time.Location
}

// Option configures Sessions.
type Option func(*Sessions)

// WithClock replaces time.Now for form defaults.
func WithClock(now func() time.Time) Option {
	return func(s *Sessions) { s.now = now }
}

// WithLocation sets the zone form fields are read in.
func WithLocation(loc *time.Location) Option {
	return func(s *Sessions) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// NewSessions wires the collaborators shared by every session.
func NewSessions(store EventStore, bus notify.Publisher, navigator nav.Navigator, confirm prompt.Confirmer, log *slog.Logger, opts ...Option) *Sessions {
	s := &Sessions{
		store:   store,
		bus:     bus,
		nav:     navigator,
		confirm: confirm,
		log:     log,
		now:     time.Now,
		loc:     time.Local,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// EventEditor is one pass through the event form.
type EventEditor struct {
	deps *Sessions

	ctx    context.Context
	cancel context.CancelFunc

	mu    sync.Mutex
	id    string
	state State
	form  EventForm
}

// Open starts a session. An empty id creates a new event with defaults.
// Otherwise the event is fetched; if that fails the user is sent back to
// the calendar, the session is cancelled and the fetch error returned.
func (s *Sessions) Open(ctx context.Context, id string) (*EventEditor, error) {
	sessionCtx, cancel := context.WithCancel(context.Background())
	e := &EventEditor{deps: s, ctx: sessionCtx, cancel: cancel, id: id, state: StateLoading}

	if id == "" {
		e.form = NewEventForm(s.now().In(s.loc))
		e.state = StateCreate
		return e, nil
	}

	callCtx, done := e.scope(ctx)
	defer done()

	ev, err := s.store.Get(callCtx, id)
	if err != nil {
		if !e.transition(StateLoading, StateCancelled) {
			return e, ErrSessionClosed
		}
		s.log.Warn("fetching event failed", "id", id, "error", err)
		s.nav.Navigate(nav.Home)
		return e, fmt.Errorf("fetching event %s: %w", id, err)
	}

	ev.Start.Time = ev.Start.In(s.loc)
	ev.End.Time = ev.End.In(s.loc)

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != StateLoading {
		return e, ErrSessionClosed
	}
	e.form = FormFromEvent(ev)
	e.state = StateEdit
	return e, nil
}

// ID is the event being edited, empty when creating.
func (e *EventEditor) ID() string {
	return e.id
}

// State returns the current phase.
func (e *EventEditor) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Heading is "create" or "update" depending on the session kind.
func (e *EventEditor) Heading() string {
	if e.id == "" {
		return "create"
	}
	return "update"
}

// Form returns a copy of the current form fields.
func (e *EventEditor) Form() EventForm {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.form
}

// SetForm replaces the form fields.
func (e *EventEditor) SetForm(f EventForm) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state.Terminal() {
		return ErrSessionClosed
	}
	e.form = f
	return nil
}

// Save validates the form and creates or updates the event. Validation
// failures return a *ValidationError without touching the backend. Remote
// failures are published on the bus and leave the session open.
func (e *EventEditor) Save(ctx context.Context) error {
	e.mu.Lock()
	state, form := e.state, e.form
	e.mu.Unlock()

	if state.Terminal() {
		return ErrSessionClosed
	}
	ev, err := form.Event(e.deps.loc)
	if err != nil {
		return err
	}

	callCtx, done := e.scope(ctx)
	defer done()

	title, content := "Event Created", "The event was created successfully"
	if state == StateEdit {
		title, content = "Event Updated", "The event was updated successfully"
		_, err = e.deps.store.Update(callCtx, e.id, ev)
	} else {
		_, err = e.deps.store.Create(callCtx, ev)
	}

	if err != nil {
		return e.fail("saving event", err)
	}
	if !e.finish(StateSaved) {
		return ErrSessionClosed
	}

	e.deps.log.Info("event saved", "id", e.id, "title", ev.Title)
	e.deps.nav.Navigate(nav.Home)
	e.deps.bus.Publish(notify.Success(title, content))
	return nil
}

// Delete asks for confirmation and removes the event. It reports whether
// the event was deleted; a declined prompt returns false and no error.
func (e *EventEditor) Delete(ctx context.Context) (bool, error) {
	switch state := e.State(); {
	case state.Terminal():
		return false, ErrSessionClosed
	case state != StateEdit:
		return false, ErrNotEditing
	}

	ok, err := e.deps.confirm.Confirm(ctx, deletePrompt)
	if err != nil {
		return false, fmt.Errorf("confirming delete: %w", err)
	}
	if !ok {
		return false, nil
	}

	callCtx, done := e.scope(ctx)
	defer done()

	if err := e.deps.store.Delete(callCtx, e.id); err != nil {
		return false, e.fail("deleting event", err)
	}
	if !e.finish(StateDeleted) {
		return false, ErrSessionClosed
	}

	e.deps.log.Info("event deleted", "id", e.id)
	e.deps.nav.Navigate(nav.Home)
	e.deps.bus.Publish(notify.Success("Event Deleted", "The event was deleted successfully"))
	return true, nil
}

// Close abandons the session. Calls still in flight are cancelled and
// their completions no longer navigate or notify.
func (e *EventEditor) Close() {
	e.mu.Lock()
	if !e.state.Terminal() {
		e.state = StateCancelled
	}
	e.mu.Unlock()
	e.cancel()
}

// scope derives a call context that also ends when the session does.
func (e *EventEditor) scope(ctx context.Context) (context.Context, func()) {
	callCtx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(e.ctx, cancel)
	return callCtx, func() {
		stop()
		cancel()
	}
}

func (e *EventEditor) finish(to State) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state.Terminal() {
		return false
	}
	e.state = to
	e.cancel()
	return true
}

func (e *EventEditor) transition(from, to State) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != from {
		return false
	}
	e.state = to
	e.cancel()
	return true
}

func (e *EventEditor) fail(action string, err error) error {
	if e.State().Terminal() {
		return ErrSessionClosed
	}
	e.deps.log.Warn(action+" failed", "id", e.id, "error", err)
	e.deps.bus.Publish(notify.Error(backend.Message(err)))
	return fmt.Errorf("%s: %w", action, notify.Shown(err))
}
