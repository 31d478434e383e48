package contacts

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/agenda-app/client/internal/backend"
	"github.com/agenda-app/client/internal/nav"
	"github.com/agenda-app/client/internal/notify"
	"github.com/agenda-app/client/internal/prompt"
)

// Phase is where an editing session stands.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseCreate
	PhaseEdit
	PhaseDone
)

var deletePrompt = prompt.Question{
	Title:   "Delete contact",
	Text:    "Are you sure you want to delete this contact?",
	Confirm: "Confirm",
	Cancel:  "Cancel",
}

// Editors opens contact editing sessions.
type Editors struct {
	store   ContactStore
	bus     notify.Publisher
	nav     nav.Navigator
	confirm prompt.Confirmer
	log     *slog.Logger
}

// NewEditors wires the collaborators shared by every session.
func NewEditors(store ContactStore, bus notify.Publisher, navigator nav.Navigator, confirm prompt.Confirmer, log *slog.Logger) *Editors {
	return &Editors{store: store, bus: bus, nav: navigator, confirm: confirm, log: log}
}

// Editor is one pass through the contact form.
type Editor struct {
	s *Editors

	ctx    context.Context
	cancel context.CancelFunc

	mu    sync.Mutex
	id    string
	phase Phase
	form  Form
}

// Open starts a session. An empty id creates a contact; otherwise the
// contact is fetched and, on failure, the user is sent to the listing.
func (s *Editors) Open(ctx context.Context, id string) (*Editor, error) {
	sessionCtx, cancel := context.WithCancel(context.Background())
	e := &Editor{s: s, ctx: sessionCtx, cancel: cancel, id: id, phase: PhaseCreate}
	if id == "" {
		return e, nil
	}

	e.phase = PhaseLoading
	c, err := s.store.Get(ctx, id)
	if err != nil {
		e.end()
		s.log.Warn("fetching contact failed", "id", id, "error", err)
		s.nav.Navigate(nav.Contacts)
		return e, fmt.Errorf("fetching contact %s: %w", id, err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.form = FormFromContact(c)
	e.phase = PhaseEdit
	return e, nil
}

// ID is the contact being edited, empty when creating.
func (e *Editor) ID() string { return e.id }

// Phase returns where the session stands.
func (e *Editor) Phase() Phase {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.phase
}

// Form returns the current fields.
func (e *Editor) Form() Form {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.form
}

// SetForm replaces the fields.
func (e *Editor) SetForm(f Form) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.phase == PhaseDone {
		return ErrSessionClosed
	}
	e.form = f
	return nil
}

// Save creates or updates the contact, then returns to the listing.
func (e *Editor) Save(ctx context.Context) error {
	e.mu.Lock()
	phase, form := e.phase, e.form
	e.mu.Unlock()
	if phase == PhaseDone {
		return ErrSessionClosed
	}

	c, err := form.Contact()
	if err != nil {
		return err
	}

	callCtx, stop := e.bind(ctx)
	defer stop()

	title, content := "Contact Created", "The contact was created successfully"
	if phase == PhaseEdit {
		title, content = "Contact Updated", "The contact was updated successfully"
		_, err = e.s.store.Update(callCtx, e.id, c)
	} else {
		_, err = e.s.store.Create(callCtx, c)
	}
	return e.complete("saving contact", err, title, content)
}

// Delete removes the contact once the user confirms. A declined prompt
// returns false without calling the backend.
func (e *Editor) Delete(ctx context.Context) (bool, error) {
	switch e.Phase() {
	case PhaseDone:
		return false, ErrSessionClosed
	case PhaseEdit:
	default:
		return false, ErrNotEditing
	}

	ok, err := e.s.confirm.Confirm(ctx, deletePrompt)
	if err != nil || !ok {
		return false, err
	}

	callCtx, stop := e.bind(ctx)
	defer stop()

	err = e.complete("deleting contact", e.s.store.Delete(callCtx, e.id),
		"Contact Deleted", "The contact was deleted successfully")
	return err == nil, err
}

// Close abandons the session; pending completions are dropped.
func (e *Editor) Close() {
	e.end()
}

func (e *Editor) complete(action string, err error, title, content string) error {
	e.mu.Lock()
	if e.phase == PhaseDone {
		e.mu.Unlock()
		return ErrSessionClosed
	}
	if err == nil {
		e.phase = PhaseDone
	}
	e.mu.Unlock()

	if err != nil {
		e.s.log.Warn(action+" failed", "id", e.id, "error", err)
		e.s.bus.Publish(notify.Error(backend.Message(err)))
		return fmt.Errorf("%s: %w", action, notify.Shown(err))
	}

	e.cancel()
	e.s.log.Info(action+" done", "id", e.id)
	e.s.nav.Navigate(nav.Contacts)
	e.s.bus.Publish(notify.Success(title, content))
	return nil
}

func (e *Editor) bind(ctx context.Context) (context.Context, func()) {
	callCtx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(e.ctx, cancel)
	return callCtx, func() {
		stop()
		cancel()
	}
}

func (e *Editor) end() {
	e.mu.Lock()
	e.phase = PhaseDone
	e.mu.Unlock()
	e.cancel()
}
