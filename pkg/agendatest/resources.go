package agendatest

import (
	"encoding/json"
	"io"
	"net/http"
	"sort"

	"github.com/agenda-app/client/internal/models"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// SeedEvent stores ev, assigning an id when it has none.
func (s *Server) SeedEvent(ev models.Event) models.Event {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[ev.ID] = ev
	return ev
}

// Event returns a stored event.
func (s *Server) Event(id string) (models.Event, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ev, ok := s.events[id]
	return ev, ok
}

// SeedContact stores c, assigning an id when it has none.
func (s *Server) SeedContact(c models.Contact) models.Contact {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contacts[c.ID] = c
	return c
}

// Contact returns a stored contact.
func (s *Server) Contact(id string) (models.Contact, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.contacts[id]
	return c, ok
}

func (s *Server) listEvents(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	out := make([]models.Event, 0, len(s.events))
	for _, ev := range s.events {
		out = append(out, ev)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start.Time) })
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createEvent(w http.ResponseWriter, r *http.Request) {
	var ev models.Event
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body")
		return
	}
	if ev.Title == "" {
		writeError(w, http.StatusBadRequest, "validation_error", "Title is required")
		return
	}
	ev.ID = ""
	writeJSON(w, http.StatusCreated, s.SeedEvent(ev))
}

func (s *Server) getEvent(w http.ResponseWriter, r *http.Request) {
	ev, ok := s.Event(mux.Vars(r)["id"])
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "Event not found")
		return
	}
	writeJSON(w, http.StatusOK, ev)
}

func (s *Server) updateEvent(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	patch, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.events[id]
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "Event not found")
		return
	}
	updated, err := merge(current, patch)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body")
		return
	}
	updated.ID = id
	s.events[id] = updated
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) deleteEvent(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[id]; !ok {
		writeError(w, http.StatusNotFound, "not_found", "Event not found")
		return
	}
	delete(s.events, id)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Event deleted"})
}

func (s *Server) listContacts(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	out := make([]models.Contact, 0, len(s.contacts))
	for _, c := range s.contacts {
		out = append(out, c)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createContact(w http.ResponseWriter, r *http.Request) {
	var c models.Contact
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body")
		return
	}
	if c.Name == "" || c.PhoneNumber == "" {
		writeError(w, http.StatusBadRequest, "validation_error", "Name and phone number are required")
		return
	}
	c.ID = ""
	writeJSON(w, http.StatusCreated, s.SeedContact(c))
}

func (s *Server) getContact(w http.ResponseWriter, r *http.Request) {
	c, ok := s.Contact(mux.Vars(r)["id"])
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "Contact not found")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) updateContact(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	patch, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.contacts[id]
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "Contact not found")
		return
	}
	updated, err := merge(current, patch)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body")
		return
	}
	updated.ID = id
	s.contacts[id] = updated
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) deleteContact(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.contacts[id]; !ok {
		writeError(w, http.StatusNotFound, "not_found", "Contact not found")
		return
	}
	delete(s.contacts, id)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Contact deleted"})
}
