package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/agenda-app/client/internal/api/middleware"
	"github.com/agenda-app/client/internal/backend"
	"github.com/agenda-app/client/internal/calendar"
	"github.com/agenda-app/client/internal/models"
	"github.com/gorilla/mux"
)

// GestureRequest is the body of move and resize calls. Instants accept
// the wire layout as well as the ISO forms calendar widgets emit.
type GestureRequest struct {
	Start  models.Instant  `json:"start"`
	End    *models.Instant `json:"end"`
	AllDay bool            `json:"allDay"`
}

// decodeGesture reads a gesture body. Zone-less instants are read in loc.
func decodeGesture(r io.Reader, loc *time.Location) (GestureRequest, error) {
	var raw struct {
		Start  json.RawMessage `json:"start"`
		End    json.RawMessage `json:"end"`
		AllDay bool            `json:"allDay"`
	}
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return GestureRequest{}, fmt.Errorf("decoding gesture: %w", err)
	}

	start, err := models.DecodeInstant(raw.Start, loc)
	if err != nil {
		return GestureRequest{}, err
	}
	g := GestureRequest{Start: start, AllDay: raw.AllDay}
	end, err := models.DecodeInstant(raw.End, loc)
	if err != nil {
		return GestureRequest{}, err
	}
	if !end.IsZero() {
		g.End = &end
	}
	return g, nil
}

func (g GestureRequest) change(id string) calendar.Change {
	c := calendar.Change{ID: id, Start: g.Start.Time, AllDay: g.AllDay}
	if g.End != nil && !g.End.IsZero() {
		end := g.End.Time
		c.End = &end
	}
	return c
}

// ListCalendar returns the rendered calendar items.
func ListCalendar(surface *calendar.Surface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteJSON(w, http.StatusOK, surface.Items())
	}
}

// ReloadCalendar refetches events from the backend.
func ReloadCalendar(surface *calendar.Surface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := surface.Load(r.Context()); err != nil {
			middleware.WriteError(w, http.StatusBadGateway, middleware.ErrUpstream, calendar.LoadFailedMessage)
			return
		}
		middleware.WriteJSON(w, http.StatusOK, surface.Items())
	}
}

// MoveEvent applies a drag gesture. Zone-less instants are read in loc.
func MoveEvent(surface *calendar.Surface, loc *time.Location) http.HandlerFunc {
	return gesture(surface, loc, surface.Move)
}

// ResizeEvent applies a resize gesture. Zone-less instants are read in loc.
func ResizeEvent(surface *calendar.Surface, loc *time.Location) http.HandlerFunc {
	return gesture(surface, loc, surface.Resize)
}

// ClickEvent opens the event form.
func ClickEvent(surface *calendar.Surface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]
		if _, ok := surface.Item(id); !ok {
			middleware.WriteError(w, http.StatusNotFound, middleware.ErrNotFound, "Event not found")
			return
		}
		surface.Click(id)
		w.WriteHeader(http.StatusNoContent)
	}
}

// gesture decodes the body and applies it. A backend refusal answers 502
// with the server message; the local item keeps the new span.
func gesture(surface *calendar.Surface, loc *time.Location, apply func(context.Context, calendar.Change) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := decodeGesture(r.Body, loc)
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid request body")
			return
		}
		if body.Start.IsZero() {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrValidation, "start is required")
			return
		}

		id := mux.Vars(r)["id"]
		switch err := apply(r.Context(), body.change(id)); {
		case errors.Is(err, calendar.ErrUnknownEvent):
			middleware.WriteError(w, http.StatusNotFound, middleware.ErrNotFound, "Event not found")
		case err != nil:
			middleware.WriteError(w, http.StatusBadGateway, middleware.ErrUpstream, backend.Message(err))
		default:
			item, _ := surface.Item(id)
			middleware.WriteJSON(w, http.StatusOK, item)
		}
	}
}
