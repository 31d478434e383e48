// Package api serves the local UI bridge: calendar gestures, the current
// notification and the WebSocket feed.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/agenda-app/client/internal/api/handlers"
	"github.com/agenda-app/client/internal/api/middleware"
	"github.com/agenda-app/client/internal/calendar"
	"github.com/agenda-app/client/internal/contacts"
	"github.com/agenda-app/client/internal/notify"
	"github.com/agenda-app/client/internal/pipeline"
	"github.com/agenda-app/client/internal/websocket"
	"github.com/gorilla/mux"
)

// Deps are the components the bridge exposes.
type Deps struct {
	DB       handlers.Pinger
	Hub      *websocket.Hub
	Bus      *notify.Bus
	Busy     *pipeline.InFlight
	Surface  *calendar.Surface
	Contacts *contacts.List
	Log      *slog.Logger
	// Location is the zone zone-less gesture instants are read in.
	// Nil means time.Local.
	Location *time.Location
}

// NewRouter creates and configures the HTTP router with all bridge routes.
func NewRouter(d Deps) *mux.Router {
	r := mux.NewRouter()
	loc := d.Location
	if loc == nil {
		loc = time.Local
	}

	r.Use(middleware.Logging(d.Log))
	r.Use(middleware.ErrorRecovery(d.Log))

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/health", handlers.HealthCheck(d.DB, d.Hub, d.Busy)).Methods(http.MethodGet)
	api.HandleFunc("/ws", websocket.Handler(d.Hub)).Methods(http.MethodGet)

	api.HandleFunc("/calendar", handlers.ListCalendar(d.Surface)).Methods(http.MethodGet)
	api.HandleFunc("/calendar/reload", handlers.ReloadCalendar(d.Surface)).Methods(http.MethodPost)
	api.HandleFunc("/calendar/{id}/move", handlers.MoveEvent(d.Surface, loc)).Methods(http.MethodPut)
	api.HandleFunc("/calendar/{id}/resize", handlers.ResizeEvent(d.Surface, loc)).Methods(http.MethodPut)
	api.HandleFunc("/calendar/{id}/click", handlers.ClickEvent(d.Surface)).Methods(http.MethodPost)

	api.HandleFunc("/notification", handlers.GetNotification(d.Bus)).Methods(http.MethodGet)
	api.HandleFunc("/notification", handlers.DismissNotification(d.Bus)).Methods(http.MethodDelete)

	api.HandleFunc("/contacts", handlers.ListContacts(d.Contacts)).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		middleware.WriteError(w, http.StatusNotFound, middleware.ErrNotFound, "Route not found")
	})

	return r
}
