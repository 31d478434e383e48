package handlers

import (
	"net/http"

	"github.com/agenda-app/client/internal/api/middleware"
	"github.com/agenda-app/client/internal/notify"
	"github.com/agenda-app/client/internal/websocket"
)

// GetNotification returns the current notification state.
func GetNotification(bus *notify.Bus) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteJSON(w, http.StatusOK, websocket.NewNotificationPayload(bus.Current()))
	}
}

// DismissNotification hides the current notification.
func DismissNotification(bus *notify.Bus) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bus.Dismiss()
		w.WriteHeader(http.StatusNoContent)
	}
}
