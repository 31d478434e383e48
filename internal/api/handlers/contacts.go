package handlers

import (
	"net/http"

	"github.com/agenda-app/client/internal/api/middleware"
	"github.com/agenda-app/client/internal/contacts"
)

// ListContacts reloads the address book and filters it by the q
// parameter.
func ListContacts(list *contacts.List) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := list.Load(r.Context()); err != nil {
			middleware.WriteError(w, http.StatusBadGateway, middleware.ErrUpstream, contacts.LoadFailedMessage)
			return
		}
		middleware.WriteJSON(w, http.StatusOK, list.Filter(r.URL.Query().Get("q")))
	}
}
