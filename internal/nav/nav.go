// Package nav names the client's views and records navigation between them.
package nav

import (
	"strings"
	"sync"
)

// Route is a view path.
type Route string

// Views of the client.
const (
	Auth       Route = "/auth"
	Home       Route = "/home"
	NewEvent   Route = "/new-event"
	Contacts   Route = "/contacts"
	NewContact Route = "/new-contact"
)

const (
	editEventPrefix   = "/edit-event/"
	editContactPrefix = "/edit-contact/"
)

// EditEvent is the form route for an existing event.
func EditEvent(id string) Route {
	return Route(editEventPrefix + id)
}

// EditContact is the form route for an existing contact.
func EditContact(id string) Route {
	return Route(editContactPrefix + id)
}

// Resolve maps a raw path to a known route. Unknown paths fall back to Home.
func Resolve(path string) Route {
	switch r := Route("/" + strings.Trim(path, "/")); r {
	case Auth, Home, NewEvent, Contacts, NewContact:
		return r
	}
	if id, ok := strings.CutPrefix(path, editEventPrefix); ok && id != "" && !strings.Contains(id, "/") {
		return EditEvent(id)
	}
	if id, ok := strings.CutPrefix(path, editContactPrefix); ok && id != "" && !strings.Contains(id, "/") {
		return EditContact(id)
	}
	return Home
}

// Guarded reports whether r requires an authenticated user.
func (r Route) Guarded() bool {
	return r != Auth
}

// Navigator moves the client to another view.
type Navigator interface {
	Navigate(Route)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(Route)

// Navigate implements Navigator.
func (f NavigatorFunc) Navigate(r Route) { f(r) }

// Authenticator is the predicate consulted before entering guarded views.
type Authenticator interface {
	IsAuthenticated() bool
}

// Guard admits r when it is public or the user is authenticated.
// Otherwise it redirects to Auth and denies entry.
func Guard(a Authenticator, n Navigator, r Route) bool {
	if !r.Guarded() || a.IsAuthenticated() {
		return true
	}
	n.Navigate(Auth)
	return false
}

// History is an in-memory Navigator that also fans routes out to listeners.
type History struct {
	mu        sync.Mutex
	routes    []Route
	listeners []func(Route)
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{}
}

// Navigate records r and notifies listeners.
func (h *History) Navigate(r Route) {
	h.mu.Lock()
	h.routes = append(h.routes, r)
	listeners := append([]func(Route){}, h.listeners...)
	h.mu.Unlock()

	for _, fn := range listeners {
		fn(r)
	}
}

// OnNavigate registers fn for every future navigation.
func (h *History) OnNavigate(fn func(Route)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.listeners = append(h.listeners, fn)
}

// Current is the latest route, or empty if none.
func (h *History) Current() Route {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.routes) == 0 {
		return ""
	}
	return h.routes[len(h.routes)-1]
}

// Routes returns every navigation in order.
func (h *History) Routes() []Route {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Route(nil), h.routes...)
}
