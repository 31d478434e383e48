package agendatest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/agenda-app/client/internal/models"
	"github.com/gorilla/mux"
)

// Request is a call received by the server.
type Request struct {
	Method        string
	Path          string
	Authorization string
	Body          []byte
}

type failure struct {
	method  string
	path    string
	status  int
	message string
}

// Server is an in-memory agenda backend.
type Server struct {
	*httptest.Server

	secret []byte

	mu       sync.RWMutex
	users    map[string]user
	events   map[string]models.Event
	contacts map[string]models.Contact
	requests []Request
	failures []failure
}

// NewServer starts a server on a loopback port.
func NewServer() *Server {
	s := &Server{
		secret:   []byte("agendatest-signing-key"),
		users:    make(map[string]user),
		events:   make(map[string]models.Event),
		contacts: make(map[string]models.Contact),
	}

	r := mux.NewRouter()
	r.Use(s.record, s.injectFailures)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/auth/register", s.register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", s.login).Methods(http.MethodPost)

	protected := api.NewRoute().Subrouter()
	protected.Use(s.requireToken)

	protected.HandleFunc("/events", s.listEvents).Methods(http.MethodGet)
	protected.HandleFunc("/events", s.createEvent).Methods(http.MethodPost)
	protected.HandleFunc("/events/{id}", s.getEvent).Methods(http.MethodGet)
	protected.HandleFunc("/events/{id}", s.updateEvent).Methods(http.MethodPut)
	protected.HandleFunc("/events/{id}", s.deleteEvent).Methods(http.MethodDelete)

	protected.HandleFunc("/contacts", s.listContacts).Methods(http.MethodGet)
	protected.HandleFunc("/contacts", s.createContact).Methods(http.MethodPost)
	protected.HandleFunc("/contacts/{id}", s.getContact).Methods(http.MethodGet)
	protected.HandleFunc("/contacts/{id}", s.updateContact).Methods(http.MethodPut)
	protected.HandleFunc("/contacts/{id}", s.deleteContact).Methods(http.MethodDelete)

	s.Server = httptest.NewServer(r)
	return s
}

// BaseURL is the root the client should be configured with.
func (s *Server) BaseURL() string {
	return s.URL + "/api/"
}

// Requests returns every call received so far.
func (s *Server) Requests() []Request {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Request(nil), s.requests...)
}

// RequestsTo returns the calls matching method and path, for example
// ("PUT", "/api/events/abc").
func (s *Server) RequestsTo(method, path string) []Request {
	var out []Request
	for _, r := range s.Requests() {
		if r.Method == method && r.Path == path {
			out = append(out, r)
		}
	}
	return out
}

// FailNext makes the next call to method and path answer with status and
// a {"message": message} body.
func (s *Server) FailNext(method, path string, status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = append(s.failures, failure{method: method, path: path, status: status, message: message})
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))

		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method:        r.Method,
			Path:          r.URL.Path,
			Authorization: r.Header.Get("Authorization"),
			Body:          body,
		})
		s.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

func (s *Server) injectFailures(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		for i, f := range s.failures {
			if f.method == r.Method && f.path == r.URL.Path {
				s.failures = append(s.failures[:i:i], s.failures[i+1:]...)
				s.mu.Unlock()
				writeError(w, f.status, codeFor(f.status), f.message)
				return
			}
		}
		s.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, models.ErrorResponse{Error: code, Message: message})
}

func codeFor(status int) string {
	return strings.ReplaceAll(strings.ToLower(http.StatusText(status)), " ", "_")
}

// merge overlays the JSON fields of patch onto current.
func merge[T any](current T, patch []byte) (T, error) {
	base, err := json.Marshal(current)
	if err != nil {
		return current, err
	}
	fields := make(map[string]json.RawMessage)
	if err := json.Unmarshal(base, &fields); err != nil {
		return current, err
	}
	changes := make(map[string]json.RawMessage)
	if err := json.Unmarshal(patch, &changes); err != nil {
		return current, err
	}
	for k, v := range changes {
		fields[k] = v
	}
	merged, err := json.Marshal(fields)
	if err != nil {
		return current, err
	}
	var out T
	if err := json.Unmarshal(merged, &out); err != nil {
		return current, err
	}
	return out, nil
}
