package api_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/agenda-app/client/internal/api"
	"github.com/agenda-app/client/internal/auth"
	"github.com/agenda-app/client/internal/backend"
	"github.com/agenda-app/client/internal/calendar"
	"github.com/agenda-app/client/internal/contacts"
	"github.com/agenda-app/client/internal/models"
	"github.com/agenda-app/client/internal/nav"
	"github.com/agenda-app/client/internal/notify"
	"github.com/agenda-app/client/internal/pipeline"
	"github.com/agenda-app/client/internal/storage"
	"github.com/agenda-app/client/internal/websocket"
	"github.com/agenda-app/client/pkg/agendatest"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

type bridge struct {
	backend *agendatest.Server
	ui      *httptest.Server
	bus     *notify.Bus
	history *nav.History
	surface *calendar.Surface
}

func newBridge(t *testing.T) bridge {
	t.Helper()
	return newBridgeIn(t, time.Local)
}

// newBridgeIn reads wall-clock instants in loc.
func newBridgeIn(t *testing.T, loc *time.Location) bridge {
	t.Helper()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctx := context.Background()

	srv := agendatest.NewServer()
	t.Cleanup(srv.Close)

	db, err := storage.Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	creds := auth.NewMemoryStore()
	require.NoError(t, creds.SetToken(srv.MintToken("alice")))
	busy := pipeline.NewInFlight()
	client, err := backend.NewClient(srv.BaseURL(), pipeline.New(nil, creds, busy, log), time.Second, log,
		backend.WithLocation(loc))
	require.NoError(t, err)

	hubCtx, cancel := context.WithCancel(ctx)
	t.Cleanup(cancel)
	hub := websocket.NewHub(log)
	go hub.Run(hubCtx)

	bus := notify.NewBus(log)
	history := nav.NewHistory()
	surface := calendar.NewSurface(client.Events(), bus, history, log)

	router := api.NewRouter(api.Deps{
		DB:       db,
		Hub:      hub,
		Bus:      bus,
		Busy:     busy,
		Surface:  surface,
		Contacts: contacts.NewList(client.Contacts(), bus, log),
		Log:      log,
		Location: loc,
	})
	ui := httptest.NewServer(router)
	t.Cleanup(ui.Close)

	return bridge{backend: srv, ui: ui, bus: bus, history: history, surface: surface}
}

func (b bridge) do(t *testing.T, method, path, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, b.ui.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestRouter_Health(t *testing.T) {
	t.Run("should report a healthy bridge", func(t *testing.T) {
		req := require.New(t)
		b := newBridge(t)

		resp := b.do(t, http.MethodGet, "/api/health", "")

		req.Equal(http.StatusOK, resp.StatusCode)
		health := decode[map[string]any](t, resp)
		req.Equal("healthy", health["status"])
		req.Equal(true, health["db_connected"])
		req.Equal(false, health["busy"])
	})
}

func TestRouter_Calendar(t *testing.T) {
	seed := func(b bridge) models.Event {
		return b.backend.SeedEvent(models.Event{
			Title: "Standup",
			Start: models.NewInstant(time.Date(2024, 1, 2, 9, 0, 0, 0, time.Local)),
			End:   models.NewInstant(time.Date(2024, 1, 2, 9, 30, 0, 0, time.Local)),
		})
	}

	t.Run("should reload and list the items", func(t *testing.T) {
		req := require.New(t)
		b := newBridge(t)
		ev := seed(b)

		// When
		resp := b.do(t, http.MethodPost, "/api/calendar/reload", "")

		// Then
		req.Equal(http.StatusOK, resp.StatusCode)
		items := decode[[]calendar.Item](t, resp)
		req.Len(items, 1)
		req.Equal(ev.ID, items[0].ID)

		listed := decode[[]calendar.Item](t, b.do(t, http.MethodGet, "/api/calendar", ""))
		req.Len(listed, 1)
	})

	t.Run("should move an event from an ISO gesture", func(t *testing.T) {
		req := require.New(t)
		b := newBridge(t)
		ev := seed(b)
		req.NoError(b.surface.Load(context.Background()))

		// When
		resp := b.do(t, http.MethodPut, "/api/calendar/"+ev.ID+"/move",
			`{"start":"2024-01-02T10:00:00","end":"2024-01-02T10:30:00","allDay":false}`)

		// Then
		req.Equal(http.StatusOK, resp.StatusCode)
		puts := b.backend.RequestsTo(http.MethodPut, "/api/events/"+ev.ID)
		req.Len(puts, 1)
		req.JSONEq(`{"start":"2024-01-02 10:00","end":"2024-01-02 10:30","allDay":false}`, string(puts[0].Body))
	})

	t.Run("should read wall-clock instants in the configured zone", func(t *testing.T) {
		req := require.New(t)
		_, offset := time.Now().Zone()
		zone := time.FixedZone("away", offset+5*3600)
		b := newBridgeIn(t, zone)
		ev := seed(b)

		// Given
		items := decode[[]calendar.Item](t, b.do(t, http.MethodPost, "/api/calendar/reload", ""))
		req.Len(items, 1)
		req.True(items[0].Start.Equal(time.Date(2024, 1, 2, 9, 0, 0, 0, zone)))

		// When
		resp := b.do(t, http.MethodPut, "/api/calendar/"+ev.ID+"/move", `{"start":"2024-01-02T10:00:00","end":"2024-01-02 10:30"}`)

		// Then
		req.Equal(http.StatusOK, resp.StatusCode)
		item := decode[calendar.Item](t, resp)
		req.True(item.Start.Equal(time.Date(2024, 1, 2, 10, 0, 0, 0, zone)))
		req.True(item.End.Equal(time.Date(2024, 1, 2, 10, 30, 0, 0, zone)))
		puts := b.backend.RequestsTo(http.MethodPut, "/api/events/"+ev.ID)
		req.Len(puts, 1)
		req.JSONEq(`{"start":"2024-01-02 10:00","end":"2024-01-02 10:30","allDay":false}`, string(puts[0].Body))
	})

	t.Run("should answer 502 with the server message when the backend refuses", func(t *testing.T) {
		req := require.New(t)
		b := newBridge(t)
		ev := seed(b)
		req.NoError(b.surface.Load(context.Background()))

		// Given
		b.backend.FailNext(http.MethodPut, "/api/events/"+ev.ID, http.StatusNotFound, "Event not found")

		// When
		resp := b.do(t, http.MethodPut, "/api/calendar/"+ev.ID+"/resize", `{"start":"2024-01-02 09:00","end":"2024-01-02 11:00"}`)

		// Then
		req.Equal(http.StatusBadGateway, resp.StatusCode)
		body := decode[models.ErrorResponse](t, resp)
		req.Equal("Event not found", body.Message)
		req.Equal("Event not found", b.bus.Current().Content)
	})

	t.Run("should answer 404 for events not on the calendar", func(t *testing.T) {
		req := require.New(t)
		b := newBridge(t)

		resp := b.do(t, http.MethodPut, "/api/calendar/nope/move", `{"start":"2024-01-02 09:00"}`)
		req.Equal(http.StatusNotFound, resp.StatusCode)

		resp = b.do(t, http.MethodPost, "/api/calendar/nope/click", "")
		req.Equal(http.StatusNotFound, resp.StatusCode)
		req.Empty(b.history.Routes())
	})

	t.Run("should navigate on click", func(t *testing.T) {
		req := require.New(t)
		b := newBridge(t)
		ev := seed(b)
		req.NoError(b.surface.Load(context.Background()))

		resp := b.do(t, http.MethodPost, "/api/calendar/"+ev.ID+"/click", "")

		req.Equal(http.StatusNoContent, resp.StatusCode)
		req.Equal([]nav.Route{nav.EditEvent(ev.ID)}, b.history.Routes())
	})

	t.Run("should reject a gesture without start", func(t *testing.T) {
		req := require.New(t)
		b := newBridge(t)

		resp := b.do(t, http.MethodPut, "/api/calendar/x/move", `{"end":null}`)

		req.Equal(http.StatusBadRequest, resp.StatusCode)
	})
}

func TestRouter_Notification(t *testing.T) {
	t.Run("should expose and dismiss the current notification", func(t *testing.T) {
		req := require.New(t)
		b := newBridge(t)
		b.bus.Publish(notify.Success("Event Created", "The event was created successfully"))

		// When
		got := decode[websocket.NotificationPayload](t, b.do(t, http.MethodGet, "/api/notification", ""))

		// Then
		req.True(got.Visible)
		req.Equal("Event Created", got.Title)

		resp := b.do(t, http.MethodDelete, "/api/notification", "")
		req.Equal(http.StatusNoContent, resp.StatusCode)
		req.False(b.bus.Current().Visible)
	})
}

func TestRouter_Contacts(t *testing.T) {
	t.Run("should filter contacts by query", func(t *testing.T) {
		req := require.New(t)
		b := newBridge(t)
		b.backend.SeedContact(models.Contact{Name: "Ada", Surname: "Lovelace", PhoneNumber: "1"})
		b.backend.SeedContact(models.Contact{Name: "Alan", Surname: "Turing", PhoneNumber: "2"})

		resp := b.do(t, http.MethodGet, "/api/contacts?q=love", "")

		req.Equal(http.StatusOK, resp.StatusCode)
		got := decode[[]models.Contact](t, resp)
		req.Len(got, 1)
		req.Equal("Ada", got[0].Name)
	})

	t.Run("should answer a JSON 404 for unknown routes", func(t *testing.T) {
		req := require.New(t)
		b := newBridge(t)

		resp := b.do(t, http.MethodGet, "/api/nothing", "")

		req.Equal(http.StatusNotFound, resp.StatusCode)
		req.Equal("not_found", decode[models.ErrorResponse](t, resp).Error)
	})
}
