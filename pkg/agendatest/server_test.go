package agendatest_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/agenda-app/client/internal/models"
	"github.com/agenda-app/client/pkg/agendatest"
	"github.com/stretchr/testify/require"
)

func call(t *testing.T, method, url, token string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestServer_Auth(t *testing.T) {
	srv := agendatest.NewServer()
	defer srv.Close()

	t.Run("should issue a token on register and login", func(t *testing.T) {
		req := require.New(t)

		resp := call(t, http.MethodPost, srv.BaseURL()+"auth/register", "", models.RegisterRequest{
			Username: "alice", Email: "alice@example.com", Password: "secret", Name: "Alice", Surname: "Liddell",
		})
		req.Equal(http.StatusCreated, resp.StatusCode)

		resp = call(t, http.MethodPost, srv.BaseURL()+"auth/login", "", models.LoginRequest{Username: "alice", Password: "secret"})
		req.Equal(http.StatusOK, resp.StatusCode)
		var token models.TokenResponse
		req.NoError(json.NewDecoder(resp.Body).Decode(&token))
		req.NotEmpty(token.Token)

		resp = call(t, http.MethodGet, srv.BaseURL()+"events", token.Token, nil)
		req.Equal(http.StatusOK, resp.StatusCode)
	})

	t.Run("should reject a wrong password", func(t *testing.T) {
		req := require.New(t)

		resp := call(t, http.MethodPost, srv.BaseURL()+"auth/login", "", models.LoginRequest{Username: "alice", Password: "nope"})

		req.Equal(http.StatusUnauthorized, resp.StatusCode)
		var body models.ErrorResponse
		req.NoError(json.NewDecoder(resp.Body).Decode(&body))
		req.Equal("Invalid username or password", body.Message)
	})

	t.Run("should reject protected calls without a valid token", func(t *testing.T) {
		req := require.New(t)

		req.Equal(http.StatusUnauthorized, call(t, http.MethodGet, srv.BaseURL()+"events", "", nil).StatusCode)
		req.Equal(http.StatusUnauthorized, call(t, http.MethodGet, srv.BaseURL()+"contacts", "null", nil).StatusCode)
	})
}

func TestServer_PartialUpdate(t *testing.T) {
	req := require.New(t)
	srv := agendatest.NewServer()
	defer srv.Close()
	token := srv.MintToken("alice")

	// Given
	ev := srv.SeedEvent(models.Event{Title: "Standup", BackgroundColor: models.DefaultBackgroundColor})

	// When
	resp := call(t, http.MethodPut, srv.BaseURL()+"events/"+ev.ID, token, map[string]any{"allDay": true})

	// Then
	req.Equal(http.StatusOK, resp.StatusCode)
	stored, ok := srv.Event(ev.ID)
	req.True(ok)
	req.True(stored.AllDay)
	req.Equal("Standup", stored.Title)
	req.Equal(models.DefaultBackgroundColor, stored.BackgroundColor)
}

func TestServer_FailNext(t *testing.T) {
	req := require.New(t)
	srv := agendatest.NewServer()
	defer srv.Close()
	token := srv.MintToken("alice")
	ev := srv.SeedEvent(models.Event{Title: "Standup"})

	srv.FailNext(http.MethodGet, "/api/events/"+ev.ID, http.StatusNotFound, "Event not found")

	req.Equal(http.StatusNotFound, call(t, http.MethodGet, srv.BaseURL()+"events/"+ev.ID, token, nil).StatusCode)
	req.Equal(http.StatusOK, call(t, http.MethodGet, srv.BaseURL()+"events/"+ev.ID, token, nil).StatusCode)
	req.Len(srv.RequestsTo(http.MethodGet, "/api/events/"+ev.ID), 2)
}
