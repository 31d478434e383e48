package auth_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/agenda-app/client/internal/auth"
	"github.com/agenda-app/client/internal/backend"
	"github.com/agenda-app/client/internal/mocks"
	"github.com/agenda-app/client/internal/models"
	"github.com/agenda-app/client/internal/nav"
	"github.com/agenda-app/client/internal/notify"
	"github.com/agenda-app/client/pkg/agendatest"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	api     *mocks.MockAPI
	store   *auth.MemoryStore
	history *nav.History
	bus     *notify.Bus
	service *auth.Service
}

func newFixture(t *testing.T) fixture {
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	f := fixture{
		api:     mocks.NewMockAPI(ctrl),
		store:   auth.NewMemoryStore(),
		history: nav.NewHistory(),
		bus:     notify.NewBus(log),
	}
	f.service = auth.NewService(f.api, f.store, f.history, f.bus, log)
	return f
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()
	creds := models.LoginRequest{Username: "alice", Password: "secret"}

	t.Run("should store the token and open the calendar", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)

		// Given
		f.api.EXPECT().Login(gomock.Any(), creds).Return(models.TokenResponse{Token: "tok"}, nil)

		// When
		err := f.service.Login(ctx, creds)

		// Then
		req.NoError(err)
		token, ok := f.store.Token()
		req.True(ok)
		req.Equal("tok", token)
		req.True(f.service.IsAuthenticated())
		req.Equal([]nav.Route{nav.Home}, f.history.Routes())
		req.False(f.bus.Current().Visible)
	})

	t.Run("should surface the server message and stay", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)

		// Given
		remote := &backend.RemoteError{Status: 401, Message: "Invalid username or password"}
		f.api.EXPECT().Login(gomock.Any(), creds).Return(models.TokenResponse{}, remote)

		// When
		err := f.service.Login(ctx, creds)

		// Then
		req.ErrorIs(err, remote)
		req.False(f.service.IsAuthenticated())
		req.Empty(f.history.Routes())
		msg := f.bus.Current()
		req.Equal(notify.ErrorTitle, msg.Title)
		req.Equal("Invalid username or password", msg.Content)
		req.Equal(notify.KindError, msg.Kind)
	})

	t.Run("should not call the backend with missing fields", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)

		err := f.service.Login(ctx, models.LoginRequest{Username: "alice"})

		req.Error(err)
		req.False(f.bus.Current().Visible)
	})

	t.Run("should reject an empty token", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)
		f.api.EXPECT().Login(gomock.Any(), creds).Return(models.TokenResponse{}, nil)

		err := f.service.Login(ctx, creds)

		req.ErrorIs(err, auth.ErrNoToken)
		req.False(f.service.IsAuthenticated())
	})
}

func TestService_Register(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	in := models.RegisterRequest{Username: "bob", Email: "bob@example.com", Password: "pw", Name: "Bob", Surname: "Builder"}
	f.api.EXPECT().Register(gomock.Any(), in).Return(models.TokenResponse{Token: "tok"}, nil)

	req.NoError(f.service.Register(context.Background(), in))

	req.True(f.service.IsAuthenticated())
	req.Equal(nav.Home, f.history.Current())
}

func TestService_Logout(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	req.NoError(f.store.SetToken("tok"))

	req.NoError(f.service.Logout())

	req.False(f.service.IsAuthenticated())
	req.Equal([]nav.Route{nav.Auth}, f.history.Routes())
}

func TestService_Session(t *testing.T) {
	t.Run("should decode a token minted by the backend", func(t *testing.T) {
		req := require.New(t)
		srv := agendatest.NewServer()
		defer srv.Close()
		f := newFixture(t)
		req.NoError(f.store.SetToken(srv.MintToken("alice")))

		session, err := f.service.Session()

		req.NoError(err)
		req.Equal("alice", session.Subject)
		req.False(session.ExpiresAt.IsZero())
	})

	t.Run("should fail without a token", func(t *testing.T) {
		_, err := newFixture(t).service.Session()
		require.True(t, errors.Is(err, auth.ErrNoToken))
	})

	t.Run("should tolerate opaque tokens", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)
		req.NoError(f.store.SetToken("opaque"))

		session, err := f.service.Session()

		req.NoError(err)
		req.Empty(session.Subject)
	})
}
