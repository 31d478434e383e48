package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/agenda-app/client/internal/backend"
	"github.com/agenda-app/client/internal/models"
	"github.com/agenda-app/client/internal/nav"
	"github.com/agenda-app/client/internal/notify"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
)

//go:generate go run go.uber.org/mock/mockgen -source=service.go -destination=../mocks/mock_auth_api.go -package=mocks

// API is the backend surface used for authentication.
type API interface {
	Login(ctx context.Context, in models.LoginRequest) (models.TokenResponse, error)
	Register(ctx context.Context, in models.RegisterRequest) (models.TokenResponse, error)
}

var validate = validator.New()

// Service logs users in and out.
type Service struct {
	api   API
	store CredentialStore
	nav   nav.Navigator
	bus   notify.Publisher
	log   *slog.Logger
}

// NewService wires a Service.
func NewService(api API, store CredentialStore, navigator nav.Navigator, bus notify.Publisher, log *slog.Logger) *Service {
	return &Service{api: api, store: store, nav: navigator, bus: bus, log: log}
}

// IsAuthenticated reports whether a token is stored.
func (s *Service) IsAuthenticated() bool {
	_, ok := s.store.Token()
	return ok
}

// Login exchanges credentials for a token, stores it and opens the calendar.
func (s *Service) Login(ctx context.Context, in models.LoginRequest) error {
	if err := validate.Struct(in); err != nil {
		return fmt.Errorf("validating login: %w", err)
	}
	resp, err := s.api.Login(ctx, in)
	return s.complete(resp, err, "login", in.Username)
}

// Register creates an account, stores its token and opens the calendar.
func (s *Service) Register(ctx context.Context, in models.RegisterRequest) error {
	if err := validate.Struct(in); err != nil {
		return fmt.Errorf("validating registration: %w", err)
	}
	resp, err := s.api.Register(ctx, in)
	return s.complete(resp, err, "register", in.Username)
}

// Logout forgets the token and returns to the auth view.
func (s *Service) Logout() error {
	if err := s.store.ClearToken(); err != nil {
		return fmt.Errorf("clearing token: %w", err)
	}
	s.log.Info("logged out")
	s.nav.Navigate(nav.Auth)
	return nil
}

func (s *Service) complete(resp models.TokenResponse, err error, action, username string) error {
	if err != nil {
		s.log.Warn("authentication failed", "action", action, "username", username, "error", err)
		s.bus.Publish(notify.Error(backend.Message(err)))
		return fmt.Errorf("%s: %w", action, notify.Shown(err))
	}
	if resp.Token == "" {
		s.bus.Publish(notify.Error(backend.FallbackMessage))
		return fmt.Errorf("%s: %w", action, notify.Shown(ErrNoToken))
	}
	if err := s.store.SetToken(resp.Token); err != nil {
		return fmt.Errorf("storing token: %w", err)
	}

	s.log.Info("authenticated", "action", action, "username", username)
	s.nav.Navigate(nav.Home)
	return nil
}

// Session describes the stored token without verifying it.
type Session struct {
	Subject   string
	Name      string
	ExpiresAt time.Time
}

type sessionClaims struct {
	Name string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// Session decodes the stored token. Tokens that are not JWTs yield an
// empty Session and no error.
func (s *Service) Session() (Session, error) {
	raw, ok := s.store.Token()
	if !ok {
		return Session{}, ErrNoToken
	}

	var claims sessionClaims
	if _, _, err := jwt.NewParser().ParseUnverified(raw, &claims); err != nil {
		return Session{}, nil
	}

	out := Session{Subject: claims.Subject, Name: claims.Name}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}
