package backend

import (
	"context"
	"net/http"

	"github.com/agenda-app/client/internal/models"
	"github.com/agenda-app/client/internal/pipeline"
)

// Auth is the auth resource. Its calls carry no bearer token.
type Auth struct {
	c *Client
}

// Register creates an account and returns its token.
func (a *Auth) Register(ctx context.Context, in models.RegisterRequest) (models.TokenResponse, error) {
	var out models.TokenResponse
	err := a.c.do(pipeline.Anonymous(ctx), http.MethodPost, []string{"auth", "register"}, in, &out)
	return out, err
}

// Login exchanges credentials for a token.
func (a *Auth) Login(ctx context.Context, in models.LoginRequest) (models.TokenResponse, error) {
	var out models.TokenResponse
	err := a.c.do(pipeline.Anonymous(ctx), http.MethodPost, []string{"auth", "login"}, in, &out)
	return out, err
}
