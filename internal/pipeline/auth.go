package pipeline

import (
	"context"
	"net/http"

	"golang.org/x/oauth2"
)

// CredentialReader yields the current bearer token.
type CredentialReader interface {
	Token() (string, bool)
}

type anonymousKey struct{}

// Anonymous marks ctx so the auth stage leaves the request untouched.
func Anonymous(ctx context.Context) context.Context {
	return context.WithValue(ctx, anonymousKey{}, true)
}

// IsAnonymous reports whether ctx was marked by Anonymous.
func IsAnonymous(ctx context.Context) bool {
	v, _ := ctx.Value(anonymousKey{}).(bool)
	return v
}

// Auth returns a stage that sets "Authorization: Bearer <token>" on a
// clone of every request. The token is read on each call. When none is
// stored, absent is used instead, or no header is set if absent is empty.
func Auth(creds CredentialReader, absent string) Stage {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
			if IsAnonymous(req.Context()) {
				return next.RoundTrip(req)
			}

			token, ok := creds.Token()
			if !ok || token == "" {
				if absent == "" {
					return next.RoundTrip(req)
				}
				token = absent
			}

			clone := req.Clone(req.Context())
			(&oauth2.Token{AccessToken: token}).SetAuthHeader(clone)
			return next.RoundTrip(clone)
		})
	}
}
