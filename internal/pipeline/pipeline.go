// Package pipeline composes the stages every outbound backend call goes
// through: busy tracking, credential injection and request logging.
package pipeline

import (
	"log/slog"
	"net/http"
)

// Stage wraps a transport with extra behavior.
type Stage func(next http.RoundTripper) http.RoundTripper

// RoundTripperFunc adapts a function to http.RoundTripper.
type RoundTripperFunc func(*http.Request) (*http.Response, error)

// RoundTrip implements http.RoundTripper.
func (f RoundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// Chain wraps base with stages. The first stage is the outermost one.
func Chain(base http.RoundTripper, stages ...Stage) http.RoundTripper {
	rt := base
	for i := len(stages) - 1; i >= 0; i-- {
		rt = stages[i](rt)
	}
	return rt
}

// Pipeline is the transport used for all backend calls.
type Pipeline struct {
	rt      http.RoundTripper
	counter *InFlight
}

// Option configures a Pipeline.
type Option func(*options)

type options struct {
	absentToken string
}

// WithAbsentToken sets the bearer value sent when no token is stored.
// An empty value, the default, sends no Authorization header at all.
func WithAbsentToken(placeholder string) Option {
	return func(o *options) {
		o.absentToken = placeholder
	}
}

// New builds the pipeline: busy tracking outermost, then credentials,
// then logging in front of base.
func New(base http.RoundTripper, creds CredentialReader, counter *InFlight, log *slog.Logger, opts ...Option) *Pipeline {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if base == nil {
		base = http.DefaultTransport
	}

	return &Pipeline{
		rt: Chain(base,
			Busy(counter),
			Auth(creds, o.absentToken),
			Logging(log),
		),
		counter: counter,
	}
}

// Dispatch sends req through every stage.
func (p *Pipeline) Dispatch(req *http.Request) (*http.Response, error) {
	return p.rt.RoundTrip(req)
}

// RoundTrip implements http.RoundTripper.
func (p *Pipeline) RoundTrip(req *http.Request) (*http.Response, error) {
	return p.Dispatch(req)
}

// InFlight returns the counter driven by the busy stage.
func (p *Pipeline) InFlight() *InFlight {
	return p.counter
}
