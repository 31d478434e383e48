// Package backend is the REST client for the agenda backend.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/agenda-app/client/internal/models"
)

// DefaultTimeout bounds a single backend call.
const DefaultTimeout = 30 * time.Second

// Client issues backend calls through the given transport, normally the
// request pipeline.
type Client struct {
	base *url.URL
	http *http.Client
	log  *slog.Logger
	loc  *time.Location
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithLocation sets the zone zone-less instants in responses are read in.
// It defaults to time.Local.
func WithLocation(loc *time.Location) ClientOption {
	return func(c *Client) {
		if loc != nil {
			c.loc = loc
		}
	}
}

// NewClient creates a client for the backend rooted at baseURL.
func NewClient(baseURL string, transport http.RoundTripper, timeout time.Duration, log *slog.Logger, opts ...ClientOption) (*Client, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing backend url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("backend url %q must be absolute", baseURL)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c := &Client{
		base: base,
		http: &http.Client{Transport: transport, Timeout: timeout},
		log:  log,
		loc:  time.Local,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Location is the zone instants in responses are read in.
func (c *Client) Location() *time.Location {
	return c.loc
}

// Events returns the events resource.
func (c *Client) Events() *Events {
	return &Events{c: c}
}

// Contacts returns the contacts resource.
func (c *Client) Contacts() *Contacts {
	return &Contacts{c: c}
}

// Auth returns the auth resource.
func (c *Client) Auth() *Auth {
	return &Auth{c: c}
}

func (c *Client) do(ctx context.Context, method string, path []string, in, out any) error {
	endpoint := c.base.JoinPath(path...)

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), body)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, endpoint.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeRemoteError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decoding %s %s response: %w", method, endpoint.Path, err)
	}
	return nil
}

func decodeRemoteError(resp *http.Response) error {
	remote := &RemoteError{Status: resp.StatusCode}

	var body models.ErrorResponse
	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err == nil && len(data) > 0 && json.Unmarshal(data, &body) == nil {
		remote.Code = body.Error
		remote.Message = body.Message
	}
	return remote
}
