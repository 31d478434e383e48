package pipeline

import (
	"io"
	"net/http"
	"sync"
)

// InFlight counts outstanding backend calls and signals busy/idle
// transitions to subscribers.
type InFlight struct {
	mu     sync.Mutex
	n      int
	nextID int
	subs   map[int]func(busy bool)
}

// NewInFlight creates an idle counter.
func NewInFlight() *InFlight {
	return &InFlight{subs: make(map[int]func(bool))}
}

// Acquire increments the counter and returns the matching release.
// Calling release more than once has no further effect.
func (c *InFlight) Acquire() (release func()) {
	c.add(1)
	var once sync.Once
	return func() {
		once.Do(func() { c.add(-1) })
	}
}

// Count returns the number of outstanding calls.
func (c *InFlight) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}

// Busy reports whether any call is outstanding.
func (c *InFlight) Busy() bool {
	return c.Count() > 0
}

// Subscribe registers fn for busy/idle transitions. fn runs with the
// counter locked and must not call back into it.
func (c *InFlight) Subscribe(fn func(busy bool)) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.subs == nil {
		c.subs = make(map[int]func(bool))
	}
	c.nextID++
	id := c.nextID
	c.subs[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subs, id)
	}
}

func (c *InFlight) add(delta int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	before := c.n
	c.n += delta
	if c.n < 0 {
		c.n = 0
	}

	switch {
	case before == 0 && c.n > 0:
		c.notifyLocked(true)
	case before > 0 && c.n == 0:
		c.notifyLocked(false)
	}
}

func (c *InFlight) notifyLocked(busy bool) {
	for _, fn := range c.subs {
		fn(busy)
	}
}

// Busy returns a stage that holds the counter for the lifetime of each
// call. The slot is released when the response body is closed, or right
// away when the call fails or panics.
func Busy(counter *InFlight) Stage {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(req *http.Request) (resp *http.Response, err error) {
			release := counter.Acquire()
			handedOff := false
			defer func() {
				if !handedOff {
					release()
				}
			}()

			resp, err = next.RoundTrip(req)
			if err != nil || resp == nil || resp.Body == nil {
				return resp, err
			}

			resp.Body = &releasingBody{ReadCloser: resp.Body, release: release}
			handedOff = true
			return resp, nil
		})
	}
}

type releasingBody struct {
	io.ReadCloser
	release func()
}

func (b *releasingBody) Close() error {
	defer b.release()
	return b.ReadCloser.Close()
}
