package notify

import (
	"log/slog"
	"sync"
	"time"
)

// Countdown defaults.
const (
	DefaultInterval = 75 * time.Millisecond
	DefaultStep     = 2
)

// Countdown shrinks the visible message on every tick and dismisses it
// when the width reaches zero. At most one ticker runs at a time.
type Countdown struct {
	bus      *Bus
	log      *slog.Logger
	clock    Clock
	interval time.Duration
	step     int
	sub      *Subscription

	mu     sync.Mutex
	ticker Ticker
	stop   chan struct{}
}

// CountdownOption configures a Countdown.
type CountdownOption func(*Countdown)

// WithInterval sets the tick interval.
func WithInterval(d time.Duration) CountdownOption {
	return func(c *Countdown) {
		if d > 0 {
			c.interval = d
		}
	}
}

// WithStep sets the width removed per tick.
func WithStep(step int) CountdownOption {
	return func(c *Countdown) {
		if step > 0 {
			c.step = step
		}
	}
}

// WithClock replaces the system clock.
func WithClock(clock Clock) CountdownOption {
	return func(c *Countdown) {
		c.clock = clock
	}
}

// NewCountdown attaches a countdown to bus.
func NewCountdown(bus *Bus, log *slog.Logger, opts ...CountdownOption) *Countdown {
	c := &Countdown{
		bus:      bus,
		log:      log,
		clock:    SystemClock(),
		interval: DefaultInterval,
		step:     DefaultStep,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.sub = bus.Subscribe(c.handle)
	return c
}

// Active reports whether a ticker is running.
func (c *Countdown) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stop != nil
}

// Close detaches from the bus and stops any running ticker.
func (c *Countdown) Close() {
	c.sub.Unsubscribe()
	c.mu.Lock()
	c.stopLocked()
	c.mu.Unlock()
}

func (c *Countdown) handle(m Message) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopLocked()
	if !m.Visible {
		return
	}

	ticker := c.clock.NewTicker(c.interval)
	stop := make(chan struct{})
	c.ticker, c.stop = ticker, stop
	go c.run(ticker, stop, m.seq)
}

func (c *Countdown) run(ticker Ticker, stop chan struct{}, seq uint64) {
	for {
		select {
		case <-stop:
			return
		case <-ticker.C():
			if c.tick(stop, seq) {
				return
			}
		}
	}
}

// tick returns true once this ticker is finished.
func (c *Countdown) tick(stop chan struct{}, seq uint64) bool {
	c.mu.Lock()
	if c.stop != stop {
		c.mu.Unlock()
		return true
	}
	width, ok := c.bus.shrinkFor(seq, c.step)
	if !ok {
		c.mu.Unlock()
		return false
	}
	if width > 0 {
		c.mu.Unlock()
		return false
	}
	c.stopLocked()
	c.mu.Unlock()

	c.log.Debug("notification countdown elapsed")
	c.bus.Dismiss()
	return true
}

func (c *Countdown) stopLocked() {
	if c.stop == nil {
		return
	}
	c.ticker.Stop()
	close(c.stop)
	c.ticker, c.stop = nil, nil
}
