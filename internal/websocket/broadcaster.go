package websocket

import (
	"log/slog"

	"github.com/agenda-app/client/internal/calendar"
	"github.com/agenda-app/client/internal/nav"
	"github.com/agenda-app/client/internal/notify"
	"github.com/agenda-app/client/internal/pipeline"
)

// Broadcaster turns client state changes into hub messages.
type Broadcaster struct {
	hub *Hub
	log *slog.Logger
}

// NewBroadcaster creates a broadcaster writing to hub.
func NewBroadcaster(hub *Hub, log *slog.Logger) *Broadcaster {
	return &Broadcaster{hub: hub, log: log}
}

// Sources are the state holders a broadcaster can follow. Nil fields are
// skipped.
type Sources struct {
	Bus     *notify.Bus
	Busy    *pipeline.InFlight
	History *nav.History
	Surface *calendar.Surface
}

// Follow subscribes to every non-nil source. The returned function stops
// the bus and busy subscriptions.
func (b *Broadcaster) Follow(src Sources) (stop func()) {
	var stops []func()

	if src.Bus != nil {
		sub := src.Bus.Subscribe(b.Notification)
		stops = append(stops, sub.Unsubscribe)
	}
	if src.Busy != nil {
		stops = append(stops, src.Busy.Subscribe(b.BusyChanged))
	}
	if src.History != nil {
		src.History.OnNavigate(b.Navigation)
	}
	if src.Surface != nil {
		src.Surface.OnChange(b.CalendarLoaded)
	}

	return func() {
		for _, fn := range stops {
			fn()
		}
	}
}

// Notification sends a notification event.
func (b *Broadcaster) Notification(m notify.Message) {
	b.broadcast(NewMessage(TypeNotification, NewNotificationPayload(m)))
}

// BusyChanged sends a busy.changed event.
func (b *Broadcaster) BusyChanged(busy bool) {
	b.broadcast(NewMessage(TypeBusyChanged, BusyPayload{Busy: busy}))
}

// Navigation sends a navigation event.
func (b *Broadcaster) Navigation(r nav.Route) {
	b.broadcast(NewMessage(TypeNavigation, NavigationPayload{Route: string(r)}))
}

// CalendarLoaded sends the calendar items.
func (b *Broadcaster) CalendarLoaded(items []calendar.Item) {
	b.broadcast(NewMessage(TypeCalendarLoaded, CalendarPayload{Items: items}))
}

func (b *Broadcaster) broadcast(msg Message) {
	data, err := msg.JSON()
	if err != nil {
		b.log.Error("encoding websocket message failed", "type", msg.Type, "error", err)
		return
	}
	b.hub.Broadcast(data)
}
