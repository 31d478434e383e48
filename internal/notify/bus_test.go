package notify_test

import (
	"log/slog"
	"testing"

	"github.com/agenda-app/client/internal/notify"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func newBus() *notify.Bus {
	return notify.NewBus(logs.GetLoggerFromLevel(slog.LevelDebug))
}

func TestBus_Publish(t *testing.T) {
	t.Run("should make the latest published message current and visible", func(t *testing.T) {
		req := require.New(t)
		bus := newBus()

		for _, title := range []string{"first", "second", "third"} {
			// When
			bus.Publish(notify.Message{Title: title})

			// Then
			current := bus.Current()
			req.Equal(title, current.Title)
			req.True(current.Visible)
			req.Equal(notify.FullWidth, current.RemainingWidth)
		}
	})

	t.Run("should keep an unset kind neutral", func(t *testing.T) {
		req := require.New(t)
		bus := newBus()

		req.Equal(notify.KindNone, bus.Publish(notify.Message{Title: "plain"}).Kind)
		req.Equal(notify.KindError, bus.Publish(notify.Error("boom")).Kind)
		req.Equal(notify.KindSuccess, bus.Publish(notify.Success("ok", "done")).Kind)
	})

	t.Run("should deliver to subscribers in publish order", func(t *testing.T) {
		req := require.New(t)
		bus := newBus()
		var first, second []string
		bus.Subscribe(func(m notify.Message) { first = append(first, m.Title) })
		bus.Subscribe(func(m notify.Message) { second = append(second, m.Title) })

		// When
		bus.Publish(notify.Message{Title: "a"})
		bus.Publish(notify.Message{Title: "b"})

		// Then
		req.Equal([]string{"a", "b"}, first)
		req.Equal([]string{"a", "b"}, second)
	})

	t.Run("should queue a publish made from inside a handler", func(t *testing.T) {
		req := require.New(t)
		bus := newBus()
		var seen []string
		bus.Subscribe(func(m notify.Message) {
			if m.Title == "a" {
				bus.Publish(notify.Message{Title: "from handler"})
			}
		})
		bus.Subscribe(func(m notify.Message) { seen = append(seen, m.Title) })

		// When
		bus.Publish(notify.Message{Title: "a"})

		// Then
		req.Equal([]string{"a", "from handler"}, seen)
		req.Equal("from handler", bus.Current().Title)
	})
}

func TestBus_Dismiss(t *testing.T) {
	t.Run("should republish the current message as invisible", func(t *testing.T) {
		req := require.New(t)
		bus := newBus()
		var seen []notify.Message
		bus.Subscribe(func(m notify.Message) { seen = append(seen, m) })
		bus.Publish(notify.Error("Event not found"))

		// When
		bus.Dismiss()

		// Then
		req.Len(seen, 2)
		req.True(seen[0].Visible)
		req.False(seen[1].Visible)
		req.Equal("Event not found", seen[1].Content)
		req.False(bus.Current().Visible)
	})
}

func TestBus_Unsubscribe(t *testing.T) {
	req := require.New(t)
	bus := newBus()
	calls := 0
	sub := bus.Subscribe(func(notify.Message) { calls++ })

	bus.Publish(notify.Message{Title: "a"})
	sub.Unsubscribe()
	bus.Publish(notify.Message{Title: "b"})

	req.Equal(1, calls)
}

func TestBus_Shrink(t *testing.T) {
	req := require.New(t)
	bus := newBus()
	bus.Publish(notify.Message{Title: "a"})

	req.Equal(98, bus.Shrink(2))
	req.Equal(0, bus.Shrink(500))
	req.Equal(0, bus.Current().RemainingWidth)
}
