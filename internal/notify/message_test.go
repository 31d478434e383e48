package notify_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/agenda-app/client/internal/notify"
	"github.com/stretchr/testify/require"
)

func TestShown(t *testing.T) {
	t.Run("should survive wrapping and keep the cause", func(t *testing.T) {
		req := require.New(t)
		cause := errors.New("dial tcp: connection refused")

		err := fmt.Errorf("saving event: %w", notify.Shown(cause))

		req.True(notify.WasShown(err))
		req.ErrorIs(err, cause)
		req.Equal("saving event: dial tcp: connection refused", err.Error())
	})

	t.Run("should leave unmarked and nil errors alone", func(t *testing.T) {
		req := require.New(t)

		req.False(notify.WasShown(errors.New("boom")))
		req.False(notify.WasShown(nil))
		req.NoError(notify.Shown(nil))
	})
}
