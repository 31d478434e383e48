package calendar_test

import (
	"testing"
	"time"

	"github.com/agenda-app/client/internal/calendar"
	"github.com/stretchr/testify/require"
)

func TestCombine(t *testing.T) {
	paris, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)

	t.Run("should join date and clock in the location", func(t *testing.T) {
		req := require.New(t)

		// When
		got, err := calendar.Combine("2024-01-02", "09:30", false, paris)

		// Then
		req.NoError(err)
		req.Equal(time.Date(2024, 1, 2, 9, 30, 0, 0, paris), got)
	})

	t.Run("should land on midnight for all-day values", func(t *testing.T) {
		req := require.New(t)

		// When
		got, err := calendar.Combine("2024-01-02", "17:45", true, paris)

		// Then
		req.NoError(err)
		req.Equal(time.Date(2024, 1, 2, 0, 0, 0, 0, paris), got)
	})

	t.Run("should ignore a missing clock for all-day values", func(t *testing.T) {
		req := require.New(t)

		got, err := calendar.Combine("2024-01-02", "", true, time.UTC)

		req.NoError(err)
		req.Equal(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("should be idempotent", func(t *testing.T) {
		req := require.New(t)

		first, err := calendar.Combine("2024-03-10", "08:15", false, time.UTC)
		req.NoError(err)
		date, clock := calendar.Decompose(first)
		second, err := calendar.Combine(date, clock, false, time.UTC)

		req.NoError(err)
		req.Equal(first, second)
	})

	t.Run("should reject malformed input", func(t *testing.T) {
		req := require.New(t)

		_, err := calendar.Combine("02/01/2024", "09:00", false, time.UTC)
		req.Error(err)

		_, err = calendar.Combine("2024-01-02", "9h", false, time.UTC)
		req.Error(err)
	})
}

func TestDecompose(t *testing.T) {
	t.Run("should round trip through Combine at minute precision", func(t *testing.T) {
		req := require.New(t)
		zone := time.FixedZone("UTC+2", 2*60*60)
		instants := []time.Time{
			time.Date(2024, 1, 2, 9, 0, 0, 0, zone),
			time.Date(2024, 2, 29, 23, 59, 0, 0, zone),
			time.Date(2024, 12, 31, 0, 0, 0, 0, zone),
		}

		for _, want := range instants {
			date, clock := calendar.Decompose(want)
			got, err := calendar.Combine(date, clock, false, zone)

			req.NoError(err)
			req.True(want.Equal(got), "%s != %s", want, got)
		}
	})

	t.Run("should format date and clock separately", func(t *testing.T) {
		req := require.New(t)

		date, clock := calendar.Decompose(time.Date(2024, 7, 4, 18, 5, 42, 0, time.UTC))

		req.Equal("2024-07-04", date)
		req.Equal("18:05", clock)
	})
}
