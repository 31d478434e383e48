package contacts_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/agenda-app/client/internal/contacts"
	"github.com/agenda-app/client/internal/mocks"
	"github.com/agenda-app/client/internal/models"
	"github.com/agenda-app/client/internal/notify"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestList(t *testing.T) {
	ctx := context.Background()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	fetched := []models.Contact{
		{ID: "1", Name: "bob", Surname: "Marley"},
		{ID: "2", Name: "Alice", Surname: "Smith"},
		{ID: "3", Name: "Bob", Surname: "Dylan"},
		{ID: "4", Name: "Alice", Surname: "Cooper"},
	}

	t.Run("should sort by name, case-sensitive and stable", func(t *testing.T) {
		req := require.New(t)
		store := mocks.NewMockContactStore(gomock.NewController(t))
		list := contacts.NewList(store, notify.NewBus(log), log)

		// Given
		store.EXPECT().List(gomock.Any()).Return(append([]models.Contact(nil), fetched...), nil)

		// When
		err := list.Load(ctx)

		// Then
		req.NoError(err)
		ids := make([]string, 0, 4)
		for _, c := range list.All() {
			ids = append(ids, c.ID)
		}
		req.Equal([]string{"2", "4", "3", "1"}, ids)
	})

	t.Run("should filter on name or surname ignoring case", func(t *testing.T) {
		req := require.New(t)
		store := mocks.NewMockContactStore(gomock.NewController(t))
		list := contacts.NewList(store, notify.NewBus(log), log)
		store.EXPECT().List(gomock.Any()).Return(append([]models.Contact(nil), fetched...), nil)
		req.NoError(list.Load(ctx))

		req.Len(list.Filter("BOB"), 2)
		req.Len(list.Filter("coo"), 1)
		req.Len(list.Filter(""), 4)
		req.Empty(list.Filter("zzz"))
	})

	t.Run("should announce a failed load", func(t *testing.T) {
		req := require.New(t)
		store := mocks.NewMockContactStore(gomock.NewController(t))
		bus := notify.NewBus(log)
		list := contacts.NewList(store, bus, log)

		// Given
		store.EXPECT().List(gomock.Any()).Return(nil, errors.New("boom"))

		// When
		err := list.Load(ctx)

		// Then
		req.Error(err)
		req.Equal(notify.KindError, bus.Current().Kind)
		req.Equal(contacts.LoadFailedMessage, bus.Current().Content)
		req.Empty(list.All())
	})
}
