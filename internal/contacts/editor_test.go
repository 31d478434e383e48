package contacts_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/agenda-app/client/internal/backend"
	"github.com/agenda-app/client/internal/contacts"
	"github.com/agenda-app/client/internal/mocks"
	"github.com/agenda-app/client/internal/models"
	"github.com/agenda-app/client/internal/nav"
	"github.com/agenda-app/client/internal/notify"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	store   *mocks.MockContactStore
	confirm *mocks.MockConfirmer
	history *nav.History
	bus     *notify.Bus
	editors *contacts.Editors
}

func newFixture(t *testing.T) fixture {
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	f := fixture{
		store:   mocks.NewMockContactStore(ctrl),
		confirm: mocks.NewMockConfirmer(ctrl),
		history: nav.NewHistory(),
		bus:     notify.NewBus(log),
	}
	f.editors = contacts.NewEditors(f.store, f.bus, f.history, f.confirm, log)
	return f
}

var ada = models.Contact{ID: "c-1", Name: "Ada", Surname: "Lovelace", PhoneNumber: "+44 20 0000", Email: "ada@example.com"}

func TestEditor_Save(t *testing.T) {
	ctx := context.Background()

	t.Run("should create the contact and return to the listing", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)
		editor, err := f.editors.Open(ctx, "")
		req.NoError(err)

		// Given
		req.NoError(editor.SetForm(contacts.Form{Name: " Ada ", PhoneNumber: "+44 20 0000"}))
		f.store.EXPECT().
			Create(gomock.Any(), models.Contact{Name: "Ada", PhoneNumber: "+44 20 0000"}).
			Return(ada, nil)

		// When
		err = editor.Save(ctx)

		// Then
		req.NoError(err)
		req.Equal(contacts.PhaseDone, editor.Phase())
		req.Equal([]nav.Route{nav.Contacts}, f.history.Routes())
		msg := f.bus.Current()
		req.Equal("Contact Created", msg.Title)
		req.Equal("The contact was created successfully", msg.Content)
		req.Equal(notify.KindSuccess, msg.Kind)
	})

	t.Run("should update an existing contact", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)

		// Given
		f.store.EXPECT().Get(gomock.Any(), "c-1").Return(ada, nil)
		editor, err := f.editors.Open(ctx, "c-1")
		req.NoError(err)
		form := editor.Form()
		form.Surname = "King"
		req.NoError(editor.SetForm(form))

		want := ada
		want.ID = ""
		want.Surname = "King"
		f.store.EXPECT().Update(gomock.Any(), "c-1", want).Return(want, nil)

		// When
		err = editor.Save(ctx)

		// Then
		req.NoError(err)
		req.Equal("Contact Updated", f.bus.Current().Title)
		req.Equal("The contact was updated successfully", f.bus.Current().Content)
	})

	t.Run("should require a name and a phone number", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)
		editor, err := f.editors.Open(ctx, "")
		req.NoError(err)

		// Given
		req.NoError(editor.SetForm(contacts.Form{Email: "not-an-email"}))

		// When
		err = editor.Save(ctx)

		// Then
		var verr *contacts.ValidationError
		req.ErrorAs(err, &verr)
		req.Equal([]string{"name", "phoneNumber", "email"}, verr.Fields)
		req.False(f.bus.Current().Visible)
	})

	t.Run("should show the server message and keep the session open", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)
		editor, err := f.editors.Open(ctx, "")
		req.NoError(err)
		req.NoError(editor.SetForm(contacts.Form{Name: "Ada", PhoneNumber: "1"}))

		// Given
		f.store.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(models.Contact{}, &backend.RemoteError{Status: 400, Message: "Phone number already used"})

		// When
		err = editor.Save(ctx)

		// Then
		req.Error(err)
		req.Equal(contacts.PhaseCreate, editor.Phase())
		req.Equal(notify.KindError, f.bus.Current().Kind)
		req.Equal("Phone number already used", f.bus.Current().Content)
		req.Empty(f.history.Routes())
	})
}

func TestEditors_Open(t *testing.T) {
	t.Run("should go back to the listing when the contact cannot be fetched", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)

		// Given
		f.store.EXPECT().Get(gomock.Any(), "gone").Return(models.Contact{}, &backend.RemoteError{Status: 404, Message: "Contact not found"})

		// When
		editor, err := f.editors.Open(context.Background(), "gone")

		// Then
		req.Error(err)
		req.Equal(contacts.PhaseDone, editor.Phase())
		req.Equal([]nav.Route{nav.Contacts}, f.history.Routes())
		req.False(f.bus.Current().Visible)
	})
}

func TestEditor_Delete(t *testing.T) {
	ctx := context.Background()

	open := func(t *testing.T, f fixture) *contacts.Editor {
		f.store.EXPECT().Get(gomock.Any(), ada.ID).Return(ada, nil)
		editor, err := f.editors.Open(ctx, ada.ID)
		require.NoError(t, err)
		return editor
	}

	t.Run("should keep the contact when the user declines", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)
		editor := open(t, f)

		// Given
		f.confirm.EXPECT().Confirm(gomock.Any(), gomock.Any()).Return(false, nil)

		// When
		deleted, err := editor.Delete(ctx)

		// Then
		req.NoError(err)
		req.False(deleted)
		req.Equal(contacts.PhaseEdit, editor.Phase())
	})

	t.Run("should delete after confirmation", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)
		editor := open(t, f)

		// Given
		f.confirm.EXPECT().Confirm(gomock.Any(), gomock.Any()).Return(true, nil)
		f.store.EXPECT().Delete(gomock.Any(), ada.ID).Return(nil)

		// When
		deleted, err := editor.Delete(ctx)

		// Then
		req.NoError(err)
		req.True(deleted)
		req.Equal([]nav.Route{nav.Contacts}, f.history.Routes())
		req.Equal("Contact Deleted", f.bus.Current().Title)
		req.Equal("The contact was deleted successfully", f.bus.Current().Content)
	})

	t.Run("should stay in edit and report a failed delete", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)
		editor := open(t, f)
		var errs []notify.Message
		f.bus.Subscribe(func(m notify.Message) {
			if m.Visible && m.Kind == notify.KindError {
				errs = append(errs, m)
			}
		})

		// Given
		f.confirm.EXPECT().Confirm(gomock.Any(), gomock.Any()).Return(true, nil)
		f.store.EXPECT().Delete(gomock.Any(), ada.ID).
			Return(&backend.RemoteError{Status: 500, Message: "Database unavailable"})

		// When
		deleted, err := editor.Delete(ctx)

		// Then
		req.Error(err)
		req.True(notify.WasShown(err))
		req.False(deleted)
		req.Equal(contacts.PhaseEdit, editor.Phase())
		req.Empty(f.history.Routes())
		req.Len(errs, 1)
		req.Equal("Database unavailable", errs[0].Content)
	})

	t.Run("should drop a completion after Close", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)
		editor := open(t, f)

		// Given
		f.confirm.EXPECT().Confirm(gomock.Any(), gomock.Any()).Return(true, nil)
		f.store.EXPECT().Delete(gomock.Any(), ada.ID).DoAndReturn(func(ctx context.Context, _ string) error {
			editor.Close()
			return ctx.Err()
		})

		// When
		deleted, err := editor.Delete(ctx)

		// Then
		req.ErrorIs(err, contacts.ErrSessionClosed)
		req.False(deleted)
		req.Empty(f.history.Routes())
		req.False(f.bus.Current().Visible)
	})
}
