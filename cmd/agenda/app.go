package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/agenda-app/client/internal/auth"
	"github.com/agenda-app/client/internal/backend"
	"github.com/agenda-app/client/internal/calendar"
	"github.com/agenda-app/client/internal/config"
	"github.com/agenda-app/client/internal/contacts"
	"github.com/agenda-app/client/internal/nav"
	"github.com/agenda-app/client/internal/notify"
	"github.com/agenda-app/client/internal/pipeline"
	"github.com/agenda-app/client/internal/prompt"
	"github.com/agenda-app/client/internal/storage"
	"github.com/mama165/sdk-go/logs"
	"github.com/urfave/cli/v3"
)

var errNotLoggedIn = errors.New("not logged in, run agenda login first")

// app holds the components shared by every command.
type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	cfg config.Config
	log *slog.Logger
	loc *time.Location

	db      *storage.DB
	busy    *pipeline.InFlight
	client  *backend.Client
	bus     *notify.Bus
	history *nav.History
	auth    *auth.Service
	toasts  *notify.Subscription
}

func newApp(in io.Reader, out, errOut io.Writer) *app {
	return &app{in: in, out: out, errOut: errOut}
}

func (a *app) command() *cli.Command {
	return &cli.Command{
		Name:    "agenda",
		Usage:   "manage calendar events and contacts",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "api-url", Usage: "backend base url"},
			&cli.StringFlag{Name: "data-dir", Usage: "directory holding the local database"},
			&cli.StringFlag{Name: "log-level", Usage: "DEBUG, INFO, WARN or ERROR"},
		},
		Before: a.setup,
		Commands: []*cli.Command{
			a.loginCommand(),
			a.registerCommand(),
			a.logoutCommand(),
			a.whoamiCommand(),
			a.eventsCommand(),
			a.contactsCommand(),
			a.uiCommand(),
			a.healthCommand(),
		},
	}
}

// setup loads configuration and wires the client stack.
func (a *app) setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	cfg, err := config.Load()
	if err != nil {
		return ctx, err
	}
	if cmd.IsSet("api-url") {
		cfg.APIURL = cmd.String("api-url")
	}
	if cmd.IsSet("data-dir") {
		cfg.DataDir = cmd.String("data-dir")
	}
	if cmd.IsSet("log-level") {
		cfg.LogLevel = cmd.String("log-level")
	}
	if err := cfg.Validate(); err != nil {
		return ctx, err
	}
	a.cfg = cfg
	a.log = logs.GetLoggerFromString(cfg.LogLevel)

	if a.loc, err = cfg.Location(); err != nil {
		return ctx, err
	}

	a.db, err = storage.Open(ctx, cfg.DatabasePath())
	if err != nil {
		return ctx, err
	}
	if err := storage.Migrate(ctx, a.db, a.log); err != nil {
		return ctx, err
	}
	creds := storage.NewCredentialStore(a.db, a.log)

	a.busy = pipeline.NewInFlight()
	transport := pipeline.New(nil, creds, a.busy, a.log, pipeline.WithAbsentToken(cfg.AbsentToken))
	if a.client, err = backend.NewClient(cfg.APIURL, transport, cfg.HTTPTimeout, a.log, backend.WithLocation(a.loc)); err != nil {
		return ctx, err
	}

	a.bus = notify.NewBus(a.log)
	a.toasts = a.bus.Subscribe(a.printToast)
	a.history = nav.NewHistory()
	a.auth = auth.NewService(a.client.Auth(), creds, a.history, a.bus, a.log)

	a.log.Debug("client ready", "api", cfg.APIURL, "database", a.db.Path())
	return ctx, nil
}

func (a *app) close() {
	if a.db != nil {
		_ = a.db.Close()
	}
}

// guard admits route or reports that a login is needed.
func (a *app) guard(route nav.Route) error {
	if !nav.Guard(a.auth, a.history, route) {
		return errNotLoggedIn
	}
	return nil
}

func (a *app) confirmer(cmd *cli.Command) prompt.Confirmer {
	if cmd.Bool("yes") {
		return prompt.Static(true)
	}
	return prompt.NewTerminal(a.in, a.errOut)
}

func (a *app) eventSessions(cmd *cli.Command) *calendar.Sessions {
	return calendar.NewSessions(a.client.Events(), a.bus, a.history, a.confirmer(cmd), a.log,
		calendar.WithLocation(a.loc))
}

func (a *app) contactEditors(cmd *cli.Command) *contacts.Editors {
	return contacts.NewEditors(a.client.Contacts(), a.bus, a.history, a.confirmer(cmd), a.log)
}

// reportedError marks a failure the user already saw as a notification.
type reportedError struct{ error }

func (e reportedError) Unwrap() error { return e.error }

// shown marks failures already published on the bus as reported; the
// toast printer showed them.
func shown(err error) error {
	if notify.WasShown(err) {
		return reportedError{err}
	}
	return err
}

func yesFlag() cli.Flag {
	return &cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "skip the confirmation prompt"}
}

func idArg(cmd *cli.Command) (string, error) {
	id := cmd.Args().First()
	if id == "" {
		return "", fmt.Errorf("%s needs an id", cmd.Name)
	}
	return id, nil
}
