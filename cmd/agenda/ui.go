package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/agenda-app/client/internal/api"
	"github.com/agenda-app/client/internal/calendar"
	"github.com/agenda-app/client/internal/contacts"
	"github.com/agenda-app/client/internal/nav"
	"github.com/agenda-app/client/internal/notify"
	"github.com/agenda-app/client/internal/websocket"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func (a *app) uiCommand() *cli.Command {
	return &cli.Command{
		Name:  "ui",
		Usage: "serve the local UI bridge",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Usage: "listen address, defaults to AGENDA_UI_ADDR"},
		},
		Action: a.serveUI,
	}
}

func (a *app) serveUI(ctx context.Context, cmd *cli.Command) error {
	addr := a.cfg.UIAddr
	if cmd.IsSet("addr") {
		addr = cmd.String("addr")
	}

	// The UI renders notifications itself.
	a.toasts.Unsubscribe()

	countdown := notify.NewCountdown(a.bus, a.log,
		notify.WithInterval(a.cfg.ToastInterval),
		notify.WithStep(a.cfg.ToastStep))
	defer countdown.Close()

	hub := websocket.NewHub(a.log)
	surface := calendar.NewSurface(a.client.Events(), a.bus, a.history, a.log)
	stop := websocket.NewBroadcaster(hub, a.log).Follow(websocket.Sources{
		Bus:     a.bus,
		Busy:    a.busy,
		History: a.history,
		Surface: surface,
	})
	defer stop()

	server := &http.Server{
		Addr: addr,
		Handler: api.NewRouter(api.Deps{
			DB:       a.db,
			Hub:      hub,
			Bus:      a.bus,
			Busy:     a.busy,
			Surface:  surface,
			Contacts: contacts.NewList(a.client.Contacts(), a.bus, a.log),
			Log:      a.log,
			Location: a.loc,
		}),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		hub.Run(ctx)
		return nil
	})
	g.Go(func() error {
		a.log.Info("ui bridge listening", "addr", addr)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving ui bridge: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		a.log.Info("shutting down ui bridge")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		if nav.Guard(a.auth, a.history, nav.Home) {
			_ = surface.Load(ctx)
		}
		return nil
	})

	return g.Wait()
}

func (a *app) healthCommand() *cli.Command {
	return &cli.Command{
		Name:  "health",
		Usage: "check a running UI bridge",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Usage: "bridge address, defaults to AGENDA_UI_ADDR"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			addr := a.cfg.UIAddr
			if cmd.IsSet("addr") {
				addr = cmd.String("addr")
			}
			return checkHealth(ctx, "http://"+addr+"/api/health")
		},
	}
}

// checkHealth performs a health check against a running bridge.
func checkHealth(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("health check: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check: bridge answered %s", resp.Status)
	}
	return nil
}
