package main

import (
	"context"
	"fmt"

	"github.com/agenda-app/client/internal/calendar"
	"github.com/agenda-app/client/internal/models"
	"github.com/agenda-app/client/internal/nav"
	"github.com/urfave/cli/v3"
)

func (a *app) eventsCommand() *cli.Command {
	return &cli.Command{
		Name:    "events",
		Aliases: []string{"ev"},
		Usage:   "manage calendar events",
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			return ctx, a.guard(nav.Home)
		},
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "list every event",
				Flags:  []cli.Flag{outputFlag()},
				Action: a.listEvents,
			},
			{
				Name:      "show",
				Usage:     "show one event",
				ArgsUsage: "ID",
				Flags:     []cli.Flag{outputFlag()},
				Action:    a.showEvent,
			},
			{
				Name:   "create",
				Usage:  "create an event",
				Flags:  eventFormFlags(),
				Action: a.saveEvent,
			},
			{
				Name:      "update",
				Usage:     "update an event",
				ArgsUsage: "ID",
				Flags:     eventFormFlags(),
				Action:    a.saveEvent,
			},
			{
				Name:      "delete",
				Usage:     "delete an event",
				ArgsUsage: "ID",
				Flags:     []cli.Flag{yesFlag()},
				Action:    a.deleteEvent,
			},
			{
				Name:      "move",
				Usage:     "move an event to a new span",
				ArgsUsage: "ID",
				Flags:     spanFlags(),
				Action:    a.rescheduleEvent,
			},
			{
				Name:      "resize",
				Usage:     "change the end of an event",
				ArgsUsage: "ID",
				Flags:     spanFlags(),
				Action:    a.rescheduleEvent,
			},
		},
	}
}

func eventFormFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "title"},
		&cli.StringFlag{Name: "description"},
		&cli.StringFlag{Name: "start-date", Usage: "YYYY-MM-DD"},
		&cli.StringFlag{Name: "start-time", Usage: "HH:MM"},
		&cli.StringFlag{Name: "end-date", Usage: "YYYY-MM-DD"},
		&cli.StringFlag{Name: "end-time", Usage: "HH:MM"},
		&cli.BoolFlag{Name: "all-day"},
		&cli.StringFlag{Name: "background-color"},
		&cli.StringFlag{Name: "border-color"},
		&cli.StringFlag{Name: "text-color"},
	}
}

func spanFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "start", Required: true, Usage: "YYYY-MM-DD HH:MM"},
		&cli.StringFlag{Name: "end", Usage: "YYYY-MM-DD HH:MM, defaults to start"},
		&cli.BoolFlag{Name: "all-day"},
	}
}

func (a *app) listEvents(ctx context.Context, cmd *cli.Command) error {
	events, err := a.client.Events().List(ctx)
	if err != nil {
		return err
	}
	views := make([]eventView, 0, len(events))
	for _, ev := range events {
		views = append(views, toEventView(a.inZone(ev)))
	}
	return printEvents(a.out, cmd.String("output"), views)
}

func (a *app) showEvent(ctx context.Context, cmd *cli.Command) error {
	id, err := idArg(cmd)
	if err != nil {
		return err
	}
	ev, err := a.client.Events().Get(ctx, id)
	if err != nil {
		return err
	}
	return printEvents(a.out, cmd.String("output"), []eventView{toEventView(a.inZone(ev))})
}

// saveEvent runs a form session: create without an id, update with one.
// Only flags given on the command line change the form.
func (a *app) saveEvent(ctx context.Context, cmd *cli.Command) error {
	id := cmd.Args().First()
	if cmd.Name == "update" && id == "" {
		return fmt.Errorf("update needs an id")
	}
	route := nav.NewEvent
	if id != "" {
		route = nav.EditEvent(id)
	}
	if err := a.guard(route); err != nil {
		return err
	}

	editor, err := a.eventSessions(cmd).Open(ctx, id)
	if err != nil {
		return err
	}
	defer editor.Close()

	form := editor.Form()
	for name, field := range map[string]*string{
		"title":            &form.Title,
		"description":      &form.Description,
		"start-date":       &form.StartDate,
		"start-time":       &form.StartTime,
		"end-date":         &form.EndDate,
		"end-time":         &form.EndTime,
		"background-color": &form.BackgroundColor,
		"border-color":     &form.BorderColor,
		"text-color":       &form.TextColor,
	} {
		if cmd.IsSet(name) {
			*field = cmd.String(name)
		}
	}
	if cmd.IsSet("all-day") {
		form.AllDay = cmd.Bool("all-day")
	}
	if err := editor.SetForm(form); err != nil {
		return err
	}
	return shown(editor.Save(ctx))
}

func (a *app) deleteEvent(ctx context.Context, cmd *cli.Command) error {
	id, err := idArg(cmd)
	if err != nil {
		return err
	}
	editor, err := a.eventSessions(cmd).Open(ctx, id)
	if err != nil {
		return err
	}
	defer editor.Close()

	deleted, err := editor.Delete(ctx)
	if err != nil {
		return shown(err)
	}
	if !deleted {
		fmt.Fprintln(a.out, "kept")
	}
	return nil
}

// rescheduleEvent applies a move or resize through the calendar surface.
func (a *app) rescheduleEvent(ctx context.Context, cmd *cli.Command) error {
	id, err := idArg(cmd)
	if err != nil {
		return err
	}
	start, err := models.ParseInstant(cmd.String("start"), a.loc)
	if err != nil {
		return err
	}
	change := calendar.Change{ID: id, Start: start.Time, AllDay: cmd.Bool("all-day")}
	if cmd.IsSet("end") {
		end, err := models.ParseInstant(cmd.String("end"), a.loc)
		if err != nil {
			return err
		}
		change.End = &end.Time
	}

	surface := calendar.NewSurface(a.client.Events(), a.bus, a.history, a.log)
	if err := surface.Load(ctx); err != nil {
		return shown(err)
	}
	apply := surface.Move
	if cmd.Name == "resize" {
		apply = surface.Resize
	}
	if err := apply(ctx, change); err != nil {
		return shown(err)
	}

	item, _ := surface.Item(id)
	fmt.Fprintf(a.out, "%s now %s to %s\n", item.Title,
		item.Start.Format(models.InstantLayout), item.End.Format(models.InstantLayout))
	return nil
}

func (a *app) inZone(ev models.Event) models.Event {
	ev.Start = models.NewInstant(ev.Start.In(a.loc))
	ev.End = models.NewInstant(ev.End.In(a.loc))
	return ev
}
