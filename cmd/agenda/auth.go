package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/agenda-app/client/internal/auth"
	"github.com/agenda-app/client/internal/models"
	"github.com/urfave/cli/v3"
)

func (a *app) loginCommand() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "log in and store the token",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Required: true},
			&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Sources: cli.EnvVars("AGENDA_PASSWORD")},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			in := models.LoginRequest{Username: cmd.String("username"), Password: cmd.String("password")}
			if err := a.auth.Login(ctx, in); err != nil {
				return shown(err)
			}
			fmt.Fprintf(a.out, "logged in as %s\n", in.Username)
			return nil
		},
	}
}

func (a *app) registerCommand() *cli.Command {
	return &cli.Command{
		Name:  "register",
		Usage: "create an account and log in",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Required: true},
			&cli.StringFlag{Name: "email", Required: true},
			&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Sources: cli.EnvVars("AGENDA_PASSWORD")},
			&cli.StringFlag{Name: "name", Required: true},
			&cli.StringFlag{Name: "surname", Required: true},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			in := models.RegisterRequest{
				Username: cmd.String("username"),
				Email:    cmd.String("email"),
				Password: cmd.String("password"),
				Name:     cmd.String("name"),
				Surname:  cmd.String("surname"),
			}
			if err := a.auth.Register(ctx, in); err != nil {
				return shown(err)
			}
			fmt.Fprintf(a.out, "registered %s\n", in.Username)
			return nil
		},
	}
}

func (a *app) logoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "forget the stored token",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return a.auth.Logout()
		},
	}
}

func (a *app) whoamiCommand() *cli.Command {
	return &cli.Command{
		Name:  "whoami",
		Usage: "describe the stored session",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			s, err := a.auth.Session()
			if errors.Is(err, auth.ErrNoToken) {
				return errNotLoggedIn
			}
			if err != nil {
				return err
			}

			switch {
			case s.Subject == "":
				fmt.Fprintln(a.out, "logged in")
			case s.Name != "":
				fmt.Fprintf(a.out, "%s (%s)\n", s.Subject, s.Name)
			default:
				fmt.Fprintln(a.out, s.Subject)
			}
			if !s.ExpiresAt.IsZero() {
				fmt.Fprintf(a.out, "expires %s\n", s.ExpiresAt.In(a.loc).Format(time.RFC1123))
			}
			return nil
		},
	}
}
