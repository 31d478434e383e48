package main

import (
	"context"
	"fmt"

	"github.com/agenda-app/client/internal/contacts"
	"github.com/agenda-app/client/internal/models"
	"github.com/agenda-app/client/internal/nav"
	"github.com/urfave/cli/v3"
)

func (a *app) contactsCommand() *cli.Command {
	return &cli.Command{
		Name:  "contacts",
		Usage: "manage the address book",
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			return ctx, a.guard(nav.Contacts)
		},
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "list contacts sorted by name",
				Flags:  []cli.Flag{outputFlag()},
				Action: a.searchContacts,
			},
			{
				Name:      "search",
				Usage:     "list contacts whose name or surname contains TERM",
				ArgsUsage: "TERM",
				Flags:     []cli.Flag{outputFlag()},
				Action:    a.searchContacts,
			},
			{
				Name:      "show",
				Usage:     "show one contact",
				ArgsUsage: "ID",
				Flags:     []cli.Flag{outputFlag()},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					id, err := idArg(cmd)
					if err != nil {
						return err
					}
					c, err := a.client.Contacts().Get(ctx, id)
					if err != nil {
						return err
					}
					return printContacts(a.out, cmd.String("output"), []models.Contact{c})
				},
			},
			{
				Name:   "create",
				Usage:  "add a contact",
				Flags:  contactFormFlags(),
				Action: a.saveContact,
			},
			{
				Name:      "update",
				Usage:     "update a contact",
				ArgsUsage: "ID",
				Flags:     contactFormFlags(),
				Action:    a.saveContact,
			},
			{
				Name:      "delete",
				Usage:     "delete a contact",
				ArgsUsage: "ID",
				Flags:     []cli.Flag{yesFlag()},
				Action:    a.deleteContact,
			},
		},
	}
}

func contactFormFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "name"},
		&cli.StringFlag{Name: "surname"},
		&cli.StringFlag{Name: "phone"},
		&cli.StringFlag{Name: "email"},
	}
}

func (a *app) searchContacts(ctx context.Context, cmd *cli.Command) error {
	list := contacts.NewList(a.client.Contacts(), a.bus, a.log)
	if err := list.Load(ctx); err != nil {
		return shown(err)
	}
	return printContacts(a.out, cmd.String("output"), list.Filter(cmd.Args().First()))
}

func (a *app) saveContact(ctx context.Context, cmd *cli.Command) error {
	id := cmd.Args().First()
	if cmd.Name == "update" && id == "" {
		return fmt.Errorf("update needs an id")
	}
	route := nav.NewContact
	if id != "" {
		route = nav.EditContact(id)
	}
	if err := a.guard(route); err != nil {
		return err
	}

	editor, err := a.contactEditors(cmd).Open(ctx, id)
	if err != nil {
		return err
	}
	defer editor.Close()

	form := editor.Form()
	for name, field := range map[string]*string{
		"name":    &form.Name,
		"surname": &form.Surname,
		"phone":   &form.PhoneNumber,
		"email":   &form.Email,
	} {
		if cmd.IsSet(name) {
			*field = cmd.String(name)
		}
	}
	if err := editor.SetForm(form); err != nil {
		return err
	}
	return shown(editor.Save(ctx))
}

func (a *app) deleteContact(ctx context.Context, cmd *cli.Command) error {
	id, err := idArg(cmd)
	if err != nil {
		return err
	}
	editor, err := a.contactEditors(cmd).Open(ctx, id)
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
