package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/agenda-app/client/internal/models"
	"github.com/agenda-app/client/internal/notify"
	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

const (
	outputTable = "table"
	outputYAML  = "yaml"
	outputJSON  = "json"
)

var (
	errorStyle   = color.New(color.FgWhite, color.BgRed, color.OpBold)
	successStyle = color.New(color.FgBlack, color.BgGreen, color.OpBold)
)

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Value:   outputTable,
		Usage:   "table, yaml or json",
		Validator: func(v string) error {
			switch v {
			case outputTable, outputYAML, outputJSON:
				return nil
			}
			return fmt.Errorf("unknown output %q", v)
		},
	}
}

// printToast renders visible bus messages on the error stream.
func (a *app) printToast(m notify.Message) {
	if !m.Visible {
		return
	}
	style := successStyle
	if m.Kind == notify.KindError {
		style = errorStyle
	}
	fmt.Fprintf(a.errOut, "%s %s\n", style.Render(" "+m.Title+" "), m.Content)
}

// emit writes v as yaml or json, or hands it to table for the default
// output.
func emit(w io.Writer, format string, v any, table func(*tablewriter.Table)) error {
	switch format {
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}

	t := tablewriter.NewWriter(w)
	t.SetAutoWrapText(false)
	t.SetAutoFormatHeaders(true)
	t.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	t.SetAlignment(tablewriter.ALIGN_LEFT)
	t.SetCenterSeparator("")
	t.SetColumnSeparator("")
	t.SetRowSeparator("")
	t.SetHeaderLine(false)
	t.SetBorder(false)
	t.SetTablePadding("\t")
	table(t)
	t.Render()
	return nil
}

// eventView is the printable shape of an event.
type eventView struct {
	ID          string `yaml:"id" json:"id"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Start       string `yaml:"start" json:"start"`
	End         string `yaml:"end" json:"end"`
	AllDay      bool   `yaml:"allDay" json:"allDay"`
	Colors      string `yaml:"colors" json:"colors"`
}

func toEventView(ev models.Event) eventView {
	return eventView{
		ID:          ev.ID,
		Title:       ev.Title,
		Description: ev.Description,
		Start:       ev.Start.String(),
		End:         ev.End.String(),
		AllDay:      ev.AllDay,
		Colors:      ev.BackgroundColor + "/" + ev.BorderColor + "/" + ev.TextColor,
	}
}

func printEvents(w io.Writer, format string, events []eventView) error {
	return emit(w, format, events, func(t *tablewriter.Table) {
		t.SetHeader([]string{"ID", "Title", "Start", "End", "All day"})
		for _, ev := range events {
			t.Append([]string{ev.ID, ev.Title, ev.Start, ev.End, strconv.FormatBool(ev.AllDay)})
		}
	})
}

// contactView is the printable shape of a contact.
type contactView struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Surname     string `yaml:"surname,omitempty" json:"surname,omitempty"`
	PhoneNumber string `yaml:"phoneNumber" json:"phoneNumber"`
	Email       string `yaml:"email,omitempty" json:"email,omitempty"`
}

func printContacts(w io.Writer, format string, list []models.Contact) error {
	views := make([]contactView, 0, len(list))
	for _, c := range list {
		views = append(views, contactView(c))
	}
	return emit(w, format, views, func(t *tablewriter.Table) {
		t.SetHeader([]string{"ID", "Name", "Surname", "Phone", "Email"})
		for _, c := range views {
			t.Append([]string{c.ID, c.Name, c.Surname, c.PhoneNumber, c.Email})
		}
	})
}
