package calendar

import (
	"errors"
	"reflect"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/agenda-app/client/internal/models"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name, _, _ := strings.Cut(f.Tag.Get("form"), ","); name != "" {
			return name
		}
		return f.Name
	})
	v.RegisterStructValidation(clockRules, EventForm{})
	return v
}

// clockRules requires parseable times unless the event lasts all day.
func clockRules(sl validator.StructLevel) {
	f := sl.Current().Interface().(EventForm)
	if f.AllDay {
		return
	}
	for _, field := range []struct {
		value, name, structName string
	}{
		{f.StartTime, "startTime", "StartTime"},
		{f.EndTime, "endTime", "EndTime"},
	} {
		if _, err := time.Parse(ClockLayout, field.value); err != nil {
			sl.ReportError(field.value, field.name, field.structName, "clock", "")
		}
	}
}

// ValidationError lists the form fields that failed validation.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid fields: " + strings.Join(e.Fields, ", ")
}

func validationError(err error) error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err
	}
	out := &ValidationError{}
	for _, fe := range errs {
		out.Fields = append(out.Fields, fe.Field())
	}
	return out
}

// EventForm is the split-field representation edited by the user.
type EventForm struct {
	Title           string `form:"title" validate:"required"`
	Description     string `form:"description"`
	StartDate       string `form:"startDate" validate:"required,datetime=2006-01-02"`
	StartTime       string `form:"startTime"`
	EndDate         string `form:"endDate" validate:"required,datetime=2006-01-02"`
	EndTime         string `form:"endTime"`
	AllDay          bool   `form:"allDay"`
	BackgroundColor string `form:"backgroundColor" validate:"required,iscolor"`
	BorderColor     string `form:"borderColor" validate:"required,iscolor"`
	TextColor       string `form:"textColor" validate:"required,iscolor"`
}

// NewEventForm returns the defaults for a new event: both instants at now,
// default colors.
func NewEventForm(now time.Time) EventForm {
	date, clock := Decompose(now)
	return EventForm{
		StartDate:       date,
		StartTime:       clock,
		EndDate:         date,
		EndTime:         clock,
		BackgroundColor: models.DefaultBackgroundColor,
		BorderColor:     models.DefaultBorderColor,
		TextColor:       models.DefaultTextColor,
	}
}

// FormFromEvent splits a stored event into form fields.
func FormFromEvent(ev models.Event) EventForm {
	startDate, startTime := Decompose(ev.Start.Time)
	endDate, endTime := Decompose(ev.End.Time)
	return EventForm{
		Title:           ev.Title,
		Description:     ev.Description,
		StartDate:       startDate,
		StartTime:       startTime,
		EndDate:         endDate,
		EndTime:         endTime,
		AllDay:          ev.AllDay,
		BackgroundColor: ev.BackgroundColor,
		BorderColor:     ev.BorderColor,
		TextColor:       ev.TextColor,
	}
}

// Validate checks required fields. It returns a *ValidationError.
func (f EventForm) Validate() error {
	if err := validate.Struct(f); err != nil {
		return validationError(err)
	}
	return nil
}

// Event rebuilds the wire event from the form. Both instants are
// recomputed from their split fields.
func (f EventForm) Event(loc *time.Location) (models.Event, error) {
	if err := f.Validate(); err != nil {
		return models.Event{}, err
	}
	start, err := Combine(f.StartDate, f.StartTime, f.AllDay, loc)
	if err != nil {
		return models.Event{}, err
	}
	end, err := Combine(f.EndDate, f.EndTime, f.AllDay, loc)
	if err != nil {
		return models.Event{}, err
	}

	return models.Event{
		Title:           f.Title,
		Description:     f.Description,
		Start:           models.NewInstant(start),
		End:             models.NewInstant(end),
		AllDay:          f.AllDay,
		BackgroundColor: f.BackgroundColor,
		BorderColor:     f.BorderColor,
		TextColor:       f.TextColor,
	}, nil
}

// TitleLength is the character count shown under the title input.
func (f EventForm) TitleLength() int {
	return utf8.RuneCountInString(f.Title)
}

// DescriptionLength is the character count shown under the description.
func (f EventForm) DescriptionLength() int {
	return utf8.RuneCountInString(f.Description)
}
