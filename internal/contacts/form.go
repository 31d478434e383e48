package contacts

import (
	"errors"
	"reflect"
	"strings"

	"github.com/agenda-app/client/internal/models"
	"github.com/go-playground/validator/v10"
)

var validate = func() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}()

// ValidationError lists the form fields that failed validation.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid fields: " + strings.Join(e.Fields, ", ")
}

// Form holds the editable contact fields.
type Form struct {
	Name        string `json:"name" validate:"required"`
	Surname     string `json:"surname"`
	PhoneNumber string `json:"phoneNumber" validate:"required"`
	Email       string `json:"email" validate:"omitempty,email"`
}

// FormFromContact copies c into a form.
func FormFromContact(c models.Contact) Form {
	return Form{Name: c.Name, Surname: c.Surname, PhoneNumber: c.PhoneNumber, Email: c.Email}
}

// Validate returns a *ValidationError naming the invalid fields.
func (f Form) Validate() error {
	err := validate.Struct(f)
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

// Contact builds the wire contact, without id.
func (f Form) Contact() (models.Contact, error) {
	if err := f.Validate(); err != nil {
		return models.Contact{}, err
	}
	return models.Contact{
		Name:        strings.TrimSpace(f.Name),
		Surname:     strings.TrimSpace(f.Surname),
		PhoneNumber: strings.TrimSpace(f.PhoneNumber),
		Email:       strings.TrimSpace(f.Email),
	}, nil
}
