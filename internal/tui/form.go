package tui

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
)

// contactForm is the add-contact form after trimming.
type contactForm struct {
	Name   string `validate:"required,max=64"`
	Number string `validate:"required,max=32"`
}

var formValidator = validator.New()

func newContactForm(name, number string) contactForm {
	return contactForm{
		Name:   strings.TrimSpace(name),
		Number: strings.TrimSpace(number),
	}
}

// validate returns a message for the first invalid field.
func (f contactForm) validate() error {
	err := formValidator.Struct(f)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return errors.Wrap(err, "validating contact")
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return errors.Newf("%s is required", fe.Field())
	case "max":
		return errors.Newf("%s is too long", fe.Field())
	default:
		return errors.Newf("%s is invalid", fe.Field())
	}
}
