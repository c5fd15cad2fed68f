package rest

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/aliskhannn/mushaf/internal/quran"
	"github.com/aliskhannn/mushaf/internal/service"
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return service.ValidUsername(strings.TrimSpace(fl.Field().String()))
	})
	_ = v.RegisterValidation("edition", func(fl validator.FieldLevel) bool {
		return quran.ValidEdition(fl.Field().String())
	})

	return v
}

// validationMessage turns the first failed rule into a sentence for the user.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid request."
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required."
	case "email":
		return "Please enter a valid email address."
	case "username":
		return "Username must be 3-30 characters: letters, numbers, _ or -."
	case "edition":
		return "Unknown edition."
	case "min":
		if fe.Field() == "Password" {
			return "Password must be at least 6 characters."
		}
		return fe.Field() + " is too small."
	case "max":
		return fe.Field() + " is too large."
	}
	return fe.Field() + " is invalid."
}
