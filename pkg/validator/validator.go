package validator

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// cpfPattern accepts CPF with or without the usual punctuation,
// e.g. 123.456.789-00 or 12345678900.
var cpfPattern = regexp.MustCompile(`^\d{3}\.?\d{3}\.?\d{3}-?\d{2}$`)

// Validator wraps go-playground/validator with the domain rules
// registered (the cpf tag).
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("cpf", func(fl validator.FieldLevel) bool {
		return cpfPattern.MatchString(fl.Field().String())
	})

	return &Validator{validate: v}
}

// Struct validates obj and returns the first rule violation as a
// user-facing message.
func (v *Validator) Struct(obj interface{}) error {
	err := v.validate.Struct(obj)
	if err == nil {
		return nil
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return err
	}

	fe := errs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s is required", fe.Field())
	case "cpf":
		return fmt.Errorf("%s must be a valid CPF", fe.Field())
	case "oneof":
		return fmt.Errorf("%s must be one of: %s", fe.Field(), fe.Param())
	case "min":
		return fmt.Errorf("%s must be at least %s characters long", fe.Field(), fe.Param())
	case "max":
		return fmt.Errorf("%s must not exceed %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Errorf("%s is invalid", fe.Field())
	}
}

// IsCPF reports whether s matches the CPF format.
func IsCPF(s string) bool {
	return cpfPattern.MatchString(s)
}
