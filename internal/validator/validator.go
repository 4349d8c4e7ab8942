package validator

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator wraps the struct validator with the custom rules this service needs
type Validator struct {
	structValidator *validator.Validate
}

// New creates a new validator instance with all custom validators registered
func New() *Validator {
	structValidator := validator.New()
	registerCustomValidators(structValidator)

	return &Validator{
		structValidator: structValidator,
	}
}

// Validate validates struct tags
func (v *Validator) Validate(s interface{}) error {
	return v.structValidator.Struct(s)
}

// Var validates a single variable against a tag expression
func (v *Validator) Var(field interface{}, tag string) error {
	return v.structValidator.Var(field, tag)
}

func registerCustomValidators(validate *validator.Validate) {
	// MCQ answer keys are a single option letter, optionally followed by the
	// option text ("B" or "B. Blue")
	_ = validate.RegisterValidation("option_letter", validateOptionLetter)

	_ = validate.RegisterValidation("user_role", validateUserRole)
}

func validateOptionLetter(fl validator.FieldLevel) bool {
	value := strings.TrimSpace(fl.Field().String())
	if value == "" {
		return false
	}
	letter := strings.ToUpper(value[:1])
	return letter >= "A" && letter <= "D"
}

func validateUserRole(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "admin", "candidate":
		return true
	}
	return false
}
