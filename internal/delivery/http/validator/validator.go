// Package validator adapts go-playground/validator to Echo's Validator hook.
package validator

import (
	"github.com/go-playground/validator/v10"
)

// EchoValidator implements echo.Validator on top of a shared validate instance.
type EchoValidator struct {
	validate *validator.Validate
}

// New builds the validator used by the Echo server.
func New() *EchoValidator {
	return &EchoValidator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Validate checks struct tags on the bound request payload.
func (v *EchoValidator) Validate(i any) error {
	return v.validate.Struct(i)
}
