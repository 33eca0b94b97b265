package webserver

import (
	"github.com/go-playground/validator/v10"
)

// APIValidator adapts go-playground/validator to echo's Validator interface.
type APIValidator struct {
	validate *validator.Validate
}

func NewAPIValidator() *APIValidator {
	return &APIValidator{validate: validator.New()}
}

func (v *APIValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}
