package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// cpfDigits matches the storage format: exactly eleven numeric digits,
// no punctuation.
func cpfDigits(fl validator.FieldLevel) bool {
	cpf := fl.Field().String()
	if len(cpf) != 11 {
		return false
	}
	for _, r := range cpf {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// registerValidators attaches custom binding validators to gin's validator
// engine. Safe to call more than once.
func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("cpf", cpfDigits)
	}
}
