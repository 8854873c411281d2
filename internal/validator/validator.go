// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var monthRegex = regexp.MustCompile(`^\d{4}-\d{2}$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("payment_method", validatePaymentMethod)
		_ = v.RegisterValidation("month_format", validateMonthFormat)
	}
}

func validatePaymentMethod(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "cash", "credit_card", "upi":
		return true
	}
	return false
}

func validateMonthFormat(fl validator.FieldLevel) bool {
	return monthRegex.MatchString(fl.Field().String())
}
