package middleware

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Provider symbols: letters, digits, and the separators seen in European
// listings (MC.PA, VOW3.DE) and index symbols (^FCHI).
var tickerPattern = regexp.MustCompile(`^[A-Za-z0-9.^-]{1,12}$`)

// RegisterValidators installs the custom binding validations used by the API
func RegisterValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("ticker", func(fl validator.FieldLevel) bool {
			return tickerPattern.MatchString(fl.Field().String())
		})
	}
}
