package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// phonePattern accepts local mobile numbers: ten digits with a leading
// zero.
var phonePattern = regexp.MustCompile(`^0\d{9}$`)

// RegisterCustomValidations installs the domain validations on gin's
// binding engine. Call once at startup before registering routes.
func RegisterCustomValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("phone", validatePhone)
	}
}

func validatePhone(fl validator.FieldLevel) bool {
	return phonePattern.MatchString(fl.Field().String())
}
