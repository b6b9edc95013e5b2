package middleware

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/incidentline/authcore/internal/constants"
)

// RegisterCustomValidators installs domain validators on gin's binding
// engine. Called once at startup before routes are registered.
func RegisterCustomValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}

	// formtype accepts only the creatable secure-link form types; the
	// reserved temporary-admin discriminator is deliberately not bindable.
	return v.RegisterValidation("formtype", func(fl validator.FieldLevel) bool {
		return constants.IsSecureLinkFormType(fl.Field().String())
	})
}
