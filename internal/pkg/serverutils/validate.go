package serverutils

import (
	"fmt"

	"github.com/YarinTwito/whatsapp-smart-agent/internal/apperror"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest checks struct tags and maps failures to a validation error
// so the error middleware returns a 400.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok && len(validationErrors) > 0 {
			first := validationErrors[0]
			return apperror.NewValidation(
				fmt.Sprintf("field '%s' failed on '%s' rule", first.Field(), first.Tag()),
			)
		}
		return apperror.NewValidation(err.Error())
	}
	return nil
}
