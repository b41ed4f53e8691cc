package handlers

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// validateStruct returns a field -> message map, or nil when payload is valid.
func validateStruct(payload any) map[string]string {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	fields := make(map[string]string)
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range validationErrors {
			name := strings.ToLower(fe.Field())
			switch fe.Tag() {
			case "required":
				fields[name] = fmt.Sprintf("The %s field is required.", fe.Field())
			case "email":
				fields[name] = fmt.Sprintf("The %s must be a valid email address.", fe.Field())
			case "gte":
				fields[name] = fmt.Sprintf("The %s must be at least %s.", fe.Field(), fe.Param())
			case "datetime":
				fields[name] = fmt.Sprintf("The %s must match the format %s.", fe.Field(), fe.Param())
			default:
				fields[name] = fmt.Sprintf("The %s field is invalid.", fe.Field())
			}
		}
	}

	return fields
}
