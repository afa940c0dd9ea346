package http

import (
	"fmt"
	"strings"

	"bookreview/internal/httpx"
	"bookreview/internal/platform/openlibrary"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	validate.RegisterValidation("workid", func(fl validator.FieldLevel) bool {
		return openlibrary.ValidWorkID(fl.Field().String())
	})
}

// ValidateStruct runs validator tags over s and converts the failures into
// response details. Returns nil when the struct is valid.
func ValidateStruct(s interface{}) []httpx.ErrorDetail {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var details []httpx.ErrorDetail
	for _, fe := range err.(validator.ValidationErrors) {
		field := fe.Field()

		var message string
		switch fe.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", field)
		case "max":
			message = fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		case "gte", "lte":
			message = fmt.Sprintf("%s must be between 0 and 2100", field)
		case "workid":
			message = fmt.Sprintf("%s must be an Open Library work id like OL8022414W", field)
		default:
			message = fmt.Sprintf("%s is invalid", field)
		}

		details = append(details, httpx.ErrorDetail{
			Field:   strings.ToLower(field[:1]) + field[1:],
			Message: message,
		})
	}
	return details
}
