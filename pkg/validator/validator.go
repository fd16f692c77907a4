package validator

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type ErrorResponse struct {
	FailedField string
	Tag         string
	Value       string
}

var validate = validator.New()

func init() {
	// uuid.UUID zero value passes "required", so check it explicitly
	validate.RegisterValidation("uuid_required", func(fl validator.FieldLevel) bool {
		if id, ok := fl.Field().Interface().(uuid.UUID); ok {
			return id != uuid.Nil
		}
		return false
	})
}

func ValidateStruct(data interface{}) []*ErrorResponse {
	var errs []*ErrorResponse
	if err := validate.Struct(data); err != nil {
		for _, fieldErr := range err.(validator.ValidationErrors) {
			errs = append(errs, &ErrorResponse{
				FailedField: fieldErr.StructNamespace(),
				Tag:         fieldErr.Tag(),
				Value:       fieldErr.Param(),
			})
		}
	}
	return errs
}

// Message renders a single validation failure the way handlers report it.
func Message(e *ErrorResponse) string {
	return fmt.Sprintf("Validation failed: Field '%s' failed on tag '%s'", e.FailedField, e.Tag)
}
