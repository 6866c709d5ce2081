package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

var validate = validator.New()

// ValidateStruct validates a struct with validator tags and returns
// user-facing field errors.
func ValidateStruct(s interface{}) []ValidationError {
	return BindingErrors(validate.Struct(s))
}

// BindingErrors converts validator failures (including the ones gin's
// binding produces) into field errors. Returns nil for anything else.
func BindingErrors(err error) []ValidationError {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return nil
	}

	errs := make([]ValidationError, 0, len(fieldErrs))
	for _, fieldErr := range fieldErrs {
		errs = append(errs, ValidationError{
			Field:   fieldErr.Field(),
			Tag:     fieldErr.Tag(),
			Message: errorMessage(fieldErr),
		})
	}

	return errs
}

func errorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return err.Field() + " is required"
	case "email":
		return err.Field() + " must be a valid email address"
	case "min":
		return err.Field() + " must be at least " + err.Param()
	case "max":
		return err.Field() + " must be at most " + err.Param()
	case "gte":
		return err.Field() + " must be greater than or equal to " + err.Param()
	case "lte":
		return err.Field() + " must be less than or equal to " + err.Param()
	default:
		return err.Field() + " is invalid"
	}
}

func RespondWithValidationErrors(c *gin.Context, errs []ValidationError) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "validation failed",
		"details": errs,
	})
}
