package api

import (
	"encoding/json" // Decode error types
	"errors"        // Error inspection
	"fmt"           // Message formatting
	"net/http"      // HTTP status codes
	"reflect"       // Struct field tags
	"strings"       // String manipulation

	"github.com/gin-gonic/gin"               // Gin web framework
	"github.com/gin-gonic/gin/binding"       // Gin's validator hook
	"github.com/go-playground/validator/v10" // Field validation
)

func init() {
	// Report JSON field names rather than Go field names in validation errors
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})
	}
}

// FieldErrors maps a request field to its validation messages
type FieldErrors map[string][]string

// fieldMessage turns one failed validation rule into a client-facing message
func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "min":
		if fe.Param() == "1" {
			return "This field may not be blank."
		}
		return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	case "email":
		return "Enter a valid email address."
	default:
		return "Invalid value."
	}
}

// validationErrors converts a binding error into field-level messages
func validationErrors(err error) FieldErrors {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return FieldErrors{typeErr.Field: {fmt.Sprintf("Incorrect type. Expected %s, got %s.", typeErr.Type, typeErr.Value)}}
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return FieldErrors{"non_field_errors": {"Invalid request body."}}
	}
	out := FieldErrors{}
	for _, fe := range ve {
		out[fe.Field()] = append(out[fe.Field()], fieldMessage(fe))
	}
	return out
}

// respondValidation writes a 400 with field-level messages
func respondValidation(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, validationErrors(err))
}
