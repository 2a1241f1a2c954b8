package handler

import (
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"account_service/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// FieldError is one failed validation rule, reported under the JSON name of
// the offending field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

var configureValidatorOnce sync.Once

// configureValidator makes gin's validator report fields by their json tag
// and registers the bcryptmax rule, which limits a string by its byte length.
func configureValidator() {
	configureValidatorOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("bcryptmax", func(fl validator.FieldLevel) bool {
			return len(fl.Field().String()) <= utils.MaxPasswordBytes
		})
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
	})
}

func fieldErrors(errs validator.ValidationErrors) []FieldError {
	out := make([]FieldError, 0, len(errs))
	for _, fe := range errs {
		out = append(out, FieldError{
			Field:   fe.Field(),
			Message: fieldErrorMessage(fe),
			Type:    fe.Tag(),
		})
	}
	return out
}

func fieldErrorMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "name":
		return "Please enter a name"
	case "email":
		return "Please enter a valid email"
	case "mobile_number":
		return "Please enter a valid mobile number"
	case "password":
		switch fe.Tag() {
		case "required":
			return "Password can not be blank"
		case "bcryptmax":
			return "Password must be at most " + strconv.Itoa(utils.MaxPasswordBytes) + " bytes"
		default:
			return "Password must be at least 8 characters"
		}
	default:
		return "Invalid value"
	}
}

func respondWithValidationError(c *gin.Context, errs validator.ValidationErrors) {
	c.JSON(http.StatusBadRequest, gin.H{
		"status": http.StatusBadRequest,
		"errors": fieldErrors(errs),
	})
}

func respondWithError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{
		"status": code,
		"error":  message,
	})
}
