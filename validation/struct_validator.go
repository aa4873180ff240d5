package validation

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/kbukum/authfront/errors"
)

var (
	validate *validator.Validate
	once     sync.Once
)

// getValidator returns the singleton validator instance.
func getValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Use json tag names so errors are keyed by form field names
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

// signInSchema holds the fields a sign-in form submits.
type signInSchema struct {
	Email    string `json:"email" validate:"email"`
	Password string `json:"password" validate:"required"`
}

// signUpSchema holds the fields a sign-up form submits.
type signUpSchema struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"email"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

// fieldMessages holds the user-facing message for each field and rule.
var fieldMessages = map[string]string{
	FieldName + ".required":            "Name is required",
	FieldEmail + ".email":              "Invalid email",
	FieldPassword + ".required":        "Password is required",
	FieldConfirmPassword + ".required": "Confirm Password is required",
}

// validateStruct runs the struct tag rules and records failures in v.
func validateStruct(v *Validator, s any) {
	err := getValidator().Struct(s)
	if err == nil {
		return
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		v.AddError("", errors.ErrCodeInvalidInput, "validation failed")
		return
	}

	for _, e := range validationErrors {
		field := e.Field()
		v.AddError(field, codeForTag(e.Tag()), messageFor(field, e))
	}
}

// codeForTag maps a validator tag to an error code.
func codeForTag(tag string) errors.ErrorCode {
	switch tag {
	case "required":
		return errors.ErrCodeRequired
	case "email":
		return errors.ErrCodeInvalidFormat
	default:
		return errors.ErrCodeInvalidInput
	}
}

// messageFor returns the message for a failed rule.
func messageFor(field string, e validator.FieldError) string {
	if msg, ok := fieldMessages[field+"."+e.Tag()]; ok {
		return msg
	}
	switch e.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return "Invalid email"
	default:
		return field + " is invalid"
	}
}
