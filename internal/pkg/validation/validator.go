// Package validation wraps go-playground/validator with field-keyed messages.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var slugRe = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})

	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("strong_password", func(fl validator.FieldLevel) bool {
		return StrongPassword(fl.Field().String())
	})

	return &Validator{v: v}
}

// StrongPassword requires a lower-case letter, an upper-case letter, a digit
// and a symbol.
func StrongPassword(pw string) bool {
	var lower, upper, digit, special bool
	for _, r := range pw {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			special = true
		}
	}
	return lower && upper && digit && special
}

// Struct validates s and returns nil or a map of json field name to message.
func (v *Validator) Struct(s any) map[string]string {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"_": err.Error()}
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		if _, exists := out[field]; exists {
			continue
		}
		out[field] = message(fe)
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Please enter a valid email address."
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("Select at least %s.", fe.Param())
		}
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Must be at least %s characters.", fe.Param())
		}
		return fmt.Sprintf("Must be at least %s.", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Must be at most %s characters.", fe.Param())
		}
		return fmt.Sprintf("Must be at most %s.", fe.Param())
	case "gte":
		return fmt.Sprintf("Must be greater than or equal to %s.", fe.Param())
	case "oneof":
		return "Invalid option selected."
	case "uuid", "uuid4":
		return "Invalid ID format."
	case "url":
		return "Please enter a valid URL."
	case "eqfield":
		return "Passwords do not match."
	case "slug":
		return "Slug can only contain lowercase letters, numbers, and single hyphens."
	case "strong_password":
		return "Password must include upper and lower case letters, a number, and a special character."
	default:
		return "Invalid value."
	}
}
