package service

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/sakif/blogstack/internal/apperror"
)

var (
	slugPattern     = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	slugLetter      = regexp.MustCompile(`[a-z]`)
	usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
)

// newValidator builds the validator shared by every service. Drafts in
// internal/model carry `validate` tags; errors are reported by their JSON
// field name so clients can match them to what they sent.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	register := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic("service: failed to register " + tag + " validation: " + err.Error())
		}
	}
	// A slug needs at least one letter: nested routes read an all-digit
	// path segment as an id, so "2024" could never be addressed as a slug.
	register("slug", func(fl validator.FieldLevel) bool {
		slug := fl.Field().String()
		return slugPattern.MatchString(slug) && slugLetter.MatchString(slug)
	})
	register("username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})

	return v
}

// validateStruct runs the struct's validate tags and converts the first
// failure into an apperror validation error naming the field.
func validateStruct(v *validator.Validate, s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return apperror.ValidationFailed("", err.Error())
	}
	fe := fieldErrs[0]
	return apperror.ValidationFailed(fe.Field(), describe(fe))
}

func describe(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.Map {
			return fmt.Sprintf("%s must have at most %s entries", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be a positive id", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "slug":
		return fmt.Sprintf("%s must be lowercase letters, digits and single hyphens, with at least one letter", field)
	case "username":
		return fmt.Sprintf("%s may only contain letters, digits, '_' and '-'", field)
	}
	return fmt.Sprintf("%s is invalid (%s)", field, fe.Tag())
}
