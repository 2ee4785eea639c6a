// Package validation validates request payloads with validator/v10 and reports
// failures as domain errors.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	domainerrors "github.com/listenupapp/colorhash/internal/errors"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Validator wraps go-playground/validator with domain error conversion.
type Validator struct {
	v *validator.Validate
}

// New creates a validator that reports fields by their JSON names and knows
// the "slug" tag.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		switch name {
		case "":
			return fld.Name
		case "-":
			return ""
		}
		return name
	})

	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})

	return &Validator{v: v}
}

// Validate validates a struct and returns a VALIDATION domain error whose
// details map field names to messages.
func (v *Validator) Validate(s any) error {
	if err := v.v.Struct(s); err != nil {
		return formatError(err)
	}
	return nil
}

func formatError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make(map[string]string, len(verrs))
	for _, e := range verrs {
		fields[fieldPath(e)] = friendlyMessage(e)
	}
	return domainerrors.ValidationWithDetails("validation failed", fields)
}

// fieldPath drops the top-level struct name: "Request.lightness[0]" becomes
// "lightness[0]".
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return e.Field()
}

func friendlyMessage(e validator.FieldError) string {
	unit := ""
	switch e.Kind() {
	case reflect.String:
		unit = " characters"
	case reflect.Slice, reflect.Array, reflect.Map:
		unit = " items"
	}

	switch e.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s%s", e.Param(), unit)
	case "max":
		return fmt.Sprintf("must not exceed %s%s", e.Param(), unit)
	case "gte":
		return "must be greater than or equal to " + e.Param()
	case "lte":
		return "must be less than or equal to " + e.Param()
	case "ltefield":
		return "must be less than or equal to " + strings.ToLower(e.Param())
	case "gtefield":
		return "must be greater than or equal to " + strings.ToLower(e.Param())
	case "oneof":
		return "must be one of: " + e.Param()
	case "slug":
		return "must be lowercase letters, digits and single hyphens"
	case "len":
		return fmt.Sprintf("must have exactly %s%s", e.Param(), unit)
	default:
		return "is invalid"
	}
}
