package helpers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report field names as their json tags so error details match the wire format.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("password", validPassword)
	_ = v.RegisterValidation("iso8601", validISO8601)
	return v
}

// validPassword requires at least 8 characters with a lowercase letter, an
// uppercase letter, a digit, and a symbol.
func validPassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()
	if len(password) < 8 {
		return false
	}
	var lower, upper, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		default:
			symbol = true
		}
	}
	return lower && upper && digit && symbol
}

// validISO8601 accepts RFC 3339 timestamps and plain dates (2006-01-02).
func validISO8601(fl validator.FieldLevel) bool {
	_, err := ParseISO8601(fl.Field().String())
	return err == nil
}

// ParseISO8601 parses an RFC 3339 timestamp, falling back to a date-only form.
func ParseISO8601(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

func validationDetails(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	details := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, fieldErrorMessage(fe))
	}
	return details
}

func fieldErrorMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "password":
		return fmt.Sprintf("%s must be at least 8 characters and contain a lowercase letter, an uppercase letter, a number, and a symbol", field)
	case "iso8601":
		return fmt.Sprintf("%s must be a valid ISO 8601 date", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// DecodeAndValidate decodes the request body into dest (with DisallowUnknownFields)
// and runs struct validation. On decode failure it writes a 400 bad_request; on
// validation failure it writes a 400 validation_failed with one detail per bad
// field. Callers should return immediately when DecodeAndValidate returns false.
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, dest any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid request body")
		return false
	}
	if err := validate.Struct(dest); err != nil {
		WriteJSONErrorDetails(w, http.StatusBadRequest, ErrCodeValidationFailed, "validation failed", validationDetails(err))
		return false
	}
	return true
}
