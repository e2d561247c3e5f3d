package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// MaxPasswordBytes is the bcrypt input ceiling.
const MaxPasswordBytes = 72

// Violation is one failed rule, reported with the JSON field name.
type Violation struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// Validator wraps a configured validator.v10 instance.
// - Uses JSON tag names in errors.
// - Registers notblank and pwdbytes.
// It is safe for concurrent use once constructed.
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	mustRegister(v, "notblank", validators.NotBlank)
	mustRegister(v, "pwdbytes", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= MaxPasswordBytes
	})
	mustRegister(v, "nothashprefix", func(fl validator.FieldLevel) bool {
		return !IsHashPrefix(fl.Field().String())
	})
	return &Validator{v: v}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validation: register %q: %v", tag, err))
	}
}

// bcryptPrefixes are every "$2x$NN$" header bcrypt can emit.
var bcryptPrefixes = func() []string {
	var out []string
	for _, variant := range []string{"2a", "2b", "2y"} {
		for cost := 4; cost <= 31; cost++ {
			out = append(out, fmt.Sprintf("$%s$%02d$", variant, cost))
		}
	}
	return out
}()

// IsHashPrefix reports whether s is a substring of a bcrypt hash header, which
// every stored hash would then contain verbatim.
func IsHashPrefix(s string) bool {
	if s == "" {
		return false
	}
	for _, p := range bcryptPrefixes {
		if strings.Contains(p, s) {
			return true
		}
	}
	return false
}

// Struct validates s and returns every violated rule in field order, or nil.
// Each field contributes at most one violation: its first failing tag.
func (val *Validator) Struct(s any) []Violation {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []Violation{{Field: "payload", Tag: "invalid", Message: "invalid payload"}}
	}
	out := make([]Violation, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, Violation{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Message: messageFor(fe),
		})
	}
	return out
}

// fieldMessages holds user-facing copy for specific field/tag pairs.
var fieldMessages = map[string]string{
	"name.notblank":     "Name is required",
	"email.email":       "Please include a valid email",
	"password.min":      "Please enter a password with 6 or more characters",
	"password.pwdbytes": "Password must be at most 72 bytes",

	"password.nothashprefix": "Password must not look like a password hash",
}

func messageFor(fe validator.FieldError) string {
	if msg, ok := fieldMessages[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}
	return fe.Field() + " " + formatFieldError(fe)
}

// ToDetails converts binding errors into a map[field]message suitable for API error.details.
func ToDetails(err error) map[string]string {
	if err == nil {
		return nil
	}

	// Invalid JSON payloads
	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	if errors.As(err, &se) || errors.As(err, &ute) || errors.Is(err, io.ErrUnexpectedEOF) {
		return map[string]string{"payload": "invalid json"}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			out[fe.Field()] = formatFieldError(fe)
		}
		return out
	}

	// Fallback
	return map[string]string{"payload": "invalid payload"}
}

func formatFieldError(fe validator.FieldError) string {
	tag := fe.Tag()
	param := fe.Param()

	switch tag {
	case "required", "notblank":
		return "is required"
	case "email":
		return "must be a valid email"
	case "url":
		return "must be a valid URL"
	case "min":
		if param != "" {
			if isNumberKind(fe.Kind()) {
				return "must be at least " + param
			}
			return "must be at least " + param + " characters long"
		}
		return "too small"
	case "max":
		if param != "" {
			if isNumberKind(fe.Kind()) {
				return "must be at most " + param
			}
			return "must be at most " + param + " characters long"
		}
		return "too large"
	case "pwdbytes":
		return "is too long"
	case "nothashprefix":
		return "must not look like a password hash"
	case "uuid":
		return "must be a valid UUID"
	default:
		if param != "" {
			return "failed validation '" + tag + "' with parameter '" + param + "'"
		}
		return "failed validation '" + tag + "'"
	}
}

func isNumberKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
