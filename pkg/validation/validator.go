package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/gosimple/slug"
)

// Enum is implemented by closed string sets such as skill categories.
type Enum interface {
	Valid() bool
}

var (
	once     sync.Once
	validate *validator.Validate
)

// Init configures both validators: Gin's binding engine, which reads
// `binding` tags, and the one behind Struct, which reads `validate` tags.
// - Uses JSON tag names in errors.
// - Registers the custom enum and slug tags plus a few aliases.
func Init() {
	once.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			configure(v)
		}
		validate = validator.New(validator.WithRequiredStructEnabled())
		configure(validate)
	})
}

func configure(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("enum", func(fl validator.FieldLevel) bool {
		e, ok := fl.Field().Interface().(Enum)
		return ok && e.Valid()
	})
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slug.IsSlug(fl.Field().String())
	})
	v.RegisterAlias("skillcategory", "enum")
	v.RegisterAlias("pwd", "min=8")
	v.RegisterAlias("nonzero", "required")
}

// Struct validates s against its `validate` tags. Errors unwrap to
// validator.ValidationErrors.
func Struct(s any) error {
	Init()
	return validate.Struct(s)
}

// ToDetails converts validation/binding errors into a map[field]message suitable for API error.details.
func ToDetails(err error) map[string]string {
	if err == nil {
		return nil
	}

	// Invalid JSON payloads
	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	if errors.As(err, &se) {
		return map[string]string{"payload": "invalid json"}
	}
	if errors.As(err, &ute) {
		field := ute.Field
		if field == "" {
			field = "payload"
		}
		return map[string]string{field: "must be a " + ute.Type.String()}
	}

	// Validation errors from validator.v10
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			out[fieldPath(fe)] = formatFieldError(fe)
		}
		return out
	}

	// Fallback
	return map[string]string{"payload": "invalid payload"}
}

// fieldPath drops the top-level struct name from the namespace so nested
// fields read as "tags[0]" rather than "BlogPost.tags[0]".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func formatFieldError(fe validator.FieldError) string {
	tag := fe.Tag()
	param := fe.Param()
	kind := fe.Kind()

	switch tag {
	// ===== PRESENCE =====
	case "required", "nonzero":
		return "is required"
	case "required_with":
		return "is required when " + param + " is present"
	case "required_without":
		return "is required when " + param + " is not present"

	// ===== FORMAT =====
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "uri":
		return "must be a valid URI"
	case "uuid", "uuid4":
		return "must be a valid UUID"
	case "e164":
		return "must be a valid phone number in E.164 format"
	case "alphanum":
		return "must contain only letters and numbers"
	case "slug":
		return "must contain only lowercase letters, digits and single hyphens"
	case "enum", "skillcategory":
		return "is not an allowed value"

	// ===== SIZE/LENGTH =====
	case "len":
		if param != "" {
			return fmt.Sprintf("must be exactly %s characters long", param)
		}
		return "invalid length"
	case "min", "pwd":
		if tag == "pwd" {
			param = "8"
		}
		if param != "" {
			if isNumberKind(kind) {
				return "must be at least " + param
			}
			if kind == reflect.Slice {
				return "must contain at least " + param + " items"
			}
			return "must be at least " + param + " characters long"
		}
		return "too small"
	case "max":
		if param != "" {
			if isNumberKind(kind) {
				return "must be at most " + param
			}
			if kind == reflect.Slice {
				return "must contain at most " + param + " items"
			}
			return "must be at most " + param + " characters long"
		}
		return "too large"
	case "lte":
		return "must be less than or equal to " + param
	case "gte":
		return "must be greater than or equal to " + param

	// ===== SETS =====
	case "oneof":
		return "must be one of: " + strings.Join(splitParams(param), ", ")
	case "unique":
		return "must not contain duplicates"
	case "dive":
		return "contains an invalid item"

	// ===== DATE/TIME =====
	case "datetime":
		if param != "" {
			return "must match datetime format: " + param
		}
		return "must be a valid datetime"
	}

	if param != "" {
		return fmt.Sprintf("failed %s=%s validation", tag, param)
	}
	return fmt.Sprintf("failed %s validation", tag)
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

func splitParams(p string) []string {
	if p == "" {
		return nil
	}
	// Handle space-separated values
	parts := strings.Fields(p)
	if len(parts) > 1 {
		return parts
	}
	// Handle comma-separated values
	if strings.Contains(p, ",") {
		return strings.Split(p, ",")
	}
	// Single value
	return []string{p}
}
