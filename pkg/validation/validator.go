package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// validate is a singleton validator instance
	validate *validator.Validate

	// ErrInvalid wraps every struct-tag validation failure.
	ErrInvalid = errors.New("validation failed")
)

// Enum is implemented by closed enumerations that can report whether
// they hold a declared value.
type Enum interface {
	Valid() bool
}

func init() {
	validate = validator.New()
	// Registration only fails for an empty tag or nil func.
	_ = validate.RegisterValidation("enum", validateEnum)
}

func validateEnum(fl validator.FieldLevel) bool {
	if !fl.Field().CanInterface() {
		return false
	}
	e, ok := fl.Field().Interface().(Enum)
	if !ok {
		return false
	}
	return e.Valid()
}

// Struct validates v against its `validate` struct tags.
func Struct(v any) error {
	if v == nil {
		return fmt.Errorf("%w: nil value", ErrInvalid)
	}
	if err := validate.Struct(v); err != nil {
		return FormatError(err)
	}
	return nil
}

// FormatError converts validator errors into a single readable error
// listing every failing field. Other errors pass through unchanged.
func FormatError(err error) error {
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	msgs := make([]string, 0, len(validationErrs))
	for _, e := range validationErrs {
		field := e.Namespace()
		param := e.Param()

		switch e.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s: field is required", field))
		case "gt":
			msgs = append(msgs, fmt.Sprintf("%s: must be greater than %s", field, param))
		case "gte":
			msgs = append(msgs, fmt.Sprintf("%s: must be at least %s", field, param))
		case "lte":
			msgs = append(msgs, fmt.Sprintf("%s: must not exceed %s", field, param))
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s: must be at least %s", field, param))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s: must not exceed %s", field, param))
		case "enum":
			msgs = append(msgs, fmt.Sprintf("%s: unknown value %v", field, e.Value()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s: validation failed (%s)", field, e.Tag()))
		}
	}

	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}
