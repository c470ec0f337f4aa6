package validation

import (
	"errors"
	"fmt"
)

// FieldError reports one configuration key that failed a bound.
type FieldError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s = %g: %s", e.Field, e.Value, e.Reason)
}

// FieldChecker collects bound violations across a config struct so that
// one load reports every bad key at once. Methods chain.
type FieldChecker struct {
	name string
	errs []error
}

func NewFieldChecker(name string) *FieldChecker {
	return &FieldChecker{name: name}
}

func (fc *FieldChecker) fail(field string, v float64, reason string) *FieldChecker {
	fc.errs = append(fc.errs, &FieldError{Field: field, Value: v, Reason: reason})
	return fc
}

// Count requires a whole number of at least one.
func (fc *FieldChecker) Count(field string, n int) *FieldChecker {
	if n < 1 {
		return fc.fail(field, float64(n), "must be at least 1")
	}
	return fc
}

func (fc *FieldChecker) Positive(field string, v float64) *FieldChecker {
	if !(v > 0) {
		return fc.fail(field, v, "must be positive")
	}
	return fc
}

func (fc *FieldChecker) NonNegative(field string, v float64) *FieldChecker {
	if v < 0 || v != v {
		return fc.fail(field, v, "must not be negative")
	}
	return fc
}

// Percent requires v in [0, 100].
func (fc *FieldChecker) Percent(field string, v float64) *FieldChecker {
	if !(v >= 0 && v <= 100) {
		return fc.fail(field, v, "must be a percentage in [0, 100]")
	}
	return fc
}

// Custom records fn's error against field.
func (fc *FieldChecker) Custom(field string, fn func() error) *FieldChecker {
	if err := fn(); err != nil {
		fc.errs = append(fc.errs, fmt.Errorf("%s: %w", field, err))
	}
	return fc
}

func (fc *FieldChecker) Errors() []error { return fc.errs }

// Err wraps every collected error in ErrInvalid, or returns nil.
func (fc *FieldChecker) Err() error {
	switch len(fc.errs) {
	case 0:
		return nil
	case 1:
		return fmt.Errorf("%w: %s: %w", ErrInvalid, fc.name, fc.errs[0])
	default:
		return fmt.Errorf("%w: %s has %d bad fields: %w", ErrInvalid, fc.name, len(fc.errs), errors.Join(fc.errs...))
	}
}

// BadFields lists the keys named by FieldErrors inside err.
func BadFields(err error) []string {
	var out []string
	var walk func(error)
	walk = func(e error) {
		if e == nil {
			return
		}
		var fe *FieldError
		if fe, _ = e.(*FieldError); fe != nil {
			out = append(out, fe.Field)
			return
		}
		switch u := e.(type) {
		case interface{ Unwrap() []error }:
			for _, inner := range u.Unwrap() {
				walk(inner)
			}
		case interface{ Unwrap() error }:
			walk(u.Unwrap())
		}
	}
	walk(err)
	return out
}
