package scoring

import (
	"errors"
	"fmt"
)

// ErrUnsupportedPropertyType means the caller passed a type outside the four
// known variants. Configuration error, never retried.
var ErrUnsupportedPropertyType = errors.New("unsupported property type")

// InvalidFieldError reports a required field that is missing, non-numeric,
// or outside its enumerated set.
type InvalidFieldError struct {
	Field  string
	Reason string
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("invalid field %q: %s", e.Field, e.Reason)
}

// DivisionByZeroError reports a zero denominator in a formula (market value,
// ARV, cap rate, derived property value). Raised explicitly so a score can
// never come out as Inf or NaN.
type DivisionByZeroError struct {
	Quantity string
}

func (e *DivisionByZeroError) Error() string {
	return fmt.Sprintf("division by zero: %s is zero", e.Quantity)
}
