package scoring

import (
	"fmt"
	"strconv"
	"strings"
)

// Fields is the flat map of raw field values for one deal, as decoded from a
// JSON request body. Numbers may arrive as JSON numbers or as form strings;
// parsing is explicit and fallible, never silent coercion.
type Fields map[string]interface{}

func (f Fields) requireNumber(name string) (float64, error) {
	v, ok := f[name]
	if !ok || v == nil {
		return 0, &InvalidFieldError{Field: name, Reason: "required"}
	}
	n, ok := toNumber(v)
	if !ok {
		return 0, &InvalidFieldError{Field: name, Reason: "not a number"}
	}
	return n, nil
}

// optionalNumber returns def when the field is absent or empty, but a bad
// value in a present field is still an error.
func (f Fields) optionalNumber(name string, def float64) (float64, error) {
	v, ok := f[name]
	if !ok || v == nil {
		return def, nil
	}
	if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
		return def, nil
	}
	n, ok := toNumber(v)
	if !ok {
		return 0, &InvalidFieldError{Field: name, Reason: "not a number"}
	}
	return n, nil
}

// requireEnum matches a required categorical field against its allowed set
// (case-insensitive) and returns the canonical spelling.
func (f Fields) requireEnum(name string, allowed ...string) (string, error) {
	v, ok := f[name]
	if !ok || v == nil {
		return "", &InvalidFieldError{Field: name, Reason: "required"}
	}
	s, ok := v.(string)
	if !ok {
		return "", &InvalidFieldError{Field: name, Reason: "not a string"}
	}
	got := normalizeToken(s)
	for _, a := range allowed {
		if normalizeToken(a) == got {
			return a, nil
		}
	}
	return "", &InvalidFieldError{
		Field:  name,
		Reason: fmt.Sprintf("must be one of %s", strings.Join(allowed, ", ")),
	}
}

// text returns a free-form string field, or "" when absent.
func (f Fields) text(name string) string {
	if s, ok := f[name].(string); ok {
		return s
	}
	return ""
}

func toNumber(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// normalizeToken folds case and separators so "Multi-Family", "multi_family"
// and "MultiFamily" compare equal.
func normalizeToken(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("-", "", "_", "", " ", "").Replace(s)
	return s
}
