package commands

import (
	"math"

	apperrors "github.com/SiriusScan/mcp-redis/internal/errors"
)

// Args are the decoded JSON arguments of one invocation. Numbers arrive as
// float64.
type Args map[string]any

// String returns the string argument name. ok is false when it is absent or
// null.
func (a Args) String(name string) (value string, ok bool, err error) {
	raw, present := a[name]
	if !present || raw == nil {
		return "", false, nil
	}
	s, isString := raw.(string)
	if !isString {
		return "", false, apperrors.Validation("parameter %q must be a string", name)
	}
	return s, true, nil
}

// RequiredString returns the string argument name, failing when it is absent
// or empty.
func (a Args) RequiredString(name string) (string, error) {
	s, ok, err := a.String(name)
	if err != nil {
		return "", err
	}
	if !ok || s == "" {
		return "", apperrors.Validation("parameter %q is required", name)
	}
	return s, nil
}

// Int64 returns the integer argument name, or def when it is absent.
func (a Args) Int64(name string, def int64) (int64, error) {
	raw, present := a[name]
	if !present || raw == nil {
		return def, nil
	}

	var f float64
	switch v := raw.(type) {
	case float64:
		f = v
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	default:
		return 0, apperrors.Validation("parameter %q must be a number", name)
	}

	if f != math.Trunc(f) || f >= 1<<63 || f < -1<<63 {
		return 0, apperrors.Validation("parameter %q must be an integer", name)
	}
	return int64(f), nil
}

// Cap returns the non-negative integer argument name as a result cap, nil
// when it is absent.
func (a Args) Cap(name string) (*uint32, error) {
	if raw, present := a[name]; !present || raw == nil {
		return nil, nil
	}

	n, err := a.Int64(name, 0)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, apperrors.Validation("parameter %q must not be negative", name)
	}
	if n > math.MaxUint32 {
		n = math.MaxUint32
	}
	c := uint32(n)
	return &c, nil
}
