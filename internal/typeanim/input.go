package typeanim

import (
	"math"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
)

// ParseMillis converts an untyped value holding a number of milliseconds
// (an integer, a float or a json.Number) into a duration. Strings, even
// numeric ones, are not numbers: like booleans, nil and values under
// MinTiming they are rejected with ErrInvalidNumericParameter. A
// time.Duration is taken as is.
func ParseMillis(v any) (time.Duration, error) {
	switch x := v.(type) {
	case nil:
		return 0, errors.Wrap(ErrInvalidNumericParameter, "value is missing")
	case bool:
		return 0, errors.Wrapf(ErrInvalidNumericParameter, "%v is not a number", x)
	case string:
		return 0, errors.Wrapf(ErrInvalidNumericParameter, "%q is a string, not a number", x)
	case time.Duration:
		if err := checkDuration("value", x); err != nil {
			return 0, err
		}
		return x, nil
	}
	ms, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(ms) || math.IsInf(ms, 0) {
		return 0, errors.Wrapf(ErrInvalidNumericParameter, "%v is not a number", v)
	}
	d := time.Duration(ms * float64(time.Millisecond))
	if err := checkDuration("value", d); err != nil {
		return 0, err
	}
	return d, nil
}

// PhrasesFromValue accepts a []string, or a []any whose elements are all
// strings, and returns it as a non-empty phrase list.
func PhrasesFromValue(v any) ([]string, error) {
	var phrases []string
	switch x := v.(type) {
	case []string:
		phrases = append(phrases, x...)
	case []any:
		for i, e := range x {
			s, ok := e.(string)
			if !ok {
				return nil, errors.Wrapf(ErrInvalidPhraseInput, "phrase %d is a %T, not a string", i, e)
			}
			phrases = append(phrases, s)
		}
	default:
		return nil, errors.Wrapf(ErrInvalidPhraseInput, "the phrase list must be a list, got %T", v)
	}
	if len(phrases) == 0 {
		return nil, errors.Wrap(ErrInvalidPhraseInput, "the phrase list cannot be empty")
	}
	return phrases, nil
}
