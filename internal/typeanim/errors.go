package typeanim

import "github.com/pkg/errors"

// Configuration errors. Every error returned by an Animator setter wraps
// exactly one of these, so callers can branch with errors.Is.
var (
	ErrInvalidPhraseInput      = errors.New("invalid phrase input")
	ErrInvalidSelectorFormat   = errors.New("invalid selector format")
	ErrTargetNotFound          = errors.New("target not found")
	ErrInvalidNumericParameter = errors.New("invalid numeric parameter")
	ErrNotConfigured           = errors.New("animator not configured")
)

// Kind returns the short name of the configuration error wrapped by err,
// or "" when err is not one of ours.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrInvalidPhraseInput):
		return "InvalidPhraseInput"
	case errors.Is(err, ErrInvalidSelectorFormat):
		return "InvalidSelectorFormat"
	case errors.Is(err, ErrTargetNotFound):
		return "TargetNotFound"
	case errors.Is(err, ErrInvalidNumericParameter):
		return "InvalidNumericParameter"
	case errors.Is(err, ErrNotConfigured):
		return "NotConfigured"
	}
	return ""
}
