package composite

import "github.com/cockroachdb/errors"

var (
	ErrTruncatedLength     = errors.New("composite: truncated length")
	ErrTruncatedValue      = errors.New("composite: truncated value")
	ErrTruncatedTerminator = errors.New("composite: truncated terminator")
	ErrBufferTooLarge      = errors.New("composite: buffer too large")
	ErrTooManyComponents   = errors.New("composite: too many components")
)

// ErrorKind maps a decode error onto a stable label for metrics and API
// responses. It returns "" for a nil error.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTruncatedLength):
		return "truncated_length"
	case errors.Is(err, ErrTruncatedValue):
		return "truncated_value"
	case errors.Is(err, ErrTruncatedTerminator):
		return "truncated_terminator"
	case errors.Is(err, ErrBufferTooLarge):
		return "buffer_too_large"
	case errors.Is(err, ErrTooManyComponents):
		return "too_many_components"
	default:
		return "unknown"
	}
}

// IsMalformed reports whether err describes bytes that do not follow the
// record grammar, as opposed to input rejected by decoder limits.
func IsMalformed(err error) bool {
	return errors.Is(err, ErrTruncatedLength) ||
		errors.Is(err, ErrTruncatedValue) ||
		errors.Is(err, ErrTruncatedTerminator)
}
