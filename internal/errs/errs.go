package errs

import (
	"fmt"

	"github.com/pkg/errors"
)

// Error is a core failure tagged with a stable Kind so callers can match on
// it with errors.As instead of parsing the message.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// New builds a Kind-tagged error with a stack trace attached at the call
// site, so a failure surfaced from deep inside a rewrite pass still points
// back to where it actually went wrong.
func New(kind Kind, msg string) error {
	return errors.WithStack(&Error{Kind: kind, Msg: msg})
}

// Newf is New with fmt.Sprintf-style formatting.
func Newf(kind Kind, format string, args ...any) error {
	return New(kind, fmt.Sprintf(format, args...))
}

// Is reports whether err (or anything it wraps) carries the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}
