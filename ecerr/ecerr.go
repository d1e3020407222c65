// Package ecerr defines the typed error kinds spec.md §7 requires, modeled
// as a small Kind enum plus a wrapping Error type so callers can compare by
// identity with errors.Is/errors.As instead of matching strings — the same
// shape pkg/crypto/precompile_field.go's sentinel errors give its callers.
package ecerr

import "fmt"

// Kind identifies which of the four error classes an Error belongs to.
type Kind int

const (
	// InputError covers truncated blobs, disallowed lengths, points off the
	// curve or subgroup, a wrong operation tag, or mismatched G1/G2 counts.
	InputError Kind = iota + 1
	// UnexpectedZero covers a zero modulus or a zero group order.
	UnexpectedZero
	// UnknownParameter covers a twist-type byte other than D/M, a sign byte
	// other than 0/1, or an extension degree other than 2/3.
	UnknownParameter
	// MissingValue covers a pairing engine returning "no value" because a
	// required inversion failed.
	MissingValue
)

func (k Kind) String() string {
	switch k {
	case InputError:
		return "InputError"
	case UnexpectedZero:
		return "UnexpectedZero"
	case UnknownParameter:
		return "UnknownParameter"
	case MissingValue:
		return "MissingValue"
	default:
		return "UnknownKind"
	}
}

// Error wraps a Kind with a human-readable message. Two Errors compare
// equal under errors.Is iff they carry the same Kind, mirroring how the
// teacher's sentinel errors compare by identity rather than by message.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// Is reports whether target is an *Error with the same Kind, so callers
// can write errors.Is(err, ecerr.New(ecerr.InputError, "")) or, more
// idiomatically, errors.Is(err, ecerr.ErrInputError).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// New constructs an Error of the given kind.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// sentinels let callers write errors.Is(err, ecerr.ErrInputError).
var (
	ErrInputError        = &Error{Kind: InputError, Msg: "input error"}
	ErrUnexpectedZero    = &Error{Kind: UnexpectedZero, Msg: "unexpected zero"}
	ErrUnknownParameter  = &Error{Kind: UnknownParameter, Msg: "unknown parameter"}
	ErrMissingValue      = &Error{Kind: MissingValue, Msg: "missing value"}
)
