// Package errs defines the error taxonomy shared by every package in the
// module. Package-level sentinels are Error values whose Err field is one of
// the Kind constants, so callers can match either the precise sentinel or the
// broad category with errors.Is.
package errs

// Kind identifies a category of failure. It has full support for errors.Is
// and errors.As.
type Kind string

const (
	// ErrArgument indicates an input of the wrong shape, such as a digest of
	// the wrong length.
	ErrArgument = Kind("ArgumentError")

	// ErrRange indicates a value outside its permitted range.
	ErrRange = Kind("RangeError")

	// ErrEncoding indicates malformed or non-canonical encoded input.
	ErrEncoding = Kind("EncodingError")

	// ErrCurve indicates a point that does not lie on the curve.
	ErrCurve = Kind("CurveError")

	// ErrState indicates a violated internal invariant.
	ErrState = Kind("StateError")

	// ErrEntropy indicates the secure randomness source failed.
	ErrEntropy = Kind("EntropyError")
)

// Error satisfies the error interface.
func (k Kind) Error() string {
	return string(k)
}

// Error pairs a Kind with a human-readable description.
type Error struct {
	Err         error
	Description string
}

// Error satisfies the error interface.
func (e Error) Error() string {
	return e.Description
}

// Unwrap returns the underlying Kind.
func (e Error) Unwrap() error {
	return e.Err
}

// New creates an Error of the given kind.
func New(kind Kind, desc string) Error {
	return Error{Err: kind, Description: desc}
}
