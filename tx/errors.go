package tx

import "github.com/bitfsorg/libdcr-go/errs"

var (
	// ErrNilParam indicates a required parameter is nil.
	ErrNilParam = errs.New(errs.ErrArgument, "tx: required parameter is nil")

	// ErrNegativeAtoms indicates an output value below zero.
	ErrNegativeAtoms = errs.New(errs.ErrArgument, "tx: output atoms negative")

	// ErrInvalidAtoms indicates an atoms string that is not a decimal integer.
	ErrInvalidAtoms = errs.New(errs.ErrArgument, "tx: output atoms is not a natural number")

	// ErrAtomsOverflow indicates an output value above MaxAtoms.
	ErrAtomsOverflow = errs.New(errs.ErrRange, "tx: output atoms greater than max safe integer")

	// ErrAtomsMismatch indicates the native and arbitrary-precision atoms
	// representations disagree.
	ErrAtomsMismatch = errs.New(errs.ErrState, "tx: output atoms has corrupted value")

	// ErrInvalidScript indicates script text that is neither hex nor ASM.
	ErrInvalidScript = errs.New(errs.ErrEncoding, "tx: invalid script")

	// ErrMalformedOutput indicates truncated or otherwise unreadable output bytes.
	ErrMalformedOutput = errs.New(errs.ErrEncoding, "tx: malformed output")
)
