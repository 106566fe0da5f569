package bn

import "github.com/bitfsorg/libdcr-go/errs"

var (
	// ErrInvalidNumber indicates a string that is not a number in the requested base.
	ErrInvalidNumber = errs.New(errs.ErrArgument, "bn: invalid number")

	// ErrInvalidBase indicates a base other than 0, 10 or 16.
	ErrInvalidBase = errs.New(errs.ErrArgument, "bn: unsupported base")

	// ErrScriptNumOverflow indicates a script number longer than the allowed size.
	ErrScriptNumOverflow = errs.New(errs.ErrRange, "bn: script number overflow")

	// ErrScriptNumNotMinimal indicates a script number that is not minimally encoded.
	ErrScriptNumNotMinimal = errs.New(errs.ErrEncoding, "bn: non-minimally encoded script number")
)
