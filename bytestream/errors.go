package bytestream

import "github.com/bitfsorg/libdcr-go/errs"

var (
	// ErrShortRead indicates the stream ended before the requested bytes.
	ErrShortRead = errs.New(errs.ErrEncoding, "bytestream: unexpected end of data")

	// ErrInvalidVarInt indicates a malformed or non-canonical variable-length integer.
	ErrInvalidVarInt = errs.New(errs.ErrEncoding, "bytestream: invalid varint")
)
