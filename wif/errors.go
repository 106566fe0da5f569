package wif

import "github.com/bitfsorg/libdcr-go/errs"

var (
	// ErrInvalidBase58 indicates the text is empty or not valid base-58.
	ErrInvalidBase58 = errs.New(errs.ErrEncoding, "wif: invalid base58 text")

	// ErrInvalidLength indicates a decoded payload of the wrong size.
	ErrInvalidLength = errs.New(errs.ErrEncoding, "wif: invalid length")

	// ErrChecksumMismatch indicates the trailing checksum does not match the payload.
	ErrChecksumMismatch = errs.New(errs.ErrEncoding, "wif: checksum mismatch")

	// ErrCurveType indicates a signature scheme other than secp256k1 ECDSA.
	ErrCurveType = errs.New(errs.ErrEncoding, "wif: unsupported curve type")
)
