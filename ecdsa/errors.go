package ecdsa

import "github.com/bitfsorg/libdcr-go/errs"

var (
	// ErrNilParam indicates a required key or signature is nil.
	ErrNilParam = errs.New(errs.ErrArgument, "ecdsa: required parameter is nil")

	// ErrInvalidDigest indicates a digest that is not exactly 32 bytes.
	ErrInvalidDigest = errs.New(errs.ErrArgument, "ecdsa: digest must be 32 bytes")

	// ErrInvalidEntropy indicates extra nonce entropy that is not exactly 32 bytes.
	ErrInvalidEntropy = errs.New(errs.ErrArgument, "ecdsa: extra entropy must be 32 bytes")

	// ErrSignatureRange indicates an r or s value outside [1, N-1].
	ErrSignatureRange = errs.New(errs.ErrRange, "ecdsa: signature values must be in [1, N-1]")

	// ErrMalformedDER indicates signature bytes that are not strict DER.
	ErrMalformedDER = errs.New(errs.ErrEncoding, "ecdsa: malformed DER signature")

	// ErrHighS indicates a non-canonical s value rejected by a strict verifier.
	ErrHighS = errs.New(errs.ErrEncoding, "ecdsa: signature s value is not canonical")

	// ErrVerifyFailed indicates a well-formed signature that does not match the key and digest.
	ErrVerifyFailed = errs.New(errs.ErrEncoding, "ecdsa: signature verification failed")
)
