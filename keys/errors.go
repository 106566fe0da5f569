package keys

import "github.com/bitfsorg/libdcr-go/errs"

var (
	// ErrScalarOutOfRange indicates a private scalar of zero or not below the curve order.
	ErrScalarOutOfRange = errs.New(errs.ErrRange, "keys: scalar must be in [1, N-1]")

	// ErrNoNetwork indicates the network is missing or could not be resolved.
	ErrNoNetwork = errs.New(errs.ErrEncoding, "keys: network could not be resolved")

	// ErrNetworkMismatch indicates encoded key bytes name a network other than
	// the one the caller fixed.
	ErrNetworkMismatch = errs.New(errs.ErrEncoding, "keys: network mismatch")

	// ErrInvalidKeyBytes indicates a private key byte form of unsupported length or layout.
	ErrInvalidKeyBytes = errs.New(errs.ErrEncoding, "keys: invalid private key bytes")

	// ErrInvalidHex indicates text that is not valid hex.
	ErrInvalidHex = errs.New(errs.ErrEncoding, "keys: invalid hex")

	// ErrInvalidDER indicates a malformed public key encoding.
	ErrInvalidDER = errs.New(errs.ErrEncoding, "keys: invalid public key encoding")

	// ErrNotOnCurve indicates coordinates that do not describe a point on secp256k1.
	ErrNotOnCurve = errs.New(errs.ErrCurve, "keys: point is not on the curve")

	// ErrEntropy indicates the randomness source failed.
	ErrEntropy = errs.New(errs.ErrEntropy, "keys: entropy source failure")
)
