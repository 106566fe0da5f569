package network

import "github.com/bitfsorg/libdcr-go/errs"

var (
	// ErrUnknownNetwork indicates a name or key id that no registered network uses.
	ErrUnknownNetwork = errs.New(errs.ErrEncoding, "network: unknown network")

	// ErrNetworkMismatch indicates a key id that belongs to a network other than the one required.
	ErrNetworkMismatch = errs.New(errs.ErrEncoding, "network: network mismatch")

	// ErrDuplicateNetwork indicates a network whose name, alias or key id is already registered.
	ErrDuplicateNetwork = errs.New(errs.ErrArgument, "network: duplicate network")

	// ErrInvalidParams indicates network parameters that are incomplete.
	ErrInvalidParams = errs.New(errs.ErrArgument, "network: invalid parameters")
)
