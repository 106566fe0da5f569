// Package wif implements the Decred Wallet Import Format for private keys.
//
// The decoded layout is a two-byte big-endian network id, a one-byte curve
// type, the 32-byte big-endian scalar and a four-byte checksum. The checksum
// is the first four bytes of a single BLAKE-256 over the preceding bytes. The
// whole is rendered in base-58.
package wif

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/btcsuite/btcutil/base58"

	"github.com/bitfsorg/libdcr-go/hashes"
)

// CurveSecp256k1 is the only supported curve type marker.
const CurveSecp256k1 byte = 0

const (
	netIDLen    = 2
	scalarLen   = 32
	checksumLen = 4
	payloadLen  = netIDLen + 1 + scalarLen
	decodedLen  = payloadLen + checksumLen
)

// Key is the content of a WIF string.
type Key struct {
	NetID  uint16
	Scalar [32]byte
}

// Encode renders a private key scalar for the network with private key id netID.
func Encode(netID uint16, scalar [32]byte) string {
	buf := make([]byte, decodedLen)
	binary.BigEndian.PutUint16(buf[:netIDLen], netID)
	buf[netIDLen] = CurveSecp256k1
	copy(buf[netIDLen+1:payloadLen], scalar[:])
	copy(buf[payloadLen:], checksum(buf[:payloadLen]))
	return base58.Encode(buf)
}

// Decode parses a WIF string. It does not check that the network id is
// known or that the scalar is in range.
func Decode(s string) (Key, error) {
	if s == "" {
		return Key{}, fmt.Errorf("%w: empty string", ErrInvalidBase58)
	}
	buf := base58.Decode(s)
	if len(buf) == 0 {
		return Key{}, fmt.Errorf("%w: %q", ErrInvalidBase58, s)
	}
	if len(buf) != decodedLen {
		return Key{}, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidLength, len(buf), decodedLen)
	}
	if !bytes.Equal(checksum(buf[:payloadLen]), buf[payloadLen:]) {
		return Key{}, ErrChecksumMismatch
	}
	if buf[netIDLen] != CurveSecp256k1 {
		return Key{}, fmt.Errorf("%w: %d", ErrCurveType, buf[netIDLen])
	}

	var k Key
	k.NetID = binary.BigEndian.Uint16(buf[:netIDLen])
	copy(k.Scalar[:], buf[netIDLen+1:payloadLen])
	return k, nil
}

func checksum(payload []byte) []byte {
	return hashes.Blake256(payload)[:checksumLen]
}
