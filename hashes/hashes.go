// Package hashes provides the stateless digest functions used for key
// identifiers, wallet-format checksums and message signing.
//
// SHA-256 and its compositions come from the go-sdk hash primitives, BLAKE-256
// from the Decred implementation, and RIPEMD-160 from x/crypto. A nil input is
// treated as empty.
package hashes

import (
	"crypto/hmac"
	"crypto/sha1" //nolint:gosec // required for legacy script opcodes
	"crypto/sha256"
	"crypto/sha512"

	bsvhash "github.com/bsv-blockchain/go-sdk/primitives/hash"
	"github.com/decred/dcrd/crypto/blake256"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // address hashing requires RIPEMD-160
)

// Digest sizes in bytes.
const (
	Sha1Size      = sha1.Size
	Sha256Size    = sha256.Size
	Ripemd160Size = ripemd160.Size
	Blake256Size  = blake256.Size
	Sha512Size    = sha512.Size
)

// Sha1 returns the SHA-1 digest of b.
func Sha1(b []byte) []byte {
	h := sha1.Sum(b) //nolint:gosec
	return h[:]
}

// Sha256 returns the SHA-256 digest of b.
func Sha256(b []byte) []byte {
	h := sha256.Sum256(b)
	return h[:]
}

// Sha256Sha256 returns SHA-256(SHA-256(b)).
func Sha256Sha256(b []byte) []byte {
	return bsvhash.Sha256d(b)
}

// Ripemd160 returns the RIPEMD-160 digest of b.
func Ripemd160(b []byte) []byte {
	h := ripemd160.New()
	h.Write(b)
	return h.Sum(nil)
}

// Sha256Ripemd160 returns RIPEMD-160(SHA-256(b)).
func Sha256Ripemd160(b []byte) []byte {
	return bsvhash.Hash160(b)
}

// Blake256 returns the BLAKE-256 (14 round) digest of b.
func Blake256(b []byte) []byte {
	h := blake256.Sum256(b)
	return h[:]
}

// Blake256Blake256 returns BLAKE-256(BLAKE-256(b)).
func Blake256Blake256(b []byte) []byte {
	first := blake256.Sum256(b)
	h := blake256.Sum256(first[:])
	return h[:]
}

// Blake256Ripemd160 returns RIPEMD-160(BLAKE-256(b)). This is the public key
// identifier hash.
func Blake256Ripemd160(b []byte) []byte {
	return Ripemd160(Blake256(b))
}

// Sha512 returns the SHA-512 digest of b.
func Sha512(b []byte) []byte {
	h := sha512.Sum512(b)
	return h[:]
}

// Sha256HMAC returns HMAC-SHA-256 of data under key.
func Sha256HMAC(data, key []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(data)
	return mac.Sum(nil)
}

// Sha512HMAC returns HMAC-SHA-512 of data under key.
func Sha512HMAC(data, key []byte) []byte {
	mac := hmac.New(sha512.New, key)
	mac.Write(data)
	return mac.Sum(nil)
}
