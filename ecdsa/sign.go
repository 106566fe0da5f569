// Package ecdsa implements deterministic secp256k1 ECDSA signing and
// verification over 32-byte digests.
//
// Nonces follow RFC 6979, optionally mixed with 32 bytes of caller-supplied
// entropy. Produced signatures always have a low s value. Verification accepts
// high-S signatures unless a Verifier asks for strict checking.
package ecdsa

import (
	"fmt"
	"io"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/bitfsorg/libdcr-go/keys"
)

// DigestSize is the required digest length in bytes.
const DigestSize = 32

// Endian is the byte order a digest is supplied in.
type Endian int

const (
	// BigEndian digests are used as given.
	BigEndian Endian = iota

	// LittleEndian digests are reversed before use.
	LittleEndian
)

func normalizeDigest(digest []byte, endian Endian) ([]byte, error) {
	if len(digest) != DigestSize {
		return nil, fmt.Errorf("%w: got %d bytes", ErrInvalidDigest, len(digest))
	}
	out := make([]byte, DigestSize)
	if endian == LittleEndian {
		for i, b := range digest {
			out[DigestSize-1-i] = b
		}
		return out, nil
	}
	copy(out, digest)
	return out, nil
}

// Sign returns the deterministic signature of digest under priv. extraEntropy
// may be empty or exactly 32 bytes. The same inputs always yield the same
// signature. The result carries the compression flag of priv's public key.
func Sign(digest []byte, priv *keys.PrivateKey, endian Endian, extraEntropy []byte) (*Signature, error) {
	if priv == nil {
		return nil, fmt.Errorf("%w: private key", ErrNilParam)
	}
	hash, err := normalizeDigest(digest, endian)
	if err != nil {
		return nil, err
	}
	if len(extraEntropy) != 0 && len(extraEntropy) != 32 {
		return nil, fmt.Errorf("%w: got %d bytes", ErrInvalidEntropy, len(extraEntropy))
	}

	ecKey := priv.ECPrivateKey()
	defer ecKey.Zero()
	privBytes := priv.Bytes()
	defer clear(privBytes)

	for iteration := uint32(0); ; iteration++ {
		k := secp256k1.NonceRFC6979(privBytes, hash, extraEntropy, nil, iteration)
		sig, ok := signWithNonce(&ecKey.Key, k, hash)
		k.Zero()
		if ok {
			sig.compressed = priv.PublicKey().Compressed()
			return sig, nil
		}
	}
}

// SignRandomK signs with 32 bytes of extra nonce entropy drawn from r. An
// entropy failure is returned as keys.ErrEntropy.
func SignRandomK(digest []byte, priv *keys.PrivateKey, endian Endian, r io.Reader) (*Signature, error) {
	extra, err := keys.ReadEntropy(r, 32)
	if err != nil {
		return nil, err
	}
	return Sign(digest, priv, endian, extra)
}

// signWithNonce computes s = k^-1(e + dr) mod N with r = (kG).x mod N. It
// reports false when r or s is zero, in which case the caller must retry with
// the next nonce.
func signWithNonce(d, k *secp256k1.ModNScalar, hash []byte) (*Signature, bool) {
	var kG secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(k, &kG)
	kG.ToAffine()

	var r secp256k1.ModNScalar
	r.SetBytes(kG.X.Bytes())
	if r.IsZero() {
		return nil, false
	}

	var e secp256k1.ModNScalar
	e.SetByteSlice(hash)

	kinv := new(secp256k1.ModNScalar).InverseValNonConst(k)
	s := new(secp256k1.ModNScalar).Mul2(d, &r).Add(&e).Mul(kinv)
	if s.IsZero() {
		return nil, false
	}
	if s.IsOverHalfOrder() {
		s.Negate()
	}
	return &Signature{r: r, s: *s}, true
}

// Verifier checks signatures. The zero value accepts both low-S and high-S
// signatures.
type Verifier struct {
	// RequireLowS rejects signatures whose s value exceeds half the curve order.
	RequireLowS bool
}

// Check returns nil if sig is a valid signature of digest by pub, and the
// reason otherwise.
func (v Verifier) Check(digest []byte, sig *Signature, pub *keys.PublicKey, endian Endian) error {
	if sig == nil || pub == nil {
		return fmt.Errorf("%w: signature and public key are required", ErrNilParam)
	}
	hash, err := normalizeDigest(digest, endian)
	if err != nil {
		return err
	}
	if v.RequireLowS && !sig.IsLowS() {
		return ErrHighS
	}
	if !sig.toSecp().Verify(hash, pub.ECPublicKey()) {
		return ErrVerifyFailed
	}
	return nil
}

// Verify reports whether sig is a valid signature of digest by pub.
func (v Verifier) Verify(digest []byte, sig *Signature, pub *keys.PublicKey, endian Endian) bool {
	return v.Check(digest, sig, pub, endian) == nil
}

// Verify reports whether sig is a valid signature of digest by pub. High-S
// signatures are accepted; use a Verifier with RequireLowS for strict checks.
func Verify(digest []byte, sig *Signature, pub *keys.PublicKey, endian Endian) bool {
	return Verifier{}.Verify(digest, sig, pub, endian)
}
