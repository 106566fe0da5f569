package ecdsa

import (
	"encoding/hex"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	secpecdsa "github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"

	"github.com/bitfsorg/libdcr-go/bn"
)

const (
	asn1SequenceID = 0x30
	asn1IntegerID  = 0x02
)

// Signature is an ECDSA (r, s) pair with a hint recording whether the signing
// key's public key is compressed. Signatures are immutable.
type Signature struct {
	r, s       secp256k1.ModNScalar
	compressed bool
}

// NewSignature returns a signature from r and s, which must be in [1, N-1].
func NewSignature(r, s bn.Int, compressed bool) (*Signature, error) {
	sig := &Signature{compressed: compressed}
	if err := setScalar(&sig.r, r); err != nil {
		return nil, fmt.Errorf("%w: r", err)
	}
	if err := setScalar(&sig.s, s); err != nil {
		return nil, fmt.Errorf("%w: s", err)
	}
	return sig, nil
}

func setScalar(dst *secp256k1.ModNScalar, v bn.Int) error {
	if v.Sign() <= 0 || len(v.Bytes(bn.BigEndian)) > 32 {
		return ErrSignatureRange
	}
	if overflow := dst.SetByteSlice(v.FixedBytes(32, bn.BigEndian)); overflow {
		return ErrSignatureRange
	}
	return nil
}

// ParseDER parses a strict DER signature. High-S values are accepted.
func ParseDER(der []byte, compressed bool) (*Signature, error) {
	parsed, err := secpecdsa.ParseDERSignature(der)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedDER, err)
	}
	return &Signature{r: parsed.R(), s: parsed.S(), compressed: compressed}, nil
}

// ParseHex parses the hex form of a DER signature.
func ParseHex(s string, compressed bool) (*Signature, error) {
	der, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedDER, err)
	}
	return ParseDER(der, compressed)
}

// R returns the r value.
func (sig *Signature) R() bn.Int {
	b := sig.r.Bytes()
	return bn.FromBytes(b[:], bn.BigEndian)
}

// S returns the s value.
func (sig *Signature) S() bn.Int {
	b := sig.s.Bytes()
	return bn.FromBytes(b[:], bn.BigEndian)
}

// Compressed reports whether the signing key's public key is compressed.
func (sig *Signature) Compressed() bool {
	return sig.compressed
}

// IsLowS reports whether s is at most half the curve order.
func (sig *Signature) IsLowS() bool {
	return !sig.s.IsOverHalfOrder()
}

// LowS returns the canonical form of sig, replacing s with N - s when s is
// above half the curve order.
func (sig *Signature) LowS() *Signature {
	out := *sig
	if out.s.IsOverHalfOrder() {
		out.s.Negate()
	}
	return &out
}

// Equal reports whether sig and other have the same r and s.
func (sig *Signature) Equal(other *Signature) bool {
	return other != nil && sig.r.Equals(&other.r) && sig.s.Equals(&other.s)
}

// DER returns the DER encoding. Unlike most encoders it does not canonicalize
// s, so a parsed high-S signature encodes back to the same bytes.
func (sig *Signature) DER() []byte {
	r := derInteger(sig.r.Bytes())
	s := derInteger(sig.s.Bytes())

	out := make([]byte, 0, 6+len(r)+len(s))
	out = append(out, asn1SequenceID, byte(4+len(r)+len(s)))
	out = append(out, asn1IntegerID, byte(len(r)))
	out = append(out, r...)
	out = append(out, asn1IntegerID, byte(len(s)))
	out = append(out, s...)
	return out
}

// Hex returns the DER encoding in hex.
func (sig *Signature) Hex() string {
	return hex.EncodeToString(sig.DER())
}

// String returns the DER encoding in hex.
func (sig *Signature) String() string {
	return sig.Hex()
}

func (sig *Signature) toSecp() *secpecdsa.Signature {
	return secpecdsa.NewSignature(&sig.r, &sig.s)
}

// derInteger returns the minimal big-endian encoding of a positive integer,
// with a leading zero when the top bit would otherwise mark it negative.
func derInteger(b [32]byte) []byte {
	i := 0
	for i < len(b)-1 && b[i] == 0 {
		i++
	}
	v := b[i:]
	if v[0]&0x80 != 0 {
		return append([]byte{0x00}, v...)
	}
	return append([]byte(nil), v...)
}
