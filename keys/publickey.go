package keys

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/bitfsorg/libdcr-go/bn"
	"github.com/bitfsorg/libdcr-go/hashes"
	"github.com/bitfsorg/libdcr-go/network"
)

// Public key format prefixes.
const (
	formatCompressedEven byte = 0x02
	formatCompressedOdd  byte = 0x03
	formatUncompressed   byte = 0x04
	formatHybridEven     byte = 0x06
	formatHybridOdd      byte = 0x07
)

// PublicKey is a point on secp256k1 with the encoding it renders in and an
// optional network.
type PublicKey struct {
	point      secp256k1.PublicKey
	compressed bool
	net        *network.Params
}

// PublicKeyRecord is the plain record form of a public key. A nil Compressed
// means compressed.
type PublicKeyRecord struct {
	X          string `json:"x"`
	Y          string `json:"y"`
	Compressed *bool  `json:"compressed,omitempty"`
}

// PublicKeyFromDER parses a 33-byte compressed or 65-byte uncompressed point.
// Unless strict is set, the 65-byte hybrid forms with prefixes 0x06 and 0x07
// are accepted as uncompressed. net may be nil.
func PublicKeyFromDER(der []byte, strict bool, net *network.Params) (*PublicKey, error) {
	if len(der) == 0 {
		return nil, fmt.Errorf("%w: empty", ErrInvalidDER)
	}

	var compressed bool
	switch der[0] {
	case formatCompressedEven, formatCompressedOdd:
		compressed = true
	case formatUncompressed:
		if len(der) != 65 {
			return nil, fmt.Errorf("%w: uncompressed key must be 65 bytes, got %d", ErrInvalidDER, len(der))
		}
	case formatHybridEven, formatHybridOdd:
		if strict {
			return nil, fmt.Errorf("%w: hybrid prefix %#02x rejected in strict mode", ErrInvalidDER, der[0])
		}
	default:
		return nil, fmt.Errorf("%w: unknown prefix %#02x", ErrInvalidDER, der[0])
	}

	point, err := secp256k1.ParsePubKey(der)
	if err != nil {
		return nil, parseError(err)
	}
	return &PublicKey{point: *point, compressed: compressed, net: net}, nil
}

// PublicKeyFromHex parses the hex form of PublicKeyFromDER.
func PublicKeyFromHex(s string, strict bool, net *network.Params) (*PublicKey, error) {
	der, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}
	return PublicKeyFromDER(der, strict, net)
}

// PublicKeyFromPoint builds a key from hex affine coordinates.
func PublicKeyFromPoint(rec PublicKeyRecord, net *network.Params) (*PublicKey, error) {
	x, err := coordinate(rec.X)
	if err != nil {
		return nil, err
	}
	y, err := coordinate(rec.Y)
	if err != nil {
		return nil, err
	}

	der := make([]byte, 0, 65)
	der = append(der, formatUncompressed)
	der = append(der, x...)
	der = append(der, y...)

	point, err := secp256k1.ParsePubKey(der)
	if err != nil {
		return nil, parseError(err)
	}

	compressed := rec.Compressed == nil || *rec.Compressed
	return &PublicKey{point: *point, compressed: compressed, net: net}, nil
}

// PublicKeyFromX recovers the point with x coordinate xHex and the given y
// parity. The key is marked compressed.
func PublicKeyFromX(odd bool, xHex string, net *network.Params) (*PublicKey, error) {
	x, err := coordinate(xHex)
	if err != nil {
		return nil, err
	}
	prefix := formatCompressedEven
	if odd {
		prefix = formatCompressedOdd
	}
	return PublicKeyFromDER(append([]byte{prefix}, x...), true, net)
}

// PublicKeyFromPrivateKey returns the public key of priv, which carries the
// private key's compression flag and network.
func PublicKeyFromPrivateKey(priv *PrivateKey) *PublicKey {
	return priv.PublicKey()
}

// coordinate parses a hex coordinate into 32 big-endian bytes.
func coordinate(s string) ([]byte, error) {
	v, err := bn.FromString(s, 16)
	if err != nil || v.IsNeg() {
		return nil, fmt.Errorf("%w: coordinate %q", ErrInvalidHex, s)
	}
	if len(v.Bytes(bn.BigEndian)) > 32 {
		return nil, fmt.Errorf("%w: coordinate exceeds 256 bits", ErrNotOnCurve)
	}
	return v.FixedBytes(32, bn.BigEndian), nil
}

// parseError maps secp256k1 parse failures onto this package's errors.
func parseError(err error) error {
	switch {
	case errors.Is(err, secp256k1.ErrPubKeyNotOnCurve),
		errors.Is(err, secp256k1.ErrPubKeyXTooBig),
		errors.Is(err, secp256k1.ErrPubKeyYTooBig):
		return fmt.Errorf("%w: %w", ErrNotOnCurve, err)
	default:
		return fmt.Errorf("%w: %w", ErrInvalidDER, err)
	}
}

// Bytes returns the 33-byte compressed or 65-byte uncompressed encoding,
// according to Compressed.
func (p *PublicKey) Bytes() []byte {
	if p.compressed {
		return p.point.SerializeCompressed()
	}
	return p.point.SerializeUncompressed()
}

// Compressed reports whether Bytes uses the compressed encoding.
func (p *PublicKey) Compressed() bool {
	return p.compressed
}

// Network returns the key's network, which may be nil.
func (p *PublicKey) Network() *network.Params {
	return p.net
}

// X returns the affine x coordinate as 64 hex characters.
func (p *PublicKey) X() string {
	return hex.EncodeToString(bn.FromBigInt(p.point.X()).FixedBytes(32, bn.BigEndian))
}

// Y returns the affine y coordinate as 64 hex characters.
func (p *PublicKey) Y() string {
	return hex.EncodeToString(bn.FromBigInt(p.point.Y()).FixedBytes(32, bn.BigEndian))
}

// ID returns RIPEMD-160(BLAKE-256(Bytes())), the payload of pay-to-pubkey-hash
// addresses.
func (p *PublicKey) ID() []byte {
	return hashes.Blake256Ripemd160(p.Bytes())
}

// Equal reports whether p and other are the same point.
func (p *PublicKey) Equal(other *PublicKey) bool {
	return other != nil && p.point.IsEqual(&other.point)
}

// Record returns the plain record form.
func (p *PublicKey) Record() PublicKeyRecord {
	compressed := p.compressed
	return PublicKeyRecord{X: p.X(), Y: p.Y(), Compressed: &compressed}
}

// MarshalJSON encodes the record form.
func (p *PublicKey) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Record())
}

// String returns Bytes in hex.
func (p *PublicKey) String() string {
	return hex.EncodeToString(p.Bytes())
}

// ECPublicKey returns a copy of the point as a Decred secp256k1 public key.
func (p *PublicKey) ECPublicKey() *secp256k1.PublicKey {
	point := p.point
	return &point
}

// ToSDK returns the key as a go-sdk public key.
func (p *PublicKey) ToSDK() (*ec.PublicKey, error) {
	return ec.PublicKeyFromBytes(p.Bytes())
}
