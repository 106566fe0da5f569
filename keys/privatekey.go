// Package keys models secp256k1 private and public keys bound to a network.
//
// Keys are immutable once constructed and safe for concurrent use. Each input
// form has its own factory; there is no process-wide default network, so every
// factory takes the network or a resolver for it explicitly.
package keys

import (
	"encoding/binary"
	"errors"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/bitfsorg/libdcr-go/bn"
	"github.com/bitfsorg/libdcr-go/network"
	"github.com/bitfsorg/libdcr-go/wif"
)

// curveOrder is N, the order of the secp256k1 group.
var curveOrder = bn.FromBigInt(secp256k1.Params().N)

// CurveOrder returns N, the order of the secp256k1 group.
func CurveOrder() bn.Int {
	return curveOrder
}

// NetworkResolver resolves the private key id carried by encoded keys.
// *network.Registry resolves every registered network and *network.Params
// resolves only itself.
type NetworkResolver interface {
	ByPrivateKeyID(id uint16) (*network.Params, error)
}

// PrivateKey is a secp256k1 scalar in [1, N-1] with its network and the
// compression flag used for its public key.
type PrivateKey struct {
	key        secp256k1.PrivateKey
	net        *network.Params
	compressed bool

	pubOnce sync.Once
	pub     *PublicKey
}

// PrivateKeyRecord is the plain record form of a private key.
type PrivateKeyRecord struct {
	Scalar     string `json:"scalar"`
	Compressed bool   `json:"compressed"`
	Network    string `json:"network"`
}

func newPrivateKey(scalar bn.Int, net *network.Params, compressed bool) (*PrivateKey, error) {
	if net == nil {
		return nil, ErrNoNetwork
	}
	if scalar.Sign() <= 0 || scalar.Gte(curveOrder) {
		return nil, ErrScalarOutOfRange
	}

	p := &PrivateKey{net: net, compressed: compressed}
	p.key.Key.SetByteSlice(scalar.FixedBytes(32, bn.BigEndian))
	return p, nil
}

// GeneratePrivateKey returns a new compressed key drawn from DefaultEntropy.
func GeneratePrivateKey(net *network.Params) (*PrivateKey, error) {
	return GeneratePrivateKeyFromRand(DefaultEntropy, net)
}

// GeneratePrivateKeyFromRand returns a new compressed key drawn from r.
// Samples outside [1, N-1] are discarded. A failing reader yields ErrEntropy.
func GeneratePrivateKeyFromRand(r io.Reader, net *network.Params) (*PrivateKey, error) {
	if net == nil {
		return nil, ErrNoNetwork
	}
	k, err := randomScalar(r)
	if err != nil {
		return nil, err
	}
	b := k.Bytes()
	return newPrivateKey(bn.FromBytes(b[:], bn.BigEndian), net, true)
}

// PrivateKeyFromScalar returns the key for scalar on net.
func PrivateKeyFromScalar(scalar bn.Int, net *network.Params, compressed bool) (*PrivateKey, error) {
	return newPrivateKey(scalar, net, compressed)
}

// PrivateKeyFromBytes interprets a 32-byte big-endian raw scalar. The key is
// marked uncompressed.
func PrivateKeyFromBytes(b []byte, net *network.Params) (*PrivateKey, error) {
	if len(b) != 32 {
		return nil, fmt.Errorf("%w: raw scalar must be 32 bytes, got %d", ErrInvalidKeyBytes, len(b))
	}
	return newPrivateKey(bn.FromBytes(b, bn.BigEndian), net, false)
}

// PrivateKeyFromNetworkBytes parses the network-tagged byte form: a two-byte
// big-endian private key id, a zero curve marker and the 32-byte scalar,
// followed by 0x01 for a compressed key.
func PrivateKeyFromNetworkBytes(b []byte, resolver NetworkResolver) (*PrivateKey, error) {
	var compressed bool
	switch {
	case len(b) == 36 && b[2] == wif.CurveSecp256k1 && b[35] == 0x01:
		compressed = true
	case len(b) == 35 && b[2] == wif.CurveSecp256k1:
		compressed = false
	default:
		return nil, fmt.Errorf("%w: want 35 (uncompressed) or 36 (compressed) bytes with curve marker 0", ErrInvalidKeyBytes)
	}

	net, err := resolve(resolver, binary.BigEndian.Uint16(b[:2]))
	if err != nil {
		return nil, err
	}
	return newPrivateKey(bn.FromBytes(b[3:35], bn.BigEndian), net, compressed)
}

// PrivateKeyFromHex interprets s as a hex raw scalar. The key is marked
// compressed.
func PrivateKeyFromHex(s string, net *network.Params) (*PrivateKey, error) {
	b, err := hex.DecodeString(s)
	if err != nil || len(b) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}
	return newPrivateKey(bn.FromBytes(b, bn.BigEndian), net, true)
}

// PrivateKeyFromWIF decodes a wallet import format string. The format carries
// no compression flag, so the key is always marked compressed.
func PrivateKeyFromWIF(s string, resolver NetworkResolver) (*PrivateKey, error) {
	k, err := wif.Decode(s)
	if err != nil {
		return nil, err
	}
	net, err := resolve(resolver, k.NetID)
	if err != nil {
		return nil, err
	}
	return newPrivateKey(bn.FromBytes(k.Scalar[:], bn.BigEndian), net, true)
}

// PrivateKeyFromRecord builds a key from its record form, resolving the
// network name through reg.
func PrivateKeyFromRecord(rec PrivateKeyRecord, reg *network.Registry) (*PrivateKey, error) {
	if reg == nil {
		return nil, ErrNoNetwork
	}
	net, err := reg.ByName(rec.Network)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoNetwork, err)
	}
	scalar, err := bn.FromString(rec.Scalar, 16)
	if err != nil {
		return nil, fmt.Errorf("%w: scalar %q", ErrInvalidHex, rec.Scalar)
	}
	return newPrivateKey(scalar, net, rec.Compressed)
}

// IsValidWIF reports whether s decodes to a valid key on a network known to
// resolver.
func IsValidWIF(s string, resolver NetworkResolver) bool {
	_, err := PrivateKeyFromWIF(s, resolver)
	return err == nil
}

func resolve(resolver NetworkResolver, id uint16) (*network.Params, error) {
	if resolver == nil {
		return nil, ErrNoNetwork
	}
	net, err := resolver.ByPrivateKeyID(id)
	if errors.Is(err, network.ErrNetworkMismatch) {
		return nil, fmt.Errorf("%w: %w", ErrNetworkMismatch, err)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoNetwork, err)
	}
	return net, nil
}

// Scalar returns the private scalar.
func (p *PrivateKey) Scalar() bn.Int {
	b := p.key.Key.Bytes()
	return bn.FromBytes(b[:], bn.BigEndian)
}

// Bytes returns the scalar as 32 big-endian bytes.
func (p *PrivateKey) Bytes() []byte {
	b := p.key.Key.Bytes()
	return b[:]
}

// Network returns the network the key belongs to.
func (p *PrivateKey) Network() *network.Params {
	return p.net
}

// Compressed reports whether the public key uses the compressed encoding.
func (p *PrivateKey) Compressed() bool {
	return p.compressed
}

// PublicKey returns the public key, deriving it on first use.
func (p *PrivateKey) PublicKey() *PublicKey {
	p.pubOnce.Do(func() {
		p.pub = &PublicKey{
			point:      *p.key.PubKey(),
			compressed: p.compressed,
			net:        p.net,
		}
	})
	return p.pub
}

// WIF returns the wallet import format encoding.
func (p *PrivateKey) WIF() string {
	return wif.Encode(p.net.PrivateKeyID, p.key.Key.Bytes())
}

// NetworkBytes returns the network-tagged byte form accepted by
// PrivateKeyFromNetworkBytes.
func (p *PrivateKey) NetworkBytes() []byte {
	out := make([]byte, 0, 36)
	out = binary.BigEndian.AppendUint16(out, p.net.PrivateKeyID)
	out = append(out, wif.CurveSecp256k1)
	out = append(out, p.Bytes()...)
	if p.compressed {
		out = append(out, 0x01)
	}
	return out
}

// Record returns the plain record form.
func (p *PrivateKey) Record() PrivateKeyRecord {
	return PrivateKeyRecord{
		Scalar:     hex.EncodeToString(p.Bytes()),
		Compressed: p.compressed,
		Network:    p.net.Name,
	}
}

// MarshalJSON encodes the record form.
func (p *PrivateKey) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Record())
}

// String returns the scalar in hex.
func (p *PrivateKey) String() string {
	return hex.EncodeToString(p.Bytes())
}

// ECPrivateKey returns a copy of the key as a Decred secp256k1 private key.
func (p *PrivateKey) ECPrivateKey() *secp256k1.PrivateKey {
	return secp256k1.NewPrivateKey(&p.key.Key)
}

// ToSDK returns the key as a go-sdk private key.
func (p *PrivateKey) ToSDK() *ec.PrivateKey {
	priv, _ := ec.PrivateKeyFromBytes(p.Bytes())
	return priv
}
