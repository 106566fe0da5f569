// Package bn provides an immutable arbitrary-precision signed integer and the
// script number codec used by script arithmetic.
package bn

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"
)

// Endian selects the byte order of a byte sequence.
type Endian int

const (
	// BigEndian places the most significant byte first.
	BigEndian Endian = iota

	// LittleEndian places the least significant byte first.
	LittleEndian
)

// Int is an immutable arbitrary-precision signed integer. The zero value is 0.
// Every operation returns a new Int and never modifies its receiver.
type Int struct {
	v *big.Int
}

// Common values.
var (
	Zero = Int{}
	One  = NewInt(1)
)

// NewInt returns an Int holding n.
func NewInt(n int64) Int {
	return Int{v: big.NewInt(n)}
}

// NewUint returns an Int holding n.
func NewUint(n uint64) Int {
	return Int{v: new(big.Int).SetUint64(n)}
}

// FromBigInt returns an Int holding a copy of n. A nil n yields zero.
func FromBigInt(n *big.Int) Int {
	if n == nil {
		return Zero
	}
	return Int{v: new(big.Int).Set(n)}
}

// FromString parses s in the given base. Base 0 selects hexadecimal when s
// contains any of the letters a-f and decimal otherwise. Base 16 input may
// carry an optional 0x prefix. A leading minus sign is accepted in both bases.
func FromString(s string, base int) (Int, error) {
	if base == 0 {
		base = 10
		if strings.ContainsAny(strings.ToLower(s), "abcdef") {
			base = 16
		}
	}
	if base != 10 && base != 16 {
		return Zero, fmt.Errorf("%w: %d", ErrInvalidBase, base)
	}

	digits, neg := s, false
	if strings.HasPrefix(digits, "-") {
		digits, neg = digits[1:], true
	}
	if base == 16 {
		digits = strings.TrimPrefix(strings.TrimPrefix(digits, "0x"), "0X")
	}
	if digits == "" || strings.HasPrefix(digits, "+") || strings.HasPrefix(digits, "-") {
		return Zero, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}

	v, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return Zero, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}
	if neg {
		v.Neg(v)
	}
	return Int{v: v}, nil
}

// FromBytes interprets b as an unsigned magnitude in the given byte order.
func FromBytes(b []byte, endian Endian) Int {
	if endian == LittleEndian {
		b = reversed(b)
	}
	return Int{v: new(big.Int).SetBytes(b)}
}

func (x Int) big() *big.Int {
	if x.v == nil {
		return new(big.Int)
	}
	return x.v
}

// BigInt returns a copy of x as a *big.Int.
func (x Int) BigInt() *big.Int {
	return new(big.Int).Set(x.big())
}

// Cmp returns -1, 0 or +1 depending on whether x is less than, equal to or
// greater than y.
func (x Int) Cmp(y Int) int { return x.big().Cmp(y.big()) }

// Lt reports whether x < y.
func (x Int) Lt(y Int) bool { return x.Cmp(y) < 0 }

// Lte reports whether x <= y.
func (x Int) Lte(y Int) bool { return x.Cmp(y) <= 0 }

// Gt reports whether x > y.
func (x Int) Gt(y Int) bool { return x.Cmp(y) > 0 }

// Gte reports whether x >= y.
func (x Int) Gte(y Int) bool { return x.Cmp(y) >= 0 }

// Eq reports whether x == y.
func (x Int) Eq(y Int) bool { return x.Cmp(y) == 0 }

// Sign returns -1, 0 or +1 according to the sign of x.
func (x Int) Sign() int { return x.big().Sign() }

// IsZero reports whether x is 0.
func (x Int) IsZero() bool { return x.Sign() == 0 }

// IsNeg reports whether x is negative.
func (x Int) IsNeg() bool { return x.Sign() < 0 }

// Add returns x + y.
func (x Int) Add(y Int) Int { return Int{v: new(big.Int).Add(x.big(), y.big())} }

// Sub returns x - y.
func (x Int) Sub(y Int) Int { return Int{v: new(big.Int).Sub(x.big(), y.big())} }

// Neg returns -x.
func (x Int) Neg() Int { return Int{v: new(big.Int).Neg(x.big())} }

// Abs returns |x|.
func (x Int) Abs() Int { return Int{v: new(big.Int).Abs(x.big())} }

// Mod returns the Euclidean modulus x mod m. It panics if m is zero.
func (x Int) Mod(m Int) Int { return Int{v: new(big.Int).Mod(x.big(), m.big())} }

// Int64 returns x as an int64 and whether the conversion was exact.
func (x Int) Int64() (int64, bool) {
	v := x.big()
	return v.Int64(), v.IsInt64()
}

// Uint64 returns x as a uint64 and whether the conversion was exact.
func (x Int) Uint64() (uint64, bool) {
	v := x.big()
	return v.Uint64(), v.IsUint64()
}

// String returns the decimal form of x.
func (x Int) String() string {
	return x.big().String()
}

// Text renders x in base 10 or 16. When padding is positive the digits are
// left-padded with zeros to a multiple of padding characters. The sign, if
// any, is not counted.
func (x Int) Text(base, padding int) (string, error) {
	if base != 10 && base != 16 {
		return "", fmt.Errorf("%w: %d", ErrInvalidBase, base)
	}
	v := x.big()
	digits := new(big.Int).Abs(v).Text(base)
	if padding > 0 {
		if rem := len(digits) % padding; rem != 0 {
			digits = strings.Repeat("0", padding-rem) + digits
		}
	}
	if v.Sign() < 0 {
		return "-" + digits, nil
	}
	return digits, nil
}

// Hex returns the magnitude of x as an even-length lowercase hex string.
func (x Int) Hex() string {
	return hex.EncodeToString(x.Bytes(BigEndian))
}

// Bytes returns the magnitude of x at its natural width, which is at least
// one byte.
func (x Int) Bytes(endian Endian) []byte {
	b := x.big().Bytes()
	if len(b) == 0 {
		b = []byte{0}
	}
	if endian == LittleEndian {
		return reversed(b)
	}
	return b
}

// FixedBytes returns the magnitude of x in exactly size bytes. Shorter values
// are zero-padded on the most significant side. Longer values keep their
// size least significant bytes.
func (x Int) FixedBytes(size int, endian Endian) []byte {
	nat := x.Bytes(BigEndian)
	out := make([]byte, size)
	if len(nat) >= size {
		copy(out, nat[len(nat)-size:])
	} else {
		copy(out[size-len(nat):], nat)
	}
	if endian == LittleEndian {
		return reversed(out)
	}
	return out
}

// MarshalJSON encodes x as a decimal string.
func (x Int) MarshalJSON() ([]byte, error) {
	return json.Marshal(x.String())
}

// UnmarshalJSON decodes a decimal string or a JSON number.
func (x *Int) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		var num json.Number
		if err := json.Unmarshal(data, &num); err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidNumber, data)
		}
		s = num.String()
	}
	v, err := FromString(s, 10)
	if err != nil {
		return err
	}
	*x = v
	return nil
}

func reversed(b []byte) []byte {
	out := make([]byte, len(b))
	for i, c := range b {
		out[len(b)-1-i] = c
	}
	return out
}
