package bn

import "fmt"

// DefaultScriptNumLen is the maximum script number length accepted by
// FromScriptNum when the caller does not override it.
const DefaultScriptNumLen = 4

// ScriptNum returns the little-endian sign-magnitude encoding of x used by
// script arithmetic. Zero encodes as an empty slice. No length limit is
// applied, so results of arithmetic that overflow four bytes still encode.
func (x Int) ScriptNum() []byte {
	if x.IsZero() {
		return []byte{}
	}

	mag := x.Abs().Bytes(BigEndian)
	if mag[0]&0x80 != 0 {
		guard := byte(0x00)
		if x.IsNeg() {
			guard = 0x80
		}
		mag = append([]byte{guard}, mag...)
	} else if x.IsNeg() {
		mag[0] |= 0x80
	}
	return reversed(mag)
}

// FromScriptNum decodes a little-endian sign-magnitude script number. Input
// longer than maxSize bytes fails with ErrScriptNumOverflow; maxSize <= 0
// selects DefaultScriptNumLen. When requireMinimal is set, encodings that use
// more bytes than necessary fail with ErrScriptNumNotMinimal. The input is
// never modified.
func FromScriptNum(b []byte, requireMinimal bool, maxSize int) (Int, error) {
	if maxSize <= 0 {
		maxSize = DefaultScriptNumLen
	}
	if len(b) > maxSize {
		return Zero, fmt.Errorf("%w: %d bytes exceeds %d", ErrScriptNumOverflow, len(b), maxSize)
	}
	if len(b) == 0 {
		return Zero, nil
	}

	last := len(b) - 1
	if requireMinimal && b[last]&0x7f == 0 {
		// A zero top byte is only allowed as a sign guard for a magnitude
		// whose own top bit is set, such as 0xff00 for 255.
		if len(b) <= 1 || b[last-1]&0x80 == 0 {
			return Zero, fmt.Errorf("%w: %x", ErrScriptNumNotMinimal, b)
		}
	}

	mag := reversed(b)
	neg := mag[0]&0x80 != 0
	mag[0] &= 0x7f

	v := FromBytes(mag, BigEndian)
	if neg {
		return v.Neg(), nil
	}
	return v, nil
}

// ScriptNumInt64 decodes a script number that fits in an int64. It applies
// the same rules as FromScriptNum.
func ScriptNumInt64(b []byte, requireMinimal bool, maxSize int) (int64, error) {
	v, err := FromScriptNum(b, requireMinimal, maxSize)
	if err != nil {
		return 0, err
	}
	n, ok := v.Int64()
	if !ok {
		return 0, fmt.Errorf("%w: %s does not fit in 64 bits", ErrScriptNumOverflow, v)
	}
	return n, nil
}
