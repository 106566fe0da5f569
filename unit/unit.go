// Package unit converts amounts between DCR denominations and fiat values.
package unit

import (
	"fmt"
	"math"
	"strconv"

	"github.com/bitfsorg/libdcr-go/errs"
)

// Code names a denomination.
type Code string

// Denominations.
const (
	DCR      Code = "DCR"
	MilliDCR Code = "mDCR"
	MicroDCR Code = "uDCR"
	Atoms    Code = "atoms"

	// Bits and DBits are aliases of MicroDCR: all three are 100 atoms.
	Bits  Code = "bits"
	DBits Code = "dbits"
)

var (
	// ErrUnknownUnit indicates a denomination code that is not recognised.
	ErrUnknownUnit = errs.New(errs.ErrArgument, "unit: unknown unit code")

	// ErrInvalidRate indicates a fiat exchange rate that is not positive.
	ErrInvalidRate = errs.New(errs.ErrArgument, "unit: invalid rate")
)

type denomination struct {
	factor   float64
	decimals int
}

var denominations = map[Code]denomination{
	DCR:      {1e8, 8},
	MilliDCR: {1e5, 5},
	MicroDCR: {1e2, 2},
	Bits:     {1e2, 2},
	DBits:    {1e2, 2},
	Atoms:    {1, 0},
}

// Codes returns every known denomination code, largest first.
func Codes() []Code {
	return []Code{DCR, MilliDCR, MicroDCR, Bits, DBits, Atoms}
}

// ParseCode resolves a denomination code.
func ParseCode(s string) (Code, error) {
	c := Code(s)
	if _, ok := denominations[c]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownUnit, s)
	}
	return c, nil
}

// Unit is an amount held in atoms.
type Unit struct {
	atoms int64
}

// New converts amount expressed in code to a Unit, rounding to the nearest
// atom.
func New(amount float64, code Code) (Unit, error) {
	d, ok := denominations[code]
	if !ok {
		return Unit{}, fmt.Errorf("%w: %q", ErrUnknownUnit, code)
	}
	return Unit{atoms: int64(math.Round(amount * d.factor))}, nil
}

// FromAtoms returns a Unit of exactly atoms.
func FromAtoms(atoms int64) Unit {
	return Unit{atoms: atoms}
}

// FromFiat converts a fiat amount at rate (fiat per DCR).
func FromFiat(amount, rate float64) (Unit, error) {
	if rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return Unit{}, fmt.Errorf("%w: %v", ErrInvalidRate, rate)
	}
	return New(amount/rate, DCR)
}

// To returns the amount in code, rounded to that denomination's decimals.
func (u Unit) To(code Code) (float64, error) {
	d, ok := denominations[code]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, code)
	}
	return roundTo(float64(u.atoms)/d.factor, d.decimals), nil
}

func (u Unit) mustTo(code Code) float64 {
	v, _ := u.To(code)
	return v
}

// ToDCR returns the amount in DCR.
func (u Unit) ToDCR() float64 { return u.mustTo(DCR) }

// ToMilliDCR returns the amount in mDCR.
func (u Unit) ToMilliDCR() float64 { return u.mustTo(MilliDCR) }

// ToMicroDCR returns the amount in uDCR.
func (u Unit) ToMicroDCR() float64 { return u.mustTo(MicroDCR) }

// ToBits returns the amount in bits.
func (u Unit) ToBits() float64 { return u.mustTo(Bits) }

// ToAtoms returns the amount in atoms.
func (u Unit) ToAtoms() int64 { return u.atoms }

// AtRate returns the fiat value at rate, rounded to two decimals.
func (u Unit) AtRate(rate float64) (float64, error) {
	if rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidRate, rate)
	}
	return roundTo(u.ToDCR()*rate, 2), nil
}

// Format renders the amount in code without trailing zeros.
func (u Unit) Format(code Code) (string, error) {
	v, err := u.To(code)
	if err != nil {
		return "", err
	}
	return strconv.FormatFloat(v, 'f', -1, 64) + " " + string(code), nil
}

// String renders the amount in atoms.
func (u Unit) String() string {
	return strconv.FormatInt(u.atoms, 10) + " atoms"
}

func roundTo(v float64, decimals int) float64 {
	p := math.Pow10(decimals)
	return math.Round(v*p) / p
}
