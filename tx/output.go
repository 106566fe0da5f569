// Package tx models transaction outputs: a value in atoms, a script version
// and the locking script, together with their wire encoding.
package tx

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/bsv-blockchain/go-sdk/script"
	"github.com/decred/dcrd/wire"

	"github.com/bitfsorg/libdcr-go/bn"
	"github.com/bitfsorg/libdcr-go/bytestream"
)

const (
	// MaxAtoms is the largest value an output may carry, 2^53-1.
	MaxAtoms = int64(1)<<53 - 1

	// DefaultScriptVersion is the script version of newly built outputs.
	DefaultScriptVersion = uint16(0)
)

var maxAtomsInt = bn.NewInt(MaxAtoms)

// Output is a transaction output. Only the atoms value may change after
// construction; every write through a setter is validated.
type Output struct {
	atoms    int64
	atomsInt bn.Int
	version  uint16
	script   []byte

	parseOnce sync.Once
	chunks    []*script.ScriptChunk
}

// OutputRecord is the plain-record form of an Output.
type OutputRecord struct {
	Atoms  int64  `json:"atoms"`
	Script string `json:"script"`
}

// NewOutput returns an output paying atoms to the given locking script.
func NewOutput(atoms int64, lockingScript []byte) (*Output, error) {
	o := &Output{version: DefaultScriptVersion, script: cloneBytes(lockingScript)}
	if err := o.SetAtoms(atoms); err != nil {
		return nil, err
	}
	return o, nil
}

// NewOutputFromInt is NewOutput with an arbitrary-precision value.
func NewOutputFromInt(atoms bn.Int, lockingScript []byte) (*Output, error) {
	o := &Output{version: DefaultScriptVersion, script: cloneBytes(lockingScript)}
	if err := o.SetAtomsInt(atoms); err != nil {
		return nil, err
	}
	return o, nil
}

// NewOutputFromASM returns an output whose locking script is assembled from
// its ASM text form.
func NewOutputFromASM(atoms int64, asm string) (*Output, error) {
	s, err := script.NewFromASM(asm)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScript, err)
	}
	return NewOutput(atoms, *s)
}

// OutputFromBytes decodes a single serialized output. Trailing bytes are an
// error.
func OutputFromBytes(b []byte) (*Output, error) {
	r := bytestream.NewReader(b)
	o, err := ReadOutput(r)
	if err != nil {
		return nil, err
	}
	if !r.Finished() {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrMalformedOutput, r.Len())
	}
	return o, nil
}

// ReadOutput decodes the next output from r.
func ReadOutput(r *bytestream.Reader) (*Output, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: reader", ErrNilParam)
	}
	atoms, err := r.ReadUint64LE()
	if err != nil {
		return nil, fmt.Errorf("%w: atoms: %w", ErrMalformedOutput, err)
	}
	version, err := r.ReadUint16LE()
	if err != nil {
		return nil, fmt.Errorf("%w: version: %w", ErrMalformedOutput, err)
	}
	lockingScript, err := r.ReadVarBytes()
	if err != nil {
		return nil, fmt.Errorf("%w: script: %w", ErrMalformedOutput, err)
	}

	o := &Output{version: version, script: lockingScript}
	if err := o.SetAtomsInt(bn.NewUint(atoms)); err != nil {
		return nil, err
	}
	return o, nil
}

// OutputFromRecord builds an output from its plain-record form. The script
// is read as hex, falling back to ASM text.
func OutputFromRecord(rec OutputRecord) (*Output, error) {
	if b, err := hex.DecodeString(rec.Script); err == nil {
		return NewOutput(rec.Atoms, b)
	}
	return NewOutputFromASM(rec.Atoms, rec.Script)
}

// OutputFromWire converts a wire.TxOut, keeping its script version.
func OutputFromWire(txOut *wire.TxOut) (*Output, error) {
	if txOut == nil {
		return nil, fmt.Errorf("%w: txOut", ErrNilParam)
	}
	o := &Output{version: txOut.Version, script: cloneBytes(txOut.PkScript)}
	if err := o.SetAtoms(txOut.Value); err != nil {
		return nil, err
	}
	return o, nil
}

// SetAtoms replaces the output value.
func (o *Output) SetAtoms(atoms int64) error {
	return o.SetAtomsInt(bn.NewInt(atoms))
}

// SetAtomsInt replaces the output value from an arbitrary-precision integer.
func (o *Output) SetAtomsInt(atoms bn.Int) error {
	if atoms.IsNeg() {
		return fmt.Errorf("%w: %s", ErrNegativeAtoms, atoms)
	}
	if atoms.Gt(maxAtomsInt) {
		return fmt.Errorf("%w: %s", ErrAtomsOverflow, atoms)
	}
	v, _ := atoms.Int64()
	o.atoms = v
	o.atomsInt = atoms
	return nil
}

// SetAtomsString replaces the output value from its decimal text form.
func (o *Output) SetAtomsString(s string) error {
	v, err := bn.FromString(s, 10)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidAtoms, s)
	}
	return o.SetAtomsInt(v)
}

// InvalidAtoms reports the first problem with the stored value, or nil. The
// ceiling is checked before mirror agreement, and both before the sign.
func (o *Output) InvalidAtoms() error {
	if o.atoms > MaxAtoms || o.atomsInt.Gt(maxAtomsInt) {
		return ErrAtomsOverflow
	}
	if v, ok := o.atomsInt.Int64(); !ok || v != o.atoms {
		return ErrAtomsMismatch
	}
	if o.atoms < 0 {
		return ErrNegativeAtoms
	}
	return nil
}

// Atoms returns the output value.
func (o *Output) Atoms() int64 {
	return o.atoms
}

// AtomsInt returns the output value as an arbitrary-precision integer.
func (o *Output) AtomsInt() bn.Int {
	return o.atomsInt
}

// Version returns the script version.
func (o *Output) Version() uint16 {
	return o.version
}

// Script returns a copy of the locking script bytes.
func (o *Output) Script() []byte {
	return cloneBytes(o.script)
}

// ScriptHex returns the locking script in hex.
func (o *Output) ScriptHex() string {
	return hex.EncodeToString(o.script)
}

// Chunks returns the parsed locking script, or nil if the bytes do not parse.
// Parsing happens once on first use.
func (o *Output) Chunks() []*script.ScriptChunk {
	o.parseOnce.Do(func() {
		chunks, err := script.NewFromBytes(o.script).Chunks()
		if err == nil {
			o.chunks = chunks
		}
	})
	return o.chunks
}

// HasValidScript reports whether the locking script parses.
func (o *Output) HasValidScript() bool {
	return len(o.script) == 0 || o.Chunks() != nil
}

// Encode appends the wire form of the output to w.
func (o *Output) Encode(w *bytestream.Writer) {
	w.WriteUint64LE(uint64(o.atoms))
	w.WriteUint16LE(o.version)
	w.WriteVarBytes(o.script)
}

// Bytes returns the wire form of the output.
func (o *Output) Bytes() []byte {
	var w bytestream.Writer
	o.Encode(&w)
	return w.Bytes()
}

// Record returns the plain-record form.
func (o *Output) Record() OutputRecord {
	return OutputRecord{Atoms: o.atoms, Script: o.ScriptHex()}
}

// MarshalJSON encodes the plain-record form.
func (o *Output) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.Record())
}

// UnmarshalJSON decodes the plain-record form into o.
func (o *Output) UnmarshalJSON(data []byte) error {
	var rec OutputRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	parsed, err := OutputFromRecord(rec)
	if err != nil {
		return err
	}
	o.atoms = parsed.atoms
	o.atomsInt = parsed.atomsInt
	o.version = parsed.version
	o.script = parsed.script
	o.parseOnce = sync.Once{}
	o.chunks = nil
	return nil
}

// ToWire converts the output to a wire.TxOut.
func (o *Output) ToWire() *wire.TxOut {
	return &wire.TxOut{
		Value:    o.atoms,
		Version:  o.version,
		PkScript: o.Script(),
	}
}

// String returns a short human-readable description.
func (o *Output) String() string {
	return fmt.Sprintf("<Output (%d atoms) %s>", o.atoms, o.ScriptHex())
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	return append([]byte{}, b...)
}
