// Package bytestream reads and writes the fixed-width little-endian integers
// and compact-size variable-length integers used by the transaction wire
// format.
package bytestream

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/decred/dcrd/wire"
)

// pver is passed to the wire varint helpers, which ignore it.
const pver = 0

// Writer accumulates serialized bytes. The zero value is ready to use.
type Writer struct {
	buf bytes.Buffer
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Write appends b.
func (w *Writer) Write(b []byte) {
	w.buf.Write(b)
}

// WriteUint16LE appends v as two little-endian bytes.
func (w *Writer) WriteUint16LE(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	w.buf.Write(b[:])
}

// WriteUint64LE appends v as eight little-endian bytes.
func (w *Writer) WriteUint64LE(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	w.buf.Write(b[:])
}

// WriteVarInt appends v in compact-size form.
func (w *Writer) WriteVarInt(v uint64) {
	// Writes to a bytes.Buffer cannot fail.
	_ = wire.WriteVarInt(&w.buf, pver, v)
}

// WriteVarBytes appends the length of b as a varint followed by b.
func (w *Writer) WriteVarBytes(b []byte) {
	w.WriteVarInt(uint64(len(b)))
	w.buf.Write(b)
}

// Len returns the number of bytes written.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// Bytes returns a copy of the bytes written so far.
func (w *Writer) Bytes() []byte {
	return bytes.Clone(w.buf.Bytes())
}

// Reader consumes serialized bytes from an in-memory buffer.
type Reader struct {
	r *bytes.Reader
}

// NewReader returns a Reader over b. The slice is not copied.
func NewReader(b []byte) *Reader {
	return &Reader{r: bytes.NewReader(b)}
}

// ReadBytes returns the next n bytes.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 || n > r.r.Len() {
		return nil, fmt.Errorf("%w: need %d bytes, have %d", ErrShortRead, n, r.r.Len())
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r.r, b); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrShortRead, err)
	}
	return b, nil
}

// ReadUint16LE reads two little-endian bytes.
func (r *Reader) ReadUint16LE() (uint16, error) {
	b, err := r.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// ReadUint64LE reads eight little-endian bytes.
func (r *Reader) ReadUint64LE() (uint64, error) {
	b, err := r.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// ReadVarInt reads a compact-size integer. Non-canonical encodings are
// rejected.
func (r *Reader) ReadVarInt() (uint64, error) {
	if r.r.Len() == 0 {
		return 0, fmt.Errorf("%w: missing varint", ErrShortRead)
	}
	v, err := wire.ReadVarInt(r.r, pver)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return 0, fmt.Errorf("%w: truncated varint", ErrShortRead)
		}
		return 0, fmt.Errorf("%w: %w", ErrInvalidVarInt, err)
	}
	return v, nil
}

// ReadVarBytes reads a varint length followed by that many bytes.
func (r *Reader) ReadVarBytes() ([]byte, error) {
	n, err := r.ReadVarInt()
	if err != nil {
		return nil, err
	}
	if n > uint64(r.r.Len()) {
		return nil, fmt.Errorf("%w: length %d exceeds remaining %d", ErrShortRead, n, r.r.Len())
	}
	return r.ReadBytes(int(n))
}

// Len returns the number of unread bytes.
func (r *Reader) Len() int {
	return r.r.Len()
}

// Finished reports whether every byte has been consumed.
func (r *Reader) Finished() bool {
	return r.r.Len() == 0
}
