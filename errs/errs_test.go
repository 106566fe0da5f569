package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMatchesKind(t *testing.T) {
	sentinel := New(ErrRange, "pkg: value too large")

	assert.ErrorIs(t, sentinel, ErrRange)
	assert.NotErrorIs(t, sentinel, ErrEncoding)
	assert.Equal(t, "pkg: value too large", sentinel.Error())
}

func TestWrappedErrorMatchesSentinelAndKind(t *testing.T) {
	sentinel := New(ErrEncoding, "pkg: bad checksum")
	wrapped := fmt.Errorf("%w: got 0x00", sentinel)

	assert.ErrorIs(t, wrapped, sentinel)
	assert.ErrorIs(t, wrapped, ErrEncoding)
	assert.Equal(t, "pkg: bad checksum: got 0x00", wrapped.Error())
}

func TestErrorsAsKind(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", New(ErrCurve, "pkg: off curve"))

	var kind Kind
	assert.True(t, errors.As(wrapped, &kind))
	assert.Equal(t, ErrCurve, kind)

	var e Error
	assert.True(t, errors.As(wrapped, &e))
	assert.Equal(t, "pkg: off curve", e.Description)
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{ErrArgument, "ArgumentError"},
		{ErrRange, "RangeError"},
		{ErrEncoding, "EncodingError"},
		{ErrCurve, "CurveError"},
		{ErrState, "StateError"},
		{ErrEntropy, "EntropyError"},
	}
	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.kind.Error())
		})
	}
}
