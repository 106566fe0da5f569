package keys

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// DefaultEntropy is the randomness source used by GeneratePrivateKey.
var DefaultEntropy io.Reader = rand.Reader

// ReadEntropy fills a buffer of n bytes from r. Any failure, including a
// short read, is reported as ErrEntropy and nothing is substituted.
func ReadEntropy(r io.Reader, n int) ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: no source", ErrEntropy)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEntropy, err)
	}
	return buf, nil
}

// randomScalar draws 32-byte samples from r until one lies in [1, N-1].
func randomScalar(r io.Reader) (*secp256k1.ModNScalar, error) {
	for {
		buf, err := ReadEntropy(r, 32)
		if err != nil {
			return nil, err
		}
		var k secp256k1.ModNScalar
		overflow := k.SetByteSlice(buf)
		clear(buf)
		if overflow || k.IsZero() {
			continue
		}
		return &k, nil
	}
}
