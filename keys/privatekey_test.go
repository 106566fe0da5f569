package keys

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitfsorg/libdcr-go/bn"
	"github.com/bitfsorg/libdcr-go/errs"
	"github.com/bitfsorg/libdcr-go/network"
)

const (
	curveOrderHex = "fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141"
	testScalarHex = "0c28fca386c7a227600b2fe50b7cae11ec86d3bf1fbe471be89827e19d72aa1d"
)

func mustKey(t *testing.T, scalarHex string, net *network.Params, compressed bool) *PrivateKey {
	t.Helper()
	s, err := bn.FromString(scalarHex, 16)
	require.NoError(t, err)
	k, err := PrivateKeyFromScalar(s, net, compressed)
	require.NoError(t, err)
	return k
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("device unavailable") }

func TestCurveOrder(t *testing.T) {
	assert.Equal(t, curveOrderHex, CurveOrder().Hex())
}

func TestPrivateKeyScalarRange(t *testing.T) {
	n := CurveOrder()
	tests := []struct {
		name    string
		scalar  bn.Int
		wantErr bool
	}{
		{"zero", bn.Zero, true},
		{"negative", bn.NewInt(-1), true},
		{"order", n, true},
		{"above order", n.Add(bn.One), true},
		{"one", bn.One, false},
		{"order minus one", n.Sub(bn.One), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			k, err := PrivateKeyFromScalar(tc.scalar, network.MainNet, true)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrScalarOutOfRange)
				assert.ErrorIs(t, err, errs.ErrRange)
				assert.Nil(t, k)
				return
			}
			require.NoError(t, err)
			assert.True(t, k.Scalar().Eq(tc.scalar))
		})
	}
}

func TestPrivateKeyRequiresNetwork(t *testing.T) {
	_, err := PrivateKeyFromScalar(bn.One, nil, true)
	assert.ErrorIs(t, err, ErrNoNetwork)

	_, err = GeneratePrivateKey(nil)
	assert.ErrorIs(t, err, ErrNoNetwork)
}

func TestGeneratePrivateKey(t *testing.T) {
	k, err := GeneratePrivateKey(network.TestNet)
	require.NoError(t, err)
	assert.True(t, k.Compressed())
	assert.Same(t, network.TestNet, k.Network())
	assert.True(t, k.Scalar().Gt(bn.Zero))
	assert.True(t, k.Scalar().Lt(CurveOrder()))
}

func TestGeneratePrivateKeyRejectsOutOfRangeSamples(t *testing.T) {
	order, err := hex.DecodeString(curveOrderHex)
	require.NoError(t, err)
	want, err := hex.DecodeString(testScalarHex)
	require.NoError(t, err)

	var stream []byte
	stream = append(stream, bytes.Repeat([]byte{0xff}, 32)...)
	stream = append(stream, order...)
	stream = append(stream, make([]byte, 32)...)
	stream = append(stream, want...)

	k, err := GeneratePrivateKeyFromRand(bytes.NewReader(stream), network.MainNet)
	require.NoError(t, err)
	assert.Equal(t, want, k.Bytes())
}

func TestGeneratePrivateKeyEntropyFailure(t *testing.T) {
	tests := []struct {
		name string
		r    func() *bytes.Reader
	}{
		{"short read", func() *bytes.Reader { return bytes.NewReader(make([]byte, 10)) }},
		{"exhausted after rejection", func() *bytes.Reader { return bytes.NewReader(bytes.Repeat([]byte{0xff}, 40)) }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := GeneratePrivateKeyFromRand(tc.r(), network.MainNet)
			assert.ErrorIs(t, err, ErrEntropy)
			assert.ErrorIs(t, err, errs.ErrEntropy)
		})
	}

	_, err := GeneratePrivateKeyFromRand(failingReader{}, network.MainNet)
	assert.ErrorIs(t, err, ErrEntropy)
	assert.Contains(t, err.Error(), "device unavailable")

	_, err = ReadEntropy(nil, 32)
	assert.ErrorIs(t, err, ErrEntropy)
}

func TestWIFRoundTrip(t *testing.T) {
	reg := network.DefaultRegistry()
	for _, net := range []*network.Params{network.MainNet, network.TestNet, network.SimNet, network.RegNet} {
		t.Run(net.Name, func(t *testing.T) {
			k, err := GeneratePrivateKey(net)
			require.NoError(t, err)

			got, err := PrivateKeyFromWIF(k.WIF(), reg)
			require.NoError(t, err)
			assert.True(t, got.Scalar().Eq(k.Scalar()))
			assert.Same(t, k.Network(), got.Network())
			assert.Equal(t, k.Compressed(), got.Compressed())
			assert.True(t, IsValidWIF(k.WIF(), reg))
		})
	}
}

func TestWIFDecodeAlwaysCompressed(t *testing.T) {
	k := mustKey(t, testScalarHex, network.MainNet, false)

	got, err := PrivateKeyFromWIF(k.WIF(), network.MainNet)
	require.NoError(t, err)
	assert.True(t, got.Compressed())
	assert.Equal(t, k.Bytes(), got.Bytes())
}

func TestWIFNetworkResolution(t *testing.T) {
	k := mustKey(t, testScalarHex, network.MainNet, true)

	_, err := PrivateKeyFromWIF(k.WIF(), network.TestNet)
	assert.ErrorIs(t, err, ErrNetworkMismatch)
	assert.NotErrorIs(t, err, ErrNoNetwork)
	assert.ErrorIs(t, err, errs.ErrEncoding)

	testnetKey := mustKey(t, testScalarHex, network.TestNet, true)
	_, err = PrivateKeyFromWIF(testnetKey.WIF(), network.MainNet)
	assert.ErrorIs(t, err, ErrNetworkMismatch)

	_, err = PrivateKeyFromNetworkBytes(testnetKey.NetworkBytes(), network.MainNet)
	assert.ErrorIs(t, err, ErrNetworkMismatch)

	_, err = PrivateKeyFromWIF(testnetKey.WIF(), network.DefaultRegistry())
	assert.NoError(t, err)

	empty, err := network.NewRegistry()
	require.NoError(t, err)
	_, err = PrivateKeyFromWIF(k.WIF(), empty)
	assert.ErrorIs(t, err, ErrNoNetwork)

	_, err = PrivateKeyFromWIF(k.WIF(), nil)
	assert.ErrorIs(t, err, ErrNoNetwork)

	assert.False(t, IsValidWIF("not a wif", network.MainNet))
}

func TestNetworkBytes(t *testing.T) {
	reg := network.DefaultRegistry()
	for _, compressed := range []bool{true, false} {
		k := mustKey(t, testScalarHex, network.MainNet, compressed)
		b := k.NetworkBytes()

		if compressed {
			require.Len(t, b, 36)
			assert.Equal(t, byte(0x01), b[35])
		} else {
			require.Len(t, b, 35)
		}
		assert.Equal(t, []byte{0x22, 0xde, 0x00}, b[:3])

		got, err := PrivateKeyFromNetworkBytes(b, reg)
		require.NoError(t, err)
		assert.Equal(t, compressed, got.Compressed())
		assert.Equal(t, k.Bytes(), got.Bytes())
		assert.Same(t, network.MainNet, got.Network())
	}
}

func TestNetworkBytesErrors(t *testing.T) {
	k := mustKey(t, testScalarHex, network.MainNet, true)
	good := k.NetworkBytes()

	badMarker := append([]byte(nil), good...)
	badMarker[2] = 1
	badSuffix := append([]byte(nil), good...)
	badSuffix[35] = 0x02

	tests := []struct {
		name     string
		in       []byte
		resolver NetworkResolver
		want     error
	}{
		{"short", good[:20], network.MainNet, ErrInvalidKeyBytes},
		{"bad marker", badMarker, network.MainNet, ErrInvalidKeyBytes},
		{"bad compression suffix", badSuffix, network.MainNet, ErrInvalidKeyBytes},
		{"network mismatch", good, network.TestNet, ErrNetworkMismatch},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := PrivateKeyFromNetworkBytes(tc.in, tc.resolver)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestPrivateKeyFromBytes(t *testing.T) {
	raw, err := hex.DecodeString(testScalarHex)
	require.NoError(t, err)

	k, err := PrivateKeyFromBytes(raw, network.MainNet)
	require.NoError(t, err)
	assert.False(t, k.Compressed())
	assert.Equal(t, raw, k.Bytes())
	assert.Equal(t, testScalarHex, k.String())

	_, err = PrivateKeyFromBytes(raw[:31], network.MainNet)
	assert.ErrorIs(t, err, ErrInvalidKeyBytes)

	_, err = PrivateKeyFromBytes(make([]byte, 32), network.MainNet)
	assert.ErrorIs(t, err, ErrScalarOutOfRange)
}

func TestPrivateKeyFromHex(t *testing.T) {
	k, err := PrivateKeyFromHex(testScalarHex, network.MainNet)
	require.NoError(t, err)
	assert.True(t, k.Compressed())
	assert.Equal(t, testScalarHex, k.String())

	short, err := PrivateKeyFromHex("01", network.MainNet)
	require.NoError(t, err)
	assert.Len(t, short.Bytes(), 32)

	for _, bad := range []string{"", "zz", "abc"} {
		_, err := PrivateKeyFromHex(bad, network.MainNet)
		assert.ErrorIs(t, err, ErrInvalidHex, bad)
	}

	_, err = PrivateKeyFromHex(curveOrderHex, network.MainNet)
	assert.ErrorIs(t, err, ErrScalarOutOfRange)
}

func TestPrivateKeyRecord(t *testing.T) {
	reg := network.DefaultRegistry()
	k := mustKey(t, testScalarHex, network.TestNet, false)

	rec := k.Record()
	assert.Equal(t, PrivateKeyRecord{Scalar: testScalarHex, Compressed: false, Network: "testnet3"}, rec)

	got, err := PrivateKeyFromRecord(rec, reg)
	require.NoError(t, err)
	assert.Equal(t, k.Bytes(), got.Bytes())
	assert.False(t, got.Compressed())
	assert.Same(t, network.TestNet, got.Network())

	data, err := json.Marshal(k)
	require.NoError(t, err)
	assert.JSONEq(t, `{"scalar":"`+testScalarHex+`","compressed":false,"network":"testnet3"}`, string(data))

	_, err = PrivateKeyFromRecord(PrivateKeyRecord{Scalar: testScalarHex, Network: "nope"}, reg)
	assert.ErrorIs(t, err, ErrNoNetwork)
	_, err = PrivateKeyFromRecord(PrivateKeyRecord{Scalar: "xyz", Network: "mainnet"}, reg)
	assert.ErrorIs(t, err, ErrInvalidHex)
	_, err = PrivateKeyFromRecord(rec, nil)
	assert.ErrorIs(t, err, ErrNoNetwork)
}

func TestPublicKeyIsCached(t *testing.T) {
	k := mustKey(t, testScalarHex, network.MainNet, true)

	var wg sync.WaitGroup
	results := make([]*PublicKey, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = k.PublicKey()
		}(i)
	}
	wg.Wait()

	for _, pub := range results {
		assert.Same(t, results[0], pub)
	}
	assert.Same(t, results[0], PublicKeyFromPrivateKey(k))
}

func TestPublicKeyDerivation(t *testing.T) {
	one := mustKey(t, "01", network.MainNet, true)
	assert.Equal(t, generatorCompressed, one.PublicKey().String())

	uncompressed := mustKey(t, "01", network.MainNet, false)
	assert.Equal(t, generatorUncompressed, uncompressed.PublicKey().String())
	assert.Same(t, network.MainNet, uncompressed.PublicKey().Network())
}

func TestPrivateKeyInterop(t *testing.T) {
	k := mustKey(t, testScalarHex, network.MainNet, true)

	sdk := k.ToSDK()
	require.NotNil(t, sdk)
	assert.Equal(t, k.PublicKey().Bytes(), sdk.PubKey().Compressed())

	ecKey := k.ECPrivateKey()
	assert.Equal(t, k.PublicKey().Bytes(), ecKey.PubKey().SerializeCompressed())

	// The returned key is a copy.
	ecKey.Zero()
	assert.Equal(t, testScalarHex, k.String())
}
