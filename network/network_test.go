package network

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitfsorg/libdcr-go/errs"
)

func TestDecredParams(t *testing.T) {
	tests := []struct {
		params *Params
		name   string
		keyID  uint16
		pkhID  uint16
		port   string
	}{
		{MainNet, "mainnet", 0x22de, 0x073f, "9108"},
		{TestNet, "testnet3", 0x230e, 0x0f21, "19108"},
		{SimNet, "simnet", 0x2307, 0x0e91, "18555"},
		{RegNet, "regnet", 0x22fe, 0x0e00, "18655"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.name, tc.params.Name)
			assert.Equal(t, tc.keyID, tc.params.PrivateKeyID)
			assert.Equal(t, tc.pkhID, tc.params.PubKeyHashAddrID)
			assert.Equal(t, tc.port, tc.params.DefaultPort)
		})
	}
}

func TestPrivateKeyPrefix(t *testing.T) {
	assert.Equal(t, [2]byte{0x22, 0xde}, MainNet.PrivateKeyPrefix())
	assert.Equal(t, "mainnet", MainNet.String())
}

func TestDefaultRegistryLookup(t *testing.T) {
	r := DefaultRegistry()

	for _, name := range []string{"mainnet", "livenet", "testnet3", "testnet", "simnet", "regnet"} {
		t.Run(name, func(t *testing.T) {
			p, err := r.ByName(name)
			require.NoError(t, err)
			assert.NotNil(t, p)
		})
	}

	p, err := r.ByName("testnet")
	require.NoError(t, err)
	assert.Same(t, TestNet, p)

	p, err = r.ByPrivateKeyID(0x22de)
	require.NoError(t, err)
	assert.Same(t, MainNet, p)

	assert.Equal(t, []string{"mainnet", "regnet", "simnet", "testnet3"}, r.Names())
}

func TestRegistryUnknown(t *testing.T) {
	r := DefaultRegistry()

	_, err := r.ByName("devnet")
	assert.ErrorIs(t, err, ErrUnknownNetwork)
	assert.ErrorIs(t, err, errs.ErrEncoding)

	_, err = r.ByPrivateKeyID(0xffff)
	assert.ErrorIs(t, err, ErrUnknownNetwork)
}

func TestRegistryRegister(t *testing.T) {
	r, err := NewRegistry()
	require.NoError(t, err)

	custom := &Params{Name: "privnet", Aliases: []string{"pn"}, PrivateKeyID: 0x1234}
	require.NoError(t, r.Register(custom))

	p, err := r.ByName("pn")
	require.NoError(t, err)
	assert.Same(t, custom, p)

	tests := []struct {
		name   string
		params *Params
		want   error
	}{
		{"nil", nil, ErrInvalidParams},
		{"empty name", &Params{PrivateKeyID: 1}, ErrInvalidParams},
		{"duplicate name", &Params{Name: "privnet", PrivateKeyID: 2}, ErrDuplicateNetwork},
		{"duplicate alias", &Params{Name: "other", Aliases: []string{"pn"}, PrivateKeyID: 3}, ErrDuplicateNetwork},
		{"duplicate key id", &Params{Name: "other", PrivateKeyID: 0x1234}, ErrDuplicateNetwork},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, r.Register(tc.params), tc.want)
		})
	}

	// Failed registrations leave no partial entries.
	_, err = r.ByName("other")
	assert.ErrorIs(t, err, ErrUnknownNetwork)
}

func TestNewRegistryDuplicate(t *testing.T) {
	_, err := NewRegistry(MainNet, MainNet)
	assert.ErrorIs(t, err, ErrDuplicateNetwork)
}

func TestLoadCustomNetwork(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "net.json")
	content := `{"name":"privnet","aliases":["pn"],"privatekey":4660,"pubkeyhash_addr_id":256,"default_port":"1234"}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	p, err := LoadCustomNetwork(path)
	require.NoError(t, err)
	assert.Equal(t, "privnet", p.Name)
	assert.Equal(t, []string{"pn"}, p.Aliases)
	assert.Equal(t, uint16(0x1234), p.PrivateKeyID)
	assert.Equal(t, uint16(256), p.PubKeyHashAddrID)
	assert.Equal(t, "1234", p.DefaultPort)
}

func TestLoadCustomNetworkErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadCustomNetwork(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0600))
	_, err = LoadCustomNetwork(bad)
	assert.Error(t, err)

	noName := filepath.Join(dir, "noname.json")
	require.NoError(t, os.WriteFile(noName, []byte(`{"privatekey":1}`), 0600))
	_, err = LoadCustomNetwork(noName)
	assert.ErrorIs(t, err, ErrInvalidParams)
}

func TestParamsResolvesOwnKeyID(t *testing.T) {
	p, err := MainNet.ByPrivateKeyID(0x22de)
	require.NoError(t, err)
	assert.Same(t, MainNet, p)

	_, err = MainNet.ByPrivateKeyID(TestNet.PrivateKeyID)
	assert.ErrorIs(t, err, ErrNetworkMismatch)
	assert.NotErrorIs(t, err, ErrUnknownNetwork)
}
