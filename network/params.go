package network

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"

	"github.com/decred/dcrd/chaincfg/v3"
)

// Params defines the prefixes a network uses for keys and addresses.
type Params struct {
	Name             string   `json:"name"`
	Aliases          []string `json:"aliases,omitempty"`
	PrivateKeyID     uint16   `json:"privatekey"`
	PubKeyAddrID     uint16   `json:"pubkey_addr_id"`
	PubKeyHashAddrID uint16   `json:"pubkeyhash_addr_id"`
	ScriptHashAddrID uint16   `json:"scripthash_addr_id"`
	DefaultPort      string   `json:"default_port,omitempty"`
}

// PrivateKeyPrefix returns the two-byte big-endian private key id.
func (p *Params) PrivateKeyPrefix() [2]byte {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], p.PrivateKeyID)
	return b
}

// String returns the network name.
func (p *Params) String() string {
	return p.Name
}

func (p *Params) validate() error {
	if p == nil || p.Name == "" {
		return fmt.Errorf("%w: network must have a name", ErrInvalidParams)
	}
	return nil
}

// FromChainParams converts Decred chain parameters.
func FromChainParams(cp *chaincfg.Params, aliases ...string) *Params {
	return &Params{
		Name:             cp.Name,
		Aliases:          aliases,
		PrivateKeyID:     binary.BigEndian.Uint16(cp.PrivateKeyID[:]),
		PubKeyAddrID:     binary.BigEndian.Uint16(cp.PubKeyAddrID[:]),
		PubKeyHashAddrID: binary.BigEndian.Uint16(cp.PubKeyHashAddrID[:]),
		ScriptHashAddrID: binary.BigEndian.Uint16(cp.ScriptHashAddrID[:]),
		DefaultPort:      cp.DefaultPort,
	}
}

// Decred networks.
var (
	MainNet = FromChainParams(chaincfg.MainNetParams(), "livenet", "dcrdlivenet")
	TestNet = FromChainParams(chaincfg.TestNet3Params(), "testnet", "dcrdtestnet")
	SimNet  = FromChainParams(chaincfg.SimNetParams())
	RegNet  = FromChainParams(chaincfg.RegNetParams())
)

// LoadCustomNetwork loads network parameters from a JSON file.
func LoadCustomNetwork(path string) (*Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("network: failed to read network config: %w", err)
	}

	var params Params
	if err := json.Unmarshal(data, &params); err != nil {
		return nil, fmt.Errorf("network: failed to parse network config: %w", err)
	}
	if err := params.validate(); err != nil {
		return nil, err
	}
	return &params, nil
}

// ByPrivateKeyID resolves id against this network alone, so a single Params
// can stand in for a Registry when exactly one network is acceptable.
func (p *Params) ByPrivateKeyID(id uint16) (*Params, error) {
	if p.PrivateKeyID != id {
		return nil, fmt.Errorf("%w: private key id %#04x is not %s", ErrNetworkMismatch, id, p.Name)
	}
	return p, nil
}
