package network

import (
	"fmt"
	"sort"
	"sync"
)

// Registry resolves network names, aliases and private key ids to Params.
// It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	byName  map[string]*Params
	byKeyID map[uint16]*Params
}

// NewRegistry returns a registry holding the given networks.
func NewRegistry(params ...*Params) (*Registry, error) {
	r := &Registry{
		byName:  make(map[string]*Params),
		byKeyID: make(map[uint16]*Params),
	}
	for _, p := range params {
		if err := r.Register(p); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// DefaultRegistry returns a new registry holding the Decred networks.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(MainNet, TestNet, SimNet, RegNet)
	if err != nil {
		panic(err)
	}
	return r
}

// Register adds p. Names, aliases and private key ids must be unique.
func (r *Registry) Register(p *Params) error {
	if err := p.validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	names := append([]string{p.Name}, p.Aliases...)
	for _, name := range names {
		if _, ok := r.byName[name]; ok {
			return fmt.Errorf("%w: name %q", ErrDuplicateNetwork, name)
		}
	}
	if _, ok := r.byKeyID[p.PrivateKeyID]; ok {
		return fmt.Errorf("%w: private key id %#04x", ErrDuplicateNetwork, p.PrivateKeyID)
	}

	for _, name := range names {
		r.byName[name] = p
	}
	r.byKeyID[p.PrivateKeyID] = p
	return nil
}

// ByName returns the network registered under name or one of its aliases.
func (r *Registry) ByName(name string) (*Params, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if p, ok := r.byName[name]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownNetwork, name)
}

// ByPrivateKeyID returns the network whose private key prefix is id.
func (r *Registry) ByPrivateKeyID(id uint16) (*Params, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if p, ok := r.byKeyID[id]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("%w: private key id %#04x", ErrUnknownNetwork, id)
}

// Names returns the canonical names of all registered networks, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.byKeyID))
	for _, p := range r.byKeyID {
		names = append(names, p.Name)
	}
	sort.Strings(names)
	return names
}
