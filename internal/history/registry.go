package history

import "slices"

// Registry holds one ledger per panel, keyed by panel identity.
type Registry struct {
	ledgers  map[string]*Ledger
	resolver Resolver
	opts     []LedgerOption
}

// NewRegistry creates an empty registry. New ledgers share resolver and opts.
func NewRegistry(resolver Resolver, opts ...LedgerOption) *Registry {
	return &Registry{
		ledgers:  make(map[string]*Ledger),
		resolver: resolver,
		opts:     opts,
	}
}

// Get returns the ledger stored for id.
func (r *Registry) Get(id string) (*Ledger, bool) {
	l, ok := r.ledgers[id]
	return l, ok
}

// GetOrCreate returns the ledger for id, creating an empty one if needed.
// The second result reports whether the ledger was created.
func (r *Registry) GetOrCreate(id string) (*Ledger, bool) {
	if l, ok := r.ledgers[id]; ok {
		return l, false
	}
	l := NewLedger(r.resolver, r.opts...)
	r.ledgers[id] = l
	return l, true
}

// Put stores ledger under id, replacing any previous one.
func (r *Registry) Put(id string, ledger *Ledger) {
	if ledger == nil {
		delete(r.ledgers, id)
		return
	}
	r.ledgers[id] = ledger
}

// Remove forgets the ledger for id.
func (r *Registry) Remove(id string) {
	delete(r.ledgers, id)
}

// IDs returns the registered panel identities in sorted order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.ledgers))
	for id := range r.ledgers {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Len returns the number of registered ledgers.
func (r *Registry) Len() int {
	return len(r.ledgers)
}
