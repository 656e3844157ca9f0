// ABOUTME: Ordered parameter multimap backing every catalog entity
// ABOUTME: Keys keep first-insertion order, values keep append order

package entity

// Params maps a key to an insertion-ordered sequence of string values.
// Duplicate values under one key are kept as-is.
type Params struct {
	keys   []string
	values map[string][]string
}

// NewParams creates an empty parameter set
func NewParams() *Params {
	return &Params{values: make(map[string][]string)}
}

// Set replaces any existing values for key with a single value
func (p *Params) Set(key, value string) {
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = []string{value}
}

// Add appends value to the sequence for key, creating the key if absent
func (p *Params) Add(key, value string) {
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = append(p.values[key], value)
}

// Clear removes key entirely. Clearing an absent key is a no-op.
func (p *Params) Clear(key string) {
	if _, ok := p.values[key]; !ok {
		return
	}
	delete(p.values, key)
	for i, k := range p.keys {
		if k == key {
			p.keys = append(p.keys[:i], p.keys[i+1:]...)
			break
		}
	}
}

// First returns the first value recorded for key
func (p *Params) First(key string) (string, bool) {
	vals := p.values[key]
	if len(vals) == 0 {
		return "", false
	}
	return vals[0], true
}

// List returns a copy of every value recorded for key, or nil
func (p *Params) List(key string) []string {
	vals := p.values[key]
	if len(vals) == 0 {
		return nil
	}
	out := make([]string, len(vals))
	copy(out, vals)
	return out
}

// Has reports whether key currently holds at least one value
func (p *Params) Has(key string) bool {
	return len(p.values[key]) > 0
}

// Keys returns the populated keys. Callers must not rely on the order.
func (p *Params) Keys() []string {
	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}

// Len returns the number of populated keys
func (p *Params) Len() int {
	return len(p.keys)
}

// Clone returns a deep copy
func (p *Params) Clone() *Params {
	c := NewParams()
	for _, k := range p.keys {
		c.keys = append(c.keys, k)
		c.values[k] = append([]string(nil), p.values[k]...)
	}
	return c
}
