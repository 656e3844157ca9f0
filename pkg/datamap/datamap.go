// ABOUTME: String-to-string lookup table used to normalise detected tokens
// ABOUTME: Keeps a reverse index for canonical-to-raw lookups

package datamap

import "github.com/nainya/osinfodb/pkg/entity"

// Datamap translates raw tokens (e.g. language codes on install media) into
// canonical values
type Datamap struct {
	*entity.Entity
	forward map[string]string
	reverse map[string]string
	order   []string
}

// New creates an empty datamap
func New(id string) *Datamap {
	return &Datamap{
		Entity:  entity.New(id),
		forward: make(map[string]string),
		reverse: make(map[string]string),
	}
}

// Insert records inval -> outval. The first raw value recorded for an outval
// wins the reverse mapping.
func (m *Datamap) Insert(inval, outval string) {
	if _, ok := m.forward[inval]; !ok {
		m.order = append(m.order, inval)
	}
	m.forward[inval] = outval
	if _, ok := m.reverse[outval]; !ok {
		m.reverse[outval] = inval
	}
}

// Lookup returns the canonical value for inval, or inval unchanged
func (m *Datamap) Lookup(inval string) string {
	if out, ok := m.forward[inval]; ok {
		return out
	}
	return inval
}

// ReverseLookup returns the raw value for outval, or outval unchanged
func (m *Datamap) ReverseLookup(outval string) string {
	if in, ok := m.reverse[outval]; ok {
		return in
	}
	return outval
}

// Len returns the number of mappings
func (m *Datamap) Len() int {
	return len(m.order)
}

// Keys returns the raw values in insertion order
func (m *Datamap) Keys() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}
