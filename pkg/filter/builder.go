// ABOUTME: Fluent construction of filters
// ABOUTME: Mirrors the query builder used by callers assembling constraints

package filter

import "strings"

// Builder provides a fluent interface for building filters
type Builder struct {
	filter *Filter
}

// NewBuilder creates a new filter builder
func NewBuilder() *Builder {
	return &Builder{filter: New()}
}

// Where adds a constraint
func (b *Builder) Where(key, value string) *Builder {
	b.filter.AddConstraint(key, value)
	return b
}

// WhereAll adds one constraint per value under key
func (b *Builder) WhereAll(key string, values ...string) *Builder {
	for _, v := range values {
		b.filter.AddConstraint(key, v)
	}
	return b
}

// Build returns the constructed filter
func (b *Builder) Build() *Filter {
	return b.filter
}

// Parse builds a filter from "key=value" terms. Terms without "=" are ignored
// and reported back so callers can surface them.
func Parse(terms []string) (*Filter, []string) {
	b := NewBuilder()
	var rejected []string
	for _, term := range terms {
		key, value, ok := strings.Cut(term, "=")
		if !ok || key == "" {
			rejected = append(rejected, term)
			continue
		}
		b.Where(key, value)
	}
	return b.Build(), rejected
}
