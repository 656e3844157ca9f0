// ABOUTME: Directed, typed edges between products
// ABOUTME: Transitive traversal over selected relationship kinds

package product

import "fmt"

// Relationship is the kind of a directed product edge
type Relationship int

const (
	// DerivesFrom: A is built from B
	DerivesFrom Relationship = iota + 1
	// Clones: A is a rebuild of B
	Clones
	// Upgrades: A can replace an installation of B
	Upgrades
)

// String returns the catalog spelling of the relationship
func (r Relationship) String() string {
	switch r {
	case DerivesFrom:
		return "derives-from"
	case Clones:
		return "clones"
	case Upgrades:
		return "upgrades"
	}
	return fmt.Sprintf("relationship(%d)", int(r))
}

// ParseRelationship is the inverse of String
func ParseRelationship(s string) (Relationship, error) {
	switch s {
	case "derives-from":
		return DerivesFrom, nil
	case "clones":
		return Clones, nil
	case "upgrades":
		return Upgrades, nil
	}
	return 0, fmt.Errorf("unknown relationship %q", s)
}

// Flags selects relationship kinds for traversal
type Flags uint8

const (
	FlagDerivesFrom Flags = 1 << iota
	FlagUpgrades
	FlagClones
)

// traversal order when several flags are set
var flagOrder = []struct {
	flag Flags
	kind Relationship
}{
	{FlagDerivesFrom, DerivesFrom},
	{FlagUpgrades, Upgrades},
	{FlagClones, Clones},
}

// AddRelated appends an edge of kind from p to other. Duplicates are kept.
func (p *Product) AddRelated(kind Relationship, other Ref) {
	p.edges = append(p.edges, edge{kind: kind, target: other})
}

// GetRelated returns the targets of p's edges of kind, in insertion order
func (p *Product) GetRelated(kind Relationship) []Ref {
	var out []Ref
	for _, e := range p.edges {
		if e.kind == kind {
			out = append(out, e.target)
		}
	}
	return out
}

// ForeachRelated visits root first, then recurses pre-order into the
// products reachable through the kinds selected by flags. Within one node
// DerivesFrom edges come before Upgrades, then Clones. Each product id is
// visited at most once, so cyclic catalogs terminate.
func ForeachRelated(root Ref, flags Flags, visit func(Ref)) {
	seen := make(map[string]bool)
	foreachRelated(root, flags, visit, seen)
}

func foreachRelated(p Ref, flags Flags, visit func(Ref), seen map[string]bool) {
	if seen[p.ID()] {
		return
	}
	seen[p.ID()] = true
	visit(p)

	for _, fo := range flagOrder {
		if flags&fo.flag == 0 {
			continue
		}
		for _, next := range p.AsProduct().GetRelated(fo.kind) {
			foreachRelated(next, flags, visit, seen)
		}
	}
}

// Closure returns every product ForeachRelated visits, root first
func Closure(root Ref, flags Flags) []Ref {
	var out []Ref
	ForeachRelated(root, flags, func(r Ref) { out = append(out, r) })
	return out
}
