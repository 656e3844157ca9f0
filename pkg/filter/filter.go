// ABOUTME: Constraint-based entity filter
// ABOUTME: Conjunctive matching over keys and over values per key

package filter

import "github.com/nainya/osinfodb/pkg/entity"

// Matcher is implemented by Filter and every specialised filter
type Matcher = entity.Matcher

// Filter holds key -> required values constraints
type Filter struct {
	constraints *entity.Params
}

// New creates a filter with no constraints; it matches every entity
func New() *Filter {
	return &Filter{constraints: entity.NewParams()}
}

// AddConstraint requires value to be among the entity's values for key.
// Several values under one key must all be present.
func (f *Filter) AddConstraint(key, value string) {
	f.constraints.Add(key, value)
}

// ClearConstraint drops every constraint on key
func (f *Filter) ClearConstraint(key string) {
	f.constraints.Clear(key)
}

// ClearConstraints drops all constraints
func (f *Filter) ClearConstraints() {
	f.constraints = entity.NewParams()
}

// ConstraintKeys returns the constrained keys
func (f *Filter) ConstraintKeys() []string {
	return f.constraints.Keys()
}

// ConstraintValues returns the required values for key
func (f *Filter) ConstraintValues(key string) []string {
	return f.constraints.List(key)
}

// Matches reports whether item satisfies every constraint
func (f *Filter) Matches(item entity.Item) bool {
	if f == nil {
		return true
	}
	return MatchConstraints(f.constraints, item)
}

// MatchConstraints is the shared matching step used by all filter kinds.
// For every constrained key, each required value must appear (exact string
// equality) in the item's value list for that key.
func MatchConstraints(constraints *entity.Params, item entity.Item) bool {
	for _, key := range constraints.Keys() {
		required := constraints.List(key)
		have := item.GetParamList(key)
		if len(required) > 0 && len(have) == 0 {
			return false
		}
		for _, want := range required {
			if !contains(have, want) {
				return false
			}
		}
	}
	return true
}

func contains(vals []string, want string) bool {
	for _, v := range vals {
		if v == want {
			return true
		}
	}
	return false
}
