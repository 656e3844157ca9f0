// ABOUTME: Filter specialisation constraining products across relationship edges
// ABOUTME: Adds required related products per kind and a support-date window

package product

import (
	"time"

	"github.com/nainya/osinfodb/pkg/entity"
	"github.com/nainya/osinfodb/pkg/filter"
)

// Filter matches products by parameters, related products and support date
type Filter struct {
	*filter.Filter
	related     map[Relationship][]Ref
	supportDate *time.Time
}

// NewFilter creates an unconstrained product filter
func NewFilter() *Filter {
	return &Filter{
		Filter:  filter.New(),
		related: make(map[Relationship][]Ref),
	}
}

// AddProductConstraint requires candidates to have an edge of kind to p.
// Registering kind with a nil product requires candidates to have no edge of
// that kind.
func (f *Filter) AddProductConstraint(kind Relationship, p Ref) {
	list, ok := f.related[kind]
	if !ok {
		list = []Ref{}
	}
	if p != nil {
		list = append(list, p)
	}
	f.related[kind] = list
}

// ClearProductConstraint drops the constraint for kind
func (f *Filter) ClearProductConstraint(kind Relationship) {
	delete(f.related, kind)
}

// ClearProductConstraints drops every relationship constraint
func (f *Filter) ClearProductConstraints() {
	f.related = make(map[Relationship][]Ref)
}

// AddSupportDateConstraint requires candidates to be supported on date
func (f *Filter) AddSupportDateConstraint(date time.Time) {
	d := date
	f.supportDate = &d
}

// ClearSupportDateConstraint removes the support-date constraint
func (f *Filter) ClearSupportDateConstraint() {
	f.supportDate = nil
}

// Matches applies the base constraints, then relationships, then support date.
// Items that are not products fail any relationship or date constraint.
func (f *Filter) Matches(item entity.Item) bool {
	if !f.Filter.Matches(item) {
		return false
	}
	if len(f.related) == 0 && f.supportDate == nil {
		return true
	}
	ref, ok := item.(Ref)
	if !ok {
		return false
	}
	p := ref.AsProduct()
	for kind, required := range f.related {
		if !matchRelated(p.GetRelated(kind), required) {
			return false
		}
	}
	if f.supportDate != nil && !p.SupportedOn(*f.supportDate) {
		return false
	}
	return true
}

func matchRelated(have, required []Ref) bool {
	if len(required) == 0 {
		return len(have) == 0
	}
	if len(have) == 0 {
		return false
	}
	ids := make(map[string]bool, len(have))
	for _, h := range have {
		ids[h.ID()] = true
	}
	for _, r := range required {
		if !ids[r.ID()] {
			return false
		}
	}
	return true
}
