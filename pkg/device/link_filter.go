// ABOUTME: Filter specialisation for device links
// ABOUTME: Outer constraints apply to the link, a nested filter to its target

package device

import (
	"github.com/nainya/osinfodb/pkg/entity"
	"github.com/nainya/osinfodb/pkg/filter"
)

// LinkFilter matches device links
type LinkFilter struct {
	*filter.Filter
	target entity.Matcher
}

// NewLinkFilter creates a link filter whose target devices must satisfy target.
// A nil target accepts every device.
func NewLinkFilter(target entity.Matcher) *LinkFilter {
	return &LinkFilter{Filter: filter.New(), target: target}
}

// TargetFilter returns the nested device filter
func (f *LinkFilter) TargetFilter() entity.Matcher {
	return f.target
}

// Matches checks the link's own constraints, then its target device
func (f *LinkFilter) Matches(item entity.Item) bool {
	if !f.Filter.Matches(item) {
		return false
	}
	link, ok := item.(*Link)
	if !ok {
		return false
	}
	if f.target == nil {
		return true
	}
	return f.target.Matches(link.target)
}
