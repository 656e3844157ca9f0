// ABOUTME: Ordered, id-unique collection of entities
// ABOUTME: Supports filtered, union and intersection construction

package entity

// Matcher decides whether an entity belongs to a result set
type Matcher interface {
	Matches(item Item) bool
}

// List is an insertion-ordered collection where ids are unique
type List[T Item] struct {
	elements []T
	index    map[string]int
}

// NewList creates an empty list
func NewList[T Item]() *List[T] {
	return &List[T]{index: make(map[string]int)}
}

// Add appends item. An element already holding the same id is replaced in place.
func (l *List[T]) Add(item T) {
	if i, ok := l.index[item.ID()]; ok {
		l.elements[i] = item
		return
	}
	l.index[item.ID()] = len(l.elements)
	l.elements = append(l.elements, item)
}

// Len returns the number of elements
func (l *List[T]) Len() int {
	return len(l.elements)
}

// Nth returns the element at position i
func (l *List[T]) Nth(i int) T {
	return l.elements[i]
}

// Find looks an element up by id
func (l *List[T]) Find(id string) (T, bool) {
	i, ok := l.index[id]
	if !ok {
		var zero T
		return zero, false
	}
	return l.elements[i], true
}

// Contains reports whether an element with id is present
func (l *List[T]) Contains(id string) bool {
	_, ok := l.index[id]
	return ok
}

// Elements returns a copy of the elements in insertion order
func (l *List[T]) Elements() []T {
	out := make([]T, len(l.elements))
	copy(out, l.elements)
	return out
}

// AddAll adds every element of src
func (l *List[T]) AddAll(src *List[T]) {
	for _, e := range src.elements {
		l.Add(e)
	}
}

// AddFiltered adds the elements of src accepted by m. A nil matcher accepts all.
func (l *List[T]) AddFiltered(src *List[T], m Matcher) {
	for _, e := range src.elements {
		if m == nil || m.Matches(e) {
			l.Add(e)
		}
	}
}

// Filtered returns a new list with the elements accepted by m
func (l *List[T]) Filtered(m Matcher) *List[T] {
	out := NewList[T]()
	out.AddFiltered(l, m)
	return out
}

// Union returns the elements of a followed by those of b not already present
func Union[T Item](a, b *List[T]) *List[T] {
	out := NewList[T]()
	out.AddAll(a)
	for _, e := range b.elements {
		if !out.Contains(e.ID()) {
			out.Add(e)
		}
	}
	return out
}

// Intersection returns the elements of a whose id also appears in b
func Intersection[T Item](a, b *List[T]) *List[T] {
	out := NewList[T]()
	for _, e := range a.elements {
		if b.Contains(e.ID()) {
			out.Add(e)
		}
	}
	return out
}
