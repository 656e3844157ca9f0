// ABOUTME: Tests for the ordered id-unique entity list
// ABOUTME: Covers replacement, filtering, union and intersection

package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type matchFunc func(Item) bool

func (f matchFunc) Matches(item Item) bool { return f(item) }

func ids[T Item](l *List[T]) []string {
	out := make([]string, 0, l.Len())
	for _, e := range l.Elements() {
		out = append(out, e.ID())
	}
	return out
}

func TestListAddReplacesSameID(t *testing.T) {
	l := NewList[*Entity]()
	a := New("a")
	b := New("b")
	a2 := New("a")
	a2.SetParam("name", "second")

	l.Add(a)
	l.Add(b)
	l.Add(a2)

	require.Equal(t, 2, l.Len())
	assert.Equal(t, []string{"a", "b"}, ids(l))
	got, ok := l.Find("a")
	require.True(t, ok)
	assert.Equal(t, "second", got.GetParamValue("name"))
	assert.Same(t, b, l.Nth(1))
}

func TestListFiltered(t *testing.T) {
	l := NewList[*Entity]()
	for _, id := range []string{"x1", "y1", "x2"} {
		l.Add(New(id))
	}

	onlyX := matchFunc(func(i Item) bool { return i.ID()[0] == 'x' })
	assert.Equal(t, []string{"x1", "x2"}, ids(l.Filtered(onlyX)))
	assert.Equal(t, []string{"x1", "y1", "x2"}, ids(l.Filtered(nil)))
}

func TestListUnionIntersection(t *testing.T) {
	a := NewList[*Entity]()
	b := NewList[*Entity]()
	for _, id := range []string{"1", "2", "3"} {
		a.Add(New(id))
	}
	for _, id := range []string{"3", "4", "2"} {
		b.Add(New(id))
	}

	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(Union(a, b)))
	assert.Equal(t, []string{"2", "3"}, ids(Intersection(a, b)))
}
