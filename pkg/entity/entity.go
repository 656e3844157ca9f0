// ABOUTME: Identified attribute-bag object shared by every catalog type
// ABOUTME: Provides raw and typed parameter accessors over Params

package entity

import (
	"strconv"
	"strings"
	"time"
)

// Well-known parameter keys shared by several entity kinds
const (
	ParamID = "id"

	// DateLayout is the on-disk layout of every date-valued parameter
	DateLayout = "2006-01-02"
)

// Item is satisfied by every entity, including types that embed *Entity
type Item interface {
	ID() string
	GetParam(key string) (string, bool)
	GetParamList(key string) []string
	GetParamKeys() []string
}

// Entity is the base of every catalog object: an immutable id plus parameters
type Entity struct {
	id     string
	params *Params
}

// New creates an entity. The id must be non-empty; URI form is recommended.
func New(id string) *Entity {
	if id == "" {
		panic("entity: empty id")
	}
	return &Entity{id: id, params: NewParams()}
}

// ID returns the entity identifier
func (e *Entity) ID() string {
	return e.id
}

// SetParam replaces all values of key with value
func (e *Entity) SetParam(key, value string) {
	e.params.Set(key, value)
}

// AddParam appends value to key
func (e *Entity) AddParam(key, value string) {
	e.params.Add(key, value)
}

// ClearParam removes key
func (e *Entity) ClearParam(key string) {
	e.params.Clear(key)
}

// GetParam returns the first value of key
func (e *Entity) GetParam(key string) (string, bool) {
	return e.params.First(key)
}

// GetParamValue returns the first value of key or "" when unset
func (e *Entity) GetParamValue(key string) string {
	v, _ := e.params.First(key)
	return v
}

// GetParamList returns all values of key, possibly empty
func (e *Entity) GetParamList(key string) []string {
	return e.params.List(key)
}

// GetParamKeys returns the keys currently populated
func (e *Entity) GetParamKeys() []string {
	return e.params.Keys()
}

// SetParamBool stores b as "true" or "false"
func (e *Entity) SetParamBool(key string, b bool) {
	e.params.Set(key, strconv.FormatBool(b))
}

// GetParamBool parses the first value of key as a boolean, falling back to def
// when the key is unset or unparsable. "yes"/"no" are accepted as well.
func (e *Entity) GetParamBool(key string, def bool) bool {
	v, ok := e.params.First(key)
	if !ok {
		return def
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "yes", "1":
		return true
	case "false", "no", "0":
		return false
	}
	return def
}

// SetParamInt64 stores n in decimal
func (e *Entity) SetParamInt64(key string, n int64) {
	e.params.Set(key, strconv.FormatInt(n, 10))
}

// GetParamInt64 parses the first value of key, falling back to def
func (e *Entity) GetParamInt64(key string, def int64) int64 {
	v, ok := e.params.First(key)
	if !ok {
		return def
	}
	n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil {
		return def
	}
	return n
}

// SetParamDate stores t using DateLayout
func (e *Entity) SetParamDate(key string, t time.Time) {
	e.params.Set(key, t.Format(DateLayout))
}

// GetParamDate parses the first value of key as a DateLayout date
func (e *Entity) GetParamDate(key string) (time.Time, bool) {
	v, ok := e.params.First(key)
	if !ok {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, strings.TrimSpace(v))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// WithID returns a new entity carrying id and a deep copy of e's parameters.
// Identification uses it to rebind a candidate to the catalog id it matched.
func (e *Entity) WithID(id string) *Entity {
	out := New(id)
	out.params = e.params.Clone()
	return out
}
