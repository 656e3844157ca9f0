// ABOUTME: Product entity shared by operating systems and platforms
// ABOUTME: Carries vendor/version metadata, support dates and typed relationships

package product

import (
	"time"

	"github.com/nainya/osinfodb/pkg/entity"
)

// Parameter keys common to all products
const (
	ParamName        = "name"
	ParamShortID     = "short-id"
	ParamVendor      = "vendor"
	ParamVersion     = "version"
	ParamCodename    = "codename"
	ParamLogo        = "logo"
	ParamReleaseDate = "release-date"
	ParamEOLDate     = "eol-date"
)

// Ref is anything that is, or embeds, a *Product. Relationship edges hold
// Refs so that specialised types (Os, Platform) come back out unchanged.
type Ref interface {
	entity.Item
	AsProduct() *Product
}

type edge struct {
	kind   Relationship
	target Ref
}

// Product is an entity with relationship edges to other products
type Product struct {
	*entity.Entity
	edges []edge
}

// New creates a product with the given id
func New(id string) *Product {
	return &Product{Entity: entity.New(id)}
}

// AsProduct returns p itself; embedding types inherit it and so satisfy Ref
func (p *Product) AsProduct() *Product {
	return p
}

// Name returns the human readable name
func (p *Product) Name() string { return p.GetParamValue(ParamName) }

// ShortID returns the primary short id
func (p *Product) ShortID() string { return p.GetParamValue(ParamShortID) }

// ShortIDList returns every short id, primary first
func (p *Product) ShortIDList() []string { return p.GetParamList(ParamShortID) }

// Vendor returns the vendor name
func (p *Product) Vendor() string { return p.GetParamValue(ParamVendor) }

// Version returns the version string
func (p *Product) Version() string { return p.GetParamValue(ParamVersion) }

// Codename returns the release codename
func (p *Product) Codename() string { return p.GetParamValue(ParamCodename) }

// Logo returns the logo URI
func (p *Product) Logo() string { return p.GetParamValue(ParamLogo) }

// ReleaseDate returns the release date, if recorded
func (p *Product) ReleaseDate() (time.Time, bool) {
	return p.GetParamDate(ParamReleaseDate)
}

// EOLDate returns the end-of-life date, if recorded
func (p *Product) EOLDate() (time.Time, bool) {
	return p.GetParamDate(ParamEOLDate)
}

// SupportedOn reports whether date falls inside [release, eol]. A missing
// bound does not restrict.
func (p *Product) SupportedOn(date time.Time) bool {
	if rel, ok := p.ReleaseDate(); ok && rel.After(date) {
		return false
	}
	if eol, ok := p.EOLDate(); ok && eol.Before(date) {
		return false
	}
	return true
}
