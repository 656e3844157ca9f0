// ABOUTME: In-memory catalog of operating systems, platforms, devices and deployments
// ABOUTME: Append-only collections built once at load time and queried thereafter

package catalog

import (
	"time"

	"github.com/nainya/osinfodb/internal/logger"
	"github.com/nainya/osinfodb/internal/metrics"
	"github.com/nainya/osinfodb/pkg/datamap"
	"github.com/nainya/osinfodb/pkg/device"
	"github.com/nainya/osinfodb/pkg/entity"
	"github.com/nainya/osinfodb/pkg/product"
)

// DefaultRegexCacheTTL is how long a compiled catalog pattern stays cached
const DefaultRegexCacheTTL = 10 * time.Minute

// Db owns six id-unique collections. It is not safe for concurrent
// mutation; concurrent identification against a fully built Db is safe.
type Db struct {
	oses           *entity.List[*Os]
	platforms      *entity.List[*Platform]
	devices        *entity.List[*device.Device]
	deployments    *entity.List[*Deployment]
	datamaps       *entity.List[*datamap.Datamap]
	installScripts *entity.List[*InstallScript]

	log     *logger.Logger
	metrics *metrics.Metrics
	regexes *regexCache
}

type dbOptions struct {
	log      *logger.Logger
	metrics  *metrics.Metrics
	cacheTTL time.Duration
}

// Option configures a Db
type Option func(*dbOptions)

// WithLogger sets the catalog logger
func WithLogger(l *logger.Logger) Option {
	return func(o *dbOptions) { o.log = l }
}

// WithMetrics records identification outcomes and collection sizes
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *dbOptions) { o.metrics = m }
}

// WithRegexCacheTTL sets how long compiled patterns are cached
func WithRegexCacheTTL(ttl time.Duration) Option {
	return func(o *dbOptions) { o.cacheTTL = ttl }
}

// New creates an empty catalog
func New(opts ...Option) *Db {
	o := dbOptions{cacheTTL: DefaultRegexCacheTTL}
	for _, opt := range opts {
		opt(&o)
	}
	log := logger.OrNop(o.log)
	return &Db{
		oses:           entity.NewList[*Os](),
		platforms:      entity.NewList[*Platform](),
		devices:        entity.NewList[*device.Device](),
		deployments:    entity.NewList[*Deployment](),
		datamaps:       entity.NewList[*datamap.Datamap](),
		installScripts: entity.NewList[*InstallScript](),
		log:            log,
		metrics:        o.metrics,
		regexes:        newRegexCache(o.cacheTTL, log, o.metrics),
	}
}

// Collection names used in logs and metrics
const (
	CollectionOs            = "os"
	CollectionPlatform      = "platform"
	CollectionDevice        = "device"
	CollectionDeployment    = "deployment"
	CollectionDatamap       = "datamap"
	CollectionInstallScript = "install-script"
)

// AddOs adds an os, replacing any with the same id
func (db *Db) AddOs(o *Os) {
	db.oses.Add(o)
}

// AddPlatform adds a platform, replacing any with the same id
func (db *Db) AddPlatform(p *Platform) {
	db.platforms.Add(p)
}

// AddDevice adds a device, replacing any with the same id
func (db *Db) AddDevice(d *device.Device) {
	db.devices.Add(d)
}

// AddDeployment adds a deployment, replacing any with the same id
func (db *Db) AddDeployment(d *Deployment) {
	db.deployments.Add(d)
}

// AddDatamap adds a datamap, replacing any with the same id
func (db *Db) AddDatamap(m *datamap.Datamap) {
	db.datamaps.Add(m)
}

// AddInstallScript adds an install script, replacing any with the same id
func (db *Db) AddInstallScript(s *InstallScript) {
	db.installScripts.Add(s)
}

// GetOs returns the os with id, or nil
func (db *Db) GetOs(id string) *Os {
	return find(db.oses, id)
}

// GetPlatform returns the platform with id, or nil
func (db *Db) GetPlatform(id string) *Platform {
	return find(db.platforms, id)
}

// GetDevice returns the device with id, or nil
func (db *Db) GetDevice(id string) *device.Device {
	return find(db.devices, id)
}

// GetDeployment returns the deployment with id, or nil
func (db *Db) GetDeployment(id string) *Deployment {
	return find(db.deployments, id)
}

// GetDatamap returns the datamap with id, or nil
func (db *Db) GetDatamap(id string) *datamap.Datamap {
	return find(db.datamaps, id)
}

// GetInstallScript returns the install script with id, or nil
func (db *Db) GetInstallScript(id string) *InstallScript {
	return find(db.installScripts, id)
}

func find[T entity.Item](l *entity.List[T], id string) T {
	v, _ := l.Find(id)
	return v
}

// OsList returns every os in insertion order
func (db *Db) OsList() *entity.List[*Os] {
	return db.oses
}

// PlatformList returns every platform in insertion order
func (db *Db) PlatformList() *entity.List[*Platform] {
	return db.platforms
}

// DeviceList returns every device in insertion order
func (db *Db) DeviceList() *entity.List[*device.Device] {
	return db.devices
}

// DeploymentList returns every deployment in insertion order
func (db *Db) DeploymentList() *entity.List[*Deployment] {
	return db.deployments
}

// DatamapList returns every datamap in insertion order
func (db *Db) DatamapList() *entity.List[*datamap.Datamap] {
	return db.datamaps
}

// InstallScriptList returns every install script in insertion order
func (db *Db) InstallScriptList() *entity.List[*InstallScript] {
	return db.installScripts
}

// Counts returns the size of every collection keyed by collection name
func (db *Db) Counts() map[string]int {
	return map[string]int{
		CollectionOs:            db.oses.Len(),
		CollectionPlatform:      db.platforms.Len(),
		CollectionDevice:        db.devices.Len(),
		CollectionDeployment:    db.deployments.Len(),
		CollectionDatamap:       db.datamaps.Len(),
		CollectionInstallScript: db.installScripts.Len(),
	}
}

// PublishSizes reports the collection sizes to the metrics registry
func (db *Db) PublishSizes() {
	for name, n := range db.Counts() {
		db.metrics.SetCatalogSize(name, n)
	}
}

// FindDeployment returns the deployment binding os to platform, or nil
func (db *Db) FindDeployment(os *Os, platform *Platform) *Deployment {
	for _, d := range db.deployments.Elements() {
		if d.os != nil && d.platform != nil &&
			d.os.ID() == os.ID() && d.platform.ID() == platform.ID() {
			return d
		}
	}
	return nil
}

// UniqueValuesForPropertyInOs returns every distinct value of key across
// the os collection, in first-seen order
func (db *Db) UniqueValuesForPropertyInOs(key string) []string {
	return uniqueValues(db.oses.Elements(), key)
}

// UniqueValuesForPropertyInPlatform is the platform counterpart
func (db *Db) UniqueValuesForPropertyInPlatform(key string) []string {
	return uniqueValues(db.platforms.Elements(), key)
}

// UniqueValuesForPropertyInDevice is the device counterpart
func (db *Db) UniqueValuesForPropertyInDevice(key string) []string {
	return uniqueValues(db.devices.Elements(), key)
}

// UniqueValuesForPropertyInDeployment is the deployment counterpart
func (db *Db) UniqueValuesForPropertyInDeployment(key string) []string {
	return uniqueValues(db.deployments.Elements(), key)
}

func uniqueValues[T entity.Item](items []T, key string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, it := range items {
		for _, v := range it.GetParamList(key) {
			if !seen[v] {
				seen[v] = true
				out = append(out, v)
			}
		}
	}
	return out
}

// UniqueValuesForOsRelationship returns every os that is the target of a
// kind edge from some os in the catalog
func (db *Db) UniqueValuesForOsRelationship(kind product.Relationship) *entity.List[*Os] {
	out := entity.NewList[*Os]()
	for _, o := range db.oses.Elements() {
		for _, r := range o.GetRelated(kind) {
			if target, ok := r.(*Os); ok && !out.Contains(target.ID()) {
				out.Add(target)
			}
		}
	}
	return out
}

// UniqueValuesForPlatformRelationship is the platform counterpart
func (db *Db) UniqueValuesForPlatformRelationship(kind product.Relationship) *entity.List[*Platform] {
	out := entity.NewList[*Platform]()
	for _, p := range db.platforms.Elements() {
		for _, r := range p.GetRelated(kind) {
			if target, ok := r.(*Platform); ok && !out.Contains(target.ID()) {
				out.Add(target)
			}
		}
	}
	return out
}
