// ABOUTME: Builds a catalog Db from YAML documents
// ABOUTME: Entities are created first, references resolved once every file is read

package loader

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/nainya/osinfodb/internal/location"
	"github.com/nainya/osinfodb/internal/logger"
	"github.com/nainya/osinfodb/pkg/catalog"
	"github.com/nainya/osinfodb/pkg/datamap"
	"github.com/nainya/osinfodb/pkg/device"
	"github.com/nainya/osinfodb/pkg/entity"
	"github.com/nainya/osinfodb/pkg/media"
	"github.com/nainya/osinfodb/pkg/product"
	"github.com/nainya/osinfodb/pkg/tree"
)

// Loader reads catalog documents from a filesystem
type Loader struct {
	fs  afero.Fs
	log *logger.Logger
}

// Option configures a Loader
type Option func(*Loader)

// WithFs reads documents from fs instead of the host filesystem
func WithFs(fs afero.Fs) Option {
	return func(l *Loader) { l.fs = fs }
}

// WithLogger sets the loader logger
func WithLogger(log *logger.Logger) Option {
	return func(l *Loader) { l.log = log }
}

// New creates a loader
func New(opts ...Option) *Loader {
	l := &Loader{}
	for _, opt := range opts {
		opt(l)
	}
	l.fs = location.OrOS(l.fs)
	l.log = logger.OrNop(l.log).CatalogLogger("load")
	return l
}

type source struct {
	path string
	doc  *Document
}

// Load reads every path (a YAML file, or a directory whose *.yaml and *.yml
// files are read in lexical order) into db
func (l *Loader) Load(ctx context.Context, db *catalog.Db, paths ...string) error {
	start := time.Now()

	var files []string
	for _, p := range paths {
		found, err := l.expand(p)
		if err != nil {
			return err
		}
		files = append(files, found...)
	}

	sources := make([]source, 0, len(files))
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		doc, err := l.readFile(f)
		if err != nil {
			return err
		}
		l.log.Debug("read catalog document").Str("path", f).Send()
		sources = append(sources, source{path: f, doc: doc})
	}

	if err := Build(db, docs(sources)...); err != nil {
		return err
	}
	db.PublishSizes()
	l.log.LogCatalogLoaded(db.Counts(), time.Since(start))
	return nil
}

func docs(sources []source) []*Document {
	out := make([]*Document, len(sources))
	for i, s := range sources {
		out[i] = s.doc
	}
	return out
}

func (l *Loader) expand(p string) ([]string, error) {
	path, err := location.Resolve(p)
	if err != nil {
		return nil, err
	}
	info, err := l.fs.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", p, err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	entries, err := afero.ReadDir(l.fs, path)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", p, err)
	}
	var out []string
	for _, e := range entries {
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if e.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		out = append(out, filepath.Join(path, e.Name()))
	}
	sort.Strings(out)
	return out, nil
}

func (l *Loader) readFile(path string) (*Document, error) {
	content, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var doc Document
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &doc, nil
}

// Build adds the entities declared by docs to db. Ids are checked for
// uniqueness per collection; references may point at entities declared in
// any of docs or already present in db. db is left untouched when Build
// returns an error.
func Build(db *catalog.Db, docs ...*Document) error {
	b := &builder{db: db, stage: catalog.New()}
	for _, d := range docs {
		if err := b.declare(d); err != nil {
			return err
		}
	}
	for _, d := range docs {
		if err := b.resolve(d); err != nil {
			return err
		}
	}
	b.commit()
	return nil
}

// builder collects new entities in stage; lookups see stage, then db
type builder struct {
	db    *catalog.Db
	stage *catalog.Db
}

func (b *builder) datamap(id string) *datamap.Datamap {
	if m := b.stage.GetDatamap(id); m != nil {
		return m
	}
	return b.db.GetDatamap(id)
}

func (b *builder) device(id string) *device.Device {
	if d := b.stage.GetDevice(id); d != nil {
		return d
	}
	return b.db.GetDevice(id)
}

func (b *builder) installScript(id string) *catalog.InstallScript {
	if s := b.stage.GetInstallScript(id); s != nil {
		return s
	}
	return b.db.GetInstallScript(id)
}

func (b *builder) platform(id string) *catalog.Platform {
	if p := b.stage.GetPlatform(id); p != nil {
		return p
	}
	return b.db.GetPlatform(id)
}

func (b *builder) os(id string) *catalog.Os {
	if o := b.stage.GetOs(id); o != nil {
		return o
	}
	return b.db.GetOs(id)
}

// commit moves every staged entity into db in declaration order
func (b *builder) commit() {
	for _, m := range b.stage.DatamapList().Elements() {
		b.db.AddDatamap(m)
	}
	for _, d := range b.stage.DeviceList().Elements() {
		b.db.AddDevice(d)
	}
	for _, s := range b.stage.InstallScriptList().Elements() {
		b.db.AddInstallScript(s)
	}
	for _, p := range b.stage.PlatformList().Elements() {
		b.db.AddPlatform(p)
	}
	for _, o := range b.stage.OsList().Elements() {
		b.db.AddOs(o)
	}
	for _, d := range b.stage.DeploymentList().Elements() {
		b.db.AddDeployment(d)
	}
}

func (b *builder) declare(d *Document) error {
	for _, def := range d.Datamaps {
		if err := checkNew(def.ID, "datamap", b.datamap(def.ID) != nil); err != nil {
			return err
		}
		m := datamap.New(def.ID)
		for _, e := range def.Entries {
			m.Insert(e.In, e.Out)
		}
		b.stage.AddDatamap(m)
	}

	for _, def := range d.Devices {
		if err := checkNew(def.ID, "device", b.device(def.ID) != nil); err != nil {
			return err
		}
		dev := device.New(def.ID)
		apply(dev.Entity, def.Params)
		b.stage.AddDevice(dev)
	}

	for _, def := range d.InstallScripts {
		if err := checkNew(def.ID, "install script", b.installScript(def.ID) != nil); err != nil {
			return err
		}
		s := catalog.NewInstallScript(def.ID)
		apply(s.Entity, def.Params)
		b.stage.AddInstallScript(s)
	}

	for _, def := range d.Platforms {
		if err := checkNew(def.ID, "platform", b.platform(def.ID) != nil); err != nil {
			return err
		}
		p := catalog.NewPlatform(def.ID)
		apply(p.Entity, def.Params)
		b.stage.AddPlatform(p)
	}

	for _, def := range d.Oses {
		if err := checkNew(def.ID, "os", b.os(def.ID) != nil); err != nil {
			return err
		}
		o, err := newOs(def)
		if err != nil {
			return err
		}
		b.stage.AddOs(o)
	}
	return nil
}

func newOs(def OsDef) (*catalog.Os, error) {
	o := catalog.NewOs(def.ID)
	apply(o.Entity, def.Params)

	for _, v := range def.Variants {
		if v.ID == "" {
			return nil, fmt.Errorf("%w: variant of os %s", ErrMissingID, def.ID)
		}
		variant := catalog.NewOsVariant(v.ID)
		apply(variant.Entity, v.Params)
		o.AddVariant(variant)
	}
	for _, m := range def.Media {
		if m.ID == "" {
			return nil, fmt.Errorf("%w: media of os %s", ErrMissingID, def.ID)
		}
		entry := media.New(m.ID, m.Arch)
		apply(entry.Entity, m.Params)
		o.AddMedia(entry)
	}
	for _, t := range def.Trees {
		if t.ID == "" {
			return nil, fmt.Errorf("%w: tree of os %s", ErrMissingID, def.ID)
		}
		entry := tree.New(t.ID, t.Arch)
		apply(entry.Entity, t.Params)
		o.AddTree(entry)
	}
	return o, nil
}

func (b *builder) resolve(d *Document) error {
	for _, def := range d.Platforms {
		p := b.stage.GetPlatform(def.ID)
		for _, r := range def.Relationships {
			kind, err := product.ParseRelationship(r.Kind)
			if err != nil {
				return fmt.Errorf("platform %s: %w", def.ID, err)
			}
			target := b.platform(r.ID)
			if target == nil {
				return unknown("platform", r.ID, def.ID)
			}
			p.AddRelated(kind, target)
		}
		if err := b.link(def.ID, def.Devices, p.AddDevice); err != nil {
			return err
		}
	}

	for _, def := range d.Oses {
		o := b.stage.GetOs(def.ID)
		for _, r := range def.Relationships {
			kind, err := product.ParseRelationship(r.Kind)
			if err != nil {
				return fmt.Errorf("os %s: %w", def.ID, err)
			}
			target := b.os(r.ID)
			if target == nil {
				return unknown("os", r.ID, def.ID)
			}
			o.AddRelated(kind, target)
		}
		if err := b.link(def.ID, def.Devices, o.AddDevice); err != nil {
			return err
		}
		for _, id := range def.InstallScripts {
			s := b.installScript(id)
			if s == nil {
				return unknown("install script", id, def.ID)
			}
			o.AddInstallScript(s)
		}
	}

	for _, def := range d.Deployments {
		exists := b.stage.GetDeployment(def.ID) != nil || b.db.GetDeployment(def.ID) != nil
		if err := checkNew(def.ID, "deployment", exists); err != nil {
			return err
		}
		o := b.os(def.Os)
		if o == nil {
			return unknown("os", def.Os, def.ID)
		}
		p := b.platform(def.Platform)
		if p == nil {
			return unknown("platform", def.Platform, def.ID)
		}
		dep := catalog.NewDeployment(def.ID, o, p)
		apply(dep.Entity, def.Params)
		if err := b.link(def.ID, def.Devices, dep.AddDevice); err != nil {
			return err
		}
		b.stage.AddDeployment(dep)
	}
	return nil
}

func (b *builder) link(owner string, defs []LinkDef, add func(*device.Device) *device.Link) error {
	for _, ld := range defs {
		dev := b.device(ld.Device)
		if dev == nil {
			return unknown("device", ld.Device, owner)
		}
		apply(add(dev).Entity, ld.Params)
	}
	return nil
}

func checkNew(id, collection string, exists bool) error {
	if id == "" {
		return fmt.Errorf("%w: %s", ErrMissingID, collection)
	}
	if exists {
		return fmt.Errorf("%w: %s %s", ErrDuplicateID, collection, id)
	}
	return nil
}

func unknown(collection, id, from string) error {
	return fmt.Errorf("%w: %s %q referenced by %s", ErrUnknownReference, collection, id, from)
}

func apply(e *entity.Entity, params Params) {
	for _, p := range params {
		for _, v := range p.Values {
			e.AddParam(p.Key, v)
		}
	}
}
