// ABOUTME: Operating system product with media, trees, variants and device links
// ABOUTME: Device queries follow derives-from and clones edges to inherited products

package catalog

import (
	"github.com/nainya/osinfodb/pkg/device"
	"github.com/nainya/osinfodb/pkg/entity"
	"github.com/nainya/osinfodb/pkg/media"
	"github.com/nainya/osinfodb/pkg/product"
	"github.com/nainya/osinfodb/pkg/tree"
)

// Os parameter keys
const (
	ParamFamily            = "family"
	ParamDistro            = "distro"
	ParamKernelURLArgument = "kernel-url-argument"
)

// Os is an operating system product
type Os struct {
	*product.Product
	deviceLinks    *entity.List[*device.Link]
	variants       *entity.List[*OsVariant]
	media          *entity.List[*media.Media]
	trees          *entity.List[*tree.Tree]
	installScripts *entity.List[*InstallScript]
}

// NewOs creates an empty operating system
func NewOs(id string) *Os {
	return &Os{
		Product:        product.New(id),
		deviceLinks:    entity.NewList[*device.Link](),
		variants:       entity.NewList[*OsVariant](),
		media:          entity.NewList[*media.Media](),
		trees:          entity.NewList[*tree.Tree](),
		installScripts: entity.NewList[*InstallScript](),
	}
}

// Family returns the os family, such as linux or winnt
func (o *Os) Family() string {
	return o.GetParamValue(ParamFamily)
}

// Distro returns the distribution name, such as fedora
func (o *Os) Distro() string {
	return o.GetParamValue(ParamDistro)
}

// KernelURLArgument returns the kernel argument that points the installer at a tree url
func (o *Os) KernelURLArgument() string {
	return o.GetParamValue(ParamKernelURLArgument)
}

// AddDevice links dev to the os and returns the link so callers can set
// link parameters such as the driver
func (o *Os) AddDevice(dev *device.Device) *device.Link {
	l := device.NewLink(dev)
	o.deviceLinks.Add(l)
	return l
}

// DeviceLinks returns the os's own links accepted by f (nil accepts all)
func (o *Os) DeviceLinks(f entity.Matcher) *entity.List[*device.Link] {
	return o.deviceLinks.Filtered(f)
}

// Devices returns the os's own linked devices accepted by f
func (o *Os) Devices(f entity.Matcher) *entity.List[*device.Device] {
	return device.Targets(o.deviceLinks).Filtered(f)
}

// AllDeviceLinks returns the links of this os and of every product it
// derives from or clones, nearest first
func (o *Os) AllDeviceLinks(f entity.Matcher) *entity.List[*device.Link] {
	out := entity.NewList[*device.Link]()
	product.ForeachRelated(o, product.FlagDerivesFrom|product.FlagClones, func(r product.Ref) {
		if related, ok := r.(*Os); ok {
			for _, l := range related.deviceLinks.Elements() {
				if !out.Contains(l.ID()) {
					out.Add(l)
				}
			}
		}
	})
	return out.Filtered(f)
}

// AllDevices returns the targets of AllDeviceLinks accepted by f
func (o *Os) AllDevices(f entity.Matcher) *entity.List[*device.Device] {
	return device.Targets(o.AllDeviceLinks(nil)).Filtered(f)
}

// AddVariant registers a variant
func (o *Os) AddVariant(v *OsVariant) {
	o.variants.Add(v)
}

// Variants returns the variants accepted by f
func (o *Os) Variants(f entity.Matcher) *entity.List[*OsVariant] {
	return o.variants.Filtered(f)
}

// AddMedia registers a catalog media entry and binds it to o
func (o *Os) AddMedia(m *media.Media) {
	m.SetOsID(o.ID())
	o.media.Add(m)
}

// MediaList returns the declared media entries in insertion order
func (o *Os) MediaList() *entity.List[*media.Media] {
	return o.media
}

// AddTree registers a catalog tree entry and binds it to o
func (o *Os) AddTree(t *tree.Tree) {
	t.SetOsID(o.ID())
	o.trees.Add(t)
}

// TreeList returns the declared tree entries in insertion order
func (o *Os) TreeList() *entity.List[*tree.Tree] {
	return o.trees
}

// AddInstallScript attaches a script from the catalog's script collection
func (o *Os) AddInstallScript(s *InstallScript) {
	o.installScripts.Add(s)
}

// InstallScripts returns the attached scripts accepted by f
func (o *Os) InstallScripts(f entity.Matcher) *entity.List[*InstallScript] {
	return o.installScripts.Filtered(f)
}

// OsVariant is a named flavour of an os (server, workstation, ...)
type OsVariant struct {
	*entity.Entity
}

// NewOsVariant creates a variant
func NewOsVariant(id string) *OsVariant {
	return &OsVariant{Entity: entity.New(id)}
}

// Name returns the variant's display name
func (v *OsVariant) Name() string { return v.GetParamValue(product.ParamName) }
