package catalog

import (
	"github.com/nainya/osinfodb/pkg/device"
	"github.com/nainya/osinfodb/pkg/entity"
	"github.com/nainya/osinfodb/pkg/product"
)

// Platform is a virtualization platform or hypervisor product
type Platform struct {
	*product.Product
	deviceLinks *entity.List[*device.Link]
}

// NewPlatform creates an empty platform
func NewPlatform(id string) *Platform {
	return &Platform{
		Product:     product.New(id),
		deviceLinks: entity.NewList[*device.Link](),
	}
}

// AddDevice links dev to the platform
func (p *Platform) AddDevice(dev *device.Device) *device.Link {
	l := device.NewLink(dev)
	p.deviceLinks.Add(l)
	return l
}

// DeviceLinks returns the links accepted by f (nil accepts all)
func (p *Platform) DeviceLinks(f entity.Matcher) *entity.List[*device.Link] {
	return p.deviceLinks.Filtered(f)
}

// Devices returns the linked devices accepted by f
func (p *Platform) Devices(f entity.Matcher) *entity.List[*device.Device] {
	return device.Targets(p.deviceLinks).Filtered(f)
}
