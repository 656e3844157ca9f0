// ABOUTME: Hardware device entities and the links that attach them to products
// ABOUTME: A link carries its own parameters (e.g. driver) plus a target device

package device

import "github.com/nainya/osinfodb/pkg/entity"

// Device parameter keys
const (
	ParamVendor    = "vendor"
	ParamVendorID  = "vendor-id"
	ParamProduct   = "product"
	ParamProductID = "product-id"
	ParamName      = "name"
	ParamClass     = "class"
	ParamBusType   = "bus-type"
	ParamSubsystem = "subsystem"
)

// ParamDriver is the link parameter naming the driver for the target device
const ParamDriver = "driver"

// Device describes one piece of hardware
type Device struct {
	*entity.Entity
}

// New creates a device
func New(id string) *Device {
	return &Device{Entity: entity.New(id)}
}

// Vendor returns the vendor name
func (d *Device) Vendor() string {
	return d.GetParamValue(ParamVendor)
}

// VendorID returns the bus vendor id
func (d *Device) VendorID() string {
	return d.GetParamValue(ParamVendorID)
}

// Product returns the product name
func (d *Device) Product() string {
	return d.GetParamValue(ParamProduct)
}

// ProductID returns the bus product id
func (d *Device) ProductID() string {
	return d.GetParamValue(ParamProductID)
}

// Name returns the human-readable device name
func (d *Device) Name() string {
	return d.GetParamValue(ParamName)
}

// Class returns the device class, such as net or audio
func (d *Device) Class() string {
	return d.GetParamValue(ParamClass)
}

// BusType returns the bus the device sits on, such as pci or usb
func (d *Device) BusType() string {
	return d.GetParamValue(ParamBusType)
}

// Subsystem returns the device subsystem
func (d *Device) Subsystem() string {
	return d.GetParamValue(ParamSubsystem)
}

// Link associates a target device with an owner (os, platform or deployment).
// Its id is the target device's id.
type Link struct {
	*entity.Entity
	target *Device
}

// NewLink creates a link to target
func NewLink(target *Device) *Link {
	return &Link{Entity: entity.New(target.ID()), target: target}
}

// Target returns the linked device
func (l *Link) Target() *Device {
	return l.target
}

// Driver returns the driver name recorded on the link
func (l *Link) Driver() string {
	return l.GetParamValue(ParamDriver)
}

// Targets returns the target devices of every link in links
func Targets(links *entity.List[*Link]) *entity.List[*Device] {
	out := entity.NewList[*Device]()
	for _, l := range links.Elements() {
		out.Add(l.target)
	}
	return out
}
