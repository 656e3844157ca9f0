package catalog

import (
	"github.com/nainya/osinfodb/pkg/device"
	"github.com/nainya/osinfodb/pkg/entity"
)

// Deployment pairs an os with a platform and carries its own device links,
// which take priority over those of either side
type Deployment struct {
	*entity.Entity
	os          *Os
	platform    *Platform
	deviceLinks *entity.List[*device.Link]
}

// NewDeployment creates a deployment of os on platform
func NewDeployment(id string, os *Os, platform *Platform) *Deployment {
	return &Deployment{
		Entity:      entity.New(id),
		os:          os,
		platform:    platform,
		deviceLinks: entity.NewList[*device.Link](),
	}
}

// Os returns the os being deployed
func (d *Deployment) Os() *Os {
	return d.os
}

// Platform returns the platform the os is deployed on
func (d *Deployment) Platform() *Platform {
	return d.platform
}

// AddDevice links dev to the deployment
func (d *Deployment) AddDevice(dev *device.Device) *device.Link {
	l := device.NewLink(dev)
	d.deviceLinks.Add(l)
	return l
}

// DeviceLinks returns the deployment's own links accepted by f
func (d *Deployment) DeviceLinks(f entity.Matcher) *entity.List[*device.Link] {
	return d.deviceLinks.Filtered(f)
}

// PreferredDeviceLink returns the first link accepted by f, searching the
// deployment, then the os (with inherited links), then the platform.
// Returns nil when none matches.
func (d *Deployment) PreferredDeviceLink(f entity.Matcher) *device.Link {
	for _, links := range d.linkTiers() {
		if found := links.Filtered(f); found.Len() > 0 {
			return found.Nth(0)
		}
	}
	return nil
}

// PreferredDevice is PreferredDeviceLink with f applied to target devices
func (d *Deployment) PreferredDevice(f entity.Matcher) *device.Device {
	for _, links := range d.linkTiers() {
		if found := device.Targets(links).Filtered(f); found.Len() > 0 {
			return found.Nth(0)
		}
	}
	return nil
}

func (d *Deployment) linkTiers() []*entity.List[*device.Link] {
	tiers := []*entity.List[*device.Link]{d.deviceLinks}
	if d.os != nil {
		tiers = append(tiers, d.os.AllDeviceLinks(nil))
	}
	if d.platform != nil {
		tiers = append(tiers, d.platform.deviceLinks)
	}
	return tiers
}
