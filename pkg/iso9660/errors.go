// Package iso9660 reads the volume descriptors of ISO9660 installation media
package iso9660

import "errors"

var (
	// ErrNoDescriptors indicates the stream ended inside the system area
	ErrNoDescriptors = errors.New("iso9660: no volume descriptors")

	// ErrNoPrimaryVolumeDescriptor indicates a truncated primary volume descriptor
	ErrNoPrimaryVolumeDescriptor = errors.New("iso9660: no primary volume descriptor")

	// ErrInsufficientMetadata indicates a primary descriptor without a volume id
	ErrInsufficientMetadata = errors.New("iso9660: insufficient metadata in primary volume descriptor")

	// ErrNoSupplementaryVolumeDescriptor indicates a truncated supplementary descriptor
	ErrNoSupplementaryVolumeDescriptor = errors.New("iso9660: no supplementary volume descriptor")

	// ErrNotBootable indicates the El Torito boot record tag is missing
	ErrNotBootable = errors.New("iso9660: install media is not bootable")
)
