package media

import (
	"errors"

	"github.com/nainya/osinfodb/pkg/iso9660"
)

// ErrorKind classifies media probe failures
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindNoDescriptors
	KindNoPrimaryVolumeDescriptor
	KindInsufficientMetadata
	KindNoSupplementaryVolumeDescriptor
	KindNotBootable
	KindIO
)

// String returns the kind name
func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindNoDescriptors:
		return "no-descriptors"
	case KindNoPrimaryVolumeDescriptor:
		return "no-pvd"
	case KindInsufficientMetadata:
		return "insufficient-metadata"
	case KindNoSupplementaryVolumeDescriptor:
		return "no-svd"
	case KindNotBootable:
		return "not-bootable"
	}
	return "io"
}

// Kind classifies err. Anything that is not a descriptor format error,
// including cancellation, is KindIO.
func Kind(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, iso9660.ErrNoDescriptors):
		return KindNoDescriptors
	case errors.Is(err, iso9660.ErrNoPrimaryVolumeDescriptor):
		return KindNoPrimaryVolumeDescriptor
	case errors.Is(err, iso9660.ErrInsufficientMetadata):
		return KindInsufficientMetadata
	case errors.Is(err, iso9660.ErrNoSupplementaryVolumeDescriptor):
		return KindNoSupplementaryVolumeDescriptor
	case errors.Is(err, iso9660.ErrNotBootable):
		return KindNotBootable
	}
	return KindIO
}
