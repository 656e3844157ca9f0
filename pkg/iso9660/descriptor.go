package iso9660

import (
	"encoding/binary"
	"strings"
)

const (
	// SystemAreaSize is skipped before the first volume descriptor
	SystemAreaSize = 0x8000

	// DescriptorSize is the fixed size of every volume descriptor
	DescriptorSize = 2048

	// ElToritoTag marks a bootable image in the descriptor after the PVD
	ElToritoTag = "EL TORITO SPECIFICATION"
)

// Field layout of the primary volume descriptor
const (
	pvdSystemOffset      = 8
	pvdSystemLen         = 32
	pvdVolumeOffset      = 40
	pvdVolumeLen         = 32
	pvdSpaceSizeOffset   = 80 // both-endian uint32, little-endian half first
	pvdBlockSizeOffset   = 128
	pvdPublisherOffset   = 318
	pvdPublisherLen      = 128
	pvdApplicationOffset = 574
	pvdApplicationLen    = 128

	svdSystemOffset = 7
	svdSystemLen    = 32
)

// PrimaryVolumeDescriptor holds the identification fields of an ISO9660 PVD.
// Empty strings mean the field was absent (NUL or blank padded).
type PrimaryVolumeDescriptor struct {
	System           string
	Volume           string
	Publisher        string
	Application      string
	VolumeSpaceSize  uint32 // in logical blocks
	LogicalBlockSize uint16
}

// VolumeSize returns the image size in bytes
func (p *PrimaryVolumeDescriptor) VolumeSize() int64 {
	return int64(p.VolumeSpaceSize) * int64(p.LogicalBlockSize)
}

// Encode serializes the descriptor into a DescriptorSize buffer, space
// padding the text fields as mastering tools do
func (p *PrimaryVolumeDescriptor) Encode() []byte {
	buf := make([]byte, DescriptorSize)
	buf[0] = 1
	copy(buf[1:6], "CD001")
	buf[6] = 1

	putField(buf[pvdSystemOffset:pvdSystemOffset+pvdSystemLen], p.System)
	putField(buf[pvdVolumeOffset:pvdVolumeOffset+pvdVolumeLen], p.Volume)
	putField(buf[pvdPublisherOffset:pvdPublisherOffset+pvdPublisherLen], p.Publisher)
	putField(buf[pvdApplicationOffset:pvdApplicationOffset+pvdApplicationLen], p.Application)

	binary.LittleEndian.PutUint32(buf[pvdSpaceSizeOffset:], p.VolumeSpaceSize)
	binary.BigEndian.PutUint32(buf[pvdSpaceSizeOffset+4:], p.VolumeSpaceSize)
	binary.LittleEndian.PutUint16(buf[pvdBlockSizeOffset:], p.LogicalBlockSize)
	binary.BigEndian.PutUint16(buf[pvdBlockSizeOffset+2:], p.LogicalBlockSize)

	return buf
}

// DecodePrimary parses a primary volume descriptor
func DecodePrimary(data []byte) (*PrimaryVolumeDescriptor, error) {
	if len(data) < DescriptorSize {
		return nil, ErrNoPrimaryVolumeDescriptor
	}
	return &PrimaryVolumeDescriptor{
		System:           trimField(data[pvdSystemOffset : pvdSystemOffset+pvdSystemLen]),
		Volume:           trimField(data[pvdVolumeOffset : pvdVolumeOffset+pvdVolumeLen]),
		Publisher:        trimField(data[pvdPublisherOffset : pvdPublisherOffset+pvdPublisherLen]),
		Application:      trimField(data[pvdApplicationOffset : pvdApplicationOffset+pvdApplicationLen]),
		VolumeSpaceSize:  binary.LittleEndian.Uint32(data[pvdSpaceSizeOffset:]),
		LogicalBlockSize: binary.LittleEndian.Uint16(data[pvdBlockSizeOffset:]),
	}, nil
}

// SupplementaryVolumeDescriptor is the descriptor following the PVD. Only
// its system field is inspected, for the El Torito tag.
type SupplementaryVolumeDescriptor struct {
	System string
}

// Bootable reports whether the descriptor carries the El Torito tag
func (s *SupplementaryVolumeDescriptor) Bootable() bool {
	return strings.HasPrefix(s.System, ElToritoTag)
}

// Encode serializes the descriptor as an El Torito boot record when System
// is set
func (s *SupplementaryVolumeDescriptor) Encode() []byte {
	buf := make([]byte, DescriptorSize)
	copy(buf[1:6], "CD001")
	buf[6] = 1
	copy(buf[svdSystemOffset:svdSystemOffset+svdSystemLen], s.System)
	return buf
}

// DecodeSupplementary parses the descriptor following the PVD
func DecodeSupplementary(data []byte) (*SupplementaryVolumeDescriptor, error) {
	if len(data) < DescriptorSize {
		return nil, ErrNoSupplementaryVolumeDescriptor
	}
	return &SupplementaryVolumeDescriptor{
		System: trimField(data[svdSystemOffset : svdSystemOffset+svdSystemLen]),
	}, nil
}

// trimField strips NUL and space padding; an all-blank field becomes ""
func trimField(b []byte) string {
	s := strings.TrimRight(string(b), "\x00 ")
	if strings.TrimSpace(s) == "" {
		return ""
	}
	return s
}

func putField(dst []byte, s string) {
	n := copy(dst, s)
	for i := n; i < len(dst); i++ {
		dst[i] = ' '
	}
}
