// ABOUTME: Installation tree entity
// ABOUTME: Holds .treeinfo identification fields, boot paths and the os back-reference

package tree

import "github.com/nainya/osinfodb/pkg/entity"

// Tree parameter keys
const (
	ParamArchitecture    = "architecture"
	ParamURL             = "url"
	ParamTreeinfoFamily  = "treeinfo-family"
	ParamTreeinfoVariant = "treeinfo-variant"
	ParamTreeinfoVersion = "treeinfo-version"
	ParamTreeinfoArch    = "treeinfo-arch"
	ParamKernel          = "kernel"
	ParamInitrd          = "initrd"
	ParamBootISO         = "boot-iso"
	ParamHasTreeinfo     = "has-treeinfo"
)

// Tree describes a network or filesystem installation tree. Catalog entries
// hold regex patterns in the treeinfo fields; probed candidates hold the
// literal values read from the key-file.
type Tree struct {
	*entity.Entity
	osID string
}

// New creates a tree with an optional architecture
func New(id, architecture string) *Tree {
	t := &Tree{Entity: entity.New(id)}
	if architecture != "" {
		t.SetParam(ParamArchitecture, architecture)
	}
	return t
}

// Architecture returns the tree architecture
func (t *Tree) Architecture() string {
	return t.GetParamValue(ParamArchitecture)
}

// URL returns the tree location
func (t *Tree) URL() string {
	return t.GetParamValue(ParamURL)
}

// TreeinfoFamily returns the treeinfo family
func (t *Tree) TreeinfoFamily() string {
	return t.GetParamValue(ParamTreeinfoFamily)
}

// TreeinfoVariant returns the treeinfo variant
func (t *Tree) TreeinfoVariant() string {
	return t.GetParamValue(ParamTreeinfoVariant)
}

// TreeinfoVersion returns the treeinfo version
func (t *Tree) TreeinfoVersion() string {
	return t.GetParamValue(ParamTreeinfoVersion)
}

// TreeinfoArch returns the treeinfo architecture
func (t *Tree) TreeinfoArch() string {
	return t.GetParamValue(ParamTreeinfoArch)
}

// Kernel returns the kernel path under the tree
func (t *Tree) Kernel() string {
	return t.GetParamValue(ParamKernel)
}

// Initrd returns the initrd path under the tree
func (t *Tree) Initrd() string {
	return t.GetParamValue(ParamInitrd)
}

// BootISO returns the boot image path under the tree
func (t *Tree) BootISO() string {
	return t.GetParamValue(ParamBootISO)
}

// HasTreeinfo reports whether the tree was read from a key-file
func (t *Tree) HasTreeinfo() bool {
	return t.GetParamBool(ParamHasTreeinfo, false)
}

// OsID returns the id of the operating system this tree belongs to, or ""
func (t *Tree) OsID() string { return t.osID }

// SetOsID records the owning operating system
func (t *Tree) SetOsID(id string) { t.osID = id }

// ClearOs drops the operating system reference
func (t *Tree) ClearOs() { t.osID = "" }
