package tree

import (
	"fmt"

	"gopkg.in/ini.v1"
)

const (
	generalSection = "general"
	imagesPrefix   = "images-"
)

// Treeinfo is the content of a .treeinfo key-file that identification uses
type Treeinfo struct {
	Family  string
	Variant string
	Version string
	Arch    string
	Kernel  string
	Initrd  string
	BootISO string
}

// ParseTreeinfo reads a .treeinfo key-file. Missing keys stay empty; only a
// syntax error fails.
func ParseTreeinfo(data []byte) (*Treeinfo, error) {
	f, err := ini.LoadSources(ini.LoadOptions{IgnoreInlineComment: true}, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedTreeinfo, err)
	}

	ti := &Treeinfo{}
	if general, err := f.GetSection(generalSection); err == nil {
		ti.Family = general.Key("family").String()
		ti.Variant = general.Key("variant").String()
		ti.Version = general.Key("version").String()
		ti.Arch = general.Key("arch").String()
	}

	if ti.Arch == "" {
		return ti, nil
	}
	if images, err := f.GetSection(imagesPrefix + ti.Arch); err == nil {
		ti.Kernel = images.Key("kernel").String()
		ti.Initrd = images.Key("initrd").String()
		ti.BootISO = images.Key("boot.iso").String()
	}
	return ti, nil
}

// Apply copies the populated fields onto t and marks it as key-file backed
func (ti *Treeinfo) Apply(t *Tree) {
	set := func(key, value string) {
		if value != "" {
			t.SetParam(key, value)
		}
	}
	set(ParamTreeinfoFamily, ti.Family)
	set(ParamTreeinfoVariant, ti.Variant)
	set(ParamTreeinfoVersion, ti.Version)
	set(ParamTreeinfoArch, ti.Arch)
	set(ParamKernel, ti.Kernel)
	set(ParamInitrd, ti.Initrd)
	set(ParamBootISO, ti.BootISO)
	t.SetParamBool(ParamHasTreeinfo, true)
}
