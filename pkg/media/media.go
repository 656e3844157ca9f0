// ABOUTME: Installation media entity
// ABOUTME: Identification fields, boot paths, localisation and os back-reference

package media

import "github.com/nainya/osinfodb/pkg/entity"

// Media parameter keys
const (
	ParamArchitecture      = "architecture"
	ParamURL               = "url"
	ParamVolumeID          = "volume-id"
	ParamSystemID          = "system-id"
	ParamPublisherID       = "publisher-id"
	ParamApplicationID     = "application-id"
	ParamVolumeSize        = "volume-size"
	ParamKernel            = "kernel"
	ParamInitrd            = "initrd"
	ParamInstaller         = "installer"
	ParamLive              = "live"
	ParamInstallerReboots  = "installer-reboots"
	ParamEjectAfterInstall = "eject-after-install"
	ParamVariant           = "variant"
	ParamLanguage          = "l10n-language"
	ParamLanguageRegex     = "l10n-language-regex"
	ParamLanguageMap       = "l10n-language-map"
)

// ArchAll marks media usable on any architecture
const ArchAll = "all"

// Media describes one piece of installable or bootable OS media. Catalog
// entries hold regex patterns in the identification fields; probed
// candidates hold literal values.
type Media struct {
	*entity.Entity
	osID string
}

// New creates media with an optional architecture
func New(id, architecture string) *Media {
	m := &Media{Entity: entity.New(id)}
	if architecture != "" {
		m.SetParam(ParamArchitecture, architecture)
	}
	return m
}

// Architecture returns the media architecture
func (m *Media) Architecture() string {
	return m.GetParamValue(ParamArchitecture)
}

// URL returns the download location
func (m *Media) URL() string {
	return m.GetParamValue(ParamURL)
}

// VolumeID returns the volume id pattern or value
func (m *Media) VolumeID() string {
	return m.GetParamValue(ParamVolumeID)
}

// SystemID returns the system id pattern or value
func (m *Media) SystemID() string {
	return m.GetParamValue(ParamSystemID)
}

// PublisherID returns the publisher id pattern or value
func (m *Media) PublisherID() string {
	return m.GetParamValue(ParamPublisherID)
}

// ApplicationID returns the application id pattern or value
func (m *Media) ApplicationID() string {
	return m.GetParamValue(ParamApplicationID)
}

// Kernel returns the kernel path inside the image
func (m *Media) Kernel() string {
	return m.GetParamValue(ParamKernel)
}

// Initrd returns the initrd path inside the image
func (m *Media) Initrd() string {
	return m.GetParamValue(ParamInitrd)
}

// VolumeSize returns the image size in bytes, or 0 when unknown
func (m *Media) VolumeSize() int64 {
	return m.GetParamInt64(ParamVolumeSize, 0)
}

// Installer reports whether the media can install the OS (default true)
func (m *Media) Installer() bool {
	return m.GetParamBool(ParamInstaller, true)
}

// Live reports whether the media boots a live system (default false)
func (m *Media) Live() bool {
	return m.GetParamBool(ParamLive, false)
}

// InstallerReboots returns how many reboots installation takes (default 1)
func (m *Media) InstallerReboots() int {
	return int(m.GetParamInt64(ParamInstallerReboots, 1))
}

// EjectAfterInstall reports whether the media should be ejected after
// installation (default true)
func (m *Media) EjectAfterInstall() bool {
	return m.GetParamBool(ParamEjectAfterInstall, true)
}

// Languages returns the localisations the media provides
func (m *Media) Languages() []string {
	return m.GetParamList(ParamLanguage)
}

// SetLanguages replaces the language list
func (m *Media) SetLanguages(langs []string) {
	m.ClearParam(ParamLanguage)
	for _, l := range langs {
		m.AddParam(ParamLanguage, l)
	}
}

// LanguageRegex returns the pattern extracting a language token from the volume id
func (m *Media) LanguageRegex() string { return m.GetParamValue(ParamLanguageRegex) }

// LanguageMap returns the id of the datamap translating language tokens
func (m *Media) LanguageMap() string { return m.GetParamValue(ParamLanguageMap) }

// Variants returns the os variant ids this media provides
func (m *Media) Variants() []string { return m.GetParamList(ParamVariant) }

// OsID returns the id of the operating system this media belongs to, or ""
func (m *Media) OsID() string {
	return m.osID
}

// SetOsID records the owning operating system
func (m *Media) SetOsID(id string) {
	m.osID = id
}

// ClearOs drops the operating system reference
func (m *Media) ClearOs() {
	m.osID = ""
}
