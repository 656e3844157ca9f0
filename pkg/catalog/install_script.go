package catalog

import "github.com/nainya/osinfodb/pkg/entity"

// InstallScript parameter keys
const (
	ParamProfile          = "profile"
	ParamTemplateURI      = "template-uri"
	ParamExpectedFilename = "expected-filename"
	ParamInjectionMethod  = "injection-method"
)

// InstallScript describes an unattended installation script. Rendering the
// template is left to the consumer.
type InstallScript struct {
	*entity.Entity
}

// NewInstallScript creates a script entry
func NewInstallScript(id string) *InstallScript {
	return &InstallScript{Entity: entity.New(id)}
}

// Profile returns the script profile, such as desktop or jeos
func (s *InstallScript) Profile() string {
	return s.GetParamValue(ParamProfile)
}

// TemplateURI returns the location of the script template
func (s *InstallScript) TemplateURI() string {
	return s.GetParamValue(ParamTemplateURI)
}

// ExpectedFilename returns the file name the installer looks for
func (s *InstallScript) ExpectedFilename() string {
	return s.GetParamValue(ParamExpectedFilename)
}

// InjectionMethods returns the supported injection methods (cdrom, disk, initrd, ...)
func (s *InstallScript) InjectionMethods() []string {
	return s.GetParamList(ParamInjectionMethod)
}
