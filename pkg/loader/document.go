package loader

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Document is the root of one catalog YAML file. Every section is optional.
type Document struct {
	Datamaps       []DatamapDef    `yaml:"datamaps"`
	Devices        []EntityDef     `yaml:"devices"`
	InstallScripts []EntityDef     `yaml:"install-scripts"`
	Platforms      []PlatformDef   `yaml:"platforms"`
	Oses           []OsDef         `yaml:"oses"`
	Deployments    []DeploymentDef `yaml:"deployments"`
}

// EntityDef is an id plus parameters
type EntityDef struct {
	ID     string `yaml:"id"`
	Params Params `yaml:"params"`
}

// DatamapDef declares a translation table
type DatamapDef struct {
	ID      string         `yaml:"id"`
	Entries []DatamapEntry `yaml:"entries"`
}

// DatamapEntry is one in→out pair
type DatamapEntry struct {
	In  string `yaml:"in"`
	Out string `yaml:"out"`
}

// RelationshipDef points at another product of the same collection
type RelationshipDef struct {
	Kind string `yaml:"kind"` // derives-from, clones or upgrades
	ID   string `yaml:"id"`
}

// LinkDef links a declared device; Params are link parameters (driver, ...)
type LinkDef struct {
	Device string `yaml:"device"`
	Params Params `yaml:"params"`
}

// PlatformDef declares a platform
type PlatformDef struct {
	EntityDef `yaml:",inline"`

	Relationships []RelationshipDef `yaml:"relationships"`
	Devices       []LinkDef         `yaml:"devices"`
}

// MediaDef declares a media or tree entry of an os
type MediaDef struct {
	ID     string `yaml:"id"`
	Arch   string `yaml:"arch"`
	Params Params `yaml:"params"`
}

// OsDef declares an operating system
type OsDef struct {
	EntityDef `yaml:",inline"`

	Relationships  []RelationshipDef `yaml:"relationships"`
	Devices        []LinkDef         `yaml:"devices"`
	Variants       []EntityDef       `yaml:"variants"`
	Media          []MediaDef        `yaml:"media"`
	Trees          []MediaDef        `yaml:"trees"`
	InstallScripts []string          `yaml:"install-scripts"`
}

// DeploymentDef binds an os to a platform
type DeploymentDef struct {
	ID       string    `yaml:"id"`
	Os       string    `yaml:"os"`
	Platform string    `yaml:"platform"`
	Params   Params    `yaml:"params"`
	Devices  []LinkDef `yaml:"devices"`
}

// Param is one key with its ordered values
type Param struct {
	Key    string
	Values []string
}

// Params keeps document order. A value may be a scalar or a list of scalars.
type Params []Param

// UnmarshalYAML implements yaml.Unmarshaler
func (p *Params) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: params must be a mapping", node.Line)
	}
	out := make(Params, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		values, err := scalars(val)
		if err != nil {
			return fmt.Errorf("param %q: %w", key.Value, err)
		}
		out = append(out, Param{Key: key.Value, Values: values})
	}
	*p = out
	return nil
}

func scalars(node *yaml.Node) ([]string, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		return []string{node.Value}, nil
	case yaml.SequenceNode:
		values := make([]string, 0, len(node.Content))
		for _, item := range node.Content {
			if item.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: list items must be scalars", item.Line)
			}
			values = append(values, item.Value)
		}
		return values, nil
	}
	return nil, fmt.Errorf("line %d: expected scalar or list", node.Line)
}
