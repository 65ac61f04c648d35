package rig

import (
	"io/ioutil"

	"gopkg.in/yaml.v2"

	"github.com/mocapkit/bvhrig/geom"
)

// ImportConfig is the YAML import settings file. Zero values mean scale 1.0,
// default rotation order XYZ and no name prefix.
type ImportConfig struct {
	Scale                float64 `yaml:"scale"`
	DefaultRotationOrder string  `yaml:"defaultRotationOrder"`
	NamePrefix           string  `yaml:"namePrefix"`
}

func LoadImportConfig(path string) (*ImportConfig, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var conf ImportConfig
	if err := yaml.Unmarshal(data, &conf); err != nil {
		return nil, err
	}
	return &conf, nil
}

// Builder returns a Builder configured from the file.
func (c *ImportConfig) Builder() (*Builder, error) {
	scale := c.Scale
	if scale == 0 {
		scale = 1
	}
	b := NewBuilder(scale)
	b.NamePrefix = c.NamePrefix
	if c.DefaultRotationOrder != "" {
		order, err := geom.ParseRotationOrder(c.DefaultRotationOrder)
		if err != nil {
			return nil, &InvalidParameterError{Param: "defaultRotationOrder", Msg: err.Error()}
		}
		b.DefaultRotationOrder = order
	}
	return b, nil
}
