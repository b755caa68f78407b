package step

import (
	"gopkg.in/yaml.v3"

	"github.com/Idosegev23/pptmaker-sub001/errors"
)

// definitionFile mirrors the steps section of a wizard definition YAML file.
// Other sections (validation rules) are owned by their packages and ignored here.
type definitionFile struct {
	Steps []Definition `yaml:"steps"`
}

// FromYAML builds a registry from a wizard definition file, for example:
//
//	steps:
//	  - id: brief
//	    order: 1
//	    required: true
//	    title: Brief
//	  - id: goals
//	    order: 2
//	    required: true
func FromYAML(data []byte) (*Registry, error) {
	var file definitionFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.WrapInvalid(err, "Registry", "FromYAML", "parse definition")
	}
	if len(file.Steps) == 0 {
		return nil, errors.WrapInvalid(errors.ErrInvalidConfig, "Registry", "FromYAML", "no steps defined")
	}
	return NewRegistry(file.Steps)
}
