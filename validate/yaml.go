package validate

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/Idosegev23/pptmaker-sub001/errors"
	"github.com/Idosegev23/pptmaker-sub001/step"
)

// rulesFile mirrors the validation section of a wizard definition YAML file
type rulesFile struct {
	Validation map[step.ID][]Rule `yaml:"validation"`
}

// RulesFromYAML parses the validation section of a wizard definition file and
// checks that every named step exists in the registry, for example:
//
//	validation:
//	  brief:
//	    - field: brandName
//	      required: true
//	      message: Brand name is required
func RulesFromYAML(reg *step.Registry, data []byte) (RuleSet, error) {
	var file rulesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.WrapInvalid(err, "RuleSet", "RulesFromYAML", "parse definition")
	}

	rules := make(RuleSet, len(file.Validation))
	for id, stepRules := range file.Validation {
		if !reg.Contains(id) {
			return nil, errors.WrapInvalid(
				fmt.Errorf("validation rules reference unknown step %q", id),
				"RuleSet", "RulesFromYAML", "check steps")
		}
		for _, r := range stepRules {
			if r.Field == "" {
				return nil, errors.WrapInvalid(
					fmt.Errorf("rule for step %q has empty field", id),
					"RuleSet", "RulesFromYAML", "check rules")
			}
		}
		rules[id] = stepRules
	}
	return rules, nil
}
