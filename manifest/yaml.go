package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

type yamlFile struct {
	Steps []yamlStep `yaml:"steps"`
}

type yamlStep struct {
	Name    string   `yaml:"name"`
	Command *string  `yaml:"command"`
	Inputs  []string `yaml:"inputs"`
	Outputs []string `yaml:"outputs"`
}

// ParseYAML decodes a YAML manifest. Unknown keys are rejected. filename is
// used in diagnostics only.
func ParseYAML(src []byte, filename string) ([]Step, error) {
	dec := yaml.NewDecoder(bytes.NewReader(src))
	dec.KnownFields(true)

	var parsed yamlFile
	if err := dec.Decode(&parsed); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode YAML file %s: %w", filename, err)
	}

	steps := make([]Step, 0, len(parsed.Steps))
	for i, ys := range parsed.Steps {
		name := stepName(ys.Name, i)
		for _, f := range ys.Inputs {
			if f == "" {
				return nil, fmt.Errorf("error parsing step %q in file %s: empty input file name", name, filename)
			}
		}
		for _, f := range ys.Outputs {
			if f == "" {
				return nil, fmt.Errorf("error parsing step %q in file %s: empty output file name", name, filename)
			}
		}

		command := name
		if ys.Command != nil {
			command = *ys.Command
		}
		steps = append(steps, Step{
			Name:    name,
			Command: command,
			Inputs:  ys.Inputs,
			Outputs: ys.Outputs,
			Source:  fmt.Sprintf("%s:steps[%d]", filename, i),
		})
	}
	return steps, nil
}
