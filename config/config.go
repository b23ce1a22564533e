// Package config loads a declarative list of demo questions from YAML, the
// input cmd/promptdemo's "run" command walks end to end.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Kind selects which prompt a Question renders as.
type Kind string

const (
	KindInput   Kind = "input"
	KindConfirm Kind = "confirm"
	KindSelect  Kind = "select"
)

// Question describes one prompt to run.
type Question struct {
	Name    string   `yaml:"name"`
	Kind    Kind     `yaml:"kind"`
	Message string   `yaml:"message"`
	Hint    string   `yaml:"hint,omitempty"`
	Default string   `yaml:"default,omitempty"`
	Choices []string `yaml:"choices,omitempty"`
}

// File is a question file's top-level shape.
type File struct {
	Questions []Question `yaml:"questions"`
}

// Load reads and validates a question file. Returns nil, nil if path
// doesn't exist.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if err := validate(&f); err != nil {
		return nil, err
	}
	return &f, nil
}

func validate(f *File) error {
	seen := make(map[string]bool, len(f.Questions))
	for i, q := range f.Questions {
		prefix := fmt.Sprintf("questions[%d]", i)

		if q.Name == "" {
			return fmt.Errorf("%s: 'name' is required", prefix)
		}
		if seen[q.Name] {
			return fmt.Errorf("%s: duplicate name %q", prefix, q.Name)
		}
		seen[q.Name] = true

		if q.Message == "" {
			return fmt.Errorf("%s: 'message' is required", prefix)
		}

		switch q.Kind {
		case KindInput, KindConfirm:
			if len(q.Choices) > 0 {
				return fmt.Errorf("%s: 'choices' is not valid for kind %q", prefix, q.Kind)
			}
		case KindSelect:
			if len(q.Choices) == 0 {
				return fmt.Errorf("%s: 'choices' is required for kind %q", prefix, q.Kind)
			}
		case "":
			return fmt.Errorf("%s: 'kind' is required (must be 'input', 'confirm', or 'select')", prefix)
		default:
			return fmt.Errorf("%s: invalid kind %q (must be 'input', 'confirm', or 'select')", prefix, q.Kind)
		}
	}
	return nil
}
