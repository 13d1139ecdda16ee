// Package procfile parses the declarative list of named process templates
// consumed by the supervisor. The syntax is a YAML mapping of process names
// to shell commands; a value may also be a mapping carrying an explicit
// replica count:
//
//	web: bin/server --port 8080
//	worker:
//	    command: bin/worker
//	    replicas: 3
package procfile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/akramparvez/bureaucrat/internal/engine"
)

var namePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Load parses the Procfile at path.
func Load(path string) ([]engine.ProcessSpec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open procfile: %w", err)
	}
	defer f.Close()

	specs, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return specs, nil
}

// Parse reads an ordered sequence of process specs, preserving declaration
// order. Names must be unique and non-empty; commands must be non-empty;
// replica counts must be positive.
func Parse(r io.Reader) ([]engine.ProcessSpec, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("procfile declares no processes")
		}
		return nil, fmt.Errorf("decode procfile: %w", err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return nil, errors.New("procfile declares no processes")
		}
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, errors.New("procfile must map process names to commands")
	}

	specs := make([]engine.ProcessSpec, 0, len(root.Content)/2)
	seen := make(map[string]struct{})
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]

		name := strings.TrimSpace(key.Value)
		if name == "" {
			return nil, fmt.Errorf("line %d: empty process name", key.Line)
		}
		if !namePattern.MatchString(name) {
			return nil, fmt.Errorf("line %d: invalid process name %q", key.Line, name)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("line %d: duplicate process name %q", key.Line, name)
		}
		seen[name] = struct{}{}

		spec, err := parseSpec(name, value)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}

	if len(specs) == 0 {
		return nil, errors.New("procfile declares no processes")
	}
	return specs, nil
}

func parseSpec(name string, value *yaml.Node) (engine.ProcessSpec, error) {
	spec := engine.ProcessSpec{Name: name, Replicas: 1}

	switch value.Kind {
	case yaml.ScalarNode:
		spec.Command = strings.TrimSpace(value.Value)
	case yaml.MappingNode:
		var aux struct {
			Command  string `yaml:"command"`
			Replicas *int   `yaml:"replicas"`
		}
		if err := value.Decode(&aux); err != nil {
			return spec, fmt.Errorf("line %d: process %q: %w", value.Line, name, err)
		}
		spec.Command = strings.TrimSpace(aux.Command)
		if aux.Replicas != nil {
			if *aux.Replicas < 1 {
				return spec, fmt.Errorf("line %d: process %q: replicas must be positive", value.Line, name)
			}
			spec.Replicas = *aux.Replicas
		}
	default:
		return spec, fmt.Errorf("line %d: process %q: expected a command string or mapping", value.Line, name)
	}

	if spec.Command == "" {
		return spec, fmt.Errorf("process %q has no command", name)
	}
	return spec, nil
}
