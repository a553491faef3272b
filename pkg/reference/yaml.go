package reference

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ZabehCruz/pybryt/pkg/footprint"
)

// yamlDocument is the on-disk authoring format for a reference
// implementation.
type yamlDocument struct {
	Name        string           `yaml:"name"`
	Annotations []yamlAnnotation `yaml:"annotations"`
}

type yamlAnnotation struct {
	Name    string `yaml:"name"`
	Group   string `yaml:"group"`
	Success string `yaml:"success"`
	Failure string `yaml:"failure"`
	// Digest pins the expected snapshot directly. When empty, Type and
	// Value are snapshotted to derive it; Type must then use the
	// execution engine's type names.
	Digest       string      `yaml:"digest"`
	Type         string      `yaml:"type"`
	Value        interface{} `yaml:"value"`
	When         string      `yaml:"when"`
	MinTimestamp int         `yaml:"min_timestamp"`
	MaxTimestamp int         `yaml:"max_timestamp"`
}

// ParseYAML builds a reference implementation from its YAML definition.
func ParseYAML(data []byte) (*Reference, error) {
	var doc yamlDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing reference definition: %w", err)
	}

	if doc.Name == "" {
		return nil, fmt.Errorf("reference definition missing name")
	}
	if len(doc.Annotations) == 0 {
		return nil, fmt.Errorf("reference definition %q has no annotations", doc.Name)
	}

	ref := New(doc.Name)
	for i, a := range doc.Annotations {
		digest := a.Digest
		if digest == "" {
			if a.Value == nil {
				return nil, fmt.Errorf("reference %q annotation %d: needs a digest or a value", doc.Name, i)
			}
			payload, err := json.Marshal(a.Value)
			if err != nil {
				return nil, fmt.Errorf("reference %q annotation %d: encoding value: %w", doc.Name, i, err)
			}
			digest = footprint.NewSnapshot(a.Type, payload).Digest
		}

		name := a.Name
		if name == "" {
			name = fmt.Sprintf("%s-%d", doc.Name, i)
		}
		failure := a.Failure
		if failure == "" {
			failure = fmt.Sprintf("expected value for %q was never produced", name)
		}

		ref.Annotations = append(ref.Annotations, Annotation{
			Name:    name,
			Group:   a.Group,
			Success: a.Success,
			Failure: failure,
			Matcher: &ValueMatcher{
				Digest:       digest,
				MinTimestamp: a.MinTimestamp,
				MaxTimestamp: a.MaxTimestamp,
				When:         a.When,
			},
		})
	}

	return ref, nil
}

// ReadYAML parses a reference definition file.
func ReadYAML(path string) (*Reference, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading reference definition %s: %w", path, err)
	}

	ref, err := ParseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("reference definition %s: %w", path, err)
	}
	return ref, nil
}
