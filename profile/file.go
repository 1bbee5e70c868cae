package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/google/jsonschema-go/jsonschema"
)

// ErrReadProfiles indicates the profiles file could not be read or decoded.
var ErrReadProfiles = errors.New("read profiles file")

// File is the document structure of a profiles file.
type File struct {
	Profiles []Profile `json:"profiles" yaml:"profiles"`
}

// Schema returns the JSON Schema that profiles files must satisfy.
func Schema() *jsonschema.Schema {
	event := func(desc string) *jsonschema.Schema {
		return &jsonschema.Schema{
			Type:        "string",
			Description: desc,
			MinLength:   jsonschema.Ptr(1),
			Pattern:     `^[^,\s]+$`,
		}
	}

	entry := &jsonschema.Schema{
		Type:     "object",
		Required: []string{"name", "references", "misses"},
		Properties: map[string]*jsonschema.Schema{
			"name":       event("profile name used with --counter-profile"),
			"references": event("secondary denominator event"),
			"misses":     event("secondary numerator event"),
			"column": {
				Type:        "string",
				Description: "report header for the secondary ratio",
			},
		},
		AdditionalProperties: &jsonschema.Schema{Not: &jsonschema.Schema{}},
	}

	return &jsonschema.Schema{
		Title:    "perfwrap counter profiles",
		Type:     "object",
		Required: []string{"profiles"},
		Properties: map[string]*jsonschema.Schema{
			"profiles": {
				Type:  "array",
				Items: entry,
			},
		},
		AdditionalProperties: &jsonschema.Schema{Not: &jsonschema.Schema{}},
	}
}

// LoadFile reads and decodes the profiles file at path.
func LoadFile(path string) ([]Profile, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Profiles path from CLI flag is expected.
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadProfiles, err)
	}

	profiles, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return profiles, nil
}

// Decode decodes a YAML profiles document, validating it against [Schema].
func Decode(data []byte) ([]Profile, error) {
	jsonData, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadProfiles, err)
	}

	var instance any

	err = json.Unmarshal(jsonData, &instance)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadProfiles, err)
	}

	resolved, err := Schema().Resolve(nil)
	if err != nil {
		return nil, fmt.Errorf("resolving profiles schema: %w", err)
	}

	err = resolved.Validate(instance)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidProfile, err)
	}

	var f File

	err = json.Unmarshal(jsonData, &f)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadProfiles, err)
	}

	seen := map[string]bool{}

	for _, p := range f.Profiles {
		err := p.Validate()
		if err != nil {
			return nil, err
		}

		if seen[p.Name] {
			return nil, fmt.Errorf("%w: duplicate profile %q", ErrInvalidProfile, p.Name)
		}

		seen[p.Name] = true
	}

	return f.Profiles, nil
}
