package dataio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// FlexString decodes a JSON or YAML scalar that may be a string or a
// number, such as a criterion year written as 2021 or "2021".
type FlexString string

func (v *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*v = ""
		return nil
	}

	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*v = FlexString(strings.TrimSpace(s))
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*v = FlexString(n.String())
	return nil
}

func (v *FlexString) UnmarshalYAML(node *yaml.Node) error {
	if node.Tag == "!!null" {
		*v = ""
		return nil
	}
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a scalar value", node.Line)
	}
	*v = FlexString(strings.TrimSpace(node.Value))
	return nil
}

// RawCriterion is a criterion definition as written in the hierarchy file.
// Only label and code are required; the rest is display metadata.
type RawCriterion struct {
	Label       string     `json:"label" yaml:"label"`
	Code        string     `json:"code" yaml:"code"`
	Description string     `json:"description" yaml:"description"`
	Year        FlexString `json:"year" yaml:"year"`
	SourceShort string     `json:"source_short" yaml:"source_short"`
	SourceLong  string     `json:"source_long" yaml:"source_long"`
}

// RawElement is one entry of a level's element list. A string element
// names a child level; an object element defines a criterion. Exactly one
// of the two fields is set after a successful decode.
type RawElement struct {
	ChildID   string
	Criterion *RawCriterion
}

func (e *RawElement) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}

	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		e.ChildID = strings.TrimSpace(s)
		return nil
	case '{':
		var crit RawCriterion
		if err := json.Unmarshal(b, &crit); err != nil {
			return err
		}
		e.Criterion = &crit
		return nil
	default:
		return fmt.Errorf("level element must be a string id or a criterion object, got %s", string(b))
	}
}

func (e *RawElement) UnmarshalYAML(node *yaml.Node) error {
	switch {
	case node.Tag == "!!null":
		return nil
	case node.Kind == yaml.ScalarNode:
		e.ChildID = strings.TrimSpace(node.Value)
		return nil
	case node.Kind == yaml.MappingNode:
		var crit RawCriterion
		if err := node.Decode(&crit); err != nil {
			return err
		}
		e.Criterion = &crit
		return nil
	default:
		return fmt.Errorf("line %d: level element must be a string id or a criterion mapping", node.Line)
	}
}

// RawLevel is one level definition from the hierarchy file: either a group
// whose elements name child levels, or a leaf whose elements are criteria.
type RawLevel struct {
	ID       string       `json:"id" yaml:"id"`
	Label    string       `json:"label" yaml:"label"`
	Elements []RawElement `json:"elements" yaml:"elements"`
}

// rawDefinitions is the top-level file shape.
type rawDefinitions struct {
	Levels []RawLevel `json:"levels" yaml:"levels"`
}

// LoadDefinitions reads level definitions from a JSON or YAML file, chosen
// by extension. Structural validation happens later in core.ParseHierarchy;
// this only rejects files that do not decode at all.
func LoadDefinitions(path string) ([]RawLevel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read hierarchy definition: %w", err)
	}

	var defs rawDefinitions
	switch ext := formatOf(path); ext {
	case ".json":
		if err := json.Unmarshal(data, &defs); err != nil {
			return nil, fmt.Errorf("parse hierarchy JSON: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &defs); err != nil {
			return nil, fmt.Errorf("parse hierarchy YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported hierarchy format %q (expected .json, .yaml or .yml)", ext)
	}
	return defs.Levels, nil
}
