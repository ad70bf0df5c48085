// Package config loads a graph.ComponentDef from a YAML document, grounded
// on the teacher's DSL config surface and on registry/service.go's pattern of
// validating decoded payloads against a compiled JSON Schema before use.
// Method bodies are never declared in YAML: they are opaque host code, looked
// up by name in a Registry the caller populates.
package config

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"

	"github.com/hotdrink-go/hotdrink/solver/graph"
)

// Registry resolves the method function named in a document to the Go
// callable that implements it. Hosts populate this before calling Load.
type Registry map[string]graph.Func

// ErrUnknownFunc is returned when a document names a function the Registry
// does not have.
type ErrUnknownFunc struct{ Name string }

func (e *ErrUnknownFunc) Error() string { return fmt.Sprintf("config: unknown func %q", e.Name) }

type document struct {
	Name          string           `yaml:"name" json:"name"`
	Variables     []string         `yaml:"variables" json:"variables"`
	InitialValues []any            `yaml:"initial_values" json:"initial_values"`
	Constraints   []constraintDoc  `yaml:"constraints" json:"constraints"`
}

type constraintDoc struct {
	Name    string      `yaml:"name" json:"name"`
	Methods []methodDoc `yaml:"methods" json:"methods"`
}

type methodDoc struct {
	Name    string   `yaml:"name" json:"name"`
	Inputs  []string `yaml:"inputs" json:"inputs"`
	Outputs []string `yaml:"outputs" json:"outputs"`
	Func    string   `yaml:"func" json:"func"`
}

// Load parses a YAML component definition, validates it against Schema, and
// resolves each method's named callable against reg, producing a
// graph.ComponentDef ready to hand to component.New.
func Load(data []byte, reg Registry) (graph.ComponentDef, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return graph.ComponentDef{}, fmt.Errorf("config: parse yaml: %w", err)
	}
	if err := validateAgainstSchema(data); err != nil {
		return graph.ComponentDef{}, fmt.Errorf("config: schema validation: %w", err)
	}

	nameToIndex := make(map[string]int, len(doc.Variables))
	for i, name := range doc.Variables {
		nameToIndex[name] = i
	}

	constraints := make([]graph.Constraint, 0, len(doc.Constraints))
	for _, cd := range doc.Constraints {
		methods := make([]graph.Method, 0, len(cd.Methods))
		for _, md := range cd.Methods {
			fn, ok := reg[md.Func]
			if !ok {
				return graph.ComponentDef{}, &ErrUnknownFunc{Name: md.Func}
			}
			inputs, err := indices(nameToIndex, md.Inputs)
			if err != nil {
				return graph.ComponentDef{}, err
			}
			outputs, err := indices(nameToIndex, md.Outputs)
			if err != nil {
				return graph.ComponentDef{}, err
			}
			methods = append(methods, graph.NewMethod(md.Name, inputs, outputs, fn))
		}
		constraints = append(constraints, graph.NewConstraint(cd.Name, methods))
	}

	values := make([]graph.Value, len(doc.Variables))
	for i, v := range doc.InitialValues {
		if i < len(values) {
			values[i] = v
		}
	}

	return graph.ComponentDef{
		Name:          doc.Name,
		VariableNames: doc.Variables,
		InitialValues: values,
		Constraints:   constraints,
	}, nil
}

func indices(nameToIndex map[string]int, names []string) ([]int, error) {
	out := make([]int, len(names))
	for i, name := range names {
		idx, ok := nameToIndex[name]
		if !ok {
			return nil, fmt.Errorf("config: unknown variable %q", name)
		}
		out[i] = idx
	}
	return out, nil
}

func validateAgainstSchema(yamlData []byte) error {
	var doc any
	if err := yaml.Unmarshal(yamlData, &doc); err != nil {
		return fmt.Errorf("unmarshal for validation: %w", err)
	}
	// jsonschema validates against JSON-shaped data; normalize the YAML
	// decode (which may contain map[string]any with non-string-keyed nested
	// maps) by round-tripping through encoding/json.
	normalized, err := roundTripJSON(doc)
	if err != nil {
		return err
	}

	var schemaDoc any
	if err := json.Unmarshal([]byte(Schema), &schemaDoc); err != nil {
		return fmt.Errorf("unmarshal schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource("component.schema.json", schemaDoc); err != nil {
		return fmt.Errorf("add schema resource: %w", err)
	}
	schema, err := c.Compile("component.schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	return schema.Validate(normalized)
}

func roundTripJSON(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal for validation: %w", err)
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("unmarshal for validation: %w", err)
	}
	return out, nil
}

// Schema is the JSON Schema every component document must satisfy: a name, a
// non-empty list of variables, an optional initial_values array, and
// constraints whose methods each name at least one output and a func.
// Schema does not check that initial_values has one entry per variable, nor
// that method inputs/outputs exist among variables — the latter check
// happens in Load, where the error names the unknown variable.
const Schema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["name", "variables", "constraints"],
  "properties": {
    "name": {"type": "string", "minLength": 1},
    "variables": {
      "type": "array",
      "items": {"type": "string", "minLength": 1},
      "minItems": 1
    },
    "initial_values": {"type": "array"},
    "constraints": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name", "methods"],
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "methods": {
            "type": "array",
            "minItems": 1,
            "items": {
              "type": "object",
              "required": ["name", "outputs", "func"],
              "properties": {
                "name": {"type": "string", "minLength": 1},
                "inputs": {"type": "array", "items": {"type": "string"}},
                "outputs": {
                  "type": "array",
                  "items": {"type": "string"},
                  "minItems": 1
                },
                "func": {"type": "string", "minLength": 1}
              }
            }
          }
        }
      }
    }
  }
}`
