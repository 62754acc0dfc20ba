package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrNoFields rejects documents without a usable fields list.
var ErrNoFields = errors.New("schema: document must contain a non-empty 'fields' array")

// Parse decodes a form document from JSON or YAML and validates it. A
// document that fails parsing or validation produces no partial form.
func Parse(data []byte) (*Form, error) {
	if len(data) == 0 {
		return nil, errors.New("schema: empty document")
	}

	var form Form
	if err := json.Unmarshal(data, &form); err != nil {
		if yamlErr := yaml.Unmarshal(data, &form); yamlErr != nil {
			return nil, fmt.Errorf("schema: parse document: %w", err)
		}
	}

	if err := validate(&form); err != nil {
		return nil, err
	}
	return &form, nil
}

func validate(form *Form) error {
	if len(form.Fields) == 0 {
		return ErrNoFields
	}

	seen := make(map[string]struct{}, len(form.Fields))
	for i, field := range form.Fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			return fmt.Errorf("schema: field %d has no name", i)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("schema: duplicate field name %q", name)
		}
		seen[name] = struct{}{}

		if field.Type == "" {
			// The original documents omit the type for plain text inputs.
			form.Fields[i].Type = FieldTypeText
			field.Type = FieldTypeText
		}
		if !field.Type.Valid() {
			return fmt.Errorf("schema: field %q has unknown type %q", name, field.Type)
		}

		if field.Type.Choice() {
			if len(field.Options) == 0 {
				return fmt.Errorf("schema: %s field %q has no options", field.Type, name)
			}
			for j, opt := range field.Options {
				if strings.TrimSpace(opt.Value) == "" {
					return fmt.Errorf("schema: field %q option %d has no value", name, j)
				}
			}
		}

		if field.Type == FieldTypeCheckbox {
			minSel, maxSel := field.MinSel(), field.MaxSel()
			if minSel < 0 {
				return fmt.Errorf("schema: field %q min_selections is negative", name)
			}
			if maxSel > len(field.Options) {
				return fmt.Errorf("schema: field %q max_selections exceeds option count", name)
			}
			if minSel > maxSel {
				return fmt.Errorf("schema: field %q min_selections %d exceeds max_selections %d", name, minSel, maxSel)
			}
		}
	}

	return nil
}
