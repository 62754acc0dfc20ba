package validate

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/goliatone/go-formflow/pkg/reasoning"
	"github.com/goliatone/go-formflow/pkg/schema"
)

// Dispatcher validates answers against their field. Closed-choice fields are
// checked structurally here; all free-text types delegate to the semantic
// validator, even when a cheap local check would exist. Centralising the
// free-text policy in one place is deliberate.
type Dispatcher struct {
	service reasoning.Service
}

// NewDispatcher builds a Dispatcher backed by the provided reasoning service.
func NewDispatcher(service reasoning.Service) *Dispatcher {
	return &Dispatcher{service: service}
}

// Validate checks value against field. The second return is the value to
// commit when the outcome is valid: the scalar string for single-value
// fields, the ordered decoded selection for checkbox fields.
func (d *Dispatcher) Validate(ctx context.Context, field schema.Field, value any) (Outcome, any) {
	switch field.Type {
	case schema.FieldTypeRadio:
		return d.validateRadio(field, value)
	case schema.FieldTypeCheckbox:
		return d.validateCheckbox(field, value)
	default:
		text := fmt.Sprint(value)
		outcome := Semantic(ctx, d.service, text, field.ValidationRule, field.Name, field.Description)
		return outcome, text
	}
}

func (d *Dispatcher) validateRadio(field schema.Field, value any) (Outcome, any) {
	values := field.OptionValues()
	joined := strings.Join(values, ", ")

	selected, _ := value.(string)
	if selected == "" {
		return invalid("Please select an option", joined), nil
	}
	for _, v := range values {
		if selected == v {
			return valid(selected), selected
		}
	}
	return invalid("Please select one of the available options: "+joined, joined), nil
}

func (d *Dispatcher) validateCheckbox(field schema.Field, value any) (Outcome, any) {
	values := field.OptionValues()
	joined := strings.Join(values, ", ")

	selection, ok := decodeSelection(value)
	if !ok {
		return invalid("Invalid selection format", joined), nil
	}

	valueSet := make(map[string]struct{}, len(values))
	for _, v := range values {
		valueSet[v] = struct{}{}
	}
	for _, sel := range selection {
		if _, known := valueSet[sel]; !known {
			return invalid("One or more selected options are invalid", joined), nil
		}
	}

	if len(selection) < field.MinSel() {
		return invalid(fmt.Sprintf("Please select at least %d option(s)", field.MinSel()), joined), nil
	}
	if len(selection) > field.MaxSel() {
		return invalid(fmt.Sprintf("Please select at most %d option(s)", field.MaxSel()), joined), nil
	}

	// All structural constraints hold, so the selection is accepted here.
	// Nothing falls through to semantic validation for choice fields.
	return valid(strings.Join(selection, ", ")), selection
}

// decodeSelection normalises a checkbox answer into an ordered value list.
// Strings are treated as JSON-encoded lists; anything undecodable reports a
// format failure.
func decodeSelection(value any) ([]string, bool) {
	switch v := value.(type) {
	case []string:
		return v, true
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	case string:
		var out []string
		if err := json.Unmarshal([]byte(v), &out); err != nil {
			return nil, false
		}
		return out, true
	default:
		return nil, false
	}
}
