// Package openapi converts an OpenAPI operation's request-body schema into an
// interview form, so existing API definitions double as form documents.
package openapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formflow/pkg/schema"
)

// Extensions recognised on property schemas. They carry the interview-only
// concerns OpenAPI has no vocabulary for.
const (
	validationExtensionKey = "x-validation"
	visibilityExtensionKey = "x-visibility"
)

// Import loads an OpenAPI document and builds a Form from the JSON request
// body of the operation identified by operationID. Properties are emitted in
// name order, required-first, since OpenAPI objects carry no field order.
func Import(ctx context.Context, data []byte, operationID string) (*schema.Form, error) {
	if len(data) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if doc.Paths == nil || doc.Paths.Len() == 0 {
		return nil, errors.New("openapi: document does not contain any paths")
	}

	operation := findOperation(doc, operationID)
	if operation == nil {
		return nil, fmt.Errorf("openapi: operation %q not found", operationID)
	}

	body := requestBodySchema(operation)
	if body == nil || len(body.Properties) == 0 {
		return nil, fmt.Errorf("openapi: operation %q has no request body properties", operationID)
	}

	form := &schema.Form{
		Title:       operation.Summary,
		Description: operation.Description,
		Fields:      buildFields(body),
	}

	// Re-run document validation so invariants (unique names, option lists,
	// selection bounds) hold regardless of what the OpenAPI schema said.
	encoded, err := encodeForm(form)
	if err != nil {
		return nil, err
	}
	return schema.Parse(encoded)
}

func encodeForm(form *schema.Form) ([]byte, error) {
	encoded, err := json.Marshal(form)
	if err != nil {
		return nil, fmt.Errorf("openapi: encode form: %w", err)
	}
	return encoded, nil
}

func findOperation(doc *openapi3.T, operationID string) *openapi3.Operation {
	for _, item := range doc.Paths.Map() {
		if item == nil {
			continue
		}
		for _, op := range []*openapi3.Operation{
			item.Get, item.Put, item.Post, item.Delete, item.Patch,
		} {
			if op != nil && op.OperationID == operationID {
				return op
			}
		}
	}
	return nil
}

func requestBodySchema(operation *openapi3.Operation) *openapi3.Schema {
	if operation.RequestBody == nil || operation.RequestBody.Value == nil {
		return nil
	}
	content := operation.RequestBody.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	for _, mt := range content {
		if mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func buildFields(body *openapi3.Schema) []schema.Field {
	required := make(map[string]bool, len(body.Required))
	for _, name := range body.Required {
		required[name] = true
	}

	names := make([]string, 0, len(body.Properties))
	for name := range body.Properties {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if required[names[i]] != required[names[j]] {
			return required[names[i]]
		}
		return names[i] < names[j]
	})

	fields := make([]schema.Field, 0, len(names))
	for _, name := range names {
		ref := body.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		fields = append(fields, buildField(name, ref.Value, required[name]))
	}
	return fields
}

func buildField(name string, prop *openapi3.Schema, required bool) schema.Field {
	field := schema.Field{
		Name:        name,
		Type:        fieldType(prop),
		Required:    required,
		Description: prop.Description,
	}

	if rule, ok := prop.Extensions[validationExtensionKey].(string); ok {
		field.ValidationRule = rule
	}
	if rule, ok := prop.Extensions[visibilityExtensionKey].(string); ok {
		field.VisibilityRule = rule
	}

	switch field.Type {
	case schema.FieldTypeRadio:
		if typeOf(prop) == "boolean" {
			field.Options = []schema.Option{
				{Label: "Yes", Value: "yes"},
				{Label: "No", Value: "no"},
			}
			break
		}
		field.Options = enumOptions(prop.Enum)
	case schema.FieldTypeCheckbox:
		field.Options = enumOptions(prop.Items.Value.Enum)
		if prop.MinItems > 0 {
			minSel := int(prop.MinItems)
			field.MinSelections = &minSel
		}
		if prop.MaxItems != nil {
			maxSel := int(*prop.MaxItems)
			field.MaxSelections = &maxSel
		}
	}

	return field
}

func fieldType(prop *openapi3.Schema) schema.FieldType {
	switch typeOf(prop) {
	case "boolean":
		return schema.FieldTypeRadio
	case "integer", "number":
		return schema.FieldTypeNumber
	case "array":
		if prop.Items != nil && prop.Items.Value != nil && len(prop.Items.Value.Enum) > 0 {
			return schema.FieldTypeCheckbox
		}
		return schema.FieldTypeText
	case "string":
		if len(prop.Enum) > 0 {
			return schema.FieldTypeRadio
		}
		switch prop.Format {
		case "email":
			return schema.FieldTypeEmail
		case "date", "date-time":
			return schema.FieldTypeDate
		case "tel", "phone":
			return schema.FieldTypePhone
		}
		return schema.FieldTypeText
	default:
		return schema.FieldTypeText
	}
}

func typeOf(prop *openapi3.Schema) string {
	if prop.Type == nil {
		return ""
	}
	values := prop.Type.Slice()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func enumOptions(enum []any) []schema.Option {
	options := make([]schema.Option, 0, len(enum))
	for _, value := range enum {
		text := strings.TrimSpace(fmt.Sprint(value))
		if text == "" {
			continue
		}
		options = append(options, schema.Option{Label: text, Value: text})
	}
	return options
}
