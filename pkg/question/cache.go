// Package question generates the conversational prompt shown for each field
// and memoises the result so a field's question is produced by at most one
// reasoning-service call per session.
package question

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-formflow/pkg/reasoning"
	"github.com/goliatone/go-formflow/pkg/schema"
)

type cacheKey struct {
	name        string
	description string
}

// Cache memoises generated questions keyed by (field name, description).
// Entries are never evicted within a session; field counts are small and a
// restart of the same form reuses the prompts unchanged.
type Cache struct {
	service reasoning.Service
	entries map[cacheKey]string
}

// NewCache builds a Cache backed by the provided service.
func NewCache(service reasoning.Service) *Cache {
	return &Cache{
		service: service,
		entries: make(map[cacheKey]string),
	}
}

// Len reports the number of cached questions.
func (c *Cache) Len() int {
	return len(c.entries)
}

// Question returns the natural-language prompt for a field. On a cache miss
// it issues one generation request; the reply is sanitised, trimmed, cached
// verbatim, and returned. On any service failure the cache is left untouched
// (a later call may succeed) and a deterministic fallback is returned.
func (c *Cache) Question(ctx context.Context, field schema.Field) string {
	key := cacheKey{name: field.Name, description: field.Description}
	if text, ok := c.entries[key]; ok {
		return text
	}

	if c.service == nil {
		return Fallback(field)
	}

	reply, err := c.service.Generate(ctx, BuildPrompt(field))
	if err != nil {
		return Fallback(field)
	}

	text := strings.TrimSpace(sanitize(reply))
	if text == "" {
		return Fallback(field)
	}

	c.entries[key] = text
	return text
}

// Fallback is the deterministic question used when generation fails.
func Fallback(field schema.Field) string {
	suffix := " (optional)"
	if field.Required {
		suffix = " (required)"
	}
	return fmt.Sprintf("Please select your %s%s", field.Name, suffix)
}

// BuildPrompt assembles the generation request for a field, including option
// labels and, for checkbox fields, the selection bounds.
func BuildPrompt(field schema.Field) string {
	var options strings.Builder
	if field.Type.Choice() {
		options.WriteString("\nAvailable options:\n")
		for _, opt := range field.Options {
			options.WriteString("- " + opt.Label + "\n")
		}
		if field.Type == schema.FieldTypeCheckbox {
			fmt.Fprintf(&options, "Please select between %d and %d options.\n", field.MinSel(), field.MaxSel())
		}
	}

	return fmt.Sprintf(`Generate a friendly, conversational question to ask for %s.
Additional context: %s
%s
If the field is required, mention that it's required.
If the field is not required, mention that it's optional.

Make it sound natural and friendly, like a helpful assistant asking a question.
Keep it concise but informative.`, field.Name, field.Description, options.String())
}
