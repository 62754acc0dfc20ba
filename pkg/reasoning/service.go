// Package reasoning talks to the external natural-language service the
// interview engine delegates to for question generation and semantic
// validation. The only contract required from the service is plain-text
// completion: one prompt in, one text reply out.
package reasoning

import (
	"context"
	"errors"
)

// Service is the outbound text-completion contract. Implementations must
// return a non-nil error for transport failures and empty replies so callers
// can branch explicitly instead of inspecting sentinel strings.
type Service interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ServiceFunc adapts a function into a Service.
type ServiceFunc func(ctx context.Context, prompt string) (string, error)

// Generate delegates to the underlying function.
func (fn ServiceFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return fn(ctx, prompt)
}

// ErrEmptyReply signals the service answered with no usable content.
var ErrEmptyReply = errors.New("reasoning: empty reply from service")

// ErrDisabled signals no service is configured; callers fall back to their
// deterministic defaults.
var ErrDisabled = errors.New("reasoning: service not configured")

// Disabled returns a Service that always reports ErrDisabled. It keeps the
// engine usable offline: question generation and semantic validation degrade
// to their deterministic fallbacks.
func Disabled() Service {
	return ServiceFunc(func(context.Context, string) (string, error) {
		return "", ErrDisabled
	})
}
