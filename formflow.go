// Package formflow turns a declarative form document into a conversational
// interview: one field at a time, closed choices checked structurally and
// free text validated by an external reasoning service. The root package
// re-exports the common entry points; the subpackages carry the pieces.
package formflow

import (
	"context"

	"github.com/goliatone/go-formflow/pkg/schema"
	"github.com/goliatone/go-formflow/pkg/session"
)

// Form aliases the immutable form description an interview walks.
type Form = schema.Form

// Field aliases one question unit inside a form.
type Field = schema.Field

// Session aliases the interview state machine.
type Session = session.Session

// StepView aliases the per-step view model handed to rendering surfaces.
type StepView = session.StepView

// Event aliases the observable result of one state-machine step.
type Event = session.Event

// ParseForm decodes and validates a JSON or YAML form document.
func ParseForm(data []byte) (*Form, error) {
	return schema.Parse(data)
}

// LoadForm reads a form document from the given source. It is the simplest
// entry point for callers that just want an interview over a file.
func LoadForm(ctx context.Context, src schema.Source, options ...schema.LoaderOption) (*Form, error) {
	return schema.NewLoader(options...).Load(ctx, src)
}

// NewSession starts an interview positioned at the first visible field.
func NewSession(form *Form, options ...session.Option) *Session {
	return session.New(form, options...)
}
