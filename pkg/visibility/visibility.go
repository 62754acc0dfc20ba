package visibility

import "github.com/goliatone/go-formflow/pkg/schema"

// Evaluator determines whether a field should be visible based on its rule
// string and the answers accumulated so far.
type Evaluator interface {
	Eval(field schema.Field, rule string, ctx Context) bool
}

// Context provides inputs to an Evaluator. Answers maps field names to
// committed values (string for scalar fields, []string for checkbox fields).
type Context struct {
	Answers map[string]any
}

// EvaluatorFunc adapts a function into an Evaluator.
type EvaluatorFunc func(field schema.Field, rule string, ctx Context) bool

// Eval delegates to the underlying function.
func (fn EvaluatorFunc) Eval(field schema.Field, rule string, ctx Context) bool {
	return fn(field, rule, ctx)
}

// Visible returns the ordered subsequence of fields whose visibility rule
// evaluates true under the current answers. Fields without a rule are always
// visible. The result must be recomputed whenever answers change, because an
// earlier answer can reveal or hide later fields.
func Visible(fields []schema.Field, evaluator Evaluator, ctx Context) []schema.Field {
	out := make([]schema.Field, 0, len(fields))
	for _, field := range fields {
		if field.VisibilityRule != "" && evaluator != nil {
			if !evaluator.Eval(field, field.VisibilityRule, ctx) {
				continue
			}
		}
		out = append(out, field)
	}
	return out
}
