// Package phrase evaluates the small fixed set of natural-language visibility
// rules recognised by the interview engine. Anything it does not recognise
// leaves the field visible: an unparseable rule must never hide a field
// permanently.
package phrase

import (
	"regexp"
	"strings"

	"github.com/goliatone/go-formflow/pkg/schema"
	"github.com/goliatone/go-formflow/pkg/visibility"
)

// pattern pairs a compiled rule shape with the predicate it produces. The
// table is ordered; the first matching pattern wins.
type pattern struct {
	re    *regexp.Regexp
	apply func(match []string, ctx visibility.Context) bool
}

// Evaluator matches rules against an ordered pattern table. The only shape
// shipped today is "previous answer to <field> is <value>".
type Evaluator struct {
	patterns []pattern
}

// New returns an Evaluator with the built-in pattern table.
func New() *Evaluator {
	return &Evaluator{
		patterns: []pattern{
			{
				re: regexp.MustCompile(`(?i)previous answer to (.+?) is (.+)`),
				apply: func(match []string, ctx visibility.Context) bool {
					return answerEquals(ctx, match[1], match[2])
				},
			},
		},
	}
}

// Eval resolves the rule against the pattern table. Unrecognised rules fail
// open and report the field visible.
func (e *Evaluator) Eval(_ schema.Field, rule string, ctx visibility.Context) bool {
	trimmed := strings.TrimSpace(rule)
	if trimmed == "" {
		return true
	}
	for _, p := range e.patterns {
		if match := p.re.FindStringSubmatch(trimmed); match != nil {
			return p.apply(match, ctx)
		}
	}
	return true
}

// answerEquals compares the committed answer for name to want, both
// case-insensitively. Field-name lookup is also case-insensitive because the
// rule text rarely matches the schema's exact casing.
func answerEquals(ctx visibility.Context, name, want string) bool {
	name = strings.TrimSpace(name)
	want = strings.TrimSpace(want)

	for key, value := range ctx.Answers {
		if !strings.EqualFold(key, name) {
			continue
		}
		answer, ok := value.(string)
		if !ok {
			return false
		}
		return strings.EqualFold(strings.TrimSpace(answer), want)
	}
	return false
}
