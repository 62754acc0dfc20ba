package phrase

import (
	"testing"

	"github.com/goliatone/go-formflow/pkg/schema"
	"github.com/goliatone/go-formflow/pkg/visibility"
)

func TestEvalPreviousAnswerPattern(t *testing.T) {
	t.Parallel()

	eval := New()
	field := schema.Field{Name: "SSN"}

	ok := eval.Eval(field, "previous answer to US Citizen is yes", visibility.Context{
		Answers: map[string]any{"US Citizen": "yes"},
	})
	if !ok {
		t.Fatalf("expected visible when answer matches")
	}

	ok = eval.Eval(field, "previous answer to US Citizen is yes", visibility.Context{
		Answers: map[string]any{"US Citizen": "no"},
	})
	if ok {
		t.Fatalf("expected hidden when answer differs")
	}
}

func TestEvalIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	eval := New()
	field := schema.Field{Name: "SSN"}

	ok := eval.Eval(field, "Previous Answer To us citizen IS YES", visibility.Context{
		Answers: map[string]any{"US Citizen": "Yes"},
	})
	if !ok {
		t.Fatalf("expected case-insensitive match on rule, field name, and value")
	}
}

func TestEvalMissingAnswerHidesField(t *testing.T) {
	t.Parallel()

	eval := New()
	ok := eval.Eval(schema.Field{Name: "SSN"}, "previous answer to US Citizen is yes", visibility.Context{
		Answers: map[string]any{},
	})
	if ok {
		t.Fatalf("expected hidden when the referenced answer is absent")
	}
}

func TestEvalUnrecognisedRuleFailsOpen(t *testing.T) {
	t.Parallel()

	eval := New()
	ok := eval.Eval(schema.Field{Name: "X"}, "only on alternate tuesdays", visibility.Context{})
	if !ok {
		t.Fatalf("unrecognised rules must leave the field visible")
	}
}

func TestVisibleFilterIsDeterministic(t *testing.T) {
	t.Parallel()

	fields := []schema.Field{
		{Name: "Email", Type: schema.FieldTypeEmail},
		{Name: "US Citizen", Type: schema.FieldTypeRadio},
		{Name: "SSN", Type: schema.FieldTypeText, VisibilityRule: "previous answer to US Citizen is yes"},
	}
	ctx := visibility.Context{Answers: map[string]any{"US Citizen": "no"}}
	eval := New()

	first := visibility.Visible(fields, eval, ctx)
	second := visibility.Visible(fields, eval, ctx)

	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("expected 2 visible fields, got %d then %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Name != second[i].Name {
			t.Fatalf("visible subsequence not deterministic at %d", i)
		}
	}
	if len(first) > len(fields) {
		t.Fatalf("visible subsequence longer than schema")
	}
}
