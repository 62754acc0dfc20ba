package session

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/goliatone/go-formflow/pkg/reasoning"
	"github.com/goliatone/go-formflow/pkg/schema"
)

// scriptedService answers validation prompts by matching the value under
// test and question prompts with a canned line.
type scriptedService struct {
	validValues map[string]bool
	calls       int
}

func (s *scriptedService) Generate(_ context.Context, prompt string) (string, error) {
	s.calls++
	if strings.Contains(prompt, "Generate a friendly, conversational question") {
		return "Scripted question", nil
	}
	for value, ok := range s.validValues {
		if strings.Contains(prompt, `Input to Validate: "`+value+`"`) {
			if ok {
				return "VALID\nExample: " + value, nil
			}
			return "INVALID: that does not look right\nExample: something-else", nil
		}
	}
	return "INVALID: unscripted value\nExample: n/a", nil
}

func mustForm(t *testing.T, doc string) *schema.Form {
	t.Helper()
	form, err := schema.Parse([]byte(doc))
	if err != nil {
		t.Fatalf("parse form: %v", err)
	}
	return form
}

const citizenshipForm = `{
	"fields": [
		{"name": "Email", "type": "email", "required": true},
		{"name": "US Citizen", "type": "radio", "required": true,
			"options": [{"label": "Yes", "value": "yes"}, {"label": "No", "value": "no"}]},
		{"name": "SSN", "type": "text", "required": true,
			"visibility": "previous answer to US Citizen is yes"}
	]
}`

func TestEndToEndVisibilityShortensInterview(t *testing.T) {
	t.Parallel()

	svc := &scriptedService{validValues: map[string]bool{
		"not-an-email": false,
		"a@b.com":      true,
	}}
	s := New(mustForm(t, citizenshipForm), WithService(svc))

	// Invalid email keeps position 0 with a non-empty error.
	event := s.Submit(context.Background(), "not-an-email")
	if event.Kind != EventRejected {
		t.Fatalf("kind = %s", event.Kind)
	}
	if event.Outcome == nil || event.Outcome.Message == "" {
		t.Fatalf("rejection must carry an error message")
	}
	if field, _ := s.Current(); field.Name != "Email" {
		t.Fatalf("position moved after rejection")
	}

	// Valid email advances to the citizenship question.
	if event := s.Submit(context.Background(), "a@b.com"); event.Kind != EventAdvanced {
		t.Fatalf("kind = %s", event.Kind)
	}
	if field, _ := s.Current(); field.Name != "US Citizen" {
		t.Fatalf("expected US Citizen, at %q", fieldName(s))
	}

	// Answering "no" hides SSN; the visible sequence shrinks to 2 and the
	// interview is complete.
	if event := s.Submit(context.Background(), "no"); event.Kind != EventAdvanced {
		t.Fatalf("kind = %s", event.Kind)
	}
	if !s.Complete() {
		t.Fatalf("expected completion, visible = %d position = %d", len(s.Visible()), s.position)
	}
	if len(s.Visible()) != 2 {
		t.Fatalf("visible = %d, want 2", len(s.Visible()))
	}

	want := map[string]any{"Email": "a@b.com", "US Citizen": "no"}
	if diff := cmp.Diff(want, s.Answers()); diff != "" {
		t.Fatalf("answers mismatch (-want +got):\n%s", diff)
	}
}

func TestAnsweringYesRevealsSSN(t *testing.T) {
	t.Parallel()

	svc := &scriptedService{validValues: map[string]bool{"a@b.com": true}}
	s := New(mustForm(t, citizenshipForm), WithService(svc))

	s.Submit(context.Background(), "a@b.com")
	s.Submit(context.Background(), "yes")

	if s.Complete() {
		t.Fatalf("interview must continue to SSN")
	}
	if field, _ := s.Current(); field.Name != "SSN" {
		t.Fatalf("expected SSN, at %q", fieldName(s))
	}
	if len(s.Visible()) != 3 {
		t.Fatalf("visible = %d, want 3", len(s.Visible()))
	}
}

func TestEmptyRequiredSubmitRaisesNoticeWithoutAttempt(t *testing.T) {
	t.Parallel()

	s := New(mustForm(t, citizenshipForm))

	event := s.Submit(context.Background(), "   ")
	if event.Kind != EventNotice || !strings.Contains(event.Notice, "required") {
		t.Fatalf("event = %+v", event)
	}
	if _, ok := s.Attempts("Email"); ok {
		t.Fatalf("empty submission must not increment attempts")
	}
	if field, _ := s.Current(); field.Name != "Email" {
		t.Fatalf("position moved")
	}
}

func TestEmptyOptionalSubmitRaisesSkipNotice(t *testing.T) {
	t.Parallel()

	form := mustForm(t, `{"fields": [{"name": "Nickname", "type": "text"}]}`)
	s := New(form)

	event := s.Submit(context.Background(), "")
	if event.Kind != EventNotice || !strings.Contains(event.Notice, "skip") {
		t.Fatalf("event = %+v", event)
	}
	if _, ok := s.Attempts("Nickname"); ok {
		t.Fatalf("empty submission must not increment attempts")
	}
}

func TestSkipRequiredFieldIsRefused(t *testing.T) {
	t.Parallel()

	s := New(mustForm(t, citizenshipForm))

	event := s.Skip()
	if event.Kind != EventNotice || !strings.Contains(event.Notice, "cannot be skipped") {
		t.Fatalf("event = %+v", event)
	}
	if field, _ := s.Current(); field.Name != "Email" {
		t.Fatalf("skip on required field must not advance")
	}
	if len(s.Answers()) != 0 {
		t.Fatalf("skip must not mutate answers")
	}
}

func TestSkipOptionalFieldLeavesAnswerAbsent(t *testing.T) {
	t.Parallel()

	form := mustForm(t, `{"fields": [
		{"name": "Nickname", "type": "text"},
		{"name": "City", "type": "text", "required": true}
	]}`)
	svc := &scriptedService{validValues: map[string]bool{"Lisbon": true}}
	s := New(form, WithService(svc))

	if event := s.Skip(); event.Kind != EventAdvanced {
		t.Fatalf("event = %+v", event)
	}
	s.Submit(context.Background(), "Lisbon")

	answers := s.Answers()
	if _, present := answers["Nickname"]; present {
		t.Fatalf("skipped field must be absent, not empty")
	}
	if answers["City"] != "Lisbon" {
		t.Fatalf("answers = %v", answers)
	}
}

func TestAttemptRecordTracksCountAndLastOutcome(t *testing.T) {
	t.Parallel()

	svc := &scriptedService{validValues: map[string]bool{
		"bad":     false,
		"a@b.com": true,
	}}
	s := New(mustForm(t, citizenshipForm), WithService(svc))

	s.Submit(context.Background(), "bad")
	s.Submit(context.Background(), "bad")
	s.Submit(context.Background(), "a@b.com")

	record, ok := s.Attempts("Email")
	if !ok {
		t.Fatalf("missing attempt record")
	}
	if record.Count != 3 {
		t.Fatalf("count = %d, want 3", record.Count)
	}
	if !record.Last.Valid {
		t.Fatalf("last outcome should be the successful one")
	}
}

func TestRestartResetsStateButKeepsQuestions(t *testing.T) {
	t.Parallel()

	svc := &scriptedService{validValues: map[string]bool{"a@b.com": true}}
	s := New(mustForm(t, citizenshipForm), WithService(svc))

	// Generate and cache the first question, then make some progress.
	view, _ := s.View(context.Background())
	if view.Question != "Scripted question" {
		t.Fatalf("question = %q", view.Question)
	}
	questionCalls := svc.calls
	s.Submit(context.Background(), "a@b.com")

	s.Restart()

	if s.position != 0 || len(s.Answers()) != 0 {
		t.Fatalf("restart must reset position and answers")
	}
	if _, ok := s.Attempts("Email"); ok {
		t.Fatalf("restart must clear attempt records")
	}

	// The cached question is reused without a fresh generation call.
	view, _ = s.View(context.Background())
	if view.Question != "Scripted question" {
		t.Fatalf("question = %q", view.Question)
	}
	if svc.calls != questionCalls+1 {
		// one extra call is the Submit validation above; none for questions
		t.Fatalf("calls = %d, want %d", svc.calls, questionCalls+1)
	}
}

func TestViewCarriesAutofillAndProgress(t *testing.T) {
	t.Parallel()

	s := New(mustForm(t, citizenshipForm))

	view, ok := s.View(context.Background())
	if !ok {
		t.Fatalf("expected an active step")
	}
	if view.AutofillToken != "email" {
		t.Fatalf("autofill = %q", view.AutofillToken)
	}
	if view.Progress != 0 {
		t.Fatalf("progress = %v", view.Progress)
	}
	if view.Total != 2 {
		// SSN is hidden until citizenship is answered yes
		t.Fatalf("total = %d, want 2", view.Total)
	}
}

func TestManagerIsolatesSessions(t *testing.T) {
	t.Parallel()

	form := mustForm(t, citizenshipForm)
	manager := NewManager(WithService(reasoning.Disabled()))

	a := manager.Open(form)
	b := manager.Open(form)
	if a.ID() == b.ID() {
		t.Fatalf("sessions must have distinct identifiers")
	}

	got, err := manager.Get(a.ID())
	if err != nil || got != a {
		t.Fatalf("Get(%q) = %v, %v", a.ID(), got, err)
	}

	manager.Close(a.ID())
	if _, err := manager.Get(a.ID()); err == nil {
		t.Fatalf("closed session must be forgotten")
	}
	if manager.Len() != 1 {
		t.Fatalf("len = %d", manager.Len())
	}
}

func fieldName(s *Session) string {
	field, ok := s.Current()
	if !ok {
		return "<complete>"
	}
	return field.Name
}
