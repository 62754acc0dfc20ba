// Package session owns the interview state machine: the current position in
// the visible-field sequence, the accumulated answers, and per-field attempt
// records. One Session serves one interview; nothing is shared across
// sessions and nothing survives a restart except the question cache.
package session

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/goliatone/go-formflow/pkg/autofill"
	"github.com/goliatone/go-formflow/pkg/question"
	"github.com/goliatone/go-formflow/pkg/reasoning"
	"github.com/goliatone/go-formflow/pkg/schema"
	"github.com/goliatone/go-formflow/pkg/validate"
	"github.com/goliatone/go-formflow/pkg/visibility"
	"github.com/goliatone/go-formflow/pkg/visibility/phrase"
)

// AttemptRecord tracks how often a field has been submitted and the most
// recent validation outcome.
type AttemptRecord struct {
	Count int
	Last  validate.Outcome
}

// EventKind classifies what a Submit or Skip produced.
type EventKind string

const (
	// EventAdvanced means the answer was committed and the position moved.
	EventAdvanced EventKind = "advanced"
	// EventRejected means validation failed; position unchanged.
	EventRejected EventKind = "rejected"
	// EventNotice means a user-input warning was raised (empty required
	// field, skip on a required field); no attempt was recorded.
	EventNotice EventKind = "notice"
	// EventComplete means the interview already finished; only Restart
	// leaves this state.
	EventComplete EventKind = "complete"
)

// Event is the observable result of one state-machine step.
type Event struct {
	Kind    EventKind
	Notice  string
	Outcome *validate.Outcome
}

// StepView is the per-step view model handed to rendering surfaces.
type StepView struct {
	Question      string
	Field         schema.Field
	AutofillToken string
	Attempts      int
	LastOutcome   *validate.Outcome
	Progress      float64
	Position      int
	Total         int
}

// Option configures a Session.
type Option func(*Session)

// WithService wires the reasoning service used for question generation and
// semantic validation.
func WithService(svc reasoning.Service) Option {
	return func(s *Session) {
		s.questions = question.NewCache(svc)
		s.validator = validate.NewDispatcher(svc)
	}
}

// WithEvaluator overrides the visibility evaluator.
func WithEvaluator(eval visibility.Evaluator) Option {
	return func(s *Session) {
		if eval != nil {
			s.evaluator = eval
		}
	}
}

// WithQuestionCache supplies a prepared question cache, for hosts that want
// to share generated prompts across sessions of the same form.
func WithQuestionCache(cache *question.Cache) Option {
	return func(s *Session) {
		if cache != nil {
			s.questions = cache
		}
	}
}

// Session drives one interview over an immutable form.
type Session struct {
	id        string
	form      *schema.Form
	evaluator visibility.Evaluator
	questions *question.Cache
	validator *validate.Dispatcher

	position int
	answers  map[string]any
	attempts map[string]*AttemptRecord
}

// New constructs a session positioned at the first visible field, with an
// empty answer map. Without options the session runs offline: questions and
// validations fall back to their deterministic defaults.
func New(form *schema.Form, options ...Option) *Session {
	s := &Session{
		id:        uuid.NewString(),
		form:      form,
		evaluator: phrase.New(),
		answers:   make(map[string]any),
		attempts:  make(map[string]*AttemptRecord),
	}
	WithService(reasoning.Disabled())(s)
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Form returns the immutable form this session walks.
func (s *Session) Form() *schema.Form { return s.form }

// Visible recomputes the visible-field subsequence from the current answers.
// It must be consulted fresh on every step: an earlier answer can change
// later visibility.
func (s *Session) Visible() []schema.Field {
	return visibility.Visible(s.form.Fields, s.evaluator, visibility.Context{Answers: s.answers})
}

// Complete reports whether the position has moved past the last visible
// field.
func (s *Session) Complete() bool {
	return s.position >= len(s.Visible())
}

// Current returns the field awaiting an answer. The second return is false
// when the interview is complete.
func (s *Session) Current() (schema.Field, bool) {
	visible := s.Visible()
	if s.position >= len(visible) {
		return schema.Field{}, false
	}
	return visible[s.position], true
}

// Progress reports the completed fraction of the visible sequence.
func (s *Session) Progress() float64 {
	total := len(s.Visible())
	if total == 0 {
		return 1
	}
	if s.position >= total {
		return 1
	}
	return float64(s.position) / float64(total)
}

// View assembles the step view model for the rendering surface. The second
// return is false when the interview is complete.
func (s *Session) View(ctx context.Context) (StepView, bool) {
	field, ok := s.Current()
	if !ok {
		return StepView{Progress: 1, Position: s.position, Total: len(s.Visible())}, false
	}

	view := StepView{
		Question:      s.questions.Question(ctx, field),
		Field:         field,
		AutofillToken: autofill.Resolve(field.Name, field.Type),
		Progress:      s.Progress(),
		Position:      s.position,
		Total:         len(s.Visible()),
	}
	if record, ok := s.attempts[field.Name]; ok {
		view.Attempts = record.Count
		last := record.Last
		view.LastOutcome = &last
	}
	return view, true
}

// Submit validates value against the current field. Empty submissions raise
// notices without touching the attempt record; everything else is dispatched
// to validation, recorded, and committed on success.
func (s *Session) Submit(ctx context.Context, value any) Event {
	field, ok := s.Current()
	if !ok {
		return Event{Kind: EventComplete}
	}

	if isEmpty(value) {
		if field.Required {
			return Event{Kind: EventNotice, Notice: "This field is required. Please provide an answer."}
		}
		return Event{Kind: EventNotice, Notice: "Please provide an answer or skip this optional field."}
	}

	outcome, committed := s.validator.Validate(ctx, field, value)

	record := s.attempts[field.Name]
	if record == nil {
		record = &AttemptRecord{}
		s.attempts[field.Name] = record
	}
	record.Count++
	record.Last = outcome

	if !outcome.Valid {
		return Event{Kind: EventRejected, Outcome: &outcome}
	}

	s.answers[field.Name] = committed
	s.position++
	return Event{Kind: EventAdvanced, Outcome: &outcome}
}

// Skip advances past an optional field without recording an answer; the
// field stays absent from the answer map rather than present-but-empty.
// Required fields cannot be skipped.
func (s *Session) Skip() Event {
	field, ok := s.Current()
	if !ok {
		return Event{Kind: EventComplete}
	}
	if field.Required {
		return Event{Kind: EventNotice, Notice: "This field is required and cannot be skipped."}
	}
	s.position++
	return Event{Kind: EventAdvanced}
}

// Restart resets position, answers, and attempt records. The question cache
// is deliberately retained: the prompts stay valid for the same form.
func (s *Session) Restart() {
	s.position = 0
	s.answers = make(map[string]any)
	s.attempts = make(map[string]*AttemptRecord)
}

// Answers returns a copy of the committed answer map.
func (s *Session) Answers() map[string]any {
	out := make(map[string]any, len(s.answers))
	for k, v := range s.answers {
		if list, ok := v.([]string); ok {
			out[k] = append([]string(nil), list...)
			continue
		}
		out[k] = v
	}
	return out
}

// Attempts returns the attempt record for a field name, if any.
func (s *Session) Attempts(name string) (AttemptRecord, bool) {
	record, ok := s.attempts[name]
	if !ok {
		return AttemptRecord{}, false
	}
	return *record, true
}

func isEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case []string:
		return len(v) == 0
	case []any:
		return len(v) == 0
	default:
		return false
	}
}
