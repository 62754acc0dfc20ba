// Package tui drives an interview session over a terminal, one question at a
// time: radio fields become single selects, checkbox fields multi-selects,
// and everything else a text input. Rejected answers keep the prompt on the
// same field until it validates or the user aborts.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-formflow/pkg/schema"
	"github.com/goliatone/go-formflow/pkg/session"
)

// Runner walks a session to completion through a PromptDriver and serializes
// the committed answers when the interview finishes.
type Runner struct {
	driver   PromptDriver
	format   session.ExportFormat
	theme    Theme
	pageSize int
}

// New constructs a runner with defaults (survey driver, JSON export).
func New(options ...Option) *Runner {
	r := &Runner{
		driver: newSurveyDriver(),
		format: session.ExportFormatJSON,
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// ContentType reports the MIME type Run's payload is serialized as.
func (r *Runner) ContentType() string {
	return r.format.ContentType()
}

// Run prompts through every visible field of the session and returns the
// exported answers. A rejected answer re-prompts the same field; optional
// fields can be skipped by submitting an empty response and confirming.
func (r *Runner) Run(ctx context.Context, sess *session.Session) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if sess == nil {
		return nil, errors.New("tui: session is required")
	}

	if title := sess.Form().Title; title != "" {
		if err := r.info(ctx, title); err != nil {
			return nil, err
		}
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		view, ok := sess.View(ctx)
		if !ok {
			break
		}
		event, err := r.step(ctx, sess, view)
		if err != nil {
			return nil, err
		}
		if err := r.report(ctx, event); err != nil {
			return nil, err
		}
	}

	return sess.Export(r.format)
}

func (r *Runner) step(ctx context.Context, sess *session.Session, view session.StepView) (session.Event, error) {
	field := view.Field
	switch field.Type {
	case schema.FieldTypeRadio:
		return r.stepRadio(ctx, sess, view)
	case schema.FieldTypeCheckbox:
		return r.stepCheckbox(ctx, sess, view)
	default:
		return r.stepText(ctx, sess, view)
	}
}

func (r *Runner) stepRadio(ctx context.Context, sess *session.Session, view session.StepView) (session.Event, error) {
	field := view.Field
	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      view.Question,
		Options:      field.OptionLabels(),
		DefaultIndex: -1,
		Help:         field.Description,
		PageSize:     r.pageSize,
	})
	if err != nil {
		return session.Event{}, err
	}

	values := field.OptionValues()
	value := ""
	if idx >= 0 && idx < len(values) {
		value = values[idx]
	}
	return sess.Submit(ctx, value), nil
}

func (r *Runner) stepCheckbox(ctx context.Context, sess *session.Session, view session.StepView) (session.Event, error) {
	field := view.Field
	indices, err := r.driver.MultiSelect(ctx, SelectConfig{
		Message:  view.Question,
		Options:  field.OptionLabels(),
		Help:     selectionHint(field),
		PageSize: r.pageSize,
	})
	if err != nil {
		return session.Event{}, err
	}

	values := field.OptionValues()
	selected := make([]string, 0, len(indices))
	for _, idx := range indices {
		if idx >= 0 && idx < len(values) {
			selected = append(selected, values[idx])
		}
	}

	if len(selected) == 0 && !field.Required && field.MinSel() == 0 {
		return r.offerSkip(ctx, sess)
	}
	return sess.Submit(ctx, selected), nil
}

func (r *Runner) stepText(ctx context.Context, sess *session.Session, view session.StepView) (session.Event, error) {
	field := view.Field
	input, err := r.driver.Input(ctx, InputConfig{
		Message: view.Question,
		Help:    field.Description,
	})
	if err != nil {
		return session.Event{}, err
	}

	if strings.TrimSpace(input) == "" && !field.Required {
		return r.offerSkip(ctx, sess)
	}
	return sess.Submit(ctx, input), nil
}

func (r *Runner) offerSkip(ctx context.Context, sess *session.Session) (session.Event, error) {
	skip, err := r.driver.Confirm(ctx, ConfirmConfig{
		Message: "Skip this optional field?",
		Default: true,
	})
	if err != nil {
		return session.Event{}, err
	}
	if skip {
		return sess.Skip(), nil
	}
	return session.Event{Kind: session.EventNotice, Notice: "Please provide an answer or skip this optional field."}, nil
}

func (r *Runner) report(ctx context.Context, event session.Event) error {
	switch event.Kind {
	case session.EventRejected:
		if event.Outcome != nil {
			if err := r.errorMsg(ctx, event.Outcome.Message); err != nil {
				return err
			}
			if event.Outcome.Example != "" {
				return r.info(ctx, "Example: "+event.Outcome.Example)
			}
		}
	case session.EventNotice:
		return r.info(ctx, event.Notice)
	}
	return nil
}

func (r *Runner) info(ctx context.Context, msg string) error {
	return r.driver.Info(ctx, r.theme.InfoPrefix+msg)
}

func (r *Runner) errorMsg(ctx context.Context, msg string) error {
	return r.driver.Info(ctx, r.theme.ErrorPrefix+msg)
}

func selectionHint(field schema.Field) string {
	return fmt.Sprintf("Select between %d and %d options.", field.MinSel(), field.MaxSel())
}
