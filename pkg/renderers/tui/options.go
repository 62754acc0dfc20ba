package tui

import "github.com/goliatone/go-formflow/pkg/session"

// Theme captures optional message prefixes the runner applies when printing.
// Keep minimal to avoid coupling interview logic to ANSI specifics.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// Option configures the TUI runner.
type Option func(*Runner)

// WithPromptDriver overrides the prompt driver used by the runner.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Runner) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithExportFormat selects the serialization format for the completed
// interview.
func WithExportFormat(format session.ExportFormat) Option {
	return func(r *Runner) {
		if format != "" {
			r.format = format
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Runner) {
		r.theme = theme
	}
}

// WithPageSize caps the number of choice options shown at once.
func WithPageSize(size int) Option {
	return func(r *Runner) {
		if size > 0 {
			r.pageSize = size
		}
	}
}
