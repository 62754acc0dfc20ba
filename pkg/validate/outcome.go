// Package validate routes a submitted answer to the correct checker:
// structural validation for closed-choice fields, semantic validation via the
// reasoning service for everything else.
package validate

// Outcome is the result of validating one answer. A failed validation is a
// normal value, not an error: it always carries a user-facing message and an
// example of acceptable input.
type Outcome struct {
	Valid   bool
	Message string
	Example string
}

func valid(example string) Outcome {
	return Outcome{Valid: true, Example: example}
}

func invalid(message, example string) Outcome {
	return Outcome{Valid: false, Message: message, Example: example}
}
