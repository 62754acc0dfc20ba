package validate

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-formflow/pkg/reasoning"
)

// noExample is the sentinel used when a reply omits its example line.
const noExample = "No example provided"

// Semantic validates a free-text value by delegating to the reasoning
// service. A transport failure or empty reply produces a hard failure
// outcome; the human resubmitting is the retry, nothing is retried here.
func Semantic(ctx context.Context, service reasoning.Service, value, rule, fieldName, description string) Outcome {
	if service == nil {
		return invalid("Validation failed", "Please try again")
	}

	prompt := ruleGuidedPrompt(value, rule, fieldName, description)
	if rule == "" {
		prompt = typeInferredPrompt(value, fieldName, description)
	}

	reply, err := service.Generate(ctx, prompt)
	if err != nil || strings.TrimSpace(reply) == "" {
		return invalid("Validation failed", "Please try again")
	}

	return ParseReply(reply)
}

// ParseReply interprets the service's two-line protocol: line 1 is `VALID` or
// `INVALID: <message>`, line 2 is `Example: <value>`. A reply that matches
// neither prefix is interpreted leniently: a line mentioning "valid" without
// "invalid" counts as valid, anything else is invalid with the raw line as
// the message.
func ParseReply(reply string) Outcome {
	lines := strings.Split(strings.TrimSpace(reply), "\n")
	verdict := strings.TrimSpace(lines[0])

	example := noExample
	if len(lines) > 1 {
		example = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(lines[1]), "Example:"))
		if example == "" {
			example = noExample
		}
	}

	switch {
	case strings.HasPrefix(verdict, "VALID"):
		return valid(example)
	case strings.HasPrefix(verdict, "INVALID:"):
		message := strings.TrimSpace(strings.TrimPrefix(verdict, "INVALID:"))
		return invalid(message, example)
	}

	lower := strings.ToLower(verdict)
	if strings.Contains(lower, "valid") && !strings.Contains(lower, "invalid") {
		return valid(example)
	}
	return invalid(verdict, example)
}

// responseFormat is the reply shape both prompt templates demand.
const responseFormat = `If the input is valid, respond with: VALID
If the input is invalid, respond with: INVALID: [error message explaining why]

Then, on a new line, provide an example of a valid input that would pass this validation rule.
Format your response as:

VALID
Example: [example of valid input]

or

INVALID: [error message]
Example: [example of valid input]

Be specific in your error message to help the user understand what's wrong.`

func ruleGuidedPrompt(value, rule, fieldName, description string) string {
	return fmt.Sprintf(`You are a validation expert. Your task is to validate input according to a specific rule.

Field: "%s"
Field Description: "%s"
Validation Rule: "%s"
Input to Validate: "%s"

IMPORTANT: The validation rule provided above takes precedence over any general validation rules.
Your task is to validate the input against THIS SPECIFIC RULE ONLY.

%s`, fieldName, description, rule, value, responseFormat)
}

func typeInferredPrompt(value, fieldName, description string) string {
	return fmt.Sprintf(`You are a validation expert. Your task is to validate input based on the field type.

Field: "%s"
Field Description: "%s"
Input to Validate: "%s"

Analyze the field name and description to determine the appropriate validation rules.
For example:
- If the field is about SSN, validate it as a social security number
- If the field is about dates, validate it as a date
- If the field is about email, validate it as an email address
- If the field is about phone numbers, validate it as a phone number

%s`, fieldName, description, value, responseFormat)
}
