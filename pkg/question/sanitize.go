package question

import (
	"html"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

// sanitize strips any markup the model sneaks into a generated question so
// it is safe to print on any surface. The strict policy escapes entities, so
// unescape afterwards to keep plain punctuation readable.
func sanitize(raw string) string {
	policyOnce.Do(func() {
		policy = bluemonday.StrictPolicy()
	})
	return html.UnescapeString(policy.Sanitize(raw))
}
