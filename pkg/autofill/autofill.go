// Package autofill maps a field's semantic name and type to a standardised
// autocomplete token that rendering surfaces can attach to their inputs.
package autofill

import (
	"strings"

	"github.com/goliatone/go-formflow/pkg/schema"
)

type mapping struct {
	keyword string
	token   string
}

// Matching is substring-based and first-match-wins, so more specific keywords
// must precede the shorter ones they contain ("zip code" before "zip",
// "email address" before "email").
var mappings = []mapping{
	{"full name", "name"},
	{"first name", "given-name"},
	{"last name", "family-name"},
	{"email address", "email"},
	{"email", "email"},
	{"phone number", "tel"},
	{"phone", "tel"},
	{"mobile", "tel"},
	{"cell", "tel"},
	{"street", "street-address"},
	{"address", "street-address"},
	{"city", "address-level2"},
	{"state", "address-level1"},
	{"province", "address-level1"},
	{"zip code", "postal-code"},
	{"postal code", "postal-code"},
	{"zip", "postal-code"},
	{"country", "country"},
	{"date of birth", "bday"},
	{"birthday", "bday"},
	{"dob", "bday"},
	{"social security number", "username"},
	{"ssn", "username"},
	{"username", "username"},
	{"password", "current-password"},
	{"card number", "cc-number"},
	{"credit card", "cc-number"},
	{"expiry", "cc-exp"},
	{"expiration", "cc-exp"},
	{"cvv", "cc-csc"},
	{"security code", "cc-csc"},
	{"name", "name"},
}

// Resolve returns the autocomplete token for a field name and type. It is a
// total function: when neither the name nor the type matches anything it
// returns the inert token "off".
func Resolve(fieldName string, fieldType schema.FieldType) string {
	lower := strings.ToLower(fieldName)
	for _, m := range mappings {
		if strings.Contains(lower, m.keyword) {
			return m.token
		}
	}

	switch fieldType {
	case schema.FieldTypeEmail:
		return "email"
	case schema.FieldTypePhone:
		return "tel"
	case schema.FieldTypeDate:
		return "bday"
	case schema.FieldTypeNumber:
		return "numeric"
	}

	return "off"
}
