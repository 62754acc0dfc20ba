package openapi_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formflow/pkg/openapi"
	"github.com/goliatone/go-formflow/pkg/schema"
)

const signupDocument = `{
  "openapi": "3.0.3",
  "info": {"title": "Accounts", "version": "1.0.0"},
  "paths": {
    "/signup": {
      "post": {
        "operationId": "createAccount",
        "summary": "Create Account",
        "description": "Sign up for a new account.",
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["email", "plan"],
                "properties": {
                  "email": {
                    "type": "string",
                    "format": "email",
                    "description": "Address used for login."
                  },
                  "plan": {
                    "type": "string",
                    "enum": ["free", "pro", "team"]
                  },
                  "topics": {
                    "type": "array",
                    "minItems": 1,
                    "maxItems": 2,
                    "items": {"type": "string", "enum": ["news", "releases", "events"]}
                  },
                  "referral": {
                    "type": "string",
                    "x-validation": "must be an existing customer handle",
                    "x-visibility": "previous answer to plan is pro"
                  },
                  "seats": {"type": "integer"},
                  "newsletter": {"type": "boolean"}
                }
              }
            }
          }
        },
        "responses": {"201": {"description": "created"}}
      }
    }
  }
}`

func mustField(t *testing.T, form *schema.Form, name string) schema.Field {
	t.Helper()
	field, ok := form.FieldNamed(name)
	if !ok {
		t.Fatalf("field %q not found", name)
	}
	return field
}

func TestImport(t *testing.T) {
	t.Parallel()

	form, err := openapi.Import(context.Background(), []byte(signupDocument), "createAccount")
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	if form.Title != "Create Account" {
		t.Errorf("Title = %q, want %q", form.Title, "Create Account")
	}
	if form.Description != "Sign up for a new account." {
		t.Errorf("Description = %q, want %q", form.Description, "Sign up for a new account.")
	}

	var names []string
	for _, field := range form.Fields {
		names = append(names, field.Name)
	}
	wantOrder := []string{"email", "plan", "newsletter", "referral", "seats", "topics"}
	if diff := cmp.Diff(wantOrder, names); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}

	email := mustField(t, form, "email")
	if email.Type != schema.FieldTypeEmail || !email.Required {
		t.Errorf("email field = %+v, want required email", email)
	}
	if email.Description != "Address used for login." {
		t.Errorf("email description = %q", email.Description)
	}

	plan := mustField(t, form, "plan")
	if plan.Type != schema.FieldTypeRadio {
		t.Errorf("plan type = %q, want radio", plan.Type)
	}
	if got := plan.OptionValues(); len(got) != 3 || got[0] != "free" {
		t.Errorf("plan options = %v", got)
	}

	topics := mustField(t, form, "topics")
	if topics.Type != schema.FieldTypeCheckbox {
		t.Fatalf("topics type = %q, want checkbox", topics.Type)
	}
	if got := topics.MinSel(); got != 1 {
		t.Errorf("topics min selections = %d, want 1", got)
	}
	if got := topics.MaxSel(); got != 2 {
		t.Errorf("topics max selections = %d, want 2", got)
	}

	referral := mustField(t, form, "referral")
	if referral.ValidationRule != "must be an existing customer handle" {
		t.Errorf("referral validation rule = %q", referral.ValidationRule)
	}
	if referral.VisibilityRule != "previous answer to plan is pro" {
		t.Errorf("referral visibility rule = %q", referral.VisibilityRule)
	}

	if got := mustField(t, form, "seats").Type; got != schema.FieldTypeNumber {
		t.Errorf("seats type = %q, want number", got)
	}

	newsletter := mustField(t, form, "newsletter")
	if newsletter.Type != schema.FieldTypeRadio {
		t.Fatalf("newsletter type = %q, want radio", newsletter.Type)
	}
	if got := newsletter.OptionValues(); len(got) != 2 || got[0] != "yes" || got[1] != "no" {
		t.Errorf("newsletter options = %v", got)
	}
}

func TestImportErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		document    string
		operationID string
	}{
		{name: "empty document", document: "", operationID: "createAccount"},
		{name: "unknown operation", document: signupDocument, operationID: "deleteAccount"},
		{
			name:        "no request body",
			operationID: "ping",
			document: `{
  "openapi": "3.0.3",
  "info": {"title": "t", "version": "1"},
  "paths": {"/ping": {"get": {"operationId": "ping", "responses": {"200": {"description": "ok"}}}}}
}`,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if _, err := openapi.Import(context.Background(), []byte(tc.document), tc.operationID); err == nil {
				t.Fatalf("Import() expected error")
			}
		})
	}
}
