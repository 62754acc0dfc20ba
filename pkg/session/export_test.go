package session

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const exportForm = `{
	"fields": [
		{"name": "Email", "type": "email", "required": true},
		{"name": "Interests", "type": "checkbox", "min_selections": 1,
			"options": [{"label": "Go", "value": "go"}, {"label": "Rust", "value": "rust"}]}
	]
}`

func exportSession(t *testing.T) *Session {
	t.Helper()
	svc := &scriptedService{validValues: map[string]bool{"a@b.com": true}}
	s := New(mustForm(t, exportForm), WithService(svc))
	if event := s.Submit(context.Background(), "a@b.com"); event.Kind != EventAdvanced {
		t.Fatalf("email submit: %+v", event)
	}
	if event := s.Submit(context.Background(), []string{"go", "rust"}); event.Kind != EventAdvanced {
		t.Fatalf("checkbox submit: %+v", event)
	}
	if !s.Complete() {
		t.Fatalf("expected completion")
	}
	return s
}

func TestExportJSON(t *testing.T) {
	t.Parallel()

	s := exportSession(t)
	data, err := s.Export(ExportFormatJSON)
	if err != nil {
		t.Fatalf("Export returned error: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	want := map[string]any{
		"Email":     "a@b.com",
		"Interests": []any{"go", "rust"},
	}
	if diff := cmp.Diff(want, decoded); diff != "" {
		t.Fatalf("export mismatch (-want +got):\n%s", diff)
	}
}

func TestExportForm(t *testing.T) {
	t.Parallel()

	s := exportSession(t)
	data, err := s.Export(ExportFormatForm)
	if err != nil {
		t.Fatalf("Export returned error: %v", err)
	}
	got := string(data)
	want := "Email=a%40b.com&Interests%5B%5D=go&Interests%5B%5D=rust"
	if got != want {
		t.Fatalf("form export = %q, want %q", got, want)
	}
}

func TestExportPretty(t *testing.T) {
	t.Parallel()

	s := exportSession(t)
	data, err := s.Export(ExportFormatPretty)
	if err != nil {
		t.Fatalf("Export returned error: %v", err)
	}
	want := "Email=a@b.com\nInterests=go, rust\n"
	if string(data) != want {
		t.Fatalf("pretty export = %q, want %q", string(data), want)
	}
}

func TestExportUnknownFormat(t *testing.T) {
	t.Parallel()

	s := New(mustForm(t, exportForm))
	if _, err := s.Export("xml"); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestExportContentTypes(t *testing.T) {
	t.Parallel()

	cases := map[ExportFormat]string{
		ExportFormatJSON:   "application/json",
		ExportFormatForm:   "application/x-www-form-urlencoded",
		ExportFormatPretty: "text/plain",
	}
	for format, want := range cases {
		if got := format.ContentType(); got != want {
			t.Errorf("ContentType(%s) = %q, want %q", format, got, want)
		}
	}
}
