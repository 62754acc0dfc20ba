package session

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// ExportFormat controls how committed answers are serialized for download.
type ExportFormat string

const (
	// ExportFormatJSON emits an indented application/json document.
	ExportFormatJSON ExportFormat = "json"
	// ExportFormatForm emits an application/x-www-form-urlencoded payload.
	ExportFormatForm ExportFormat = "form"
	// ExportFormatPretty emits a human-friendly text summary.
	ExportFormatPretty ExportFormat = "pretty"
)

// ContentType reports the MIME type matching the format.
func (f ExportFormat) ContentType() string {
	switch f {
	case ExportFormatForm:
		return "application/x-www-form-urlencoded"
	case ExportFormatPretty:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Export serializes the committed answer map. Fields appear in schema order;
// skipped and hidden fields are absent rather than empty.
func (s *Session) Export(format ExportFormat) ([]byte, error) {
	switch format {
	case ExportFormatForm:
		return []byte(s.exportForm()), nil
	case ExportFormatPretty:
		return []byte(s.exportPretty()), nil
	case ExportFormatJSON, "":
		return json.MarshalIndent(s.answers, "", "  ")
	default:
		return nil, fmt.Errorf("session: unsupported export format %q", format)
	}
}

func (s *Session) exportForm() string {
	values := url.Values{}
	for _, field := range s.form.Fields {
		answer, ok := s.answers[field.Name]
		if !ok {
			continue
		}
		switch v := answer.(type) {
		case []string:
			for _, item := range v {
				values.Add(field.Name+"[]", item)
			}
		default:
			values.Set(field.Name, fmt.Sprint(v))
		}
	}
	return values.Encode()
}

func (s *Session) exportPretty() string {
	var b strings.Builder
	for _, field := range s.form.Fields {
		answer, ok := s.answers[field.Name]
		if !ok {
			continue
		}
		switch v := answer.(type) {
		case []string:
			fmt.Fprintf(&b, "%s=%s\n", field.Name, strings.Join(v, ", "))
		default:
			fmt.Fprintf(&b, "%s=%v\n", field.Name, v)
		}
	}
	return b.String()
}
