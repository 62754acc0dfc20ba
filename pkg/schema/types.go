package schema

// FieldType is the closed enumeration of interview field kinds. Choice types
// (radio, checkbox) carry options; everything else is collected as free text
// and validated semantically.
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeEmail    FieldType = "email"
	FieldTypePhone    FieldType = "phone"
	FieldTypeDate     FieldType = "date"
	FieldTypeNumber   FieldType = "number"
	FieldTypeRadio    FieldType = "radio"
	FieldTypeCheckbox FieldType = "checkbox"
)

// Valid reports whether the type is one of the recognised kinds.
func (t FieldType) Valid() bool {
	switch t {
	case FieldTypeText, FieldTypeEmail, FieldTypePhone, FieldTypeDate,
		FieldTypeNumber, FieldTypeRadio, FieldTypeCheckbox:
		return true
	default:
		return false
	}
}

// Choice reports whether the type carries a closed option list.
func (t FieldType) Choice() bool {
	return t == FieldTypeRadio || t == FieldTypeCheckbox
}

// Option is a single selectable value for radio/checkbox fields.
type Option struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// Field models one question unit inside a form. Struct tags follow the wire
// format of uploaded form documents.
type Field struct {
	Name           string    `json:"name" yaml:"name"`
	Type           FieldType `json:"type" yaml:"type"`
	Required       bool      `json:"required" yaml:"required"`
	Description    string    `json:"description,omitempty" yaml:"description,omitempty"`
	ValidationRule string    `json:"validation,omitempty" yaml:"validation,omitempty"`
	VisibilityRule string    `json:"visibility,omitempty" yaml:"visibility,omitempty"`
	Options        []Option  `json:"options,omitempty" yaml:"options,omitempty"`

	// Selection bounds apply to checkbox fields only. MinSelections defaults
	// to 0 and MaxSelections to len(Options) when absent from the document.
	MinSelections *int `json:"min_selections,omitempty" yaml:"min_selections,omitempty"`
	MaxSelections *int `json:"max_selections,omitempty" yaml:"max_selections,omitempty"`
}

// OptionValues returns the ordered option values for choice fields.
func (f Field) OptionValues() []string {
	if len(f.Options) == 0 {
		return nil
	}
	out := make([]string, len(f.Options))
	for i, opt := range f.Options {
		out[i] = opt.Value
	}
	return out
}

// OptionLabels returns the ordered option labels for choice fields.
func (f Field) OptionLabels() []string {
	if len(f.Options) == 0 {
		return nil
	}
	out := make([]string, len(f.Options))
	for i, opt := range f.Options {
		out[i] = opt.Label
	}
	return out
}

// MinSel returns the effective minimum selection count for checkbox fields.
func (f Field) MinSel() int {
	if f.MinSelections == nil {
		return 0
	}
	return *f.MinSelections
}

// MaxSel returns the effective maximum selection count for checkbox fields.
func (f Field) MaxSel() int {
	if f.MaxSelections == nil {
		return len(f.Options)
	}
	return *f.MaxSelections
}

// Form is the immutable, ordered description an interview walks. Loaded once
// per session and never mutated afterwards.
type Form struct {
	Title       string  `json:"title,omitempty" yaml:"title,omitempty"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Fields      []Field `json:"fields" yaml:"fields"`
}

// FieldNamed returns the field with the given name, matching the uniqueness
// invariant enforced at parse time.
func (f *Form) FieldNamed(name string) (Field, bool) {
	for _, field := range f.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}
