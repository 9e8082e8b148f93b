package pdfform

import (
	"fmt"
	"strings"
)

// Record is the flat form data keyed by Field.Key
type Record map[string]string

// NewRecord returns a record with every key present and blank
func NewRecord() Record {
	r := make(Record, len(Fields))
	for _, f := range Fields {
		r[f.Key] = ""
	}
	return r
}

// ValidationError lists the required fields left blank
type ValidationError struct {
	Missing []Field
}

func (e *ValidationError) Error() string {
	names := make([]string, len(e.Missing))
	for i, f := range e.Missing {
		names[i] = describe(f)
	}
	return fmt.Sprintf("required fields missing: %s", strings.Join(names, ", "))
}

// Validate returns a *ValidationError when a required field is blank
func (r Record) Validate() error {
	var missing []Field
	for _, f := range Fields {
		if f.Required && strings.TrimSpace(r[f.Key]) == "" {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

func describe(f Field) string {
	switch f.Section {
	case SectionAgentA, SectionAgentB:
		return fmt.Sprintf("%s (%s)", f.Label, f.Section)
	}
	return f.Label
}

// Assignment is a single value written to a template field
type Assignment struct {
	Field    string
	Value    string // text fields
	Checkbox bool
	Checked  bool
}

// Assignments expands r into template assignments in field table order.
// Footer and signature fields are always included, blank.
func (r Record) Assignments() []Assignment {
	out := make([]Assignment, 0, len(Fields)+len(clearedFields)+1)
	for _, f := range Fields {
		v := strings.TrimSpace(r[f.Key])
		switch f.Kind {
		case Text:
			out = append(out, Assignment{Field: f.Name, Value: v})
		case Checkbox:
			out = append(out, Assignment{Field: f.Name, Checkbox: true, Checked: truthy(v)})
		case YesNo:
			v = strings.ToLower(v)
			out = append(out,
				Assignment{Field: f.Name, Checkbox: true, Checked: v == "yes"},
				Assignment{Field: f.NoName, Checkbox: true, Checked: v == "no"},
			)
		}
	}
	for _, name := range clearedFields {
		out = append(out, Assignment{Field: name})
	}
	return out
}

func truthy(v string) bool {
	switch strings.ToLower(v) {
	case "true", "yes", "on", "1", "x":
		return true
	}
	return false
}
