package pdfform

import (
	"errors"
	"fmt"
	"log"
	"os"

	"rsc.io/pdf"
)

// ErrNoForm is returned for a template without an AcroForm
var ErrNoForm = errors.New("template has no fillable form")

// TemplateFields lists the fully qualified field names of the template at path
func TemplateFields(path string) (names []string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open template: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat template: %w", err)
	}

	// rsc.io/pdf panics on some malformed input
	defer func() {
		if r := recover(); r != nil {
			names, err = nil, fmt.Errorf("read template: %v", r)
		}
	}()

	doc, err := pdf.NewReader(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("read template: %w", err)
	}

	fields := doc.Trailer().Key("Root").Key("AcroForm").Key("Fields")
	if fields.Kind() != pdf.Array {
		return nil, ErrNoForm
	}
	collectFields(fields, "", &names)
	return names, nil
}

// collectFields walks the field tree; terminal fields are those without
// named kids (kids without /T are widget annotations).
func collectFields(fields pdf.Value, parent string, names *[]string) {
	for i := 0; i < fields.Len(); i++ {
		field := fields.Index(i)
		name := parent
		if t := field.Key("T").Text(); t != "" {
			if name != "" {
				name += "."
			}
			name += t
		}

		kids := field.Key("Kids")
		if hasNamedKid(kids) {
			collectFields(kids, name, names)
			continue
		}
		if name != "" {
			*names = append(*names, name)
		}
	}
}

func hasNamedKid(kids pdf.Value) bool {
	if kids.Kind() != pdf.Array {
		return false
	}
	for i := 0; i < kids.Len(); i++ {
		if kids.Index(i).Key("T").Kind() == pdf.String {
			return true
		}
	}
	return false
}

// Fill expands r and drops the assignments whose field the template lacks.
// Missing fields are logged and returned; they are not an error.
func Fill(r Record, templateFields []string) (assignments []Assignment, missing []string) {
	present := make(map[string]bool, len(templateFields))
	for _, name := range templateFields {
		present[name] = true
	}

	for _, a := range r.Assignments() {
		if !present[a.Field] {
			log.Printf("pdfform: field %q not found in template", a.Field)
			missing = append(missing, a.Field)
			continue
		}
		assignments = append(assignments, a)
	}
	return assignments, missing
}
