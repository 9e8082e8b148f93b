package pdfform

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf16"
)

// WriteFDF writes assignments as an FDF document referencing template
func WriteFDF(w io.Writer, template string, assignments []Assignment) error {
	bw := bufio.NewWriter(w)

	bw.WriteString("%FDF-1.2\n%\xe2\xe3\xcf\xd3\n")
	bw.WriteString("1 0 obj\n<< /FDF << ")
	if template != "" {
		fmt.Fprintf(bw, "/F %s ", pdfString(filepath.Base(template)))
	}
	bw.WriteString("/Fields [\n")
	for _, a := range assignments {
		fmt.Fprintf(bw, "<< /T %s /V %s >>\n", pdfString(a.Field), value(a))
	}
	bw.WriteString("] >> >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n")

	return bw.Flush()
}

// Export validates r, checks it against the template and writes the FDF to out.
// It returns the assignments skipped because the template lacks their field.
func Export(r Record, template, out string) (missing []string, err error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	names, err := TemplateFields(template)
	if err != nil {
		return nil, err
	}
	assignments, missing := Fill(r, names)

	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	f, err := os.Create(out)
	if err != nil {
		return nil, fmt.Errorf("create output: %w", err)
	}
	if err := WriteFDF(f, template, assignments); err != nil {
		f.Close()
		return nil, fmt.Errorf("write fdf: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("write fdf: %w", err)
	}
	return missing, nil
}

func value(a Assignment) string {
	if !a.Checkbox {
		return pdfString(a.Value)
	}
	if a.Checked {
		return "/Yes"
	}
	return "/Off"
}

// pdfString encodes s as a PDF string: a literal for ASCII text,
// otherwise UTF-16BE hex with a byte order mark.
func pdfString(s string) string {
	ascii := true
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			ascii = false
			break
		}
	}

	if ascii {
		r := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`, "\r", `\r`, "\n", `\n`)
		return "(" + r.Replace(s) + ")"
	}

	var b strings.Builder
	b.WriteString("<FEFF")
	for _, u := range utf16.Encode([]rune(s)) {
		fmt.Fprintf(&b, "%04X", u)
	}
	b.WriteString(">")
	return b.String()
}
