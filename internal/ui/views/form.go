package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/crmdash/internal/ui/keys"
	"github.com/tgienger/crmdash/internal/ui/styles"
)

// formField is a text input or, when options is set, a cycling choice
type formField struct {
	label    string
	section  string
	input    textinput.Model
	options  []string
	choice   int
	required bool
}

func newTextField(label, placeholder string, limit int) *formField {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = limit
	in.Prompt = ""
	return &formField{label: label, input: in}
}

func newChoiceField(label string, options []string) *formField {
	return &formField{label: label, options: options}
}

func (f *formField) value() string {
	if f.options != nil {
		return f.options[f.choice]
	}
	return strings.TrimSpace(f.input.Value())
}

func (f *formField) set(v string) {
	if f.options == nil {
		f.input.SetValue(v)
		return
	}
	for i, o := range f.options {
		if o == v {
			f.choice = i
			return
		}
	}
	f.choice = 0
}

// form is a vertical list of fields followed by a submit button
type form struct {
	title  string
	submit string
	fields []*formField
	focus  int // len(fields) is the submit button
	err    string
	keys   keys.KeyMap
}

func newForm(title, submit string, fields ...*formField) *form {
	return &form{title: title, submit: submit, fields: fields, keys: keys.DefaultKeyMap()}
}

func (f *form) reset() {
	for _, fld := range f.fields {
		fld.input.Reset()
		fld.choice = 0
	}
	f.err = ""
	f.focusField(0)
}

func (f *form) value(i int) string { return f.fields[i].value() }

func (f *form) set(i int, v string) { f.fields[i].set(v) }

func (f *form) focusField(i int) {
	f.focus = clamp(i, 0, len(f.fields))
	for idx, fld := range f.fields {
		if idx == f.focus && fld.options == nil {
			fld.input.Focus()
		} else {
			fld.input.Blur()
		}
	}
}

// missing returns the label of the first blank required field
func (f *form) missing() string {
	for _, fld := range f.fields {
		if fld.required && fld.value() == "" {
			return fld.label
		}
	}
	return ""
}

// update handles a key press and reports whether the form was submitted
func (f *form) update(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, f.keys.Save):
		return true, nil

	case key.Matches(msg, f.keys.Tab), msg.String() == "down":
		f.focusField((f.focus + 1) % (len(f.fields) + 1))
		return false, textinput.Blink

	case msg.String() == "shift+tab", msg.String() == "up":
		f.focusField((f.focus + len(f.fields)) % (len(f.fields) + 1))
		return false, textinput.Blink

	case key.Matches(msg, f.keys.Enter):
		if f.focus == len(f.fields) {
			return true, nil
		}
		f.focusField(f.focus + 1)
		return false, textinput.Blink
	}

	if f.focus >= len(f.fields) {
		return false, nil
	}
	fld := f.fields[f.focus]
	if fld.options != nil {
		switch msg.String() {
		case "right", " ", "l":
			fld.choice = (fld.choice + 1) % len(fld.options)
		case "left", "h":
			fld.choice = (fld.choice + len(fld.options) - 1) % len(fld.options)
		}
		return false, nil
	}

	var cmd tea.Cmd
	fld.input, cmd = fld.input.Update(msg)
	return false, cmd
}

// view renders the fields that fit in height, keeping the focused one visible
func (f *form) view(s *styles.Styles, width, height int) string {
	labelWidth := 0
	for _, fld := range f.fields {
		labelWidth = max(labelWidth, lipgloss.Width(fld.label)+3)
	}
	inputWidth := clamp(width-labelWidth-6, 10, 50)

	var rows []string
	section := ""
	focusRow := 0
	for i, fld := range f.fields {
		if fld.section != "" && fld.section != section {
			section = fld.section
			rows = append(rows, s.Title.Render(section))
		}
		if i == f.focus {
			focusRow = len(rows)
		}
		rows = append(rows, f.renderField(s, fld, i == f.focus, labelWidth, inputWidth))
	}

	visible := max(height-8, 3)
	start := 0
	if len(rows) > visible {
		start = clamp(focusRow-visible/2, 0, len(rows)-visible)
		rows = rows[start : start+visible]
	}

	btnStyle := s.Button
	if f.focus == len(f.fields) {
		btnStyle = s.ButtonFocused
	}

	out := []string{s.Title.Render(f.title), ""}
	if f.err != "" {
		out = append(out, s.Error.Render(f.err), "")
	}
	out = append(out, rows...)
	out = append(out,
		"",
		btnStyle.Render(" "+f.submit+" "),
		"",
		s.TitleMuted.Render("Tab/↑↓: move • ←→/Space: choose • Ctrl+S: save • Esc: cancel"),
	)
	return lipgloss.JoinVertical(lipgloss.Left, out...)
}

func (f *form) renderField(s *styles.Styles, fld *formField, focused bool, labelWidth, inputWidth int) string {
	label := fld.label
	if fld.required {
		label += "*"
	}
	label = s.Label.Width(labelWidth).Render(label)

	var value string
	if fld.options != nil {
		value = fmt.Sprintf("‹ %s ›", fld.options[fld.choice])
	} else {
		fld.input.Width = inputWidth
		value = fld.input.View()
	}

	if focused {
		return s.ListSelected.Render("› " + label + value)
	}
	return s.ListItem.Render("  " + label + value)
}
