package views

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/crmdash/internal/models"
	"github.com/tgienger/crmdash/internal/pdfform"
	"github.com/tgienger/crmdash/internal/ui/keys"
	"github.com/tgienger/crmdash/internal/ui/styles"
)

const choiceUnset = "-"

// PDFView fills the agent-to-agent agreement and exports it for the PDF template
type PDFView struct {
	styles   *styles.Styles
	keys     keys.KeyMap
	template string
	output   string
	now      func() time.Time

	width  int
	height int

	form    *form
	editing bool

	exporting bool
	exported  string   // path of the last export
	skipped   []string // template fields the last export could not fill
	err       string
	invalid   map[string]bool // record keys left blank on the last export

	scrollY         int
	confirmingClear bool
	showHelpPopup   bool
}

type pdfExportedMsg struct {
	out     string
	skipped []string
	err     error
}

// NewPDFView creates the form page writing FDF for template into output
func NewPDFView(template, output string) *PDFView {
	fields := make([]*formField, len(pdfform.Fields))
	for i, f := range pdfform.Fields {
		var fld *formField
		switch f.Kind {
		case pdfform.Checkbox:
			fld = newChoiceField(f.Label, []string{"no", "yes"})
		case pdfform.YesNo:
			fld = newChoiceField(f.Label, []string{choiceUnset, "yes", "no"})
		default:
			fld = newTextField(f.Label, f.Label, 200)
		}
		fld.section = f.Section
		fld.required = f.Required
		fields[i] = fld
	}

	v := &PDFView{
		styles:   styles.NewStyles(),
		keys:     keys.DefaultKeyMap(),
		template: template,
		output:   output,
		now:      time.Now,
		form:     newForm("Agent to Agent Agreement", "Export", fields...),
	}
	v.clear()
	return v
}

// clear blanks the form and stamps today's date
func (v *PDFView) clear() {
	v.form.reset()
	v.form.set(0, v.now().Format(models.DateLayout))
	v.err = ""
	v.invalid = nil
}

// Record returns the form contents keyed by field
func (v *PDFView) Record() pdfform.Record {
	r := pdfform.NewRecord()
	for i, f := range pdfform.Fields {
		val := v.form.value(i)
		if val == choiceUnset {
			val = ""
		}
		r[f.Key] = val
	}
	return r
}

func (v *PDFView) Init() tea.Cmd {
	return nil
}

// Capturing reports whether the form owns the keyboard
func (v *PDFView) Capturing() bool {
	return v.editing || v.confirmingClear
}

func (v *PDFView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case pdfExportedMsg:
		v.exporting = false
		v.skipped = msg.skipped
		if msg.err != nil {
			v.err = msg.err.Error()
			v.exported = ""
			return v, nil
		}
		v.err = ""
		v.exported = msg.out
		return v, nil

	case tea.KeyMsg:
		if v.showHelpPopup {
			v.showHelpPopup = false
			return v, nil
		}
		if v.confirmingClear {
			switch msg.String() {
			case "y", "Y":
				v.clear()
				v.exported = ""
				v.confirmingClear = false
			case "n", "N", "esc":
				v.confirmingClear = false
			}
			return v, nil
		}
		if v.editing {
			return v.updateEditing(msg)
		}

		switch {
		case key.Matches(msg, v.keys.Edit), key.Matches(msg, v.keys.Enter):
			v.editing = true
			v.form.focusField(v.form.focus)
			return v, textinput.Blink
		case key.Matches(msg, v.keys.Export):
			return v, v.export()
		case key.Matches(msg, v.keys.Up):
			v.scrollY = max(v.scrollY-1, 0)
		case key.Matches(msg, v.keys.Down):
			v.scrollY++
		case key.Matches(msg, v.keys.Delete):
			v.confirmingClear = true
		case key.Matches(msg, v.keys.Help):
			v.showHelpPopup = true
		}
	}
	return v, nil
}

func (v *PDFView) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Cancel):
		v.editing = false
		return v, nil
	case key.Matches(msg, v.keys.Export):
		return v, v.export()
	}

	submitted, cmd := v.form.update(msg)
	if submitted {
		return v, v.export()
	}
	return v, cmd
}

// export validates the record and writes the FDF off the update loop
func (v *PDFView) export() tea.Cmd {
	if v.exporting {
		return nil
	}

	r := v.Record()
	v.invalid = nil
	if err := r.Validate(); err != nil {
		v.err = err.Error()
		var verr *pdfform.ValidationError
		if errors.As(err, &verr) {
			v.invalid = make(map[string]bool, len(verr.Missing))
			for _, f := range verr.Missing {
				v.invalid[f.Key] = true
			}
			v.focusKey(verr.Missing[0].Key)
		}
		return nil
	}

	v.err = ""
	v.editing = false
	v.exporting = true
	template, out := v.template, v.output
	return func() tea.Msg {
		skipped, err := pdfform.Export(r, template, out)
		return pdfExportedMsg{out: out, skipped: skipped, err: err}
	}
}

func (v *PDFView) focusKey(k string) {
	for i, f := range pdfform.Fields {
		if f.Key == k {
			v.form.focusField(i)
			return
		}
	}
}

// View renders the view
func (v *PDFView) View() string {
	s := v.styles
	if v.showHelpPopup {
		return renderHelpPopup(s, v.width, v.height,
			v.keys.Edit, v.keys.Export,
			key.NewBinding(key.WithHelp("d", "clear form")),
			v.keys.Save, v.keys.Cancel)
	}
	if v.confirmingClear {
		return renderConfirm(s, v.width, v.height, "Clear Form?", "Every field will be blanked.")
	}

	contentWidth := styles.ContentWidth(v.width)
	if v.editing {
		v.form.err = v.err
		centered := lipgloss.Place(contentWidth, v.height,
			lipgloss.Center, lipgloss.Center,
			v.form.view(s, contentWidth, v.height),
		)
		return styles.CenterView(centered, v.width, v.height)
	}

	var rows []string
	rows = append(rows, s.Title.Render("Agent to Agent Agreement"),
		s.TitleMuted.Render("Template: "+v.template))

	switch {
	case v.exporting:
		rows = append(rows, s.TitleMuted.Render("Exporting..."))
	case v.err != "":
		rows = append(rows, s.Error.Render(v.err))
	case v.exported != "":
		rows = append(rows, s.Success.Render("Exported to "+v.exported))
		if len(v.skipped) > 0 {
			rows = append(rows, s.TitleMuted.Render(
				truncate("Not in template: "+strings.Join(v.skipped, ", "), contentWidth-4)))
		}
	}
	rows = append(rows, "")

	r := v.Record()
	section := ""
	var body []string
	for _, f := range pdfform.Fields {
		if f.Section != section {
			section = f.Section
			body = append(body, s.Title.Render(section))
		}
		val := r[f.Key]
		switch {
		case v.invalid[f.Key] && val == "":
			val = s.Error.Render("required")
		case val == "":
			val = s.TitleMuted.Render("-")
		}
		body = append(body, fmt.Sprintf("  %s%s", s.Label.Width(32).Render(f.Label), truncate(val, contentWidth-36)))
	}

	visible := max(v.height-len(rows)-4, 3)
	v.scrollY = clamp(v.scrollY, 0, max(len(body)-visible, 0))
	body = body[v.scrollY:min(len(body), v.scrollY+visible)]
	rows = append(rows, body...)
	rows = append(rows, renderHelp(s, contentWidth, v.keys.Edit, v.keys.Export, v.keys.Help))

	return styles.CenterView(lipgloss.JoinVertical(lipgloss.Left, rows...), v.width, v.height)
}
