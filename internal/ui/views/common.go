package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/crmdash/internal/ui/styles"
)

// Page identifies a top level screen
type Page string

const (
	PageLogin     Page = "login"
	PageDashboard Page = "dashboard"
	PageProducts  Page = "products"
	PageTasks     Page = "tasks"
	PageAnalytics Page = "analytics"
	PagePDF       Page = "pdf"
)

// Pages lists the screens reachable from the tab bar
var Pages = []Page{PageDashboard, PageProducts, PageTasks, PageAnalytics, PagePDF}

// Title returns the tab label of the page
func (p Page) Title() string {
	switch p {
	case PageDashboard:
		return "Dashboard"
	case PageProducts:
		return "Products"
	case PageTasks:
		return "Tasks"
	case PageAnalytics:
		return "Analytics"
	case PagePDF:
		return "PDF Form"
	}
	return "Login"
}

// Navigate asks the app to switch pages
type Navigate struct {
	Page Page
}

// LoggedIn is sent once a login round trip succeeds
type LoggedIn struct {
	Username string
}

// Capturer is implemented by views that can swallow global keys,
// for example while a text input has focus.
type Capturer interface {
	Capturing() bool
}

// clamp returns val clamped between minVal and maxVal
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// truncate shortens s to width cells, marking the cut with an ellipsis
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}

// money formats an amount with thousands separators
func money(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	whole, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := "$" + b.String() + "." + frac
	if neg {
		return "-" + out
	}
	return out
}

// renderHelp renders a one-line help bar from bindings
func renderHelp(s *styles.Styles, width int, bindings ...key.Binding) string {
	// At narrow widths, show hint to press ? for help
	if width > 0 && width < 50 {
		return s.Help.Render(s.HelpKey.Render("?") + " help")
	}
	var parts []string
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, s.HelpKey.Render(h.Key)+" "+h.Desc)
	}
	return s.Help.Render(strings.Join(parts, " • "))
}

// renderHelpPopup lists bindings in a bordered box centered in the content area
func renderHelpPopup(s *styles.Styles, width, height int, bindings ...key.Binding) string {
	items := []string{s.Title.Render("Keyboard Shortcuts"), ""}
	for _, b := range bindings {
		h := b.Help()
		items = append(items, fmt.Sprintf("%-8s %s", s.HelpKey.Render(h.Key), h.Desc))
	}
	items = append(items, "", s.TitleMuted.Render("Press any key to close"))

	centered := lipgloss.Place(styles.ContentWidth(width), height,
		lipgloss.Center, lipgloss.Center,
		s.FilterBar.Render(lipgloss.JoinVertical(lipgloss.Left, items...)),
	)
	return styles.CenterView(centered, width, height)
}

// renderConfirm renders a yes/no prompt
func renderConfirm(s *styles.Styles, width, height int, title, detail string) string {
	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Foreground(styles.Current.Error).Render(title),
		"",
		s.TitleMuted.Render(detail),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center,
			s.ButtonPrimary.Render(" Y - Yes "),
			"  ",
			s.Button.Render(" N - No "),
		),
	)

	centered := lipgloss.Place(styles.ContentWidth(width), height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
	return styles.CenterView(centered, width, height)
}

// renderBar draws a horizontal bar of value relative to maxValue
func renderBar(s *styles.Styles, value, maxValue float64, width int, color lipgloss.Color) string {
	if maxValue <= 0 || width <= 0 {
		return ""
	}
	n := int(value / maxValue * float64(width))
	if value > 0 && n == 0 {
		n = 1
	}
	return s.Bar.Foreground(color).Render(strings.Repeat("█", n)) +
		s.TitleMuted.Render(strings.Repeat("░", width-n))
}
