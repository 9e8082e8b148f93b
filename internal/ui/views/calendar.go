package views

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/crmdash/internal/derive"
	"github.com/tgienger/crmdash/internal/models"
	"github.com/tgienger/crmdash/internal/ui/styles"
)

var weekdays = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

func (v *TasksView) goToToday() {
	v.selectDay(v.now())
}

// selectDay selects d and shows its month
func (v *TasksView) selectDay(d time.Time) {
	y, m, day := d.Date()
	v.selected = time.Date(y, m, day, 0, 0, 0, 0, d.Location())
	v.month = time.Date(y, m, 1, 0, 0, 0, 0, d.Location())
	v.dayCursor = 0
}

// shiftMonth moves n months from the shown one, keeping the selected day
// of month where the target month has it and the last day otherwise.
func (v *TasksView) shiftMonth(n int) {
	first := v.month.AddDate(0, n, 0)
	last := first.AddDate(0, 1, -1).Day()
	v.selectDay(first.AddDate(0, 0, min(v.selected.Day(), last)-1))
}

// dayTasks returns the visible tasks due on the selected day
func (v *TasksView) dayTasks() []models.Task {
	var out []models.Task
	for _, t := range v.visible {
		if !t.DueDate.IsZero() && models.SameDay(t.DueDate, v.selected) {
			out = append(out, t)
		}
	}
	return out
}

// updateCalendar handles calendar movement; it reports false for keys
// the shared task bindings should see.
func (v *TasksView) updateCalendar(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Left):
		v.selectDay(v.selected.AddDate(0, 0, -1))
	case key.Matches(msg, v.keys.Right):
		v.selectDay(v.selected.AddDate(0, 0, 1))
	case key.Matches(msg, v.keys.Up):
		v.selectDay(v.selected.AddDate(0, 0, -7))
	case key.Matches(msg, v.keys.Down):
		v.selectDay(v.selected.AddDate(0, 0, 7))
	case msg.String() == "[", msg.String() == "pgup":
		v.shiftMonth(-1)
	case msg.String() == "]", msg.String() == "pgdown":
		v.shiftMonth(1)
	case key.Matches(msg, v.keys.Today):
		v.goToToday()
	case key.Matches(msg, v.keys.Tab):
		if n := len(v.dayTasks()); n > 0 {
			v.dayCursor = (v.dayCursor + 1) % n
		}
	case key.Matches(msg, v.keys.New):
		v.startEdit(nil, v.selected)
		return true, textinput.Blink
	default:
		return false, nil
	}
	return true, nil
}

func (v *TasksView) renderCalendar() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)
	cellWidth := clamp(contentWidth/7-2, 4, 12)

	days := derive.CalendarMonth(v.month, v.now(), v.visible)

	header := make([]string, len(weekdays))
	for i, wd := range weekdays {
		header[i] = s.Label.Width(cellWidth + 2).Align(lipgloss.Center).Render(wd)
	}
	rows := []string{
		s.Title.Render(v.month.Format("January 2006")),
		lipgloss.JoinHorizontal(lipgloss.Top, header...),
	}

	for _, week := range derive.Weeks(days) {
		cells := make([]string, len(week))
		for i, d := range week {
			cells[i] = v.renderDay(d, cellWidth)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	rows = append(rows, "", v.renderDayTasks(contentWidth))
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (v *TasksView) renderDay(d derive.Day, width int) string {
	s := v.styles

	style := s.DayCell
	switch {
	case models.SameDay(d.Date, v.selected):
		style = s.DaySelect
	case d.Today:
		style = s.DayToday
	case !d.InMonth:
		style = s.DayOutside
	}

	label := fmt.Sprintf("%2d", d.Date.Day())
	if d.HasHighPriority() {
		label += lipgloss.NewStyle().Foreground(styles.PriorityColor(models.PriorityHigh)).Render(" !")
	}

	count := ""
	if n := len(d.Tasks); n > 0 {
		count = s.TitleMuted.Render(fmt.Sprintf("%d task", n))
		if n > 1 {
			count += s.TitleMuted.Render("s")
		}
	}
	return style.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, label, count))
}

func (v *TasksView) renderDayTasks(width int) string {
	s := v.styles
	title := s.Title.Render(v.selected.Format("Monday, January 2"))

	tasks := v.dayTasks()
	if len(tasks) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, title,
			s.TitleMuted.Render("Nothing due. Press 'n' to add a task on this day."))
	}

	rows := []string{title}
	for i, t := range tasks {
		line := s.PriorityBadge(t.Priority) + s.StatusBadge(t.Status) + truncate(t.Title, width-30)
		style := s.ListItem
		if i == v.dayCursor {
			style = s.ListSelected
		}
		rows = append(rows, style.Render(line))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
