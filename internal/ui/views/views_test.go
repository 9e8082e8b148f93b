package views

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tgienger/crmdash/internal/derive"
	"github.com/tgienger/crmdash/internal/models"
	"github.com/tgienger/crmdash/internal/store"
)

func press(m tea.Model, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "ctrl+s":
			msg = tea.KeyMsg{Type: tea.KeyCtrlS}
		case "ctrl+e":
			msg = tea.KeyMsg{Type: tea.KeyCtrlE}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		_, cmd = m.Update(msg)
	}
	return cmd
}

func newTestTasksView(now time.Time) *TasksView {
	v := NewTasksView(store.NewTaskStore(), TaskSettings{})
	v.now = func() time.Time { return now }
	v.goToToday()
	v.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return v
}

func TestNextFilter(t *testing.T) {
	values := []string{"high", "medium", "low"}
	got := []string{}
	cur := derive.Any
	for i := 0; i < 4; i++ {
		cur = nextFilter(cur, values)
		got = append(got, cur)
	}
	want := []string{"high", "medium", "low", derive.Any}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("cycle = %v, want %v", got, want)
		}
	}
}

func TestNewTasksViewDefaults(t *testing.T) {
	v := NewTasksView(store.NewTaskStore(), TaskSettings{Mode: "bogus", SortBy: "bogus"})
	got := v.Settings()
	if got.Mode != ModeGrid || got.SortBy != derive.SortDueDate || got.Descending {
		t.Errorf("settings = %+v", got)
	}
}

func TestCreateTaskFromForm(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.Local)
	v := newTestTasksView(now)

	press(v, "n")
	if !v.editing || !v.Capturing() {
		t.Fatal("expected the task form to open")
	}
	press(v, "Call Bob", "ctrl+s")

	if v.editing {
		t.Fatalf("form still open: %q", v.form.err)
	}
	tasks := v.tasks.Tasks()
	if len(tasks) != 1 {
		t.Fatalf("got %d tasks, want 1", len(tasks))
	}
	task := tasks[0]
	if task.Title != "Call Bob" || task.ID == "" {
		t.Errorf("task = %+v", task)
	}
	if !models.SameDay(task.DueDate, now) {
		t.Errorf("due = %v, want prefilled %v", task.DueDate, now)
	}
	if task.Priority != models.PriorityMedium || task.Status != models.StatusPending || task.Type != models.TypeFollowUp {
		t.Errorf("defaults = %s/%s/%s", task.Priority, task.Status, task.Type)
	}
	if task.RelatedTo != nil {
		t.Errorf("related = %+v, want nil", task.RelatedTo)
	}
	if !task.CreatedAt.Equal(now) {
		t.Errorf("created = %v, want %v", task.CreatedAt, now)
	}
}

func TestCreateTaskRequiresTitle(t *testing.T) {
	v := newTestTasksView(time.Date(2024, 3, 15, 10, 0, 0, 0, time.Local))
	press(v, "n", "ctrl+s")

	if !v.editing {
		t.Fatal("form closed without a title")
	}
	if !strings.Contains(v.form.err, "Title") {
		t.Errorf("err = %q", v.form.err)
	}
	if n := v.tasks.Len(); n != 0 {
		t.Errorf("got %d tasks, want 0", n)
	}
}

func TestStatusCycleAndDelete(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.Local)
	v := newTestTasksView(now)
	task := store.NewTask(models.Task{Title: "Demo", DueDate: now}, now.Add(-time.Hour))
	v.tasks.Add(task)
	v.refresh()

	press(v, "x")
	got, _ := v.tasks.Get(task.ID)
	if got.Status != models.StatusInProgress {
		t.Errorf("status = %s, want in-progress", got.Status)
	}
	if !got.UpdatedAt.Equal(now) || !got.CreatedAt.Equal(task.CreatedAt) {
		t.Errorf("timestamps = %v/%v", got.CreatedAt, got.UpdatedAt)
	}

	press(v, "d")
	if !v.confirmingDelete {
		t.Fatal("expected delete confirmation")
	}
	press(v, "n")
	if v.tasks.Len() != 1 {
		t.Fatal("declined delete removed the task")
	}
	press(v, "d", "y")
	if v.tasks.Len() != 0 {
		t.Error("confirmed delete kept the task")
	}
}

func TestViewAndSortChangesAreReported(t *testing.T) {
	v := newTestTasksView(time.Now())

	cmd := press(v, "v")
	if v.mode != ModeList {
		t.Fatalf("mode = %s, want list", v.mode)
	}
	msg, ok := cmd().(TaskSettingsChanged)
	if !ok || msg.Settings.Mode != ModeList {
		t.Errorf("msg = %#v", msg)
	}

	press(v, "S")
	if !v.Settings().Descending {
		t.Error("S should reverse the sort")
	}
	press(v, "s")
	if v.Settings().SortBy == derive.SortDueDate {
		t.Error("s should advance the sort field")
	}
}

func TestFilterKeysNarrowTasks(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.Local)
	v := newTestTasksView(now)
	v.tasks.Add(store.NewTask(models.Task{Title: "A", Priority: models.PriorityHigh}, now))
	v.tasks.Add(store.NewTask(models.Task{Title: "B", Priority: models.PriorityLow}, now))
	v.refresh()

	press(v, "f")
	if len(v.visible) != 1 || v.visible[0].Title != "A" {
		t.Fatalf("high filter shows %d tasks", len(v.visible))
	}
	press(v, "c")
	if len(v.visible) != 2 {
		t.Errorf("clear shows %d tasks, want 2", len(v.visible))
	}
}

func TestCalendarNavigation(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.Local)
	v := newTestTasksView(now)
	v.mode = ModeCalendar

	press(v, "right")
	if v.selected.Day() != 16 {
		t.Errorf("selected = %v, want Mar 16", v.selected)
	}
	press(v, "down")
	if v.selected.Day() != 23 {
		t.Errorf("selected = %v, want Mar 23", v.selected)
	}
	press(v, "]")
	if v.month.Month() != time.April || v.selected.Day() != 23 {
		t.Errorf("month = %v selected = %v, want April 23", v.month, v.selected)
	}
	press(v, "t")
	if !models.SameDay(v.selected, now) || v.month.Month() != time.March {
		t.Errorf("today jumped to %v", v.selected)
	}

	press(v, "n")
	if got := v.form.value(taskDueDate); got != "2024-03-15" {
		t.Errorf("due prefill = %q", got)
	}
}

func TestCalendarMonthStepClampsDay(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		key   string
		month time.Month
		day   int
	}{
		{"next from Jan 31", time.Date(2024, 1, 31, 9, 0, 0, 0, time.Local), "]", time.February, 29},
		{"previous from Mar 31", time.Date(2024, 3, 31, 9, 0, 0, 0, time.Local), "[", time.February, 29},
		{"previous from Jan 31 crosses the year", time.Date(2024, 1, 31, 9, 0, 0, 0, time.Local), "[", time.December, 31},
		{"next from Apr 30", time.Date(2023, 4, 30, 9, 0, 0, 0, time.Local), "]", time.May, 30},
		{"next from Jan 31 in a common year", time.Date(2023, 1, 31, 9, 0, 0, 0, time.Local), "]", time.February, 28},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newTestTasksView(tt.start)
			v.mode = ModeCalendar
			press(v, tt.key)
			if v.month.Month() != tt.month || v.month.Day() != 1 {
				t.Errorf("month = %v, want first of %v", v.month, tt.month)
			}
			if v.selected.Month() != tt.month || v.selected.Day() != tt.day {
				t.Errorf("selected = %v, want %v %d", v.selected, tt.month, tt.day)
			}
		})
	}
}

func TestCalendarSelectsTasksOnDay(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.Local)
	v := newTestTasksView(now)
	v.mode = ModeCalendar
	v.tasks.Add(store.NewTask(models.Task{Title: "Today", DueDate: now}, now))
	v.tasks.Add(store.NewTask(models.Task{Title: "Later", DueDate: now.AddDate(0, 0, 3)}, now))
	v.refresh()

	day := v.dayTasks()
	if len(day) != 1 || day[0].Title != "Today" {
		t.Fatalf("day tasks = %v", day)
	}
	if cur, ok := v.current(); !ok || cur.Title != "Today" {
		t.Errorf("current = %v, %v", cur, ok)
	}
}

func TestPDFViewValidation(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.fdf")
	v := NewPDFView(filepath.Join(t.TempDir(), "missing.pdf"), out)

	r := v.Record()
	if r["date"] == "" {
		t.Error("date should default to today")
	}

	if cmd := press(v, "ctrl+e"); cmd != nil {
		t.Fatal("export started with required fields blank")
	}
	if !strings.Contains(v.err, "required fields missing") {
		t.Errorf("err = %q", v.err)
	}
	if !v.invalid["agentA.nameOfEstablishment"] || v.invalid["date"] {
		t.Errorf("invalid = %v", v.invalid)
	}
}

func TestMoney(t *testing.T) {
	tests := map[float64]string{
		0:          "$0.00",
		999.5:      "$999.50",
		1234567.89: "$1,234,567.89",
		-1500:      "-$1,500.00",
	}
	for in, want := range tests {
		if got := money(in); got != want {
			t.Errorf("money(%v) = %q, want %q", in, got, want)
		}
	}
}
