package views

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/crmdash/internal/derive"
	"github.com/tgienger/crmdash/internal/models"
	"github.com/tgienger/crmdash/internal/store"
	"github.com/tgienger/crmdash/internal/ui/keys"
	"github.com/tgienger/crmdash/internal/ui/styles"
)

// TaskMode is how the task page lays tasks out
type TaskMode string

const (
	ModeGrid     TaskMode = "grid"
	ModeList     TaskMode = "list"
	ModeCalendar TaskMode = "calendar"
)

var taskModes = []TaskMode{ModeGrid, ModeList, ModeCalendar}

// Task form field order
const (
	taskTitle = iota
	taskDescription
	taskDueDate
	taskPriority
	taskStatus
	taskType
	taskAssignedTo
	taskRelatedType
	taskRelatedID
	taskRelatedName
)

const relatedNone = "none"

// TaskSettings are the task page choices kept between sessions
type TaskSettings struct {
	Mode       TaskMode
	SortBy     derive.SortField
	Descending bool
}

// TaskSettingsChanged is sent when the mode or sort order changes
type TaskSettingsChanged struct {
	Settings TaskSettings
}

// TasksView shows tasks as a grid, a sortable list or a month calendar
type TasksView struct {
	tasks  *store.TaskStore
	styles *styles.Styles
	keys   keys.KeyMap
	now    func() time.Time

	width  int
	height int

	mode    TaskMode
	query   derive.TaskQuery
	visible []models.Task // tasks after filter and sort

	// List and grid state
	cursor      int
	scrollY     int
	searching   bool
	searchInput textinput.Model

	// Calendar state
	month     time.Time // first day of the shown month
	selected  time.Time // selected day
	dayCursor int       // task cursor within the selected day

	// Task creation/editing
	editing   bool
	editingID string // empty when creating
	form      *form

	// Task detail view
	viewingTask bool
	viewingID   string

	// Delete confirmation
	confirmingDelete bool
	deleteTargetID   string
	deleteTargetName string

	showHelpPopup bool
}

// NewTasksView creates the tasks page with saved settings
func NewTasksView(tasks *store.TaskStore, settings TaskSettings) *TasksView {
	search := textinput.New()
	search.Placeholder = "Search tasks..."
	search.CharLimit = 100

	if !slices.Contains(taskModes, settings.Mode) {
		settings.Mode = ModeGrid
	}
	if !slices.Contains(derive.SortFields, settings.SortBy) {
		settings.SortBy = derive.SortDueDate
	}

	v := &TasksView{
		tasks:       tasks,
		styles:      styles.NewStyles(),
		keys:        keys.DefaultKeyMap(),
		now:         time.Now,
		mode:        settings.Mode,
		searchInput: search,
		query: derive.TaskQuery{
			Priority:   derive.Any,
			Status:     derive.Any,
			Type:       derive.Any,
			SortBy:     settings.SortBy,
			Descending: settings.Descending,
		},
		form: newTaskForm(),
	}
	v.goToToday()
	v.refresh()
	return v
}

func newTaskForm() *form {
	title := newTextField("Title", "Task title", 200)
	title.required = true
	due := newTextField("Due Date", models.DateLayout, 10)
	due.required = true

	return newForm("New Task", "Save",
		title,
		newTextField("Description", "Description", 1000),
		due,
		newChoiceField("Priority", enumStrings(models.Priorities)),
		newChoiceField("Status", enumStrings(models.Statuses)),
		newChoiceField("Type", enumStrings(models.TaskTypes)),
		newTextField("Assigned To", "Name", 100),
		newChoiceField("Related To", []string{relatedNone, "deal", "product"}),
		newTextField("Related ID", "Deal or product id", 50),
		newTextField("Related Name", "Display name", 200),
	)
}

func enumStrings[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

// Settings returns the current mode and sort order
func (v *TasksView) Settings() TaskSettings {
	return TaskSettings{Mode: v.mode, SortBy: v.query.SortBy, Descending: v.query.Descending}
}

func (v *TasksView) settingsChanged() tea.Cmd {
	settings := v.Settings()
	return func() tea.Msg { return TaskSettingsChanged{Settings: settings} }
}

// Init refreshes the derived lists
func (v *TasksView) Init() tea.Cmd {
	v.refresh()
	return nil
}

// Capturing reports whether a text input owns the keyboard
func (v *TasksView) Capturing() bool {
	return v.editing || v.searching || v.confirmingDelete
}

// refresh recomputes the filtered list and keeps the cursors in range
func (v *TasksView) refresh() {
	v.query.Search = v.searchInput.Value()
	v.visible = derive.FilterTasks(v.tasks.Tasks(), v.query)
	if v.cursor >= len(v.visible) {
		v.cursor = max(0, len(v.visible)-1)
	}
	if n := len(v.dayTasks()); v.dayCursor >= n {
		v.dayCursor = max(0, n-1)
	}
}

// Update handles messages
func (v *TasksView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case tea.KeyMsg:
		// Handle help popup first - any key closes it
		if v.showHelpPopup {
			v.showHelpPopup = false
			return v, nil
		}
		if v.confirmingDelete {
			return v.updateConfirmDelete(msg)
		}
		if v.editing {
			return v.updateEditing(msg)
		}
		if v.viewingTask {
			return v.updateViewingTask(msg)
		}
		if v.searching {
			return v.updateSearch(msg)
		}
		if v.mode == ModeCalendar {
			if handled, cmd := v.updateCalendar(msg); handled {
				return v, cmd
			}
		}
		return v.updateNormal(msg)
	}

	return v, nil
}

func (v *TasksView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.View):
		i := slices.Index(taskModes, v.mode)
		v.mode = taskModes[(i+1)%len(taskModes)]
		v.scrollY = 0
		return v, v.settingsChanged()

	case key.Matches(msg, v.keys.Up):
		if v.cursor > 0 {
			v.cursor -= v.step()
			v.cursor = max(v.cursor, 0)
			v.ensureVisible()
		}
		return v, nil

	case key.Matches(msg, v.keys.Down):
		if v.cursor < len(v.visible)-1 {
			v.cursor = min(v.cursor+v.step(), len(v.visible)-1)
			v.ensureVisible()
		}
		return v, nil

	case key.Matches(msg, v.keys.Left):
		if v.mode == ModeGrid && v.cursor > 0 {
			v.cursor--
			v.ensureVisible()
		}
		return v, nil

	case key.Matches(msg, v.keys.Right):
		if v.mode == ModeGrid && v.cursor < len(v.visible)-1 {
			v.cursor++
			v.ensureVisible()
		}
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		if t, ok := v.current(); ok {
			v.viewingTask = true
			v.viewingID = t.ID
		}
		return v, nil

	case key.Matches(msg, v.keys.New):
		v.startEdit(nil, v.now())
		return v, textinput.Blink

	case key.Matches(msg, v.keys.Edit):
		if t, ok := v.current(); ok {
			v.startEdit(&t, t.DueDate)
			return v, textinput.Blink
		}
		return v, nil

	case key.Matches(msg, v.keys.Delete):
		if t, ok := v.current(); ok {
			v.confirmDelete(t)
		}
		return v, nil

	case key.Matches(msg, v.keys.Status):
		if t, ok := v.current(); ok {
			v.cycleStatus(t)
		}
		return v, nil

	case key.Matches(msg, v.keys.Search):
		v.searching = true
		v.searchInput.Focus()
		return v, textinput.Blink

	case key.Matches(msg, v.keys.Back):
		if v.searchInput.Value() != "" {
			v.searchInput.Reset()
			v.refresh()
		}
		return v, nil

	case key.Matches(msg, v.keys.Filter):
		v.query.Priority = nextFilter(v.query.Priority, enumStrings(models.Priorities))
		v.cursor = 0
		v.refresh()
		return v, nil

	case msg.String() == "u":
		v.query.Status = nextFilter(v.query.Status, enumStrings(models.Statuses))
		v.cursor = 0
		v.refresh()
		return v, nil

	case msg.String() == "y":
		v.query.Type = nextFilter(v.query.Type, enumStrings(models.TaskTypes))
		v.cursor = 0
		v.refresh()
		return v, nil

	case msg.String() == "c":
		v.query.Priority, v.query.Status, v.query.Type = derive.Any, derive.Any, derive.Any
		v.searchInput.Reset()
		v.refresh()
		return v, nil

	case key.Matches(msg, v.keys.Sort):
		i := slices.Index(derive.SortFields, v.query.SortBy)
		v.query.SortBy = derive.SortFields[(i+1)%len(derive.SortFields)]
		v.refresh()
		return v, v.settingsChanged()

	case key.Matches(msg, v.keys.Reverse):
		v.query.Descending = !v.query.Descending
		v.refresh()
		return v, v.settingsChanged()

	case key.Matches(msg, v.keys.Help):
		v.showHelpPopup = true
		return v, nil
	}

	return v, nil
}

// nextFilter cycles all -> each value -> all
func nextFilter(current string, values []string) string {
	if current == "" || current == derive.Any {
		return values[0]
	}
	i := slices.Index(values, current)
	if i < 0 || i == len(values)-1 {
		return derive.Any
	}
	return values[i+1]
}

func (v *TasksView) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.searching = false
		v.searchInput.Blur()
		v.searchInput.Reset()
		v.refresh()
		return v, nil
	case key.Matches(msg, v.keys.Enter):
		v.searching = false
		v.searchInput.Blur()
		return v, nil
	}

	var cmd tea.Cmd
	v.searchInput, cmd = v.searchInput.Update(msg)
	v.cursor = 0
	v.scrollY = 0
	v.refresh()
	return v, cmd
}

func (v *TasksView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.tasks.Delete(v.deleteTargetID)
		v.confirmingDelete = false
		if v.viewingID == v.deleteTargetID {
			v.viewingTask = false
		}
		v.refresh()
	case "n", "N", "esc":
		v.confirmingDelete = false
	}
	return v, nil
}

func (v *TasksView) updateViewingTask(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	t, ok := v.tasks.Get(v.viewingID)
	if !ok {
		v.viewingTask = false
		return v, nil
	}

	switch {
	case key.Matches(msg, v.keys.Back), key.Matches(msg, v.keys.Enter):
		v.viewingTask = false
	case key.Matches(msg, v.keys.Edit):
		v.viewingTask = false
		v.startEdit(&t, t.DueDate)
		return v, textinput.Blink
	case key.Matches(msg, v.keys.Delete):
		v.confirmDelete(t)
	case key.Matches(msg, v.keys.Status):
		v.cycleStatus(t)
	}
	return v, nil
}

func (v *TasksView) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, v.keys.Cancel) {
		v.editing = false
		return v, nil
	}

	submitted, cmd := v.form.update(msg)
	if !submitted {
		return v, cmd
	}

	draft, err := v.taskFromForm()
	if err != nil {
		v.form.err = err.Error()
		return v, nil
	}

	now := v.now()
	if existing, ok := v.tasks.Get(v.editingID); ok {
		v.tasks.Update(store.Revise(existing, draft, now))
	} else {
		task := store.NewTask(draft, now)
		v.tasks.Add(task)
		v.selectTask(task)
	}
	v.editing = false
	v.refresh()
	return v, nil
}

func (v *TasksView) confirmDelete(t models.Task) {
	v.confirmingDelete = true
	v.deleteTargetID = t.ID
	v.deleteTargetName = t.Title
}

// cycleStatus advances pending -> in-progress -> completed -> pending
func (v *TasksView) cycleStatus(t models.Task) {
	i := slices.Index(models.Statuses, t.Status)
	edited := t
	edited.Status = models.Statuses[(i+1)%len(models.Statuses)]
	v.tasks.Update(store.Revise(t, edited, v.now()))
	v.refresh()
}

// startEdit opens the form for t, or for a new task due on due
func (v *TasksView) startEdit(t *models.Task, due time.Time) {
	v.editing = true
	v.form.reset()

	if t == nil {
		v.editingID = ""
		v.form.title = "New Task"
		if !due.IsZero() {
			v.form.set(taskDueDate, due.Format(models.DateLayout))
		}
		v.form.set(taskPriority, string(models.PriorityMedium))
		v.form.set(taskStatus, string(models.StatusPending))
		v.form.set(taskType, string(models.TypeFollowUp))
		return
	}

	v.editingID = t.ID
	v.form.title = "Edit Task"
	v.form.set(taskTitle, t.Title)
	v.form.set(taskDescription, t.Description)
	if !t.DueDate.IsZero() {
		v.form.set(taskDueDate, t.DueDate.Format(models.DateLayout))
	}
	v.form.set(taskPriority, string(t.Priority))
	v.form.set(taskStatus, string(t.Status))
	v.form.set(taskType, string(t.Type))
	v.form.set(taskAssignedTo, t.AssignedTo)
	if t.RelatedTo != nil {
		v.form.set(taskRelatedType, t.RelatedTo.Type)
		v.form.set(taskRelatedID, t.RelatedTo.ID)
		v.form.set(taskRelatedName, t.RelatedTo.Name)
	}
}

func (v *TasksView) taskFromForm() (models.Task, error) {
	if label := v.form.missing(); label != "" {
		return models.Task{}, fmt.Errorf("%s is required", label)
	}

	due, err := models.ParseDate(v.form.value(taskDueDate), time.Local)
	if err != nil {
		return models.Task{}, fmt.Errorf("due date must look like %s", models.DateLayout)
	}

	task := models.Task{
		Title:       v.form.value(taskTitle),
		Description: v.form.value(taskDescription),
		DueDate:     due,
		Priority:    models.Priority(v.form.value(taskPriority)),
		Status:      models.Status(v.form.value(taskStatus)),
		Type:        models.TaskType(v.form.value(taskType)),
		AssignedTo:  v.form.value(taskAssignedTo),
	}
	if rel := v.form.value(taskRelatedType); rel != relatedNone {
		name := v.form.value(taskRelatedName)
		if name == "" {
			return models.Task{}, fmt.Errorf("related %s needs a name", rel)
		}
		task.RelatedTo = &models.RelatedTo{
			Type: rel,
			ID:   v.form.value(taskRelatedID),
			Name: name,
		}
	}
	return task, nil
}

// current returns the task under the cursor of the active mode
func (v *TasksView) current() (models.Task, bool) {
	if v.mode == ModeCalendar {
		day := v.dayTasks()
		if v.dayCursor < len(day) {
			return day[v.dayCursor], true
		}
		return models.Task{}, false
	}
	if v.cursor < len(v.visible) {
		return v.visible[v.cursor], true
	}
	return models.Task{}, false
}

// selectTask moves every cursor onto t
func (v *TasksView) selectTask(t models.Task) {
	v.refresh()
	if i := slices.IndexFunc(v.visible, func(x models.Task) bool { return x.ID == t.ID }); i >= 0 {
		v.cursor = i
		v.ensureVisible()
	}
	if !t.DueDate.IsZero() {
		v.selectDay(t.DueDate)
		for i, x := range v.dayTasks() {
			if x.ID == t.ID {
				v.dayCursor = i
			}
		}
	}
}

// step is how far up and down move the cursor
func (v *TasksView) step() int {
	if v.mode == ModeGrid {
		return v.gridColumns()
	}
	return 1
}

func (v *TasksView) gridColumns() int {
	return clamp(styles.ContentWidth(v.width)/30, 1, 3)
}

// visibleRows is how many list rows or grid rows fit on screen
func (v *TasksView) visibleRows() int {
	per := 1
	if v.mode == ModeGrid {
		per = 7
	}
	return max((v.height-12)/per, 1)
}

func (v *TasksView) ensureVisible() {
	row := v.cursor
	if v.mode == ModeGrid {
		row = v.cursor / v.gridColumns()
	}
	visible := v.visibleRows()
	if row < v.scrollY {
		v.scrollY = row
	} else if row >= v.scrollY+visible {
		v.scrollY = row - visible + 1
	}
}

// View renders the view
func (v *TasksView) View() string {
	if v.showHelpPopup {
		return renderHelpPopup(v.styles, v.width, v.height,
			v.keys.New, v.keys.Edit, v.keys.Delete, v.keys.Status, v.keys.Search,
			key.NewBinding(key.WithHelp("f/u/y", "filter priority/status/type")),
			key.NewBinding(key.WithHelp("c", "clear filters")),
			v.keys.Sort, v.keys.Reverse, v.keys.View,
			key.NewBinding(key.WithHelp("[ ]", "previous/next month")),
			v.keys.Today)
	}
	if v.confirmingDelete {
		return renderConfirm(v.styles, v.width, v.height, "Delete Task?",
			fmt.Sprintf("Are you sure you want to delete %q?", v.deleteTargetName))
	}

	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	if v.editing {
		centered := lipgloss.Place(contentWidth, v.height,
			lipgloss.Center, lipgloss.Center,
			v.form.view(s, contentWidth, v.height),
		)
		return styles.CenterView(centered, v.width, v.height)
	}
	if v.viewingTask {
		return v.renderTaskView()
	}

	var body string
	switch v.mode {
	case ModeList:
		body = v.renderList()
	case ModeCalendar:
		body = v.renderCalendar()
	default:
		body = v.renderGrid()
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		v.renderHeader(),
		"",
		body,
		v.renderFooter(),
	)
	return styles.CenterView(content, v.width, v.height)
}

func (v *TasksView) renderHeader() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	var tabs []string
	for _, m := range taskModes {
		style := s.Tab
		if m == v.mode {
			style = s.TabActive
		}
		tabs = append(tabs, style.Render(string(m)))
	}
	title := lipgloss.JoinHorizontal(lipgloss.Center,
		s.Title.Render("Tasks & Follow-ups"), "  ", lipgloss.JoinHorizontal(lipgloss.Center, tabs...))

	if v.mode == ModeCalendar {
		return title
	}

	searchStyle := s.FilterBar
	if v.searching {
		searchStyle = searchStyle.BorderForeground(styles.Current.BorderFocus)
	}
	search := searchStyle.Width(clamp(contentWidth-4, 20, 40)).Render(v.searchInput.View())

	dir := "↑"
	if v.query.Descending {
		dir = "↓"
	}
	filters := s.TitleMuted.Render(fmt.Sprintf("priority: %s • status: %s • type: %s • sort: %s %s",
		v.query.Priority, v.query.Status, v.query.Type, v.query.SortBy, dir))

	return lipgloss.JoinVertical(lipgloss.Left, title, search, filters)
}

func (v *TasksView) renderFooter() string {
	contentWidth := styles.ContentWidth(v.width)
	if v.mode == ModeCalendar {
		return renderHelp(v.styles, contentWidth,
			key.NewBinding(key.WithHelp("←↑↓→", "day")),
			key.NewBinding(key.WithHelp("[ ]", "month")),
			v.keys.Today, v.keys.New, v.keys.View, v.keys.Help)
	}
	return renderHelp(v.styles, contentWidth,
		v.keys.New, v.keys.Edit, v.keys.Delete, v.keys.Search, v.keys.Sort, v.keys.View, v.keys.Help)
}

func (v *TasksView) renderList() string {
	s := v.styles
	if len(v.visible) == 0 {
		return s.TitleMuted.Render(v.emptyMessage())
	}

	width := max(styles.ContentWidth(v.width)-4, 30)
	titleWidth := max(width-52, 10)

	rows := []string{s.Label.Render(fmt.Sprintf("  %-*s %-10s %-8s %-11s %-12s",
		titleWidth, "Title", "Due", "Priority", "Status", "Assigned"))}

	end := min(v.scrollY+v.visibleRows(), len(v.visible))
	for i := v.scrollY; i < end; i++ {
		t := v.visible[i]
		due := ""
		if !t.DueDate.IsZero() {
			due = t.DueDate.Format(models.DateLayout)
		}
		line := fmt.Sprintf("%-*s %-10s %s %s %-12s",
			titleWidth, truncate(t.Title, titleWidth),
			due,
			lipgloss.NewStyle().Width(8).Foreground(styles.PriorityColor(t.Priority)).Render(string(t.Priority)),
			lipgloss.NewStyle().Width(11).Foreground(styles.StatusColor(t.Status)).Render(string(t.Status)),
			truncate(t.AssignedTo, 12),
		)
		style := s.ListItem
		if i == v.cursor {
			style = s.ListSelected
		}
		rows = append(rows, style.Width(width).Render(line))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (v *TasksView) renderGrid() string {
	s := v.styles
	if len(v.visible) == 0 {
		return s.TitleMuted.Render(v.emptyMessage())
	}

	cols := v.gridColumns()
	cardWidth := styles.ContentWidth(v.width)/cols - 4
	today := v.now()

	var rows []string
	end := min((v.scrollY+v.visibleRows())*cols, len(v.visible))
	for start := v.scrollY * cols; start < end; start += cols {
		var cards []string
		for i := start; i < min(start+cols, len(v.visible)); i++ {
			cards = append(cards, v.renderCard(v.visible[i], i == v.cursor, cardWidth, today))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (v *TasksView) renderCard(t models.Task, selected bool, width int, today time.Time) string {
	s := v.styles

	due := "no due date"
	if !t.DueDate.IsZero() {
		due = "due " + t.DueDate.Format("Jan 2")
		if t.Status != models.StatusCompleted && t.DueDate.Before(today) && !models.SameDay(t.DueDate, today) {
			due = s.Error.Render(due + " (overdue)")
		}
	}

	style := s.Card.Width(width)
	if selected {
		style = style.BorderForeground(styles.Current.BorderFocus)
	}
	titleStyle := s.CardValue
	if selected {
		titleStyle = titleStyle.Foreground(styles.Current.Primary)
	}
	title := titleStyle.Render(truncate(t.Title, width-2))

	return style.Render(lipgloss.JoinVertical(lipgloss.Left,
		title,
		s.TitleMuted.Render(truncate(t.Description, width-2)),
		s.PriorityBadge(t.Priority)+s.StatusBadge(t.Status),
		s.Label.Render(string(t.Type)+" • ")+due,
		s.TitleMuted.Render(truncate(t.AssignedTo, width-2)),
	))
}

func (v *TasksView) renderTaskView() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	t, ok := v.tasks.Get(v.viewingID)
	if !ok {
		return ""
	}

	field := func(label, value string) string {
		if value == "" {
			value = s.TitleMuted.Render("-")
		}
		return s.Label.Width(14).Render(label) + value
	}

	due := ""
	if !t.DueDate.IsZero() {
		due = t.DueDate.Format("Monday, January 2, 2006")
	}
	related := ""
	if t.RelatedTo != nil {
		related = fmt.Sprintf("%s: %s", t.RelatedTo.Type, t.RelatedTo.Name)
		if t.RelatedTo.ID != "" {
			related += " (#" + t.RelatedTo.ID + ")"
		}
	}

	desc := t.Description
	if desc == "" {
		desc = s.TitleMuted.Render("No description")
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render(t.Title),
		"",
		s.PriorityBadge(t.Priority)+s.StatusBadge(t.Status)+s.Badge.Background(styles.Current.Secondary).Render(string(t.Type)),
		"",
		lipgloss.NewStyle().Width(clamp(contentWidth-8, 20, 70)).Render(desc),
		"",
		field("Due", due),
		field("Assigned to", t.AssignedTo),
		field("Related to", related),
		field("Created", t.CreatedAt.Format("2006-01-02 15:04")),
		field("Updated", t.UpdatedAt.Format("2006-01-02 15:04")),
		"",
		renderHelp(s, contentWidth, v.keys.Edit, v.keys.Delete, v.keys.Status, v.keys.Back),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		s.FilterBar.Render(content),
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *TasksView) emptyMessage() string {
	if q := strings.TrimSpace(v.query.Search); q != "" {
		return fmt.Sprintf("No tasks match %q", q)
	}
	if v.tasks.Len() > 0 {
		return "No tasks match the current filters. Press 'c' to clear them."
	}
	return "No tasks. Press 'n' to create one."
}
