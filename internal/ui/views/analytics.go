package views

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/crmdash/internal/derive"
	"github.com/tgienger/crmdash/internal/models"
	"github.com/tgienger/crmdash/internal/store"
	"github.com/tgienger/crmdash/internal/ui/keys"
	"github.com/tgienger/crmdash/internal/ui/styles"
)

// Which product figure the category chart plots
const (
	chartCount = iota
	chartValue
)

// AnalyticsView charts the catalog by category and tasks by status and priority
type AnalyticsView struct {
	state    *store.State
	styles   *styles.Styles
	keys     keys.KeyMap
	lowStock int
	now      func() time.Time

	width  int
	height int

	chart         int
	scrollY       int
	showHelpPopup bool
}

func NewAnalyticsView(state *store.State, lowStock int) *AnalyticsView {
	return &AnalyticsView{
		state:    state,
		styles:   styles.NewStyles(),
		keys:     keys.DefaultKeyMap(),
		lowStock: lowStock,
		now:      time.Now,
	}
}

func (v *AnalyticsView) Init() tea.Cmd {
	return nil
}

func (v *AnalyticsView) Capturing() bool {
	return false
}

func (v *AnalyticsView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height

	case tea.KeyMsg:
		if v.showHelpPopup {
			v.showHelpPopup = false
			return v, nil
		}
		switch {
		case key.Matches(msg, v.keys.View), key.Matches(msg, v.keys.Tab):
			v.chart = (v.chart + 1) % 2
		case key.Matches(msg, v.keys.Up):
			v.scrollY = max(v.scrollY-1, 0)
		case key.Matches(msg, v.keys.Down):
			v.scrollY++
		case key.Matches(msg, v.keys.Help):
			v.showHelpPopup = true
		}
	}
	return v, nil
}

// View renders the view
func (v *AnalyticsView) View() string {
	s := v.styles
	if v.showHelpPopup {
		return renderHelpPopup(s, v.width, v.height,
			key.NewBinding(key.WithHelp("v/tab", "count or value")),
			v.keys.Up, v.keys.Down)
	}

	contentWidth := styles.ContentWidth(v.width)
	ps := derive.ProductSummary(v.state.Products.State().Items, v.lowStock)
	ts := derive.TaskSummary(v.state.Tasks.Tasks(), v.now())

	labelWidth := 16
	barWidth := max(contentWidth-labelWidth-20, 10)

	var sections []string
	sections = append(sections, s.Title.Render("Analytics"), "")

	title := "Products by Category"
	if v.chart == chartValue {
		title = "Inventory Value by Category"
	}
	sections = append(sections, s.Title.Render(title))
	if len(ps.ByCategory) == 0 {
		sections = append(sections, s.TitleMuted.Render("No products loaded. Open the Products page to fetch the catalog."))
	} else {
		var peak float64
		for _, c := range ps.ByCategory {
			peak = max(peak, v.categoryFigure(c))
		}
		for _, c := range ps.ByCategory {
			figure := strconv.Itoa(c.Count)
			if v.chart == chartValue {
				figure = money(c.Value)
			}
			sections = append(sections, v.barRow(c.Name, v.categoryFigure(c), peak, figure,
				labelWidth, barWidth, styles.Current.Primary))
		}
	}

	sections = append(sections, "", s.Title.Render("Tasks by Status"))
	for _, st := range models.Statuses {
		n := ts.ByStatus[st]
		sections = append(sections, v.barRow(string(st), float64(n), float64(ts.Total), strconv.Itoa(n),
			labelWidth, barWidth, styles.StatusColor(st)))
	}

	sections = append(sections, "", s.Title.Render("Tasks by Priority"))
	for _, p := range models.Priorities {
		n := ts.ByPriority[p]
		sections = append(sections, v.barRow(string(p), float64(n), float64(ts.Total), strconv.Itoa(n),
			labelWidth, barWidth, styles.PriorityColor(p)))
	}

	sections = append(sections, "",
		s.TitleMuted.Render(fmt.Sprintf("%d products • %d tasks • %d overdue • %d below %d in stock",
			ps.Total, ts.Total, ts.Overdue, ps.LowStock, v.threshold())))

	visible := max(v.height-4, 5)
	v.scrollY = clamp(v.scrollY, 0, max(len(sections)-visible, 0))
	end := min(v.scrollY+visible, len(sections))

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinVertical(lipgloss.Left, sections[v.scrollY:end]...),
		renderHelp(s, contentWidth,
			key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "count/value")),
			v.keys.Up, v.keys.Down, v.keys.Help),
	)
	return styles.CenterView(content, v.width, v.height)
}

func (v *AnalyticsView) threshold() int {
	if v.lowStock <= 0 {
		return derive.DefaultLowStock
	}
	return v.lowStock
}

func (v *AnalyticsView) categoryFigure(c derive.CategoryCount) float64 {
	if v.chart == chartValue {
		return c.Value
	}
	return float64(c.Count)
}

func (v *AnalyticsView) barRow(label string, value, peak float64, figure string, labelWidth, barWidth int, color lipgloss.Color) string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		v.styles.Label.Width(labelWidth).Render(truncate(label, labelWidth-1)),
		renderBar(v.styles, value, peak, barWidth, color),
		" "+figure,
	)
}
