package views

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/crmdash/internal/derive"
	"github.com/tgienger/crmdash/internal/models"
	"github.com/tgienger/crmdash/internal/store"
	"github.com/tgienger/crmdash/internal/ui/keys"
	"github.com/tgienger/crmdash/internal/ui/styles"
)

const upcomingLimit = 5

// DashboardView shows headline numbers for the catalog and the task list
type DashboardView struct {
	state    *store.State
	styles   *styles.Styles
	keys     keys.KeyMap
	spinner  spinner.Model
	lowStock int
	now      func() time.Time

	width  int
	height int

	showHelpPopup bool
}

// NewDashboardView creates the dashboard; lowStock is the low stock threshold
func NewDashboardView(state *store.State, lowStock int) *DashboardView {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.Current.Primary)

	return &DashboardView{
		state:    state,
		styles:   styles.NewStyles(),
		keys:     keys.DefaultKeyMap(),
		spinner:  sp,
		lowStock: lowStock,
		now:      time.Now,
	}
}

// Init loads the catalog when nothing is cached yet
func (v *DashboardView) Init() tea.Cmd {
	st := v.state.Products.State()
	if len(st.Items) > 0 || st.Loading {
		return nil
	}
	return tea.Batch(v.fetch(), v.spinner.Tick)
}

func (v *DashboardView) fetch() tea.Cmd {
	products := v.state.Products
	return func() tea.Msg {
		return productsDoneMsg{op: "load", err: products.FetchAll(context.Background())}
	}
}

// Capturing is always false; the dashboard has no inputs
func (v *DashboardView) Capturing() bool {
	return false
}

func (v *DashboardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height

	case spinner.TickMsg:
		if !v.state.Products.State().Loading {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd

	case tea.KeyMsg:
		if v.showHelpPopup {
			v.showHelpPopup = false
			return v, nil
		}
		switch {
		case key.Matches(msg, v.keys.Refresh):
			return v, tea.Batch(v.fetch(), v.spinner.Tick)
		case key.Matches(msg, v.keys.Help):
			v.showHelpPopup = true
		}
	}
	return v, nil
}

// View renders the view
func (v *DashboardView) View() string {
	s := v.styles
	if v.showHelpPopup {
		return renderHelpPopup(s, v.width, v.height,
			v.keys.Refresh, v.keys.Dashboard, v.keys.Products, v.keys.Tasks, v.keys.Analytics, v.keys.PDF,
			v.keys.Logout, v.keys.Quit)
	}

	contentWidth := styles.ContentWidth(v.width)
	products := v.state.Products.State()
	tasks := v.state.Tasks.Tasks()
	today := v.now()

	ps := derive.ProductSummary(products.Items, v.lowStock)
	ts := derive.TaskSummary(tasks, today)

	greeting := "Welcome back"
	if u := v.state.Auth.State().User; u != nil {
		greeting += ", " + u.Name()
	}

	status := ""
	switch {
	case products.Loading:
		status = v.spinner.View() + " Loading products..."
	case products.Err != "":
		status = s.Error.Render(products.Err)
	}

	cardWidth := max(contentWidth/4-3, 14)
	productCards := lipgloss.JoinHorizontal(lipgloss.Top,
		v.card("Products", strconv.Itoa(ps.Total), cardWidth),
		v.card("Categories", strconv.Itoa(ps.Categories), cardWidth),
		v.card("Inventory Value", money(ps.InventoryValue), cardWidth),
		v.card("Low Stock", strconv.Itoa(ps.LowStock), cardWidth),
	)
	taskCards := lipgloss.JoinHorizontal(lipgloss.Top,
		v.card("Open Tasks", strconv.Itoa(ts.Total-ts.ByStatus[models.StatusCompleted]), cardWidth),
		v.card("In Progress", strconv.Itoa(ts.ByStatus[models.StatusInProgress]), cardWidth),
		v.card("Due Today", strconv.Itoa(ts.DueToday), cardWidth),
		v.card("Overdue", strconv.Itoa(ts.Overdue), cardWidth),
	)

	half := max(contentWidth/2-2, 20)
	lists := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(half).Render(v.renderUpcoming(tasks, today, half)),
		lipgloss.NewStyle().Width(half).Render(v.renderLowStock(products.Items, half)),
	)

	content := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render(greeting),
		s.TitleMuted.Render(today.Format("Monday, January 2, 2006")),
		status,
		productCards,
		taskCards,
		"",
		lists,
		renderHelp(s, contentWidth, v.keys.Refresh, v.keys.Products, v.keys.Tasks, v.keys.Help, v.keys.Quit),
	)
	return styles.CenterView(content, v.width, v.height)
}

func (v *DashboardView) card(label, value string, width int) string {
	s := v.styles
	return s.Card.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left,
		s.CardLabel.Render(label),
		s.CardValue.Render(value),
	))
}

// upcoming returns open dated tasks due today or later, soonest first
func upcoming(tasks []models.Task, today time.Time, limit int) []models.Task {
	start := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	var out []models.Task
	for _, t := range tasks {
		if t.Status == models.StatusCompleted || t.DueDate.IsZero() || t.DueDate.Before(start) {
			continue
		}
		out = append(out, t)
	}
	slices.SortStableFunc(out, func(a, b models.Task) int {
		return a.DueDate.Compare(b.DueDate)
	})
	return out[:min(len(out), limit)]
}

// lowStock returns products below threshold, scarcest first
func lowStock(products []models.Product, threshold, limit int) []models.Product {
	if threshold <= 0 {
		threshold = derive.DefaultLowStock
	}
	var out []models.Product
	for _, p := range products {
		if p.Stock < threshold {
			out = append(out, p)
		}
	}
	slices.SortStableFunc(out, func(a, b models.Product) int {
		return cmp.Compare(a.Stock, b.Stock)
	})
	return out[:min(len(out), limit)]
}

func (v *DashboardView) renderUpcoming(tasks []models.Task, today time.Time, width int) string {
	s := v.styles
	rows := []string{s.Title.Render("Upcoming Tasks")}

	next := upcoming(tasks, today, upcomingLimit)
	if len(next) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, append(rows, s.TitleMuted.Render("Nothing scheduled"))...)
	}
	for _, t := range next {
		due := t.DueDate.Format("Jan 2")
		if models.SameDay(t.DueDate, today) {
			due = "today"
		}
		rows = append(rows, fmt.Sprintf("%s %s %s",
			s.PriorityBadge(t.Priority),
			truncate(t.Title, width-22),
			s.TitleMuted.Render(due)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (v *DashboardView) renderLowStock(products []models.Product, width int) string {
	s := v.styles
	rows := []string{s.Title.Render("Low Stock")}

	low := lowStock(products, v.lowStock, upcomingLimit)
	if len(low) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, append(rows, s.TitleMuted.Render("All products stocked"))...)
	}
	for _, p := range low {
		rows = append(rows, fmt.Sprintf("%-*s %s",
			max(width-10, 8), truncate(p.Name, max(width-10, 8)),
			s.Error.Render(strconv.Itoa(p.Stock)+" left")))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
