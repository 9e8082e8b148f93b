package ui

import (
	"log"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/crmdash/internal/config"
	"github.com/tgienger/crmdash/internal/db"
	"github.com/tgienger/crmdash/internal/derive"
	"github.com/tgienger/crmdash/internal/store"
	"github.com/tgienger/crmdash/internal/ui/keys"
	"github.com/tgienger/crmdash/internal/ui/styles"
	"github.com/tgienger/crmdash/internal/ui/views"
)

// page is a screen behind the tab bar
type page interface {
	tea.Model
	views.Capturer
}

// tabBarHeight is the rows the tab bar takes from each page
const tabBarHeight = 2

type App struct {
	db     *db.DB
	state  *store.State
	styles *styles.Styles
	keys   keys.KeyMap
	now    func() time.Time

	current views.Page
	target  views.Page // page to open after login
	login   *views.LoginView
	tasks   *views.TasksView
	pages   map[views.Page]page
	prefs   db.Preferences

	width  int
	height int
}

// Creates a new application
func NewApp(database *db.DB, state *store.State, cfg *config.Config) *App {
	prefs, err := database.LoadPreferences()
	if err != nil {
		log.Printf("load preferences: %v", err)
	}

	tasks := views.NewTasksView(state.Tasks, views.TaskSettings{
		Mode:       views.TaskMode(prefs.TaskView),
		SortBy:     derive.SortField(prefs.TaskSort),
		Descending: prefs.TaskDescending,
	})

	a := &App{
		db:      database,
		state:   state,
		styles:  styles.NewStyles(),
		keys:    keys.DefaultKeyMap(),
		now:     time.Now,
		current: views.PageLogin,
		target:  views.PageDashboard,
		login:   views.NewLoginView(state.Auth, prefs.Username),
		tasks:   tasks,
		prefs:   prefs,
		pages: map[views.Page]page{
			views.PageDashboard: views.NewDashboardView(state, cfg.LowStockThreshold),
			views.PageProducts:  views.NewProductsView(state.Products),
			views.PageTasks:     tasks,
			views.PageAnalytics: views.NewAnalyticsView(state, cfg.LowStockThreshold),
			views.PagePDF:       views.NewPDFView(cfg.PDFTemplate, cfg.PDFOutput),
		},
	}
	if p := views.Page(prefs.Page); slices.Contains(views.Pages, p) {
		a.target = p
	}
	return a
}

func (a *App) Init() tea.Cmd {
	return a.login.Init()
}

// active returns the model receiving key presses
func (a *App) active() page {
	if a.current == views.PageLogin {
		return a.login
	}
	return a.pages[a.current]
}

// open switches to p, sending the current size along as the page may
// not have seen one yet.
func (a *App) open(p views.Page) tea.Cmd {
	if a.current == p {
		return nil
	}
	a.current = p
	if p != views.PageLogin {
		a.prefs.Page = string(p)
		a.savePreferences()
	}
	return tea.Batch(
		a.active().Init(),
		func() tea.Msg {
			return tea.WindowSizeMsg{Width: a.width, Height: a.height}
		},
	)
}

func (a *App) savePreferences() {
	settings := a.tasks.Settings()
	a.prefs.TaskView = string(settings.Mode)
	a.prefs.TaskSort = string(settings.SortBy)
	a.prefs.TaskDescending = settings.Descending
	if err := a.db.SavePreferences(a.prefs); err != nil {
		log.Printf("save preferences: %v", err)
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.login.Update(msg)
		size := tea.WindowSizeMsg{Width: msg.Width, Height: max(msg.Height-tabBarHeight, 0)}
		for _, p := range a.pages {
			p.Update(size)
		}
		return a, nil

	case views.LoggedIn:
		a.prefs.Username = msg.Username
		target := a.target
		return a, a.open(target)

	case views.Navigate:
		return a, a.guard(msg.Page)

	case views.TaskSettingsChanged:
		a.savePreferences()
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		// Protected pages need a live session
		if a.current != views.PageLogin && !a.state.Auth.Authenticated(a.now()) {
			a.target = a.current
			return a, a.open(views.PageLogin)
		}

		if a.current != views.PageLogin && !a.active().Capturing() {
			if cmd, ok := a.globalKey(msg); ok {
				return a, cmd
			}
		}

		_, cmd := a.active().Update(msg)
		return a, cmd
	}

	// Async results go to every page; each ignores what it did not start
	var cmds []tea.Cmd
	_, cmd := a.login.Update(msg)
	cmds = append(cmds, cmd)
	for _, p := range a.pages {
		_, cmd := p.Update(msg)
		cmds = append(cmds, cmd)
	}
	return a, tea.Batch(cmds...)
}

// globalKey handles navigation keys shared by every page
func (a *App) globalKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		return tea.Quit, true
	case key.Matches(msg, a.keys.Logout):
		a.state.Auth.Logout()
		a.target = views.PageDashboard
		return a.open(views.PageLogin), true
	case key.Matches(msg, a.keys.Dashboard):
		return a.guard(views.PageDashboard), true
	case key.Matches(msg, a.keys.Products):
		return a.guard(views.PageProducts), true
	case key.Matches(msg, a.keys.Tasks):
		return a.guard(views.PageTasks), true
	case key.Matches(msg, a.keys.Analytics):
		return a.guard(views.PageAnalytics), true
	case key.Matches(msg, a.keys.PDF):
		return a.guard(views.PagePDF), true
	}
	return nil, false
}

// guard opens p, or the login page when the session is missing or expired
func (a *App) guard(p views.Page) tea.Cmd {
	if p == views.PageLogin || a.state.Auth.Authenticated(a.now()) {
		return a.open(p)
	}
	a.target = p
	return a.open(views.PageLogin)
}

func (a *App) View() string {
	if a.current == views.PageLogin {
		return a.login.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, a.renderTabs(), a.active().View())
}

func (a *App) renderTabs() string {
	s := a.styles
	tabs := make([]string, 0, len(views.Pages)+1)
	for i, p := range views.Pages {
		style := s.Tab
		if p == a.current {
			style = s.TabActive
		}
		tabs = append(tabs, style.Render(string(rune('1'+i))+" "+p.Title()))
	}

	user := ""
	if u := a.state.Auth.State().User; u != nil {
		user = s.TitleMuted.Render(u.Name())
	}

	bar := lipgloss.JoinHorizontal(lipgloss.Center, tabs...)
	gap := styles.ContentWidth(a.width) - lipgloss.Width(bar) - lipgloss.Width(user)
	if gap > 0 {
		bar += strings.Repeat(" ", gap) + user
	}
	return styles.CenterView(s.TitleBar.Render(bar)+"\n", a.width, 0)
}
