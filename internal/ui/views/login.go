package views

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/crmdash/internal/store"
	"github.com/tgienger/crmdash/internal/ui/keys"
	"github.com/tgienger/crmdash/internal/ui/styles"
)

// LoginView collects credentials and signs the user in
type LoginView struct {
	auth    *store.AuthStore
	styles  *styles.Styles
	keys    keys.KeyMap
	spinner spinner.Model

	width  int
	height int

	username     textinput.Model
	password     textinput.Model
	focusIdx     int // 0=username, 1=password, 2=submit
	showPassword bool
	submitting   bool
}

type loginDoneMsg struct {
	username string
	err      error
}

// NewLoginView creates the login form, prefilled with the last username
func NewLoginView(auth *store.AuthStore, lastUsername string) *LoginView {
	username := textinput.New()
	username.Placeholder = "Username"
	username.CharLimit = 100
	username.SetValue(lastUsername)

	password := textinput.New()
	password.Placeholder = "Password"
	password.CharLimit = 100
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.Current.Primary)

	v := &LoginView{
		auth:     auth,
		styles:   styles.NewStyles(),
		keys:     keys.DefaultKeyMap(),
		spinner:  sp,
		username: username,
		password: password,
	}
	if lastUsername != "" {
		v.focusIdx = 1
	}
	v.updateFocus()
	return v
}

func (v *LoginView) Init() tea.Cmd {
	return textinput.Blink
}

// Capturing reports whether the form owns the keyboard; it always does
func (v *LoginView) Capturing() bool {
	return true
}

func (v *LoginView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case spinner.TickMsg:
		if !v.submitting {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd

	case loginDoneMsg:
		v.submitting = false
		if msg.err != nil {
			v.password.Reset()
			v.focusIdx = 1
			v.updateFocus()
			return v, textinput.Blink
		}
		v.password.Reset()
		return v, func() tea.Msg { return LoggedIn{Username: msg.username} }

	case tea.KeyMsg:
		if v.submitting {
			if msg.String() == "ctrl+c" {
				return v, tea.Quit
			}
			return v, nil
		}

		switch {
		case msg.String() == "ctrl+c":
			return v, tea.Quit

		case msg.String() == "ctrl+r":
			v.showPassword = !v.showPassword
			if v.showPassword {
				v.password.EchoMode = textinput.EchoNormal
			} else {
				v.password.EchoMode = textinput.EchoPassword
			}
			return v, nil

		case key.Matches(msg, v.keys.Save):
			return v, v.submit()

		case msg.String() == "shift+tab", msg.String() == "up":
			v.focusIdx = (v.focusIdx + 2) % 3
			v.updateFocus()
			return v, nil

		case key.Matches(msg, v.keys.Tab), msg.String() == "down":
			v.focusIdx = (v.focusIdx + 1) % 3
			v.updateFocus()
			return v, nil

		case key.Matches(msg, v.keys.Enter):
			if v.focusIdx == 0 {
				v.focusIdx++
				v.updateFocus()
				return v, nil
			}
			return v, v.submit()
		}
	}

	var cmd tea.Cmd
	switch v.focusIdx {
	case 0:
		v.username, cmd = v.username.Update(msg)
	case 1:
		v.password, cmd = v.password.Update(msg)
	}
	return v, cmd
}

func (v *LoginView) updateFocus() {
	v.username.Blur()
	v.password.Blur()
	switch v.focusIdx {
	case 0:
		v.username.Focus()
	case 1:
		v.password.Focus()
	}
}

// submit starts the login round trip
func (v *LoginView) submit() tea.Cmd {
	username := strings.TrimSpace(v.username.Value())
	password := v.password.Value()
	if username == "" || password == "" {
		return nil
	}

	v.submitting = true
	auth := v.auth
	login := func() tea.Msg {
		err := auth.Login(context.Background(), username, password)
		return loginDoneMsg{username: username, err: err}
	}
	return tea.Batch(login, v.spinner.Tick)
}

// View renders the view
func (v *LoginView) View() string {
	s := v.styles
	st := v.auth.State()
	contentWidth := styles.ContentWidth(v.width)
	inputWidth := clamp(contentWidth-10, 20, 40)

	userStyle, passStyle, btnStyle := s.Input, s.Input, s.Button
	switch v.focusIdx {
	case 0:
		userStyle = s.InputFocused
	case 1:
		passStyle = s.InputFocused
	case 2:
		btnStyle = s.ButtonFocused
	}

	button := btnStyle.Render(" Sign In ")
	if v.submitting || st.Loading {
		button = v.spinner.View() + " Signing in..."
	}

	rows := []string{
		s.Title.Render("CRM Dashboard"),
		s.TitleMuted.Render("Sign in to continue"),
		"",
	}
	if st.Err != "" {
		rows = append(rows, s.Error.Render(st.Err), "")
	}
	rows = append(rows,
		s.Label.Render("Username:"),
		userStyle.Width(inputWidth).Render(v.username.View()),
		"",
		s.Label.Render("Password:"),
		passStyle.Width(inputWidth).Render(v.password.View()),
		"",
		button,
		"",
		s.TitleMuted.Render("Tab: next • ↵: sign in • Ctrl+R: show password • Ctrl+C: quit"),
	)

	form := lipgloss.JoinVertical(lipgloss.Left, rows...)
	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		form,
	)
	return styles.CenterView(centered, v.width, v.height)
}
