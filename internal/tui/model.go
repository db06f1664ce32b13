package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mcoot/chatlogin/internal/login"
)

// ErrCancelled is returned by Run when the user quits before logging in
var ErrCancelled = errors.New("login cancelled")

// resultMsg carries a finished dispatch back onto the event loop
type resultMsg struct {
	attempt login.LoginAttempt
	resp    *login.Response
	err     error
}

// Model is the bubbletea model for the login screen. All screen state
// changes happen in Update; only the HTTP round-trip runs in a command.
type Model struct {
	ctx     context.Context
	screen  *login.Screen
	banner  login.ErrorSink
	input   textinput.Model
	spinner spinner.Model

	hint    string
	user    login.User
	outcome login.Outcome
}

// New creates the login screen model. banner must be the error sink the
// screen writes to.
func New(ctx context.Context, screen *login.Screen, banner login.ErrorSink) Model {
	input := textinput.New()
	input.Placeholder = "Username"
	input.Prompt = "> "
	input.SetValue(screen.Username())
	input.Focus()

	return Model{
		ctx:     ctx,
		screen:  screen,
		banner:  banner,
		input:   input,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

// User returns the authenticated user once login has succeeded
func (m Model) User() (login.User, bool) {
	return m.user, m.user != nil
}

// Outcome returns the outcome of the last resolved attempt, or nil
func (m Model) Outcome() login.Outcome {
	return m.outcome
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			return m.submit()
		}

	case resultMsg:
		return m.resolve(msg)

	case spinner.TickMsg:
		if !m.screen.IsLoading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if value := m.input.Value(); value != before {
		m.hint = ""
		m.screen.SetUsername(value)
	}
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	attempt, err := m.screen.Begin()
	switch {
	case errors.Is(err, login.ErrAttemptInFlight):
		return m, nil
	case errors.Is(err, login.ErrUsernameTooShort):
		m.hint = fmt.Sprintf("Please enter at least %d characters.", login.MinUsernameLength)
		return m, nil
	case err != nil:
		return m, nil
	}

	m.hint = ""
	return m, tea.Batch(m.spinner.Tick, m.dispatch(attempt))
}

func (m Model) dispatch(attempt login.LoginAttempt) tea.Cmd {
	ctx, screen := m.ctx, m.screen
	return func() tea.Msg {
		resp, err := screen.Dispatch(ctx, attempt)
		return resultMsg{attempt: attempt, resp: resp, err: err}
	}
}

func (m Model) resolve(msg resultMsg) (tea.Model, tea.Cmd) {
	outcome, err := m.screen.Resolve(m.ctx, msg.attempt, msg.resp, msg.err)
	if err != nil {
		return m, nil
	}

	m.outcome = outcome
	if success, ok := outcome.(login.Success); ok {
		m.user = success.User
		return m, tea.Quit
	}
	return m, nil
}

// Run shows the login screen until the user logs in or quits
func Run(ctx context.Context, screen *login.Screen, banner login.ErrorSink, opts ...tea.ProgramOption) (login.User, error) {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)

	final, err := tea.NewProgram(New(ctx, screen, banner), opts...).Run()
	if err != nil {
		return nil, fmt.Errorf("login screen: %w", err)
	}

	m, ok := final.(Model)
	if !ok {
		return nil, fmt.Errorf("login screen: unexpected model %T", final)
	}
	if user, ok := m.User(); ok {
		return user, nil
	}
	return nil, ErrCancelled
}
