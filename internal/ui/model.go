package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/chuckie/llmcommit/internal/adapters/llm"
	"github.com/chuckie/llmcommit/internal/domain"
)

// State represents the current UI state.
type State int

const (
	StateLoading State = iota
	StateReview
	StateDone
	StateError
)

var (
	subjectStyle = lipgloss.NewStyle().Bold(true)
	bodyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	faintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

// Model is the Bubble Tea model for the generate-and-review flow.
type Model struct {
	generate RunFunc
	review   bool

	state    State
	spinner  spinner.Model
	message  domain.Message
	attempts []llm.Attempt
	accepted bool
	err      error
	width    int
}

// NewModel creates the UI model. When review is false the program exits as
// soon as generation finishes; otherwise the result is shown for approval.
func NewModel(generate RunFunc, review bool) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return &Model{
		generate: generate,
		review:   review,
		state:    StateLoading,
		spinner:  s,
		width:    80,
	}
}

// Init starts the spinner and kicks off generation.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.cmdGenerate)
}

// Update handles messages and state transitions.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.accepted = false
			return m, tea.Quit
		}

		switch m.state {
		case StateLoading:
			// No keys during loading.

		case StateReview:
			return m.handleReviewKeys(msg)

		case StateError:
			// Any key exits.
			return m, tea.Quit
		}

	case msgGenerated:
		m.attempts = msg.attempts
		if msg.err != nil {
			m.state = StateError
			m.err = msg.err
			return m, tea.Quit
		}
		m.message = msg.message
		if !m.review {
			m.accepted = true
			m.state = StateDone
			return m, tea.Quit
		}
		m.state = StateReview

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// handleReviewKeys handles keybindings in review state.
func (m *Model) handleReviewKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		m.accepted = true
		m.state = StateDone
		return m, tea.Quit
	case "n", "q", "esc":
		m.accepted = false
		m.state = StateDone
		return m, tea.Quit
	case "r":
		m.state = StateLoading
		return m, tea.Batch(m.spinner.Tick, m.cmdGenerate)
	}
	return m, nil
}

// View renders the current state.
func (m *Model) View() string {
	switch m.state {
	case StateLoading:
		return m.spinner.View() + " Generating commit message...\n"
	case StateReview:
		return m.viewReview()
	case StateError:
		return errorStyle.Render("Error: "+m.err.Error()) + "\n"
	default:
		return ""
	}
}

// viewReview renders the proposed message with its keybindings.
func (m *Model) viewReview() string {
	var b strings.Builder
	b.WriteString("Proposed commit message:\n\n")
	b.WriteString("  " + subjectStyle.Render(m.message.Subject) + "\n")
	if m.message.Body != "" {
		b.WriteString("\n")
		for _, line := range strings.Split(m.message.Body, "\n") {
			b.WriteString("  " + bodyStyle.Render(line) + "\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(faintStyle.Render("  y/Enter  Commit") + "\n")
	b.WriteString(faintStyle.Render("  r        Regenerate") + "\n")
	b.WriteString(faintStyle.Render("  n/q/Esc  Cancel") + "\n")
	return b.String()
}

// msgGenerated carries one finished generation attempt.
type msgGenerated struct {
	message  domain.Message
	attempts []llm.Attempt
	err      error
}
