package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// cmdGenerate runs the generation closure asynchronously.
func (m *Model) cmdGenerate() tea.Msg {
	msg, attempts, err := m.generate(context.Background())
	return msgGenerated{
		message:  msg,
		attempts: attempts,
		err:      err,
	}
}
