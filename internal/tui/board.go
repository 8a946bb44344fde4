package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"adventuremap/internal/engine"
)

// RunBoard shows the interactive board until the user quits. pending holds
// events the session emitted before the board subscribed, such as reset
// notices from Open.
func RunBoard(ctx context.Context, sess *engine.Session, pending []engine.Event, out io.Writer) error {
	m := newBoardModel(ctx, sess, pending)
	p := tea.NewProgram(m, tea.WithOutput(out), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
