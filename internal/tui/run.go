package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive scanner and blocks until the user quits or
// ctx is canceled.
func Run(ctx context.Context, opts ...Option) error {
	program := tea.NewProgram(
		New(opts...),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
	)

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}
