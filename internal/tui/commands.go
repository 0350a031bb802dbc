package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const historyTimeout = 5 * time.Second

// analyze runs the analyzer and records the result.
func (m Model) analyze(raw string) tea.Cmd {
	analyzer := m.analyzer
	history := m.history
	return func() tea.Msg {
		result := analyzer.Analyze(raw)
		if history == nil {
			return analyzedMsg{result: result}
		}

		ctx, cancel := context.WithTimeout(context.Background(), historyTimeout)
		defer cancel()

		if _, err := history.Add(ctx, result); err != nil {
			return analyzedMsg{result: result, err: fmt.Errorf("failed to record scan: %w", err)}
		}
		return analyzedMsg{result: result}
	}
}

// loadHistory reads the history store, newest first.
func (m Model) loadHistory() tea.Cmd {
	history := m.history
	return func() tea.Msg {
		if history == nil {
			return historyLoadedMsg{}
		}

		ctx, cancel := context.WithTimeout(context.Background(), historyTimeout)
		defer cancel()

		entries, err := history.List(ctx)
		return historyLoadedMsg{entries: entries, err: err}
	}
}
