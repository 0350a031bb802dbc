package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/qr-signal/internal/cli"
)

// View renders the model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{
		cli.FormatTitle(cli.ScanIcon, "QR Signal"),
		m.input.View(),
	}

	if m.lastError != nil {
		sections = append(sections, cli.FormatError(m.lastError.Error()))
	}

	if result := m.shown(); result != nil {
		label := "Latest scan"
		if m.selected >= 0 {
			label = fmt.Sprintf("History #%d", m.selected+1)
		}
		sections = append(sections,
			cli.SubtleStyle.Render(label),
			m.formatter.WithWidth(m.width).FormatResult(*result))
	}

	if m.history != nil {
		sections = append(sections, m.renderHistory())
	}

	sections = append(sections, m.help.View(m.keymap))
	return strings.Join(sections, "\n\n")
}

func (m Model) renderHistory() string {
	return m.formatter.FormatHistoryWithCursor(m.entries, time.Now(), m.selected)
}
