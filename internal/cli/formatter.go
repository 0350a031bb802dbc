package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/qr-signal/internal/model"
	"github.com/Veraticus/qr-signal/internal/rules"
	"github.com/Veraticus/qr-signal/internal/storage"
)

// maxContentWidth truncates long payloads in list views.
const maxContentWidth = 60

// Formatter renders analysis results for the terminal.
type Formatter struct {
	width int
}

// NewFormatter creates a formatter with no width limit.
func NewFormatter() *Formatter {
	return &Formatter{}
}

// WithWidth returns a formatter that wraps boxes to the terminal width.
func (f *Formatter) WithWidth(width int) *Formatter {
	out := *f
	out.width = width
	return &out
}

// FormatResult renders a single result as a card.
func (f *Formatter) FormatResult(result model.AnalysisResult) string {
	rows := []string{
		f.row("Signal", FormatSignal(result.Signal)+" "+SubtleStyle.Render(result.Signal.Label())),
		f.row("Type", string(result.Type)),
		f.row("Content", result.Content),
	}

	if domain := result.RootDomain(); domain != "" {
		rows = append(rows, f.row("Domain", domain))
	}
	if site := result.RegistrableDomain(); site != "" && site != result.RootDomain() {
		rows = append(rows, f.row("Site", site))
	}
	if vars := result.HiddenVariables(); len(vars) > 0 {
		rows = append(rows, f.row("Tracking", strings.Join(vars, ", ")))
	}
	rows = append(rows, f.detailRows(result.Details)...)

	rows = append(rows,
		"",
		BoldStyle.Render("What it is"),
		result.Description,
		"",
		BoldStyle.Render("What it will do"),
		result.Action,
		"",
		BoldStyle.Render("Be aware"),
		SignalStyle(result.Signal).UnsetBackground().Render(result.Awareness),
	)

	box := BoxStyle.BorderForeground(SignalColor(result.Signal))
	if f.width > 4 {
		box = box.Width(f.width - 4)
	}
	return renderBox(box, ScanIcon+" Scan Result", strings.Join(rows, "\n"))
}

func (f *Formatter) detailRows(details model.Details) []string {
	switch d := details.(type) {
	case model.WiFiDetails:
		rows := []string{}
		if d.Security != "" {
			rows = append(rows, f.row("Security", d.Security))
		}
		if d.Hidden {
			rows = append(rows, f.row("Hidden", "yes"))
		}
		return rows
	case model.FileDetails:
		if d.MediaType != "" {
			return []string{f.row("Media type", d.MediaType)}
		}
	}
	return nil
}

func (f *Formatter) row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, LabelStyle.Render(label), value)
}

// FormatLine renders a result as a single line for batch output.
func (f *Formatter) FormatLine(result model.AnalysisResult) string {
	return fmt.Sprintf("%s  %-12s %s",
		FormatSignal(result.Signal),
		result.Type,
		truncate(result.Content, maxContentWidth))
}

// FormatSummary counts results per signal.
func (f *Formatter) FormatSummary(results []model.AnalysisResult) string {
	counts := make(map[model.Signal]int, len(model.AllSignals()))
	for _, r := range results {
		counts[r.Signal]++
	}

	parts := make([]string, 0, len(counts))
	for _, signal := range model.AllSignals() {
		if counts[signal] == 0 {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %d", FormatSignal(signal), counts[signal]))
	}

	noun := "payloads"
	if len(results) == 1 {
		noun = "payload"
	}
	header := BoldStyle.Render(fmt.Sprintf("%d %s analyzed", len(results), noun))
	if len(parts) == 0 {
		return header
	}
	return header + "  " + strings.Join(parts, "  ")
}

// FormatHistory renders history entries, newest first, as a table.
func (f *Formatter) FormatHistory(entries []storage.Entry, now time.Time) string {
	return f.FormatHistoryWithCursor(entries, now, -1)
}

// FormatHistoryWithCursor is FormatHistory with the row at cursor marked.
func (f *Formatter) FormatHistoryWithCursor(entries []storage.Entry, now time.Time, cursor int) string {
	title := FormatTitle(HistoryIcon, "Recent Scans")
	if len(entries) == 0 {
		return title + "\n" + SubtleStyle.Render("No scans yet.")
	}

	lines := []string{
		title,
		TableHeaderStyle.Render(fmt.Sprintf("  %-3s %-10s %-12s %-28s %s", "#", "Signal", "Type", "Subject", "When")),
	}
	for i, entry := range entries {
		marker := "  "
		if i == cursor {
			marker = PromptStyle.Render("›") + " "
		}
		signal := SignalStyle(entry.Result.Signal).Render(fmt.Sprintf("%-10s", entry.Result.Signal))
		lines = append(lines, fmt.Sprintf("%s%-3d %s %-12s %-28s %s",
			marker,
			i+1,
			signal,
			entry.Result.Type,
			truncate(entry.Result.Subject(), 28),
			SubtleStyle.Render(relativeTime(now, entry.ScannedAt))))
	}
	return strings.Join(lines, "\n")
}

// FormatRules renders rule tables, one category per block.
func (f *Formatter) FormatRules(tables rules.Tables) string {
	sections := []string{FormatTitle(RulesIcon, fmt.Sprintf("Rule Tables (%d entries)", tables.Count()))}
	for _, c := range rules.Categories() {
		values := tables.Get(c)
		if len(values) == 0 {
			continue
		}
		header := BoldStyle.Render(string(c)) + SubtleStyle.Render(fmt.Sprintf(" (%d)", len(values)))
		sections = append(sections, header+"\n  "+strings.Join(values, "\n  "))
	}
	return strings.Join(sections, "\n\n")
}

func truncate(s string, limit int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func relativeTime(now, t time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return t.Local().Format("Jan 2 15:04")
	}
}
