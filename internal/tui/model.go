// Package tui implements the interactive scanner: a payload prompt, the
// latest result card, and the scan history.
package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/qr-signal/internal/analysis"
	"github.com/Veraticus/qr-signal/internal/cli"
	"github.com/Veraticus/qr-signal/internal/model"
	"github.com/Veraticus/qr-signal/internal/storage"
)

const maxInputLength = 8192

// Model holds the TUI state.
type Model struct {
	analyzer  analysis.Analyzer
	history   storage.History
	lastError error
	current   *model.AnalysisResult
	formatter *cli.Formatter
	keymap    KeyMap
	entries   []storage.Entry
	help      help.Model
	input     textinput.Model
	// selected indexes entries; -1 shows the current result.
	selected int
	width    int
	height   int
	quitting bool
}

// New creates a model from options.
func New(opts ...Option) Model {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Analyzer == nil {
		cfg.Analyzer = analysis.New()
	}

	input := textinput.New()
	input.Placeholder = "Paste a QR payload"
	input.Prompt = cli.FormatPrompt("Payload")
	input.CharLimit = maxInputLength
	input.Focus()

	h := help.New()
	h.ShowAll = cfg.ShowHelp

	return Model{
		analyzer:  cfg.Analyzer,
		history:   cfg.History,
		formatter: cli.NewFormatter(),
		keymap:    DefaultKeyMap(),
		help:      h,
		input:     input,
		selected:  -1,
		width:     cfg.Width,
		height:    cfg.Height,
	}
}

// Init loads the history and starts the cursor blinking.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.loadHistory())
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case analyzedMsg:
		result := msg.result
		m.current = &result
		m.selected = -1
		m.lastError = msg.err
		return m, m.loadHistory()

	case historyLoadedMsg:
		if msg.err != nil {
			if m.lastError == nil {
				m.lastError = msg.err
			}
			return m, nil
		}
		m.entries = msg.entries
		if m.selected >= len(m.entries) {
			m.selected = len(m.entries) - 1
		}
		return m, nil

	case tea.KeyMsg:
		if cmd, handled := m.handleKey(msg); handled {
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleKey returns handled=false for keys the input should receive.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return tea.Quit, true

	case key.Matches(msg, m.keymap.Analyze):
		raw := m.input.Value()
		m.input.Reset()
		return m.analyze(raw), true

	case key.Matches(msg, m.keymap.Down):
		if m.selected < len(m.entries)-1 {
			m.selected++
		}
		return nil, true

	case key.Matches(msg, m.keymap.Up):
		if m.selected > -1 {
			m.selected--
		}
		return nil, true

	case key.Matches(msg, m.keymap.Recall):
		if result := m.shown(); result != nil {
			m.input.SetValue(result.Content)
			m.input.CursorEnd()
		}
		return nil, true

	case key.Matches(msg, m.keymap.Clear):
		m.current = nil
		m.selected = -1
		m.lastError = nil
		m.input.Reset()
		return nil, true

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		return nil, true
	}

	return nil, false
}

// shown returns the result on display: a selected history entry, or the
// latest analysis.
func (m Model) shown() *model.AnalysisResult {
	if m.selected >= 0 && m.selected < len(m.entries) {
		return &m.entries[m.selected].Result
	}
	return m.current
}
