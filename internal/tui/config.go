package tui

import (
	"github.com/Veraticus/qr-signal/internal/analysis"
	"github.com/Veraticus/qr-signal/internal/storage"
)

// Config holds TUI configuration.
type Config struct {
	Analyzer analysis.Analyzer
	History  storage.History
	Width    int
	Height   int
	ShowHelp bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

func defaultConfig() Config {
	return Config{
		Width:  80,
		Height: 24,
	}
}

// WithAnalyzer sets the analyzer used for new payloads.
func WithAnalyzer(a analysis.Analyzer) Option {
	return func(c *Config) {
		c.Analyzer = a
	}
}

// WithHistory records every analysis in h.
func WithHistory(h storage.History) Option {
	return func(c *Config) {
		c.History = h
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithFullHelp starts with the full help view expanded.
func WithFullHelp() Option {
	return func(c *Config) {
		c.ShowHelp = true
	}
}
