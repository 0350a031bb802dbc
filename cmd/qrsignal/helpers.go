package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/viper"

	"github.com/Veraticus/qr-signal/internal/analysis"
	"github.com/Veraticus/qr-signal/internal/classification"
	"github.com/Veraticus/qr-signal/internal/config"
	"github.com/Veraticus/qr-signal/internal/storage"
)

// currentConfig returns the configuration loaded by initConfig, or the
// defaults when a command runs without the root command.
func currentConfig() (*config.Config, error) {
	if appConfig != nil {
		return appConfig, nil
	}
	return config.Load(viper.New())
}

// buildAnalyzer wires the rule set, classifier and engine from cfg.
func buildAnalyzer(cfg *config.Config) (analysis.Analyzer, error) {
	set, err := cfg.RuleSet()
	if err != nil {
		return nil, err
	}

	classifier, err := classification.NewClassifier(set, classification.DefaultPrefixes())
	if err != nil {
		return nil, fmt.Errorf("failed to build classifier: %w", err)
	}

	engine := analysis.NewEngine(analysis.Deps{
		Rules:      set,
		Classifier: classifier,
		Logger:     slog.Default(),
	}, cfg.Analysis)

	if cfg.CacheSize > 0 {
		return analysis.NewCached(engine, cfg.CacheSize), nil
	}
	return engine, nil
}

// openHistory opens the configured history store.
func openHistory(cfg *config.Config) (storage.History, error) {
	history, err := storage.NewHistory(cfg.History.Backend, cfg.History.Capacity)
	if err != nil {
		return nil, fmt.Errorf("failed to open history: %w", err)
	}
	return history, nil
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(v)
}
