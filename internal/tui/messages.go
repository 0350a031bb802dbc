package tui

import (
	"github.com/Veraticus/qr-signal/internal/model"
	"github.com/Veraticus/qr-signal/internal/storage"
)

type analyzedMsg struct {
	err    error
	result model.AnalysisResult
}

type historyLoadedMsg struct {
	err     error
	entries []storage.Entry
}
