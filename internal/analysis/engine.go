package analysis

import (
	"strings"

	"github.com/Veraticus/qr-signal/internal/common"
	"github.com/Veraticus/qr-signal/internal/model"
)

// Analyzer turns a raw payload into an analysis result.
type Analyzer interface {
	Analyze(raw string) model.AnalysisResult
}

// Engine is the payload analysis pipeline. It holds no mutable state,
// so a single Engine may be shared between goroutines.
type Engine struct {
	deps   Deps
	config Config
}

// NewEngine creates a new analysis engine.
func NewEngine(deps Deps, cfg Config) *Engine {
	return &Engine{
		deps:   deps.withDefaults(),
		config: cfg,
	}
}

// New returns an engine with the built-in rule tables and default config.
func New() *Engine {
	return NewEngine(Deps{}, DefaultConfig())
}

// Analyze classifies raw and returns its result. It never panics and never
// fails: empty and malformed payloads map to sentinel results.
func (e *Engine) Analyze(raw string) (result model.AnalysisResult) {
	content := strings.TrimSpace(raw)

	defer func() {
		if r := recover(); r != nil {
			e.deps.Logger.Error("Payload analysis panicked", "panic", r)
			result = malformedResult(content)
		}
	}()

	if content == "" {
		return emptyResult()
	}

	qrType := e.deps.Classifier.Classify(content)

	switch qrType {
	case model.TypeWebsite, model.TypePayment, model.TypeAppDownload:
		result = e.analyzeWebsite(content, qrType)
	case model.TypeWiFi, model.TypeContact, model.TypeEmail, model.TypePhone:
		result = analyzeSimple(content, qrType)
	case model.TypeFile:
		result = fileResult(content)
	case model.TypeUnknown:
		result = unknownResult(content)
	default:
		result = unknownResult(content)
	}

	common.LogDebug(e.deps.Logger, "Analyzed payload", common.Fields{
		"classified_type": string(qrType),
		"type":            string(result.Type),
		"signal":          string(result.Signal),
		"subject":         result.Subject(),
	})

	return result
}

func emptyResult() model.AnalysisResult {
	return model.AnalysisResult{
		Content:     "",
		Type:        model.TypeUnknown,
		Signal:      model.SignalCrimson,
		Description: emptyDescription,
		Action:      emptyAction,
		Awareness:   emptyAwareness,
		Details:     model.TextDetails{},
	}
}

func malformedResult(content string) model.AnalysisResult {
	return model.AnalysisResult{
		Content:     content,
		Type:        model.TypeUnknown,
		Signal:      model.SignalCrimson,
		Description: malformedDescription,
		Action:      malformedAction,
		Awareness:   malformedAwareness,
		Details:     model.TextDetails{},
	}
}

func fileResult(content string) model.AnalysisResult {
	return model.AnalysisResult{
		Content:     content,
		Type:        model.TypeFile,
		Signal:      model.SignalCrimson,
		Description: fileDescription,
		Action:      fileAction,
		Awareness:   fileAwareness,
		Details:     model.FileDetails{MediaType: dataMediaType(content)},
	}
}

func unknownResult(content string) model.AnalysisResult {
	return model.AnalysisResult{
		Content:     content,
		Type:        model.TypeUnknown,
		Signal:      model.SignalAmber,
		Description: unknownDescription,
		Action:      unknownAction,
		Awareness:   unknownAwareness,
		Details:     model.TextDetails{},
	}
}

// dataMediaType returns the media type of a data: URL header.
func dataMediaType(content string) string {
	header := content[len("data:"):]
	if i := strings.IndexAny(header, ";,"); i >= 0 {
		header = header[:i]
	}
	return strings.ToLower(strings.TrimSpace(header))
}
