// Package analysis classifies decoded QR payloads and assigns each a risk signal.
package analysis

import (
	"log/slog"

	"github.com/Veraticus/qr-signal/internal/classification"
	"github.com/Veraticus/qr-signal/internal/common"
	"github.com/Veraticus/qr-signal/internal/rules"
)

// Deps contains the collaborators used by the analysis engine.
// Every field is optional.
type Deps struct {
	// Rules provides the rule tables. Defaults to rules.Default().
	Rules *rules.Set
	// Classifier assigns payload types. Defaults to a classifier over Rules.
	Classifier *classification.Classifier
	// Logger receives debug traces. Defaults to a discarding logger.
	Logger *slog.Logger
}

func (d Deps) withDefaults() Deps {
	if d.Rules == nil {
		d.Rules = rules.Default()
	}
	if d.Classifier == nil {
		d.Classifier = classification.NewDefaultClassifier(d.Rules)
	}
	if d.Logger == nil {
		d.Logger = common.DiscardLogger()
	}
	return d
}

// Config holds configuration options for the analysis engine.
type Config struct {
	// VerifyDestinationNotice prepends a generic "trust the destination"
	// sentence to the awareness text of every link result.
	VerifyDestinationNotice bool
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() Config {
	return Config{
		VerifyDestinationNotice: false,
	}
}
