package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/Veraticus/qr-signal/internal/common"
	"github.com/Veraticus/qr-signal/internal/model"
)

// Validation errors.
var (
	ErrNilContext    = errors.New("context cannot be nil")
	ErrInvalidResult = errors.New("invalid analysis result")
)

// validateContext ensures the context is usable.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return ctx.Err()
}

// validateCapacity ensures the capacity is within the supported range.
func validateCapacity(capacity int) error {
	if capacity < MinHistoryCapacity || capacity > MaxHistoryCapacity {
		return common.InvalidConfigf("history capacity %d must be between %d and %d",
			capacity, MinHistoryCapacity, MaxHistoryCapacity)
	}
	return nil
}

// validateResult ensures a result carries known enum values.
func validateResult(result model.AnalysisResult) error {
	if !result.Type.IsValid() {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidResult, result.Type)
	}
	if !result.Signal.IsValid() {
		return fmt.Errorf("%w: unknown signal %q", ErrInvalidResult, result.Signal)
	}
	return nil
}

func invalidBackend(backend Backend) error {
	return common.InvalidConfigf("unknown history backend %q", backend)
}
