package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/schollz/progressbar/v3"

	"github.com/Veraticus/qr-signal/internal/analysis"
	"github.com/Veraticus/qr-signal/internal/model"
)

// BatchOptions configures AnalyzeBatch.
type BatchOptions struct {
	// Progress receives the progress bar. Nil disables it.
	Progress io.Writer
	// OnResult is called after each payload is analyzed.
	OnResult func(model.AnalysisResult) error
}

// AnalyzeBatch analyzes payloads in order. On cancellation it returns the
// results gathered so far together with the context error.
func AnalyzeBatch(ctx context.Context, analyzer analysis.Analyzer, payloads []string, opts BatchOptions) ([]model.AnalysisResult, error) {
	var bar *progressbar.ProgressBar
	if opts.Progress != nil && len(payloads) > 1 {
		bar = newProgressBar(opts.Progress, len(payloads))
	}

	results := make([]model.AnalysisResult, 0, len(payloads))
	for _, payload := range payloads {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		result := analyzer.Analyze(payload)
		results = append(results, result)

		if opts.OnResult != nil {
			if err := opts.OnResult(result); err != nil {
				return results, fmt.Errorf("failed to record result: %w", err)
			}
		}

		if bar != nil {
			if err := bar.Add(1); err != nil {
				slog.Warn("Failed to update progress bar", "error", err)
			}
		}
	}

	return results, nil
}

func newProgressBar(w io.Writer, total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Analyzing payloads...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(w); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)
}
