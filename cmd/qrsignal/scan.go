package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/qr-signal/internal/cli"
	"github.com/Veraticus/qr-signal/internal/common"
	"github.com/Veraticus/qr-signal/internal/config"
	"github.com/Veraticus/qr-signal/internal/model"
	"github.com/Veraticus/qr-signal/internal/storage"
)

type scanOptions struct {
	file       string
	failOn     string
	signal     string
	jsonOutput bool
	history    int
	details    bool
	noProgress bool
}

func scanCmd() *cobra.Command {
	var opts scanOptions

	cmd := &cobra.Command{
		Use:   "scan [payload...]",
		Short: "Analyze QR payloads",
		Long: `Analyze one or more decoded QR payloads and explain what each would do.

Payloads come from the arguments, from --file (one per line), or from
standard input when neither is given or the only argument is "-".`,
		Example: `  qrsignal scan "https://bit.ly/3xyz"
  qrsignal scan --json "WIFI:S:Office;T:WPA;P:secret;;"
  zbarimg --raw -q codes/*.png | qrsignal scan --fail-on AMBER`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Read payloads from a file, one per line")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output results as JSON")
	cmd.Flags().BoolVar(&opts.details, "details", false, "Show the full result card for every payload")
	cmd.Flags().BoolVar(&opts.noProgress, "no-progress", false, "Hide the progress bar for batches")
	cmd.Flags().IntVar(&opts.history, "history", 0, "Show the last N history entries after analyzing")
	cmd.Flags().StringVar(&opts.signal, "signal", "", "Only report results with this signal")
	cmd.Flags().StringVar(&opts.failOn, "fail-on", "", "Exit with an error if any result is at or above this signal")

	return cmd
}

func runScan(cmd *cobra.Command, args []string, opts scanOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	filter, err := parseSignalFlag("signal", opts.signal)
	if err != nil {
		return err
	}
	threshold, err := parseSignalFlag("fail-on", opts.failOn)
	if err != nil {
		return err
	}

	payloads, err := collectPayloads(ctx, cmd.InOrStdin(), args, opts.file)
	if err != nil {
		return err
	}

	cfg, err := currentConfig()
	if err != nil {
		return err
	}

	analyzer, err := buildAnalyzer(cfg)
	if err != nil {
		return err
	}

	history, err := openHistory(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = history.Close() }()

	batchOpts := cli.BatchOptions{
		// A failed history write never stops the scan.
		OnResult: func(result model.AnalysisResult) error {
			if _, addErr := history.Add(ctx, result); addErr != nil {
				common.LogError(slog.Default(), addErr, "Failed to record scan", common.Fields{
					"type":   result.Type,
					"signal": result.Signal,
				})
			}
			return nil
		},
	}
	if !opts.noProgress && !opts.jsonOutput {
		batchOpts.Progress = cmd.ErrOrStderr()
	}

	results, err := cli.AnalyzeBatch(ctx, analyzer, payloads, batchOpts)
	if err != nil {
		return fmt.Errorf("scan stopped after %d of %d payloads: %w", len(results), len(payloads), err)
	}

	reported := results
	if filter != "" {
		reported = filterResults(results, filter)
	}

	out := cmd.OutOrStdout()
	if opts.jsonOutput {
		if err := writeScanJSON(out, reported, len(payloads) == 1 && filter == ""); err != nil {
			return fmt.Errorf("failed to write JSON: %w", err)
		}
	} else {
		if err := writeScanText(out, reported, opts.details || len(payloads) == 1); err != nil {
			return err
		}
		if hidden := len(results) - len(reported); hidden > 0 {
			if len(reported) == 0 {
				fmt.Fprintln(out, cli.FormatWarning(fmt.Sprintf("No results with signal %s", filter)))
			}
			fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("%d of %d results hidden by --signal %s", hidden, len(results), filter)))
		}
	}

	if opts.history > 0 && !opts.jsonOutput {
		entries, err := listHistory(ctx, history, filter)
		if err != nil {
			return fmt.Errorf("failed to list history: %w", err)
		}
		if len(entries) > opts.history {
			entries = entries[:opts.history]
		}
		fmt.Fprintln(out, "\n"+cli.NewFormatter().FormatHistory(entries, time.Now()))
	}

	if threshold != "" {
		return checkThreshold(results, threshold)
	}
	return nil
}

// collectPayloads gathers payloads from args, a file or stdin.
func collectPayloads(ctx context.Context, stdin io.Reader, args []string, file string) ([]string, error) {
	if file != "" && len(args) > 0 {
		return nil, common.NewUserError("Use either payload arguments or --file, not both", nil)
	}

	var payloads []string
	switch {
	case file != "":
		f, err := os.Open(config.ExpandPath(file))
		if err != nil {
			return nil, fmt.Errorf("failed to open payload file: %w", err)
		}
		defer func() { _ = f.Close() }()

		payloads, err = cli.NewPayloadReader(f).ReadAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to read payload file: %w", err)
		}
	case len(args) == 0 || (len(args) == 1 && args[0] == "-"):
		var err error
		payloads, err = cli.NewPayloadReader(stdin).ReadAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to read standard input: %w", err)
		}
	default:
		// An explicit argument is analyzed as given, even when blank.
		payloads = args
	}

	if len(payloads) == 0 {
		return nil, common.NewUserError("No payloads to analyze", common.ErrEmptyInput)
	}
	return payloads, nil
}

func parseSignalFlag(name, value string) (model.Signal, error) {
	if value == "" {
		return "", nil
	}
	signal := model.Signal(strings.ToUpper(strings.TrimSpace(value)))
	if !signal.IsValid() {
		names := make([]string, 0, len(model.AllSignals()))
		for _, s := range model.AllSignals() {
			names = append(names, s.String())
		}
		return "", common.NewUserError(
			fmt.Sprintf("Invalid --%s value %q (expected one of %s)", name, value, strings.Join(names, ", ")), nil)
	}
	return signal, nil
}

func filterResults(results []model.AnalysisResult, signal model.Signal) []model.AnalysisResult {
	filtered := make([]model.AnalysisResult, 0, len(results))
	for _, r := range results {
		if r.Signal == signal {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// listHistory returns the history newest first, restricted to signal when set.
func listHistory(ctx context.Context, history storage.History, signal model.Signal) ([]storage.Entry, error) {
	if signal == "" {
		return history.List(ctx)
	}
	return storage.ListBySignal(ctx, history, signal)
}

func writeScanJSON(w io.Writer, results []model.AnalysisResult, single bool) error {
	if single && len(results) == 1 {
		return writeJSON(w, results[0])
	}
	return writeJSON(w, results)
}

func writeScanText(w io.Writer, results []model.AnalysisResult, cards bool) error {
	formatter := cli.NewFormatter()

	for _, result := range results {
		text := formatter.FormatLine(result)
		if cards {
			text = formatter.FormatResult(result)
		}
		if _, err := fmt.Fprintln(w, text); err != nil {
			return fmt.Errorf("failed to write result: %w", err)
		}
	}

	if !cards || len(results) > 1 {
		if _, err := fmt.Fprintln(w, "\n"+formatter.FormatSummary(results)); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
	}
	return nil
}

// checkThreshold fails when any result ranks at or above threshold.
func checkThreshold(results []model.AnalysisResult, threshold model.Signal) error {
	count := 0
	for _, r := range results {
		if r.Signal.Severity() >= threshold.Severity() {
			count++
		}
	}
	if count == 0 {
		return nil
	}
	return common.NewUserError(
		fmt.Sprintf("%d of %d payloads at or above %s", count, len(results), threshold), nil)
}
