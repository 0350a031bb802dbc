package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Veraticus/qr-signal/internal/tui"
)

func interactiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "interactive",
		Aliases: []string{"i"},
		Short:   "Analyze payloads in an interactive terminal UI",
		Long: `Open a terminal UI where pasted payloads are analyzed as you submit them.
Recent scans are kept for the session and can be browsed with the arrow keys.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
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

			return tui.Run(ctx, tui.WithAnalyzer(analyzer), tui.WithHistory(history))
		},
	}
}
