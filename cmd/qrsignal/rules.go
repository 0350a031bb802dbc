package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/qr-signal/internal/cli"
	"github.com/Veraticus/qr-signal/internal/common"
	"github.com/Veraticus/qr-signal/internal/rules"
)

func rulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Inspect the rule tables",
		Long: `Show the shortener, tracking, IP-logger, payment and app-store tables the
analyzer uses. Tables come from the built-in defaults, extended or replaced
by the "rules" section of the config file.`,
	}

	cmd.AddCommand(listRulesCmd())
	cmd.AddCommand(validateRulesCmd())

	return cmd
}

func listRulesCmd() *cobra.Command {
	var (
		category   string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the effective rule tables",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := currentConfig()
			if err != nil {
				return err
			}
			tables := cfg.EffectiveTables()

			if category != "" {
				c, err := rules.ParseCategory(category)
				if err != nil {
					return common.NewUserError(fmt.Sprintf("Unknown rule category %q", category), err)
				}
				tables = tables.Only(c)
			}

			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), tables)
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.NewFormatter().FormatRules(tables))
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Only show one category")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output tables as JSON")

	return cmd
}

func validateRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check that the configured rule tables compile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := currentConfig()
			if err != nil {
				return err
			}
			tables := cfg.EffectiveTables()
			if _, err := rules.Compile(tables); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("%d rule entries across %d categories", tables.Count(), len(rules.Categories()))))
			return nil
		},
	}
}
