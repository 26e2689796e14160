package main

import (
	"fmt"

	"github.com/aretw0/flowserve/internal/validator"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the workflow for consistency",
	Long:  `Crawls the workflow from its api entry node and reports dead links, unreachable nodes and unusable edges.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, src, err := setup(cmd)
		if err != nil {
			return err
		}
		defer src.Close()

		engine, err := loadEngine(cmd.Context(), cfg, logger, src)
		if err != nil {
			return err
		}

		report := validator.ValidateGraph(engine.Graph())
		out := cmd.OutOrStdout()
		for _, w := range report.Warnings {
			fmt.Fprintf(out, "warning: %s\n", w)
		}
		if err := report.Err(); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		fmt.Fprintln(out, "Workflow is valid! ✅")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
