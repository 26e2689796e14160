package main

import (
	"github.com/aretw0/flowserve/internal/cli"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the workflow once and print the result",
	Long: `Executes the workflow once for a request described by flags, without starting a server.

Example:
  flowserve run --method POST --body '{"customer": "ana", "prices": [40, 80]}'
  flowserve run --graph flow.yaml --body @request.json --query page=2 --mermaid`,
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

		var opts cli.RunOptions
		opts.Method, _ = cmd.Flags().GetString("method")
		opts.Path, _ = cmd.Flags().GetString("path")
		opts.Body, _ = cmd.Flags().GetString("body")
		opts.Query, _ = cmd.Flags().GetStringArray("query")
		opts.Headers, _ = cmd.Flags().GetStringArray("header")
		opts.Format, _ = cmd.Flags().GetString("format")
		opts.Mermaid, _ = cmd.Flags().GetBool("mermaid")

		_, err = cli.RunOnce(cmd.Context(), engine, opts, cmd.OutOrStdout())
		return err
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("method", "GET", "Request method")
	runCmd.Flags().String("path", "/", "Request path")
	runCmd.Flags().String("body", "", "JSON request body, or @file")
	runCmd.Flags().StringArray("query", nil, "Query parameter as key=value (repeatable)")
	runCmd.Flags().StringArray("header", nil, "Header as key=value (repeatable)")
	runCmd.Flags().String("format", cli.FormatAuto, "Output format: auto, json or pretty")
	runCmd.Flags().Bool("mermaid", false, "Append a Mermaid graph highlighting the executed nodes")
}
