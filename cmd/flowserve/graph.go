package main

import (
	"fmt"

	"github.com/aretw0/flowserve/internal/presentation/graph"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the workflow graph visualization",
	Long:  `Loads the workflow and outputs a Mermaid diagram (graph TD) representing its nodes and edges.`,
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

		// Generate and print Mermaid graph
		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(engine.Graph(), nil))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
