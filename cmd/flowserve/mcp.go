package main

import (
	"log"
	"os"

	"github.com/aretw0/flowserve/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts the flowserve engine as an MCP Server over Standard Input/Output.
This allows AI agents to run the workflow (run_workflow) and inspect it (inspect_graph) as tools.`,
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

		// Ensure logs don't corrupt JSON-RPC on Stdout
		log.SetOutput(os.Stderr)
		logger.Info("Starting flowserve MCP Server (Stdio)", "graph", src.Name)
		if err := mcp.NewServer(engine, logger).ServeStdio(); err != nil {
			logger.Error("MCP Server execution failed", "error", err)
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
