package main

import (
	"fmt"

	"github.com/aretw0/flowserve/internal/cli"
	"github.com/spf13/cobra"
)

var publishCmd = &cobra.Command{
	Use:   "publish <file>",
	Short: "Store a workflow file in Redis",
	Long: `Reads a workflow file and stores it under --redis-key, notifying servers started
with --watch on --redis-channel.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cfg.RedisAddr == "" {
			return cli.ErrNoPublisher
		}
		// The file is the payload, not the source.
		cfg.GraphPath = ""
		src, err := cli.OpenSource(cfg)
		if err != nil {
			return err
		}
		defer src.Close()

		def, err := cli.Publish(cmd.Context(), args[0], src.Publisher)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Published %d nodes and %d edges to %s\n", len(def.Nodes), len(def.Edges), src.Name)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(publishCmd)
}
