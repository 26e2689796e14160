package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/flowserve"
	"github.com/aretw0/flowserve/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of flowserve",
	Run: func(cmd *cobra.Command, args []string) {
		if banner, _ := cmd.Flags().GetBool("banner"); banner {
			tui.PrintBanner(cmd.OutOrStdout(), strings.TrimSpace(flowserve.Version))
			return
		}
		fmt.Fprintf(cmd.OutOrStdout(), "flowserve version %s\n", strings.TrimSpace(flowserve.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().Bool("banner", false, "Print the ASCII banner")
}
