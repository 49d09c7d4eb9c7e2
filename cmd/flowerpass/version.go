package main

import (
	"github.com/spf13/cobra"

	"github.com/flowerpass/flowerpass/cmd/flowerpass/internal"
	"github.com/flowerpass/flowerpass/pkg/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		if globalFlags.GetOutputFormat() == internal.FormatJSON {
			formatter := internal.NewFormatter(internal.FormatJSON, cmd.OutOrStdout())
			return formatter.PrintJSON(version.Info())
		}
		cmd.Println(version.String())
		return nil
	},
}
