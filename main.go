package main

import (
	"os"

	"github.com/cottand/rebind/cmd"
	"github.com/spf13/cobra"
)

func main() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "rebind [subcommand]",
	Short:        "rebind attaches described type members to other types",
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(cmd.TransformCmd)
	rootCmd.AddCommand(cmd.InjectCmd)
}
