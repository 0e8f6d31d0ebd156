package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/warp-contracts/ibc-bench/src/utils/build_info"
)

func init() {
	RootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Prints version of the binary",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s (built %s)\n", build_info.Version, build_info.BuildDate)
		return
	},
	PostRunE: func(cmd *cobra.Command, args []string) (err error) {
		applicationCtxCancel()
		return
	},
}
