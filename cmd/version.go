package cmd

import (
	"fmt"

	"github.com/ramanasai/prodhub/internal/version"
	"github.com/spf13/cobra"
)

var versionShort bool

var versionCmd = &cobra.Command{
	Use:         "version",
	Short:       "Print version information",
	Annotations: map[string]string{"skipEnv": "1"},
	Run: func(cmd *cobra.Command, args []string) {
		if versionShort {
			fmt.Println(version.GetShortVersion())
			return
		}
		fmt.Println(version.GetVersionInfo())
	},
}

func init() {
	versionCmd.Flags().BoolVarP(&versionShort, "short", "s", false, "Only the version number")
}
