package cmd

import (
	"fmt"

	"github.com/BrunoTulio/safesync/internal/version"
	"github.com/spf13/cobra"
)

var versionShort bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long:  `Display version, build date, git commit and Go version`,
	Run: func(cmd *cobra.Command, args []string) {
		info := version.Get()

		if versionShort {
			fmt.Println(info.Version)
			return
		}

		fmt.Printf("safesync %s\n", info.Version)
		fmt.Printf("  Commit:     %s\n", info.GitCommit)
		fmt.Printf("  Built:      %s\n", info.BuildDate)
		fmt.Printf("  Go:         %s %s/%s\n", info.GoVersion, info.OS, info.Arch)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolVarP(&versionShort, "short", "s", false, "print only the version")
}
