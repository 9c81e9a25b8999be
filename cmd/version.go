package cmd

import (
	"runtime"

	"github.com/spf13/cobra"
)

// versionCmd prints build details for bug reports.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of shiftlens.",
	Long: `Display the release version, the commit and build time of the binary
and the Go runtime it was built with. Include this output when reporting a bug.`,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("shiftlens CLI\n")
		cmd.Printf("  Version: %s\n", version)
		cmd.Printf("  Commit:  %s\n", commit)
		cmd.Printf("  Built:   %s\n", date)
		cmd.Printf("  Runtime: %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	},
}
