package cmd

import (
	"fmt"
	"runtime"

	"github.com/facturaIA/activation-code-ocr/api"
	"github.com/otiai10/gosseract/v2"
	"github.com/spf13/cobra"
)

// Set by main.go from -ldflags
var (
	gitCommit = "none"
	buildTime = "unknown"
)

// SetVersionInfo sets the build information from main.go
func SetVersionInfo(commit, built string) {
	gitCommit = commit
	buildTime = built
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "actcode %s\n", api.Version)
		fmt.Fprintf(out, "  Git commit: %s\n", gitCommit)
		fmt.Fprintf(out, "  Built:      %s\n", buildTime)
		fmt.Fprintf(out, "  Go:         %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
		fmt.Fprintf(out, "  Tesseract:  %s\n", gosseract.Version())
	},
}
