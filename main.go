package main

import "github.com/facturaIA/activation-code-ocr/cmd"

// Set at build time via -ldflags "-X main.GitCommit=... -X main.BuildTime=..."
var (
	GitCommit = "none"
	BuildTime = "unknown"
)

func main() {
	cmd.SetVersionInfo(GitCommit, BuildTime)
	cmd.Execute()
}
