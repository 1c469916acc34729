package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configPath string
	envFile    string
)

// NewRootCmd creates the actcode command tree
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "actcode",
		Short: "Recover activation codes from activation dialog screenshots",
		Long: "actcode reads a screenshot of a phone activation dialog, runs OCR on it and\n" +
			"returns the installation ID: nine groups of seven digits.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadEnvFile(envFile)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newExtractCmd())
	rootCmd.AddCommand(versionCmd)

	return rootCmd
}

// loadEnvFile loads key=value pairs without overriding variables that are
// already set. A missing file is not an error.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
