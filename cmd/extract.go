package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/facturaIA/activation-code-ocr/internal/activation"
	"github.com/facturaIA/activation-code-ocr/internal/ocr"
	"github.com/spf13/cobra"
)

func newExtractCmd() *cobra.Command {
	var (
		verbose  bool
		debugDir string
		asJSON   bool
	)

	extractCmd := &cobra.Command{
		Use:   "extract <image>",
		Short: "Extract the activation code from a local image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadRuntime()
			if err != nil {
				return err
			}

			extractor, _, err := newExtractor(cfg, logger)
			if err != nil {
				return err
			}
			defer ocr.ReleaseMagick()

			if debugDir != "" {
				extractor.SetDebugDir(debugDir)
			}

			result, attempts, err := extractor.ExtractWithTrace(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return json.NewEncoder(out).Encode(map[string]string{"code": result.String()})
			}

			if verbose {
				printAttempts(cmd, attempts)
			}
			fmt.Fprintln(out, result.String())
			return nil
		},
	}

	extractCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show every strategy attempt and its corrected OCR text")
	extractCmd.Flags().StringVar(&debugDir, "debug-dir", "", "write the preprocessed images into this directory")
	extractCmd.Flags().BoolVar(&asJSON, "json", false, "print the same JSON body the HTTP API returns")

	return extractCmd
}

func printAttempts(cmd *cobra.Command, attempts []activation.Attempt) {
	w := cmd.ErrOrStderr()
	for _, a := range attempts {
		status := "not found"
		if a.Found {
			status = "found via " + string(a.Tier)
		}
		fmt.Fprintf(w, "== %s: %s (%d chars, OCR %s)\n", a.Strategy, status, a.TextLength, a.OCRDuration)
		fmt.Fprintln(w, a.Corrected)
	}
}
