package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/facturaIA/activation-code-ocr/api"
	"github.com/facturaIA/activation-code-ocr/internal/ocr"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var addr string

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API (POST /extract-code)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadRuntime()
			if err != nil {
				return err
			}

			extractor, engine, err := newExtractor(cfg, logger)
			if err != nil {
				return err
			}
			defer ocr.ReleaseMagick()

			if addr == "" {
				addr = cfg.Addr()
			}

			handler := api.NewHandler(cfg, extractor, engine, logger)
			server := &http.Server{
				Addr:              addr,
				Handler:           handler.Router(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				logger.Info().
					Str("addr", addr).
					Str("engine", engine.Name()).
					Str("preprocessor", cfg.OCR.Preprocessor).
					Dur("ocr_timeout", cfg.OCR.Timeout).
					Msg("server starting")
				errCh <- server.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			case <-ctx.Done():
			}

			logger.Info().Msg("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	}

	serveCmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides host and port from the config")

	return serveCmd
}
