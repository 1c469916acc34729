package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/facturaIA/activation-code-ocr/internal/activation"
	"github.com/facturaIA/activation-code-ocr/internal/ai"
	"github.com/facturaIA/activation-code-ocr/internal/models"
	"github.com/facturaIA/activation-code-ocr/internal/ocr"
	"github.com/rs/zerolog"
)

// newLogger builds the process logger from cfg
func newLogger(cfg models.LogConfig, w io.Writer) (zerolog.Logger, error) {
	level := zerolog.InfoLevel
	if cfg.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		level = parsed
	}

	if cfg.Format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	return zerolog.New(w).Level(level).With().Timestamp().Logger(), nil
}

// newEngine returns the configured OCR engine, bounded by ocr.timeout
func newEngine(cfg *models.Config) (ocr.Engine, error) {
	var engine ocr.Engine

	switch cfg.OCR.Engine {
	case models.EngineTesseract:
		engine = ocr.NewTesseractOCR()
	default:
		recognizer, err := ai.NewEngine(cfg)
		if err != nil {
			return nil, err
		}
		engine = recognizer
	}

	return ocr.WithTimeout(engine, cfg.OCR.Timeout), nil
}

// newExtractor wires preprocessor, engine and extractor together
func newExtractor(cfg *models.Config, logger zerolog.Logger) (*activation.Extractor, ocr.Engine, error) {
	preprocessor, err := ocr.NewPreprocessor(cfg.OCR.Preprocessor)
	if err != nil {
		return nil, nil, err
	}

	engine, err := newEngine(cfg)
	if err != nil {
		return nil, nil, err
	}

	extractor := activation.NewExtractor(engine, preprocessor, cfg.OCR.Language, logger)
	return extractor, engine, nil
}

// loadRuntime loads config and logger shared by every subcommand
func loadRuntime() (*models.Config, zerolog.Logger, error) {
	cfg, err := models.LoadConfig(configPath)
	if err != nil {
		return nil, zerolog.Nop(), err
	}

	logger, err := newLogger(cfg.Log, os.Stderr)
	if err != nil {
		return nil, zerolog.Nop(), err
	}

	return cfg, logger, nil
}
