package activation

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/facturaIA/activation-code-ocr/internal/ocr"
	"github.com/rs/zerolog"
)

// Attempt records how one strategy went
type Attempt struct {
	Strategy    string        `json:"strategy"`
	Tier        Tier          `json:"tier,omitempty"`
	Found       bool          `json:"found"`
	TextLength  int           `json:"textLength"`
	Corrected   string        `json:"-"`
	OCRDuration time.Duration `json:"ocrDuration"`
}

// Extractor runs the primary strategy and, when it finds nothing, the
// fallback strategy.
type Extractor struct {
	engine   ocr.Engine
	preparer Preparer
	language string
	logger   zerolog.Logger
	debugDir string
}

// NewExtractor creates an extractor recognizing text with engine in language
func NewExtractor(engine ocr.Engine, preparer Preparer, language string, logger zerolog.Logger) *Extractor {
	if language == "" {
		language = "rus"
	}
	return &Extractor{
		engine:   engine,
		preparer: preparer,
		language: language,
		logger:   logger,
	}
}

// SetDebugDir makes every attempt write its preprocessed image into dir
func (e *Extractor) SetDebugDir(dir string) {
	e.debugDir = dir
}

// Extract returns the activation code found in the image at path. A missing
// code is a NotFound result, not an error; errors mean the image could not be
// loaded or recognized.
func (e *Extractor) Extract(ctx context.Context, path string) (Result, error) {
	r, _, err := e.ExtractWithTrace(ctx, path)
	return r, err
}

// ExtractWithTrace is Extract that also reports every attempt made
func (e *Extractor) ExtractWithTrace(ctx context.Context, path string) (Result, []Attempt, error) {
	var attempts []Attempt

	for _, s := range []Strategy{Primary, Fallback} {
		r, attempt, err := e.run(ctx, s, path)
		if err != nil {
			return NotFound(), attempts, err
		}
		attempts = append(attempts, attempt)

		e.logger.Debug().
			Str("strategy", s.Name).
			Str("engine", e.engine.Name()).
			Bool("found", attempt.Found).
			Str("tier", string(attempt.Tier)).
			Int("text_length", attempt.TextLength).
			Dur("ocr_duration", attempt.OCRDuration).
			Msg("strategy finished")

		if r.IsFound() {
			return r, attempts, nil
		}
	}

	return NotFound(), attempts, nil
}

func (e *Extractor) run(ctx context.Context, s Strategy, path string) (Result, Attempt, error) {
	attempt := Attempt{Strategy: s.Name}

	image, err := s.prepare(e.preparer, path)
	if err != nil {
		return NotFound(), attempt, fmt.Errorf("%s preprocessing failed: %w", s.Name, err)
	}

	if e.debugDir != "" {
		out := filepath.Join(e.debugDir, s.Name+".png")
		if err := ocr.SaveProcessedImage(image, out); err != nil {
			e.logger.Warn().Err(err).Str("path", out).Msg("could not save preprocessed image")
		}
	}

	start := time.Now()
	text, err := e.engine.Recognize(ctx, image, ocr.Options{Language: e.language, Layout: s.Layout})
	attempt.OCRDuration = time.Since(start)
	if err != nil {
		return NotFound(), attempt, fmt.Errorf("%s OCR failed: %w", s.Name, err)
	}

	corrected := Correct(text)
	r, tier := s.locate(corrected)

	attempt.Found = r.IsFound()
	attempt.Tier = tier
	attempt.TextLength = len([]rune(text))
	attempt.Corrected = corrected

	return r, attempt, nil
}
