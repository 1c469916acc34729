package ocr

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// TesseractOCR implements Engine using the Tesseract library
type TesseractOCR struct{}

// NewTesseractOCR creates a new Tesseract OCR instance
func NewTesseractOCR() *TesseractOCR {
	return &TesseractOCR{}
}

// Name returns the engine name
func (t *TesseractOCR) Name() string {
	return "tesseract"
}

// Check reports the linked Tesseract version
func (t *TesseractOCR) Check() (string, error) {
	version := strings.TrimSpace(gosseract.Version())
	if version == "" {
		return "", fmt.Errorf("%w: tesseract version unknown", ErrEngineUnavailable)
	}
	return version, nil
}

// Recognize performs OCR on preprocessed image bytes. Tesseract itself cannot
// be interrupted, so a cancelled ctx returns early and the running call is
// left to finish in the background.
func (t *TesseractOCR) Recognize(ctx context.Context, imageBytes []byte, opts Options) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("OCR aborted: %w", err)
	}

	type result struct {
		text string
		err  error
	}
	done := make(chan result, 1)

	go func() {
		text, err := t.extractText(imageBytes, opts)
		done <- result{text: text, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", fmt.Errorf("OCR aborted: %w", ctx.Err())
	case r := <-done:
		return r.text, r.err
	}
}

func (t *TesseractOCR) extractText(imageBytes []byte, opts Options) (string, error) {
	// Clients are not safe for concurrent use, one per call
	client := gosseract.NewClient()
	defer client.Close()

	language := opts.Language
	if language == "" {
		language = "rus"
	}
	err := client.SetLanguage(language)
	if err != nil {
		return "", fmt.Errorf("failed to set language: %w", err)
	}

	err = client.SetPageSegMode(pageSegMode(opts.Layout))
	if err != nil {
		return "", fmt.Errorf("failed to set page segmentation mode: %w", err)
	}

	err = client.SetImageFromBytes(imageBytes)
	if err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR extraction failed: %w", err)
	}

	return text, nil
}

func pageSegMode(l Layout) gosseract.PageSegMode {
	if l == LayoutSingleColumn {
		return gosseract.PSM_SINGLE_COLUMN
	}
	return gosseract.PSM_AUTO
}
