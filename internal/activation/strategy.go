package activation

import (
	"github.com/facturaIA/activation-code-ocr/internal/ocr"
)

// Preparer produces the two image variants the strategies recognize
type Preparer interface {
	Grayscale(path string) ([]byte, error)
	EnhancedGrayscale(path string) ([]byte, error)
}

// Strategy is one preprocessing + OCR + parsing attempt
type Strategy struct {
	Name   string
	Layout ocr.Layout

	prepare func(p Preparer, path string) ([]byte, error)
	locate  func(corrected string) (Result, Tier)
}

// Primary reads the plain grayscale image with automatic layout analysis and
// expects the code right after the dialog header.
var Primary = Strategy{
	Name:   "primary",
	Layout: ocr.LayoutAuto,
	prepare: func(p Preparer, path string) ([]byte, error) {
		return p.Grayscale(path)
	},
	locate: func(corrected string) (Result, Tier) {
		r, tier := locateAfterHeader(corrected)
		if code, ok := r.Code(); ok {
			return Found(FixLeadingDigits(code)), tier
		}
		return r, tier
	},
}

// Fallback reads the contrast enhanced image as a single column and accepts
// looser code layouts.
var Fallback = Strategy{
	Name:   "fallback",
	Layout: ocr.LayoutSingleColumn,
	prepare: func(p Preparer, path string) ([]byte, error) {
		return p.EnhancedGrayscale(path)
	},
	locate: locateFallback,
}
