package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"math"
	"os"

	"github.com/disintegration/imaging"
)

// ContrastFactor is the enhancement applied by EnhancedGrayscale. 1.0 leaves
// the image unchanged, 2.0 doubles each pixel's distance from the mean gray.
const ContrastFactor = 2.0

// Backend names
const (
	BackendImaging = "imaging"
	BackendImagick = "imagick"
)

// Preprocessor prepares screenshots for OCR
type Preprocessor struct {
	backend string
}

// NewPreprocessor creates a new image preprocessor. An empty backend selects
// the pure Go imaging backend.
func NewPreprocessor(backend string) (*Preprocessor, error) {
	switch backend {
	case "", BackendImaging:
		backend = BackendImaging
	case BackendImagick:
		initMagick()
	default:
		return nil, fmt.Errorf("unsupported preprocessor backend: %s", backend)
	}
	return &Preprocessor{backend: backend}, nil
}

// Backend returns the active backend name
func (p *Preprocessor) Backend() string {
	return p.backend
}

// Grayscale loads the image at path and converts it to single channel gray.
// The result is PNG encoded.
func (p *Preprocessor) Grayscale(path string) ([]byte, error) {
	if p.backend == BackendImagick {
		return magickGrayscale(path, 1)
	}

	gray, err := loadGray(path)
	if err != nil {
		return nil, err
	}
	return encodePNG(gray)
}

// EnhancedGrayscale is Grayscale followed by contrast enhancement with
// ContrastFactor.
func (p *Preprocessor) EnhancedGrayscale(path string) ([]byte, error) {
	if p.backend == BackendImagick {
		return magickGrayscale(path, ContrastFactor)
	}

	gray, err := loadGray(path)
	if err != nil {
		return nil, err
	}
	return encodePNG(EnhanceContrast(gray, ContrastFactor))
}

// loadGray decodes the file and drops color and transparency.
func loadGray(path string) (*image.NRGBA, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageLoad, err)
	}

	gray := imaging.Grayscale(img)
	return imaging.AdjustFunc(gray, func(c color.NRGBA) color.NRGBA {
		c.A = 255
		return c
	}), nil
}

// EnhanceContrast blends every pixel of a gray image away from the image's
// mean level by factor, clamping to the valid range.
func EnhanceContrast(gray *image.NRGBA, factor float64) *image.NRGBA {
	mean := math.Floor(meanLevel(gray) + 0.5)

	return imaging.AdjustFunc(gray, func(c color.NRGBA) color.NRGBA {
		v := clampLevel(mean + factor*(float64(c.R)-mean))
		return color.NRGBA{R: v, G: v, B: v, A: c.A}
	})
}

func meanLevel(gray *image.NRGBA) float64 {
	b := gray.Bounds()
	n := b.Dx() * b.Dy()
	if n == 0 {
		return 0
	}

	var sum uint64
	for y := 0; y < b.Dy(); y++ {
		row := gray.Pix[y*gray.Stride : y*gray.Stride+b.Dx()*4]
		for x := 0; x < len(row); x += 4 {
			sum += uint64(row[x])
		}
	}
	return float64(sum) / float64(n)
}

func clampLevel(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v + 0.5)
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

// SaveProcessedImage saves preprocessed image to file (for debugging)
func SaveProcessedImage(imageBytes []byte, outputPath string) error {
	err := os.WriteFile(outputPath, imageBytes, 0o644)
	if err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
