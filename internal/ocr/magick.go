package ocr

import (
	"fmt"
	"math"
	"sync"

	"gopkg.in/gographics/imagick.v3/imagick"
)

var (
	magickMu     sync.Mutex
	magickActive bool
)

func initMagick() {
	magickMu.Lock()
	defer magickMu.Unlock()
	if !magickActive {
		imagick.Initialize()
		magickActive = true
	}
}

// ReleaseMagick tears down ImageMagick if the imagick backend was used.
// Call once at shutdown.
func ReleaseMagick() {
	magickMu.Lock()
	defer magickMu.Unlock()
	if magickActive {
		imagick.Terminate()
		magickActive = false
	}
}

// magickGrayscale reads path with ImageMagick, converts it to grayscale and
// stretches contrast by factor around mid gray.
func magickGrayscale(path string, factor float64) ([]byte, error) {
	mw := imagick.NewMagickWand()
	defer mw.Destroy()

	err := mw.ReadImage(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageLoad, err)
	}

	err = mw.SetImageType(imagick.IMAGE_TYPE_GRAYSCALE)
	if err != nil {
		return nil, fmt.Errorf("grayscale conversion failed: %w", err)
	}

	if factor != 1 {
		err = mw.BrightnessContrastImage(0, magickContrast(factor))
		if err != nil {
			return nil, fmt.Errorf("contrast enhancement failed: %w", err)
		}
	}

	err = mw.SetImageFormat("PNG")
	if err != nil {
		return nil, fmt.Errorf("failed to set output format: %w", err)
	}

	blob := mw.GetImageBlob()
	if len(blob) == 0 {
		return nil, fmt.Errorf("processed image is empty")
	}

	return blob, nil
}

// magickContrast converts a linear contrast factor into the percentage
// ImageMagick's -brightness-contrast expects, where the applied slope is
// tan(pi*(contrast+100)/400).
func magickContrast(factor float64) float64 {
	return 400*math.Atan(factor)/math.Pi - 100
}
