package ocr

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrImageLoad is returned when the source image cannot be read or decoded.
	ErrImageLoad = errors.New("image load failed")

	// ErrEngineUnavailable is returned when the configured engine cannot run.
	ErrEngineUnavailable = errors.New("ocr engine unavailable")
)

// Layout selects the page layout analysis the engine performs
type Layout int

const (
	// LayoutAuto is the engine's default, fully automatic page segmentation.
	LayoutAuto Layout = iota
	// LayoutSingleColumn treats the page as one column of text of variable sizes.
	LayoutSingleColumn
)

func (l Layout) String() string {
	switch l {
	case LayoutAuto:
		return "auto"
	case LayoutSingleColumn:
		return "single-column"
	}
	return fmt.Sprintf("layout(%d)", int(l))
}

// Options configures a single recognition call
type Options struct {
	Language string
	Layout   Layout
}

// Engine turns a preprocessed image into recognized text
type Engine interface {
	Name() string
	Recognize(ctx context.Context, image []byte, opts Options) (string, error)
}

// Checker is implemented by engines that can report their availability
type Checker interface {
	Check() (version string, err error)
}

// WithTimeout bounds every Recognize call of engine by d. A zero d returns
// engine unchanged.
func WithTimeout(engine Engine, d time.Duration) Engine {
	if d <= 0 {
		return engine
	}
	return &timeoutEngine{Engine: engine, timeout: d}
}

type timeoutEngine struct {
	Engine
	timeout time.Duration
}

func (e *timeoutEngine) Recognize(ctx context.Context, image []byte, opts Options) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()
	return e.Engine.Recognize(ctx, image, opts)
}

// Check forwards to the wrapped engine when it supports checks.
func (e *timeoutEngine) Check() (string, error) {
	if c, ok := e.Engine.(Checker); ok {
		return c.Check()
	}
	return "", nil
}
