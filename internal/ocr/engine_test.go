package ocr

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/otiai10/gosseract/v2"
)

type slowEngine struct {
	delay time.Duration
}

func (s slowEngine) Name() string { return "slow" }

func (s slowEngine) Recognize(ctx context.Context, _ []byte, _ Options) (string, error) {
	select {
	case <-time.After(s.delay):
		return "done", nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func TestWithTimeoutZeroIsIdentity(t *testing.T) {
	e := slowEngine{}
	if WithTimeout(e, 0) != Engine(e) {
		t.Fatal("zero timeout should return the engine unchanged")
	}
}

func TestWithTimeoutBoundsCall(t *testing.T) {
	e := WithTimeout(slowEngine{delay: time.Second}, 10*time.Millisecond)
	_, err := e.Recognize(context.Background(), nil, Options{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if e.Name() != "slow" {
		t.Fatalf("name not forwarded: %s", e.Name())
	}
}

func TestWithTimeoutFastCall(t *testing.T) {
	e := WithTimeout(slowEngine{delay: time.Millisecond}, time.Second)
	text, err := e.Recognize(context.Background(), nil, Options{})
	if err != nil || text != "done" {
		t.Fatalf("unexpected result %q err=%v", text, err)
	}
}

func TestPageSegMode(t *testing.T) {
	if pageSegMode(LayoutAuto) != gosseract.PSM_AUTO {
		t.Fatal("auto layout should use PSM_AUTO")
	}
	if pageSegMode(LayoutSingleColumn) != gosseract.PSM_SINGLE_COLUMN {
		t.Fatal("single column layout should use PSM_SINGLE_COLUMN")
	}
}

func TestTesseractHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewTesseractOCR().Recognize(ctx, nil, Options{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestLayoutString(t *testing.T) {
	if LayoutSingleColumn.String() != "single-column" || LayoutAuto.String() != "auto" {
		t.Fatal("unexpected layout names")
	}
}
