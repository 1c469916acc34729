package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/facturaIA/activation-code-ocr/internal/models"
	"github.com/facturaIA/activation-code-ocr/internal/ocr"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newLogger(models.LogConfig{Level: "WARN", Format: "json"}, &buf)
	if err != nil {
		t.Fatal(err)
	}
	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, `"message":"shown"`) {
		t.Fatalf("unexpected log output %q", out)
	}
}

func TestNewLoggerRejectsLevel(t *testing.T) {
	if _, err := newLogger(models.LogConfig{Level: "loud"}, &bytes.Buffer{}); err == nil {
		t.Fatal("expected error")
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("ACTCODE_TEST_VALUE=from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("ACTCODE_TEST_VALUE", "")
	os.Unsetenv("ACTCODE_TEST_VALUE")

	if err := loadEnvFile(path); err != nil {
		t.Fatal(err)
	}
	if got := os.Getenv("ACTCODE_TEST_VALUE"); got != "from-file" {
		t.Fatalf("unexpected value %q", got)
	}

	if err := loadEnvFile(filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("missing file must be ignored: %v", err)
	}
}

func TestNewEngine(t *testing.T) {
	cfg := models.DefaultConfig()
	engine, err := newEngine(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := engine.(*ocr.TesseractOCR); !ok {
		t.Fatalf("expected bare tesseract engine without timeout, got %T", engine)
	}

	cfg.OCR.Engine = models.EngineOllama
	cfg.OCR.Timeout = 5 * time.Second
	engine, err = newEngine(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if engine.Name() != models.EngineOllama {
		t.Fatalf("unexpected engine %s", engine.Name())
	}
}

func TestExtractCommandCorruptImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.png")
	if err := os.WriteFile(path, []byte("nope"), 0o600); err != nil {
		t.Fatal(err)
	}

	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"extract", "--env-file", "", path})

	err := root.Execute()
	if err == nil || !strings.Contains(err.Error(), ocr.ErrImageLoad.Error()) {
		t.Fatalf("expected image load error, got %v", err)
	}
}

func TestExtractCommandRequiresImage(t *testing.T) {
	root := NewRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"extract"})
	if err := root.Execute(); err == nil {
		t.Fatal("expected argument error")
	}
}
