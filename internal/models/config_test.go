package models

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.OCR.Engine != EngineTesseract || cfg.OCR.Language != "rus" {
		t.Fatalf("unexpected ocr defaults: %+v", cfg.OCR)
	}
	if cfg.OCR.Timeout != 0 {
		t.Fatalf("expected no timeout by default, got %s", cfg.OCR.Timeout)
	}
	if cfg.MaxUploadSize != 10*1024*1024 {
		t.Fatalf("unexpected upload size %d", cfg.MaxUploadSize)
	}
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yml := `
port: 9090
ocr:
  language: rus+eng
  preprocessor: imagick
  timeout: 45s
log:
  level: debug
`
	if err := os.WriteFile(path, []byte(yml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("ACTCODE_HOST", "127.0.0.1")
	t.Setenv("ACTCODE_OCR_TIMEOUT", "30s")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 9090 || cfg.Host != "127.0.0.1" {
		t.Fatalf("unexpected listen config %s", cfg.Addr())
	}
	if cfg.OCR.Language != "rus+eng" || cfg.OCR.Preprocessor != PreprocessorImagick {
		t.Fatalf("unexpected ocr config %+v", cfg.OCR)
	}
	if cfg.OCR.Timeout != 30*time.Second {
		t.Fatalf("env override not applied, timeout=%s", cfg.OCR.Timeout)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("unexpected log level %q", cfg.Log.Level)
	}
}

func TestValidateRejectsUnknownEngine(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OCR.Engine = "easyocr"
	cfg.OCR.Preprocessor = "opencv"
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "easyocr") || !strings.Contains(err.Error(), "opencv") {
		t.Fatalf("expected both problems reported, got %v", err)
	}
}

func TestValidateRequiresAPIKey(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OCR.Engine = EngineGemini
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected missing api key error")
	}
	cfg.AI.Gemini.APIKey = "key"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadConfigBadEnv(t *testing.T) {
	t.Setenv("ACTCODE_PORT", "eighty")
	if _, err := LoadConfig(""); err == nil {
		t.Fatal("expected error for invalid port")
	}
}
