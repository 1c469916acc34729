package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/facturaIA/activation-code-ocr/internal/models"
	"github.com/facturaIA/activation-code-ocr/internal/ocr"
)

// Recognizer adapts a vision model Provider to the ocr.Engine interface so
// it can stand in for Tesseract.
type Recognizer struct {
	name       string
	provider   Provider
	configured bool
}

// NewRecognizer creates an engine backed by provider
func NewRecognizer(name string, provider Provider, configured bool) *Recognizer {
	return &Recognizer{
		name:       name,
		provider:   provider,
		configured: configured,
	}
}

// NewEngine builds the Recognizer for the AI engine named in cfg.OCR.Engine
func NewEngine(cfg *models.Config) (*Recognizer, error) {
	switch cfg.OCR.Engine {
	case models.EngineOpenAI:
		return NewRecognizer(models.EngineOpenAI, NewOpenAIProvider(
			cfg.AI.OpenAI.APIKey,
			cfg.AI.OpenAI.BaseURL,
			cfg.AI.OpenAI.Model,
		), cfg.AI.OpenAI.APIKey != ""), nil

	case models.EngineGemini:
		return NewRecognizer(models.EngineGemini, NewGeminiProvider(
			cfg.AI.Gemini.APIKey,
			cfg.AI.Gemini.Model,
		), cfg.AI.Gemini.APIKey != ""), nil

	case models.EngineOllama:
		return NewRecognizer(models.EngineOllama, NewOllamaProvider(
			cfg.AI.Ollama.BaseURL,
			cfg.AI.Ollama.Model,
		), true), nil

	default:
		return nil, fmt.Errorf("unsupported AI engine: %s", cfg.OCR.Engine)
	}
}

// Name returns the engine name
func (r *Recognizer) Name() string {
	return r.name
}

// Check reports whether the provider has credentials
func (r *Recognizer) Check() (string, error) {
	if !r.configured {
		return "", fmt.Errorf("%w: %s api key not configured", ocr.ErrEngineUnavailable, r.name)
	}
	return r.name, nil
}

// Recognize asks the model to transcribe the image verbatim
func (r *Recognizer) Recognize(ctx context.Context, image []byte, opts ocr.Options) (string, error) {
	response, err := r.provider.Transcribe(ctx, buildPrompt(opts), image)
	if err != nil {
		return "", fmt.Errorf("%s transcription failed: %w", r.name, err)
	}
	return cleanResponse(response), nil
}

// buildPrompt creates the transcription prompt for the language and layout hints
func buildPrompt(opts ocr.Options) string {
	layout := "Preserve the original line breaks."
	if opts.Layout == ocr.LayoutSingleColumn {
		layout = "Read the image as a single column of text from top to bottom, one line per visual line."
	}

	return fmt.Sprintf(`Transcribe all text in this screenshot exactly as it appears.

Language: %s

Rules:
- Output ONLY the transcribed text (no markdown, no code blocks, no commentary)
- Do not translate, summarize or correct anything
- Keep digit groups and the spacing between them as shown
- %s`, languageName(opts.Language), layout)
}

// cleanResponse removes markdown fences models sometimes add anyway
func cleanResponse(response string) string {
	cleaned := strings.TrimSpace(response)
	cleaned = strings.TrimPrefix(cleaned, "```text")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	return strings.TrimSpace(cleaned)
}

// languageName maps Tesseract language codes to names a model understands.
func languageName(code string) string {
	names := map[string]string{
		"rus": "Russian",
		"eng": "English",
		"ukr": "Ukrainian",
	}

	parts := strings.Split(code, "+")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if name, ok := names[p]; ok {
			out = append(out, name)
		} else if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return "Russian"
	}
	return strings.Join(out, ", ")
}
