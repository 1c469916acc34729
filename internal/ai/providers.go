package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/sashabaranov/go-openai"
	"google.golang.org/api/option"
)

// Provider interface for vision model providers
type Provider interface {
	// Transcribe sends prompt together with a PNG image and returns the
	// model's text reply.
	Transcribe(ctx context.Context, prompt string, image []byte) (string, error)
}

// OpenAIProvider implements Provider for OpenAI/Azure OpenAI
type OpenAIProvider struct {
	apiKey  string
	baseURL string
	model   string
}

// NewOpenAIProvider creates a new OpenAI provider
func NewOpenAIProvider(apiKey, baseURL, model string) *OpenAIProvider {
	if model == "" {
		model = "gpt-4o" // Default model
	}
	return &OpenAIProvider{
		apiKey:  apiKey,
		baseURL: baseURL,
		model:   model,
	}
}

// Transcribe sends prompt and image to OpenAI
func (p *OpenAIProvider) Transcribe(ctx context.Context, prompt string, image []byte) (string, error) {
	var config openai.ClientConfig

	// Check if Azure OpenAI
	if strings.Contains(p.baseURL, "azure") {
		config = openai.DefaultAzureConfig(p.apiKey, p.baseURL)
	} else {
		config = openai.DefaultConfig(p.apiKey)
		if p.baseURL != "" {
			config.BaseURL = p.baseURL
		}
	}

	client := openai.NewClientWithConfig(config)

	messages := []openai.ChatCompletionMessage{
		{
			Role: openai.ChatMessageRoleUser,
			MultiContent: []openai.ChatMessagePart{
				{
					Type: openai.ChatMessagePartTypeText,
					Text: prompt,
				},
				{
					Type: openai.ChatMessagePartTypeImageURL,
					ImageURL: &openai.ChatMessageImageURL{
						URL:    "data:image/png;base64," + base64.StdEncoding.EncodeToString(image),
						Detail: openai.ImageURLDetailHigh,
					},
				},
			},
		},
	}

	resp, err := client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model:       p.model,
			Messages:    messages,
			Temperature: 0, // Deterministic results
		},
	)
	if err != nil {
		return "", fmt.Errorf("OpenAI API call failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}

	return resp.Choices[0].Message.Content, nil
}

// GeminiProvider implements Provider for Google Gemini
type GeminiProvider struct {
	apiKey string
	model  string
}

// NewGeminiProvider creates a new Gemini provider
func NewGeminiProvider(apiKey, model string) *GeminiProvider {
	if model == "" {
		model = "gemini-1.5-flash" // Default model
	}
	return &GeminiProvider{
		apiKey: apiKey,
		model:  model,
	}
}

// Transcribe sends prompt and image to Gemini
func (p *GeminiProvider) Transcribe(ctx context.Context, prompt string, image []byte) (string, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(p.apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to create Gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(p.model)
	model.SetTemperature(0)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt), genai.ImageData("png", image))
	if err != nil {
		return "", fmt.Errorf("Gemini API call failed: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no response from Gemini")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}

	return sb.String(), nil
}

// OllamaProvider implements Provider for local Ollama
type OllamaProvider struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewOllamaProvider creates a new Ollama provider
func NewOllamaProvider(baseURL, model string) *OllamaProvider {
	if baseURL == "" {
		baseURL = "http://localhost:11434" // Default Ollama URL
	}
	if model == "" {
		model = "llava" // Default vision model
	}
	return &OllamaProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		httpClient: &http.Client{
			Timeout: 120 * time.Second, // Ollama can be slow on CPU
		},
	}
}

// Transcribe sends prompt and image to Ollama
func (p *OllamaProvider) Transcribe(ctx context.Context, prompt string, image []byte) (string, error) {
	body := map[string]interface{}{
		"model": p.model,
		"messages": []interface{}{
			map[string]interface{}{
				"role":    "user",
				"content": prompt,
				"images":  []string{base64.StdEncoding.EncodeToString(image)},
			},
		},
		"options": map[string]interface{}{
			"temperature": 0,
		},
		"stream": false,
	}

	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := p.baseURL + "/api/chat"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("Ollama API call failed: %w", err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("Ollama returned status %d: %s", resp.StatusCode, string(responseBody))
	}

	var responseObj struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	}

	err = json.Unmarshal(responseBody, &responseObj)
	if err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	return responseObj.Message.Content, nil
}
