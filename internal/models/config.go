package models

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the service configuration
type Config struct {
	// Server config
	Port int    `yaml:"port"`
	Host string `yaml:"host"`

	// Upload limit in bytes for /extract-code
	MaxUploadSize int64 `yaml:"max_upload_size"`

	// Directory for per-request upload files (default: os.TempDir())
	TempDir string `yaml:"temp_dir"`

	// OCR config
	OCR OCRConfig `yaml:"ocr"`

	// Vision model credentials, used when ocr.engine is an AI engine
	AI AIConfig `yaml:"ai"`

	// Logging
	Log LogConfig `yaml:"log"`
}

// OCRConfig represents OCR-specific configuration
type OCRConfig struct {
	Engine       string        `yaml:"engine"`       // "tesseract", "openai", "gemini" or "ollama"
	Language     string        `yaml:"language"`     // OCR language (default: "rus")
	Preprocessor string        `yaml:"preprocessor"` // "imaging" or "imagick"
	Timeout      time.Duration `yaml:"timeout"`      // per recognition call, 0 disables
}

// AIConfig represents AI provider configuration
type AIConfig struct {
	// OpenAI
	OpenAI OpenAIConfig `yaml:"openai"`

	// Gemini
	Gemini GeminiConfig `yaml:"gemini"`

	// Ollama (local)
	Ollama OllamaConfig `yaml:"ollama"`
}

// OpenAIConfig for OpenAI/Azure OpenAI
type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url,omitempty"` // For custom endpoints
	Model   string `yaml:"model"`              // Default: "gpt-4o"
}

// GeminiConfig for Google Gemini
type GeminiConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"` // Default: "gemini-1.5-flash"
}

// OllamaConfig for local Ollama
type OllamaConfig struct {
	BaseURL string `yaml:"base_url"` // Default: "http://localhost:11434"
	Model   string `yaml:"model"`    // e.g., "llava"
}

// LogConfig controls the zerolog output
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json or console
}

// Engine names accepted in ocr.engine
const (
	EngineTesseract = "tesseract"
	EngineOpenAI    = "openai"
	EngineGemini    = "gemini"
	EngineOllama    = "ollama"
)

// Preprocessor backends accepted in ocr.preprocessor
const (
	PreprocessorImaging = "imaging"
	PreprocessorImagick = "imagick"
)

// DefaultConfig returns the configuration used when no file is given
func DefaultConfig() *Config {
	return &Config{
		Port:          8000,
		Host:          "0.0.0.0",
		MaxUploadSize: 10 * 1024 * 1024, // 10MB
		OCR: OCRConfig{
			Engine:       EngineTesseract,
			Language:     "rus",
			Preprocessor: PreprocessorImaging,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// LoadConfig reads defaults, then the YAML file at path (if any), then
// environment overrides.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("ACTCODE_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid ACTCODE_PORT %q: %w", v, err)
		}
		c.Port = port
	}
	if v := os.Getenv("ACTCODE_HOST"); v != "" {
		c.Host = v
	}
	if v := os.Getenv("ACTCODE_MAX_UPLOAD_SIZE"); v != "" {
		size, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid ACTCODE_MAX_UPLOAD_SIZE %q: %w", v, err)
		}
		c.MaxUploadSize = size
	}
	if v := os.Getenv("ACTCODE_TEMP_DIR"); v != "" {
		c.TempDir = v
	}
	if v := os.Getenv("ACTCODE_OCR_ENGINE"); v != "" {
		c.OCR.Engine = v
	}
	if v := os.Getenv("ACTCODE_OCR_LANGUAGE"); v != "" {
		c.OCR.Language = v
	}
	if v := os.Getenv("ACTCODE_OCR_PREPROCESSOR"); v != "" {
		c.OCR.Preprocessor = v
	}
	if v := os.Getenv("ACTCODE_OCR_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid ACTCODE_OCR_TIMEOUT %q: %w", v, err)
		}
		c.OCR.Timeout = d
	}
	if v := os.Getenv("ACTCODE_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("ACTCODE_LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}

	// Provider credentials follow the providers' own conventions
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		c.AI.OpenAI.APIKey = v
	}
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		c.AI.OpenAI.BaseURL = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.AI.Gemini.APIKey = v
	}
	if v := os.Getenv("OLLAMA_HOST"); v != "" {
		c.AI.Ollama.BaseURL = v
	}
	return nil
}

// Validate rejects configurations the service cannot run with
func (c *Config) Validate() error {
	var errs []error

	switch c.OCR.Engine {
	case EngineTesseract, EngineOpenAI, EngineGemini, EngineOllama:
	default:
		errs = append(errs, fmt.Errorf("unsupported ocr.engine: %q", c.OCR.Engine))
	}

	switch c.OCR.Preprocessor {
	case PreprocessorImaging, PreprocessorImagick:
	default:
		errs = append(errs, fmt.Errorf("unsupported ocr.preprocessor: %q", c.OCR.Preprocessor))
	}

	if c.OCR.Language == "" {
		errs = append(errs, errors.New("ocr.language must not be empty"))
	}
	if c.OCR.Timeout < 0 {
		errs = append(errs, errors.New("ocr.timeout must not be negative"))
	}
	if c.MaxUploadSize <= 0 {
		errs = append(errs, errors.New("max_upload_size must be positive"))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port: %d", c.Port))
	}

	if c.OCR.Engine == EngineOpenAI && c.AI.OpenAI.APIKey == "" {
		errs = append(errs, errors.New("ai.openai.api_key is required for the openai engine"))
	}
	if c.OCR.Engine == EngineGemini && c.AI.Gemini.APIKey == "" {
		errs = append(errs, errors.New("ai.gemini.api_key is required for the gemini engine"))
	}

	return errors.Join(errs...)
}

// Addr returns the listen address
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
