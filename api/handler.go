package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/facturaIA/activation-code-ocr/internal/activation"
	"github.com/facturaIA/activation-code-ocr/internal/models"
	"github.com/facturaIA/activation-code-ocr/internal/ocr"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
)

const Version = "1.0.0"

// Handler handles HTTP requests for activation code extraction
type Handler struct {
	config       *models.Config
	extractor    *activation.Extractor
	engine       ocr.Engine
	preprocessor string
	logger       zerolog.Logger
}

// NewHandler creates a new API handler
func NewHandler(config *models.Config, extractor *activation.Extractor, engine ocr.Engine, logger zerolog.Logger) *Handler {
	return &Handler{
		config:       config,
		extractor:    extractor,
		engine:       engine,
		preprocessor: config.OCR.Preprocessor,
		logger:       logger,
	}
}

// SetupRoutes configures the HTTP routes
func (h *Handler) SetupRoutes() *mux.Router {
	router := mux.NewRouter()

	router.Use(
		hlog.NewHandler(h.logger),
		hlog.RequestIDHandler("req_id", "X-Request-Id"),
		hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
			hlog.FromRequest(r).Info().
				Str("method", r.Method).
				Stringer("url", r.URL).
				Int("status", status).
				Int("size", size).
				Dur("duration", duration).
				Msg("request")
		}),
		h.recoverPanic,
	)

	// Main endpoint
	router.HandleFunc("/extract-code", h.ExtractCode).Methods("POST")

	// Health check
	router.HandleFunc("/health", h.Health).Methods("GET")

	return router
}

// Router returns the routes wrapped in the CORS policy: any origin, POST
// only, any request header.
func (h *Handler) Router() http.Handler {
	policy := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodPost},
		AllowedHeaders: []string{"*"},
	})
	return policy.Handler(h.SetupRoutes())
}

// HealthResponse represents the health check response structure
type HealthResponse struct {
	Status       string        `json:"status"`
	Version      string        `json:"version"`
	Timestamp    string        `json:"timestamp"`
	Uptime       string        `json:"uptime"`
	Memory       MemoryStats   `json:"memory"`
	Engine       ServiceStatus `json:"engine"`
	Language     string        `json:"language"`
	Preprocessor string        `json:"preprocessor"`
}

// MemoryStats represents memory usage statistics
type MemoryStats struct {
	Allocated string `json:"allocated"`
	Total     string `json:"total"`
	System    string `json:"system"`
}

// ServiceStatus represents the status of a service dependency
type ServiceStatus struct {
	Name      string `json:"name"`
	Available bool   `json:"available"`
	Version   string `json:"version,omitempty"`
	Error     string `json:"error,omitempty"`
}

var startTime = time.Now()

// Health reports process and OCR engine status
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	// Memory statistics
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	engineStatus := h.checkEngine()

	response := HealthResponse{
		Status:    "healthy",
		Version:   Version,
		Timestamp: time.Now().Format(time.RFC3339),
		Uptime:    time.Since(startTime).String(),
		Memory: MemoryStats{
			Allocated: fmt.Sprintf("%.2f MB", float64(m.Alloc)/1024/1024),
			Total:     fmt.Sprintf("%.2f MB", float64(m.TotalAlloc)/1024/1024),
			System:    fmt.Sprintf("%.2f MB", float64(m.Sys)/1024/1024),
		},
		Engine:       engineStatus,
		Language:     h.config.OCR.Language,
		Preprocessor: h.preprocessor,
	}

	// Without a working engine every extraction fails
	if !engineStatus.Available {
		response.Status = "degraded"
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}

	json.NewEncoder(w).Encode(response)
}

// checkEngine asks the engine for its version when it supports it
func (h *Handler) checkEngine() ServiceStatus {
	status := ServiceStatus{Name: h.engine.Name(), Available: true}

	checker, ok := h.engine.(ocr.Checker)
	if !ok {
		return status
	}

	version, err := checker.Check()
	if err != nil {
		status.Available = false
		status.Error = err.Error()
		return status
	}
	status.Version = version
	return status
}

// ExtractCode handles POST /extract-code
func (h *Handler) ExtractCode(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	// Parse multipart form
	r.Body = http.MaxBytesReader(w, r.Body, h.config.MaxUploadSize)
	err := r.ParseMultipartForm(h.config.MaxUploadSize)
	if err != nil {
		h.sendError(w, http.StatusBadRequest, "File too large or invalid form data")
		return
	}
	defer r.MultipartForm.RemoveAll()

	// Get file
	file, _, err := r.FormFile("file")
	if err != nil {
		h.sendError(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()

	path, err := h.saveUpload(file)
	if err != nil {
		h.sendError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer h.removeUpload(r, path)

	result, err := h.extractor.Extract(r.Context(), path)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("extraction failed")
		h.sendError(w, http.StatusInternalServerError, err.Error())
		return
	}

	hlog.FromRequest(r).Info().Bool("found", result.IsFound()).Msg("extraction finished")

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(models.ExtractResponse{Code: result.String()})
}

// saveUpload copies the uploaded image into a fresh .png temp file
func (h *Handler) saveUpload(file io.Reader) (string, error) {
	tempFile, err := os.CreateTemp(h.config.TempDir, "activation-*.png")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}

	_, err = io.Copy(tempFile, file)
	closeErr := tempFile.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tempFile.Name())
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}

	return tempFile.Name(), nil
}

func (h *Handler) removeUpload(r *http.Request, path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		hlog.FromRequest(r).Warn().Err(err).Str("path", path).Msg("failed to remove temp file")
	}
}

// recoverPanic turns a panic in a handler into a 500 response. Deferred
// cleanups in the handler have already run when it recovers.
func (h *Handler) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				hlog.FromRequest(r).Error().Interface("panic", rec).Msg("handler panicked")
				w.Header().Set("Content-Type", "application/json")
				h.sendError(w, http.StatusInternalServerError, fmt.Sprintf("internal error: %v", rec))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// sendError sends an error response
func (h *Handler) sendError(w http.ResponseWriter, statusCode int, message string) {
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(models.ErrorResponse{
		Error: message,
	})
}
