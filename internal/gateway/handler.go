package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	mdwerror "github.com/msto63/lexan/foundation/core/error"
	"github.com/msto63/lexan/foundation/lexan"
	"github.com/msto63/lexan/internal/analyzer/service"
	"github.com/msto63/lexan/pkg/core/health"
	"github.com/msto63/lexan/pkg/core/logging"
)

// Analyzer runs analyses for the gateway
type Analyzer interface {
	Analyze(ctx context.Context, req service.Request) (*service.Response, error)
	ErrorMessage(locale string, err error) string
	Locales() []string
	MaxInputLength() int
}

// AnalyzeRequest is the body of POST /api/v1/analyze/{mode}
type AnalyzeRequest struct {
	Text   string `json:"text"`
	Locale string `json:"locale,omitempty"`
}

// ErrorResponse represents an API error
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}

// InfoResponse describes the API
type InfoResponse struct {
	Service string       `json:"service"`
	Version string       `json:"version"`
	Modes   []lexan.Mode `json:"modes"`
	Locales []string     `json:"locales"`
	Uptime  string       `json:"uptime"`
}

// Handler handles HTTP requests for the gateway
type Handler struct {
	analyzer  Analyzer
	health    *health.Registry
	logger    *logging.Logger
	startTime time.Time
	version   string
	timeout   time.Duration
}

// NewHandler creates a new API handler
func NewHandler(version string, analyzer Analyzer, registry *health.Registry, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.New("gateway-handler")
	}
	return &Handler{
		analyzer:  analyzer,
		health:    registry,
		logger:    logger,
		startTime: time.Now(),
		version:   version,
		timeout:   10 * time.Second,
	}
}

// ServeHTTP implements http.Handler
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept-Language")

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	if r.URL.Path == "/health" || r.URL.Path == "/health/" {
		h.handleHealth(w, r)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/api/v1")
	path = strings.Trim(path, "/")

	switch {
	case path == "":
		h.handleRoot(w, r)
	case path == "health":
		h.handleHealth(w, r)
	case strings.HasPrefix(path, "analyze/"):
		h.handleAnalyze(w, r, strings.TrimPrefix(path, "analyze/"))
	default:
		h.writeError(w, http.StatusNotFound, "not_found", "Endpoint not found", "")
	}
}

func (h *Handler) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Use GET", "")
		return
	}

	h.writeJSON(w, http.StatusOK, InfoResponse{
		Service: "lexan",
		Version: h.version,
		Modes:   lexan.Modes(),
		Locales: h.analyzer.Locales(),
		Uptime:  time.Since(h.startTime).Round(time.Second).String(),
	})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Use GET", "")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	report := h.health.Check(ctx)
	status := http.StatusOK
	if report.Status == health.StatusUnhealthy {
		status = http.StatusServiceUnavailable
	}
	h.writeJSON(w, status, report)
}

func (h *Handler) handleAnalyze(w http.ResponseWriter, r *http.Request, modeName string) {
	if r.Method != http.MethodPost {
		h.writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Use POST", "")
		return
	}

	mode, err := lexan.ParseMode(modeName)
	if err != nil {
		h.writeErr(w, r.Header.Get("Accept-Language"), err)
		return
	}

	var req AnalyzeRequest
	if err := h.readJSON(w, r, &req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.writeError(w, http.StatusRequestEntityTooLarge, string(mdwerror.CodeInputTooLarge), "Request body too large", "")
			return
		}
		h.writeError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON", err.Error())
		return
	}

	locale := req.Locale
	if locale == "" {
		locale = r.Header.Get("Accept-Language")
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	resp, err := h.analyzer.Analyze(ctx, service.Request{Mode: mode, Text: req.Text, Locale: locale})
	if err != nil {
		h.writeErr(w, locale, err)
		return
	}

	h.writeJSON(w, http.StatusOK, resp)
}

// Helper methods

// readJSON decodes the body, limited to the engine input size plus room
// for the JSON envelope
func (h *Handler) readJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	if limit := h.analyzer.MaxInputLength(); limit > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, int64(limit)*6+4096)
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, v)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Warn("Failed to write response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, code, message, details string) {
	h.writeJSON(w, status, ErrorResponse{
		Error:   message,
		Code:    code,
		Details: details,
	})
}

// writeErr maps err to its HTTP status and renders it in locale
func (h *Handler) writeErr(w http.ResponseWriter, locale string, err error) {
	code := mdwerror.GetCode(err)
	h.writeError(w, code.HTTPStatus(), string(code), h.analyzer.ErrorMessage(locale, err), "")
}
