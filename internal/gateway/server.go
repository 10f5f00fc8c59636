package gateway

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	mdwerror "github.com/msto63/lexan/foundation/core/error"
	"github.com/msto63/lexan/pkg/core/health"
	"github.com/msto63/lexan/pkg/core/logging"
	"github.com/msto63/lexan/pkg/core/version"
)

// Service is what the gateway serves: analyses plus a readiness probe
type Service interface {
	Analyzer
	Probe(ctx context.Context) error
}

// Server is the HTTP and WebSocket gateway
type Server struct {
	httpServer *http.Server
	handler    *Handler
	health     *health.Registry
	logger     *logging.Logger
	config     Config
}

// Config holds server configuration
type Config struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Version      string

	// GRPCAddr adds a reachability check for the gRPC server when set
	GRPCAddr string

	Logger *logging.Logger
}

// DefaultConfig returns default server configuration
func DefaultConfig() Config {
	return Config{
		Host:         "0.0.0.0",
		Port:         8310,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		Version:      version.Gateway,
	}
}

// New creates a new gateway server
func New(svc Service, cfg Config) (*Server, error) {
	if svc == nil {
		return nil, mdwerror.New("gateway needs a service").
			WithCode(mdwerror.CodeMissingConfig).
			WithOperation("gateway.New")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.New("gateway")
	}
	if cfg.Version == "" {
		cfg.Version = version.Gateway
	}

	registry := health.NewRegistry("lexan-gateway", cfg.Version)
	registry.Register(health.ProbeCheck("engine", svc.Probe))
	if cfg.GRPCAddr != "" {
		registry.Register(health.TCPCheck("grpc", cfg.GRPCAddr, time.Second))
	}

	h := NewHandler(cfg.Version, svc, registry, logger)
	ws := NewWebSocketHandler(svc, logger)

	mux := http.NewServeMux()
	mux.Handle("/api/v1/ws", ws)
	mux.Handle("/", h)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      loggingMiddleware(logger, mux),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &Server{
		httpServer: httpServer,
		handler:    h,
		health:     registry,
		logger:     logger,
		config:     cfg,
	}, nil
}

// loggingMiddleware adds request logging
func loggingMiddleware(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapper := &responseWrapper{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapper, r)

		logger.Info("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapper.statusCode,
			"duration", time.Since(start),
		)
	})
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (w *responseWrapper) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

// Hijack lets the WebSocket upgrader take over the connection
func (w *responseWrapper) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not support hijacking")
	}
	w.statusCode = http.StatusSwitchingProtocols
	return hijacker.Hijack()
}

// Handler returns the root HTTP handler, middleware included
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// HealthRegistry returns the health registry
func (s *Server) HealthRegistry() *health.Registry {
	return s.health
}

// Address returns the listen address
func (s *Server) Address() string {
	return s.httpServer.Addr
}

// Start starts the server and blocks until it stops
func (s *Server) Start() error {
	s.logger.Info("Starting lexan gateway",
		"host", s.config.Host,
		"port", s.config.Port,
	)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return mdwerror.Wrap(err, "gateway stopped").
			WithCode(mdwerror.CodeNetworkError).
			WithOperation("gateway.Start")
	}
	return nil
}

// StartAsync starts the server asynchronously
func (s *Server) StartAsync() {
	go func() {
		if err := s.Start(); err != nil {
			s.logger.Error("HTTP server error", "error", err)
		}
	}()
}

// Stop gracefully stops the server
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping lexan gateway")
	return s.httpServer.Shutdown(ctx)
}
