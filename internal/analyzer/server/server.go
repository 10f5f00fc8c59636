package server

import (
	"context"
	"net"
	"time"

	mdwerror "github.com/msto63/lexan/foundation/core/error"
	"github.com/msto63/lexan/foundation/lexan"
	"github.com/msto63/lexan/internal/analyzer/service"
	coreGrpc "github.com/msto63/lexan/pkg/core/grpc"
	"github.com/msto63/lexan/pkg/core/health"
	"github.com/msto63/lexan/pkg/core/logging"
	"github.com/msto63/lexan/pkg/core/version"
	"google.golang.org/grpc"
	grpchealth "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/protobuf/types/known/structpb"
)

// Ensure Server implements AnalyzerServer
var _ AnalyzerServer = (*Server)(nil)

// Server is the lexan gRPC server
type Server struct {
	service   *service.Service
	grpc      *coreGrpc.Server
	health    *health.Registry
	grpcHlth  *grpchealth.Server
	logger    *logging.Logger
	config    Config
	startTime time.Time
}

// Config holds server configuration
type Config struct {
	Host             string
	Port             int
	EnableReflection bool
	Service          service.Config
	Logger           *logging.Logger
}

// DefaultConfig returns default server configuration
func DefaultConfig() Config {
	return Config{
		Host:             "0.0.0.0",
		Port:             9310,
		EnableReflection: true,
		Service:          service.DefaultConfig(),
	}
}

// New creates a server with its own analysis service
func New(cfg Config) (*Server, error) {
	if cfg.Logger == nil {
		cfg.Logger = logging.New("lexan-server")
	}
	if cfg.Service.Logger == nil {
		cfg.Service.Logger = cfg.Logger
	}

	svc, err := service.NewService(cfg.Service)
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to create service").
			WithCode(mdwerror.CodeConfigError).
			WithOperation("server.New")
	}
	return NewWithService(svc, cfg), nil
}

// NewWithService creates a server around an existing service
func NewWithService(svc *service.Service, cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = logging.New("lexan-server")
	}

	grpcCfg := coreGrpc.DefaultServerConfig()
	grpcCfg.Host = cfg.Host
	grpcCfg.Port = cfg.Port
	grpcCfg.EnableReflection = cfg.EnableReflection
	grpcCfg.Logger = cfg.Logger
	if limit := svc.MaxInputLength(); limit > 0 {
		// room for the locale field and protobuf framing
		grpcCfg.MaxRecvMsgSize = limit + 64*1024
	}

	grpcServer := coreGrpc.NewServer(grpcCfg)

	healthRegistry := health.NewRegistry("lexan", version.Server)
	healthRegistry.Register(health.ProbeCheck("engine", svc.Probe))

	grpcHealth := grpchealth.NewServer()
	grpcHealth.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	grpcHealth.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)

	server := &Server{
		service:   svc,
		grpc:      grpcServer,
		health:    healthRegistry,
		grpcHlth:  grpcHealth,
		logger:    cfg.Logger,
		config:    cfg,
		startTime: time.Now(),
	}

	RegisterAnalyzerServer(grpcServer.GRPCServer(), server)
	healthpb.RegisterHealthServer(grpcServer.GRPCServer(), grpcHealth)

	return server
}

// Tokenize implements AnalyzerServer.Tokenize
func (s *Server) Tokenize(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return s.analyze(ctx, lexan.ModeTokens, in)
}

// CheckDeclarations implements AnalyzerServer.CheckDeclarations
func (s *Server) CheckDeclarations(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return s.analyze(ctx, lexan.ModeDeclarations, in)
}

// ValidateExpression implements AnalyzerServer.ValidateExpression
func (s *Server) ValidateExpression(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return s.analyze(ctx, lexan.ModeDescent, in)
}

// CompileQuads implements AnalyzerServer.CompileQuads
func (s *Server) CompileQuads(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return s.analyze(ctx, lexan.ModeQuads, in)
}

func (s *Server) analyze(ctx context.Context, mode lexan.Mode, in *structpb.Struct) (*structpb.Struct, error) {
	text, locale, err := requestFields(in)
	if err != nil {
		return nil, err
	}

	resp, err := s.service.Analyze(ctx, service.Request{Mode: mode, Text: text, Locale: locale})
	if err != nil {
		return nil, err
	}

	return toStruct(resp)
}

// Start starts the server
func (s *Server) Start() error {
	s.logger.Info("Starting lexan server", "host", s.config.Host, "port", s.config.Port)
	return s.grpc.Start()
}

// StartAsync starts the server asynchronously
func (s *Server) StartAsync() error {
	s.logger.Info("Starting lexan server (async)", "host", s.config.Host, "port", s.config.Port)
	return s.grpc.StartAsync()
}

// Serve serves on an existing listener
func (s *Server) Serve(listener net.Listener) error {
	return s.grpc.Serve(listener)
}

// Stop marks the service as not serving and stops the server
func (s *Server) Stop(ctx context.Context) {
	s.logger.Info("Stopping lexan server", "uptime", time.Since(s.startTime))
	s.grpcHlth.Shutdown()
	s.grpc.StopWithTimeout(ctx)
}

// Address returns the listen address
func (s *Server) Address() string {
	return s.grpc.Address()
}

// GRPCServer returns the underlying gRPC server
func (s *Server) GRPCServer() *grpc.Server {
	return s.grpc.GRPCServer()
}

// HealthRegistry returns the health check registry
func (s *Server) HealthRegistry() *health.Registry {
	return s.health
}

// Service returns the analysis service
func (s *Server) Service() *service.Service {
	return s.service
}
