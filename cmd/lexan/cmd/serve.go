package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/msto63/lexan/internal/analyzer/server"
	"github.com/msto63/lexan/internal/analyzer/service"
	"github.com/msto63/lexan/internal/gateway"
	"github.com/msto63/lexan/pkg/core/version"
)

var (
	serveGRPCPort int
	serveHTTPPort int
	serveNoHTTP   bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the gRPC service and the HTTP/WebSocket gateway",
	Long: `Starts the lexan analysis service.

  gRPC     lexan.v1.Analyzer plus grpc.health.v1 (default :9310)
  HTTP     POST /api/v1/analyze/{mode}, GET /health (default :8310)
  WS       /api/v1/ws for live analysis of an editor buffer

Examples:
  lexan serve
  lexan serve --grpc-port 9400 --http-port 8400
  lexan serve --no-http`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVar(&serveGRPCPort, "grpc-port", 0, "gRPC port (default from config)")
	serveCmd.Flags().IntVar(&serveHTTPPort, "http-port", 0, "HTTP gateway port (default from config)")
	serveCmd.Flags().BoolVar(&serveNoHTTP, "no-http", false, "do not start the HTTP gateway")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveGRPCPort != 0 {
		cfg.Server.Port = serveGRPCPort
	}
	if serveHTTPPort != 0 {
		cfg.Gateway.Port = serveHTTPPort
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := newLogger(cfg, "lexan")
	svc, err := service.NewService(serviceConfig(cfg, logger))
	if err != nil {
		return err
	}

	grpcCfg := server.DefaultConfig()
	grpcCfg.Host = cfg.Server.Host
	grpcCfg.Port = cfg.Server.Port
	grpcCfg.EnableReflection = cfg.Server.EnableReflection
	grpcCfg.Logger = logger
	grpcServer := server.NewWithService(svc, grpcCfg)

	if err := grpcServer.StartAsync(); err != nil {
		return err
	}

	var gw *gateway.Server
	if !serveNoHTTP {
		gwCfg := gateway.DefaultConfig()
		gwCfg.Host = cfg.Gateway.Host
		gwCfg.Port = cfg.Gateway.Port
		gwCfg.ReadTimeout = cfg.Gateway.ReadTimeout.Duration
		gwCfg.WriteTimeout = cfg.Gateway.WriteTimeout.Duration
		gwCfg.GRPCAddr = fmt.Sprintf("localhost:%d", cfg.Server.Port)
		gwCfg.Logger = logger
		gw, err = gateway.New(svc, gwCfg)
		if err != nil {
			return err
		}
		gw.StartAsync()
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "lexan %s\n", version.Platform)
	fmt.Fprintf(out, "  gRPC:    %s\n", cfg.ServerAddress())
	if gw != nil {
		fmt.Fprintf(out, "  HTTP:    http://%s/api/v1\n", cfg.GatewayAddress())
		fmt.Fprintf(out, "  Health:  http://%s/health\n", cfg.GatewayAddress())
	}
	fmt.Fprintln(out, "Press Ctrl+C to stop")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	fmt.Fprintln(out, "\nStopping...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if gw != nil {
		if err := gw.Stop(ctx); err != nil {
			logger.Warn("Gateway shutdown failed", "error", err)
		}
	}
	grpcServer.Stop(ctx)
	return nil
}
