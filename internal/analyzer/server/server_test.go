package server

import (
	"context"
	"net"
	"strings"
	"testing"
	"time"

	mdwerror "github.com/msto63/lexan/foundation/core/error"
	mdwlog "github.com/msto63/lexan/foundation/core/log"
	"github.com/msto63/lexan/foundation/lexan"
	coreGrpc "github.com/msto63/lexan/pkg/core/grpc"
	"github.com/msto63/lexan/pkg/core/logging"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	rpb "google.golang.org/grpc/reflection/grpc_reflection_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"
)

func startTestServer(t *testing.T, cfg Config) *Client {
	t.Helper()

	logger := logging.Wrap(mdwlog.Nop(), "test")
	cfg.Logger = logger
	cfg.Service.Logger = logger

	srv, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	lis := bufconn.Listen(1 << 20)
	go func() {
		_ = srv.Serve(lis)
	}()

	clientCfg := coreGrpc.DefaultClientConfig("passthrough:///bufnet")
	clientCfg.Timeout = 5 * time.Second
	clientCfg.Logger = logger
	client, err := Dial(clientCfg, grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
		return lis.DialContext(ctx)
	}))
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}

	t.Cleanup(func() {
		client.Close()
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		srv.Stop(ctx)
	})
	return client
}

func TestServer_AllModes(t *testing.T) {
	client := startTestServer(t, DefaultConfig())

	tests := []struct {
		mode  lexan.Mode
		text  string
		valid bool
	}{
		{lexan.ModeTokens, "let x = 1;", true},
		{lexan.ModeDeclarations, `let x = {"a": 1, "b": 2};`, true},
		{lexan.ModeDescent, "(1+2)*3", true},
		{lexan.ModeQuads, "a+b*c", true},
		{lexan.ModeQuads, "a+1", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			resp, err := client.Analyze(context.Background(), tt.mode, tt.text, "")
			if err != nil {
				t.Fatalf("Analyze() error = %v", err)
			}
			if resp.Valid != tt.valid {
				t.Errorf("Valid = %v, want %v (%v)", resp.Valid, tt.valid, resp.Diagnostics)
			}
			if resp.Mode != tt.mode {
				t.Errorf("Mode = %v, want %v", resp.Mode, tt.mode)
			}
			if resp.ID == "" || len(resp.Tokens) == 0 {
				t.Errorf("response = %+v", resp.Report)
			}
		})
	}
}

func TestServer_ReportRoundTrip(t *testing.T) {
	client := startTestServer(t, DefaultConfig())

	resp, err := client.Analyze(context.Background(), lexan.ModeQuads, "a+b*c", "")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	want := []string{"(*, b, c, t1)", "(+, a, t1, t2)"}
	if len(resp.Quads) != len(want) {
		t.Fatalf("Quads = %v", resp.Quads)
	}
	for i, q := range resp.Quads {
		if q.String() != want[i] {
			t.Errorf("Quads[%d] = %v, want %v", i, q, want[i])
		}
	}
	if resp.Tokens[0].Text != "a" || resp.Tokens[0].Column != 1 {
		t.Errorf("Tokens[0] = %+v", resp.Tokens[0])
	}
}

func TestServer_Localized(t *testing.T) {
	client := startTestServer(t, DefaultConfig())

	resp, err := client.Analyze(context.Background(), lexan.ModeDeclarations, `let x {"a": 1};`, "ru")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if resp.Locale != "ru" {
		t.Errorf("Locale = %v, want ru", resp.Locale)
	}
	if !strings.HasPrefix(resp.Diagnostics[0].Message, "Ожидался оператор присваивания") {
		t.Errorf("Message = %q", resp.Diagnostics[0].Message)
	}
}

func TestServer_InputTooLarge(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Service.Engine.MaxInputLength = 16
	client := startTestServer(t, cfg)

	_, err := client.Analyze(context.Background(), lexan.ModeTokens, strings.Repeat("x", 17), "")
	if !mdwerror.HasCode(err, mdwerror.CodeInputTooLarge) {
		t.Errorf("Analyze() error = %v, want CodeInputTooLarge", err)
	}
}

func TestServer_BadRequestField(t *testing.T) {
	client := startTestServer(t, DefaultConfig())

	in := &structpb.Struct{Fields: map[string]*structpb.Value{"text": structpb.NewNumberValue(1)}}
	err := client.conn.Invoke(context.Background(), FullMethod(lexan.ModeTokens), in, new(structpb.Struct))
	if status.Code(err) != codes.InvalidArgument {
		t.Errorf("status = %v, want InvalidArgument", status.Code(err))
	}
}

func TestServer_Health(t *testing.T) {
	client := startTestServer(t, DefaultConfig())

	got, err := client.Health(context.Background())
	if err != nil {
		t.Fatalf("Health() error = %v", err)
	}
	if got != healthpb.HealthCheckResponse_SERVING {
		t.Errorf("Health() = %v, want SERVING", got)
	}
}

func TestServer_HealthRegistry(t *testing.T) {
	srv, err := New(Config{
		Service: DefaultConfig().Service,
		Logger:  logging.Wrap(mdwlog.Nop(), "test"),
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	report := srv.HealthRegistry().Check(context.Background())
	if !report.Healthy() {
		t.Errorf("health report = %v", report)
	}
}

func TestClient_UnknownMode(t *testing.T) {
	client := NewClient(nil, 0)
	if _, err := client.Analyze(context.Background(), lexan.Mode("ast"), "x", ""); !mdwerror.HasCode(err, mdwerror.CodeUnknownMode) {
		t.Errorf("Analyze() error = %v, want CodeUnknownMode", err)
	}
}

func TestServer_Reflection(t *testing.T) {
	client := startTestServer(t, DefaultConfig())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	stream, err := rpb.NewServerReflectionClient(client.conn).ServerReflectionInfo(ctx)
	if err != nil {
		t.Fatalf("ServerReflectionInfo() error = %v", err)
	}

	ask := func(req *rpb.ServerReflectionRequest) *rpb.ServerReflectionResponse {
		t.Helper()
		if err := stream.Send(req); err != nil {
			t.Fatalf("Send() error = %v", err)
		}
		resp, err := stream.Recv()
		if err != nil {
			t.Fatalf("Recv() error = %v", err)
		}
		return resp
	}

	list := ask(&rpb.ServerReflectionRequest{
		MessageRequest: &rpb.ServerReflectionRequest_ListServices{ListServices: ""},
	})
	var listed bool
	for _, svc := range list.GetListServicesResponse().GetService() {
		if svc.GetName() == ServiceName {
			listed = true
		}
	}
	if !listed {
		t.Errorf("ListServices() = %v, want %s", list.GetListServicesResponse().GetService(), ServiceName)
	}

	health := ask(&rpb.ServerReflectionRequest{
		MessageRequest: &rpb.ServerReflectionRequest_FileContainingSymbol{FileContainingSymbol: "grpc.health.v1.Health"},
	})
	if len(health.GetFileDescriptorResponse().GetFileDescriptorProto()) == 0 {
		t.Errorf("health service not described: %v", health.GetErrorResponse())
	}

	analyzer := ask(&rpb.ServerReflectionRequest{
		MessageRequest: &rpb.ServerReflectionRequest_FileContainingSymbol{FileContainingSymbol: ServiceName},
	})
	if codes.Code(analyzer.GetErrorResponse().GetErrorCode()) != codes.NotFound {
		t.Errorf("describing %s = %v, want NotFound", ServiceName, analyzer.GetMessageResponse())
	}
	if ServiceDesc.Metadata != nil {
		t.Errorf("ServiceDesc.Metadata = %v, want nil", ServiceDesc.Metadata)
	}
}
