package grpc

import (
	"context"
	"errors"
	"fmt"
	"testing"

	mdwerror "github.com/msto63/lexan/foundation/core/error"
	"github.com/msto63/lexan/pkg/core/logging"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func TestToStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want codes.Code
	}{
		{"nil", nil, codes.OK},
		{"input too large", mdwerror.New("too long").WithCode(mdwerror.CodeInputTooLarge), codes.ResourceExhausted},
		{"unknown mode", mdwerror.New("mode").WithCode(mdwerror.CodeUnknownMode), codes.InvalidArgument},
		{"wrapped", fmt.Errorf("outer: %w", mdwerror.New("missing").WithCode(mdwerror.CodeNotFound)), codes.NotFound},
		{"config", mdwerror.New("bad").WithCode(mdwerror.CodeInvalidConfig), codes.FailedPrecondition},
		{"status", status.Error(codes.Unauthenticated, "no"), codes.Unauthenticated},
		{"canceled", context.Canceled, codes.Canceled},
		{"deadline", context.DeadlineExceeded, codes.DeadlineExceeded},
		{"plain", errors.New("boom"), codes.Internal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToStatus(tt.err).Code(); got != tt.want {
				t.Errorf("ToStatus().Code() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFromStatus(t *testing.T) {
	if FromStatus(nil) != nil {
		t.Error("FromStatus(nil) should be nil")
	}

	err := FromStatus(status.Error(codes.ResourceExhausted, "input exceeds the maximum length"))
	if !mdwerror.HasCode(err, mdwerror.CodeInputTooLarge) {
		t.Errorf("FromStatus() code = %v, want %v", mdwerror.GetCode(err), mdwerror.CodeInputTooLarge)
	}

	plain := errors.New("plain")
	if FromStatus(plain) != plain {
		t.Error("FromStatus() should return non-status errors unchanged")
	}
}

func TestErrorInterceptor(t *testing.T) {
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return nil, mdwerror.New("unknown analysis mode").WithCode(mdwerror.CodeUnknownMode)
	}

	_, err := ErrorInterceptor()(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: "/test"}, handler)
	if status.Code(err) != codes.InvalidArgument {
		t.Errorf("status code = %v, want InvalidArgument", status.Code(err))
	}
}

func TestRecoveryInterceptor(t *testing.T) {
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		panic("boom")
	}

	interceptor := RecoveryInterceptor(logging.Wrap(nopLogger(), "test"))
	_, err := interceptor(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: "/test"}, handler)
	if status.Code(err) != codes.Internal {
		t.Errorf("status code = %v, want Internal", status.Code(err))
	}
}

func TestGetRequestID(t *testing.T) {
	if got := GetRequestID(WithRequestID(context.Background(), "req-1")); got != "req-1" {
		t.Errorf("GetRequestID() = %q, want req-1", got)
	}

	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(RequestIDHeader, "req-2"))
	if got := GetRequestID(ctx); got != "req-2" {
		t.Errorf("GetRequestID() = %q, want req-2", got)
	}

	if got := GetRequestID(context.Background()); got != "" {
		t.Errorf("GetRequestID() = %q, want empty", got)
	}
}
