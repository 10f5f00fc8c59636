package server

import (
	"context"

	"github.com/msto63/lexan/foundation/lexan"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "lexan.v1.Analyzer"

// AnalyzerServer is the server API of lexan.v1.Analyzer. Requests carry
// {text, locale}; responses are the analysis report.
type AnalyzerServer interface {
	Tokenize(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	CheckDeclarations(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	ValidateExpression(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	CompileQuads(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
}

// methodForMode names the RPC serving each mode
var methodForMode = map[lexan.Mode]string{
	lexan.ModeTokens:       "Tokenize",
	lexan.ModeDeclarations: "CheckDeclarations",
	lexan.ModeDescent:      "ValidateExpression",
	lexan.ModeQuads:        "CompileQuads",
}

// FullMethod returns the full RPC name for mode
func FullMethod(mode lexan.Mode) string {
	return "/" + ServiceName + "/" + methodForMode[mode]
}

// ServiceDesc describes lexan.v1.Analyzer. Messages are google.protobuf.Struct
// so no generated code is needed. No file descriptor is registered for the
// service, so reflection lists it but cannot describe it.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AnalyzerServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Tokenize", Handler: unaryHandler("Tokenize", AnalyzerServer.Tokenize)},
		{MethodName: "CheckDeclarations", Handler: unaryHandler("CheckDeclarations", AnalyzerServer.CheckDeclarations)},
		{MethodName: "ValidateExpression", Handler: unaryHandler("ValidateExpression", AnalyzerServer.ValidateExpression)},
		{MethodName: "CompileQuads", Handler: unaryHandler("CompileQuads", AnalyzerServer.CompileQuads)},
	},
	Streams: []grpc.StreamDesc{},
}

// RegisterAnalyzerServer registers srv on s
func RegisterAnalyzerServer(s grpc.ServiceRegistrar, srv AnalyzerServer) {
	s.RegisterService(&ServiceDesc, srv)
}

type unaryCall func(AnalyzerServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(name string, call unaryCall) grpc.MethodHandler {
	fullMethod := "/" + ServiceName + "/" + name

	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(AnalyzerServer), ctx, in)
		}

		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(AnalyzerServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}
