package grpc

import (
	"context"
	"errors"

	mdwerror "github.com/msto63/lexan/foundation/core/error"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// CodeFor maps an error code to a gRPC status code
func CodeFor(code mdwerror.Code) codes.Code {
	switch code {
	case mdwerror.CodeInvalidInput, mdwerror.CodeLexical, mdwerror.CodeSyntax,
		mdwerror.CodeGrammarViolation, mdwerror.CodeUnknownMode:
		return codes.InvalidArgument
	case mdwerror.CodeInputTooLarge:
		return codes.ResourceExhausted
	case mdwerror.CodeNotFound:
		return codes.NotFound
	case mdwerror.CodeTimeout:
		return codes.DeadlineExceeded
	case mdwerror.CodeServiceUnavailable, mdwerror.CodeNetworkError:
		return codes.Unavailable
	case mdwerror.CodeConfigError, mdwerror.CodeMissingConfig, mdwerror.CodeInvalidConfig:
		return codes.FailedPrecondition
	default:
		return codes.Internal
	}
}

// ToStatus converts err into a gRPC status. Errors that already carry a
// status keep it; a nil error yields OK.
func ToStatus(err error) *status.Status {
	if err == nil {
		return status.New(codes.OK, "")
	}

	var mdwErr *mdwerror.Error
	if errors.As(err, &mdwErr) {
		return status.New(CodeFor(mdwErr.Code()), err.Error())
	}

	if s, ok := status.FromError(err); ok {
		return s
	}

	switch {
	case errors.Is(err, context.Canceled):
		return status.New(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.New(codes.DeadlineExceeded, err.Error())
	default:
		return status.New(codes.Internal, err.Error())
	}
}

// FromStatus converts a gRPC error received by a client into an error with
// the closest matching code
func FromStatus(err error) error {
	if err == nil {
		return nil
	}

	s, ok := status.FromError(err)
	if !ok {
		return err
	}

	code := mdwerror.CodeInternal
	switch s.Code() {
	case codes.InvalidArgument:
		code = mdwerror.CodeInvalidInput
	case codes.ResourceExhausted:
		code = mdwerror.CodeInputTooLarge
	case codes.NotFound:
		code = mdwerror.CodeNotFound
	case codes.DeadlineExceeded:
		code = mdwerror.CodeTimeout
	case codes.Unavailable:
		code = mdwerror.CodeServiceUnavailable
	case codes.FailedPrecondition:
		code = mdwerror.CodeConfigError
	}

	return mdwerror.Wrap(err, s.Message()).
		WithCode(code).
		WithDetail("grpc_code", s.Code().String())
}
