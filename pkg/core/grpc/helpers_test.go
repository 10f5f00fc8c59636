package grpc

import mdwlog "github.com/msto63/lexan/foundation/core/log"

func nopLogger() *mdwlog.Logger {
	return mdwlog.Nop()
}
