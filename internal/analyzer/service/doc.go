// Package service is the transport-independent analysis service shared by
// the gRPC server, the HTTP gateway and the terminal inspector. It wraps
// the engine, resolves the request locale and localizes diagnostics.
package service
