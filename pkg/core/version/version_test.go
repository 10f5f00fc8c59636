package version

import (
	"runtime"
	"strings"
	"testing"
)

func TestServiceVersion(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"engine", Engine},
		{"server", Server},
		{"grpc", Server},
		{"gateway", Gateway},
		{"unknown", Platform},
		{"", Platform},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ServiceVersion(tt.name); got != tt.expected {
				t.Errorf("ServiceVersion(%q) = %v, want %v", tt.name, got, tt.expected)
			}
		})
	}
}

func TestGet(t *testing.T) {
	info := Get()

	if info.Version != Platform {
		t.Errorf("Version = %v, want %v", info.Version, Platform)
	}
	if info.GoVersion != runtime.Version() {
		t.Errorf("GoVersion = %v, want %v", info.GoVersion, runtime.Version())
	}
	if !strings.HasPrefix(info.String(), "lexan "+Platform) {
		t.Errorf("String() = %v", info.String())
	}
}
