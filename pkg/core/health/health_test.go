package health

import (
	"context"
	"errors"
	"net"
	"sync/atomic"
	"testing"
	"time"
)

func TestNewChecker(t *testing.T) {
	checker := NewChecker("engine", func(ctx context.Context) CheckResult {
		return CheckResult{Status: StatusHealthy, Message: "probe passed"}
	})

	if checker.Name() != "engine" {
		t.Errorf("Name() = %v, want engine", checker.Name())
	}
	if result := checker.Check(context.Background()); result.Status != StatusHealthy {
		t.Errorf("Status = %v, want healthy", result.Status)
	}
}

func TestCheckFunc(t *testing.T) {
	fn := CheckFunc(func(ctx context.Context) CheckResult {
		return CheckResult{Status: StatusHealthy}
	})

	if fn.Name() != "unknown" {
		t.Errorf("Name() = %v, want unknown", fn.Name())
	}
}

func TestRegistry_Check(t *testing.T) {
	registry := NewRegistry("lexan", "0.2.0")
	registry.Register(AlwaysHealthy("zeta"))
	registry.RegisterFunc("alpha", func(ctx context.Context) CheckResult {
		return CheckResult{Status: StatusHealthy}
	})

	report := registry.Check(context.Background())

	if report.Service != "lexan" || report.Version != "0.2.0" {
		t.Errorf("report = %+v", report)
	}
	if !report.Healthy() {
		t.Errorf("Status = %v, want healthy", report.Status)
	}
	if len(report.Checks) != 2 {
		t.Fatalf("Checks count = %v, want 2", len(report.Checks))
	}
	if report.Checks[0].Name != "alpha" || report.Checks[1].Name != "zeta" {
		t.Errorf("checks not sorted: %v, %v", report.Checks[0].Name, report.Checks[1].Name)
	}
	if report.Checks[0].Timestamp.IsZero() {
		t.Error("Timestamp not set")
	}
}

func TestRegistry_Unregister(t *testing.T) {
	registry := NewRegistry("lexan", "0.2.0")
	registry.Register(AlwaysHealthy("engine"))
	registry.Unregister("engine")

	if report := registry.Check(context.Background()); len(report.Checks) != 0 {
		t.Errorf("Checks count = %v, want 0", len(report.Checks))
	}
}

func TestRegistry_OverallStatus(t *testing.T) {
	tests := []struct {
		name     string
		statuses []Status
		want     Status
	}{
		{"all healthy", []Status{StatusHealthy, StatusHealthy}, StatusHealthy},
		{"degraded", []Status{StatusHealthy, StatusDegraded}, StatusDegraded},
		{"unhealthy wins", []Status{StatusDegraded, StatusUnhealthy, StatusHealthy}, StatusUnhealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := NewRegistry("lexan", "0.2.0")
			for i, s := range tt.statuses {
				status := s
				registry.RegisterFunc(string(rune('a'+i)), func(ctx context.Context) CheckResult {
					return CheckResult{Status: status}
				})
			}

			if got := registry.Check(context.Background()).Status; got != tt.want {
				t.Errorf("Status = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRegistry_ConcurrentChecks(t *testing.T) {
	registry := NewRegistry("lexan", "0.2.0")

	var calls int32
	for _, name := range []string{"a", "b", "c", "d"} {
		registry.RegisterFunc(name, func(ctx context.Context) CheckResult {
			atomic.AddInt32(&calls, 1)
			time.Sleep(20 * time.Millisecond)
			return CheckResult{Status: StatusHealthy}
		})
	}

	start := time.Now()
	registry.CheckWithTimeout(time.Second)
	elapsed := time.Since(start)

	if atomic.LoadInt32(&calls) != 4 {
		t.Errorf("calls = %v, want 4", calls)
	}
	if elapsed > 70*time.Millisecond {
		t.Errorf("checks did not run concurrently: %v", elapsed)
	}
}

func TestProbeCheck(t *testing.T) {
	ok := ProbeCheck("engine", func(ctx context.Context) error { return nil })
	if result := ok.Check(context.Background()); result.Status != StatusHealthy {
		t.Errorf("Status = %v, want healthy", result.Status)
	}

	failing := ProbeCheck("engine", func(ctx context.Context) error { return errors.New("catalogue missing") })
	result := failing.Check(context.Background())
	if result.Status != StatusUnhealthy || result.Message != "catalogue missing" {
		t.Errorf("result = %+v", result)
	}
}

func TestTCPCheck(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen() error = %v", err)
	}
	addr := listener.Addr().String()

	checker := TCPCheck("grpc-listener", addr, time.Second)
	result := checker.Check(context.Background())
	if result.Status != StatusHealthy {
		t.Errorf("Status = %v, want healthy (%s)", result.Status, result.Message)
	}
	if result.Details["address"] != addr {
		t.Errorf("Details[address] = %v, want %v", result.Details["address"], addr)
	}

	listener.Close()
	if result := checker.Check(context.Background()); result.Status != StatusUnhealthy {
		t.Errorf("Status after close = %v, want unhealthy", result.Status)
	}
}

func TestReport_String(t *testing.T) {
	report := &Report{Service: "lexan", Status: StatusHealthy, Uptime: time.Hour, Checks: []CheckResult{{}, {}}}
	if got := report.String(); got != "Service: lexan, Status: healthy, Uptime: 1h0m0s, Checks: 2" {
		t.Errorf("String() = %q", got)
	}
}
