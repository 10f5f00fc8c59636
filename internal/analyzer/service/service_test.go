package service

import (
	"context"
	"strings"
	"testing"

	mdwerror "github.com/msto63/lexan/foundation/core/error"
	mdwlog "github.com/msto63/lexan/foundation/core/log"
	"github.com/msto63/lexan/foundation/lexan"
	"github.com/msto63/lexan/pkg/core/logging"
)

func newTestService(t *testing.T, cfg Config) *Service {
	t.Helper()
	cfg.Logger = logging.Wrap(mdwlog.Nop(), "test")
	svc, err := NewService(cfg)
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	t.Cleanup(svc.Close)
	return svc
}

func TestService_Analyze(t *testing.T) {
	svc := newTestService(t, DefaultConfig())

	resp, err := svc.Analyze(context.Background(), Request{Mode: lexan.ModeQuads, Text: "a+b*c"})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if !resp.Valid || len(resp.Quads) != 2 {
		t.Errorf("response = %+v", resp.Report)
	}
	if resp.Locale != "en" {
		t.Errorf("Locale = %v, want en", resp.Locale)
	}
}

func TestService_Localization(t *testing.T) {
	svc := newTestService(t, DefaultConfig())

	tests := []struct {
		locale string
		want   string
	}{
		{"", "Expected the assignment operator '=', found '{'"},
		{"ru", "Ожидался оператор присваивания '=', найдено '{'"},
		{"ru-RU,ru;q=0.9,en;q=0.8", "Ожидался оператор присваивания '=', найдено '{'"},
		{"de", "Expected the assignment operator '=', found '{'"},
	}

	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			resp, err := svc.Analyze(context.Background(), Request{
				Mode:   lexan.ModeDeclarations,
				Text:   `let x {"a": 1};`,
				Locale: tt.locale,
			})
			if err != nil {
				t.Fatalf("Analyze() error = %v", err)
			}
			if len(resp.Diagnostics) == 0 {
				t.Fatal("no diagnostics")
			}
			if got := resp.Diagnostics[0].Message; got != tt.want {
				t.Errorf("Message = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestService_DefaultLocale(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DefaultLocale = "ru"
	svc := newTestService(t, cfg)

	if got := svc.ResolveLocale(""); got != "ru" {
		t.Errorf("ResolveLocale(\"\") = %v, want ru", got)
	}
	if got := svc.ResolveLocale("en-GB"); got != "en" {
		t.Errorf("ResolveLocale(en-GB) = %v, want en", got)
	}
}

func TestService_Errors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Engine.MaxInputLength = 4
	svc := newTestService(t, cfg)

	_, err := svc.Analyze(context.Background(), Request{Mode: "ast", Text: "x"})
	if !mdwerror.HasCode(err, mdwerror.CodeUnknownMode) {
		t.Errorf("unknown mode error = %v", err)
	}

	_, err = svc.Analyze(context.Background(), Request{Mode: lexan.ModeTokens, Text: strings.Repeat("x", 5)})
	if !mdwerror.HasCode(err, mdwerror.CodeInputTooLarge) {
		t.Errorf("oversized input error = %v", err)
	}
	messages := []struct {
		locale string
		want   string
	}{
		{"", "Input of 5 bytes exceeds the limit of 4 bytes"},
		{"ru-RU,ru;q=0.9", "Размер входных данных (5 байт) превышает предел 4 байт"},
	}
	for _, m := range messages {
		if got := svc.ErrorMessage(m.locale, err); got != m.want {
			t.Errorf("ErrorMessage(%q) = %q, want %q", m.locale, got, m.want)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = svc.Analyze(ctx, Request{Mode: lexan.ModeTokens, Text: "x"})
	if !mdwerror.HasCode(err, mdwerror.CodeTimeout) {
		t.Errorf("cancelled request error = %v", err)
	}
}

func TestService_InvalidKeywords(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Engine.Keywords = []string{"1bad"}
	cfg.Logger = logging.Wrap(mdwlog.Nop(), "test")

	if _, err := NewService(cfg); !mdwerror.HasCode(err, mdwerror.CodeConfigError) {
		t.Errorf("NewService() error = %v, want CodeConfigError", err)
	}
}

func TestService_Probe(t *testing.T) {
	svc := newTestService(t, DefaultConfig())
	if err := svc.Probe(context.Background()); err != nil {
		t.Errorf("Probe() error = %v", err)
	}
}

func TestService_Locales(t *testing.T) {
	svc := newTestService(t, DefaultConfig())
	locales := svc.Locales()
	if len(locales) != 2 || locales[0] != "en" || locales[1] != "ru" {
		t.Errorf("Locales() = %v, want [en ru]", locales)
	}
	if len(svc.Modes()) != 4 {
		t.Errorf("Modes() = %v", svc.Modes())
	}
}

func TestService_ReportCache(t *testing.T) {
	svc := newTestService(t, DefaultConfig())
	req := Request{Mode: lexan.ModeDescent, Text: "1+", Locale: "ru"}

	first, err := svc.Analyze(context.Background(), req)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	second, err := svc.Analyze(context.Background(), req)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if first.Cached || !second.Cached {
		t.Errorf("Cached = %v, %v, want false, true", first.Cached, second.Cached)
	}
	if first.ID == second.ID {
		t.Error("a cached report should get a fresh ID")
	}
	if second.Diagnostics[0].Message != first.Diagnostics[0].Message {
		t.Errorf("cached message = %q, want %q", second.Diagnostics[0].Message, first.Diagnostics[0].Message)
	}

	// Another locale is a different entry
	third, err := svc.Analyze(context.Background(), Request{Mode: lexan.ModeDescent, Text: "1+", Locale: "en"})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if third.Cached {
		t.Error("a new locale should not hit the cache")
	}

	if n := svc.CachedReports(); n != 2 {
		t.Errorf("CachedReports() = %d, want 2", n)
	}
	svc.Close()
	if n := svc.CachedReports(); n != 0 {
		t.Errorf("CachedReports() after Close = %d, want 0", n)
	}
}

func TestService_CacheDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CacheSize = 0
	svc := newTestService(t, cfg)

	for i := 0; i < 2; i++ {
		resp, err := svc.Analyze(context.Background(), Request{Mode: lexan.ModeTokens, Text: "x"})
		if err != nil {
			t.Fatalf("Analyze() error = %v", err)
		}
		if resp.Cached {
			t.Error("Cached should stay false without a cache")
		}
	}
}
