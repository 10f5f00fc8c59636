package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	mdwerror "github.com/msto63/lexan/foundation/core/error"
	"github.com/msto63/lexan/foundation/lexan"
	"github.com/msto63/lexan/foundation/lexan/messages"
	"github.com/msto63/lexan/foundation/utils/stringx"
	"github.com/msto63/lexan/pkg/core/cache"
	"github.com/msto63/lexan/pkg/core/logging"
)

// Request is one analysis request
type Request struct {
	Mode lexan.Mode `json:"mode"`
	Text string     `json:"text"`
	// Locale is a locale tag or an Accept-Language value; empty selects
	// the service default
	Locale string `json:"locale,omitempty"`
}

// Response is a report with its diagnostics rendered in Locale
type Response struct {
	*lexan.Report
	Locale string `json:"locale"`
	// Cached is set when the report was served from the report cache
	Cached bool `json:"cached,omitempty"`
}

// Config holds service configuration
type Config struct {
	Engine        lexan.Options
	DefaultLocale string
	Logger        *logging.Logger

	// CacheSize bounds the report cache; zero disables it
	CacheSize int
	CacheTTL  time.Duration
}

// DefaultConfig returns the default service configuration
func DefaultConfig() Config {
	return Config{
		Engine:        lexan.DefaultOptions(),
		DefaultLocale: messages.DefaultLocale,
		CacheSize:     1024,
		CacheTTL:      5 * time.Minute,
	}
}

// Service runs analyses for the transports. It is safe for concurrent use.
type Service struct {
	engine        *lexan.Engine
	catalog       *messages.Catalog
	logger        *logging.Logger
	defaultLocale string
	reports       *cache.Cache[*lexan.Report]
}

// NewService creates a new analysis service
func NewService(cfg Config) (*Service, error) {
	if cfg.Logger == nil {
		cfg.Logger = logging.New("analyzer")
	}
	if cfg.Engine.Logger == nil {
		cfg.Engine.Logger = cfg.Logger.Logger
	}

	engine, err := lexan.New(cfg.Engine)
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to create engine").
			WithCode(mdwerror.CodeConfigError).
			WithOperation("service.NewService")
	}

	catalog, err := messages.NewCatalog()
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to load message catalogue").
			WithCode(mdwerror.CodeConfigError).
			WithOperation("service.NewService")
	}

	defaultLocale := catalog.Resolve(cfg.DefaultLocale)

	svc := &Service{
		engine:        engine,
		catalog:       catalog,
		logger:        cfg.Logger,
		defaultLocale: defaultLocale,
	}
	if cfg.CacheSize > 0 {
		svc.reports = cache.New[*lexan.Report](cache.Config{
			MaxItems:        cfg.CacheSize,
			TTL:             cfg.CacheTTL,
			CleanupInterval: time.Minute,
		})
	}
	return svc, nil
}

// Close drops cached reports and stops the cache cleanup
func (s *Service) Close() {
	if s.reports != nil {
		s.reports.Clear()
		s.reports.Close()
	}
}

// CachedReports returns the number of reports in the cache
func (s *Service) CachedReports() int {
	if s.reports == nil {
		return 0
	}
	return s.reports.Size()
}

// Analyze runs req.Mode over req.Text and localizes the diagnostics.
// Repeated requests are answered from the report cache under a fresh ID.
func (s *Service) Analyze(ctx context.Context, req Request) (*Response, error) {
	return s.analyze(ctx, req, s.reports != nil)
}

func (s *Service) analyze(ctx context.Context, req Request, useCache bool) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, mdwerror.Wrap(err, "request cancelled").
			WithCode(mdwerror.CodeTimeout).
			WithOperation("service.Analyze")
	}

	mode, err := lexan.ParseMode(string(req.Mode))
	if err != nil {
		return nil, err
	}
	locale := s.ResolveLocale(req.Locale)

	var key string
	if useCache {
		key = cache.Key(mode.String(), locale, req.Text)
		if cached, ok := s.reports.Get(key); ok {
			report := *cached
			report.ID = uuid.NewString()
			s.logger.Debug("Analysis served from cache", "id", report.ID, "mode", mode.String())
			return &Response{Report: &report, Locale: locale, Cached: true}, nil
		}
	}

	report, err := s.engine.Analyze(mode, req.Text)
	if err != nil {
		s.logger.Warn("Analysis rejected", "mode", mode.String(), "length", len(req.Text), "error", err)
		return nil, err
	}

	if locale != messages.DefaultLocale {
		report.Diagnostics = s.catalog.LocalizeAll(locale, report.Diagnostics)
	}
	if useCache {
		s.reports.Set(key, report)
	}

	s.logger.Debug("Analysis completed",
		"id", report.ID,
		"mode", mode.String(),
		"valid", report.Valid,
		"diagnostics", len(report.Diagnostics),
		"locale", locale,
	)

	return &Response{Report: report, Locale: locale}, nil
}

// ResolveLocale maps a locale tag or Accept-Language value to an available
// locale
func (s *Service) ResolveLocale(locale string) string {
	if stringx.IsBlank(locale) {
		return s.defaultLocale
	}
	return s.catalog.Resolve(locale)
}

// ErrorMessage renders err in the locale resolved from locale
func (s *Service) ErrorMessage(locale string, err error) string {
	return s.catalog.Error(s.ResolveLocale(locale), err)
}

// Locales returns the available locales
func (s *Service) Locales() []string {
	return s.catalog.Locales()
}

// Modes returns the analysis modes
func (s *Service) Modes() []lexan.Mode {
	return lexan.Modes()
}

// Catalog returns the message catalogue
func (s *Service) Catalog() *messages.Catalog {
	return s.catalog
}

// MaxInputLength returns the engine input limit in bytes
func (s *Service) MaxInputLength() int {
	return s.engine.MaxInputLength()
}

// Probe runs a small analysis of every mode and fails when any of them
// does not give the known answer
func (s *Service) Probe(ctx context.Context) error {
	probes := []struct {
		mode  lexan.Mode
		text  string
		valid bool
	}{
		{lexan.ModeTokens, "let", true},
		{lexan.ModeDeclarations, `let p = {"k": 1};`, true},
		{lexan.ModeDescent, "1+2*3", true},
		{lexan.ModeQuads, "a+1", false},
	}

	for _, p := range probes {
		ctx, cancel := context.WithTimeout(ctx, time.Second)
		resp, err := s.analyze(ctx, Request{Mode: p.mode, Text: p.text}, false)
		cancel()
		if err != nil {
			return err
		}
		if resp.Valid != p.valid {
			return mdwerror.New("engine probe gave an unexpected result").
				WithCode(mdwerror.CodeInternal).
				WithOperation("service.Probe").
				WithDetail("mode", p.mode.String())
		}
	}
	return nil
}
