package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	mdwerror "github.com/msto63/lexan/foundation/core/error"
)

// EnvConfigPath names the environment variable holding the config file path
const EnvConfigPath = "LEXAN_CONFIG"

// Config holds the complete application configuration
type Config struct {
	General  GeneralConfig  `toml:"general"`
	Analyzer AnalyzerConfig `toml:"analyzer"`
	Server   ServerConfig   `toml:"server"`
	Gateway  GatewayConfig  `toml:"gateway"`
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	Name      string `toml:"name"`
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
	Locale    string `toml:"locale"`
}

// AnalyzerConfig holds engine settings
type AnalyzerConfig struct {
	MaxInputLength int  `toml:"max_input_length"`
	EnableTrace    bool `toml:"enable_trace"`
	// Keywords replaces the default keywords when set
	Keywords []string `toml:"keywords"`
	// CacheSize bounds the report cache; negative disables it
	CacheSize int      `toml:"cache_size"`
	CacheTTL  Duration `toml:"cache_ttl"`
}

// ServerConfig holds gRPC server settings
type ServerConfig struct {
	Host             string `toml:"host"`
	Port             int    `toml:"port"`
	// EnableReflection registers server reflection. Only the health
	// service can be described; lexan.v1.Analyzer is listed by name.
	EnableReflection bool   `toml:"enable_reflection"`
}

// GatewayConfig holds HTTP and WebSocket gateway settings
type GatewayConfig struct {
	Host         string   `toml:"host"`
	Port         int      `toml:"port"`
	ReadTimeout  Duration `toml:"read_timeout"`
	WriteTimeout Duration `toml:"write_timeout"`
}

// Duration wraps time.Duration for TOML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns a configuration with every default applied
func Default() *Config {
	cfg := &Config{Analyzer: AnalyzerConfig{EnableTrace: true}}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML file
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, mdwerror.New("config file not found").
			WithCode(mdwerror.CodeMissingConfig).
			WithOperation("config.Load").
			WithDetail("path", path)
	}

	// Trace is on unless the file turns it off
	cfg := Config{Analyzer: AnalyzerConfig{EnableTrace: true}}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, mdwerror.Wrap(err, "failed to parse config").
			WithCode(mdwerror.CodeInvalidConfig).
			WithOperation("config.Load").
			WithDetail("path", path)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadFromEnv loads configuration from LEXAN_CONFIG or the first default
// location that exists
func LoadFromEnv() (*Config, error) {
	path := os.Getenv(EnvConfigPath)
	if path == "" {
		for _, p := range DefaultPaths() {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		return nil, mdwerror.New("no config file found, set LEXAN_CONFIG or create configs/lexan.toml").
			WithCode(mdwerror.CodeMissingConfig).
			WithOperation("config.LoadFromEnv")
	}

	return Load(path)
}

// LoadOrDefault loads path when given, else the environment config, and
// falls back to Default when no file exists at all
func LoadOrDefault(path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}
	cfg, err := LoadFromEnv()
	if mdwerror.HasCode(err, mdwerror.CodeMissingConfig) && os.Getenv(EnvConfigPath) == "" {
		return Default(), nil
	}
	return cfg, err
}

// DefaultPaths lists the locations searched by LoadFromEnv
func DefaultPaths() []string {
	return []string{
		"./configs/lexan.toml",
		"./lexan.toml",
		filepath.Join(os.Getenv("HOME"), ".config/lexan/lexan.toml"),
	}
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// General
	if c.General.Name == "" {
		c.General.Name = "lexan"
	}
	if c.General.LogLevel == "" {
		c.General.LogLevel = "info"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "console"
	}
	if c.General.Locale == "" {
		c.General.Locale = "en"
	}

	// Analyzer
	if c.Analyzer.MaxInputLength == 0 {
		c.Analyzer.MaxInputLength = 65536
	}
	if c.Analyzer.CacheSize == 0 {
		c.Analyzer.CacheSize = 1024
	}
	if c.Analyzer.CacheTTL.Duration == 0 {
		c.Analyzer.CacheTTL.Duration = 5 * time.Minute
	}

	// Server
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 9310
	}

	// Gateway
	if c.Gateway.Host == "" {
		c.Gateway.Host = "0.0.0.0"
	}
	if c.Gateway.Port == 0 {
		c.Gateway.Port = 8310
	}
	if c.Gateway.ReadTimeout.Duration == 0 {
		c.Gateway.ReadTimeout.Duration = 30 * time.Second
	}
	if c.Gateway.WriteTimeout.Duration == 0 {
		c.Gateway.WriteTimeout.Duration = 30 * time.Second
	}
}

// Validate checks value ranges
func (c *Config) Validate() error {
	for name, port := range map[string]int{"server.port": c.Server.Port, "gateway.port": c.Gateway.Port} {
		if port < 1 || port > 65535 {
			return mdwerror.New("port out of range").
				WithCode(mdwerror.CodeInvalidConfig).
				WithOperation("config.Validate").
				WithDetail("key", name).
				WithDetail("port", port)
		}
	}
	return nil
}

// ServerAddress returns the gRPC listen address
func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// GatewayAddress returns the HTTP listen address
func (c *Config) GatewayAddress() string {
	return fmt.Sprintf("%s:%d", c.Gateway.Host, c.Gateway.Port)
}
