package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// EnvConfigPath names the environment variable holding the config file path
const EnvConfigPath = "KRAMA_CONFIG"

// Config holds the complete application configuration
type Config struct {
	General  GeneralConfig  `toml:"general"`
	Lexicon  LexiconConfig  `toml:"lexicon"`
	Server   ServerConfig   `toml:"server"`
	History  HistoryConfig  `toml:"history"`
	Cache    CacheConfig    `toml:"cache"`
	Analysis AnalysisConfig `toml:"analysis"`
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	Name        string `toml:"name"`
	Environment string `toml:"environment"`
	DataDir     string `toml:"data_dir"`
	LogLevel    string `toml:"log_level"`
	LogFormat   string `toml:"log_format"`
}

// LexiconConfig selects the lexicon file. An empty path uses the built-in lexicon.
type LexiconConfig struct {
	Path  string `toml:"path"`
	Watch bool   `toml:"watch"`
}

// ServerConfig holds the HTTP and gRPC listener settings
type ServerConfig struct {
	Host            string     `toml:"host"`
	HTTPPort        int        `toml:"http_port"`
	GRPCPort        int        `toml:"grpc_port"`
	ReadTimeout     Duration   `toml:"read_timeout"`
	WriteTimeout    Duration   `toml:"write_timeout"`
	ShutdownTimeout Duration   `toml:"shutdown_timeout"`
	CORS            CORSConfig `toml:"cors"`
}

// CORSConfig holds CORS settings
type CORSConfig struct {
	Enabled        bool     `toml:"enabled"`
	AllowedOrigins []string `toml:"allowed_origins"`
	AllowedMethods []string `toml:"allowed_methods"`
	MaxAge         int      `toml:"max_age"`
}

// HistoryConfig holds the analysis history store settings
type HistoryConfig struct {
	Enabled       bool   `toml:"enabled"`
	Path          string `toml:"path"`
	RetentionDays int    `toml:"retention_days"`
}

// CacheConfig holds the result cache settings
type CacheConfig struct {
	Enabled  bool     `toml:"enabled"`
	MaxItems int      `toml:"max_items"`
	TTL      Duration `toml:"ttl"`
}

// AnalysisConfig holds analysis limits
type AnalysisConfig struct {
	MaxInputLength   int  `toml:"max_input_length"`
	BatchConcurrency int  `toml:"batch_concurrency"`
	MaxBatchSize     int  `toml:"max_batch_size"`
	AllowTrailing    bool `toml:"allow_trailing"`
	Suggestions      bool `toml:"suggestions"`
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
	cfg := &Config{
		History:  HistoryConfig{Enabled: true},
		Cache:    CacheConfig{Enabled: true},
		Analysis: AnalysisConfig{Suggestions: true},
	}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML file
func Load(path string) (*Config, error) {
	// Expand environment variables in path
	path = os.ExpandEnv(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	// Switches default to on when the file does not mention them
	cfg := Config{
		History:  HistoryConfig{Enabled: true},
		Cache:    CacheConfig{Enabled: true},
		Analysis: AnalysisConfig{Suggestions: true},
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()
	cfg.expandEnvVars()

	return &cfg, nil
}

// LoadFromEnv loads configuration from the KRAMA_CONFIG environment variable
// or the first default location that exists
func LoadFromEnv() (*Config, error) {
	path := findConfig()
	if path == "" {
		return nil, fmt.Errorf("no config file found, set %s or create configs/config.toml", EnvConfigPath)
	}
	return Load(path)
}

// LoadOrDefault loads path when set, otherwise the file LoadFromEnv would
// use, and falls back to Default when there is none
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		path = findConfig()
	}
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

func findConfig() string {
	if path := os.Getenv(EnvConfigPath); path != "" {
		return path
	}
	defaultPaths := []string{
		"./configs/config.toml",
		"./config.toml",
		filepath.Join(os.Getenv("HOME"), ".config/krama/config.toml"),
	}
	for _, p := range defaultPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// General
	if c.General.Name == "" {
		c.General.Name = "krama"
	}
	if c.General.Environment == "" {
		c.General.Environment = "development"
	}
	if c.General.DataDir == "" {
		c.General.DataDir = "./data"
	}
	if c.General.LogLevel == "" {
		c.General.LogLevel = "info"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "text"
	}

	// Server
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.GRPCPort == 0 {
		c.Server.GRPCPort = 9090
	}
	if c.Server.ReadTimeout.Duration == 0 {
		c.Server.ReadTimeout.Duration = 15 * time.Second
	}
	if c.Server.WriteTimeout.Duration == 0 {
		c.Server.WriteTimeout.Duration = 30 * time.Second
	}
	if c.Server.ShutdownTimeout.Duration == 0 {
		c.Server.ShutdownTimeout.Duration = 10 * time.Second
	}
	if len(c.Server.CORS.AllowedOrigins) == 0 {
		c.Server.CORS.AllowedOrigins = []string{"*"}
	}
	if len(c.Server.CORS.AllowedMethods) == 0 {
		c.Server.CORS.AllowedMethods = []string{"GET", "POST", "OPTIONS"}
	}
	if c.Server.CORS.MaxAge == 0 {
		c.Server.CORS.MaxAge = 300
	}

	// History
	if c.History.Path == "" {
		c.History.Path = filepath.Join(c.General.DataDir, "history.db")
	}
	if c.History.RetentionDays == 0 {
		c.History.RetentionDays = 30
	}

	// Cache
	if c.Cache.MaxItems == 0 {
		c.Cache.MaxItems = 1000
	}
	if c.Cache.TTL.Duration == 0 {
		c.Cache.TTL.Duration = 10 * time.Minute
	}

	// Analysis
	if c.Analysis.MaxInputLength == 0 {
		c.Analysis.MaxInputLength = 500
	}
	if c.Analysis.BatchConcurrency == 0 {
		c.Analysis.BatchConcurrency = 4
	}
	if c.Analysis.MaxBatchSize == 0 {
		c.Analysis.MaxBatchSize = 100
	}
}

// expandEnvVars expands environment variables in configuration values
func (c *Config) expandEnvVars() {
	c.General.DataDir = os.ExpandEnv(c.General.DataDir)
	c.Lexicon.Path = os.ExpandEnv(c.Lexicon.Path)
	c.History.Path = os.ExpandEnv(c.History.Path)
}

// ApplyEnvOverrides applies KRAMA_HOST, KRAMA_HTTP_PORT, KRAMA_GRPC_PORT and
// KRAMA_LEXICON when set
func (c *Config) ApplyEnvOverrides() error {
	if v := os.Getenv("KRAMA_HOST"); v != "" {
		c.Server.Host = v
	}
	if v := os.Getenv("KRAMA_HTTP_PORT"); v != "" {
		port, err := parsePort(v)
		if err != nil {
			return fmt.Errorf("KRAMA_HTTP_PORT: %w", err)
		}
		c.Server.HTTPPort = port
	}
	if v := os.Getenv("KRAMA_GRPC_PORT"); v != "" {
		port, err := parsePort(v)
		if err != nil {
			return fmt.Errorf("KRAMA_GRPC_PORT: %w", err)
		}
		c.Server.GRPCPort = port
	}
	if v := os.Getenv("KRAMA_LEXICON"); v != "" {
		c.Lexicon.Path = v
	}
	return nil
}

func parsePort(s string) (int, error) {
	var port int
	if _, err := fmt.Sscanf(s, "%d", &port); err != nil {
		return 0, fmt.Errorf("invalid port %q", s)
	}
	if port <= 0 || port > 65535 {
		return 0, fmt.Errorf("port %d out of range", port)
	}
	return port, nil
}

// ServerAddress returns the listen address for "http" or "grpc"
func (c *Config) ServerAddress(kind string) string {
	switch kind {
	case "http":
		return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.HTTPPort)
	case "grpc":
		return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.GRPCPort)
	default:
		return ""
	}
}
