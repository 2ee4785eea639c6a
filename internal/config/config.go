// Package config loads server configuration from flags, environment variables and .env files.
package config

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/listenupapp/colorhash/internal/logger"
	"github.com/listenupapp/colorhash/pkg/colorhash"
)

// Config holds the application configuration.
type Config struct {
	App       AppConfig
	Logger    LoggerConfig
	Server    ServerConfig
	Data      DataConfig
	Presets   PresetsConfig
	RateLimit RateLimitConfig
	Auth      AuthConfig
	Palette   PaletteConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level  string
	Format string // json, pretty, or empty to pick by environment
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Name          string
	Port          string
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
	IdleTimeout   time.Duration
	AdvertiseMDNS bool
	CORSOrigins   []string
}

// DataConfig points at the directory holding the preset database and auth key.
type DataConfig struct {
	Path string
}

// PresetsConfig configures the optional presets file.
type PresetsConfig struct {
	File  string
	Watch bool
}

// RateLimitConfig configures per-client request limiting.
type RateLimitConfig struct {
	Enabled bool
	RPS     float64
	Burst   int
}

// AuthConfig configures admin tokens.
type AuthConfig struct {
	TokenDuration time.Duration
}

// PaletteConfig holds the pools used when a request names no preset and
// overrides nothing.
type PaletteConfig struct {
	Lightness  []float64
	Saturation []float64
}

// ColorConfig builds the library configuration for the default palette.
func (p PaletteConfig) ColorConfig() (colorhash.Config, error) {
	var opts []colorhash.Option
	if p.Lightness != nil {
		opts = append(opts, colorhash.WithLightness(p.Lightness...))
	}
	if p.Saturation != nil {
		opts = append(opts, colorhash.WithSaturation(p.Saturation...))
	}
	return colorhash.NewConfig(opts...)
}

// Load reads configuration with precedence:
// 1. Command-line flags.
// 2. Environment variables.
// 3. .env file.
// 4. Defaults.
func Load(args []string) (*Config, error) {
	fs := flag.NewFlagSet("colorhash-server", flag.ContinueOnError)

	env := fs.String("env", "", "Environment (development, staging, production)")
	logLevel := fs.String("log-level", "", "Log level (debug, info, warn, error)")
	logFormat := fs.String("log-format", "", "Log format (json, pretty)")
	dataPath := fs.String("data-path", "", "Directory for the preset database and auth key")
	serverName := fs.String("server-name", "", "Name advertised over mDNS")
	port := fs.String("port", "", "Server port (default: 8080)")
	readTimeout := fs.String("read-timeout", "", "HTTP read timeout (default: 15s)")
	writeTimeout := fs.String("write-timeout", "", "HTTP write timeout (default: 15s)")
	idleTimeout := fs.String("idle-timeout", "", "HTTP idle timeout (default: 60s)")
	advertiseMDNS := fs.String("advertise-mdns", "", "Advertise via mDNS (default: true)")
	corsOrigins := fs.String("cors-origins", "", "Comma-separated allowed CORS origins (default: *)")
	presetsFile := fs.String("presets-file", "", "JSON file of presets to load")
	watchPresets := fs.String("watch-presets", "", "Reload the presets file on change (default: true)")
	rateLimitRPS := fs.String("rate-limit-rps", "", "Requests per second per client (default: 20)")
	rateLimitBurst := fs.String("rate-limit-burst", "", "Burst per client (default: 40)")
	tokenDuration := fs.String("token-duration", "", "Admin token lifetime (default: 24h)")
	lightness := fs.String("lightness", "", "Default lightness pool, comma-separated")
	saturation := fs.String("saturation", "", "Default saturation pool, comma-separated")
	envFile := fs.String("env-file", ".env", "Path to .env file")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// A missing .env file is fine.
	if err := loadEnvFile(*envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(*env, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level:  getConfigValue(*logLevel, "LOG_LEVEL", "info"),
			Format: getConfigValue(*logFormat, "LOG_FORMAT", ""),
		},
		Server: ServerConfig{
			Name:          getConfigValue(*serverName, "SERVER_NAME", "Colorhash Server"),
			Port:          getConfigValue(*port, "SERVER_PORT", "8080"),
			AdvertiseMDNS: getBoolConfigValue(*advertiseMDNS, "ADVERTISE_MDNS", true),
			CORSOrigins:   splitList(getConfigValue(*corsOrigins, "CORS_ORIGINS", "*")),
		},
		Data: DataConfig{
			Path: getConfigValue(*dataPath, "DATA_PATH", ""),
		},
		Presets: PresetsConfig{
			File:  getConfigValue(*presetsFile, "PRESETS_FILE", ""),
			Watch: getBoolConfigValue(*watchPresets, "WATCH_PRESETS", true),
		},
		RateLimit: RateLimitConfig{
			Enabled: getBoolConfigValue("", "RATE_LIMIT_ENABLED", true),
			Burst:   getIntConfigValue(*rateLimitBurst, "RATE_LIMIT_BURST", 40),
		},
	}

	var err error
	if cfg.RateLimit.RPS, err = getFloatConfigValue(*rateLimitRPS, "RATE_LIMIT_RPS", 20); err != nil {
		return nil, err
	}

	durations := []struct {
		dst      *time.Duration
		flag     string
		envKey   string
		fallback string
	}{
		{&cfg.Server.ReadTimeout, *readTimeout, "SERVER_READ_TIMEOUT", "15s"},
		{&cfg.Server.WriteTimeout, *writeTimeout, "SERVER_WRITE_TIMEOUT", "15s"},
		{&cfg.Server.IdleTimeout, *idleTimeout, "SERVER_IDLE_TIMEOUT", "60s"},
		{&cfg.Auth.TokenDuration, *tokenDuration, "TOKEN_DURATION", "24h"},
	}
	for _, d := range durations {
		raw := getConfigValue(d.flag, d.envKey, d.fallback)
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", d.envKey, raw, err)
		}
		*d.dst = parsed
	}

	if cfg.Palette.Lightness, err = parsePool(getConfigValue(*lightness, "DEFAULT_LIGHTNESS", "")); err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_LIGHTNESS: %w", err)
	}
	if cfg.Palette.Saturation, err = parsePool(getConfigValue(*saturation, "DEFAULT_SATURATION", "")); err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_SATURATION: %w", err)
	}

	if err := cfg.expandPaths(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all config values are present and valid.
func (c *Config) Validate() error {
	switch c.App.Environment {
	case "development", "staging", "production":
	default:
		return fmt.Errorf("invalid environment: %q (must be development, staging, or production)", c.App.Environment)
	}

	if !logger.ValidLevel(c.Logger.Level) {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	switch c.Logger.Format {
	case "", logger.FormatJSON, logger.FormatPretty:
	default:
		return fmt.Errorf("invalid log format: %s (must be json or pretty)", c.Logger.Format)
	}

	if c.Data.Path == "" {
		return errors.New("data path cannot be empty after expansion")
	}

	if _, err := strconv.Atoi(c.Server.Port); err != nil {
		return fmt.Errorf("invalid port: %s", c.Server.Port)
	}

	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst < 1) {
		return errors.New("rate limit needs rps > 0 and burst >= 1")
	}

	if c.Auth.TokenDuration <= 0 {
		return errors.New("token duration must be positive")
	}

	if _, err := c.Palette.ColorConfig(); err != nil {
		return fmt.Errorf("invalid default palette: %w", err)
	}

	return nil
}

func (c *Config) expandPaths() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	if c.Data.Path, err = expandPath(c.Data.Path, filepath.Join(home, ".colorhash")); err != nil {
		return fmt.Errorf("invalid data path: %w", err)
	}
	if c.Presets.File, err = expandPath(c.Presets.File, ""); err != nil {
		return fmt.Errorf("invalid presets file: %w", err)
	}
	return nil
}

// expandPath expands ~ and makes path absolute. An empty path yields
// defaultPath unchanged.
func expandPath(path, defaultPath string) (string, error) {
	if path == "" {
		return defaultPath, nil
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}
	return filepath.Clean(abs), nil
}

// parsePool parses a comma-separated list of floats. An empty string means
// the library default and yields nil.
func parsePool(s string) ([]float64, error) {
	parts := splitList(s)
	if len(parts) == 0 {
		return nil, nil
	}
	pool := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", p)
		}
		pool = append(pool, v)
	}
	return pool, nil
}

// ParsePool is parsePool for callers outside the package, such as the CLI.
func ParsePool(s string) ([]float64, error) {
	return parsePool(s)
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	return defaultValue
}

// getBoolConfigValue accepts "true", "1" and "yes" (any case) as true.
func getBoolConfigValue(flagValue, envKey string, defaultValue bool) bool {
	s := getConfigValue(flagValue, envKey, "")
	if s == "" {
		return defaultValue
	}
	s = strings.ToLower(s)
	return s == "true" || s == "1" || s == "yes"
}

func getIntConfigValue(flagValue, envKey string, defaultValue int) int {
	s := getConfigValue(flagValue, envKey, "")
	if s == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return defaultValue
	}
	return n
}

func getFloatConfigValue(flagValue, envKey string, defaultValue float64) (float64, error) {
	s := getConfigValue(flagValue, envKey, "")
	if s == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", envKey, s, err)
	}
	return f, nil
}

// loadEnvFile loads KEY=value lines from path. Variables already set in the
// environment win over the file.
func loadEnvFile(path string) error {
	file, err := os.Open(path) //#nosec G304 -- path comes from the operator
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return fmt.Errorf("invalid format at line %d: %s", lineNum, line)
		}
		key = strings.TrimSpace(key)
		value = strings.Trim(strings.TrimSpace(value), `"'`)

		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("failed to set env var %s: %w", key, err)
			}
		}
	}
	return scanner.Err()
}
