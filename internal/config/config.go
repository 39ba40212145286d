package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const envPrefix = "SCOPETRACK_"

// Transport modes.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Config defines server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	DB        DBConfig        `yaml:"db"`
	Log       LogConfig       `yaml:"log"`
	Transport TransportConfig `yaml:"transport"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Addr returns host:port for net/http.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	// Path, when set, sends logs to a file instead of stderr.
	Path string `yaml:"path"`
}

type TransportConfig struct {
	Mode string `yaml:"mode"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		DB: DBConfig{
			Path: "scopetrack.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Transport: TransportConfig{
			Mode: TransportStdio,
		},
	}
}

// Load reads configuration from an optional YAML file and environment variables.
// Environment variables win over the file.
func Load() (Config, error) {
	cfg := Default()

	if path := getenv("CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := getenv("SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := getenv("SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %sSERVER_PORT: %w", envPrefix, err)
		}
		cfg.Server.Port = port
	}
	if dbPath := getenv("DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if level := getenv("LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if logPath := getenv("LOG_PATH"); logPath != "" {
		cfg.Log.Path = logPath
	}
	if mode := getenv("TRANSPORT"); mode != "" {
		cfg.Transport.Mode = mode
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that cannot be corrected later.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	c.Transport.Mode = strings.ToLower(strings.TrimSpace(c.Transport.Mode))
	switch c.Transport.Mode {
	case TransportStdio, TransportHTTP:
	default:
		return fmt.Errorf("invalid transport mode %q (want %s or %s)", c.Transport.Mode, TransportStdio, TransportHTTP)
	}
	if strings.TrimSpace(c.DB.Path) == "" {
		return fmt.Errorf("db path cannot be empty")
	}
	return nil
}

// SlogLevel maps the configured level to a slog level; unknown values mean info.
func (l LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(l.Level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getenv(key string) string {
	return os.Getenv(envPrefix + key)
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
