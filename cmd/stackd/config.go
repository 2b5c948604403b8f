package main

import (
	"errors"
	"time"
)

// Config validation errors
var (
	ErrInvalidListenAddr     = errors.New("listen_addr cannot be empty")
	ErrInvalidMetricsAddr    = errors.New("metrics_addr cannot be empty")
	ErrInvalidStackCapacity  = errors.New("stack_capacity must be positive")
	ErrInvalidMaxPayload     = errors.New("max_payload_bytes must be positive")
	ErrInvalidRequestTimeout = errors.New("request_timeout must be positive")
	ErrInvalidLogFormat      = errors.New("log_format must be 'json' or 'console'")
	ErrInvalidLogLevel       = errors.New("log_level must be debug, info, warn, or error")
)

// Config holds the stackd runtime configuration, populated from
// STACKD_-prefixed environment variables.
type Config struct {
	ListenAddr      string        `envconfig:"LISTEN_ADDR" default:"0.0.0.0:8080"`
	MetricsAddr     string        `envconfig:"METRICS_ADDR" default:"0.0.0.0:9090"`
	StackCapacity   int           `envconfig:"STACK_CAPACITY" default:"100000"`
	MaxPayloadBytes int           `envconfig:"MAX_PAYLOAD_BYTES" default:"65536"`
	RequestTimeout  time.Duration `envconfig:"REQUEST_TIMEOUT" default:"30s"`
	LogFormat       string        `envconfig:"LOG_FORMAT" default:"json"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		ListenAddr:      "0.0.0.0:8080",
		MetricsAddr:     "0.0.0.0:9090",
		StackCapacity:   100000,
		MaxPayloadBytes: 65536,
		RequestTimeout:  30 * time.Second,
		LogFormat:       "json",
		LogLevel:        "info",
	}
}

// ValidateConfig validates the configuration and returns an error if invalid.
func ValidateConfig(cfg *Config) error {
	if cfg.ListenAddr == "" {
		return ErrInvalidListenAddr
	}
	if cfg.MetricsAddr == "" {
		return ErrInvalidMetricsAddr
	}
	if cfg.StackCapacity <= 0 {
		return ErrInvalidStackCapacity
	}
	if cfg.MaxPayloadBytes <= 0 {
		return ErrInvalidMaxPayload
	}
	if cfg.RequestTimeout <= 0 {
		return ErrInvalidRequestTimeout
	}
	if cfg.LogFormat != "json" && cfg.LogFormat != "console" {
		return ErrInvalidLogFormat
	}
	if cfg.LogLevel != "debug" && cfg.LogLevel != "info" && cfg.LogLevel != "warn" && cfg.LogLevel != "error" {
		return ErrInvalidLogLevel
	}
	return nil
}
