package main

import (
	"os"
	"testing"
	"time"

	"github.com/kelseyhightower/envconfig"
)

func TestValidateConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	if err := ValidateConfig(&cfg); err != nil {
		t.Errorf("ValidateConfig() error = %v, want nil", err)
	}
}

func TestValidateConfig_EmptyListenAddr(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ListenAddr = ""
	if err := ValidateConfig(&cfg); err != ErrInvalidListenAddr {
		t.Errorf("ValidateConfig() error = %v, want %v", err, ErrInvalidListenAddr)
	}
}

func TestValidateConfig_EmptyMetricsAddr(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MetricsAddr = ""
	if err := ValidateConfig(&cfg); err != ErrInvalidMetricsAddr {
		t.Errorf("ValidateConfig() error = %v, want %v", err, ErrInvalidMetricsAddr)
	}
}

func TestValidateConfig_InvalidStackCapacity(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StackCapacity = 0
	if err := ValidateConfig(&cfg); err != ErrInvalidStackCapacity {
		t.Errorf("ValidateConfig() error = %v, want %v", err, ErrInvalidStackCapacity)
	}

	cfg.StackCapacity = -5
	if err := ValidateConfig(&cfg); err != ErrInvalidStackCapacity {
		t.Errorf("ValidateConfig() with negative error = %v, want %v", err, ErrInvalidStackCapacity)
	}
}

func TestValidateConfig_InvalidMaxPayload(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxPayloadBytes = 0
	if err := ValidateConfig(&cfg); err != ErrInvalidMaxPayload {
		t.Errorf("ValidateConfig() error = %v, want %v", err, ErrInvalidMaxPayload)
	}
}

func TestValidateConfig_InvalidRequestTimeout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RequestTimeout = 0
	if err := ValidateConfig(&cfg); err != ErrInvalidRequestTimeout {
		t.Errorf("ValidateConfig() error = %v, want %v", err, ErrInvalidRequestTimeout)
	}
}

func TestValidateConfig_InvalidLogFormat(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LogFormat = "xml"
	if err := ValidateConfig(&cfg); err != ErrInvalidLogFormat {
		t.Errorf("ValidateConfig() error = %v, want %v", err, ErrInvalidLogFormat)
	}
}

func TestValidateConfig_ValidLogFormats(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		cfg := DefaultConfig()
		cfg.LogFormat = format
		if err := ValidateConfig(&cfg); err != nil {
			t.Errorf("ValidateConfig() with format %q error = %v, want nil", format, err)
		}
	}
}

func TestValidateConfig_InvalidLogLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LogLevel = "verbose"
	if err := ValidateConfig(&cfg); err != ErrInvalidLogLevel {
		t.Errorf("ValidateConfig() error = %v, want %v", err, ErrInvalidLogLevel)
	}
}

// TestConfigEnvVars verifies environment variable parsing
func TestConfigEnvVars(t *testing.T) {
	os.Setenv("STACKD_LISTEN_ADDR", "127.0.0.1:9000") //nolint:errcheck // test helper
	os.Setenv("STACKD_STACK_CAPACITY", "512")         //nolint:errcheck // test helper
	os.Setenv("STACKD_MAX_PAYLOAD_BYTES", "1024")     //nolint:errcheck // test helper
	os.Setenv("STACKD_REQUEST_TIMEOUT", "5s")         //nolint:errcheck // test helper
	defer func() {
		_ = os.Unsetenv("STACKD_LISTEN_ADDR")
		_ = os.Unsetenv("STACKD_STACK_CAPACITY")
		_ = os.Unsetenv("STACKD_MAX_PAYLOAD_BYTES")
		_ = os.Unsetenv("STACKD_REQUEST_TIMEOUT")
	}()

	var cfg Config
	if err := envconfig.Process("STACKD", &cfg); err != nil {
		t.Fatalf("Failed to process config: %v", err)
	}

	if cfg.ListenAddr != "127.0.0.1:9000" {
		t.Errorf("ListenAddr = %q, want 127.0.0.1:9000", cfg.ListenAddr)
	}
	if cfg.StackCapacity != 512 {
		t.Errorf("StackCapacity = %d, want 512", cfg.StackCapacity)
	}
	if cfg.MaxPayloadBytes != 1024 {
		t.Errorf("MaxPayloadBytes = %d, want 1024", cfg.MaxPayloadBytes)
	}
	if cfg.RequestTimeout != 5*time.Second {
		t.Errorf("RequestTimeout = %v, want 5s", cfg.RequestTimeout)
	}
}

// TestConfigDefaults verifies default values from envconfig tags
func TestConfigDefaults(t *testing.T) {
	for _, key := range []string{
		"STACKD_LISTEN_ADDR", "STACKD_METRICS_ADDR", "STACKD_STACK_CAPACITY",
		"STACKD_MAX_PAYLOAD_BYTES", "STACKD_REQUEST_TIMEOUT", "STACKD_LOG_FORMAT",
		"STACKD_LOG_LEVEL",
	} {
		_ = os.Unsetenv(key)
	}

	var cfg Config
	if err := envconfig.Process("STACKD", &cfg); err != nil {
		t.Fatalf("Failed to process config: %v", err)
	}

	want := DefaultConfig()
	if cfg != want {
		t.Errorf("envconfig defaults = %+v, want %+v", cfg, want)
	}
}
