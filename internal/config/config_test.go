package config

import (
	"testing"

	"github.com/pelletier/go-toml/v2"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero port", func(c *Config) { c.Server.Port = 0 }},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }},
		{"negative queue", func(c *Config) { c.Sync.QueueSize = -1 }},
		{"negative rate", func(c *Config) { c.Sync.RatePerSecond = -0.5 }},
		{"missing dataset", func(c *Config) { c.Catalog.DatasetPath = "/does/not/exist.json" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() should reject the config")
			}
		})
	}
}

func TestConfigTOMLRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Server.Port = 9090
	cfg.Session.UserID = "tester"

	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var parsed Config
	if err := toml.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if parsed.Server.Port != 9090 || parsed.Session.UserID != "tester" {
		t.Errorf("round trip lost values: %+v", parsed)
	}
}

func TestAddr(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.Addr(); got != "127.0.0.1:8585" {
		t.Errorf("Addr() = %q", got)
	}
}
