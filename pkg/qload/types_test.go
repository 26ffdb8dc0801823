package qload

import (
	"errors"
	"testing"
)

func TestLoadConfig_Validate(t *testing.T) {
	valid := func() LoadConfig {
		return LoadConfig{
			Database:  &ConnectionConfig{Host: "localhost", Port: 5432, Database: "app"},
			RedisURL:  "redis://localhost:6379/0",
			BatchSize: DefaultBatchSize,
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *LoadConfig)
		wantErr bool
	}{
		{"valid", func(c *LoadConfig) {}, false},
		{"missing database", func(c *LoadConfig) { c.Database = nil }, true},
		{"missing redis", func(c *LoadConfig) { c.RedisURL = "" }, true},
		{"undefined auth method", func(c *LoadConfig) { c.Database.AuthMethod = AuthMethod(42) }, true},
		{"dry run without redis", func(c *LoadConfig) { c.RedisURL = ""; c.DryRun = true }, false},
		{"zero batch size", func(c *LoadConfig) { c.BatchSize = 0 }, true},
		{"negative batch size", func(c *LoadConfig) { c.BatchSize = -5 }, true},
		{"negative timeout", func(c *LoadConfig) { c.Timeout = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidConfig) {
					t.Fatalf("expected ErrInvalidConfig, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestParseAuthMethod(t *testing.T) {
	tests := []struct {
		in   string
		want AuthMethod
	}{
		{"", AuthMethodStandard},
		{"standard", AuthMethodStandard},
		{"AWS-IAM", AuthMethodAWSIAM},
		{"cloudsql", AuthMethodGoogleIAM},
		{"azure", AuthMethodAzureEntraID},
	}
	for _, tt := range tests {
		got, err := ParseAuthMethod(tt.in)
		if err != nil {
			t.Fatalf("ParseAuthMethod(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseAuthMethod(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := ParseAuthMethod("kerberos"); !errors.Is(err, ErrUnsupportedAuthMethod) {
		t.Errorf("expected ErrUnsupportedAuthMethod, got %v", err)
	}
}

func TestAuthMethod_String(t *testing.T) {
	if AuthMethodAzureEntraID.String() != "Azure Entra ID" {
		t.Errorf("unexpected string %q", AuthMethodAzureEntraID.String())
	}
	if AuthMethod(42).IsValid() {
		t.Error("42 should not be a valid auth method")
	}
	if AuthMethod(42).String() != "Unknown(42)" {
		t.Errorf("unexpected string %q", AuthMethod(42).String())
	}
}
