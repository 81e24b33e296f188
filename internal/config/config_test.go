package config

import (
	"os"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"CW_WPM", "CW_CHAR_WPM", "CW_FREQ", "CW_SAMPLE_RATE", "CW_OUTPUT"} {
		os.Unsetenv(k)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.OverallWPM != 0 {
		t.Errorf("Expected unset OverallWPM 0, got %v", cfg.OverallWPM)
	}
	if cfg.CharWPM != 0 {
		t.Errorf("Expected unset CharWPM 0, got %v", cfg.CharWPM)
	}
	if cfg.ToneFreq != 720.0 {
		t.Errorf("Expected default ToneFreq 720.0, got %v", cfg.ToneFreq)
	}
	if cfg.SampleRate != 44100 {
		t.Errorf("Expected default SampleRate 44100, got %d", cfg.SampleRate)
	}
	if cfg.Channels != 1 {
		t.Errorf("Expected default Channels 1, got %d", cfg.Channels)
	}
	if cfg.Precision != 16 {
		t.Errorf("Expected default Precision 16, got %d", cfg.Precision)
	}
	if cfg.Output != "pulse" {
		t.Errorf("Expected default Output 'pulse', got '%s'", cfg.Output)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("Expected default LogLevel 'info', got '%s'", cfg.LogLevel)
	}
}

func TestLoad_Environment(t *testing.T) {
	os.Setenv("CW_WPM", "12.5")
	os.Setenv("CW_FREQ", "600")
	defer os.Unsetenv("CW_WPM")
	defer os.Unsetenv("CW_FREQ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.OverallWPM != 12.5 {
		t.Errorf("Expected OverallWPM 12.5, got %v", cfg.OverallWPM)
	}
	if cfg.ToneFreq != 600 {
		t.Errorf("Expected ToneFreq 600, got %v", cfg.ToneFreq)
	}
}

func TestResolveRates_NeitherSet(t *testing.T) {
	cfg := &Config{}
	if err := cfg.ResolveRates(); err != nil {
		t.Fatalf("ResolveRates failed: %v", err)
	}
	if cfg.OverallWPM != 5.0 {
		t.Errorf("Expected Element 1 overall rate 5.0, got %v", cfg.OverallWPM)
	}
	if cfg.CharWPM != 18.0 {
		t.Errorf("Expected Element 1 character rate 18.0, got %v", cfg.CharWPM)
	}
}

func TestResolveRates_OnlyOverall(t *testing.T) {
	// Below the Farnsworth floor the character rate defaults to 18.
	cfg := &Config{OverallWPM: 10}
	if err := cfg.ResolveRates(); err != nil {
		t.Fatalf("ResolveRates failed: %v", err)
	}
	if cfg.CharWPM != 18.0 {
		t.Errorf("Expected character rate 18.0, got %v", cfg.CharWPM)
	}

	// Above the floor both rates match.
	cfg = &Config{OverallWPM: 25}
	if err := cfg.ResolveRates(); err != nil {
		t.Fatalf("ResolveRates failed: %v", err)
	}
	if cfg.CharWPM != 25.0 {
		t.Errorf("Expected character rate 25.0, got %v", cfg.CharWPM)
	}
}

func TestResolveRates_OnlyCharacter(t *testing.T) {
	cfg := &Config{CharWPM: 30}
	if err := cfg.ResolveRates(); err != nil {
		t.Fatalf("ResolveRates failed: %v", err)
	}
	if cfg.OverallWPM != 30.0 {
		t.Errorf("Expected overall rate 30.0, got %v", cfg.OverallWPM)
	}
}

func TestResolveRates_BothSet(t *testing.T) {
	// The default pairing is valid.
	cfg := &Config{OverallWPM: 5, CharWPM: 18}
	if err := cfg.ResolveRates(); err != nil {
		t.Errorf("Expected 5/18 to be accepted, got %v", err)
	}

	// Character rate below the overall rate is rejected.
	cfg = &Config{OverallWPM: 20, CharWPM: 5}
	if err := cfg.ResolveRates(); err == nil {
		t.Error("Expected error for character rate below overall rate")
	}
}

func TestValidate_Ranges(t *testing.T) {
	base := Config{
		OverallWPM: 5, CharWPM: 18, ToneFreq: 720,
		SampleRate: 44100, Channels: 1, Precision: 16, BlockSize: 1024,
		Output: "pulse",
	}

	if err := base.Validate(); err != nil {
		t.Fatalf("Expected valid base config, got %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"overall too low", func(c *Config) { c.OverallWPM = 0.5 }},
		{"overall too high", func(c *Config) { c.OverallWPM = 71 }},
		{"char too high", func(c *Config) { c.CharWPM = 71 }},
		{"freq too low", func(c *Config) { c.ToneFreq = 0.5 }},
		{"freq too high", func(c *Config) { c.ToneFreq = 20001 }},
		{"zero sample rate", func(c *Config) { c.SampleRate = 0 }},
		{"zero channels", func(c *Config) { c.Channels = 0 }},
		{"bad precision", func(c *Config) { c.Precision = 24 }},
		{"zero block size", func(c *Config) { c.BlockSize = 0 }},
		{"unknown output", func(c *Config) { c.Output = "oss" }},
	}
	for _, tc := range cases {
		c := base
		tc.mutate(&c)
		if err := c.Validate(); err == nil {
			t.Errorf("Expected validation error for %s", tc.name)
		}
	}
}
