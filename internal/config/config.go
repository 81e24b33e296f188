package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// ARRL Element 1 rates, used when no rate is configured at all.
const (
	DefaultOverallWPM = 5.0
	DefaultCharWPM    = 18.0

	// farnsworthFloorWPM is the minimum character rate assumed when only the
	// overall rate is given (ARRL Farnsworth convention).
	farnsworthFloorWPM = 18.0
)

// Config holds all configuration for the player. A zero rate means "not
// configured"; ResolveRates applies the ARRL defaulting rules afterwards.
type Config struct {
	// Morse timing configuration
	OverallWPM float64 `envconfig:"CW_WPM" default:"0"`       // effective (Farnsworth) rate
	CharWPM    float64 `envconfig:"CW_CHAR_WPM" default:"0"`  // character rate
	ToneFreq   float64 `envconfig:"CW_FREQ" default:"720.0"`  // tone frequency in Hz

	// Audio stream configuration
	SampleRate int `envconfig:"CW_SAMPLE_RATE" default:"44100"`
	Channels   int `envconfig:"CW_CHANNELS" default:"1"`
	Precision  int `envconfig:"CW_PRECISION" default:"16"` // bits per sample for the raw backend
	BlockSize  int `envconfig:"CW_BLOCK_SIZE" default:"1024"`

	// Output backend: pulse, portaudio or raw
	Output string `envconfig:"CW_OUTPUT" default:"pulse"`
	// Destination path for the raw backend ("-" for stdout)
	OutputFile string `envconfig:"CW_OUTPUT_FILE" default:"-"`

	// Remote keying mode; empty means read stdin locally
	Listen string `envconfig:"CW_LISTEN" default:""`

	// Observability configuration
	LogLevel       string `envconfig:"LOG_LEVEL" default:"info"`
	LogPretty      bool   `envconfig:"LOG_PRETTY" default:"true"`
	MetricsEnabled bool   `envconfig:"METRICS_ENABLED" default:"true"`
}

// Load reads configuration from environment variables, preferring a .env
// file when one exists. Flag overrides and rate resolution happen in main
// after this returns.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// ResolveRates fills in unset rates per the ARRL conventions: neither set
// uses the Element 1 pairing; only the character rate set makes the overall
// rate match it; only the overall rate set raises the character rate to the
// Farnsworth floor. When both are set explicitly the character rate must be
// at least the overall rate.
func (c *Config) ResolveRates() error {
	switch {
	case c.OverallWPM == 0 && c.CharWPM == 0:
		c.OverallWPM = DefaultOverallWPM
		c.CharWPM = DefaultCharWPM
	case c.CharWPM == 0:
		if c.OverallWPM > farnsworthFloorWPM {
			c.CharWPM = c.OverallWPM
		} else {
			c.CharWPM = farnsworthFloorWPM
		}
	case c.OverallWPM == 0:
		c.OverallWPM = c.CharWPM
	default:
		if c.OverallWPM > c.CharWPM {
			return fmt.Errorf("character rate %.1f wpm below overall rate %.1f wpm", c.CharWPM, c.OverallWPM)
		}
	}
	return nil
}

// Validate checks all configured values. Call after ResolveRates.
func (c *Config) Validate() error {
	if c.OverallWPM < 1.0 || c.OverallWPM > 70.0 {
		return fmt.Errorf("invalid overall rate %.1f (1.0 <= r <= 70.0)", c.OverallWPM)
	}
	if c.CharWPM < 1.0 || c.CharWPM > 70.0 {
		return fmt.Errorf("invalid character rate %.1f (1.0 <= r <= 70.0)", c.CharWPM)
	}
	if c.ToneFreq < 1.0 || c.ToneFreq > 20000.0 {
		return fmt.Errorf("invalid frequency %.1f (1.0 <= f <= 20000.0)", c.ToneFreq)
	}
	if c.SampleRate <= 0 {
		return fmt.Errorf("invalid sample rate %d", c.SampleRate)
	}
	if c.Channels < 1 {
		return fmt.Errorf("invalid channel count %d", c.Channels)
	}
	if c.Precision != 8 && c.Precision != 16 {
		return fmt.Errorf("invalid sample precision %d (8 or 16)", c.Precision)
	}
	if c.BlockSize < 1 {
		return fmt.Errorf("invalid block size %d", c.BlockSize)
	}
	switch c.Output {
	case "pulse", "portaudio", "raw":
	default:
		return fmt.Errorf("unknown output backend %q (pulse, portaudio, raw)", c.Output)
	}
	return nil
}
