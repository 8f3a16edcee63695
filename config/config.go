// Package config loads engine options from TOML.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Options configures a rendering session. Every field is optional;
// fields absent from the TOML file keep their Default values.
type Options struct {
	// FPS is the target frame rate of the driver.
	FPS float64 `toml:"fps"`

	// Encoding is "7bit" or "8bit".
	Encoding string `toml:"encoding"`

	// ColorMode is "auto", "256", or "truecolor".
	ColorMode string `toml:"color_mode"`

	// RunThreshold is the minimum repeated-character run worth a REP
	// sequence.
	RunThreshold int `toml:"run_threshold"`

	Capture CaptureOptions `toml:"capture"`
}

// CaptureOptions configures the optional frame recorder.
type CaptureOptions struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Default returns the baseline options.
func Default() Options {
	return Options{
		FPS:          60,
		Encoding:     "7bit",
		ColorMode:    "auto",
		RunThreshold: 5,
	}
}

// Load reads path and decodes it over the defaults. A missing file is
// not an error; the defaults are returned.
func Load(path string) (Options, error) {
	opts := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return opts, nil
		}
		return opts, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("config: decode %s: %w", path, err)
	}
	if err := opts.Validate(); err != nil {
		return opts, err
	}
	return opts, nil
}

// Validate rejects out-of-range values.
func (o Options) Validate() error {
	if o.FPS <= 0 {
		return fmt.Errorf("config: fps must be positive, got %v", o.FPS)
	}
	switch o.Encoding {
	case "7bit", "8bit":
	default:
		return fmt.Errorf("config: unknown encoding %q", o.Encoding)
	}
	switch o.ColorMode {
	case "auto", "256", "truecolor":
	default:
		return fmt.Errorf("config: unknown color mode %q", o.ColorMode)
	}
	if o.RunThreshold < 2 {
		return fmt.Errorf("config: run threshold must be at least 2, got %d", o.RunThreshold)
	}
	if o.Capture.Enabled && o.Capture.Path == "" {
		return fmt.Errorf("config: capture enabled without a path")
	}
	return nil
}
