// Package config handles intcode.toml settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// FileName is the name of the configuration file.
const FileName = "intcode.toml"

// Config represents an intcode.toml file.
type Config struct {
	Machine Machine `toml:"machine"`
	Log     Log     `toml:"log"`
	Sweep   Sweep   `toml:"sweep"`
	IO      IO      `toml:"io"`

	// Path is the file the configuration was read from, empty for defaults.
	Path string `toml:"-"`
}

// Machine configures every machine the CLI creates.
type Machine struct {
	MaxSteps int64 `toml:"max-steps"`
	Stats    bool  `toml:"stats"`
}

// Log configures commonlog.
type Log struct {
	Verbosity int    `toml:"verbosity"`
	File      string `toml:"file"`
}

// Sweep configures the noun/verb search.
type Sweep struct {
	Target  int64 `toml:"target"`
	MaxNoun int64 `toml:"max-noun"`
	MaxVerb int64 `toml:"max-verb"`
	Workers int   `toml:"workers"`
}

// IO configures the console I/O channel.
type IO struct {
	Prompt string `toml:"prompt"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Sweep: Sweep{
			Target:  19690720,
			MaxNoun: 99,
			MaxVerb: 99,
			Workers: runtime.NumCPU(),
		},
	}
}

// Load parses a configuration file. Keys missing from the file keep their
// default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	c := Default()
	if _, err := toml.Decode(string(data), c); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	c.Path = path
	return c, nil
}

// FindAndLoad walks up from startDir to find an intcode.toml file and
// loads it. The defaults are returned if no file is found.
func FindAndLoad(startDir string) (*Config, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return Default(), nil
		}
		dir = parent
	}
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Machine.MaxSteps < 0 {
		return fmt.Errorf("machine.max-steps must not be negative, got %d", c.Machine.MaxSteps)
	}
	if c.Sweep.MaxNoun < 0 || c.Sweep.MaxVerb < 0 {
		return fmt.Errorf("sweep bounds must not be negative, got %d and %d", c.Sweep.MaxNoun, c.Sweep.MaxVerb)
	}
	if c.Sweep.Workers < 0 {
		return fmt.Errorf("sweep.workers must not be negative, got %d", c.Sweep.Workers)
	}
	return nil
}

// LogPath returns the log file for commonlog.Configure, nil for stderr.
func (c *Config) LogPath() *string {
	if c.Log.File == "" {
		return nil
	}
	path := c.Log.File
	return &path
}
