// Package config loads the prelude configuration file.
//
// The file lives under os.UserConfigDir():
//
//	~/Library/Application Support/prelude/config.yaml   (macOS)
//	~/.config/prelude/config.yaml                       (Linux)
//	%AppData%/prelude/config.yaml                       (Windows)
//
// A missing file is not an error; every field has a default.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/goccy/go-yaml"

	"github.com/rwelin/prelude"
	"github.com/rwelin/prelude/midifile"
	"github.com/rwelin/prelude/theory"
)

const (
	appDir     = "prelude"
	configFile = "config.yaml"
)

// Config is the on-disk configuration.
type Config struct {
	// Key is a preset accepted by theory.KeyByName.
	Key string `yaml:"key"`

	SampleRate     int     `yaml:"sample_rate"`
	NotesPerSecond float64 `yaml:"notes_per_second"`

	// Level is the master output level in (0, 1].
	Level float64 `yaml:"level"`

	// Smooth is the cutoff in Hz of the low-pass filter applied to rendered
	// files. Zero disables it.
	Smooth float64 `yaml:"smooth,omitempty"`

	Instruments []prelude.Instrument `yaml:"instruments"`

	// Listen is the address of the HTTP API.
	Listen string `yaml:"listen"`

	Serial Serial `yaml:"serial"`
	MIDI   MIDI   `yaml:"midi"`

	path string
}

// Serial configures the serial device output.
type Serial struct {
	Port string `yaml:"port,omitempty"`
	Baud int    `yaml:"baud"`
}

// MIDI configures MIDI file export.
type MIDI struct {
	Channel  uint8 `yaml:"channel"`
	Velocity uint8 `yaml:"velocity"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Key:            "major",
		SampleRate:     prelude.DefaultSampleRate,
		NotesPerSecond: prelude.DefaultNotesPerSecond,
		Level:          0.5,
		Instruments:    []prelude.Instrument{{Harmonics: slices.Clone(prelude.DefaultInstrument.Harmonics)}},
		Listen:         ":7999",
		Serial:         Serial{Baud: 115200},
		MIDI:           MIDI{Channel: 0, Velocity: 100},
	}
}

// DefaultPath returns the default location of the configuration file.
func DefaultPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine config directory: %w", err)
	}
	return filepath.Join(base, appDir, configFile), nil
}

// Load reads the file at path, or at DefaultPath if path is empty. Fields
// absent from the file keep their defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg := Default()
	cfg.path = path

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks field ranges.
func (c *Config) Validate() error {
	if _, err := theory.KeyByName(c.Key); err != nil {
		return err
	}
	if c.SampleRate < 8000 {
		return fmt.Errorf("sample_rate %d too low", c.SampleRate)
	}
	if c.NotesPerSecond <= 0 {
		return fmt.Errorf("notes_per_second must be positive")
	}
	if c.Level <= 0 || c.Level > 1 {
		return fmt.Errorf("level %v not in (0, 1]", c.Level)
	}
	if c.Smooth < 0 || c.Smooth >= float64(c.SampleRate)/2 {
		return fmt.Errorf("smooth %v Hz not below half the sample rate", c.Smooth)
	}
	if len(c.Instruments) == 0 {
		return fmt.Errorf("no instruments")
	}
	if c.MIDI.Channel > 15 {
		return fmt.Errorf("midi channel %d out of range", c.MIDI.Channel)
	}
	return nil
}

// Path returns the file the configuration was loaded from.
func (c *Config) Path() string {
	return c.path
}

// Save writes the configuration back to Path through a temporary file.
func (c *Config) Save() error {
	if c.path == "" {
		return errors.New("config has no path")
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	f, err := os.CreateTemp(dir, ".config-*.yaml")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(f.Name())

	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("failed to write config: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	if err := os.Rename(f.Name(), c.path); err != nil {
		return fmt.Errorf("failed to replace config: %w", err)
	}
	return nil
}

// KeyFunc resolves the configured key.
func (c *Config) KeyFunc() (theory.Key, error) {
	return theory.KeyByName(c.Key)
}

// Timing returns the note grid.
func (c *Config) Timing() prelude.Timing {
	return prelude.Timing{SampleRate: c.SampleRate, NotesPerSecond: c.NotesPerSecond}
}

// NewMix returns a mix with a copy of the configured instruments.
func (c *Config) NewMix() *prelude.Mix {
	insts := make([]prelude.Instrument, len(c.Instruments))
	for i, inst := range c.Instruments {
		insts[i].Harmonics = slices.Clone(inst.Harmonics)
	}
	return prelude.NewMix(c.SampleRate, c.Level, insts)
}

// MIDIOptions returns the options for midifile.Write.
func (c *Config) MIDIOptions() midifile.Options {
	opts := midifile.DefaultOptions()
	opts.NotesPerSecond = c.NotesPerSecond
	opts.Channel = c.MIDI.Channel
	opts.Velocity = c.MIDI.Velocity
	return opts
}
