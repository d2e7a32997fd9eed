// Package config holds runtime settings for the trainer.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/abhisek/pitchperfect/internal/keyboard"
)

// Config holds everything the CLI needs to wire the trainer.
type Config struct {
	// CatalogPath overrides the embedded catalog when set.
	CatalogPath string

	// FeedbackDwell is how long a lesson verdict stays on screen.
	// Default: 500ms.
	FeedbackDwell time.Duration

	LogFile string
	LogMode string // "development" or "production"

	MIDI       bool
	MIDIDevice string // Preferred input name pattern.

	// Octave of the "a" key on the QWERTY piano. Default: 4 (middle C).
	Octave int
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		FeedbackDwell: 500 * time.Millisecond,
		LogFile:       filepath.Join(os.TempDir(), "pitchperfect.log"),
		LogMode:       "production",
		MIDI:          true,
		Octave:        keyboard.DefaultOctave,
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values.
func ConfigFromEnv() (Config, error) {
	return fromLookup(os.LookupEnv)
}

func fromLookup(lookup func(string) (string, bool)) (Config, error) {
	cfg := DefaultConfig()
	var errs []error

	if v, ok := lookup("PITCHPERFECT_CATALOG"); ok {
		cfg.CatalogPath = v
	}
	if v, ok := lookup("PITCHPERFECT_FEEDBACK_DWELL"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("PITCHPERFECT_FEEDBACK_DWELL: %w", err))
		} else {
			cfg.FeedbackDwell = d
		}
	}
	if v, ok := lookup("PITCHPERFECT_LOG_FILE"); ok && v != "" {
		cfg.LogFile = v
	}
	if v, ok := lookup("PITCHPERFECT_LOG_MODE"); ok && v != "" {
		cfg.LogMode = v
	}
	if v, ok := lookup("PITCHPERFECT_MIDI"); ok && v != "" {
		on, err := parseSwitch(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("PITCHPERFECT_MIDI: %w", err))
		} else {
			cfg.MIDI = on
		}
	}
	if v, ok := lookup("PITCHPERFECT_MIDI_DEVICE"); ok {
		cfg.MIDIDevice = v
	}
	if v, ok := lookup("PITCHPERFECT_OCTAVE"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("PITCHPERFECT_OCTAVE: %w", err))
		} else {
			cfg.Octave = n
		}
	}

	return cfg, errors.Join(errs...)
}

func parseSwitch(v string) (bool, error) {
	switch strings.ToLower(v) {
	case "1", "on", "true", "yes":
		return true, nil
	case "0", "off", "false", "no":
		return false, nil
	}
	return false, fmt.Errorf("want on or off, got %q", v)
}

// Validate checks ranges and enumerations.
func (c Config) Validate() error {
	if c.FeedbackDwell <= 0 {
		return fmt.Errorf("feedback dwell must be positive, got %s", c.FeedbackDwell)
	}
	switch strings.ToLower(c.LogMode) {
	case "development", "dev", "production", "prod":
	default:
		return fmt.Errorf("unknown log mode: %q", c.LogMode)
	}
	if c.Octave < keyboard.MinOctave || c.Octave > keyboard.MaxOctave {
		return fmt.Errorf("octave must be between %d and %d, got %d",
			keyboard.MinOctave, keyboard.MaxOctave, c.Octave)
	}
	return nil
}
