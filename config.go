package touchpoint

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every error returned from Config.Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the tunable rates shared by every pointer of an Input.
// Durations decode from strings such as "200ms" in every format; JSON also
// accepts integer nanoseconds.
type Config struct {
	// HoldRate is how long a contact must stay down before a hold fires.
	HoldRate time.Duration `toml:"hold_rate" yaml:"hold_rate" json:"hold_rate"`
	// TapRate is the longest press that still counts as a tap.
	TapRate time.Duration `toml:"tap_rate" yaml:"tap_rate" json:"tap_rate"`
	// DoubleTapRate is the longest gap between two taps that makes the second
	// one a double tap.
	DoubleTapRate    time.Duration `toml:"double_tap_rate" yaml:"double_tap_rate" json:"double_tap_rate"`
	JustPressedRate  time.Duration `toml:"just_pressed_rate" yaml:"just_pressed_rate" json:"just_pressed_rate"`
	JustReleasedRate time.Duration `toml:"just_released_rate" yaml:"just_released_rate" json:"just_released_rate"`

	// RecordHistory enables the position sample buffer.
	RecordHistory bool          `toml:"record_history" yaml:"record_history" json:"record_history"`
	RecordRate    time.Duration `toml:"record_rate" yaml:"record_rate" json:"record_rate"`
	RecordLimit   int           `toml:"record_limit" yaml:"record_limit" json:"record_limit"`

	// ProbeRadius is the radius of the hit probe circle around each pointer.
	ProbeRadius float64 `toml:"probe_radius" yaml:"probe_radius" json:"probe_radius"`
	// MinPriority excludes candidates whose priority is below it.
	MinPriority int `toml:"min_priority" yaml:"min_priority" json:"min_priority"`
	// Override is one of "combine", "mouse" or "touch".
	Override string `toml:"override" yaml:"override" json:"override"`
	// DragDeadZone is the distance in pixels a Hotspot drag must travel
	// before it starts moving.
	DragDeadZone float64 `toml:"drag_dead_zone" yaml:"drag_dead_zone" json:"drag_dead_zone"`
}

// DefaultConfig returns the default rates.
func DefaultConfig() *Config {
	return &Config{
		HoldRate:         2000 * time.Millisecond,
		TapRate:          200 * time.Millisecond,
		DoubleTapRate:    300 * time.Millisecond,
		JustPressedRate:  200 * time.Millisecond,
		JustReleasedRate: 200 * time.Millisecond,
		RecordRate:       100 * time.Millisecond,
		RecordLimit:      100,
		ProbeRadius:      22,
		Override:         MouseTouchCombine.String(),
		DragDeadZone:     0,
	}
}

// UnmarshalJSON decodes c over its current values, accepting durations as
// strings or integer nanoseconds.
func (c *Config) UnmarshalJSON(data []byte) error {
	type plain Config
	aux := struct {
		*plain
		HoldRate         jsonDuration `json:"hold_rate"`
		TapRate          jsonDuration `json:"tap_rate"`
		DoubleTapRate    jsonDuration `json:"double_tap_rate"`
		JustPressedRate  jsonDuration `json:"just_pressed_rate"`
		JustReleasedRate jsonDuration `json:"just_released_rate"`
		RecordRate       jsonDuration `json:"record_rate"`
	}{
		plain:            (*plain)(c),
		HoldRate:         jsonDuration(c.HoldRate),
		TapRate:          jsonDuration(c.TapRate),
		DoubleTapRate:    jsonDuration(c.DoubleTapRate),
		JustPressedRate:  jsonDuration(c.JustPressedRate),
		JustReleasedRate: jsonDuration(c.JustReleasedRate),
		RecordRate:       jsonDuration(c.RecordRate),
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	c.HoldRate = time.Duration(aux.HoldRate)
	c.TapRate = time.Duration(aux.TapRate)
	c.DoubleTapRate = time.Duration(aux.DoubleTapRate)
	c.JustPressedRate = time.Duration(aux.JustPressedRate)
	c.JustReleasedRate = time.Duration(aux.JustReleasedRate)
	c.RecordRate = time.Duration(aux.RecordRate)
	return nil
}

type jsonDuration time.Duration

func (d *jsonDuration) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch v := v.(type) {
	case float64:
		*d = jsonDuration(v)
	case string:
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("duration %q: %w", v, err)
		}
		*d = jsonDuration(parsed)
	default:
		return fmt.Errorf("duration must be a string or a number, got %s", data)
	}
	return nil
}

// Validate checks that rates are non-negative and the override name is known.
func (c *Config) Validate() error {
	rates := []struct {
		name string
		d    time.Duration
	}{
		{"hold_rate", c.HoldRate},
		{"tap_rate", c.TapRate},
		{"double_tap_rate", c.DoubleTapRate},
		{"just_pressed_rate", c.JustPressedRate},
		{"just_released_rate", c.JustReleasedRate},
		{"record_rate", c.RecordRate},
	}
	for _, r := range rates {
		if r.d < 0 {
			return fmt.Errorf("%w: %s is negative (%v)", ErrInvalidConfig, r.name, r.d)
		}
	}
	if c.RecordHistory && c.RecordLimit <= 0 {
		return fmt.Errorf("%w: record_limit must be positive when history is recorded", ErrInvalidConfig)
	}
	if c.ProbeRadius < 0 {
		return fmt.Errorf("%w: probe_radius is negative", ErrInvalidConfig)
	}
	if c.DragDeadZone < 0 {
		return fmt.Errorf("%w: drag_dead_zone is negative", ErrInvalidConfig)
	}
	if _, ok := ParseOverride(c.Override); !ok {
		return fmt.Errorf("%w: unknown override %q", ErrInvalidConfig, c.Override)
	}
	return nil
}

// override returns the parsed override policy, falling back to combine.
func (c *Config) override() Override {
	o, _ := ParseOverride(c.Override)
	return o
}

// LoadConfig reads a config file and overlays it on DefaultConfig. The format
// is chosen by extension (.toml, .yaml, .yml, .json). Durations are written
// as strings such as "200ms"; JSON files may also give integer nanoseconds.
// A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := decodeConfig(filepath.Ext(path), data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ParseConfig decodes config data in the given format ("toml", "yaml" or
// "json") over DefaultConfig.
func ParseConfig(format string, data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := decodeConfig("."+format, data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decodeConfig(ext string, data []byte, cfg *Config) error {
	switch ext {
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return fmt.Errorf("decode TOML: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("decode YAML: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("decode JSON: %w", err)
		}
	default:
		return fmt.Errorf("decode config: unsupported format %q", ext)
	}
	return nil
}
