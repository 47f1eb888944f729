package gamepad

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// TouchSettings configure the gesture surface of gesture layouts.
type TouchSettings struct {
	Type           TouchType `toml:"type" yaml:"type"`
	SwipeThreshold float64   `toml:"swipe_threshold" yaml:"swipe_threshold"`
}

// ButtonSettings configure every button on the pad.
type ButtonSettings struct {
	Type            ButtonType `toml:"type" yaml:"type"`
	TurboDelayMS    int        `toml:"turbo_delay_ms" yaml:"turbo_delay_ms"`
	CooldownSeconds float64    `toml:"cooldown_seconds" yaml:"cooldown_seconds"`
}

// TurboDelay returns the configured delay as a duration.
func (s ButtonSettings) TurboDelay() time.Duration {
	return time.Duration(s.TurboDelayMS) * time.Millisecond
}

// Config is everything needed to compose a gamepad. It is read from a TOML or
// YAML file; keys missing from the file keep their defaults.
type Config struct {
	Layout     Layout           `toml:"layout" yaml:"layout"`
	ButtonPad  ButtonPadType    `toml:"button_pad" yaml:"button_pad"`
	ButtonSize float64          `toml:"button_size" yaml:"button_size"`
	Joystick   JoystickSettings `toml:"joystick" yaml:"joystick"`
	Touch      TouchSettings    `toml:"touch" yaml:"touch"`
	Button     ButtonSettings   `toml:"button" yaml:"button"`
	LogLevel   string           `toml:"log_level" yaml:"log_level"` // applied by the binaries via SetLogLevel
}

// DefaultConfig is a dual-stick gamepad with the stock stick, swipe and button settings.
func DefaultConfig() Config {
	return Config{
		Layout:     DoubleStick,
		ButtonPad:  OneFixed,
		ButtonSize: DefaultButtonSize,
		Joystick:   DefaultJoystickSettings(),
		Touch: TouchSettings{
			Type:           TouchSwipe,
			SwipeThreshold: DefaultSwipeThreshold,
		},
		Button: ButtonSettings{
			Type:         ButtonSingleThenTurbo,
			TurboDelayMS: int(DefaultTurboDelay / time.Millisecond),
		},
		LogLevel: "info",
	}
}

// Validate rejects settings the engines cannot work with.
func (c Config) Validate() error {
	if c.Layout < SingleStick || c.Layout > Gesture {
		return fmt.Errorf("invalid layout %d", c.Layout)
	}
	if c.Layout.HasButtons() && (c.ButtonPad < OneFixed || c.ButtonPad > FiveFan) {
		return fmt.Errorf("layout %s needs a button pad, got %d", c.Layout, c.ButtonPad)
	}
	if c.Joystick.MaxDistance <= 0 {
		return fmt.Errorf("joystick max_distance must be > 0, got %v", c.Joystick.MaxDistance)
	}
	if c.ButtonSize <= 0 {
		return fmt.Errorf("button_size must be > 0, got %v", c.ButtonSize)
	}
	if c.Touch.SwipeThreshold < 0 {
		return fmt.Errorf("touch swipe_threshold must be >= 0, got %v", c.Touch.SwipeThreshold)
	}
	if c.Button.TurboDelayMS < 0 || c.Button.CooldownSeconds < 0 {
		return fmt.Errorf("button delays must be >= 0")
	}
	return nil
}

// LoadConfig reads path over DefaultConfig. The format follows the file
// extension: .toml, .yaml or .yml.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read gamepad config: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return cfg, fmt.Errorf("decode %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("decode %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("unsupported config format %q", ext)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// WriteConfig stores cfg at path in the format given by its extension.
func WriteConfig(path string, cfg Config) error {
	var buf bytes.Buffer
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return fmt.Errorf("encode gamepad config: %w", err)
		}
	case ".yaml", ".yml":
		enc := yaml.NewEncoder(&buf)
		if err := enc.Encode(cfg); err != nil {
			return fmt.Errorf("encode gamepad config: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encode gamepad config: %w", err)
		}
	default:
		return fmt.Errorf("unsupported config format %q", ext)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write gamepad config: %w", err)
	}
	return nil
}
