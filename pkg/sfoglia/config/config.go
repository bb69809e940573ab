// Package config loads navigation defaults (transition timing, easing,
// barrier appearance) from TOML, so hosts can retheme transitions without
// recompiling.
//
// Example file:
//
//	[transitions]
//	forward = "300ms"
//	reverse = "250ms"
//	curve = "nav"
//
//	[barrier]
//	color = "#00000080"
//	dismissible = false
package config

import (
	"fmt"
	"image/color"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/BrandonKowalski/sfoglia/pkg/sfoglia"
	"github.com/BrandonKowalski/sfoglia/pkg/sfoglia/anim"
)

// Duration is a time.Duration that unmarshals from TOML strings like
// "250ms".
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler for TOML decoding.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// Transitions configures route transition timing.
type Transitions struct {
	// Forward is the full-range enter duration.
	Forward Duration `toml:"forward"`
	// Reverse is the full-range exit duration.
	Reverse Duration `toml:"reverse"`
	// Curve names the easing curve: "linear", "ease-in-out", "decelerate"
	// or "nav".
	Curve string `toml:"curve"`
}

// Barrier configures the modal scrim.
type Barrier struct {
	// Color is "#RRGGBB" or "#RRGGBBAA".
	Color string `toml:"color"`
	// Dismissible pops the route when the barrier is activated.
	Dismissible bool `toml:"dismissible"`
}

// Config is the root of the navigation configuration file.
type Config struct {
	Transitions Transitions `toml:"transitions"`
	Barrier     Barrier     `toml:"barrier"`
}

// Default returns the built-in configuration, matching the engine's
// compiled-in constants.
func Default() Config {
	return Config{
		Transitions: Transitions{
			Forward: Duration(sfoglia.DefaultForwardDuration),
			Reverse: Duration(sfoglia.DefaultReverseDuration),
			Curve:   "nav",
		},
		Barrier: Barrier{Color: "#00000080"},
	}
}

// Load reads and validates a configuration file. Missing fields keep their
// defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse decodes and validates configuration bytes. Missing fields keep
// their defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if _, err := anim.CurveByName(c.Transitions.Curve); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := c.BarrierColor(); err != nil {
		return err
	}
	return nil
}

// TransitionOptions converts the configured timing into route transition
// options.
func (c Config) TransitionOptions() (sfoglia.TransitionOptions, error) {
	curve, err := anim.CurveByName(c.Transitions.Curve)
	if err != nil {
		return sfoglia.TransitionOptions{}, fmt.Errorf("config: %w", err)
	}
	return sfoglia.TransitionOptions{
		ForwardDuration: time.Duration(c.Transitions.Forward),
		ReverseDuration: time.Duration(c.Transitions.Reverse),
		Curve:           curve,
	}, nil
}

// ModalOptions seeds modal route options from the configuration. The caller
// fills in Settings and the build callbacks.
func (c Config) ModalOptions() (sfoglia.ModalOptions, error) {
	transition, err := c.TransitionOptions()
	if err != nil {
		return sfoglia.ModalOptions{}, err
	}
	barrierColor, err := c.BarrierColor()
	if err != nil {
		return sfoglia.ModalOptions{}, err
	}
	return sfoglia.ModalOptions{
		BarrierColor:       barrierColor,
		BarrierDismissible: c.Barrier.Dismissible,
		Transition:         transition,
	}, nil
}

// BarrierColor parses the configured scrim color.
func (c Config) BarrierColor() (color.NRGBA, error) {
	s := c.Barrier.Color
	if s == "" {
		return color.NRGBA{}, nil
	}
	if s[0] != '#' || (len(s) != 7 && len(s) != 9) {
		return color.NRGBA{}, fmt.Errorf("config: invalid barrier color %q", s)
	}

	var v uint32
	for _, r := range s[1:] {
		var digit uint32
		switch {
		case r >= '0' && r <= '9':
			digit = uint32(r - '0')
		case r >= 'a' && r <= 'f':
			digit = uint32(r-'a') + 10
		case r >= 'A' && r <= 'F':
			digit = uint32(r-'A') + 10
		default:
			return color.NRGBA{}, fmt.Errorf("config: invalid barrier color %q", s)
		}
		v = v<<4 | digit
	}

	out := color.NRGBA{A: 0xFF}
	if len(s) == 9 {
		out.A = uint8(v)
		v >>= 8
	}
	out.B = uint8(v)
	out.G = uint8(v >> 8)
	out.R = uint8(v >> 16)
	return out, nil
}
