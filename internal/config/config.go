// Package config provides YAML-based application configuration for the
// twisty command.
package config

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/charmbracelet/log"

	"github.com/SeamusWaldron/twisty"
)

// Config contains all configuration for the twisty command.
type Config struct {
	Puzzle    PuzzleConfig    `yaml:"puzzle"`
	Animation AnimationConfig `yaml:"animation"`
	Timer     TimerConfig     `yaml:"timer"`
	Input     InputConfig     `yaml:"input"`
	Display   DisplayConfig   `yaml:"display"`
	Scramble  ScrambleConfig  `yaml:"scramble"`
	Storage   StorageConfig   `yaml:"storage"`
	Log       LogConfig       `yaml:"log"`
}

// PuzzleConfig defines the puzzle geometry and colours.
type PuzzleConfig struct {
	Order     int      `yaml:"order"`
	PieceSize float64  `yaml:"piece_size"`
	Gap       float64  `yaml:"gap"`
	Colors    []string `yaml:"colors"`
}

// AnimationConfig defines how moves are played out.
type AnimationConfig struct {
	AngularVelocity float64 `yaml:"angular_velocity"`
	Threshold       int     `yaml:"threshold"`
	Instant         bool    `yaml:"instant"`
	MaxMovesPerTick int     `yaml:"max_moves_per_tick"`
}

// TimerConfig defines solve timing.
type TimerConfig struct {
	Inspection string `yaml:"inspection"`
}

// InputConfig defines gesture handling.
type InputConfig struct {
	RotationLock bool `yaml:"rotation_lock"`
	// FallbackLimit is how far off the puzzle a locked drag may start; 0
	// means half the puzzle's width.
	FallbackLimit float64 `yaml:"fallback_limit"`
}

// DisplayConfig defines terminal rendering.
type DisplayConfig struct {
	StatusFade    string `yaml:"status_fade"`
	FrameInterval string `yaml:"frame_interval"`
}

// ScrambleConfig defines the scramble generator. A zero seed picks a
// fresh one per run.
type ScrambleConfig struct {
	Seed uint64 `yaml:"seed"`
}

// StorageConfig defines where solves are recorded. An empty path uses
// the default database.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// LogConfig defines logging.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the built-in configuration.
func Default() Config {
	colors := make([]string, len(twisty.DefaultColorScheme))
	copy(colors, twisty.DefaultColorScheme[:])
	return Config{
		Puzzle: PuzzleConfig{
			Order:     3,
			PieceSize: 1,
			Gap:       0.05,
			Colors:    colors,
		},
		Animation: AnimationConfig{
			AngularVelocity: 10,
			Threshold:       4,
			MaxMovesPerTick: 100,
		},
		Timer:   TimerConfig{Inspection: "15s"},
		Display: DisplayConfig{StatusFade: "2s", FrameInterval: "16ms"},
		Log:     LogConfig{Level: "warn"},
	}
}

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Validate checks every value. Invalid values are replaced by their
// defaults and reported together in the returned error.
func (c *Config) Validate() error {
	def := Default()
	var errs []error
	bad := func(field string, value any) {
		errs = append(errs, fmt.Errorf("invalid %s: %v", field, value))
	}

	if c.Puzzle.Order < twisty.MinOrder || c.Puzzle.Order > twisty.MaxOrder {
		bad("puzzle.order", c.Puzzle.Order)
		c.Puzzle.Order = def.Puzzle.Order
	}
	if c.Puzzle.PieceSize <= 0 {
		bad("puzzle.piece_size", c.Puzzle.PieceSize)
		c.Puzzle.PieceSize = def.Puzzle.PieceSize
	}
	if c.Puzzle.Gap < 0 {
		bad("puzzle.gap", c.Puzzle.Gap)
		c.Puzzle.Gap = def.Puzzle.Gap
	}
	if !validColors(c.Puzzle.Colors) {
		bad("puzzle.colors", c.Puzzle.Colors)
		c.Puzzle.Colors = def.Puzzle.Colors
	}

	if c.Animation.AngularVelocity <= 0 {
		bad("animation.angular_velocity", c.Animation.AngularVelocity)
		c.Animation.AngularVelocity = def.Animation.AngularVelocity
	}
	if c.Animation.Threshold < 0 {
		bad("animation.threshold", c.Animation.Threshold)
		c.Animation.Threshold = def.Animation.Threshold
	}
	if c.Animation.MaxMovesPerTick < 1 {
		bad("animation.max_moves_per_tick", c.Animation.MaxMovesPerTick)
		c.Animation.MaxMovesPerTick = def.Animation.MaxMovesPerTick
	}

	if c.Input.FallbackLimit < 0 {
		bad("input.fallback_limit", c.Input.FallbackLimit)
		c.Input.FallbackLimit = def.Input.FallbackLimit
	}

	checkDuration := func(field string, v *string, fallback string) {
		if d, err := time.ParseDuration(*v); err != nil || d < 0 {
			bad(field, *v)
			*v = fallback
		}
	}
	checkDuration("timer.inspection", &c.Timer.Inspection, def.Timer.Inspection)
	checkDuration("display.status_fade", &c.Display.StatusFade, def.Display.StatusFade)
	checkDuration("display.frame_interval", &c.Display.FrameInterval, def.Display.FrameInterval)
	if c.FrameInterval() == 0 {
		bad("display.frame_interval", c.Display.FrameInterval)
		c.Display.FrameInterval = def.Display.FrameInterval
	}

	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		bad("log.level", c.Log.Level)
		c.Log.Level = def.Log.Level
	}

	return errors.Join(errs...)
}

func validColors(colors []string) bool {
	if len(colors) != len(twisty.FaceOrder) {
		return false
	}
	for _, c := range colors {
		if !hexColor.MatchString(c) {
			return false
		}
	}
	return true
}

// Layout returns the configured puzzle geometry.
func (c Config) Layout() twisty.Layout {
	return twisty.Layout{Order: c.Puzzle.Order, PieceSize: c.Puzzle.PieceSize, Gap: c.Puzzle.Gap}
}

// ColorScheme returns the configured face colours.
func (c Config) ColorScheme() twisty.ColorScheme {
	var cs twisty.ColorScheme
	copy(cs[:], c.Puzzle.Colors)
	return cs
}

// FrameInterval returns the delay between animation frames.
func (c Config) FrameInterval() time.Duration {
	d, _ := time.ParseDuration(c.Display.FrameInterval)
	return d
}

// LogLevel returns the configured log level.
func (c Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.WarnLevel
	}
	return level
}

// Options converts the configuration to scheduler options. Call Validate
// first.
func (c Config) Options(logger *log.Logger) []twisty.Option {
	inspection, _ := time.ParseDuration(c.Timer.Inspection)
	fade, _ := time.ParseDuration(c.Display.StatusFade)
	seed := c.Scramble.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	opts := []twisty.Option{
		twisty.WithLayout(c.Layout()),
		twisty.WithColorScheme(c.ColorScheme()),
		twisty.WithAngularVelocity(c.Animation.AngularVelocity),
		twisty.WithAnimationThreshold(c.Animation.Threshold),
		twisty.WithInstant(c.Animation.Instant),
		twisty.WithMaxMovesPerTick(c.Animation.MaxMovesPerTick),
		twisty.WithInspection(inspection),
		twisty.WithRotationLock(c.Input.RotationLock),
		twisty.WithFallbackLimit(c.Input.FallbackLimit),
		twisty.WithStatusFade(fade),
		twisty.WithSeed(seed),
	}
	if logger != nil {
		opts = append(opts, twisty.WithLogger(logger))
	}
	return opts
}
