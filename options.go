package twisty

import (
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// Supported puzzle orders.
const (
	MinOrder = 2
	MaxOrder = 10
)

// Option configures a Scheduler.
type Option func(*config)

type config struct {
	layout             Layout
	colors             ColorScheme
	angularVelocity    float64 // radians per second
	animationThreshold int
	instant            bool
	maxMovesPerTick    int
	inspection         time.Duration
	rotationLock       bool
	fallbackLimit      float64
	seed               uint64
	statusFade         time.Duration
	logger             *log.Logger
	renderer           Renderer
}

func defaultConfig() *config {
	return &config{
		layout:             DefaultLayout(3),
		colors:             DefaultColorScheme,
		angularVelocity:    10,
		animationThreshold: 4,
		maxMovesPerTick:    100,
		inspection:         15 * time.Second,
		seed:               1,
		statusFade:         2 * time.Second,
	}
}

func defaultLogger() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "twisty",
		Level:  log.WarnLevel,
	})
}

// WithOrder sets the number of layers along each axis, keeping the default
// piece size and gap.
func WithOrder(order int) Option {
	return func(c *config) {
		c.layout = DefaultLayout(order)
	}
}

// WithLayout sets the order and world-space piece geometry.
func WithLayout(l Layout) Option {
	return func(c *config) {
		c.layout = l
	}
}

// WithColorScheme sets the face colours handed to renderers.
func WithColorScheme(cs ColorScheme) Option {
	return func(c *config) {
		c.colors = cs
	}
}

// WithAngularVelocity sets how fast layers turn, in radians per second.
func WithAngularVelocity(v float64) Option {
	return func(c *config) {
		c.angularVelocity = v
	}
}

// WithAnimationThreshold sets the queue backlog above which moves snap to
// completion instead of animating.
func WithAnimationThreshold(n int) Option {
	return func(c *config) {
		c.animationThreshold = n
	}
}

// WithInstant disables animation entirely.
func WithInstant(enabled bool) Option {
	return func(c *config) {
		c.instant = enabled
	}
}

// WithMaxMovesPerTick caps how many moves one Tick may complete.
func WithMaxMovesPerTick(n int) Option {
	return func(c *config) {
		c.maxMovesPerTick = n
	}
}

// WithInspection sets the inspection period between a scramble and the
// start of the solve timer.
func WithInspection(d time.Duration) Option {
	return func(c *config) {
		c.inspection = d
	}
}

// WithRotationLock lets drags that start off the puzzle still resolve to
// the nearest face.
func WithRotationLock(enabled bool) Option {
	return func(c *config) {
		c.rotationLock = enabled
	}
}

// WithFallbackLimit sets how far outside the puzzle, in world units, a
// drag may start and still snap to a face under rotation lock. Zero means
// half the puzzle's width.
func WithFallbackLimit(limit float64) Option {
	return func(c *config) {
		c.fallbackLimit = max(0, limit)
	}
}

// WithSeed seeds the scrambler and the solved-check traversal.
func WithSeed(seed uint64) Option {
	return func(c *config) {
		c.seed = seed
	}
}

// WithStatusFade sets how long a status message stays visible.
func WithStatusFade(d time.Duration) Option {
	return func(c *config) {
		c.statusFade = d
	}
}

// WithLogger sets the logger. The default logs warnings to stderr.
func WithLogger(l *log.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithRenderer sets the callback invoked once per processed tick.
func WithRenderer(r Renderer) Option {
	return func(c *config) {
		c.renderer = r
	}
}
