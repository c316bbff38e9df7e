package assembly

import (
	"os"

	"github.com/charmbracelet/log"
)

// Config holds construction-time settings of an Assembly.
type Config struct {
	// InMemory marks an assembly loaded from a byte image rather than a file.
	InMemory bool
	// Dynamic marks an assembly emitted at run time.
	Dynamic bool
	// Strict reports duplicate adds and missing removes as errors instead of
	// logging them.
	Strict bool
	Logger *log.Logger
}

type Option func(*Config)

func DefaultConfig() Config {
	return Config{
		Logger: log.NewWithOptions(os.Stderr, log.Options{
			Prefix: "dmd",
			Level:  log.WarnLevel,
		}),
	}
}

func WithInMemory() Option {
	return func(c *Config) { c.InMemory = true }
}

func WithDynamic() Option {
	return func(c *Config) { c.Dynamic = true }
}

func WithStrict() Option {
	return func(c *Config) { c.Strict = true }
}

func WithLogger(logger *log.Logger) Option {
	return func(c *Config) { c.Logger = logger }
}
