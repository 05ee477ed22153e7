package streamkit

import (
	"github.com/gobeaver/beaver-kit/config"
)

type Config struct {
	// Default driver to use (memory, file)
	Driver string `env:"STREAMKIT_DRIVER,default:memory"`

	// Cursor synchronization policy for shared handles: "lazy" seeks the
	// underlying stream only when the tracked cursor position differs from
	// the target, "always" seeks before every operation
	CursorSync string `env:"STREAMKIT_CURSOR_SYNC,default:lazy"`

	// End discovery policy for unbounded windows: "cached" remembers the end
	// found by the first from-end seek, "live" re-probes on every from-end
	// seek so a growing stream is observed
	EndProbe string `env:"STREAMKIT_END_PROBE,default:cached"`

	// File driver configuration
	FilePath string `env:"STREAMKIT_FILE_PATH,default:./stream.dat"`

	// Memory driver configuration (0 = unlimited)
	MemoryMaxSize int64 `env:"STREAMKIT_MEMORY_MAX_SIZE,default:0"`
}

// Cursor synchronization policies
const (
	CursorSyncLazy   = "lazy"
	CursorSyncAlways = "always"
)

// End discovery policies
const (
	EndProbeCached = "cached"
	EndProbeLive   = "live"
)

// GetConfig returns config loaded from environment
func GetConfig() (*Config, error) {
	cfg := &Config{}
	if err := config.Load(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WindowOptions translates the config's window policies into options for New.
func (c *Config) WindowOptions() []WindowOption {
	var opts []WindowOption
	if c.CursorSync == CursorSyncAlways {
		opts = append(opts, WithAlwaysSeek())
	}
	if c.EndProbe == EndProbeLive {
		opts = append(opts, WithLiveEnd())
	}
	return opts
}

// HandleOptions translates the config's cursor policy into options for
// NewSharedHandle.
func (c *Config) HandleOptions() []HandleOption {
	var opts []HandleOption
	if c.CursorSync == CursorSyncAlways {
		opts = append(opts, WithHandleAlwaysSeek())
	}
	return opts
}
