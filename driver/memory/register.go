package memory

import "github.com/gobeaver/streamkit"

func init() {
	streamkit.RegisterDriver("memory", func(cfg *streamkit.Config) (streamkit.Stream, error) {
		return New(Config{MaxSize: cfg.MemoryMaxSize}), nil
	})
}
