package file

import "github.com/gobeaver/streamkit"

func init() {
	streamkit.RegisterDriver("file", func(cfg *streamkit.Config) (streamkit.Stream, error) {
		return New(cfg.FilePath)
	})
}
