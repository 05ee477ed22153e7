package streamkit

import (
	"fmt"
	"sync"
)

// DriverFactory is a function that creates a Stream from a config
type DriverFactory func(cfg *Config) (Stream, error)

var (
	driverFactories = make(map[string]DriverFactory)
	factoryMutex    sync.RWMutex
)

// RegisterDriver registers a driver factory function
func RegisterDriver(name string, factory DriverFactory) {
	factoryMutex.Lock()
	defer factoryMutex.Unlock()
	driverFactories[name] = factory
}

// CreateStream creates a stream instance from config
func CreateStream(cfg *Config) (Stream, error) {
	factoryMutex.RLock()
	factory, ok := driverFactories[cfg.Driver]
	factoryMutex.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: unknown driver: %s", ErrNotSupported, cfg.Driver)
	}
	return factory(cfg)
}

// NewFromConfig creates a window over a stream built from config, honoring
// the config's window policies. Import the driver package for its side
// effects to make it available:
//
//	import _ "github.com/gobeaver/streamkit/driver/memory"
func NewFromConfig(cfg *Config, start int64, opts ...WindowOption) (*Window, error) {
	s, err := CreateStream(cfg)
	if err != nil {
		return nil, err
	}
	all := append(cfg.WindowOptions(), opts...)
	return New(s, start, all...)
}
