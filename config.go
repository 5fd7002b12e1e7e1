package coro

import "github.com/stackco/coro/internal/engine"

// Default sizing, matching spec §6's configuration table.
const (
	// DefaultStackSize is the StackSize used when no WithStackSize option
	// is given; the nesting-depth budget is scaled from it in units of
	// MinStackSize.
	DefaultStackSize StackSize = 56 << 10
	// MinStackSize is the clamp floor: any smaller StackSize is silently
	// rounded up to this value.
	MinStackSize StackSize = 32 << 10
	// DefaultStorageSize is the byte-stack capacity when no explicit
	// StorageSize option is given.
	DefaultStorageSize StorageSize = 1 << 10
)

// StackSize and StorageSize are strong-typed scalars (spec §3) so a
// transposed pair of arguments to New fails to compile rather than
// silently swapping which number sizes what.
type StackSize uint32

type StorageSize uint32

// Option configures a Coroutine at creation. See WithStackSize and
// WithStorageSize.
type Option func(*engine.Config)

// WithStackSize overrides DefaultStackSize. Values below MinStackSize are
// clamped upward rather than rejected.
func WithStackSize(size StackSize) Option {
	return func(cfg *engine.Config) {
		cfg.StackSize = uint32(size)
	}
}

// WithStorageSize overrides DefaultStorageSize, the capacity of the
// coroutine's byte-stack data channel.
func WithStorageSize(size StorageSize) Option {
	return func(cfg *engine.Config) {
		cfg.StorageSize = uint32(size)
	}
}

func buildConfig(opts []Option) engine.Config {
	cfg := engine.Config{
		StackSize:    uint32(DefaultStackSize),
		StorageSize:  uint32(DefaultStorageSize),
		MinStackSize: uint32(MinStackSize),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
