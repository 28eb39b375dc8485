// Package config loads memkit settings from TOML and builds the allocator
// and logger they describe.
package config

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"

	"github.com/pavanmanishd/memkit/alloc"
)

// ErrInvalid is returned by Validate for settings that cannot be used.
var ErrInvalid = errors.New("config: invalid setting")

// Allocator kinds.
const (
	KindHeap  = "heap"
	KindMmap  = "mmap"
	KindArena = "arena"
	KindDummy = "dummy"
)

// Config is the top-level memkit configuration.
type Config struct {
	Allocator AllocatorConfig `toml:"allocator" json:"allocator"`
	Pool      PoolConfig      `toml:"pool" json:"pool"`
	Log       LogConfig       `toml:"log" json:"log"`
}

// AllocatorConfig selects the general-purpose allocator.
type AllocatorConfig struct {
	Kind           string `toml:"kind" json:"kind"`
	Name           string `toml:"name" json:"name"`
	ArenaChunkSize int    `toml:"arena_chunk_size" json:"arena_chunk_size"`
	Synchronized   bool   `toml:"synchronized" json:"synchronized"`
	Tracking       bool   `toml:"tracking" json:"tracking"`
}

// PoolConfig describes a fixed pool.
type PoolConfig struct {
	NodeSize  int  `toml:"node_size" json:"node_size"`
	NodeCount int  `toml:"node_count" json:"node_count"`
	Alignment int  `toml:"alignment" json:"alignment"`
	Overflow  bool `toml:"overflow" json:"overflow"`
}

// LogConfig configures the slog handler.
type LogConfig struct {
	Level  string `toml:"level" json:"level"`
	Format string `toml:"format" json:"format"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Allocator: AllocatorConfig{
			Kind:           KindHeap,
			Name:           alloc.DefaultName,
			ArenaChunkSize: 64 << 10,
			Tracking:       true,
		},
		Pool: PoolConfig{
			NodeSize:  64,
			NodeCount: 1024,
			Alignment: alloc.MinAlignment,
			Overflow:  true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads path over the defaults. Keys the file sets override the
// defaults; unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, errors.Wrapf(err, "config: read %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.Wrapf(ErrInvalid, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that every setting is usable.
func (c Config) Validate() error {
	switch c.Allocator.Kind {
	case KindHeap, KindMmap, KindDummy:
	case KindArena:
		if c.Allocator.ArenaChunkSize <= 0 {
			return errors.Wrapf(ErrInvalid, "allocator.arena_chunk_size %d must be positive", c.Allocator.ArenaChunkSize)
		}
	default:
		return errors.Wrapf(ErrInvalid, "allocator.kind %q", c.Allocator.Kind)
	}
	if c.Pool.NodeSize <= 0 {
		return errors.Wrapf(ErrInvalid, "pool.node_size %d must be positive", c.Pool.NodeSize)
	}
	if c.Pool.NodeCount < 0 {
		return errors.Wrapf(ErrInvalid, "pool.node_count %d is negative", c.Pool.NodeCount)
	}
	if !alloc.IsPowerOfTwo(c.Pool.Alignment) {
		return errors.Wrapf(ErrInvalid, "pool.alignment %d is not a power of two", c.Pool.Alignment)
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return errors.Wrapf(ErrInvalid, "log.format %q", c.Log.Format)
	}
	return nil
}

// Encode writes c as TOML.
func (c Config) Encode(w io.Writer) error {
	return errors.Wrap(toml.NewEncoder(w).Encode(c), "config: encode")
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, errors.Wrapf(ErrInvalid, "log.level %q", s)
	}
	return level, nil
}

// NewLogger builds a logger writing to w. A nil w writes to stderr.
func (c Config) NewLogger(w io.Writer) (*slog.Logger, error) {
	level, err := parseLevel(c.Log.Level)
	if err != nil {
		return nil, err
	}
	if w == nil {
		w = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}

// NewAllocator builds the configured allocator. Tracking wraps the base
// allocator first; Synchronized wraps the result.
func (c Config) NewAllocator(logger *slog.Logger) (alloc.Allocator, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	name := c.Allocator.Name
	if name == "" {
		name = alloc.DefaultName
	}
	opts := []alloc.Option{alloc.WithName(name), alloc.WithLogger(logger)}

	var a alloc.Allocator
	switch c.Allocator.Kind {
	case KindHeap:
		a = alloc.NewHeap(name)
	case KindMmap:
		a = alloc.NewMmap(opts...)
	case KindArena:
		a = alloc.NewArena(c.Allocator.ArenaChunkSize, opts...)
	case KindDummy:
		a = alloc.NewDummy(name)
	}
	if c.Allocator.Tracking {
		a = alloc.NewTracking(a, opts...)
	}
	if c.Allocator.Synchronized {
		a = alloc.Synchronized(a)
	}
	return a, nil
}
