/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package config

import (
	"github.com/pkg/errors"

	"dirpx.dev/objrt/apis"
	"dirpx.dev/objrt/rxapi/cache/strategy"
)

const (
	// DefaultMaxUnwrap represents the default for MaxUnwrap.
	// Object values are at most a pointer or two away from their named type.
	DefaultMaxUnwrap = 8
	// DefaultCache represents the default class-name cache policy.
	DefaultCache = strategy.LRU
	// DefaultCacheSize represents the default bound of the class-name cache.
	DefaultCacheSize = 512
	// DefaultVerifyContracts represents the default for VerifyContracts.
	DefaultVerifyContracts = false
)

var (
	// ErrInvalidMaxUnwrap is returned for a negative MaxUnwrap.
	ErrInvalidMaxUnwrap = errors.New("objrt(config): negative max unwrap")
	// ErrUnsupportedCache is returned for a cache policy the runtime cannot build.
	ErrUnsupportedCache = errors.New("objrt(config): unsupported cache strategy")
	// ErrInvalidCacheSize is returned for a non-positive cache bound.
	ErrInvalidCacheSize = errors.New("objrt(config): cache size must be positive")
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	// Ensure MaxUnwrap is valid.
	if cfg.MaxUnwrap < 0 {
		cfg.MaxUnwrap = DefaultMaxUnwrap
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		MaxUnwrap:       DefaultMaxUnwrap,
		Cache:           DefaultCache,
		CacheSize:       DefaultCacheSize,
		VerifyContracts: DefaultVerifyContracts,
	}
}

// Validate reports the first setting of cfg the runtime cannot honor.
func Validate(cfg apis.Config) error {
	if cfg.MaxUnwrap < 0 {
		return errors.Wrapf(ErrInvalidMaxUnwrap, "%d", cfg.MaxUnwrap)
	}
	if !cfg.Cache.Supported() {
		return errors.Wrapf(ErrUnsupportedCache, "%s", cfg.Cache)
	}
	if cfg.Cache.Bounded() && cfg.CacheSize <= 0 {
		return errors.Wrapf(ErrInvalidCacheSize, "%d", cfg.CacheSize)
	}
	return nil
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithMaxUnwrap sets the MaxUnwrap option.
// A negative value resets to the default.
func WithMaxUnwrap(max int) Option {
	return func(c *apis.Config) {
		if max < 0 {
			c.MaxUnwrap = DefaultMaxUnwrap
			return
		}
		c.MaxUnwrap = max
	}
}

// WithCache sets the class-name cache policy.
func WithCache(s strategy.Strategy) Option {
	return func(c *apis.Config) {
		c.Cache = s
	}
}

// WithCacheSize sets the cache bound. A non-positive value resets to the default.
func WithCacheSize(n int) Option {
	return func(c *apis.Config) {
		if n <= 0 {
			c.CacheSize = DefaultCacheSize
			return
		}
		c.CacheSize = n
	}
}

// WithVerifyContracts sets the VerifyContracts option.
func WithVerifyContracts(verify bool) Option {
	return func(c *apis.Config) {
		c.VerifyContracts = verify
	}
}
