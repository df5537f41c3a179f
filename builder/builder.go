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

package builder

import (
	"log/slog"

	"dirpx.dev/objrt/apis"
	"dirpx.dev/objrt/registry"
	"dirpx.dev/objrt/resolver"
	"dirpx.dev/objrt/strategy"
)

// Option configures the default builder.
type Option func(*builder)

// WithLogger sets the logger that reports entries dropped during
// migration. A nil logger keeps slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(b *builder) {
		if l != nil {
			b.log = l
		}
	}
}

// New creates and returns a new instance of an apis.Builder.
func New(opts ...Option) apis.Builder {
	b := &builder{}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// builder holds the logger used while migrating registries.
type builder struct {
	log *slog.Logger
}

func (b *builder) logger() *slog.Logger {
	if b.log == nil {
		return slog.Default()
	}
	return b.log
}

// BuildRegistry builds a registry for cfg. Entries of prev are replayed in
// registration order so every super class exists before its subclasses.
// Entries the new registry rejects are dropped with a warning.
func (b *builder) BuildRegistry(cfg apis.Config, prev apis.Registry, _ any) apis.Registry {
	nreg := registry.New(cfg)
	if prev != nil {
		for _, d := range prev.Entries() {
			if _, err := nreg.Register(d.Spec()); err != nil {
				b.logger().Warn("class dropped during registry migration", "class", d.Name, "err", err)
			}
		}
	}
	return nreg
}

// BuildResolver builds the class-name chain over reg:
// ClassNamer, then the registry's type index, then the reflect fallback.
// A previous resolver's memo is not reused because cfg may change the
// cache policy.
func (b *builder) BuildResolver(cfg apis.Config, reg apis.Registry, _ apis.Resolver, _ any) apis.Resolver {
	return resolver.New(
		strategy.NewNamerStrategy(),
		strategy.NewRegistryStrategy(reg),
		strategy.NewReflectStrategy(cfg),
	)
}
