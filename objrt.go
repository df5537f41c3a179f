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

package objrt

import (
	"context"
	"log/slog"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"

	"dirpx.dev/objrt/apis"
	"dirpx.dev/objrt/builder"
	"dirpx.dev/objrt/config"
	"dirpx.dev/objrt/lang"
)

// init publishes the default snapshot: default config, default builder,
// and a registry holding the builtin classes.
func init() {
	cfg := config.DefaultConfig()
	b := builder.New()
	reg := b.BuildRegistry(cfg, nil, nil)
	if err := lang.RegisterBuiltinsWith(reg, Runtime); err != nil {
		panic(err)
	}
	s := &state{cfg: cfg, bld: b, reg: reg, res: b.BuildResolver(cfg, reg, nil, nil)}
	s.rt = s.runtime()
	st.Store(s)
}

var (
	// ErrNilRegistry is returned when a builder returns a nil registry.
	ErrNilRegistry = errors.New("objrt: builder returned nil registry")
	// ErrNilResolver is returned when a builder returns a nil resolver.
	ErrNilResolver = errors.New("objrt: builder returned nil resolver")
)

// Runtime returns the runtime of the current snapshot.
func Runtime() *lang.Runtime {
	return st.Load().rt
}

// ForName returns the class registered under name in the default runtime.
func ForName(name string) (lang.Class, error) {
	return st.Load().rt.ForName(name)
}

// ClassOf returns the class of obj's dynamic type in the default runtime.
func ClassOf(obj lang.Object) (lang.Class, error) {
	return st.Load().rt.ClassOf(obj)
}

// ClassName resolves the class name of any value or type through the
// default resolver, registered or not. It returns "" when nothing matches.
func ClassName(v any) string {
	s := st.Load()
	if t, ok := v.(reflect.Type); ok {
		return s.res.ResolveType(t, s.cfg)
	}
	return s.res.Resolve(v, s.cfg)
}

// Register publishes spec in the default registry.
func Register(spec apis.TypeSpec) (lang.Class, error) {
	return st.Load().rt.Register(spec)
}

// ToString renders obj with the default runtime.
func ToString(obj lang.Object) string {
	return st.Load().rt.ToString(obj)
}

// Equals compares a and b with the default runtime.
func Equals(a, b lang.Object) bool {
	return st.Load().rt.Equals(a, b)
}

// Dispose finalizes obj with the default runtime.
func Dispose(obj lang.Object) error {
	return st.Load().rt.Dispose(obj)
}

// Synchronized runs fn while holding obj's monitor.
func Synchronized(ctx context.Context, obj lang.Object, fn func(context.Context) error) error {
	return lang.Synchronized(ctx, obj, fn)
}

// SetAll explicitly sets all snapshot components.
//
// Nil arguments leave the corresponding component unchanged,
// except for ext which is always replaced. A non-nil reg or res is pinned;
// a nil one is rebuilt by the builder and unpinned.
func SetAll(cfg *apis.Config, ext any, reg apis.Registry, res apis.Resolver, bld apis.Builder) {
	swap(func(next, old *state) {
		if cfg != nil {
			next.cfg = *cfg
		}
		next.ext = ext
		if bld != nil {
			next.bld = bld
		}
		next.reg, next.preg = reg, reg != nil
		if reg == nil {
			next.reg = next.bld.BuildRegistry(next.cfg, old.reg, next.ext)
		}
		next.res, next.pres = res, res != nil
		if res == nil {
			next.res = next.bld.BuildResolver(next.cfg, next.reg, old.res, next.ext)
		}
	})
}

// Config returns the current configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig replaces the configuration and rebuilds the unpinned layers.
// Callers should check cfg with config.Validate first.
func SetConfig(cfg apis.Config) {
	swap(func(next, old *state) {
		next.cfg = cfg
		next.rebuild(old)
	})
}

// Registry returns the current registry.
func Registry() apis.Registry {
	return st.Load().reg
}

// SetRegistry installs and pins reg, rebuilding the resolver if it is not
// pinned. Builtins are not added to reg; see lang.RegisterBuiltinsWith.
func SetRegistry(reg apis.Registry) {
	if reg == nil {
		return
	}
	swap(func(next, old *state) {
		next.reg, next.preg = reg, true
		if !next.pres {
			next.res = next.bld.BuildResolver(next.cfg, reg, old.res, next.ext)
		}
	})
}

// Resolver returns the current resolver.
func Resolver() apis.Resolver {
	return st.Load().res
}

// SetResolver installs and pins res.
func SetResolver(res apis.Resolver) {
	if res == nil {
		return
	}
	swap(func(next, _ *state) {
		next.res, next.pres = res, true
	})
}

// Builder returns the current builder.
func Builder() apis.Builder {
	return st.Load().bld
}

// SetBuilder replaces the builder and rebuilds the unpinned layers with it.
func SetBuilder(b apis.Builder) {
	if b == nil {
		return
	}
	swap(func(next, old *state) {
		next.bld = b
		next.rebuild(old)
	})
}

// SetExt replaces the extension value handed to the builder and rebuilds
// the unpinned layers.
func SetExt[T any](ext T) {
	swap(func(next, old *state) {
		next.ext = ext
		next.rebuild(old)
	})
}

// ExtAs returns the extension value as type T.
func ExtAs[T any]() (T, bool) {
	ext, ok := st.Load().ext.(T)
	return ext, ok
}

// SetLogger sets the logger of the default runtime. Nil means slog.Default().
func SetLogger(l *slog.Logger) {
	swap(func(next, _ *state) { next.log = l })
}

// SetFinalizerHook sets the finalizer hook of the default runtime.
// Nil restores the logging hook.
func SetFinalizerHook(h lang.FinalizerHook) {
	swap(func(next, _ *state) { next.hook = h })
}

// IsRegistryPinned reports whether the registry is pinned.
func IsRegistryPinned() bool {
	return st.Load().preg
}

// PinRegistry stops SetConfig, SetBuilder and SetExt from rebuilding the registry.
func PinRegistry() {
	swap(func(next, _ *state) { next.preg = true })
}

// UnpinRegistry lets the registry be rebuilt again.
func UnpinRegistry() {
	swap(func(next, _ *state) { next.preg = false })
}

// IsResolverPinned reports whether the resolver is pinned.
func IsResolverPinned() bool {
	return st.Load().pres
}

// PinResolver stops the resolver from being rebuilt.
func PinResolver() {
	swap(func(next, _ *state) { next.pres = true })
}

// UnpinResolver lets the resolver be rebuilt again.
func UnpinResolver() {
	swap(func(next, _ *state) { next.pres = false })
}

// buildMu serializes writers (reconfigurations/swaps) so we never publish
// partially-built snapshots.
var buildMu sync.Mutex

// st is the current snapshot.
var st atomic.Pointer[state]

// swap derives a snapshot from the current one with mut, refreshes its
// runtime and publishes it. Nil layers are programming errors and panic.
func swap(mut func(next, old *state)) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	next := *old
	mut(&next, old)

	if next.reg == nil {
		panic(ErrNilRegistry)
	}
	if next.res == nil {
		panic(ErrNilResolver)
	}
	next.rt = next.runtime()
	st.Store(&next)
}

// state is an immutable snapshot published via st; never mutate the
// fields of a published state.
type state struct {
	cfg apis.Config
	// ext is an opaque value passed to the builder.
	ext any
	reg apis.Registry
	res apis.Resolver
	bld apis.Builder
	// preg and pres mark the registry and resolver as pinned.
	preg bool
	pres bool

	log  *slog.Logger
	hook lang.FinalizerHook
	rt   *lang.Runtime
}

// rebuild rebuilds the unpinned layers of s from old with s's builder.
func (s *state) rebuild(old *state) {
	if !s.preg {
		s.reg = s.bld.BuildRegistry(s.cfg, old.reg, s.ext)
	}
	if !s.pres {
		s.res = s.bld.BuildResolver(s.cfg, s.reg, old.res, s.ext)
	}
}

func (s *state) runtime() *lang.Runtime {
	return lang.NewRuntime(s.reg, s.res, s.cfg, lang.WithLogger(s.log), lang.WithFinalizerHook(s.hook))
}
