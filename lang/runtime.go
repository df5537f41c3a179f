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

package lang

import (
	"fmt"
	"log/slog"
	"reflect"

	"github.com/pkg/errors"

	"dirpx.dev/objrt/apis"
	uref "dirpx.dev/objrt/utils/reflect"
)

// Runtime binds a Registry, a Resolver and a Config into the class and
// lifecycle services of the object model. It is safe for concurrent use
// when its Registry and Resolver are.
type Runtime struct {
	reg  apis.Registry
	res  apis.Resolver
	cfg  apis.Config
	log  *slog.Logger
	hook FinalizerHook
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithLogger sets the logger. A nil logger keeps slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(r *Runtime) {
		if l != nil {
			r.log = l
		}
	}
}

// WithFinalizerHook replaces the default finalizer hook, which logs the
// failure at error level. A nil hook keeps the default.
func WithFinalizerHook(h FinalizerHook) Option {
	return func(r *Runtime) {
		if h != nil {
			r.hook = h
		}
	}
}

// NewRuntime returns a Runtime over reg and res.
func NewRuntime(reg apis.Registry, res apis.Resolver, cfg apis.Config, opts ...Option) *Runtime {
	r := &Runtime{reg: reg, res: res, cfg: cfg, log: slog.Default()}
	for _, opt := range opts {
		opt(r)
	}
	if r.hook == nil {
		r.hook = r.logFinalizerFailure
	}
	return r
}

// Registry returns the registry backing r.
func (r *Runtime) Registry() apis.Registry { return r.reg }

// Resolver returns the resolver backing r.
func (r *Runtime) Resolver() apis.Resolver { return r.res }

// Config returns r's configuration.
func (r *Runtime) Config() apis.Config { return r.cfg }

// Logger returns r's logger.
func (r *Runtime) Logger() *slog.Logger { return r.log }

// Register publishes spec in r's registry and returns its class.
func (r *Runtime) Register(spec apis.TypeSpec) (Class, error) {
	d, err := r.reg.Register(spec)
	if err != nil {
		return Class{}, err
	}
	return Class{d: d, rt: r}, nil
}

// ForName returns the class registered under the exact qualified name.
func (r *Runtime) ForName(name string) (Class, error) {
	d, ok := r.reg.Lookup(name)
	if !ok {
		return Class{}, errors.Wrapf(ErrClassNotFound, "%q", name)
	}
	return Class{d: d, rt: r}, nil
}

// ClassOf returns the class of obj's dynamic type. A type embedding a
// registered type does not inherit its class; it must be registered itself.
//
// The type index is consulted first. A name produced by the resolver is
// accepted only when the class registered under it is backed by obj's
// normalized Go type.
func (r *Runtime) ClassOf(obj Object) (Class, error) {
	if isNil(obj) {
		return Class{}, ErrNilObject
	}
	t := reflect.TypeOf(obj)
	if d, ok := r.reg.LookupType(t); ok {
		return Class{d: d, rt: r}, nil
	}
	name := r.res.Resolve(obj, r.cfg)
	if name == "" {
		return Class{}, errors.Wrapf(ErrClassNotFound, "%T", obj)
	}
	d, ok := r.reg.Lookup(name)
	if !ok {
		return Class{}, errors.Wrapf(ErrClassNotFound, "%q", name)
	}
	nt, err := uref.Normalize(t, r.cfg)
	if err != nil || d.Type != nt {
		return Class{}, errors.Wrapf(ErrClassNotFound, "%q is backed by %v, not %T", name, d.Type, obj)
	}
	return Class{d: d, rt: r}, nil
}

// Classes lists every registered class in registration order.
func (r *Runtime) Classes() []Class {
	entries := r.reg.Entries()
	out := make([]Class, len(entries))
	for i, d := range entries {
		out[i] = Class{d: d, rt: r}
	}
	return out
}

// ToString renders obj. Types implementing fmt.Stringer render themselves;
// others render as "<class name>@<hex hash code>", with the Go type name
// standing in for unregistered classes. A nil obj renders as "null".
func (r *Runtime) ToString(obj Object) string {
	if isNil(obj) {
		return "null"
	}
	if s, ok := obj.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%s@%x", r.className(obj), uint32(obj.HashCode()))
}

// className is the registered name of obj's class, or its Go type.
func (r *Runtime) className(obj Object) string {
	if isNil(obj) {
		return "null"
	}
	if c, err := r.ClassOf(obj); err == nil {
		return c.Name()
	}
	return reflect.TypeOf(obj).String()
}

// Equals is Equal, additionally checking the equals/hashCode contract of
// the pair when the config asks for it. Violations are logged, not returned.
func (r *Runtime) Equals(a, b Object) bool {
	eq := Equal(a, b)
	if r.cfg.VerifyContracts {
		if err := VerifyContract(a, b); err != nil {
			r.log.Warn("object contract violated",
				"left", r.className(a), "right", r.className(b), "err", err)
		}
	}
	return eq
}

// Dispose finalizes obj once and closes its monitor; see Dispose. A
// *FinalizerError names the class by its qualified name when registered.
// Failures go to the runtime's finalizer hook and are returned.
func (r *Runtime) Dispose(obj Object) error {
	ran, err := dispose(obj, r.hook, r.className)
	if ran && err == nil {
		r.log.Debug("object disposed", "class", r.className(obj), "identity", obj.Identity())
	}
	return err
}

func (r *Runtime) logFinalizerFailure(obj Object, err error) {
	r.log.Error("finalizer failed", "class", r.className(obj), "identity", obj.Identity(), "err", err)
}
