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

package registry

import (
	"reflect"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/pkg/errors"

	"dirpx.dev/objrt/apis"
	"dirpx.dev/objrt/config"
	uref "dirpx.dev/objrt/utils/reflect"
)

var (
	// ErrNilType is returned when a spec carries no reflect.Type.
	ErrNilType = errors.New("objrt(registry): nil reflect.Type provided")
	// ErrEmptyName is returned when an empty name is provided.
	ErrEmptyName = errors.New("objrt(registry): empty name provided")
	// ErrInvalidName is returned for names that are not dot-separated identifiers.
	ErrInvalidName = errors.New("objrt(registry): invalid qualified name")
	// ErrUnknownSuper is returned when the named parent is not registered yet.
	ErrUnknownSuper = errors.New("objrt(registry): super class not registered")
	// ErrNilHandle is returned for a constructor or method without a function.
	ErrNilHandle = errors.New("objrt(registry): nil constructor or method handle")
	// ErrConflictingRegistration indicates an attempt to re-register
	// a name with a different type, or a type under a different name.
	ErrConflictingRegistration = errors.New("objrt(registry): conflicting type registration")
)

// New constructs a Registry that normalizes types according to cfg.
// Only MaxUnwrap is used here.
func New(cfg apis.Config) apis.Registry {
	if cfg.MaxUnwrap <= 0 {
		cfg.MaxUnwrap = config.DefaultMaxUnwrap
	}
	return &registry{cfg: cfg}
}

// registry is a Registry implementation backed by two sync.Maps:
// one keyed by qualified name and one by normalized Go type.
type registry struct {
	// cfg is the configuration used for type normalization.
	cfg apis.Config
	// mu guards write-side consistency, the counter and the sequence.
	mu sync.Mutex
	// names maps qualified name to descriptor.
	names sync.Map // map[string]*apis.TypeDescriptor
	// types maps normalized reflect.Type to descriptor.
	types sync.Map // map[reflect.Type]*apis.TypeDescriptor
	// count tracks the number of registered entries.
	count int
	// seq numbers registrations so Entries can replay them in order.
	seq uint64
}

// Register publishes spec and returns the registry-owned descriptor.
// It is idempotent for the same (name, normalized type) pair.
func (r *registry) Register(spec apis.TypeSpec) (*apis.TypeDescriptor, error) {
	// Validate inputs early.
	if spec.Name == "" {
		return nil, ErrEmptyName
	}
	if !ValidName(spec.Name) {
		return nil, errors.Wrapf(ErrInvalidName, "%q", spec.Name)
	}
	if spec.Type == nil {
		return nil, errors.Wrapf(ErrNilType, "%s", spec.Name)
	}
	nt, err := uref.Normalize(spec.Type, r.cfg)
	if err != nil {
		return nil, errors.WithMessage(err, spec.Name)
	}

	// Fast read path: idempotency / conflict check without locking.
	if d, ok := r.loadName(spec.Name); ok {
		return sameOrConflict(d, spec.Name, nt)
	}

	// Write path: guard with a mutex to keep counter and sequence consistent.
	r.mu.Lock()
	defer r.mu.Unlock()

	// Re-check under lock in case another goroutine stored meanwhile.
	if d, ok := r.loadName(spec.Name); ok {
		return sameOrConflict(d, spec.Name, nt)
	}
	if d, ok := r.loadType(nt); ok {
		return nil, errors.Wrapf(ErrConflictingRegistration, "%v is already registered as %s", nt, d.Name)
	}

	var super *apis.TypeDescriptor
	if spec.Super != "" {
		s, ok := r.loadName(spec.Super)
		if !ok {
			return nil, errors.Wrapf(ErrUnknownSuper, "%s extends %s", spec.Name, spec.Super)
		}
		super = s
	}

	for _, c := range spec.Constructors {
		if c.New == nil {
			return nil, errors.Wrapf(ErrNilHandle, "%s constructor", spec.Name)
		}
	}
	methods := make(map[string][]apis.Method, len(spec.Methods))
	for _, m := range spec.Methods {
		if m.Name == "" {
			return nil, errors.Wrapf(ErrEmptyName, "%s method", spec.Name)
		}
		if m.Fn == nil {
			return nil, errors.Wrapf(ErrNilHandle, "%s.%s", spec.Name, m.Name)
		}
		methods[m.Name] = append(methods[m.Name], m)
	}

	r.seq++
	d := &apis.TypeDescriptor{
		Name:         spec.Name,
		Type:         nt,
		Super:        super,
		Description:  spec.Description,
		Constructors: append([]apis.Constructor(nil), spec.Constructors...),
		Methods:      methods,
		Seq:          r.seq,
	}
	r.names.Store(spec.Name, d)
	r.types.Store(nt, d)
	r.count++
	return d, nil
}

// Lookup returns the descriptor registered under name.
func (r *registry) Lookup(name string) (*apis.TypeDescriptor, bool) {
	if name == "" {
		return nil, false
	}
	return r.loadName(name)
}

// LookupType returns the descriptor registered for t's normalized type.
func (r *registry) LookupType(t reflect.Type) (*apis.TypeDescriptor, bool) {
	if t == nil {
		return nil, false
	}
	nt, err := uref.Normalize(t, r.cfg)
	if err != nil {
		return nil, false
	}
	return r.loadType(nt)
}

// Entries returns a snapshot in registration order.
func (r *registry) Entries() []*apis.TypeDescriptor {
	entries := make([]*apis.TypeDescriptor, 0, r.Count())
	r.names.Range(func(_, value any) bool {
		entries = append(entries, value.(*apis.TypeDescriptor))
		return true
	})
	sort.Slice(entries, func(i, j int) bool { return entries[i].Seq < entries[j].Seq })
	return entries
}

// Count returns the number of registered entries.
func (r *registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Reset clears all registered entries. Descriptors already handed out stay
// valid as values but are no longer reachable through the registry.
func (r *registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.names.Clear()
	r.types.Clear()
	r.count = 0
}

func (r *registry) loadName(name string) (*apis.TypeDescriptor, bool) {
	if v, ok := r.names.Load(name); ok {
		return v.(*apis.TypeDescriptor), true
	}
	return nil, false
}

func (r *registry) loadType(t reflect.Type) (*apis.TypeDescriptor, bool) {
	if v, ok := r.types.Load(t); ok {
		return v.(*apis.TypeDescriptor), true
	}
	return nil, false
}

func sameOrConflict(d *apis.TypeDescriptor, name string, t reflect.Type) (*apis.TypeDescriptor, error) {
	if d.Type == t {
		return d, nil // idempotent re-registration
	}
	return nil, errors.Wrapf(ErrConflictingRegistration, "%s is already bound to %v", name, d.Type)
}

// ValidName reports whether name is a dot-separated list of identifiers,
// e.g. "java.lang.String" or "app.Outer$Inner".
func ValidName(name string) bool {
	if name == "" {
		return false
	}
	for _, seg := range strings.Split(name, ".") {
		if seg == "" {
			return false
		}
		for i, c := range seg {
			switch {
			case c == '_' || c == '$' || unicode.IsLetter(c):
			case i > 0 && unicode.IsDigit(c):
			default:
				return false
			}
		}
	}
	return true
}
