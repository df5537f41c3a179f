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
	"reflect"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"dirpx.dev/objrt/apis"
)

// Class is a handle to a registered class. It is a small value that may be
// copied and compared with Equals. The zero Class is invalid: accessors
// return zero values and operations fail with ErrInvalidClass. A handle
// whose class was dropped from the registry keeps its accessors but is
// invalid likewise.
type Class struct {
	d  *apis.TypeDescriptor
	rt *Runtime
}

// IsValid reports whether c refers to a class that is still registered:
// its runtime's registry maps c's name to the very descriptor c holds. A
// handle outlives a registry Reset or re-registration, but not its validity.
func (c Class) IsValid() bool {
	if c.d == nil || c.rt == nil {
		return false
	}
	d, ok := c.rt.reg.Lookup(c.d.Name)
	return ok && d == c.d
}

// Name returns the qualified name, e.g. "java.lang.String".
func (c Class) Name() string {
	if c.d == nil {
		return ""
	}
	return c.d.Name
}

// SimpleName returns the last element of the qualified name.
func (c Class) SimpleName() string {
	name := c.Name()
	if i := strings.LastIndexAny(name, ".$"); i >= 0 {
		return name[i+1:]
	}
	return name
}

// PackageName returns the qualified name without its last element.
func (c Class) PackageName() string {
	name := c.Name()
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[:i]
	}
	return ""
}

// Description returns the registered description.
func (c Class) Description() string {
	if c.d == nil {
		return ""
	}
	return c.d.Description
}

// GoType returns the normalized Go type backing the class.
func (c Class) GoType() reflect.Type {
	if c.d == nil {
		return nil
	}
	return c.d.Type
}

// IsInterface reports whether the class is backed by a Go interface type.
func (c Class) IsInterface() bool {
	return c.d != nil && c.d.Type.Kind() == reflect.Interface
}

// Super returns the parent class, if any.
func (c Class) Super() (Class, bool) {
	if !c.IsValid() || c.d.Super == nil {
		return Class{}, false
	}
	return Class{d: c.d.Super, rt: c.rt}, true
}

// Equals reports whether both classes are valid and share a qualified name.
func (c Class) Equals(other Class) bool {
	return c.IsValid() && other.IsValid() && c.d.Name == other.d.Name
}

// String renders the class the way class literals print: "class NAME" or
// "interface NAME".
func (c Class) String() string {
	switch {
	case !c.IsValid():
		return "class <invalid>"
	case c.IsInterface():
		return "interface " + c.d.Name
	default:
		return "class " + c.d.Name
	}
}

// IsAssignableFrom reports whether instances of other are instances of c:
// c is other or one of its ancestors, or c is an interface that other's
// Go type implements.
func (c Class) IsAssignableFrom(other Class) bool {
	if !c.IsValid() || !other.IsValid() {
		return false
	}
	for d := other.d; d != nil; d = d.Super {
		if d.Name == c.d.Name {
			return true
		}
	}
	if c.IsInterface() {
		t := other.d.Type
		return t.Implements(c.d.Type) || (t.Kind() != reflect.Interface && reflect.PointerTo(t).Implements(c.d.Type))
	}
	return false
}

// IsInstance reports whether obj is a non-nil instance of c.
func (c Class) IsInstance(obj Object) bool {
	if !c.IsValid() || isNil(obj) {
		return false
	}
	if c.IsInterface() {
		return reflect.TypeOf(obj).Implements(c.d.Type)
	}
	oc, err := c.rt.ClassOf(obj)
	if err != nil {
		return false
	}
	return c.IsAssignableFrom(oc)
}

// Cast checks that obj is an instance of c and returns it. A nil obj is
// returned as is.
func (c Class) Cast(obj Object) (Object, error) {
	if !c.IsValid() {
		return nil, ErrInvalidClass
	}
	if isNil(obj) {
		return nil, nil
	}
	if !c.IsInstance(obj) {
		return nil, errors.Wrapf(ErrClassCast, "cannot cast %s to %s", c.rt.className(obj), c.d.Name)
	}
	return obj, nil
}

// CastTo casts obj to c and then to the Go type T. A nil obj yields the
// zero T.
func CastTo[T any](c Class, obj Object) (T, error) {
	var zero T
	o, err := c.Cast(obj)
	if err != nil || o == nil {
		return zero, err
	}
	t, ok := o.(T)
	if !ok {
		return zero, errors.Wrapf(ErrClassCast, "%s is not a %v", c.Name(), reflect.TypeOf(&zero).Elem())
	}
	return t, nil
}

// NewInstance builds an instance with the first constructor that accepts args.
func (c Class) NewInstance(args ...any) (Object, error) {
	if !c.IsValid() {
		return nil, ErrInvalidClass
	}
	for _, ctor := range c.d.Constructors {
		if !ctor.Accepts(args) {
			continue
		}
		v, err := ctor.New(args...)
		if err != nil {
			return nil, errors.Wrapf(err, "%s constructor", c.d.Name)
		}
		obj, ok := v.(Object)
		if !ok {
			return nil, errors.Wrapf(ErrClassCast, "%s constructor returned %T", c.d.Name, v)
		}
		return obj, nil
	}
	return nil, errors.Wrapf(ErrNoSuchConstructor, "%s(%s)", c.d.Name, argTypes(args))
}

// Invoke calls the first overload of method name that accepts args,
// searching c and then its ancestors. recv must be an instance of c.
func (c Class) Invoke(name string, recv any, args ...any) (any, error) {
	if !c.IsValid() {
		return nil, ErrInvalidClass
	}
	if !c.receives(recv) {
		return nil, errors.Wrapf(ErrClassCast, "%T is not a receiver of %s.%s", recv, c.d.Name, name)
	}
	for d := c.d; d != nil; d = d.Super {
		for _, m := range d.Methods[name] {
			if m.Accepts(args) {
				return m.Fn(recv, args...)
			}
		}
	}
	return nil, errors.Wrapf(ErrNoSuchMethod, "%s.%s(%s)", c.d.Name, name, argTypes(args))
}

// receives reports whether recv can be passed as the receiver of c's methods.
// Objects are checked with IsInstance; other values must be of c's Go type.
func (c Class) receives(recv any) bool {
	if obj, ok := recv.(Object); ok {
		return c.IsInstance(obj)
	}
	if recv == nil {
		return false
	}
	t := reflect.TypeOf(recv)
	if t.Kind() == reflect.Pointer && t.Name() == "" {
		t = t.Elem()
	}
	return t == c.d.Type
}

// Methods lists the method names callable through Invoke, inherited ones
// included, in sorted order.
func (c Class) Methods() []string {
	if !c.IsValid() {
		return nil
	}
	seen := make(map[string]struct{})
	for d := c.d; d != nil; d = d.Super {
		for name := range d.Methods {
			seen[name] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func argTypes(args []any) string {
	parts := make([]string, len(args))
	for i, a := range args {
		if a == nil {
			parts[i] = "nil"
			continue
		}
		parts[i] = reflect.TypeOf(a).String()
	}
	return strings.Join(parts, ", ")
}
