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

package reflect

import (
	"path"
	"reflect"
	"strings"

	"github.com/pkg/errors"

	"dirpx.dev/objrt/apis"
	"dirpx.dev/objrt/config"
)

var (
	// ErrReflectNilType is returned when a nil reflect.Type is provided.
	ErrReflectNilType = errors.New("objrt(reflect): nil reflect.Type provided")
	// ErrReflectTypeNotNamed indicates that the provided type (after unwrapping
	// pointers) is not a named type (e.g., anonymous struct, func, interface{}).
	ErrReflectTypeNotNamed = errors.New("objrt(reflect): type is not named")
)

// Normalize unwraps pointers according to cfg.MaxUnwrap and returns the
// nearest named type, or an error if none is found.
//
// Objects are usually held as *T, so both T and *T normalize to T. Only
// pointers are unwrapped: a slice of objects is not an object.
//
// If MaxUnwrap <= 0, DefaultMaxUnwrap is used.
func Normalize(t reflect.Type, cfg apis.Config) (reflect.Type, error) {
	if t == nil {
		return nil, ErrReflectNilType
	}
	maxUnwrap := cfg.MaxUnwrap
	if maxUnwrap <= 0 {
		maxUnwrap = config.DefaultMaxUnwrap
	}

	for i := 0; t.Kind() == reflect.Pointer && t.Name() == "" && i < maxUnwrap; i++ {
		t = t.Elem()
	}
	if t.Name() != "" {
		return t, nil
	}
	return nil, errors.Wrapf(ErrReflectTypeNotNamed, "%v", t)
}

// DefaultName derives the qualified name a type gets when nobody registered
// one: "<last package path element>.<TypeName>", with generic instantiation
// parameters stripped. Builtin types (no package) yield "".
func DefaultName(t reflect.Type, cfg apis.Config) string {
	base, err := Normalize(t, cfg)
	if err != nil {
		return ""
	}
	p := base.PkgPath()
	if p == "" {
		return ""
	}
	return path.Base(p) + "." + stripTypeParams(base.Name())
}

// stripTypeParams removes generic type instantiation suffix: "T[int,string]" -> "T".
func stripTypeParams(s string) string {
	if i := strings.IndexByte(s, '['); i >= 0 {
		return s[:i]
	}
	return s
}
