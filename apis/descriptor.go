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

package apis

import "reflect"

// TypeSpec is what a type publishes about itself at startup.
type TypeSpec struct {
	// Name is the qualified name, e.g. "java.lang.String".
	Name string
	// Type is the Go type backing the class. Pointer types are normalized
	// to their named element type.
	Type reflect.Type
	// Super names the parent class. It must already be registered.
	Super string
	// Description is free-form documentation shown by tooling.
	Description string
	// Constructors are tried in order by NewInstance.
	Constructors []Constructor
	// Methods may contain several overloads per name.
	Methods []Method
}

// TypeDescriptor is the registry-owned, singly allocated record of a
// registered type. Descriptors are immutable once published; callers must
// not modify them.
type TypeDescriptor struct {
	Name         string
	Type         reflect.Type
	Super        *TypeDescriptor
	Description  string
	Constructors []Constructor
	Methods      map[string][]Method
	// Seq is the registration sequence number within its registry.
	Seq uint64
}

// Spec rebuilds the TypeSpec d was registered from. Builders use it to
// migrate entries into a fresh registry.
func (d *TypeDescriptor) Spec() TypeSpec {
	spec := TypeSpec{
		Name:         d.Name,
		Type:         d.Type,
		Description:  d.Description,
		Constructors: d.Constructors,
	}
	if d.Super != nil {
		spec.Super = d.Super.Name
	}
	for _, overloads := range d.Methods {
		spec.Methods = append(spec.Methods, overloads...)
	}
	return spec
}

// Constructor is a reflective construction handle.
type Constructor struct {
	// Params are the accepted argument types, in order.
	Params []reflect.Type
	// New builds the instance.
	New func(args ...any) (any, error)
}

// Accepts reports whether args can be passed to c.
func (c Constructor) Accepts(args []any) bool {
	return accepts(c.Params, args)
}

// Method is a reflective method handle. Fn receives the receiver first.
type Method struct {
	Name   string
	Params []reflect.Type
	Fn     func(recv any, args ...any) (any, error)
}

// Accepts reports whether args can be passed to m.
func (m Method) Accepts(args []any) bool {
	return accepts(m.Params, args)
}

func accepts(params []reflect.Type, args []any) bool {
	if len(params) != len(args) {
		return false
	}
	for i, p := range params {
		if args[i] == nil {
			switch p.Kind() {
			case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
				continue
			}
			return false
		}
		if !reflect.TypeOf(args[i]).AssignableTo(p) {
			return false
		}
	}
	return true
}
