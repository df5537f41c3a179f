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
	"context"
	"reflect"
	"time"
	"unicode/utf16"

	"github.com/pkg/errors"

	"dirpx.dev/objrt/apis"
)

// Qualified names of the builtin classes.
const (
	ObjectClass = "java.lang.Object"
	StringClass = "java.lang.String"
	ClassClass  = "java.lang.Class"
)

var (
	objectType    = reflect.TypeOf((*Object)(nil)).Elem()
	stringType    = reflect.TypeOf((*String)(nil)).Elem()
	stringPtrType = reflect.TypeOf((*String)(nil))
	classType     = reflect.TypeOf(Class{})
	contextType   = reflect.TypeOf((*context.Context)(nil)).Elem()
	durationType  = reflect.TypeOf(time.Duration(0))
	goStringType  = reflect.TypeOf("")
	intType       = reflect.TypeOf(0)
)

// RegisterBuiltins registers java.lang.Object, java.lang.String and
// java.lang.Class in rt's registry, with the runtime-backed Object methods
// bound to rt. It is idempotent.
func RegisterBuiltins(rt *Runtime) error {
	return RegisterBuiltinsWith(rt.reg, func() *Runtime { return rt })
}

// RegisterBuiltinsWith registers the builtin classes in reg. The Object
// methods getClass, toString and finalize run against the runtime current
// returns at call time, so a registry that outlives its runtime stays
// usable. It is idempotent; the first registration's handles are kept.
func RegisterBuiltinsWith(reg apis.Registry, current func() *Runtime) error {
	for _, spec := range []apis.TypeSpec{objectSpec(current), stringSpec(), classSpec()} {
		if _, err := reg.Register(spec); err != nil {
			return errors.WithMessage(err, "objrt(lang): builtins")
		}
	}
	return nil
}

func objectSpec(current func() *Runtime) apis.TypeSpec {
	return apis.TypeSpec{
		Name:        ObjectClass,
		Type:        objectType,
		Description: "Root of the class hierarchy.",
		Methods: []apis.Method{
			{Name: "equals", Params: []reflect.Type{objectType}, Fn: objectMethod(func(o Object, args []any) (any, error) {
				other, _ := args[0].(Object)
				return Equal(o, other), nil
			})},
			{Name: "hashCode", Fn: objectMethod(func(o Object, _ []any) (any, error) {
				return o.HashCode(), nil
			})},
			{Name: "getClass", Fn: runtimeMethod(current, func(rt *Runtime, o Object) (any, error) {
				c, err := rt.ClassOf(o)
				if err != nil {
					return nil, err
				}
				return c, nil
			})},
			{Name: "toString", Fn: runtimeMethod(current, func(rt *Runtime, o Object) (any, error) {
				return rt.ToString(o), nil
			})},
			// finalize goes through Dispose, so Finalize still runs at most once.
			{Name: "finalize", Fn: runtimeMethod(current, func(rt *Runtime, o Object) (any, error) {
				return nil, rt.Dispose(o)
			})},
			{Name: "wait", Params: []reflect.Type{contextType}, Fn: objectMethod(func(o Object, args []any) (any, error) {
				ctx, err := holdArg(args[0])
				if err != nil {
					return nil, err
				}
				return nil, o.Monitor().Wait(ctx, 0)
			})},
			{Name: "wait", Params: []reflect.Type{contextType, durationType}, Fn: objectMethod(func(o Object, args []any) (any, error) {
				ctx, err := holdArg(args[0])
				if err != nil {
					return nil, err
				}
				d, _ := args[1].(time.Duration)
				return nil, o.Monitor().Wait(ctx, d)
			})},
			{Name: "notify", Params: []reflect.Type{contextType}, Fn: objectMethod(func(o Object, args []any) (any, error) {
				ctx, err := holdArg(args[0])
				if err != nil {
					return nil, err
				}
				return nil, o.Monitor().Notify(ctx)
			})},
			{Name: "notifyAll", Params: []reflect.Type{contextType}, Fn: objectMethod(func(o Object, args []any) (any, error) {
				ctx, err := holdArg(args[0])
				if err != nil {
					return nil, err
				}
				return nil, o.Monitor().NotifyAll(ctx)
			})},
		},
	}
}

// holdArg extracts the context carrying a monitor hold. A nil context
// cannot carry one.
func holdArg(arg any) (context.Context, error) {
	ctx, ok := arg.(context.Context)
	if !ok || ctx == nil {
		return nil, errors.Wrap(ErrIllegalMonitorState, "nil context holds no monitor")
	}
	return ctx, nil
}

// runtimeMethod adapts fn to an Object method handle that needs the runtime.
func runtimeMethod(current func() *Runtime, fn func(rt *Runtime, o Object) (any, error)) func(any, ...any) (any, error) {
	return objectMethod(func(o Object, _ []any) (any, error) {
		var rt *Runtime
		if current != nil {
			rt = current()
		}
		if rt == nil {
			return nil, errors.Wrap(ErrInvalidClass, "no runtime bound")
		}
		return fn(rt, o)
	})
}

// objectMethod adapts fn to a method handle whose receiver must be an Object.
func objectMethod(fn func(o Object, args []any) (any, error)) func(any, ...any) (any, error) {
	return func(recv any, args ...any) (any, error) {
		o, ok := recv.(Object)
		if !ok {
			return nil, errors.Wrapf(ErrClassCast, "%T is not a %s", recv, ObjectClass)
		}
		return fn(o, args)
	}
}

func stringSpec() apis.TypeSpec {
	return apis.TypeSpec{
		Name:        StringClass,
		Type:        stringType,
		Super:       ObjectClass,
		Description: "Immutable character sequence with value equality.",
		Constructors: []apis.Constructor{
			{New: func(...any) (any, error) { return NewString(""), nil }},
			{Params: []reflect.Type{goStringType}, New: func(args ...any) (any, error) {
				return NewString(args[0].(string)), nil
			}},
			{Params: []reflect.Type{stringPtrType}, New: func(args ...any) (any, error) {
				src, _ := args[0].(*String)
				if src == nil {
					return nil, ErrNilObject
				}
				return NewString(src.value), nil
			}},
		},
		Methods: []apis.Method{
			{Name: "toString", Fn: stringMethod(func(s *String, _ []any) any { return s.value })},
			{Name: "length", Fn: stringMethod(func(s *String, _ []any) any { return s.Len() })},
			{Name: "isEmpty", Fn: stringMethod(func(s *String, _ []any) any { return s.IsEmpty() })},
			{Name: "concat", Params: []reflect.Type{stringPtrType}, Fn: stringMethod(func(s *String, args []any) any {
				other, _ := args[0].(*String)
				return s.Concat(other)
			})},
			{Name: "concat", Params: []reflect.Type{goStringType}, Fn: stringMethod(func(s *String, args []any) any {
				return s.Concat(NewString(args[0].(string)))
			})},
			{Name: "charAt", Params: []reflect.Type{intType}, Fn: func(recv any, args ...any) (any, error) {
				s, ok := recv.(*String)
				if !ok {
					return nil, errors.Wrapf(ErrClassCast, "%T is not a %s", recv, StringClass)
				}
				units := utf16.Encode([]rune(s.value))
				i := args[0].(int)
				if i < 0 || i >= len(units) {
					return nil, errors.Errorf("objrt(lang): index %d out of range [0,%d)", i, len(units))
				}
				return units[i], nil
			}},
		},
	}
}

// stringMethod adapts fn to a method handle whose receiver must be a *String.
func stringMethod(fn func(s *String, args []any) any) func(any, ...any) (any, error) {
	return func(recv any, args ...any) (any, error) {
		s, ok := recv.(*String)
		if !ok {
			return nil, errors.Wrapf(ErrClassCast, "%T is not a %s", recv, StringClass)
		}
		return fn(s, args), nil
	}
}

func classSpec() apis.TypeSpec {
	return apis.TypeSpec{
		Name:        ClassClass,
		Type:        classType,
		Super:       ObjectClass,
		Description: "Runtime handle of a registered class.",
		Methods: []apis.Method{
			{Name: "getName", Fn: classMethod(func(c Class, _ []any) any { return c.Name() })},
			{Name: "getSimpleName", Fn: classMethod(func(c Class, _ []any) any { return c.SimpleName() })},
			{Name: "isInstance", Params: []reflect.Type{objectType}, Fn: classMethod(func(c Class, args []any) any {
				obj, _ := args[0].(Object)
				return c.IsInstance(obj)
			})},
		},
	}
}

// classMethod adapts fn to a method handle whose receiver must be a Class
// or a non-nil *Class.
func classMethod(fn func(c Class, args []any) any) func(any, ...any) (any, error) {
	return func(recv any, args ...any) (any, error) {
		switch c := recv.(type) {
		case Class:
			return fn(c, args), nil
		case *Class:
			if c == nil {
				return nil, ErrNilObject
			}
			return fn(*c, args), nil
		default:
			return nil, errors.Wrapf(ErrClassCast, "%T is not a %s", recv, ClassClass)
		}
	}
}
