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

package lang_test

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"

	"dirpx.dev/objrt/apis"
	"dirpx.dev/objrt/builder"
	"dirpx.dev/objrt/config"
	"dirpx.dev/objrt/lang"
	uref "dirpx.dev/objrt/utils/reflect"
)

type Animal struct {
	lang.Base
	name string
}

type Dog struct{ Animal }

func (d *Dog) Run() string { return d.name + " runs" }

type Cat struct{ Animal }

type Runner interface {
	lang.Object
	Run() string
}

// Parrot names its own class.
type Parrot struct {
	lang.Base
	class string
}

func (p *Parrot) ClassName() string { return p.class }

func newRuntime(tb testing.TB, cfg apis.Config, opts ...lang.Option) *lang.Runtime {
	tb.Helper()
	b := builder.New()
	reg := b.BuildRegistry(cfg, nil, nil)
	rt := lang.NewRuntime(reg, b.BuildResolver(cfg, reg, nil, nil), cfg, opts...)
	if err := lang.RegisterBuiltins(rt); err != nil {
		tb.Fatalf("RegisterBuiltins: %v", err)
	}
	return rt
}

func newZoo(tb testing.TB, opts ...lang.Option) *lang.Runtime {
	tb.Helper()
	rt := newRuntime(tb, config.DefaultConfig(), opts...)
	for _, spec := range []apis.TypeSpec{
		{Name: "zoo.Animal", Type: reflect.TypeOf((*Animal)(nil)), Super: lang.ObjectClass},
		{Name: "zoo.Dog", Type: reflect.TypeOf((*Dog)(nil)), Super: "zoo.Animal"},
		{Name: "zoo.Cat", Type: reflect.TypeOf((*Cat)(nil)), Super: "zoo.Animal"},
		{Name: "zoo.Runner", Type: reflect.TypeOf((*Runner)(nil)).Elem(), Super: lang.ObjectClass},
		{Name: "zoo.Parrot", Type: reflect.TypeOf((*Parrot)(nil)), Super: "zoo.Animal"},
	} {
		if _, err := rt.Register(spec); err != nil {
			tb.Fatalf("Register(%s): %v", spec.Name, err)
		}
	}
	return rt
}

func mustForName(tb testing.TB, rt *lang.Runtime, name string) lang.Class {
	tb.Helper()
	c, err := rt.ForName(name)
	if err != nil {
		tb.Fatalf("ForName(%q): %v", name, err)
	}
	return c
}

func TestClassOf_RegisteredSubtype(t *testing.T) {
	rt := newZoo(t)
	var obj lang.Object = &Dog{Animal{name: "rex"}}

	c, err := rt.ClassOf(obj)
	if err != nil {
		t.Fatalf("ClassOf: %v", err)
	}
	if c.Name() != "zoo.Dog" {
		t.Fatalf("ClassOf(dog) = %s, want zoo.Dog", c.Name())
	}
	if a, _ := rt.ClassOf(&Animal{}); a.Name() != "zoo.Animal" {
		t.Fatalf("ClassOf(animal) = %s, want zoo.Animal", a.Name())
	}
	if s, _ := rt.ClassOf(lang.NewString("x")); s.Name() != lang.StringClass {
		t.Fatalf("ClassOf(string) = %s, want %s", s.Name(), lang.StringClass)
	}
}

// Impostor claims a registered name that belongs to another type.
type Impostor struct {
	lang.Base
	claim string
}

func (i *Impostor) ClassName() string { return i.claim }

// Real and Fake share a derived name once Real is registered under Fake's.
type Real struct{ lang.Base }

type Fake struct{ lang.Base }

type Box[T any] struct {
	lang.Base
	v T
}

func TestClassOf_ClassNamer(t *testing.T) {
	rt := newZoo(t)
	c, err := rt.ClassOf(&Parrot{class: "zoo.Parrot"})
	if err != nil || c.Name() != "zoo.Parrot" {
		t.Fatalf("ClassOf(parrot) = (%v, %v), want zoo.Parrot", c, err)
	}
	// the type index wins over the name a registered type reports
	parrot := &Parrot{class: "zoo.Dog"}
	if c, err := rt.ClassOf(parrot); err != nil || c.Name() != "zoo.Parrot" {
		t.Fatalf("ClassOf(parrot claiming zoo.Dog) = (%v, %v), want zoo.Parrot", c, err)
	}
	if _, err := mustForName(t, rt, "zoo.Dog").Cast(parrot); !errors.Is(err, lang.ErrClassCast) {
		t.Fatalf("Dog.Cast(parrot claiming zoo.Dog) = %v, want ErrClassCast", err)
	}
}

func TestClassOf_RejectsForeignNames(t *testing.T) {
	cfg := config.DefaultConfig()
	rt := newZoo(t)
	fakeName := uref.DefaultName(reflect.TypeOf(&Fake{}), cfg)
	if _, err := rt.Register(apis.TypeSpec{Name: fakeName, Type: reflect.TypeOf(&Real{}), Super: lang.ObjectClass}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	intBox, err := rt.Register(apis.TypeSpec{Name: "zoo.IntBox", Type: reflect.TypeOf(&Box[int]{}), Super: lang.ObjectClass})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	boxName := uref.DefaultName(reflect.TypeOf(&Box[string]{}), cfg)
	if _, err := rt.Register(apis.TypeSpec{Name: boxName, Type: reflect.TypeOf(&Box[int64]{}), Super: lang.ObjectClass}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	tests := []struct {
		name   string
		obj    lang.Object
		target string
	}{
		{"derived name of another type", &Fake{}, fakeName},
		{"generic instance sharing a derived name", &Box[string]{}, boxName},
		{"namer claiming a registered class", &Impostor{claim: "zoo.Dog"}, "zoo.Dog"},
		{"namer claiming an unknown class", &Impostor{claim: "zoo.Unknown"}, "zoo.Animal"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if c, err := rt.ClassOf(tt.obj); !errors.Is(err, lang.ErrClassNotFound) {
				t.Fatalf("ClassOf(%T) = (%v, %v), want ErrClassNotFound", tt.obj, c, err)
			}
			if _, err := mustForName(t, rt, tt.target).Cast(tt.obj); !errors.Is(err, lang.ErrClassCast) {
				t.Fatalf("%s.Cast(%T) = %v, want ErrClassCast", tt.target, tt.obj, err)
			}
		})
	}
	if _, err := intBox.Cast(&Box[string]{}); !errors.Is(err, lang.ErrClassCast) {
		t.Fatalf("IntBox.Cast(Box[string]) = %v, want ErrClassCast", err)
	}
	if got, err := intBox.Cast(&Box[int]{}); err != nil || got == nil {
		t.Fatalf("IntBox.Cast(Box[int]) = (%v, %v)", got, err)
	}
}

func TestClassOf_Unregistered(t *testing.T) {
	rt := newZoo(t)
	if _, err := rt.ClassOf(&Plain{}); !errors.Is(err, lang.ErrClassNotFound) {
		t.Fatalf("ClassOf(unregistered) = %v, want ErrClassNotFound", err)
	}
	if _, err := rt.ClassOf(nil); !errors.Is(err, lang.ErrNilObject) {
		t.Fatalf("ClassOf(nil) = %v, want ErrNilObject", err)
	}
}

func TestForName_NotRegistered(t *testing.T) {
	rt := newZoo(t)
	c, err := rt.ForName("not.Registered")
	if !errors.Is(err, lang.ErrClassNotFound) {
		t.Fatalf("ForName = %v, want ErrClassNotFound", err)
	}
	if c.IsValid() {
		t.Fatal("a failed ForName must not return a valid class")
	}
}

func TestForName_EqualsClassOf(t *testing.T) {
	rt := newZoo(t)
	byName := mustForName(t, rt, "zoo.Dog")
	byInstance, err := rt.ClassOf(&Dog{})
	if err != nil {
		t.Fatalf("ClassOf: %v", err)
	}
	if !byName.Equals(byInstance) || !byInstance.Equals(byName) {
		t.Fatalf("ForName and ClassOf disagree:\n%s", spew.Sdump(byName.Name(), byInstance.Name()))
	}
	if byName.Equals(mustForName(t, rt, "zoo.Cat")) {
		t.Fatal("distinct classes must not be equal")
	}
}

func TestClass_Equals_AcrossRuntimes(t *testing.T) {
	a := mustForName(t, newZoo(t), "zoo.Dog")
	b := mustForName(t, newZoo(t), "zoo.Dog")
	if !a.Equals(b) {
		t.Fatal("classes with the same name must be equal across runtimes")
	}
}

func TestClass_ZeroValue(t *testing.T) {
	var c lang.Class
	if c.IsValid() || c.Name() != "" || c.GoType() != nil {
		t.Fatal("zero Class must be invalid")
	}
	if c.Equals(c) {
		t.Fatal("zero Class must not equal anything, itself included")
	}
	if _, err := c.Cast(&Plain{}); !errors.Is(err, lang.ErrInvalidClass) {
		t.Fatalf("Cast = %v, want ErrInvalidClass", err)
	}
	if _, err := c.NewInstance(); !errors.Is(err, lang.ErrInvalidClass) {
		t.Fatalf("NewInstance = %v, want ErrInvalidClass", err)
	}
	if _, err := c.Invoke("hashCode", &Plain{}); !errors.Is(err, lang.ErrInvalidClass) {
		t.Fatalf("Invoke = %v, want ErrInvalidClass", err)
	}
	if c.String() != "class <invalid>" {
		t.Fatalf("String = %q", c.String())
	}
}

func TestClass_Names(t *testing.T) {
	rt := newZoo(t)
	dog := mustForName(t, rt, "zoo.Dog")

	if dog.SimpleName() != "Dog" || dog.PackageName() != "zoo" {
		t.Fatalf("SimpleName/PackageName = %q/%q", dog.SimpleName(), dog.PackageName())
	}
	if dog.String() != "class zoo.Dog" {
		t.Fatalf("String = %q", dog.String())
	}
	if r := mustForName(t, rt, "zoo.Runner"); !r.IsInterface() || r.String() != "interface zoo.Runner" {
		t.Fatalf("Runner: IsInterface=%t String=%q", r.IsInterface(), r.String())
	}
	if dog.GoType() != reflect.TypeOf((*Dog)(nil)).Elem() {
		t.Fatalf("GoType = %v", dog.GoType())
	}

	super, ok := dog.Super()
	if !ok || super.Name() != "zoo.Animal" {
		t.Fatalf("Super(Dog) = (%v, %t)", super, ok)
	}
	if _, ok := mustForName(t, rt, lang.ObjectClass).Super(); ok {
		t.Fatal("java.lang.Object has no super class")
	}
}

func TestClass_IsAssignableFrom(t *testing.T) {
	rt := newZoo(t)
	object := mustForName(t, rt, lang.ObjectClass)
	animal := mustForName(t, rt, "zoo.Animal")
	dog := mustForName(t, rt, "zoo.Dog")
	cat := mustForName(t, rt, "zoo.Cat")
	runner := mustForName(t, rt, "zoo.Runner")

	tests := []struct {
		name       string
		to, from   lang.Class
		assignable bool
	}{
		{"self", dog, dog, true},
		{"parent from child", animal, dog, true},
		{"root from grandchild", object, dog, true},
		{"child from parent", dog, animal, false},
		{"siblings", dog, cat, false},
		{"interface from implementor", runner, dog, true},
		{"interface from non-implementor", runner, cat, false},
		{"invalid", dog, lang.Class{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.to.IsAssignableFrom(tt.from); got != tt.assignable {
				t.Fatalf("%v.IsAssignableFrom(%v) = %t, want %t", tt.to, tt.from, got, tt.assignable)
			}
		})
	}
}

func TestClass_Cast(t *testing.T) {
	rt := newZoo(t)
	dogClass := mustForName(t, rt, "zoo.Dog")
	animalClass := mustForName(t, rt, "zoo.Animal")
	runnerClass := mustForName(t, rt, "zoo.Runner")
	objectClass := mustForName(t, rt, lang.ObjectClass)
	dog, cat := &Dog{Animal{name: "rex"}}, &Cat{}

	if _, err := dogClass.Cast(cat); !errors.Is(err, lang.ErrClassCast) {
		t.Fatalf("Dog.Cast(cat) = %v, want ErrClassCast", err)
	}
	if _, err := dogClass.Cast(lang.NewString("rex")); !errors.Is(err, lang.ErrClassCast) {
		t.Fatalf("Dog.Cast(string) = %v, want ErrClassCast", err)
	}
	if _, err := dogClass.Cast(&Plain{}); !errors.Is(err, lang.ErrClassCast) {
		t.Fatalf("Dog.Cast(unregistered) = %v, want ErrClassCast", err)
	}
	for _, c := range []lang.Class{dogClass, animalClass, runnerClass, objectClass} {
		got, err := c.Cast(dog)
		if err != nil || got != lang.Object(dog) {
			t.Fatalf("%v.Cast(dog) = (%v, %v)", c, got, err)
		}
	}
	if _, err := runnerClass.Cast(cat); !errors.Is(err, lang.ErrClassCast) {
		t.Fatalf("Runner.Cast(cat) = %v, want ErrClassCast", err)
	}
	if got, err := dogClass.Cast(nil); got != nil || err != nil {
		t.Fatalf("Cast(nil) = (%v, %v), want (nil, nil)", got, err)
	}
}

func TestCastTo(t *testing.T) {
	rt := newZoo(t)
	animalClass := mustForName(t, rt, "zoo.Animal")
	dog := &Dog{Animal{name: "rex"}}

	d, err := lang.CastTo[*Dog](animalClass, dog)
	if err != nil || d != dog {
		t.Fatalf("CastTo[*Dog] = (%v, %v)", d, err)
	}
	r, err := lang.CastTo[Runner](animalClass, dog)
	if err != nil || r.Run() != "rex runs" {
		t.Fatalf("CastTo[Runner] = (%v, %v)", r, err)
	}
	if _, err := lang.CastTo[*Cat](animalClass, dog); !errors.Is(err, lang.ErrClassCast) {
		t.Fatalf("CastTo[*Cat](dog) = %v, want ErrClassCast", err)
	}
	if c, err := lang.CastTo[*Cat](animalClass, nil); c != nil || err != nil {
		t.Fatalf("CastTo(nil) = (%v, %v), want (nil, nil)", c, err)
	}
}

func TestClass_NewInstance(t *testing.T) {
	rt := newZoo(t)
	str := mustForName(t, rt, lang.StringClass)

	tests := []struct {
		name    string
		args    []any
		want    string
		wantErr error
	}{
		{"no args", nil, "", nil},
		{"go string", []any{"abc"}, "abc", nil},
		{"copy", []any{lang.NewString("copy")}, "copy", nil},
		{"nil copy", []any{nil}, "", lang.ErrNilObject},
		{"wrong type", []any{42}, "", lang.ErrNoSuchConstructor},
		{"too many", []any{"a", "b"}, "", lang.ErrNoSuchConstructor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj, err := str.NewInstance(tt.args...)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("NewInstance = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewInstance: %v", err)
			}
			s, ok := obj.(*lang.String)
			if !ok || s.String() != tt.want {
				t.Fatalf("NewInstance = %#v, want %q", obj, tt.want)
			}
		})
	}

	if _, err := mustForName(t, rt, "zoo.Dog").NewInstance(); !errors.Is(err, lang.ErrNoSuchConstructor) {
		t.Fatalf("Dog.NewInstance() = %v, want ErrNoSuchConstructor", err)
	}
}

func TestClass_Invoke(t *testing.T) {
	rt := newZoo(t)
	str := mustForName(t, rt, lang.StringClass)
	s := lang.NewString("héllo")

	tests := []struct {
		name   string
		method string
		args   []any
		want   any
	}{
		{"length", "length", nil, 5},
		{"isEmpty", "isEmpty", nil, false},
		{"toString", "toString", nil, "héllo"},
		{"charAt", "charAt", []any{1}, uint16('é')},
		{"inherited hashCode dispatches", "hashCode", nil, s.HashCode()},
		{"inherited equals", "equals", []any{lang.NewString("héllo")}, true},
		{"equals nil", "equals", []any{nil}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := str.Invoke(tt.method, s, tt.args...)
			if err != nil {
				t.Fatalf("Invoke(%s): %v", tt.method, err)
			}
			if got != tt.want {
				t.Fatalf("Invoke(%s) = %#v, want %#v", tt.method, got, tt.want)
			}
		})
	}

	for _, arg := range []any{" world", lang.NewString(" world")} {
		got, err := str.Invoke("concat", s, arg)
		if err != nil {
			t.Fatalf("concat(%T): %v", arg, err)
		}
		if got.(*lang.String).String() != "héllo world" {
			t.Fatalf("concat(%T) = %v", arg, got)
		}
	}
}

func TestClass_InvokeErrors(t *testing.T) {
	rt := newZoo(t)
	str := mustForName(t, rt, lang.StringClass)
	s := lang.NewString("abc")

	if _, err := str.Invoke("missing", s); !errors.Is(err, lang.ErrNoSuchMethod) {
		t.Fatalf("missing method = %v, want ErrNoSuchMethod", err)
	}
	if _, err := str.Invoke("length", s, 1); !errors.Is(err, lang.ErrNoSuchMethod) {
		t.Fatalf("wrong arity = %v, want ErrNoSuchMethod", err)
	}
	if _, err := str.Invoke("length", &Cat{}); !errors.Is(err, lang.ErrClassCast) {
		t.Fatalf("foreign receiver = %v, want ErrClassCast", err)
	}
	if _, err := str.Invoke("charAt", s, 3); err == nil {
		t.Fatal("charAt out of range must fail")
	}
}

func TestClass_InvokeMonitorMethods(t *testing.T) {
	rt := newZoo(t)
	str := mustForName(t, rt, lang.StringClass)
	s := lang.NewString("guarded")

	if _, err := str.Invoke("notify", s, context.Background()); !errors.Is(err, lang.ErrIllegalMonitorState) {
		t.Fatalf("notify without hold = %v, want ErrIllegalMonitorState", err)
	}
	err := lang.Synchronized(context.Background(), s, func(held context.Context) error {
		if _, err := str.Invoke("wait", s, held, 10*time.Millisecond); err != nil {
			return err
		}
		_, err := str.Invoke("notifyAll", s, held)
		return err
	})
	if err != nil {
		t.Fatalf("monitor methods under hold: %v", err)
	}

	for _, tc := range []struct {
		method string
		args   []any
	}{
		{"notify", []any{nil}},
		{"notifyAll", []any{nil}},
		{"wait", []any{nil}},
		{"wait", []any{nil, time.Millisecond}},
	} {
		if _, err := str.Invoke(tc.method, s, tc.args...); !errors.Is(err, lang.ErrIllegalMonitorState) {
			t.Fatalf("%s with a nil context = %v, want ErrIllegalMonitorState", tc.method, err)
		}
	}
}

func TestClass_InvokeRuntimeMethods(t *testing.T) {
	rt := newZoo(t)
	object := mustForName(t, rt, lang.ObjectClass)
	dog := &Dog{Animal{name: "rex"}}

	got, err := object.Invoke("getClass", dog)
	if err != nil {
		t.Fatalf("getClass: %v", err)
	}
	if c, ok := got.(lang.Class); !ok || !c.Equals(mustForName(t, rt, "zoo.Dog")) {
		t.Fatalf("getClass = %s, want class zoo.Dog", spew.Sdump(got))
	}
	if _, err := object.Invoke("getClass", &Plain{}); !errors.Is(err, lang.ErrClassNotFound) {
		t.Fatalf("getClass(unregistered) = %v, want ErrClassNotFound", err)
	}

	str, err := object.Invoke("toString", dog)
	if err != nil || str != rt.ToString(dog) {
		t.Fatalf("toString = (%v, %v), want %q", str, err, rt.ToString(dog))
	}
	if str, _ := object.Invoke("toString", lang.NewString("hi")); str != "hi" {
		t.Fatalf("toString(String) = %v, want hi", str)
	}

	var log []string
	res := &Pooled{Resource{log: &log}}
	for i := 0; i < 2; i++ {
		if _, err := object.Invoke("finalize", res); err != nil {
			t.Fatalf("finalize #%d: %v", i+1, err)
		}
	}
	if len(log) != 2 || !res.Disposed() {
		t.Fatalf("finalize ran as %v (disposed=%t), want one pass of [pooled resource]", log, res.Disposed())
	}
	if _, err := object.Invoke("finalize", &failing{err: errors.New("stuck")}); !errors.Is(err, lang.ErrFinalizer) {
		t.Fatalf("finalize(failing) = %v, want ErrFinalizer", err)
	}
}

func TestClass_InvalidAfterReset(t *testing.T) {
	rt := newZoo(t)
	dog := mustForName(t, rt, "zoo.Dog")
	if !dog.IsValid() {
		t.Fatal("freshly resolved class must be valid")
	}

	rt.Registry().Reset()
	if dog.IsValid() {
		t.Fatal("class must be invalid once its registry entry is gone")
	}
	if dog.Name() != "zoo.Dog" {
		t.Fatalf("Name after Reset = %q, want zoo.Dog", dog.Name())
	}
	if _, err := dog.Cast(&Dog{}); !errors.Is(err, lang.ErrInvalidClass) {
		t.Fatalf("Cast after Reset = %v, want ErrInvalidClass", err)
	}
	if _, err := dog.NewInstance(); !errors.Is(err, lang.ErrInvalidClass) {
		t.Fatalf("NewInstance after Reset = %v, want ErrInvalidClass", err)
	}
	if _, err := dog.Invoke("hashCode", &Dog{}); !errors.Is(err, lang.ErrInvalidClass) {
		t.Fatalf("Invoke after Reset = %v, want ErrInvalidClass", err)
	}
	if dog.Equals(dog) || dog.IsInstance(&Dog{}) {
		t.Fatal("an invalid class must not compare equal or accept instances")
	}

	// re-registering the name yields a new class; the old handle stays invalid
	again, err := rt.Register(apis.TypeSpec{Name: "zoo.Dog", Type: reflect.TypeOf((*Dog)(nil))})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if dog.IsValid() || !again.IsValid() {
		t.Fatalf("after re-registration: old valid=%t, new valid=%t", dog.IsValid(), again.IsValid())
	}
}

func TestClass_Methods(t *testing.T) {
	rt := newZoo(t)
	got := mustForName(t, rt, lang.StringClass).Methods()
	want := []string{"charAt", "concat", "equals", "finalize", "getClass", "hashCode", "isEmpty", "length", "notify", "notifyAll", "toString", "wait"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Methods mismatch:\n got: %s\nwant: %s", spew.Sdump(got), spew.Sdump(want))
	}
}

func TestClassClass_Invoke(t *testing.T) {
	rt := newZoo(t)
	classClass := mustForName(t, rt, lang.ClassClass)
	dog := mustForName(t, rt, "zoo.Dog")

	name, err := classClass.Invoke("getName", dog)
	if err != nil || name != "zoo.Dog" {
		t.Fatalf("getName = (%v, %v)", name, err)
	}
	simple, err := classClass.Invoke("getSimpleName", dog)
	if err != nil || simple != "Dog" {
		t.Fatalf("getSimpleName = (%v, %v)", simple, err)
	}
	is, err := classClass.Invoke("isInstance", dog, &Dog{})
	if err != nil || is != true {
		t.Fatalf("isInstance = (%v, %v)", is, err)
	}
	if _, err := classClass.Invoke("hashCode", dog); !errors.Is(err, lang.ErrClassCast) {
		t.Fatalf("Object method on a Class receiver = %v, want ErrClassCast", err)
	}
}

func TestClassClass_InvokePointerReceiver(t *testing.T) {
	rt := newZoo(t)
	classClass := mustForName(t, rt, lang.ClassClass)
	str := mustForName(t, rt, lang.StringClass)

	tests := []struct {
		method string
		args   []any
		want   any
	}{
		{"getName", nil, lang.StringClass},
		{"getSimpleName", nil, "String"},
		{"isInstance", []any{lang.NewString("x")}, true},
		{"isInstance", []any{&Dog{}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			got, err := classClass.Invoke(tt.method, &str, tt.args...)
			if err != nil || got != tt.want {
				t.Fatalf("Invoke(%s, *Class) = (%v, %v), want %v", tt.method, got, err, tt.want)
			}
		})
	}

	var nilClass *lang.Class
	if _, err := classClass.Invoke("getName", nilClass); !errors.Is(err, lang.ErrNilObject) {
		t.Fatalf("getName on a nil *Class = %v, want ErrNilObject", err)
	}
}
