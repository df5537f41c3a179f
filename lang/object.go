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

// Package lang is the managed object model: identity objects with monitors
// and an explicit end of life, the String value object, and reflective
// Class handles resolved through a Runtime.
//
// Types take part by embedding Base and registering a TypeSpec:
//
//	type Account struct {
//	    lang.Base
//	    balance int64
//	}
//
//	rt.Register(apis.TypeSpec{
//	    Name:  "bank.Account",
//	    Type:  reflect.TypeOf((*Account)(nil)),
//	    Super: lang.ObjectClass,
//	})
//
// after which rt.ClassOf(acct) and rt.ForName("bank.Account") return equal
// classes.
package lang

import (
	"context"
	"reflect"
	"sync"
	"sync/atomic"

	"dirpx.dev/objrt/monitor"
	"dirpx.dev/objrt/rxapi/common"
)

// Object is the root of the managed object model: every instance has an
// identity, a monitor, value equality with a matching hash, and an
// explicit end of life.
//
// Implementations embed Base, which supplies identity semantics for every
// method; types override Equals, HashCode and Finalize as needed. Objects
// are used through pointers and must not be copied after first use.
type Object interface {
	common.Identifier

	// Equals reports whether other is "equal to" the receiver. It must be
	// reflexive and symmetric, and consistent with HashCode.
	Equals(other Object) bool
	// HashCode returns a hash consistent with Equals.
	HashCode() int32
	// Monitor returns the object's monitor.
	Monitor() *monitor.Monitor
	// Finalize runs once when the object is disposed.
	Finalize() error
	// Disposed reports whether the object has been disposed.
	Disposed() bool

	base() *Base
}

// nextIdentity hands out process-unique identities; zero means "unassigned".
var nextIdentity atomic.Uint64

// Base is the embeddable core of every Object. Its zero value is ready to use.
type Base struct {
	id       atomic.Uint64
	disposed atomic.Bool
	once     sync.Once
	mon      monitor.Monitor
}

// Identity returns the object's identity, assigning it on first use.
func (b *Base) Identity() uint64 {
	if id := b.id.Load(); id != 0 {
		return id
	}
	id := nextIdentity.Add(1)
	if b.id.CompareAndSwap(0, id) {
		return id
	}
	return b.id.Load()
}

// Equals reports identity: whether other is this very object.
func (b *Base) Equals(other Object) bool {
	if isNil(other) {
		return false
	}
	return other.base() == b
}

// HashCode folds the identity into 32 bits.
func (b *Base) HashCode() int32 {
	id := b.Identity()
	return int32(id ^ id>>32)
}

// Monitor returns the object's monitor.
func (b *Base) Monitor() *monitor.Monitor { return &b.mon }

// Finalize does nothing.
func (b *Base) Finalize() error { return nil }

// Disposed reports whether Dispose has been called for the object.
func (b *Base) Disposed() bool { return b.disposed.Load() }

func (b *Base) base() *Base { return b }

// FinalizerHook observes finalizer failures. err is a *FinalizerError.
type FinalizerHook func(obj Object, err error)

// Dispose ends the life of obj: Finalize runs exactly once through the
// interface, so the most-derived override is the one called, and then the
// monitor is closed, waking any waiters with monitor.ErrClosed.
//
// A failing or panicking Finalize is reported to hook (when non-nil) and
// returned; the error names the class by its Go type. Disposing an already
// disposed object is a no-op, and a call racing the first one returns only
// after that call's Finalize has finished.
func Dispose(obj Object, hook FinalizerHook) error {
	_, err := dispose(obj, hook, typeName)
	return err
}

// dispose reports whether this call was the one that finalized obj.
func dispose(obj Object, hook FinalizerHook, name func(Object) string) (ran bool, err error) {
	if isNil(obj) {
		return false, nil
	}
	b := obj.base()
	b.once.Do(func() {
		ran = true
		b.disposed.Store(true)
		defer b.mon.Close()

		err = finalize(obj, name)
		if err != nil && hook != nil {
			hook(obj, err)
		}
	})
	return ran, err
}

func finalize(obj Object, name func(Object) string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &FinalizerError{Class: name(obj), Identity: obj.Identity(), Panic: r}
		}
	}()
	if ferr := obj.Finalize(); ferr != nil {
		return &FinalizerError{Class: name(obj), Identity: obj.Identity(), Err: ferr}
	}
	return nil
}

// Synchronized runs fn while holding obj's monitor.
func Synchronized(ctx context.Context, obj Object, fn func(context.Context) error) error {
	if isNil(obj) {
		return ErrNilObject
	}
	return obj.Monitor().Synchronized(ctx, fn)
}

// isNil reports whether obj is nil or a typed nil pointer.
func isNil(obj Object) bool {
	if obj == nil {
		return true
	}
	v := reflect.ValueOf(obj)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

func typeName(obj Object) string {
	return reflect.TypeOf(obj).String()
}
