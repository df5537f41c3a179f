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

// Package objrt is a minimal managed-object runtime: objects with identity,
// per-object monitors supporting wait/notify, and reflective classes looked
// up by qualified name.
//
// The object model itself lives in package lang; package monitor provides
// the monitors. This package holds the process-wide default lang.Runtime
// and convenience wrappers around it:
//
//	type Account struct{ lang.Base }
//
//	objrt.Register(apis.TypeSpec{
//	    Name:  "bank.Account",
//	    Type:  reflect.TypeOf((*Account)(nil)),
//	    Super: lang.ObjectClass,
//	})
//
//	c, err := objrt.ForName("bank.Account")
//	same, _ := objrt.ClassOf(&Account{})
//	c.Equals(same) // true
//
// # Design
//
// The runtime is assembled from a read-mostly snapshot holding:
//
//   - Config: normalization and cache knobs, plus VerifyContracts
//     (see package config).
//
//   - Registry: qualified name to type descriptor. It starts out with
//     java.lang.Object, java.lang.String and java.lang.Class.
//
//   - Resolver: answers "what is the class name of this value?". The
//     default chain tries, in order:
//     1. common.ClassNamer on the value,
//     2. the Registry's type index,
//     3. a reflect-derived "pkg.Type" name, memoized in a bounded cache.
//     ClassOf accepts a resolved name only when its class is backed by the
//     value's own Go type.
//
//   - Builder: constructs Registry and Resolver for a Config, migrating
//     registered classes from the previous Registry.
//
//   - the lang.Runtime built over them, with its logger and finalizer hook.
//
// Readers load the snapshot through an atomic pointer and never lock.
// Writers (SetConfig, SetBuilder, SetExt, SetRegistry, SetResolver,
// SetLogger, SetFinalizerHook, SetAll and the pin helpers) take a build
// mutex, derive a new snapshot and publish it atomically, so concurrent
// callers always see a consistent runtime. Objects and classes obtained
// earlier stay usable; a Class keeps the runtime it came from.
//
// # Pinning
//
// SetRegistry and SetResolver install a layer and pin it: later calls to
// SetConfig, SetBuilder or SetExt leave a pinned layer alone until
// UnpinRegistry or UnpinResolver.
//
// # Extension value
//
// The snapshot carries an opaque ext value that is passed to the Builder on
// every rebuild, so custom builders can receive policy without changes here.
//
// # Lifecycle
//
// Go has no destructors. An owner that is done with an object calls
// Dispose, which runs its most-derived Finalize exactly once and closes its
// monitor; the memory is left to the garbage collector.
package objrt
