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

// Registry is the process-wide store of type descriptors keyed by
// qualified name. Reads must be safe under concurrent registration.
type Registry interface {
	// Register publishes a type. It is idempotent for an identical
	// (name, type) pair; conflicting re-registrations return an error.
	// The returned descriptor is owned by the registry.
	Register(spec TypeSpec) (*TypeDescriptor, error)
	// Lookup returns the descriptor registered under the exact name.
	Lookup(name string) (*TypeDescriptor, bool)
	// LookupType returns the descriptor whose normalized Go type is t's.
	LookupType(t reflect.Type) (*TypeDescriptor, bool)
	// Entries returns a snapshot in registration order.
	Entries() []*TypeDescriptor
	// Count returns the number of registered entries.
	Count() int
	// Reset clears all registered entries.
	Reset()
}
