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

package common

// Identifier exposes the opaque per-instance identity of a runtime object.
//
// # Semantics
//
// Identity is the address-equivalent of a managed object: it is assigned
// once, stays stable for the object's whole lifetime, and is never shared
// by two live instances. Two references compare identical exactly when
// their identities are equal.
//
// Logging layers use it as the "identity" field so events touching the
// same instance can be correlated.
//
// # Contract
//
//   - Identity MUST be non-zero once observed and MUST NOT change.
//   - Identity MUST be safe for concurrent calls and MUST NOT block.
type Identifier interface {
	// Identity returns the instance identity.
	Identity() uint64
}
