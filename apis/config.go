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

import (
	"dirpx.dev/objrt/rxapi/cache/strategy"
)

// Config carries read-only runtime knobs.
// It is passed by value and should be treated as immutable by implementations.
type Config struct {
	// MaxUnwrap limits pointer unwrapping when normalizing the dynamic type
	// of an object to its named type. Acts as a guard against **...*T chains.
	MaxUnwrap int

	// Cache selects the eviction policy of the reflective class-name cache.
	Cache strategy.Strategy

	// CacheSize bounds the class-name cache when Cache is LRU.
	CacheSize int

	// VerifyContracts makes runtime equality checks also verify the
	// equals/hashCode contract and log violations.
	VerifyContracts bool
}
