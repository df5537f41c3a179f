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

package strategy

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrEmptyStrategy is returned when an empty token is parsed.
	ErrEmptyStrategy = errors.New("objrt(cache): empty strategy")
	// ErrUnknownStrategy is returned when a token names no known strategy.
	ErrUnknownStrategy = errors.New("objrt(cache): unknown strategy")
)

// Strategy selects the eviction policy of the class-name cache that sits
// in front of reflective name derivation.
//
// # Overview
//
// Deriving a qualified class name from a Go type walks the type and builds
// a string. The runtime memoizes the result per dynamic type; Strategy
// picks how that memo table is bounded. It is a plain integer, safe to
// copy and compare, and is carried inside apis.Config.
//
// # Values
//
//   - LRU: bounded table evicting the least recently used type.
//   - TwoQueue: 2Q table that keeps frequently used types apart from
//     recently seen ones, so a burst of one-off types cannot flush them.
//   - ARC: adaptive replacement, balancing recency and frequency on its own.
//   - None: no memoization; every lookup derives the name again.
//
// Every bounded policy is sized by Config.CacheSize. Existing values MUST
// NOT change meaning; new values may be appended.
type Strategy int

const (
	// LRU bounds the cache by CacheSize and evicts the entry that has not
	// been read or written for the longest time. It is the zero value and
	// therefore the default.
	LRU Strategy = iota

	// TwoQueue tracks recent and frequent entries in separate queues.
	TwoQueue

	// ARC adapts between recency and frequency as the workload shifts.
	ARC

	// None disables memoization. Reads always miss.
	None
)

// Supported reports whether cs is one of the declared values.
func (cs Strategy) Supported() bool {
	switch cs {
	case LRU, TwoQueue, ARC, None:
		return true
	default:
		return false
	}
}

// Bounded reports whether cs keeps a memo table sized by CacheSize.
func (cs Strategy) Bounded() bool {
	return cs.Supported() && cs != None
}

// String returns the stable token for cs ("LRU", "2Q", "ARC", "None"), or
// "Unknown(<n>)" for out-of-range values. It never panics.
func (cs Strategy) String() string {
	switch cs {
	case LRU:
		return "LRU"
	case TwoQueue:
		return "2Q"
	case ARC:
		return "ARC"
	case None:
		return "None"
	default:
		return fmt.Sprintf("Unknown(%d)", cs)
	}
}

// Parse converts a case-insensitive token into a Strategy. Surrounding
// whitespace is ignored. On failure it returns None and an error wrapping
// ErrEmptyStrategy or ErrUnknownStrategy.
//
//	s, err := strategy.Parse("lru")
func Parse(s string) (Strategy, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return None, ErrEmptyStrategy
	}

	switch strings.ToUpper(trimmed) {
	case "LRU":
		return LRU, nil
	case "2Q", "TWOQUEUE":
		return TwoQueue, nil
	case "ARC":
		return ARC, nil
	case "NONE":
		return None, nil
	default:
		return None, errors.Wrapf(ErrUnknownStrategy, "%q", s)
	}
}

// MustParse is like Parse but panics on invalid input.
// Use it for hard-coded values only.
func MustParse(s string) Strategy {
	strategy, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return strategy
}

// MarshalText implements encoding.TextMarshaler. Unknown values are an
// error rather than an "Unknown(...)" token so invalid states are never
// persisted into config files.
func (cs Strategy) MarshalText() ([]byte, error) {
	switch cs {
	case LRU, TwoQueue, ARC, None:
		return []byte(cs.String()), nil
	default:
		return nil, errors.Wrapf(ErrUnknownStrategy, "cannot marshal %d", int(cs))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler with the same rules
// as Parse. On failure *cs is left unchanged.
func (cs *Strategy) UnmarshalText(text []byte) error {
	value, err := Parse(string(text))
	if err != nil {
		return err
	}
	*cs = value
	return nil
}
