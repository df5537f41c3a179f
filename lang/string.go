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
	"sync/atomic"
	"unicode/utf16"
)

// String is an immutable character sequence with value equality.
// The zero value is the empty string.
type String struct {
	Base
	value string
	// hash caches HashCode: bit 32 set means computed.
	hash atomic.Uint64
}

// NewString returns a String holding a copy of s.
func NewString(s string) *String {
	return &String{value: s}
}

// Equals reports whether other is a String with the same characters.
func (s *String) Equals(other Object) bool {
	o, ok := other.(*String)
	if !ok || o == nil {
		return false
	}
	return s == o || s.value == o.value
}

// HashCode returns s[0]*31^(n-1) + s[1]*31^(n-2) + ... + s[n-1] over the
// UTF-16 code units of the string, with int32 overflow. The empty string
// hashes to 0. The result is computed once.
func (s *String) HashCode() int32 {
	if v := s.hash.Load(); v&computed != 0 {
		return int32(uint32(v))
	}
	var h int32
	for _, u := range utf16.Encode([]rune(s.value)) {
		h = 31*h + int32(u)
	}
	s.hash.Store(computed | uint64(uint32(h)))
	return h
}

const computed = 1 << 32

// String returns the characters as a Go string.
func (s *String) String() string { return s.value }

// Len returns the length in UTF-16 code units.
func (s *String) Len() int {
	n := 0
	for _, r := range s.value {
		n += utf16.RuneLen(r)
	}
	return n
}

// IsEmpty reports whether the string has no characters.
func (s *String) IsEmpty() bool { return s.value == "" }

// Concat returns a new String holding s followed by other.
// A nil or empty other yields s itself.
func (s *String) Concat(other *String) *String {
	if other == nil || other.value == "" {
		return s
	}
	return NewString(s.value + other.value)
}
