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

// ClassNamer lets a value report its qualified class name directly.
//
// # Overview
//
// ClassNamer is the zero-reflection fast path of name resolution. When a
// value implements it, the resolver uses ClassName() and does not consult
// the type index or derive a name from the Go type:
//
//	type Widget struct {
//	    lang.Base
//	}
//
//	func (*Widget) ClassName() string { return "app.Widget" }
//
// The name is a claim, not a binding. Class lookups by object accept it
// only when the class registered under that name is backed by the value's
// own Go type.
//
// # Contract
//
//   - The returned name MUST be a qualified name ("pkg.sub.Type").
//   - It MUST NOT change over the lifetime of the instance.
//   - It MUST be safe for concurrent calls and MUST NOT block.
//   - An empty string means "no opinion" and resolution falls through to
//     the next strategy.
type ClassNamer interface {
	// ClassName returns the qualified class name of the receiver.
	ClassName() string
}

// NamerFunc adapts a plain function to the ClassNamer interface.
//
//	var n ClassNamer = NamerFunc(func() string { return "app.Widget" })
type NamerFunc func() string

// ClassName implements ClassNamer for NamerFunc.
func (f NamerFunc) ClassName() string {
	return f()
}
