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
	"fmt"

	"github.com/pkg/errors"

	"dirpx.dev/objrt/monitor"
)

var (
	// ErrClassNotFound is returned when no class is registered under a name,
	// or when an object's dynamic type resolves to an unregistered name.
	ErrClassNotFound = errors.New("objrt(lang): class not found")
	// ErrClassCast is returned when an object is not an instance of the
	// target class.
	ErrClassCast = errors.New("objrt(lang): class cast")
	// ErrInvalidClass is returned by operations on the zero Class.
	ErrInvalidClass = errors.New("objrt(lang): invalid class handle")
	// ErrNilObject is returned when an operation needs an object but got nil.
	ErrNilObject = errors.New("objrt(lang): nil object")
	// ErrNoSuchMethod is returned by Invoke when no overload accepts the arguments.
	ErrNoSuchMethod = errors.New("objrt(lang): no such method")
	// ErrNoSuchConstructor is returned by NewInstance when no constructor
	// accepts the arguments.
	ErrNoSuchConstructor = errors.New("objrt(lang): no such constructor")
	// ErrFinalizer marks failures raised while finalizing an object.
	ErrFinalizer = errors.New("objrt(lang): finalizer failed")
	// ErrContractViolation is reported when Equals and HashCode disagree.
	ErrContractViolation = errors.New("objrt(lang): equals/hashCode contract violated")

	// ErrIllegalMonitorState is monitor.ErrIllegalMonitorState.
	ErrIllegalMonitorState = monitor.ErrIllegalMonitorState
)

// FinalizerError describes a Finalize call that returned an error or
// panicked. It matches ErrFinalizer and, when set, Err under errors.Is.
type FinalizerError struct {
	// Class is the qualified class name when disposed through a Runtime and
	// registered, otherwise the Go type.
	Class string
	// Identity is the identity of the finalized object.
	Identity uint64
	// Err is the error returned by Finalize. Nil when Finalize panicked.
	Err error
	// Panic is the recovered panic value, if any.
	Panic any
}

func (e *FinalizerError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%v: %s@%d panicked: %v", ErrFinalizer, e.Class, e.Identity, e.Panic)
	}
	return fmt.Sprintf("%v: %s@%d: %v", ErrFinalizer, e.Class, e.Identity, e.Err)
}

// Unwrap exposes both ErrFinalizer and the underlying error.
func (e *FinalizerError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrFinalizer}
	}
	return []error{ErrFinalizer, e.Err}
}
