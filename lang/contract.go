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

import "github.com/pkg/errors"

// Equal is a nil-safe a.Equals(b): two nils are equal, a nil and a
// non-nil object are not.
func Equal(a, b Object) bool {
	if isNil(a) || isNil(b) {
		return isNil(a) && isNil(b)
	}
	return a.Equals(b)
}

// VerifyContract checks the pair against the equals/hashCode contract:
// Equals must be reflexive and symmetric, and equal objects must share a
// hash code. Nil operands are not checked.
func VerifyContract(a, b Object) error {
	if isNil(a) || isNil(b) {
		return nil
	}
	if !a.Equals(a) {
		return errors.Wrapf(ErrContractViolation, "%T is not equal to itself", a)
	}
	ab, ba := a.Equals(b), b.Equals(a)
	if ab != ba {
		return errors.Wrapf(ErrContractViolation, "asymmetric equals: %T->%T is %t, %T->%T is %t", a, b, ab, b, a, ba)
	}
	if ab && a.HashCode() != b.HashCode() {
		return errors.Wrapf(ErrContractViolation, "equal objects hash differently: %d != %d", a.HashCode(), b.HashCode())
	}
	return nil
}
