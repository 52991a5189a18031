// Copyright 2018 The gVisor Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package kobject

import "unsafe"

// newAddr returns a fresh, unique address, standing in for a distinct
// statically-declared object. Each call escapes a new backing byte, so no
// two calls ever return the same value.
func newAddr() uintptr {
	b := new(byte)
	return uintptr(unsafe.Pointer(b))
}
