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

//go:build debug

// Debug builds (-tags debug) get the assertion checks: invalid
// type passed to Allocate and a bit set beyond MaxThreadBits. The dynamic
// registry's tree structure is not checked. Assertions are fatal, mirroring __ASSERT in
// the original — release builds (assert_release.go) compile them out.

package kobject

import "fmt"

func assertf(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf("kobject assertion failed: "+format, args...))
	}
}

const assertionsEnabled = true
