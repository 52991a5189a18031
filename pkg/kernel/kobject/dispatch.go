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

import "gvisor.dev/gvisor/pkg/log"

// Oops is the architecture-specific trap treated here as an external
// collaborator: it terminates the
// offending thread and never returns. The default just panics, which is
// enough to make BadID/Unimplemented non-returning in a test binary; a real
// kernel build would replace this with its trap entry.
var Oops func(reason string) = func(reason string) { panic(reason) }

// BadID is the handler installed in the dispatch table's catch-all slot for
// syscall ids with no matching handler.
func BadID(id uint32) {
	log.Warningf("Bad system call id %d invoked", id)
	Oops("bad system call id")
}

// Unimplemented is the handler installed for syscall ids that are valid but
// not backed by an implementation.
func Unimplemented() {
	log.Warningf("Unimplemented system call")
	Oops("unimplemented system call")
}
