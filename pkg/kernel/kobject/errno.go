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

// Errno is the five-value validation error taxonomy: the only non-nil
// values Validate ever returns. It implements error so callers can use
// errors.Is against the exported sentinels below.
type Errno int

const (
	// errOK is never returned; Validate returns a nil error on success.
	errOK Errno = iota
	errNotAnObject
	errNoPermission
	errNotInitialized
	errAlreadyInitialized
)

var errnoText = [...]string{
	errOK:                 "ok",
	errNotAnObject:        "not a valid kernel object",
	errNoPermission:       "no permission",
	errNotInitialized:     "used before initialization",
	errAlreadyInitialized: "already initialized",
}

func (e Errno) Error() string {
	if int(e) < 0 || int(e) >= len(errnoText) {
		return "unknown kobject error"
	}
	return errnoText[e]
}

// The four error values validate may return, exported for errors.Is
// comparisons by syscall handlers.
var (
	// ErrNotAnObject means the pointer does not resolve, or it resolved
	// but to the wrong kind.
	ErrNotAnObject error = errNotAnObject
	// ErrNoPermission means the object resolved to the right kind, but the
	// current thread has not been granted access.
	ErrNoPermission error = errNoPermission
	// ErrNotInitialized means the object resolved, the caller has
	// permission, but initialization was required and hasn't happened.
	ErrNotInitialized error = errNotInitialized
	// ErrAlreadyInitialized means the object resolved, the caller has
	// permission, but the caller required the object to be uninitialized
	// and it already is.
	ErrAlreadyInitialized error = errAlreadyInitialized
)

// errAllocFailed is returned by Allocate on allocator exhaustion. It is
// deliberately not part of the Errno taxonomy Validate returns: allocation
// failure is a distinct, logged-warning condition, never surfaced
// through the validate() decision procedure.
type allocError struct{}

func (allocError) Error() string { return "kobject: allocator exhausted" }

var errAllocFailed error = allocError{}
