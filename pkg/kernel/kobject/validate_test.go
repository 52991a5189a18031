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

import "testing"

func newValidateFixture(t *testing.T) (*Resolver, *Engine, uintptr, *Descriptor) {
	t.Helper()
	objAddr := newAddr()
	static := NewStaticDirectory([]StaticEntry{{Name: objAddr, Type: ObjectSemaphore}})
	r := NewResolver(static)
	e := NewEngine(r)
	return r, e, objAddr, r.Resolve(objAddr)
}

func TestValidateWrongKindRejectedFirst(t *testing.T) {
	_, e, objAddr, desc := newValidateFixture(t)
	// Not granted and uninitialized too, so if the short-circuit order were
	// wrong this would come back as a different error.
	if err := validateDescriptor(desc, ObjectMutex, RequireInit, NoThreadID, e); err != ErrNotAnObject {
		t.Fatalf("validateDescriptor wrong kind = %v, want ErrNotAnObject", err)
	}
	_ = objAddr
}

func TestValidateUnresolvedIsNotAnObject(t *testing.T) {
	_, e, _, _ := newValidateFixture(t)
	if err := validateDescriptor(nil, ObjectSemaphore, InitAny, NoThreadID, e); err != ErrNotAnObject {
		t.Fatalf("validateDescriptor(nil) = %v, want ErrNotAnObject", err)
	}
}

func TestValidatePermissionCheckedBeforeInitState(t *testing.T) {
	_, e, _, desc := newValidateFixture(t)
	// desc is right-kind, ungranted, and uninitialized: permission must be
	// reported before the init-state mismatch is ever reached.
	if err := validateDescriptor(desc, ObjectSemaphore, RequireInit, 0, e); err != ErrNoPermission {
		t.Fatalf("validateDescriptor ungranted = %v, want ErrNoPermission", err)
	}
}

func TestValidateRequireInit(t *testing.T) {
	r, e, objAddr, desc := newValidateFixture(t)
	e.GrantPublic(desc)

	if err := validateDescriptor(desc, ObjectSemaphore, RequireInit, NoThreadID, e); err != ErrNotInitialized {
		t.Fatalf("validateDescriptor uninitialized = %v, want ErrNotInitialized", err)
	}
	markInitialized(r, objAddr)
	if err := validateDescriptor(desc, ObjectSemaphore, RequireInit, NoThreadID, e); err != nil {
		t.Fatalf("validateDescriptor initialized = %v, want nil", err)
	}
}

func TestValidateRequireUninit(t *testing.T) {
	r, e, objAddr, desc := newValidateFixture(t)
	e.GrantPublic(desc)

	if err := validateDescriptor(desc, ObjectSemaphore, RequireUninit, NoThreadID, e); err != nil {
		t.Fatalf("validateDescriptor on fresh object = %v, want nil", err)
	}
	markInitialized(r, objAddr)
	if err := validateDescriptor(desc, ObjectSemaphore, RequireUninit, NoThreadID, e); err != ErrAlreadyInitialized {
		t.Fatalf("validateDescriptor on initialized object = %v, want ErrAlreadyInitialized", err)
	}
	markUninitialized(r, objAddr)
	if err := validateDescriptor(desc, ObjectSemaphore, RequireUninit, NoThreadID, e); err != nil {
		t.Fatalf("validateDescriptor after mark_uninitialized = %v, want nil", err)
	}
}

func TestMarkInitializedOnUnresolvedIsNoop(t *testing.T) {
	r, _, _, _ := newValidateFixture(t)
	// Must not panic on an address nothing resolves to.
	markInitialized(r, newAddr())
	markUninitialized(r, newAddr())
}
