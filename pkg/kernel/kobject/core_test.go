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

// exhaustedAllocator always fails, for deterministically exercising
// Allocate's out-of-memory path.
type exhaustedAllocator struct{}

func (exhaustedAllocator) Alloc(int) ([]byte, bool) { return nil, false }

func TestCoreAllocateGrantsCreatorAndResolves(t *testing.T) {
	threadAddr := newAddr()
	static := NewStaticDirectory([]StaticEntry{{Name: threadAddr, Type: ObjectThread}})
	c := NewCore(static)
	c.Resolver().static.Find(threadAddr).Thread.ID = 5

	payload, err := c.Allocate(ObjectSemaphore, threadAddr)
	if err != nil {
		t.Fatalf("Allocate = %v, want nil error", err)
	}
	if err := c.Validate(payload, ObjectSemaphore, InitAny, threadAddr); err != nil {
		t.Fatalf("Validate of freshly allocated object by its creator = %v, want nil", err)
	}
	if desc := c.Resolve(payload); desc == nil || desc.Type != ObjectSemaphore {
		t.Fatalf("Resolve(payload) = %+v, want a semaphore descriptor", desc)
	}
}

func TestCoreAllocateRejectsWildcardAndStackKinds(t *testing.T) {
	c := NewCore(NewStaticDirectory(nil))
	for _, bad := range []ObjectType{ObjectAny, ObjectStack, ObjectStackElement, numObjectTypes} {
		if _, err := c.Allocate(bad, newAddr()); err != ErrNotAnObject {
			t.Fatalf("Allocate(%v) = %v, want ErrNotAnObject", bad, err)
		}
	}
}

func TestCoreAllocateExhaustion(t *testing.T) {
	c := NewCoreWithAllocator(NewStaticDirectory(nil), exhaustedAllocator{})
	if _, err := c.Allocate(ObjectTimer, newAddr()); err != errAllocFailed {
		t.Fatalf("Allocate under exhaustion = %v, want errAllocFailed", err)
	}
}

func TestCoreFreeThenValidateFails(t *testing.T) {
	c := NewCore(NewStaticDirectory(nil))
	payload, err := c.Allocate(ObjectMutex, newAddr())
	if err != nil {
		t.Fatalf("Allocate = %v", err)
	}
	c.Free(payload)
	if err := c.Validate(payload, ObjectMutex, InitAny, newAddr()); err != ErrNotAnObject {
		t.Fatalf("Validate after Free = %v, want ErrNotAnObject", err)
	}
}

func TestCoreFreeOnUnregisteredIsNoop(t *testing.T) {
	c := NewCore(NewStaticDirectory(nil))
	c.Free(newAddr()) // must not panic
}

// TestCoreResolverCompleteness checks that every pointer
// Allocate returns must resolve, and every static declaration must resolve,
// until explicitly freed.
func TestCoreResolverCompleteness(t *testing.T) {
	staticAddr := newAddr()
	static := NewStaticDirectory([]StaticEntry{{Name: staticAddr, Type: ObjectDevice}})
	c := NewCore(static)

	var payloads []uintptr
	for i := 0; i < 8; i++ {
		p, err := c.Allocate(ObjectTimer, newAddr())
		if err != nil {
			t.Fatalf("Allocate #%d = %v", i, err)
		}
		payloads = append(payloads, p)
	}

	if c.Resolve(staticAddr) == nil {
		t.Fatal("static declaration stopped resolving")
	}
	for i, p := range payloads {
		if c.Resolve(p) == nil {
			t.Fatalf("allocated payload #%d stopped resolving before Free", i)
		}
	}
}

func TestCoreGrantRevokeGrantPublicOnUnresolvedAreNoops(t *testing.T) {
	c := NewCore(NewStaticDirectory(nil))
	ptr := newAddr()
	c.Grant(ptr, newAddr())
	c.Revoke(ptr, newAddr())
	c.GrantPublic(ptr)
}

func TestCoreMarkInitializedCycle(t *testing.T) {
	c := NewCore(NewStaticDirectory(nil))
	payload, err := c.Allocate(ObjectAlert, newAddr())
	if err != nil {
		t.Fatalf("Allocate = %v", err)
	}
	c.GrantPublic(payload)
	unresolvedThread := newAddr()

	if err := c.Validate(payload, ObjectAlert, RequireInit, unresolvedThread); err != ErrNotInitialized {
		t.Fatalf("Validate RequireInit before MarkInitialized = %v, want ErrNotInitialized", err)
	}
	c.MarkInitialized(payload)
	if err := c.Validate(payload, ObjectAlert, RequireInit, unresolvedThread); err != nil {
		t.Fatalf("Validate RequireInit after MarkInitialized = %v, want nil", err)
	}
	c.MarkUninitialized(payload)
	if err := c.Validate(payload, ObjectAlert, RequireInit, unresolvedThread); err != ErrNotInitialized {
		t.Fatalf("Validate RequireInit after MarkUninitialized = %v, want ErrNotInitialized", err)
	}
}

func TestCoreReportFailureRendersDiagnostic(t *testing.T) {
	c := NewCore(NewStaticDirectory(nil))
	payload, err := c.Allocate(ObjectSemaphore, newAddr())
	if err != nil {
		t.Fatalf("Allocate = %v", err)
	}
	curPtr := newAddr()
	got := c.ReportFailure(ErrNoPermission, payload, ObjectSemaphore, CurrentThread{Ptr: curPtr, ID: NoThreadID})
	if got == "" {
		t.Fatal("ReportFailure returned an empty diagnostic")
	}
}
