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

// Package kthread is a minimal stand-in for the thread subsystem the
// permission core treats as an external collaborator: it
// assigns the small integer ids the permission bitmaps are indexed by,
// creates and destroys threads as kernel objects in their own right, and
// drives the inherit/purge hooks at fork and exit time.
//
// The id-recycling discipline here (never reuse an id until purge_thread has
// run against it) follows the same rule TaskSet applies to pids in
// pkg/sentry/kernel/threads.go: an id is a scarce, reused resource, and
// reusing one early reuses stale permission bits along with it — a security
// bug, not just a correctness one.
package kthread

import (
	"fmt"

	"github.com/nimbus-rtos/nimbus/pkg/kernel/kobject"
	"gvisor.dev/gvisor/pkg/sync"
)

// Thread is a live thread's pointer identity and small-integer id, the only
// two things the permission core ever needs to know about it.
type Thread struct {
	Ptr uintptr
	ID  int32
}

// Table assigns thread ids and mediates every thread-lifecycle hook into
// the permission core: creation (grants, like any other object), fork
// (inherit), and exit (purge, then id recycling).
type Table struct {
	core *kobject.Core

	mu      sync.Mutex
	live    map[int32]*Thread
	freeIDs []int32
	nextID  int32
}

// NewTable builds a thread table driving core.
func NewTable(core *kobject.Core) *Table {
	return &Table{
		core: core,
		live: make(map[int32]*Thread),
	}
}

// allocID returns a free id, preferring a recycled one (one whose prior
// purge_thread has already completed) over growing nextID.
func (t *Table) allocID() (int32, error) {
	if n := len(t.freeIDs); n > 0 {
		id := t.freeIDs[n-1]
		t.freeIDs = t.freeIDs[:n-1]
		return id, nil
	}
	if t.nextID >= kobject.MaxThreadBits {
		return 0, fmt.Errorf("kthread: thread id space exhausted (max %d)", kobject.MaxThreadBits)
	}
	id := t.nextID
	t.nextID++
	return id, nil
}

// Create allocates a new thread object, assigns it an id, and grants it to
// creatorPtr (the thread making the call) exactly as allocating any other
// kernel object would — Allocate always grants the current thread.
//
// creatorPtr may be 0 for the bootstrap thread created before any other
// thread exists (supervisor context, which Allocate's underlying Resolve
// simply fails to resolve to an id, making the grant step a no-op).
func (t *Table) Create(creatorPtr uintptr) (*Thread, error) {
	t.mu.Lock()
	id, err := t.allocID()
	t.mu.Unlock()
	if err != nil {
		return nil, err
	}

	ptr, err := t.core.Allocate(kobject.ObjectThread, creatorPtr)
	if err != nil {
		t.mu.Lock()
		t.freeIDs = append(t.freeIDs, id)
		t.mu.Unlock()
		return nil, err
	}

	desc := t.core.Resolve(ptr)
	desc.Thread.ID = id
	t.core.MarkInitialized(ptr)

	th := &Thread{Ptr: ptr, ID: id}
	t.mu.Lock()
	t.live[id] = th
	t.mu.Unlock()
	return th, nil
}

// Fork creates a child thread of parent and copies parent's grants to it
// (minus authority over parent's own thread object), matching
// _thread_perms_inherit / InheritTo.
func (t *Table) Fork(parent *Thread) (*Thread, error) {
	child, err := t.Create(parent.Ptr)
	if err != nil {
		return nil, err
	}
	t.core.InheritTo(parent.Ptr, child.Ptr)
	return child, nil
}

// Exit purges every grant th's id holds across the whole system, frees its
// thread object, and only then returns its id to the free list — the order
// invariant 3 requires, so a recycled id never inherits stale permission
// bits.
func (t *Table) Exit(th *Thread) {
	t.core.PurgeThread(th.Ptr)
	t.core.Free(th.Ptr)

	t.mu.Lock()
	delete(t.live, th.ID)
	t.freeIDs = append(t.freeIDs, th.ID)
	t.mu.Unlock()
}
