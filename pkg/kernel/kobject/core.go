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

import (
	"unsafe"

	"gvisor.dev/gvisor/pkg/log"
)

// Allocator is the heap allocator treated here as an external
// collaborator. Core.Allocate calls it to obtain backing storage for a
// dynamic object's inline payload; it is never invoked while the registry
// lock is held: no lock of the core is held across the allocator call.
type Allocator interface {
	// Alloc returns size bytes of zeroed storage, or ok=false on exhaustion.
	Alloc(size int) (buf []byte, ok bool)
}

type heapAllocator struct{}

func (heapAllocator) Alloc(size int) ([]byte, bool) {
	return make([]byte, size), true
}

// Core ties together the components into the runtime-exposed surface
// (Allocate, Free, Validate, the init-state marks, grant/revoke/inherit/purge,
// and ReportFailure): it's the facade a syscall handler or kernel object
// constructor/destructor actually calls.
type Core struct {
	static   *StaticDirectory
	resolver *Resolver
	engine   *Engine
	alloc    Allocator
}

// NewCore builds a Core over the given static directory, using the standard
// heap allocator for dynamic objects.
func NewCore(static *StaticDirectory) *Core {
	return NewCoreWithAllocator(static, heapAllocator{})
}

// NewCoreWithAllocator is NewCore with an injectable Allocator, for tests
// that need to exercise the allocation-failure path deterministically.
func NewCoreWithAllocator(static *StaticDirectory, alloc Allocator) *Core {
	resolver := NewResolver(static)
	return &Core{
		static:   static,
		resolver: resolver,
		engine:   NewEngine(resolver),
		alloc:    alloc,
	}
}

// Resolver exposes the underlying resolver, mainly for callers (like package
// kthread) that need to read back a freshly-allocated descriptor to fill in
// kind-specific metadata the core doesn't know about (a thread's id, for
// instance).
func (c *Core) Resolver() *Resolver { return c.resolver }

// Resolve implements resolve(ptr) for callers that need the descriptor
// itself rather than a validation verdict.
func (c *Core) Resolve(ptr uintptr) *Descriptor {
	return c.resolver.Resolve(ptr)
}

// allocatable reports whether otype may be passed to Allocate. ObjectAny is
// a wildcard, never a concrete kind; ObjectStackElement has no independent
// size; stacks and stack elements are
// rejected explicitly here rather than silently asserting, leaving them to
// a specialized allocator out of scope for this core.
func allocatable(otype ObjectType) bool {
	return otype > ObjectAny && otype < numObjectTypes &&
		otype != ObjectStackElement && otype != ObjectStack
}

// Allocate implements allocate(type): it allocates a dynamic object
// of the given kind, grants it to the thread identified by currentThreadPtr,
// inserts it into the registry, and returns the payload pointer.
//
// Returns ErrNotAnObject for an invalid or unsupported kind (in debug builds
// the assertion fires first and panics), and an error, never a panic, for
// allocator exhaustion: out-of-memory is a logged warning, not an oops.
func (c *Core) Allocate(otype ObjectType, currentThreadPtr uintptr) (uintptr, error) {
	if !allocatable(otype) {
		assertf(false, "bad object type requested: %v", otype)
		return 0, ErrNotAnObject
	}
	buf, ok := c.alloc.Alloc(SizeOf(otype))
	if !ok {
		log.Warningf("kobject: could not allocate kernel object of type %s", KindName(otype))
		return 0, errAllocFailed
	}
	obj := &dynamicObject{payload: buf}
	name := payloadAddr(obj)
	obj.desc = Descriptor{Name: name, Type: otype}

	c.engine.SetID(&obj.desc, c.engine.threadID(currentThreadPtr))
	c.resolver.dynamic.insert(obj)
	return name, nil
}

// payloadAddr derives the stable identity used as a dynamic object's Name:
// the address of its inline payload's first byte. The slice is allocated
// once in Allocate and never resized, so this address is stable for the
// object's lifetime.
func payloadAddr(obj *dynamicObject) uintptr {
	return uintptr(unsafe.Pointer(&obj.payload[0]))
}

// Free implements free(payload_ptr): supervisor-only, removes the object
// from the registry and releases its storage. No-op if ptr isn't a
// registered dynamic object (including: it's a static object, or was
// already freed).
func (c *Core) Free(ptr uintptr) {
	c.resolver.dynamic.remove(ptr)
}

// Validate implements validate(payload_ptr, expected_kind, init_check) from
// resolving ptr and the calling thread's id before delegating to the
// component-level decision procedure.
func (c *Core) Validate(ptr uintptr, expectedKind ObjectType, initCheck InitCheck, currentThreadPtr uintptr) error {
	desc := c.resolver.Resolve(ptr)
	currentID := c.engine.threadID(currentThreadPtr)
	return validateDescriptor(desc, expectedKind, initCheck, currentID, c.engine)
}

// MarkInitialized implements mark_initialized(payload_ptr).
func (c *Core) MarkInitialized(ptr uintptr) { markInitialized(c.resolver, ptr) }

// MarkUninitialized implements mark_uninitialized(payload_ptr).
func (c *Core) MarkUninitialized(ptr uintptr) { markUninitialized(c.resolver, ptr) }

// Grant implements grant(payload_ptr, thread_ptr).
func (c *Core) Grant(ptr, threadPtr uintptr) {
	if desc := c.resolver.Resolve(ptr); desc != nil {
		c.engine.Set(desc, threadPtr)
	}
}

// Revoke implements revoke(payload_ptr, thread_ptr).
func (c *Core) Revoke(ptr, threadPtr uintptr) {
	if desc := c.resolver.Resolve(ptr); desc != nil {
		c.engine.Clear(desc, threadPtr)
	}
}

// GrantPublic implements grant_public(payload_ptr).
func (c *Core) GrantPublic(ptr uintptr) {
	if desc := c.resolver.Resolve(ptr); desc != nil {
		c.engine.GrantPublic(desc)
	}
}

// InheritTo implements inherit_to(parent_thread_ptr, child_thread_ptr).
func (c *Core) InheritTo(parentPtr, childPtr uintptr) {
	c.engine.Inherit(parentPtr, childPtr)
}

// PurgeThread implements purge_thread(thread_ptr).
func (c *Core) PurgeThread(threadPtr uintptr) {
	c.engine.AllClear(threadPtr)
}

// ReportFailure renders and logs a diagnostic for a failed Validate call,
// implementing the report() half of the "validate, then report on failure"
// pattern every syscall handler follows. cur identifies the thread
// that made the failing call.
func (c *Core) ReportFailure(err error, ptr uintptr, expectedKind ObjectType, cur CurrentThread) string {
	desc := c.resolver.Resolve(ptr)
	return Report(err, ptr, desc, expectedKind, cur)
}
