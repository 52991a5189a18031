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
	"gvisor.dev/gvisor/pkg/atomicbitops"
)

// ObjectType is the closed enumeration of kernel object kinds known to the
// permission core. The set is fixed; adding a kind means regenerating the
// static table and the size/name tables below, exactly as gen_kobject_list.py
// would for the C original.
type ObjectType int32

// ObjectAny is the wildcard kind accepted by callers that don't care about a
// specific object kind (e.g. a generic "does this pointer resolve to
// anything I granted" check).
const (
	ObjectAny ObjectType = iota
	ObjectSemaphore
	ObjectMutex
	ObjectPipe
	ObjectMsgQ
	ObjectStack
	ObjectStackElement
	ObjectThread
	ObjectTimer
	ObjectAlert
	ObjectDevice
	numObjectTypes
)

// sizeOf is the per-kind payload size table a build-time generator would
// emit. Kinds that aren't listed explicitly fall back to the device payload
// size, mirroring obj_size_get's default arm in the original C allocator.
var sizeOf = [numObjectTypes]int{
	ObjectSemaphore: 32,
	ObjectMutex:     24,
	ObjectPipe:      64,
	ObjectMsgQ:      48,
	ObjectStack:     16,
	ObjectThread:    128,
	ObjectTimer:     40,
	ObjectAlert:     16,
	ObjectDevice:    24,
}

// SizeOf returns the inline payload size for a dynamically-allocated object
// of the given kind. Unlisted device-like kinds resolve to the device
// payload size; ObjectAny and ObjectStackElement have no size and are
// rejected by Allocate before this table is ever consulted.
func SizeOf(t ObjectType) int {
	if int(t) < 0 || int(t) >= len(sizeOf) {
		return sizeOf[ObjectDevice]
	}
	if t == ObjectSemaphore || t == ObjectMutex || t == ObjectPipe || t == ObjectMsgQ ||
		t == ObjectStack || t == ObjectThread || t == ObjectTimer || t == ObjectAlert || t == ObjectDevice {
		return sizeOf[t]
	}
	return sizeOf[ObjectDevice]
}

// Flags holds the bits carried in a Descriptor. It is read and written
// atomically since it can be tested from interrupt context concurrently with
// a supervisor thread marking an object initialized.
type Flags = atomicbitops.Uint32

const (
	// FlagInitialized is set only after the object's kind-specific
	// constructor has completed and cleared only after its destructor; it
	// is the sole source of truth for "already initialized".
	FlagInitialized uint32 = 1 << iota

	// FlagPublic makes Test return true for every caller regardless of
	// perms. There is deliberately no way to clear it once set.
	FlagPublic
)

// NoThreadID is the sentinel thread identifier: "no id assigned" (a
// supervisor-only or pre-creation thread). threadIndex also returns it for a
// descriptor that isn't a thread object; such a descriptor's Thread.ID keeps
// its zero value and is never consulted.
const NoThreadID int32 = -1

// ThreadData is the thread-specific slice of a Descriptor's otherwise opaque
// per-kind union. Only ObjectThread descriptors populate it; everything else
// in the union is out of scope for this core (the kind-specific metadata
// belongs to the owning subsystem, not the permission core).
type ThreadData struct {
	// ID is the small integer identity used to index every permission
	// bitmap in the system. Assigned by the thread subsystem at creation
	// time, in 0..MaxThreadBits.
	ID int32
}

// Descriptor is the metadata record for one kernel object, static or
// dynamic. Its Type field is immutable after construction (invariant 2);
// Flags and Perms are mutated concurrently with validation and so use
// word-atomic operations exclusively.
type Descriptor struct {
	// Name is the object's identity as seen by user code: for a static
	// object, the address of the object itself; for a dynamic object, the
	// address of the payload immediately following its descriptor.
	Name uintptr

	// Type is the object's kind. Never changes after the descriptor is
	// constructed.
	Type ObjectType

	flags Flags

	perms permSet

	// Thread carries the thread-specific union member. Only meaningful
	// when Type == ObjectThread; zero value (ID == 0) otherwise, which is
	// why permission lookups always check Type before reading it.
	Thread ThreadData
}

func newDescriptor(name uintptr, typ ObjectType) *Descriptor {
	return &Descriptor{Name: name, Type: typ}
}

// Initialized reports whether FlagInitialized is set.
func (d *Descriptor) Initialized() bool {
	return d.flags.Load()&FlagInitialized != 0
}

// Public reports whether FlagPublic is set.
func (d *Descriptor) Public() bool {
	return d.flags.Load()&FlagPublic != 0
}

func (d *Descriptor) setFlag(bit uint32) {
	for {
		old := d.flags.Load()
		if old&bit != 0 {
			return
		}
		if d.flags.CompareAndSwap(old, old|bit) {
			return
		}
	}
}

func (d *Descriptor) clearFlag(bit uint32) {
	for {
		old := d.flags.Load()
		if old&bit == 0 {
			return
		}
		if d.flags.CompareAndSwap(old, old&^bit) {
			return
		}
	}
}

// threadIndex returns the small integer id carried by a thread object's
// descriptor, or NoThreadID if d is nil or not a thread descriptor.
func threadIndex(d *Descriptor) int32 {
	if d == nil || d.Type != ObjectThread {
		return NoThreadID
	}
	return d.Thread.ID
}
