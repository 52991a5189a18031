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

// Engine is the permission engine. Thread identity here is
// always the small integer id carried by the thread's own object descriptor;
// Set/Clear/AllClear/Inherit take the thread's pointer identity and resolve
// it to that id themselves, exactly as _thread_perms_set &c. do via
// thread_index_get in the original.
type Engine struct {
	resolver *Resolver
}

// NewEngine builds a permission engine over resolver. resolver must outlive
// the Engine; ForEach-based operations (AllClear, Inherit) need it to find
// every live descriptor, static and dynamic.
func NewEngine(resolver *Resolver) *Engine {
	return &Engine{resolver: resolver}
}

func (e *Engine) threadID(threadPtr uintptr) int32 {
	return threadIndex(e.resolver.Resolve(threadPtr))
}

// Set grants desc to the thread identified by threadPtr. No-op if threadPtr
// doesn't resolve to a live thread object.
func (e *Engine) Set(desc *Descriptor, threadPtr uintptr) {
	desc.perms.set(e.threadID(threadPtr))
}

// SetID grants desc directly to thread id, doing no pointer resolution of
// its own. Allocate uses it with the id it has already looked up for the
// allocating thread via threadID.
func (e *Engine) SetID(desc *Descriptor, threadID int32) {
	desc.perms.set(threadID)
}

// Clear revokes desc from the thread identified by threadPtr. Idempotent:
// clearing an already-clear bit is a no-op, so revoke(); revoke() behaves
// exactly like a single revoke().
func (e *Engine) Clear(desc *Descriptor, threadPtr uintptr) {
	desc.perms.clear(e.threadID(threadPtr))
}

// Test reports whether the thread with the given id may use desc: true if
// desc is public, or if that thread's bit is set. A sentinel id always
// yields false.
func (e *Engine) Test(desc *Descriptor, currentThreadID int32) bool {
	if desc.Public() {
		return true
	}
	return desc.perms.test(currentThreadID)
}

// AllClear clears the bit for the thread identified by threadPtr on every
// descriptor in the system, static and dynamic. Called on thread exit,
// before the id may be recycled (invariant 3).
func (e *Engine) AllClear(threadPtr uintptr) {
	id := e.threadID(threadPtr)
	if id == NoThreadID {
		return
	}
	e.resolver.ForEach(func(d *Descriptor) {
		d.perms.clear(id)
	})
}

// Inherit copies parent's grants to child: for every descriptor on which
// parent's bit is set, except parent's own thread descriptor, child's bit is
// set too. The exclusion keeps a forked child from automatically gaining
// authority over the thread object that created it.
//
// The walk holds the dynamic registry lock for its duration (via
// Resolver.ForEach -> dynamicRegistry.walk), so it observes a single
// consistent snapshot; any object registered after the walk starts already
// carries its creator's grant, which makes the race benign.
func (e *Engine) Inherit(parentPtr, childPtr uintptr) {
	parentDesc := e.resolver.Resolve(parentPtr)
	childDesc := e.resolver.Resolve(childPtr)
	parentID := threadIndex(parentDesc)
	childID := threadIndex(childDesc)
	if parentID == NoThreadID || childID == NoThreadID {
		return
	}
	e.resolver.ForEach(func(d *Descriptor) {
		if d == parentDesc {
			return
		}
		if d.perms.test(parentID) {
			d.perms.set(childID)
		}
	})
}

// GrantPublic sets FlagPublic on desc. There is no corresponding revoke: once
// an object is public, Test always returns true for it regardless of perms
// (there is no revoke-public).
func (e *Engine) GrantPublic(desc *Descriptor) {
	desc.setFlag(FlagPublic)
}
