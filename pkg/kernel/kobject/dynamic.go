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

//go:build !nodynamic

// This file implements the dynamic object registry. The DYNAMIC_OBJECTS
// configuration switch is realized with the nodynamic build tag: building
// with -tags nodynamic drops this file (and Allocate and
// Free with it) entirely, leaving Resolve backed by the static directory
// alone. See dynamic_disabled.go for that side.

package kobject

import (
	"github.com/google/btree"
	"gvisor.dev/gvisor/pkg/sync"
)

// dynamicObject is the heap record backing one runtime-allocated kernel
// object: a descriptor plus its trailing inline payload. The
// pointer-arithmetic trick (payload address minus a fixed header size yields
// the tree-node address) asks for either explicit fixed layout or an
// allocator-side lookup that trades the offset trick for a plain keyed
// lookup. We take the latter: the btree below is keyed directly by the
// payload's address, so dynamicObject need not expose any particular field
// order to satisfy the registry — it's still an ordered tree keyed by
// pointer value, just without unsafe offset arithmetic to get there.
type dynamicObject struct {
	desc    Descriptor
	payload []byte
}

// registryItem is the value stored in the ordered tree, keyed by the
// payload's uintptr identity.
type registryItem struct {
	key uintptr
	obj *dynamicObject
}

func lessItem(a, b registryItem) bool { return a.key < b.key }

// dynamicRegistry is the ordered tree keyed by pointer value, protected by a
// single short critical section. All mutation (insert/remove) and
// traversal (walk, and therefore inherit/allClear) run with mu held; a
// concurrent remove must not free memory a find_by_payload caller is still
// inspecting.
type dynamicRegistry struct {
	mu   sync.Mutex
	tree *btree.BTreeG[registryItem]
}

func newDynamicRegistry() *dynamicRegistry {
	return &dynamicRegistry{tree: btree.NewG(32, lessItem)}
}

func (r *dynamicRegistry) insert(obj *dynamicObject) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tree.ReplaceOrInsert(registryItem{key: obj.desc.Name, obj: obj})
}

func (r *dynamicRegistry) remove(ptr uintptr) *dynamicObject {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.tree.Delete(registryItem{key: ptr})
	if !ok {
		return nil
	}
	return item.obj
}

// findByPayload computes the membership test directly against ptr: unlike
// the C original, there is no raw offset subtraction to validate, since we
// never trust an arbitrary uintptr as a pointer into Go-managed memory
// without going through this keyed lookup first.
func (r *dynamicRegistry) findByPayload(ptr uintptr) *dynamicObject {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.tree.Get(registryItem{key: ptr})
	if !ok {
		return nil
	}
	return item.obj
}

// walk applies visit to every registered descriptor in ascending pointer
// order, holding the registry lock for the duration so that inherit and
// allClear see a consistent snapshot.
func (r *dynamicRegistry) walk(visit func(*Descriptor)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tree.Ascend(func(item registryItem) bool {
		visit(&item.obj.desc)
		return true
	})
}

func (r *dynamicRegistry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tree.Len()
}
