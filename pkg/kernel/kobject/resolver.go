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

// Resolver is the single entry point used everywhere else to
// turn an arbitrary user pointer into a Descriptor. It tries the static
// directory first, then the dynamic registry, and returns nil if neither
// knows the pointer.
//
// The contract callers must uphold: the returned Descriptor may live inside
// a DynamicObject, so the caller must already hold whatever makes free()
// impossible for the duration of use. In this port that's the registry's own
// mutex, taken for the duration of Resolve and any Engine operation that
// walks the registry; validation call sites that only touch a single
// already-resolved Descriptor rely on the descriptor's own atomics instead.
type Resolver struct {
	static  *StaticDirectory
	dynamic *dynamicRegistry
}

// NewResolver builds a Resolver over a static directory and a fresh, empty
// dynamic registry.
func NewResolver(static *StaticDirectory) *Resolver {
	return &Resolver{static: static, dynamic: newDynamicRegistry()}
}

// Resolve implements resolve(ptr).
func (r *Resolver) Resolve(ptr uintptr) *Descriptor {
	if desc := r.static.Find(ptr); desc != nil {
		return desc
	}
	if obj := r.dynamic.findByPayload(ptr); obj != nil {
		return &obj.desc
	}
	return nil
}

// ForEach visits every descriptor known to the system, static then dynamic,
// exactly once. It underlies Engine.AllClear and Engine.Inherit, both of
// which must see every live object.
func (r *Resolver) ForEach(visit func(*Descriptor)) {
	r.static.ForEach(visit)
	r.dynamic.walk(visit)
}

// DynamicCount reports how many dynamic objects are currently registered.
// Exposed for tests and diagnostics only.
func (r *Resolver) DynamicCount() int {
	return r.dynamic.len()
}
