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

// StaticDirectory is the runtime counterpart of the perfect-hash table a
// build-time tool (gen_kobject_list.py's Go-port analog) emits for every
// kernel object declared statically. It is built once, from the fixed set of
// declarations discovered at build time, and is read-only for the remainder
// of the kernel's life — no locking is needed on the lookup path.
//
// A real perfect hash trades a few hundred bytes of generated table for O(1)
// worst-case lookup with no false positives. We approximate that contract
// with a plain Go map: lookup is still O(1) expected, the table is frozen
// after construction, and an input pointer that isn't one of the declared
// keys is rejected exactly like a perfect hash rejects a miss (a map lookup
// that isn't present, rather than a colliding slot that needs a stored-key
// comparison).
type StaticDirectory struct {
	byName map[uintptr]*Descriptor
}

// StaticEntry is one declaration fed to NewStaticDirectory: the address of a
// build-time object and the kind it was declared as.
type StaticEntry struct {
	Name uintptr
	Type ObjectType
}

// NewStaticDirectory builds the frozen static table from entries. This
// stands in for the offline generator invoked during the build; in this Go
// port it runs at program startup instead of at link time, but the
// resulting table is just as immutable afterward.
func NewStaticDirectory(entries []StaticEntry) *StaticDirectory {
	d := &StaticDirectory{byName: make(map[uintptr]*Descriptor, len(entries))}
	for _, e := range entries {
		d.byName[e.Name] = newDescriptor(e.Name, e.Type)
	}
	return d
}

// Find returns the descriptor for ptr, or nil if ptr was never declared
// statically.
func (d *StaticDirectory) Find(ptr uintptr) *Descriptor {
	if d == nil {
		return nil
	}
	return d.byName[ptr]
}

// ForEach invokes visit once for every static descriptor, in arbitrary
// order — the Go equivalent of static_foreach/_k_object_gperf_wordlist_foreach.
func (d *StaticDirectory) ForEach(visit func(*Descriptor)) {
	if d == nil {
		return
	}
	for _, desc := range d.byName {
		visit(desc)
	}
}

// Len reports how many objects are declared statically.
func (d *StaticDirectory) Len() int {
	if d == nil {
		return 0
	}
	return len(d.byName)
}
