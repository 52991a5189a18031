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

func TestEngineSetClearTest(t *testing.T) {
	threadAddr := newAddr()
	objAddr := newAddr()
	static := NewStaticDirectory([]StaticEntry{
		{Name: threadAddr, Type: ObjectThread},
		{Name: objAddr, Type: ObjectSemaphore},
	})
	r := NewResolver(static)
	static.Find(threadAddr).Thread.ID = 3
	e := NewEngine(r)

	obj := r.Resolve(objAddr)
	if e.Test(obj, 3) {
		t.Fatal("object should start ungranted")
	}
	e.Set(obj, threadAddr)
	if !e.Test(obj, 3) {
		t.Fatal("Test should return true after Set")
	}
	e.Clear(obj, threadAddr)
	if e.Test(obj, 3) {
		t.Fatal("Test should return false after Clear")
	}
}

// TestEngineRevokeIdempotent checks that revoking an already-revoked grant is a no-op.
func TestEngineRevokeIdempotent(t *testing.T) {
	threadAddr := newAddr()
	objAddr := newAddr()
	static := NewStaticDirectory([]StaticEntry{
		{Name: threadAddr, Type: ObjectThread},
		{Name: objAddr, Type: ObjectSemaphore},
	})
	r := NewResolver(static)
	static.Find(threadAddr).Thread.ID = 7
	e := NewEngine(r)
	obj := r.Resolve(objAddr)

	e.Set(obj, threadAddr)
	e.Clear(obj, threadAddr)
	e.Clear(obj, threadAddr) // second revoke must be a no-op, not a panic.
	if e.Test(obj, 7) {
		t.Fatal("object should be ungranted after idempotent revoke")
	}
}

// TestEnginePublicOverridesPerms checks that a public object is visible to every thread.
func TestEnginePublicOverridesPerms(t *testing.T) {
	objAddr := newAddr()
	static := NewStaticDirectory([]StaticEntry{{Name: objAddr, Type: ObjectSemaphore}})
	r := NewResolver(static)
	e := NewEngine(r)
	obj := r.Resolve(objAddr)

	e.GrantPublic(obj)
	for _, id := range []int32{0, 1, 42, NoThreadID} {
		if !e.Test(obj, id) {
			t.Fatalf("public object should be visible to thread id %d", id)
		}
	}
}

func TestEngineThreadIDUnresolvedIsSentinel(t *testing.T) {
	static := NewStaticDirectory(nil)
	r := NewResolver(static)
	e := NewEngine(r)
	if id := e.threadID(newAddr()); id != NoThreadID {
		t.Fatalf("threadID on an unresolvable pointer = %d, want %d", id, NoThreadID)
	}
}
