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

// InitCheck selects which side, if either, of the initialization-state gate
// Validate enforces.
type InitCheck int

const (
	// InitAny skips the initialization check entirely.
	InitAny InitCheck = iota
	// RequireInit fails unless the object is already initialized.
	RequireInit
	// RequireUninit fails unless the object is not yet initialized.
	RequireUninit
)

// validateDescriptor is the validation decision procedure, applied to an
// already-resolved descriptor, in a fixed short-circuit order: kind check,
// then permission, then initialization state.
func validateDescriptor(desc *Descriptor, expectedKind ObjectType, initCheck InitCheck, currentThreadID int32, engine *Engine) error {
	if desc == nil || (expectedKind != ObjectAny && desc.Type != expectedKind) {
		return ErrNotAnObject
	}
	if !engine.Test(desc, currentThreadID) {
		return ErrNoPermission
	}
	switch initCheck {
	case RequireInit:
		if !desc.Initialized() {
			return ErrNotInitialized
		}
	case RequireUninit:
		if desc.Initialized() {
			return ErrAlreadyInitialized
		}
	}
	return nil
}

// markInitialized sets FlagInitialized on the descriptor ptr resolves to.
// Silently does nothing if ptr doesn't resolve: supervisor code may declare
// objects the registry never sees (stack-local objects, for instance), and
// this must not explode when their constructors run.
func markInitialized(resolver *Resolver, ptr uintptr) {
	if desc := resolver.Resolve(ptr); desc != nil {
		desc.setFlag(FlagInitialized)
	}
}

// markUninitialized clears FlagInitialized. See markInitialized for the
// silent-no-op rationale.
func markUninitialized(resolver *Resolver, ptr uintptr) {
	if desc := resolver.Resolve(ptr); desc != nil {
		desc.clearFlag(FlagInitialized)
	}
}
