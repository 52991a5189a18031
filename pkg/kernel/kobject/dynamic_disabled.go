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

//go:build nodynamic

// Built with -tags nodynamic, the dynamic registry is omitted entirely: the
// resolver becomes exactly the static directory, and Allocate/Free are
// absent from the runtime-exposed surface, matching DYNAMIC_OBJECTS=n in the
// original configuration.

package kobject

type dynamicObject struct {
	desc    Descriptor
	payload []byte
}

type dynamicRegistry struct{}

func newDynamicRegistry() *dynamicRegistry { return &dynamicRegistry{} }

func (r *dynamicRegistry) insert(obj *dynamicObject)                {}
func (r *dynamicRegistry) remove(ptr uintptr) *dynamicObject        { return nil }
func (r *dynamicRegistry) findByPayload(ptr uintptr) *dynamicObject { return nil }
func (r *dynamicRegistry) walk(visit func(*Descriptor))             {}
func (r *dynamicRegistry) len() int                                 { return 0 }
