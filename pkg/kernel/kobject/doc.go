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

// Package kobject implements the kernel object access-control core of the
// nimbus real-time kernel: identifying arbitrary user pointers as kernel
// objects, tracking per-thread permissions on them, and gating syscall
// argument validation against those permissions and each object's
// initialization state.
//
// The package unifies two sources of objects: a read-only table of objects
// declared statically at build time (see StaticDirectory), and a registry of
// objects allocated at run time (see dynamic registry in dynamic.go). Callers
// never deal with the two directly; Resolve hides the split.
package kobject
