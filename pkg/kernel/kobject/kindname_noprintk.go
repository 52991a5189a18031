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

//go:build noprintk

// This is the PRINTK=n side: no generated strings are linked in, so
// KindName always returns the "?" sentinel and never touches a string table
// that diagnostics-disabled binaries shouldn't carry.

package kobject

// KindName always returns "?" when diagnostics are compiled out; the
// generated name table itself is never linked in.
func KindName(t ObjectType) string {
	return "?"
}

const printkEnabled = false
