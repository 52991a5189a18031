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
	"fmt"

	"gvisor.dev/gvisor/pkg/log"
)

// CurrentThread is the (pointer, id) pair the reporter prints for the
// caller whose validation failed, the Go stand-in for _current.
type CurrentThread struct {
	Ptr uintptr
	ID  int32
}

// Report renders a single diagnostic line for a failed
// validation and emits it through the logging sink, returning the rendered
// line as well so callers (and tests) can inspect it without scraping logs.
//
// Each error variant's line matches _dump_object_error's format exactly,
// down to the MSB-first perms hex dump for ErrNoPermission.
func Report(err error, ptr uintptr, desc *Descriptor, expectedKind ObjectType, cur CurrentThread) string {
	var msg string
	switch err {
	case ErrNotAnObject:
		msg = fmt.Sprintf("%#x is not a valid %s", ptr, KindName(expectedKind))
	case ErrNoPermission:
		msg = fmt.Sprintf("thread %#x (%d) does not have permission on %s %#x [%s]",
			cur.Ptr, cur.ID, KindName(desc.Type), desc.Name, hexDump(desc))
	case ErrNotInitialized:
		msg = fmt.Sprintf("%#x used before initialization", ptr)
	case ErrAlreadyInitialized:
		msg = fmt.Sprintf("%#x %s in use", ptr, KindName(desc.Type))
	default:
		return ""
	}
	log.Warningf("%s", msg)
	return msg
}

// hexDump renders desc's permission bitmap high-byte first, so thread id 0's
// bit is the least significant visible nibble.
func hexDump(desc *Descriptor) string {
	b := desc.perms.bytes()
	out := make([]byte, 0, 2*len(b))
	const hex = "0123456789abcdef"
	for _, v := range b {
		out = append(out, hex[v>>4], hex[v&0xf])
	}
	return string(out)
}
