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

//go:build !noprintk

// This is the PRINTK=y side of the configuration switch: the generated
// kind-name table is compiled in. Build with -tags noprintk to drop it (see
// kindname_noprintk.go) the way CONFIG_PRINTK=n omits the literal strings
// from the binary in the original.

package kobject

var kindNames = [numObjectTypes]string{
	ObjectAny:          "any",
	ObjectSemaphore:    "semaphore",
	ObjectMutex:        "mutex",
	ObjectPipe:         "pipe",
	ObjectMsgQ:         "message queue",
	ObjectStack:        "stack",
	ObjectStackElement: "stack element",
	ObjectThread:       "thread",
	ObjectTimer:        "timer",
	ObjectAlert:        "alert",
	ObjectDevice:       "device",
}

// KindName maps an ObjectType to its human label, or "?" if t is outside the
// generated table (the same fallback otype_to_str's switch default takes).
func KindName(t ObjectType) string {
	if int(t) < 0 || int(t) >= len(kindNames) {
		return "?"
	}
	return kindNames[t]
}

const printkEnabled = true
