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
	"gvisor.dev/gvisor/pkg/atomicbitops"
)

// MaxThreadBytes is CONFIG_MAX_THREAD_BYTES from the original: the width, in
// bytes, of every permission bitmap in the system. It bounds the number of
// threads that may simultaneously hold a bit on any object.
const MaxThreadBytes = 32

// MaxThreadBits is the maximum simultaneous thread population: every thread
// id must fall in 0..MaxThreadBits.
const MaxThreadBits = MaxThreadBytes * 8

const wordBits = 64
const numWords = MaxThreadBits / wordBits

// permSet is the fixed-width bitmap embedded in every Descriptor. Bit i set
// means the thread with id i has been granted access. Individual bit
// operations are word-atomic and take no lock; the caller is responsible for
// the descriptor's lifetime (the registry lock, for dynamic objects, or
// static placement).
type permSet struct {
	words [numWords]atomicbitops.Uint64
}

func wordIndex(id int32) (word int, bit uint64, ok bool) {
	if id < 0 || id >= MaxThreadBits {
		return 0, 0, false
	}
	return int(id) / wordBits, uint64(1) << uint(int(id)%wordBits), true
}

// set sets bit id. No-op if id is out of range (covers the sentinel and any
// caller bug: assertions on this path only run in debug builds).
func (p *permSet) set(id int32) {
	assertf(id < MaxThreadBits, "thread id %d beyond MaxThreadBits (%d)", id, MaxThreadBits)
	w, bit, ok := wordIndex(id)
	if !ok {
		return
	}
	for {
		old := p.words[w].Load()
		if old&bit != 0 {
			return
		}
		if p.words[w].CompareAndSwap(old, old|bit) {
			return
		}
	}
}

// clear clears bit id. No-op if out of range.
func (p *permSet) clear(id int32) {
	w, bit, ok := wordIndex(id)
	if !ok {
		return
	}
	for {
		old := p.words[w].Load()
		if old&bit == 0 {
			return
		}
		if p.words[w].CompareAndSwap(old, old&^bit) {
			return
		}
	}
}

// test reports whether bit id is set.
func (p *permSet) test(id int32) bool {
	w, bit, ok := wordIndex(id)
	if !ok {
		return false
	}
	return p.words[w].Load()&bit != 0
}

// bytes renders the bitmap MSB-byte-first, the layout the diagnostic
// reporter hex-dumps so that thread id 0's bit lands in the least
// significant visible nibble.
func (p *permSet) bytes() []byte {
	out := make([]byte, MaxThreadBytes)
	for w := 0; w < numWords; w++ {
		v := p.words[w].Load()
		base := w * (wordBits / 8)
		for b := 0; b < wordBits/8; b++ {
			out[base+b] = byte(v >> (8 * b))
		}
	}
	// out is currently little-endian (byte 0 holds bits 0-7). Reverse it so
	// index 0 is the high byte, matching the original's
	// `for i = CONFIG_MAX_THREAD_BYTES - 1; i >= 0; i--` print order.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}
