// Copyright 2026 The Mirage authors. All Rights Reserved.
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

// Package mmio provides typed accessors for memory mapped hardware registers.
//
// Every register touched during bring-up is represented by a value bound to
// a Bus and to a fixed physical address, so that each register has exactly
// one name and one address. The Bus abstraction allows the same drivers to
// run against physical memory (GOOS=tamago), a Linux /dev/mem mapping or a
// simulated register bank on the host.
package mmio

import (
	"github.com/usbarmory/tamago/bits"
)

// Bus represents a 32-bit memory mapped address space.
type Bus interface {
	// Read32 performs a 32-bit load from the given physical address.
	Read32(addr uint32) uint32
	// Write32 performs a 32-bit store to the given physical address.
	Write32(addr uint32, val uint32)
}

// Register represents a read/write hardware register.
type Register struct {
	Bus  Bus
	Addr uint32
}

// Get returns the register value.
func (r Register) Get() uint32 {
	return r.Bus.Read32(r.Addr)
}

// Set writes the register value.
func (r Register) Set(val uint32) {
	r.Bus.Write32(r.Addr, val)
}

// GetN returns the field at a specific bit position with a bitmask applied.
func (r Register) GetN(pos int, mask int) uint32 {
	v := r.Get()
	return bits.Get(&v, pos, mask)
}

// SetN patches the field at a specific bit position with a bitmask applied,
// all bits outside the field are preserved.
func (r Register) SetN(pos int, mask int, val uint32) {
	v := r.Get()
	bits.SetN(&v, pos, mask, val)
	r.Set(v)
}

// ClearN clears the field at a specific bit position with a bitmask applied.
func (r Register) ClearN(pos int, mask int) {
	r.SetN(pos, mask, 0)
}

// SetBit sets a single bit.
func (r Register) SetBit(pos int) {
	v := r.Get()
	bits.Set(&v, pos)
	r.Set(v)
}

// ClearBit clears a single bit.
func (r Register) ClearBit(pos int) {
	v := r.Get()
	bits.Clear(&v, pos)
	r.Set(v)
}

// IsSet returns whether a single bit is set.
func (r Register) IsSet(pos int) bool {
	return r.GetN(pos, 1) == 1
}

// CommandRegister represents a write-only hardware register, writes have an
// effect on the hardware state but the register has no meaningful read back
// value.
type CommandRegister struct {
	Bus  Bus
	Addr uint32
}

// Write issues a command.
func (r CommandRegister) Write(val uint32) {
	r.Bus.Write32(r.Addr, val)
}

// Window represents a fixed memory region.
type Window struct {
	Bus   Bus
	Start uint32
	Size  uint32
}

// End returns the first address past the window.
func (w Window) End() uint32 {
	return w.Start + w.Size
}

// Contains returns whether an address falls within the window.
func (w Window) Contains(addr uint32) bool {
	return addr >= w.Start && addr < w.End()
}

// Zero clears the whole window using 32-bit stores.
func (w Window) Zero() {
	for addr := w.Start; addr < w.End(); addr += 4 {
		w.Bus.Write32(addr, 0)
	}
}
