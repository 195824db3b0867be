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

// Package sim provides a simulated Tegra210 register bank, allowing the
// bring-up sequence to be exercised and inspected off target.
//
// Registers are plain memory cells defaulting to zero, with the exception of
// the following hardware behaviours:
//   - the Security Engine key table is reached through its indirect
//     address/data registers, key slots whose read permission has been
//     revoked read back as zero and ignore further writes (which are
//     recorded as rejected);
//   - key slot access permissions can only be revoked;
//   - the microsecond timer counter advances on every read.
package sim

import (
	"fmt"

	"github.com/mirage-tegra/mirage/soc/nvidia/fuse"
	"github.com/mirage-tegra/mirage/soc/nvidia/se"
	"github.com/mirage-tegra/mirage/soc/nvidia/tegra210"
	"github.com/mirage-tegra/mirage/soc/nvidia/timer"
)

const (
	keytableAddr  = tegra210.SE_BASE + se.SE_CRYPTO_KEYTABLE_ADDR
	keytableData  = tegra210.SE_BASE + se.SE_CRYPTO_KEYTABLE_DATA
	keytableAcc   = tegra210.SE_BASE + se.SE_CRYPTO_KEYTABLE_ACCESS
	timerCounter  = tegra210.TIMER_BASE + timer.TIMERUS_CNTR_1US
	privateKey    = tegra210.FUSE_BASE + fuse.FUSE_PRIVATE_KEY0
	keySlotWords  = se.MaxKeySize / 4
	keytableSlots = se.NumKeySlots
)

// Op represents a register access direction.
type Op int

const (
	Read Op = iota
	Write
)

func (op Op) String() string {
	if op == Write {
		return "W"
	}

	return "R"
}

// Access represents a single register access.
type Access struct {
	Op   Op
	Addr uint32
	Val  uint32
}

func (a Access) String() string {
	return fmt.Sprintf("%s %-40s %#08x", a.Op, tegra210.RegisterName(a.Addr), a.Val)
}

// Tegra represents a simulated Tegra210 register bank, it implements
// mmio.Bus.
type Tegra struct {
	// Trace holds every register access in program order.
	Trace []Access
	// Rejected holds the key table writes ignored by the Security Engine.
	Rejected []Access
	// Tick is the timer counter increment applied on each read (1 µs when
	// zero).
	Tick uint32

	mem map[uint32]uint32

	slot   uint32
	keys   [keytableSlots][keySlotWords]uint32
	access [keytableSlots]uint32
}

// NewTegra returns a register bank in its reset state.
func NewTegra() *Tegra {
	t := &Tegra{
		mem: make(map[uint32]uint32),
	}

	for i := range t.access {
		t.access[i] = se.AccessAll
	}

	return t
}

func accessSlot(addr uint32) (int, bool) {
	if addr < keytableAcc || addr >= keytableAcc+keytableSlots*4 || addr&3 != 0 {
		return 0, false
	}

	return int(addr-keytableAcc) / 4, true
}

func (t *Tegra) locked(slot int) bool {
	return t.access[slot]&(1<<se.KEYTABLE_ACCESS_KEYREAD) == 0
}

func (t *Tegra) read(addr uint32) uint32 {
	if i, ok := accessSlot(addr); ok {
		return t.access[i]
	}

	switch addr {
	case timerCounter:
		if t.Tick == 0 {
			t.mem[addr]++
		} else {
			t.mem[addr] += t.Tick
		}

		return t.mem[addr]
	case keytableData:
		slot := int(t.slot>>se.KEYTABLE_SLOT) % keytableSlots
		word := t.slot & 0xf

		if t.locked(slot) || word >= keySlotWords {
			return 0
		}

		return t.keys[slot][word]
	}

	return t.mem[addr]
}

// Read32 implements mmio.Bus.
func (t *Tegra) Read32(addr uint32) uint32 {
	val := t.read(addr)
	t.Trace = append(t.Trace, Access{Op: Read, Addr: addr, Val: val})

	return val
}

// Write32 implements mmio.Bus.
func (t *Tegra) Write32(addr uint32, val uint32) {
	a := Access{Op: Write, Addr: addr, Val: val}
	t.Trace = append(t.Trace, a)

	if i, ok := accessSlot(addr); ok {
		t.access[i] &= val
		return
	}

	switch addr {
	case keytableAddr:
		t.slot = val
	case keytableData:
		slot := int(t.slot>>se.KEYTABLE_SLOT) % keytableSlots
		word := t.slot & 0xf

		if t.locked(slot) || word >= keySlotWords {
			t.Rejected = append(t.Rejected, a)
			return
		}

		t.keys[slot][word] = val
	default:
		t.mem[addr] = val
	}
}

// Poke sets a register value without recording the access.
func (t *Tegra) Poke(addr uint32, val uint32) {
	if i, ok := accessSlot(addr); ok {
		t.access[i] = val
		return
	}

	t.mem[addr] = val
}

// Peek returns a register value without recording the access or triggering
// side effects.
func (t *Tegra) Peek(addr uint32) uint32 {
	if i, ok := accessSlot(addr); ok {
		return t.access[i]
	}

	return t.mem[addr]
}

// SetPrivateKey programs the private key fuse words.
func (t *Tegra) SetPrivateKey(words ...uint32) {
	for i, w := range words {
		t.Poke(privateKey+uint32(i)*4, w)
	}
}

// KeySlot returns the raw contents of a Security Engine key slot, regardless
// of its access permissions.
func (t *Tegra) KeySlot(slot int) [keySlotWords]uint32 {
	return t.keys[slot]
}

// Locked returns whether read back of a key slot has been revoked.
func (t *Tegra) Locked(slot int) bool {
	return t.locked(slot)
}

// Writes returns the write accesses recorded in the trace.
func (t *Tegra) Writes() (w []Access) {
	for _, a := range t.Trace {
		if a.Op == Write {
			w = append(w, a)
		}
	}

	return
}

// Reads returns the number of read accesses to an address.
func (t *Tegra) Reads(addr uint32) (n int) {
	for _, a := range t.Trace {
		if a.Op == Read && a.Addr == addr {
			n++
		}
	}

	return
}

// Snapshot returns a copy of all plain register values.
func (t *Tegra) Snapshot() map[uint32]uint32 {
	m := make(map[uint32]uint32, len(t.mem)+keytableSlots)

	for addr, val := range t.mem {
		m[addr] = val
	}

	for i, val := range t.access {
		m[keytableAcc+uint32(i)*4] = val
	}

	return m
}

// ResetTrace clears the recorded accesses.
func (t *Tegra) ResetTrace() {
	t.Trace = nil
	t.Rejected = nil
}
