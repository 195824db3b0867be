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

// Package se implements key slot management for the Security Engine (SE) of
// NVIDIA Tegra X1 (T210) SoCs.
//
// Key slots are written through the indirect SE_CRYPTO_KEYTABLE_ADDR/DATA
// register pair and protected through per slot access permissions.
//
// *WARNING*: locking a key slot is irreversible until the next full hardware
// reset.
package se

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/mirage-tegra/mirage/mmio"
)

// SE registers
const (
	SE_CRYPTO_KEYTABLE_ACCESS = 0x284
	SE_CRYPTO_KEYTABLE_ADDR   = 0x31c
	SE_CRYPTO_KEYTABLE_DATA   = 0x320

	Span = 0x1000
)

// SE_CRYPTO_KEYTABLE_ADDR fields
const (
	KEYTABLE_WORD = 0
	KEYTABLE_SLOT = 4
)

// SE_CRYPTO_KEYTABLE_ACCESS permission bits, a cleared bit revokes the
// permission.
const (
	KEYTABLE_ACCESS_KEYREAD   = 0
	KEYTABLE_ACCESS_KEYUPDATE = 1
	KEYTABLE_ACCESS_OIVREAD   = 2
	KEYTABLE_ACCESS_OIVUPDATE = 3
	KEYTABLE_ACCESS_UIVREAD   = 4
	KEYTABLE_ACCESS_UIVUPDATE = 5
	KEYTABLE_ACCESS_KEYUSE    = 6

	// AccessAll is the reset value granting every permission.
	AccessAll = 0x7f
	// AccessLocked revokes key read back, the key remains usable by the
	// engine.
	AccessLocked = AccessAll &^ (1 << KEYTABLE_ACCESS_KEYREAD)
)

const (
	// NumKeySlots is the number of AES key slots.
	NumKeySlots = 16
	// MaxKeySize is the size of an AES key slot.
	MaxKeySize = 32

	// SBKSlot holds the Secure Boot Key.
	SBKSlot = 0xe
	// SSKSlot holds the Secure Storage Key.
	SSKSlot = 0xf
)

// LockState represents the lock state of a key slot.
type LockState int

const (
	Unlocked LockState = iota
	LockedSBK
	LockedSSK
)

func (s LockState) String() string {
	switch s {
	case Unlocked:
		return "unlocked"
	case LockedSBK:
		return "locked (SBK)"
	case LockedSSK:
		return "locked (SSK)"
	}

	return fmt.Sprintf("LockState(%d)", int(s))
}

var (
	// ErrKeySlotLocked is returned when accessing a locked key slot.
	ErrKeySlotLocked = errors.New("key slot is locked")
	// ErrInvalidKeySlot is returned for out of range key slots.
	ErrInvalidKeySlot = errors.New("invalid key slot")
	// ErrInvalidKeySize is returned for keys larger than a key slot or not
	// aligned to 32-bit words.
	ErrInvalidKeySize = errors.New("invalid key size")
)

// KeySlotError is returned when an operation is attempted on a key slot
// which has already been locked.
type KeySlotError struct {
	Slot  int
	State LockState
	Op    string
}

func (e *KeySlotError) Error() string {
	return fmt.Sprintf("%s of key slot %d rejected, slot %s", e.Op, e.Slot, e.State)
}

func (e *KeySlotError) Unwrap() error {
	return ErrKeySlotLocked
}

var regNames = map[uint32]string{
	SE_CRYPTO_KEYTABLE_ADDR: "SE_CRYPTO_KEYTABLE_ADDR",
	SE_CRYPTO_KEYTABLE_DATA: "SE_CRYPTO_KEYTABLE_DATA",
}

// RegisterName returns the name of the register at the given offset.
func RegisterName(off uint32) string {
	if off >= SE_CRYPTO_KEYTABLE_ACCESS && off < SE_CRYPTO_KEYTABLE_ACCESS+NumKeySlots*4 {
		return fmt.Sprintf("SE_CRYPTO_KEYTABLE_ACCESS_%d", (off-SE_CRYPTO_KEYTABLE_ACCESS)/4)
	}

	return regNames[off]
}

// SE represents the Security Engine instance.
type SE struct {
	// Base register
	Base uint32
	// Register bus
	Bus mmio.Bus

	keytableAddr mmio.CommandRegister
	keytableData mmio.Register

	state [NumKeySlots]LockState
}

// Init initializes the Security Engine register accessors, all key slots are
// assumed unlocked as this is only valid after a full hardware reset.
func (hw *SE) Init() {
	if hw.Base == 0 || hw.Bus == nil {
		panic("invalid SE instance")
	}

	hw.keytableAddr = mmio.CommandRegister{Bus: hw.Bus, Addr: hw.Base + SE_CRYPTO_KEYTABLE_ADDR}
	hw.keytableData = mmio.Register{Bus: hw.Bus, Addr: hw.Base + SE_CRYPTO_KEYTABLE_DATA}
}

func (hw *SE) access(slot int) mmio.Register {
	return mmio.Register{Bus: hw.Bus, Addr: hw.Base + SE_CRYPTO_KEYTABLE_ACCESS + uint32(slot)*4}
}

func (hw *SE) check(slot int, op string) error {
	if slot < 0 || slot >= NumKeySlots {
		return ErrInvalidKeySlot
	}

	if s := hw.state[slot]; s != Unlocked {
		return &KeySlotError{Slot: slot, State: s, Op: op}
	}

	return nil
}

// KeySlotState returns the lock state of a key slot.
func (hw *SE) KeySlotState(slot int) LockState {
	if slot < 0 || slot >= NumKeySlots {
		return Unlocked
	}

	return hw.state[slot]
}

// SetAESKeySlot programs an AES key slot, slot words past the key length are
// left untouched.
func (hw *SE) SetAESKeySlot(slot int, key []byte) (err error) {
	if err = hw.check(slot, "write"); err != nil {
		return
	}

	if len(key) == 0 || len(key) > MaxKeySize || len(key)%4 != 0 {
		return ErrInvalidKeySize
	}

	for i := 0; i < len(key)/4; i++ {
		hw.keytableAddr.Write(uint32(slot)<<KEYTABLE_SLOT | uint32(i)<<KEYTABLE_WORD)
		hw.keytableData.Set(binary.LittleEndian.Uint32(key[i*4:]))
	}

	return
}

// AESKeySlot reads back size bytes of an AES key slot, which is only
// possible while the slot is unlocked.
func (hw *SE) AESKeySlot(slot int, size int) (key []byte, err error) {
	if err = hw.check(slot, "read"); err != nil {
		return
	}

	if size == 0 || size > MaxKeySize || size%4 != 0 {
		return nil, ErrInvalidKeySize
	}

	key = make([]byte, size)

	for i := 0; i < size/4; i++ {
		hw.keytableAddr.Write(uint32(slot)<<KEYTABLE_SLOT | uint32(i)<<KEYTABLE_WORD)
		binary.LittleEndian.PutUint32(key[i*4:], hw.keytableData.Get())
	}

	return
}

func (hw *SE) lock(slot int, state LockState) (err error) {
	if err = hw.check(slot, "lock"); err != nil {
		return
	}

	hw.access(slot).Set(AccessLocked)
	hw.state[slot] = state

	return
}

// LockSBK revokes read access to the Secure Boot Key slot.
func (hw *SE) LockSBK() error {
	return hw.lock(SBKSlot, LockedSBK)
}

// LockSSK revokes read access to the Secure Storage Key slot.
func (hw *SE) LockSSK() error {
	return hw.lock(SSKSlot, LockedSSK)
}
