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

// Package fuse implements read access to the fuse cache (FUSE) of NVIDIA
// Tegra X1 (T210) SoCs.
//
// Fuses are one-time programmable, the controller exposes their values
// through a register cache which is populated by hardware at reset.
package fuse

import (
	"encoding/binary"

	"github.com/mirage-tegra/mirage/mmio"
)

// FUSE registers
const (
	FUSE_PRIVATE_KEY0 = 0x1a4
	FUSE_PRIVATE_KEY1 = 0x1a8
	FUSE_PRIVATE_KEY2 = 0x1ac
	FUSE_PRIVATE_KEY3 = 0x1b0
	FUSE_PRIVATE_KEY4 = 0x1b4

	Span = 0x400
)

// SBKSize is the size of the Secure Boot Key (SBK) held in the private key
// fuses.
const SBKSize = 16

var regNames = map[uint32]string{
	FUSE_PRIVATE_KEY0: "FUSE_PRIVATE_KEY0",
	FUSE_PRIVATE_KEY1: "FUSE_PRIVATE_KEY1",
	FUSE_PRIVATE_KEY2: "FUSE_PRIVATE_KEY2",
	FUSE_PRIVATE_KEY3: "FUSE_PRIVATE_KEY3",
	FUSE_PRIVATE_KEY4: "FUSE_PRIVATE_KEY4",
}

// RegisterName returns the name of the register at the given offset.
func RegisterName(off uint32) string {
	return regNames[off]
}

// FUSE represents the fuse controller instance.
type FUSE struct {
	// Base register
	Base uint32
	// Register bus
	Bus mmio.Bus
}

// Init validates the fuse controller instance.
func (hw *FUSE) Init() {
	if hw.Base == 0 || hw.Bus == nil {
		panic("invalid FUSE instance")
	}
}

// PrivateKey returns the device unique Secure Boot Key (SBK), the caller is
// responsible for wiping the returned value once consumed.
//
// The full 128-bit key is assembled from the four FUSE_PRIVATE_KEY0..3 words
// in little endian order, word 0 forming key bytes 0 to 3. Taking only the
// low byte of each word would yield a 4-byte key occupying the first key
// slot word alone.
func (hw *FUSE) PrivateKey() (sbk [SBKSize]byte) {
	for i := 0; i < SBKSize/4; i++ {
		word := hw.Bus.Read32(hw.Base + FUSE_PRIVATE_KEY0 + uint32(i)*4)
		binary.LittleEndian.PutUint32(sbk[i*4:], word)
	}

	return
}
