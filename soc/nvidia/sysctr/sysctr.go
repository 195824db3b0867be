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

// Package sysctr implements helpers for the system counter (SYSCTR0) of
// NVIDIA Tegra X1 (T210) SoCs.
package sysctr

import (
	"github.com/mirage-tegra/mirage/mmio"
)

// SYSCTR registers
const (
	SYSCTR0_CNTCR   = 0x00
	SYSCTR0_CNTFID0 = 0x20

	Span = 0x1000
)

var regNames = map[uint32]string{
	SYSCTR0_CNTCR:   "SYSCTR0_CNTCR",
	SYSCTR0_CNTFID0: "SYSCTR0_CNTFID0",
}

// RegisterName returns the name of the register at the given offset.
func RegisterName(off uint32) string {
	return regNames[off]
}

// SYSCTR represents the system counter instance.
type SYSCTR struct {
	// Base register
	Base uint32
	// Register bus
	Bus mmio.Bus

	CNTFID0 mmio.Register
}

// Init initializes the counter register accessors.
func (hw *SYSCTR) Init() {
	if hw.Base == 0 || hw.Bus == nil {
		panic("invalid SYSCTR instance")
	}

	hw.CNTFID0 = mmio.Register{Bus: hw.Bus, Addr: hw.Base + SYSCTR0_CNTFID0}
}

// SetFrequency programs the counter base frequency (in Hz) reported to
// timekeeping.
func (hw *SYSCTR) SetFrequency(hz uint32) {
	hw.CNTFID0.Set(hz)
}
