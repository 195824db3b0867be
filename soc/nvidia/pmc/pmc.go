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

// Package pmc implements helpers for the Power Management Controller (PMC) of
// NVIDIA Tegra X1 (T210) SoCs.
//
// The PMC scratch registers are retained across warm resets and low power
// states, they carry boot reason and secure state flags between boot stages.
package pmc

import (
	"github.com/mirage-tegra/mirage/mmio"
)

// PMC registers
const (
	APBDEV_PMC_SCRATCH20        = 0xa0
	APBDEV_PMC_CRYPTO_OP        = 0xf4
	APBDEV_PMC_OSC_EDPD_OVER    = 0x1a4
	APBDEV_PMC_RST_STATUS       = 0x1b4
	APBDEV_PMC_TSC_MULT         = 0x2b4
	APBDEV_PMC_SECURE_SCRATCH21 = 0x334
	APBDEV_PMC_CNTRL2           = 0x440
	APBDEV_PMC_SCRATCH188       = 0x810
	APBDEV_PMC_SCRATCH190       = 0x818
	APBDEV_PMC_SCRATCH200       = 0x840

	Span = 0xc00
)

// OSC_EDPD_OVER fields
const (
	OSC_EDPD_OVER_XOFS          = 1
	OSC_EDPD_OVER_OSC_CTRL_OVER = 22
)

const (
	CNTRL2_HOLD_CKE_LOW_EN = 12

	// LP0 EMC2TMC_CFG_XM2COMP_PU_VREF_SEL_RANGE
	SCRATCH188_VREF_SEL_RANGE = 24

	TSC_MULT_MULT = 0
)

var regNames = map[uint32]string{
	APBDEV_PMC_SCRATCH20:        "APBDEV_PMC_SCRATCH20",
	APBDEV_PMC_CRYPTO_OP:        "APBDEV_PMC_CRYPTO_OP",
	APBDEV_PMC_OSC_EDPD_OVER:    "APBDEV_PMC_OSC_EDPD_OVER",
	APBDEV_PMC_RST_STATUS:       "APBDEV_PMC_RST_STATUS",
	APBDEV_PMC_TSC_MULT:         "APBDEV_PMC_TSC_MULT",
	APBDEV_PMC_SECURE_SCRATCH21: "APBDEV_PMC_SECURE_SCRATCH21",
	APBDEV_PMC_CNTRL2:           "APBDEV_PMC_CNTRL2",
	APBDEV_PMC_SCRATCH188:       "APBDEV_PMC_SCRATCH188",
	APBDEV_PMC_SCRATCH190:       "APBDEV_PMC_SCRATCH190",
	APBDEV_PMC_SCRATCH200:       "APBDEV_PMC_SCRATCH200",
}

// RegisterName returns the name of the register at the given offset.
func RegisterName(off uint32) string {
	return regNames[off]
}

// PMC represents the Power Management Controller instance.
type PMC struct {
	// Base register
	Base uint32
	// Register bus
	Bus mmio.Bus

	Scratch20       mmio.Register
	CryptoOp        mmio.Register
	OscEdpdOver     mmio.Register
	RstStatus       mmio.Register
	TscMult         mmio.Register
	SecureScratch21 mmio.Register
	Cntrl2          mmio.Register
	Scratch188      mmio.Register
	Scratch190      mmio.Register
	// Boot reason
	Scratch200 mmio.Register
}

// Init initializes the controller register accessors.
func (hw *PMC) Init() {
	if hw.Base == 0 || hw.Bus == nil {
		panic("invalid PMC instance")
	}

	hw.Scratch20 = hw.reg(APBDEV_PMC_SCRATCH20)
	hw.CryptoOp = hw.reg(APBDEV_PMC_CRYPTO_OP)
	hw.OscEdpdOver = hw.reg(APBDEV_PMC_OSC_EDPD_OVER)
	hw.RstStatus = hw.reg(APBDEV_PMC_RST_STATUS)
	hw.TscMult = hw.reg(APBDEV_PMC_TSC_MULT)
	hw.SecureScratch21 = hw.reg(APBDEV_PMC_SECURE_SCRATCH21)
	hw.Cntrl2 = hw.reg(APBDEV_PMC_CNTRL2)
	hw.Scratch188 = hw.reg(APBDEV_PMC_SCRATCH188)
	hw.Scratch190 = hw.reg(APBDEV_PMC_SCRATCH190)
	hw.Scratch200 = hw.reg(APBDEV_PMC_SCRATCH200)
}

func (hw *PMC) reg(off uint32) mmio.Register {
	return mmio.Register{Bus: hw.Bus, Addr: hw.Base + off}
}

// SetLP0OscDrive programs the oscillator drive strength and override used
// while in LP0 (deep sleep).
func (hw *PMC) SetLP0OscDrive(xofs uint32) {
	hw.OscEdpdOver.SetN(OSC_EDPD_OVER_XOFS, 0x3f, xofs)
	hw.OscEdpdOver.SetBit(OSC_EDPD_OVER_OSC_CTRL_OVER)
	hw.Cntrl2.SetBit(CNTRL2_HOLD_CKE_LOW_EN)
	hw.Scratch188.SetN(SCRATCH188_VREF_SEL_RANGE, 0b11, 2)
}

// SetTSCMultiplier programs the multiplier of the low power timescale
// counter.
func (hw *PMC) SetTSCMultiplier(mult uint32) {
	hw.TscMult.SetN(TSC_MULT_MULT, 0xffff, mult)
}
