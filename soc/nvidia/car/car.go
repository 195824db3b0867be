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

// Package car implements helpers for the Clock and Reset (CAR) controller of
// NVIDIA Tegra X1 (T210) SoCs.
//
// The register offsets and bit positions are taken from the Tegra X1
// Technical Reference Manual, chapter 5 (Clock and Reset Controller).
package car

import (
	"github.com/mirage-tegra/mirage/mmio"
)

// CAR registers
const (
	CLK_RST_CONTROLLER_SCLK_BURST_POLICY  = 0x28
	CLK_RST_CONTROLLER_SUPER_SCLK_DIVIDER = 0x2c
	CLK_RST_CONTROLLER_CLK_SYSTEM_RATE    = 0x30
	CLK_RST_CONTROLLER_OSC_CTRL           = 0x50
	CLK_RST_CONTROLLER_CLK_SOURCE_SYS     = 0x400
	CLK_RST_CONTROLLER_SPARE_REG0         = 0x55c
	CLK_RST_CONTROLLER_PLLMB_BASE         = 0x5e8

	// Span covers the whole controller aperture.
	Span = 0x1000
)

// OSC_CTRL fields
const (
	OSC_CTRL_XOE      = 0
	OSC_CTRL_XOFS     = 4
	OSC_CTRL_OSC_FREQ = 28

	OSC_FREQ_38_4 = 5
)

// CLK_SYSTEM_RATE fields
const (
	SYSTEM_RATE_APB_RATE = 0
	SYSTEM_RATE_AHB_RATE = 4
)

// SCLK_BURST_POLICY fields
const (
	SCLK_SWAKEUP_IDLE_SOURCE = 0
	SCLK_SWAKEUP_RUN_SOURCE  = 4
	SCLK_SWAKEUP_IRQ_SOURCE  = 8
	SCLK_SWAKEUP_FIQ_SOURCE  = 12
	SCLK_SYS_STATE           = 28

	SYS_STATE_RUN = 2
	// PLLP_OUT2 (204 MHz)
	SCLK_SOURCE_PLLP_OUT2 = 4
)

const (
	SPARE_REG0_CLK_M_DIVISOR = 2
	SUPER_SDIV_ENB           = 31
	PLLMB_BASE_ENABLE        = 30
)

var regNames = map[uint32]string{
	CLK_RST_CONTROLLER_SCLK_BURST_POLICY:  "CLK_RST_CONTROLLER_SCLK_BURST_POLICY",
	CLK_RST_CONTROLLER_SUPER_SCLK_DIVIDER: "CLK_RST_CONTROLLER_SUPER_SCLK_DIVIDER",
	CLK_RST_CONTROLLER_CLK_SYSTEM_RATE:    "CLK_RST_CONTROLLER_CLK_SYSTEM_RATE",
	CLK_RST_CONTROLLER_OSC_CTRL:           "CLK_RST_CONTROLLER_OSC_CTRL",
	CLK_RST_CONTROLLER_CLK_SOURCE_SYS:     "CLK_RST_CONTROLLER_CLK_SOURCE_SYS",
	CLK_RST_CONTROLLER_SPARE_REG0:         "CLK_RST_CONTROLLER_SPARE_REG0",
	CLK_RST_CONTROLLER_PLLMB_BASE:         "CLK_RST_CONTROLLER_PLLMB_BASE",
}

// RegisterName returns the name of the register at the given offset, an
// empty string is returned for unknown offsets.
func RegisterName(off uint32) string {
	return regNames[off]
}

// CAR represents the Clock and Reset controller instance.
type CAR struct {
	// Base register
	Base uint32
	// Register bus
	Bus mmio.Bus

	SclkBurstPolicy  mmio.Register
	SuperSclkDivider mmio.Register
	SystemRate       mmio.Register
	OscCtrl          mmio.Register
	ClkSourceSys     mmio.Register
	SpareReg0        mmio.Register
	PLLMBBase        mmio.Register
}

// Init initializes the controller register accessors.
func (hw *CAR) Init() {
	if hw.Base == 0 || hw.Bus == nil {
		panic("invalid CAR instance")
	}

	hw.SclkBurstPolicy = hw.reg(CLK_RST_CONTROLLER_SCLK_BURST_POLICY)
	hw.SuperSclkDivider = hw.reg(CLK_RST_CONTROLLER_SUPER_SCLK_DIVIDER)
	hw.SystemRate = hw.reg(CLK_RST_CONTROLLER_CLK_SYSTEM_RATE)
	hw.OscCtrl = hw.reg(CLK_RST_CONTROLLER_OSC_CTRL)
	hw.ClkSourceSys = hw.reg(CLK_RST_CONTROLLER_CLK_SOURCE_SYS)
	hw.SpareReg0 = hw.reg(CLK_RST_CONTROLLER_SPARE_REG0)
	hw.PLLMBBase = hw.reg(CLK_RST_CONTROLLER_PLLMB_BASE)
}

func (hw *CAR) reg(off uint32) mmio.Register {
	return mmio.Register{Bus: hw.Bus, Addr: hw.Base + off}
}

// SetClkMDivisor sets the clk_m divisor (1 to 4).
func (hw *CAR) SetClkMDivisor(div uint32) {
	hw.SpareReg0.SetN(SPARE_REG0_CLK_M_DIVISOR, 0b11, div-1)
}

// SetOscillator selects the main oscillator frequency and drive strength.
func (hw *CAR) SetOscillator(freq uint32, drive uint32) {
	hw.OscCtrl.Set(freq<<OSC_CTRL_OSC_FREQ | drive<<OSC_CTRL_XOFS | 1<<OSC_CTRL_XOE)
}

// SetSystemRate sets the AHB (HCLK) and APB (PCLK) divisors (1 to 4).
func (hw *CAR) SetSystemRate(hclkDiv uint32, pclkDiv uint32) {
	hw.SystemRate.Set((hclkDiv-1)<<SYSTEM_RATE_AHB_RATE | (pclkDiv-1)<<SYSTEM_RATE_APB_RATE)
}

// DisablePLLMB disables the PLLMB.
func (hw *CAR) DisablePLLMB() {
	hw.PLLMBBase.ClearBit(PLLMB_BASE_ENABLE)
}

// SetSclkSource sets the system clock divisor and selects the system clock
// source for all wakeup conditions in run state, the super clock divider is
// then enabled.
func (hw *CAR) SetSclkSource(div uint32, src uint32) {
	hw.ClkSourceSys.Set(div - 1)

	hw.SclkBurstPolicy.Set(SYS_STATE_RUN<<SCLK_SYS_STATE |
		src<<SCLK_SWAKEUP_FIQ_SOURCE |
		src<<SCLK_SWAKEUP_IRQ_SOURCE |
		src<<SCLK_SWAKEUP_RUN_SOURCE |
		src<<SCLK_SWAKEUP_IDLE_SOURCE)

	hw.SuperSclkDivider.Set(1 << SUPER_SDIV_ENB)
}
