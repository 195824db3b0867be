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

// Package tegra210 provides the memory map and peripheral wiring of NVIDIA
// Tegra X1 (T210) SoCs as seen by the Boot and Power Management Processor
// (BPMP).
package tegra210

import (
	"fmt"

	"github.com/mirage-tegra/mirage/mmio"
	"github.com/mirage-tegra/mirage/soc/nvidia/car"
	"github.com/mirage-tegra/mirage/soc/nvidia/fuse"
	"github.com/mirage-tegra/mirage/soc/nvidia/gpio"
	"github.com/mirage-tegra/mirage/soc/nvidia/pinmux"
	"github.com/mirage-tegra/mirage/soc/nvidia/pmc"
	"github.com/mirage-tegra/mirage/soc/nvidia/se"
	"github.com/mirage-tegra/mirage/soc/nvidia/sysctr"
	"github.com/mirage-tegra/mirage/soc/nvidia/timer"
	"github.com/mirage-tegra/mirage/soc/nvidia/uart"
)

// Peripheral registers
const (
	TIMER_BASE   = 0x60005000
	CAR_BASE     = 0x60006000
	GPIO_BASE    = 0x6000d000
	PINMUX_BASE  = 0x70003000
	UARTA_BASE   = 0x70006000
	PMC_BASE     = 0x7000e400
	FUSE_BASE    = 0x7000f800
	SE_BASE      = 0x70012000
	SYSCTR0_BASE = 0x700f0000
)

// Memory regions
const (
	// Low IRAM, where RCM payloads and the next stage are staged.
	IRAM_LOW_START = 0x40003000
	IRAM_LOW_SIZE  = 0x8000

	// BPMP execution stack, execution starts at its top.
	IRAM_STACK_START = 0x40010000
	IRAM_STACK_SIZE  = 0x20000

	// Secure context window within TZRAM, holding residual boot ROM key
	// derivation state.
	TZRAM_START = 0x7c010000
	TZRAM_SIZE  = 0x10000
)

// Frequencies (Hz)
const (
	// clk_m after the CLK_M_DIVISOR is applied to the 38.4 MHz oscillator
	CLK_M_FREQ = 19200000
	// 32.768 kHz low power clock
	CLK_32K_FREQ = 32768
)

// SoC represents the set of peripherals involved in early bring-up, there is
// exactly one instance per boot.
type SoC struct {
	Bus mmio.Bus

	CAR    *car.CAR
	SYSCTR *sysctr.SYSCTR
	TIMER  *timer.Timer
	PMC    *pmc.PMC
	PINMUX *pinmux.Pinmux
	GPIO   *gpio.Controller
	FUSE   *fuse.FUSE
	SE     *se.SE
	UARTA  *uart.UART

	// Secure memory window
	TZRAM mmio.Window
}

// New returns the SoC peripherals bound to the given register bus.
func New(bus mmio.Bus) *SoC {
	soc := &SoC{
		Bus:    bus,
		CAR:    &car.CAR{Base: CAR_BASE, Bus: bus},
		SYSCTR: &sysctr.SYSCTR{Base: SYSCTR0_BASE, Bus: bus},
		TIMER:  &timer.Timer{Base: TIMER_BASE, Bus: bus},
		PMC:    &pmc.PMC{Base: PMC_BASE, Bus: bus},
		PINMUX: &pinmux.Pinmux{Base: PINMUX_BASE, Bus: bus},
		GPIO:   &gpio.Controller{Base: GPIO_BASE, Bus: bus},
		FUSE:   &fuse.FUSE{Base: FUSE_BASE, Bus: bus},
		SE:     &se.SE{Base: SE_BASE, Bus: bus},
		UARTA:  &uart.UART{Base: UARTA_BASE, Bus: bus},
		TZRAM: mmio.Window{
			Bus:   bus,
			Start: TZRAM_START,
			Size:  TZRAM_SIZE,
		},
	}

	soc.CAR.Init()
	soc.SYSCTR.Init()
	soc.TIMER.Init()
	soc.PMC.Init()
	soc.PINMUX.Init()
	soc.GPIO.Init()
	soc.FUSE.Init()
	soc.SE.Init()
	soc.UARTA.Init()

	return soc
}

type block struct {
	name  string
	base  uint32
	span  uint32
	names func(off uint32) string
}

var blocks = []block{
	{"TIMER", TIMER_BASE, timer.Span, timer.RegisterName},
	{"CAR", CAR_BASE, car.Span, car.RegisterName},
	{"GPIO", GPIO_BASE, gpio.Span, gpio.RegisterName},
	{"PINMUX", PINMUX_BASE, pinmux.Span, pinmux.RegisterName},
	{"UARTA", UARTA_BASE, uart.Span, uart.RegisterName},
	{"PMC", PMC_BASE, pmc.Span, pmc.RegisterName},
	{"FUSE", FUSE_BASE, fuse.Span, fuse.RegisterName},
	{"SE", SE_BASE, se.Span, se.RegisterName},
	{"SYSCTR0", SYSCTR0_BASE, sysctr.Span, sysctr.RegisterName},
	{"TZRAM", TZRAM_START, TZRAM_SIZE, func(uint32) string { return "" }},
	{"IRAM", IRAM_LOW_START, IRAM_STACK_START + IRAM_STACK_SIZE - IRAM_LOW_START, func(uint32) string { return "" }},
}

// RegisterName returns a human readable name for a physical address.
func RegisterName(addr uint32) string {
	for _, b := range blocks {
		if addr < b.base || addr-b.base >= b.span {
			continue
		}

		off := addr - b.base

		if name := b.names(off); name != "" {
			return name
		}

		return fmt.Sprintf("%s+%#x", b.name, off)
	}

	return fmt.Sprintf("%#08x", addr)
}
