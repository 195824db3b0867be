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

// Package pinmux implements helpers for the pin multiplexer (APB_MISC
// PINMUX_AUX registers) of NVIDIA Tegra X1 (T210) SoCs.
package pinmux

import (
	"fmt"

	"github.com/mirage-tegra/mirage/mmio"
)

// PINMUX_AUX registers
const (
	PINMUX_AUX_GEN1_I2C_SCL = 0xbc
	PINMUX_AUX_GEN1_I2C_SDA = 0xc0
	PINMUX_AUX_PWR_I2C_SCL  = 0xdc
	PINMUX_AUX_PWR_I2C_SDA  = 0xe0
	PINMUX_AUX_UART1_TX     = 0xe4
	PINMUX_AUX_UART1_RX     = 0xe8
	PINMUX_AUX_UART1_RTS    = 0xec
	PINMUX_AUX_UART1_CTS    = 0xf0
	PINMUX_AUX_UART2_TX     = 0xf4
	PINMUX_AUX_UART3_TX     = 0x104
	PINMUX_AUX_PE6          = 0x248
	PINMUX_AUX_PH6          = 0x250

	Span = 0x400
)

// PINMUX_AUX fields
const (
	PINMUX_FUNC         = 0
	PINMUX_PULL         = 2
	PINMUX_TRISTATE     = 4
	PINMUX_INPUT_ENABLE = 6

	PULL_NONE = 0
	PULL_DOWN = 1
	PULL_UP   = 2
)

// Pin configuration values
const (
	TRISTATE = 1 << PINMUX_TRISTATE
	INPUT    = 1 << PINMUX_INPUT_ENABLE
)

// I2C controller indices
const (
	I2C1 = 0
	I2C5 = 4
)

// UART controller indices
const (
	UARTA = 0
	UARTB = 1
	UARTC = 2
)

var regNames = map[uint32]string{
	PINMUX_AUX_GEN1_I2C_SCL: "PINMUX_AUX_GEN1_I2C_SCL",
	PINMUX_AUX_GEN1_I2C_SDA: "PINMUX_AUX_GEN1_I2C_SDA",
	PINMUX_AUX_PWR_I2C_SCL:  "PINMUX_AUX_PWR_I2C_SCL",
	PINMUX_AUX_PWR_I2C_SDA:  "PINMUX_AUX_PWR_I2C_SDA",
	PINMUX_AUX_UART1_TX:     "PINMUX_AUX_UART1_TX",
	PINMUX_AUX_UART1_RX:     "PINMUX_AUX_UART1_RX",
	PINMUX_AUX_UART1_RTS:    "PINMUX_AUX_UART1_RTS",
	PINMUX_AUX_UART1_CTS:    "PINMUX_AUX_UART1_CTS",
	PINMUX_AUX_UART2_TX:     "PINMUX_AUX_UART2_TX",
	PINMUX_AUX_UART3_TX:     "PINMUX_AUX_UART3_TX",
	PINMUX_AUX_PE6:          "PINMUX_AUX_PE6",
	PINMUX_AUX_PH6:          "PINMUX_AUX_PH6",
}

// RegisterName returns the name of the register at the given offset.
func RegisterName(off uint32) string {
	if name, ok := regNames[off]; ok {
		return name
	}

	if off < Span {
		return fmt.Sprintf("PINMUX_AUX+%#x", off)
	}

	return ""
}

// Pinmux represents the pin multiplexer instance.
type Pinmux struct {
	// Base register
	Base uint32
	// Register bus
	Bus mmio.Bus
}

// Init validates the pin multiplexer instance.
func (hw *Pinmux) Init() {
	if hw.Base == 0 || hw.Bus == nil {
		panic("invalid PINMUX instance")
	}
}

// Aux returns the PINMUX_AUX register at the given offset.
func (hw *Pinmux) Aux(off uint32) mmio.Register {
	return mmio.Register{Bus: hw.Bus, Addr: hw.Base + off}
}

// ConfigureI2C routes the SCL/SDA pins of an I2C controller with input
// buffers enabled.
func (hw *Pinmux) ConfigureI2C(index int) {
	off := uint32(index) * 8

	hw.Aux(PINMUX_AUX_GEN1_I2C_SCL + off).Set(INPUT)
	hw.Aux(PINMUX_AUX_GEN1_I2C_SDA + off).Set(INPUT)
}

// ConfigureUART routes the TX/RX/RTS/CTS pins of a UART controller, RX is
// pulled up and CTS pulled down.
func (hw *Pinmux) ConfigureUART(index int) {
	off := uint32(index) * 0x10

	hw.Aux(PINMUX_AUX_UART1_TX + off).Set(0)
	hw.Aux(PINMUX_AUX_UART1_RX + off).Set(INPUT | PULL_UP<<PINMUX_PULL)
	hw.Aux(PINMUX_AUX_UART1_RTS + off).Set(0)
	hw.Aux(PINMUX_AUX_UART1_CTS + off).Set(INPUT | PULL_DOWN<<PINMUX_PULL)
}
