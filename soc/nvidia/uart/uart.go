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

// Package uart implements a transmit only driver for the 16550 compatible
// UART controllers of NVIDIA Tegra X1 (T210) SoCs, meant for debug output.
//
// The controller clock, baud rate and pin routing are assumed to be already
// configured.
package uart

import (
	"github.com/mirage-tegra/mirage/mmio"
)

// UART registers
const (
	UART_THR_DLAB = 0x00
	UART_LSR      = 0x14

	LSR_THRE = 5

	Span = 0x40
)

// txTimeout bounds the wait for the transmit holding register, characters are
// dropped when the controller is not running.
const txTimeout = 10000

var regNames = map[uint32]string{
	UART_THR_DLAB: "UART_THR_DLAB",
	UART_LSR:      "UART_LSR",
}

// RegisterName returns the name of the register at the given offset.
func RegisterName(off uint32) string {
	return regNames[off]
}

// UART represents a serial port instance.
type UART struct {
	// Base register
	Base uint32
	// Register bus
	Bus mmio.Bus

	thr mmio.CommandRegister
	lsr mmio.Register
}

// Init initializes the UART register accessors.
func (hw *UART) Init() {
	if hw.Base == 0 || hw.Bus == nil {
		panic("invalid UART instance")
	}

	hw.thr = mmio.CommandRegister{Bus: hw.Bus, Addr: hw.Base + UART_THR_DLAB}
	hw.lsr = mmio.Register{Bus: hw.Bus, Addr: hw.Base + UART_LSR}
}

// Tx transmits a single character, it returns false if the character has
// been dropped.
func (hw *UART) Tx(c byte) bool {
	for i := 0; i < txTimeout; i++ {
		if hw.lsr.IsSet(LSR_THRE) {
			hw.thr.Write(uint32(c))
			return true
		}
	}

	return false
}

// Write transmits the buffer, it implements io.Writer and never fails as
// dropped characters are not reported.
func (hw *UART) Write(buf []byte) (n int, _ error) {
	for _, c := range buf {
		hw.Tx(c)
	}

	return len(buf), nil
}
