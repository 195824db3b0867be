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

// Package gpio implements helpers for the GPIO controllers of NVIDIA Tegra X1
// (T210) SoCs.
//
// The SoC has 8 GPIO controllers of 4 ports each, every port has 8 pins.
// Ports are identified by letter (A to Z, then AA to FF).
package gpio

import (
	"fmt"

	"github.com/mirage-tegra/mirage/mmio"
)

// GPIO port registers
const (
	GPIO_CNF = 0x00
	GPIO_OE  = 0x10
	GPIO_OUT = 0x20
	GPIO_IN  = 0x30

	controllerSize = 0x100
	numControllers = 8

	Span = numControllers * controllerSize
)

// Ports
const (
	PortA = iota
	PortB
	PortC
	PortD
	PortE
	PortF
	PortG
	PortH
	PortI
	PortJ
	PortK
	PortL
	PortM
	PortN
	PortO
	PortP
	PortQ
	PortR
	PortS
	PortT
	PortU
	PortV
	PortW
	PortX
	PortY
	PortZ
	PortAA
	PortBB
	PortCC
	PortDD
	PortEE
	PortFF
)

// Mode represents the pin function selection.
type Mode int

const (
	// SFIO routes the pin to its special function (pinmux selection).
	SFIO Mode = iota
	// GPIO routes the pin to the GPIO controller.
	GPIO
)

// Config represents the pin direction and level.
type Config int

const (
	Input Config = iota
	OutputLow
	OutputHigh
)

// Pin identifies a single GPIO pin.
type Pin struct {
	Port int
	Num  int
}

func portName(port int) string {
	name := string(rune('A' + port%26))

	if port >= 26 {
		name = name + name
	}

	return name
}

func (p Pin) String() string {
	return fmt.Sprintf("P%s%d", portName(p.Port), p.Num)
}

var regNames = map[uint32]string{
	GPIO_CNF: "GPIO_CNF",
	GPIO_OE:  "GPIO_OE",
	GPIO_OUT: "GPIO_OUT",
	GPIO_IN:  "GPIO_IN",
}

// RegisterName returns the name of the register at the given offset.
func RegisterName(off uint32) string {
	if off >= Span {
		return ""
	}

	ctl := off / controllerSize
	reg := off % controllerSize
	name, ok := regNames[reg&^0xf]

	if !ok {
		return ""
	}

	port := int(ctl)*4 + int(reg&0xf)/4

	return fmt.Sprintf("%s_%s", name, portName(port))
}

// Controller represents the GPIO controllers instance.
type Controller struct {
	// Base register
	Base uint32
	// Register bus
	Bus mmio.Bus
}

// Init validates the GPIO instance.
func (hw *Controller) Init() {
	if hw.Base == 0 || hw.Bus == nil {
		panic("invalid GPIO instance")
	}
}

// Register returns the port register (GPIO_CNF, GPIO_OE, GPIO_OUT or GPIO_IN)
// holding the given pin.
func (hw *Controller) Register(p Pin, off uint32) mmio.Register {
	addr := hw.Base + uint32(p.Port/4)*controllerSize + off + uint32(p.Port%4)*4
	return mmio.Register{Bus: hw.Bus, Addr: addr}
}

// SetMode selects between GPIO and special function for a pin.
func (hw *Controller) SetMode(p Pin, mode Mode) {
	cnf := hw.Register(p, GPIO_CNF)

	if mode == GPIO {
		cnf.SetBit(p.Num)
	} else {
		cnf.ClearBit(p.Num)
	}
}

// Configure sets a pin direction and, for outputs, its level.
//
// The pin must be in GPIO mode for the configuration to have any effect on
// the physical signal.
func (hw *Controller) Configure(p Pin, cfg Config) {
	oe := hw.Register(p, GPIO_OE)
	out := hw.Register(p, GPIO_OUT)

	switch cfg {
	case Input:
		oe.ClearBit(p.Num)
	case OutputLow:
		out.ClearBit(p.Num)
		oe.SetBit(p.Num)
	case OutputHigh:
		out.SetBit(p.Num)
		oe.SetBit(p.Num)
	}
}

// Value returns the input level of a pin.
func (hw *Controller) Value(p Pin) bool {
	return hw.Register(p, GPIO_IN).IsSet(p.Num)
}
