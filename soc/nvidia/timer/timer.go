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

// Package timer implements the microsecond timer (TIMERUS) of NVIDIA Tegra X1
// (T210) SoCs, used for calibrated busy-wait delays.
package timer

import (
	"github.com/mirage-tegra/mirage/mmio"
)

// TIMERUS registers
const (
	TIMERUS_CNTR_1US = 0x10
	TIMERUS_USEC_CFG = 0x14

	Span = 0x400
)

// USEC_CFG fields
const (
	USEC_DIVISOR  = 0
	USEC_DIVIDEND = 8
)

var regNames = map[uint32]string{
	TIMERUS_CNTR_1US: "TIMERUS_CNTR_1US",
	TIMERUS_USEC_CFG: "TIMERUS_USEC_CFG",
}

// RegisterName returns the name of the register at the given offset.
func RegisterName(off uint32) string {
	return regNames[off]
}

// Timer represents the microsecond timer instance.
type Timer struct {
	// Base register
	Base uint32
	// Register bus
	Bus mmio.Bus

	Counter mmio.Register
	UsecCfg mmio.Register
}

// Init initializes the timer register accessors.
func (hw *Timer) Init() {
	if hw.Base == 0 || hw.Bus == nil {
		panic("invalid TIMER instance")
	}

	hw.Counter = mmio.Register{Bus: hw.Bus, Addr: hw.Base + TIMERUS_CNTR_1US}
	hw.UsecCfg = mmio.Register{Bus: hw.Bus, Addr: hw.Base + TIMERUS_USEC_CFG}
}

// Calibrate sets the ratio applied to clk_m to obtain the 1 MHz timer tick
// (e.g. 5/96 for a 19.2 MHz clk_m).
func (hw *Timer) Calibrate(dividend uint32, divisor uint32) {
	hw.UsecCfg.Set((dividend-1)<<USEC_DIVIDEND | (divisor-1)<<USEC_DIVISOR)
}

// Microseconds returns the free running microsecond counter.
func (hw *Timer) Microseconds() uint32 {
	return hw.Counter.Get()
}

// Usleep spins for at least the given number of microseconds.
func (hw *Timer) Usleep(us uint32) {
	start := hw.Microseconds()

	for hw.Microseconds()-start <= us {
	}
}

// Sleep spins for at least the given number of seconds.
func (hw *Timer) Sleep(s uint32) {
	for ; s > 0; s-- {
		hw.Usleep(1000000)
	}
}

// Clock extends the 32-bit microsecond counter, which wraps every ~71
// minutes, into a monotonic nanosecond time. Samples must be taken at least
// once per counter period.
type Clock struct {
	last  uint32
	epoch int64
}

// Nanoseconds returns the time elapsed since the counter origin for a
// counter sample.
func (c *Clock) Nanoseconds(usec uint32) int64 {
	if usec < c.last {
		c.epoch += 1 << 32
	}

	c.last = usec

	return (c.epoch + int64(usec)) * 1000
}
