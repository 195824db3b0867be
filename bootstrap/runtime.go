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

//go:build tamago && arm

package main

import (
	_ "unsafe"

	"github.com/mirage-tegra/mirage/mmio"
	"github.com/mirage-tegra/mirage/soc/nvidia/tegra210"
	"github.com/mirage-tegra/mirage/soc/nvidia/timer"
)

const timerCounter = tegra210.TIMER_BASE + timer.TIMERUS_CNTR_1US

var (
	clock    timer.Clock
	rngState uint32
)

// Init takes care of the lower level initialization triggered early in
// runtime setup, it must not allocate. Clocks are left as configured by the
// boot ROM until hwinit.ConfigureClocks runs.
//
//go:linkname Init runtime.hwinit
func Init() {}

//go:linkname nanotime1 runtime.nanotime1
func nanotime1() int64 {
	return clock.Nanoseconds(mmio.Phys{}.Read32(timerCounter))
}

//go:linkname initRNG runtime.initRNG
func initRNG() {
	rngState = mmio.Phys{}.Read32(timerCounter) | 1
}

// getRandomData returns xorshift output seeded from the timer, the SE
// random number generator is not initialized at this stage and no secret is
// ever derived from it.
//
//go:linkname getRandomData runtime.getRandomData
func getRandomData(b []byte) {
	for i := range b {
		rngState ^= rngState << 13
		rngState ^= rngState >> 17
		rngState ^= rngState << 5
		b[i] = byte(rngState)
	}
}
