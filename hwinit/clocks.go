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

// Package hwinit implements the early hardware bring-up sequence of NVIDIA
// Tegra X1 (T210) SoCs, reproducing the clock, pin, scratch and key
// provisioning work of the boot ROM when its execution has been cut short.
//
// Every routine operates on the peripherals of a single tegra210.SoC
// instance and must be executed in the order enforced by Orchestrator.
package hwinit

import (
	"github.com/mirage-tegra/mirage/soc/nvidia/car"
	"github.com/mirage-tegra/mirage/soc/nvidia/tegra210"
)

// Oscillator and clock settings for a 38.4 MHz crystal.
const (
	clkMDivisor = 2
	oscDrive    = 7
	lp0OscDrive = 7

	// clk_m to 1 MHz ratio (19.2 MHz * 5 / 96)
	usecDividend = 5
	usecDivisor  = 96

	// TSC_MULT = clk_m * 16 / 32.768 kHz
	tscMult = tegra210.CLK_M_FREQ * 16 / tegra210.CLK_32K_FREQ
)

// ConfigureClocks brings the oscillator, PLLs and bus dividers to their
// operating state, it must be invoked once after reset and before any clock
// dependent peripheral is used.
func ConfigureClocks(soc *tegra210.SoC) {
	soc.CAR.SetClkMDivisor(clkMDivisor)
	soc.SYSCTR.SetFrequency(tegra210.CLK_M_FREQ)
	soc.TIMER.Calibrate(usecDividend, usecDivisor)
	soc.CAR.SetOscillator(car.OSC_FREQ_38_4, oscDrive)
	soc.PMC.SetLP0OscDrive(lp0OscDrive)

	// HCLK = SCLK / 2, PCLK = HCLK
	soc.CAR.SetSystemRate(2, 1)
	soc.CAR.DisablePLLMB()
	soc.PMC.SetTSCMultiplier(tscMult)

	soc.CAR.SetSclkSource(1, car.SCLK_SOURCE_PLLP_OUT2)

	// HCLK = SCLK, PCLK = HCLK / 3
	soc.CAR.SetSystemRate(1, 3)
}
