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

//go:build linux

package main

import (
	"fmt"
	"io"

	"github.com/mirage-tegra/mirage/mmio"
	"github.com/mirage-tegra/mirage/soc/nvidia/car"
	"github.com/mirage-tegra/mirage/soc/nvidia/gpio"
	"github.com/mirage-tegra/mirage/soc/nvidia/pinmux"
	"github.com/mirage-tegra/mirage/soc/nvidia/pmc"
	"github.com/mirage-tegra/mirage/soc/nvidia/se"
	"github.com/mirage-tegra/mirage/soc/nvidia/sysctr"
	"github.com/mirage-tegra/mirage/soc/nvidia/tegra210"
	"github.com/mirage-tegra/mirage/soc/nvidia/timer"
)

// Blocks mapped for inspection, the fuse controller is deliberately left out
// so that key material is never read.
var blocks = []struct {
	base uint32
	size uint32
}{
	{tegra210.TIMER_BASE, timer.Span},
	{tegra210.CAR_BASE, car.Span},
	{tegra210.GPIO_BASE, gpio.Span},
	{tegra210.PINMUX_BASE, pinmux.Span},
	{tegra210.PMC_BASE, pmc.Span},
	{tegra210.SE_BASE, se.Span},
	{tegra210.SYSCTR0_BASE, sysctr.Span},
}

var gpioPorts = []int{gpio.PortD, gpio.PortE, gpio.PortG, gpio.PortH, gpio.PortX}

var pinmuxRegisters = []uint32{
	pinmux.PINMUX_AUX_UART1_TX,
	pinmux.PINMUX_AUX_UART1_RX,
	pinmux.PINMUX_AUX_UART2_TX,
	pinmux.PINMUX_AUX_UART3_TX,
	pinmux.PINMUX_AUX_GEN1_I2C_SCL,
	pinmux.PINMUX_AUX_GEN1_I2C_SDA,
	pinmux.PINMUX_AUX_PWR_I2C_SCL,
	pinmux.PINMUX_AUX_PWR_I2C_SDA,
	pinmux.PINMUX_AUX_PE6,
	pinmux.PINMUX_AUX_PH6,
}

// registers returns the registers touched during bring-up, in bring-up
// order.
func registers(soc *tegra210.SoC) (regs []mmio.Register) {
	regs = append(regs,
		soc.CAR.SpareReg0,
		soc.SYSCTR.CNTFID0,
		soc.TIMER.UsecCfg,
		soc.CAR.OscCtrl,
		soc.PMC.OscEdpdOver,
		soc.PMC.Cntrl2,
		soc.PMC.Scratch188,
		soc.CAR.PLLMBBase,
		soc.PMC.TscMult,
		soc.CAR.ClkSourceSys,
		soc.CAR.SclkBurstPolicy,
		soc.CAR.SuperSclkDivider,
		soc.CAR.SystemRate,
	)

	for _, off := range pinmuxRegisters {
		regs = append(regs, soc.PINMUX.Aux(off))
	}

	for _, port := range gpioPorts {
		p := gpio.Pin{Port: port}

		regs = append(regs,
			soc.GPIO.Register(p, gpio.GPIO_CNF),
			soc.GPIO.Register(p, gpio.GPIO_OE),
		)
	}

	regs = append(regs,
		soc.PMC.Scratch20,
		soc.PMC.Scratch190,
		soc.PMC.SecureScratch21,
		soc.PMC.CryptoOp,
		soc.PMC.Scratch200,
		soc.PMC.RstStatus,
	)

	for _, slot := range []int{se.SBKSlot, se.SSKSlot} {
		regs = append(regs, mmio.Register{
			Bus:  soc.Bus,
			Addr: tegra210.SE_BASE + se.SE_CRYPTO_KEYTABLE_ACCESS + uint32(slot)*4,
		})
	}

	return
}

func dump(w io.Writer, soc *tegra210.SoC) {
	for _, r := range registers(soc) {
		fmt.Fprintf(w, "%#08x %-40s %#08x\n", r.Addr, tegra210.RegisterName(r.Addr), r.Get())
	}
}

// keySlotLocked returns whether key read back has been revoked on a key
// slot.
func keySlotLocked(soc *tegra210.SoC, slot int) bool {
	r := mmio.Register{
		Bus:  soc.Bus,
		Addr: tegra210.SE_BASE + se.SE_CRYPTO_KEYTABLE_ACCESS + uint32(slot)*4,
	}

	return !r.IsSet(se.KEYTABLE_ACCESS_KEYREAD)
}
