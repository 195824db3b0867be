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

package pmc_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mirage-tegra/mirage/internal/sim"
	"github.com/mirage-tegra/mirage/soc/nvidia/pmc"
	"github.com/mirage-tegra/mirage/soc/nvidia/tegra210"
)

func TestSetLP0OscDrive(t *testing.T) {
	bus := sim.NewTegra()
	bus.Poke(tegra210.PMC_BASE+pmc.APBDEV_PMC_OSC_EDPD_OVER, 0x7f)
	bus.Poke(tegra210.PMC_BASE+pmc.APBDEV_PMC_SCRATCH188, 0x01000001)

	hw := &pmc.PMC{Base: tegra210.PMC_BASE, Bus: bus}
	hw.Init()
	hw.SetLP0OscDrive(7)

	want := map[string]uint32{
		"OSC_EDPD_OVER": 0x0040000f,
		"CNTRL2":        0x00001000,
		"SCRATCH188":    0x02000001,
	}

	got := map[string]uint32{
		"OSC_EDPD_OVER": bus.Peek(hw.OscEdpdOver.Addr),
		"CNTRL2":        bus.Peek(hw.Cntrl2.Addr),
		"SCRATCH188":    bus.Peek(hw.Scratch188.Addr),
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Got diff: %s", diff)
	}
}

func TestSetTSCMultiplier(t *testing.T) {
	bus := sim.NewTegra()
	bus.Poke(tegra210.PMC_BASE+pmc.APBDEV_PMC_TSC_MULT, 0xabcd0000)

	hw := &pmc.PMC{Base: tegra210.PMC_BASE, Bus: bus}
	hw.Init()
	hw.SetTSCMultiplier(tegra210.CLK_M_FREQ * 16 / tegra210.CLK_32K_FREQ)

	if got, want := bus.Peek(hw.TscMult.Addr), uint32(0xabcd249f); got != want {
		t.Fatalf("got %#x, want %#x", got, want)
	}
}
