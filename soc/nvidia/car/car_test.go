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

package car_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mirage-tegra/mirage/internal/sim"
	"github.com/mirage-tegra/mirage/soc/nvidia/car"
	"github.com/mirage-tegra/mirage/soc/nvidia/tegra210"
)

func TestCAR(t *testing.T) {
	for _, test := range []struct {
		name  string
		reset map[uint32]uint32
		f     func(hw *car.CAR)
		want  map[uint32]uint32
	}{
		{
			name: "clk_m divisor",
			reset: map[uint32]uint32{
				car.CLK_RST_CONTROLLER_SPARE_REG0: 0xffffffff,
			},
			f: func(hw *car.CAR) { hw.SetClkMDivisor(2) },
			want: map[uint32]uint32{
				car.CLK_RST_CONTROLLER_SPARE_REG0: 0xfffffff7,
			},
		},
		{
			name: "oscillator",
			f:    func(hw *car.CAR) { hw.SetOscillator(car.OSC_FREQ_38_4, 7) },
			want: map[uint32]uint32{
				car.CLK_RST_CONTROLLER_OSC_CTRL: 0x50000071,
			},
		},
		{
			name: "system rate hclk/2",
			f:    func(hw *car.CAR) { hw.SetSystemRate(2, 1) },
			want: map[uint32]uint32{
				car.CLK_RST_CONTROLLER_CLK_SYSTEM_RATE: 0x10,
			},
		},
		{
			name: "system rate pclk/3",
			f:    func(hw *car.CAR) { hw.SetSystemRate(1, 3) },
			want: map[uint32]uint32{
				car.CLK_RST_CONTROLLER_CLK_SYSTEM_RATE: 0x2,
			},
		},
		{
			name: "PLLMB",
			reset: map[uint32]uint32{
				car.CLK_RST_CONTROLLER_PLLMB_BASE: 0x40001234,
			},
			f: func(hw *car.CAR) { hw.DisablePLLMB() },
			want: map[uint32]uint32{
				car.CLK_RST_CONTROLLER_PLLMB_BASE: 0x00001234,
			},
		},
		{
			name: "sclk source",
			reset: map[uint32]uint32{
				car.CLK_RST_CONTROLLER_CLK_SOURCE_SYS: 0x3,
			},
			f: func(hw *car.CAR) { hw.SetSclkSource(1, car.SCLK_SOURCE_PLLP_OUT2) },
			want: map[uint32]uint32{
				car.CLK_RST_CONTROLLER_CLK_SOURCE_SYS:     0,
				car.CLK_RST_CONTROLLER_SCLK_BURST_POLICY:  0x20004444,
				car.CLK_RST_CONTROLLER_SUPER_SCLK_DIVIDER: 0x80000000,
			},
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			bus := sim.NewTegra()

			for off, val := range test.reset {
				bus.Poke(tegra210.CAR_BASE+off, val)
			}

			hw := &car.CAR{Base: tegra210.CAR_BASE, Bus: bus}
			hw.Init()
			test.f(hw)

			got := make(map[uint32]uint32)

			for off := range test.want {
				got[off] = bus.Peek(tegra210.CAR_BASE + off)
			}

			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Fatalf("Got diff: %s", diff)
			}
		})
	}
}

func TestInitPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on invalid instance")
		}
	}()

	(&car.CAR{}).Init()
}
