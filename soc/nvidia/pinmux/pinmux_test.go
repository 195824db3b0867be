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

package pinmux_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mirage-tegra/mirage/internal/sim"
	"github.com/mirage-tegra/mirage/soc/nvidia/pinmux"
	"github.com/mirage-tegra/mirage/soc/nvidia/tegra210"
)

func writes(bus *sim.Tegra) map[uint32]uint32 {
	m := make(map[uint32]uint32)

	for _, a := range bus.Writes() {
		m[a.Addr-tegra210.PINMUX_BASE] = a.Val
	}

	return m
}

func TestConfigure(t *testing.T) {
	for _, test := range []struct {
		name string
		f    func(hw *pinmux.Pinmux)
		want map[uint32]uint32
	}{
		{
			name: "I2C1",
			f:    func(hw *pinmux.Pinmux) { hw.ConfigureI2C(pinmux.I2C1) },
			want: map[uint32]uint32{
				pinmux.PINMUX_AUX_GEN1_I2C_SCL: pinmux.INPUT,
				pinmux.PINMUX_AUX_GEN1_I2C_SDA: pinmux.INPUT,
			},
		},
		{
			name: "I2C5",
			f:    func(hw *pinmux.Pinmux) { hw.ConfigureI2C(pinmux.I2C5) },
			want: map[uint32]uint32{
				pinmux.PINMUX_AUX_PWR_I2C_SCL: pinmux.INPUT,
				pinmux.PINMUX_AUX_PWR_I2C_SDA: pinmux.INPUT,
			},
		},
		{
			name: "UARTA",
			f:    func(hw *pinmux.Pinmux) { hw.ConfigureUART(pinmux.UARTA) },
			want: map[uint32]uint32{
				pinmux.PINMUX_AUX_UART1_TX:  0,
				pinmux.PINMUX_AUX_UART1_RX:  0x48,
				pinmux.PINMUX_AUX_UART1_RTS: 0,
				pinmux.PINMUX_AUX_UART1_CTS: 0x44,
			},
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			bus := sim.NewTegra()
			hw := &pinmux.Pinmux{Base: tegra210.PINMUX_BASE, Bus: bus}
			hw.Init()
			test.f(hw)

			if diff := cmp.Diff(test.want, writes(bus)); diff != "" {
				t.Fatalf("Got diff: %s", diff)
			}
		})
	}
}

func TestRegisterName(t *testing.T) {
	for off, want := range map[uint32]string{
		pinmux.PINMUX_AUX_PE6: "PINMUX_AUX_PE6",
		0x300:                 "PINMUX_AUX+0x300",
		pinmux.Span:           "",
	} {
		if got := pinmux.RegisterName(off); got != want {
			t.Errorf("RegisterName(%#x): got %q, want %q", off, got, want)
		}
	}
}
