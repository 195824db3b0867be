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

package timer_test

import (
	"testing"

	"github.com/mirage-tegra/mirage/internal/sim"
	"github.com/mirage-tegra/mirage/soc/nvidia/tegra210"
	"github.com/mirage-tegra/mirage/soc/nvidia/timer"
)

func newTimer() (*timer.Timer, *sim.Tegra) {
	bus := sim.NewTegra()
	hw := &timer.Timer{Base: tegra210.TIMER_BASE, Bus: bus}
	hw.Init()
	return hw, bus
}

func TestCalibrate(t *testing.T) {
	hw, bus := newTimer()
	hw.Calibrate(5, 96)

	if got, want := bus.Peek(hw.UsecCfg.Addr), uint32(0x45f); got != want {
		t.Fatalf("got %#x, want %#x", got, want)
	}
}

func TestUsleep(t *testing.T) {
	for _, test := range []struct {
		name string
		tick uint32
		us   uint32
	}{
		{name: "1us tick", tick: 1, us: 100},
		{name: "coarse tick", tick: 7, us: 100},
		{name: "zero", tick: 1, us: 0},
	} {
		t.Run(test.name, func(t *testing.T) {
			hw, bus := newTimer()
			bus.Tick = test.tick

			start := hw.Microseconds()
			hw.Usleep(test.us)

			if elapsed := hw.Microseconds() - start; elapsed < test.us {
				t.Fatalf("slept %d us, want at least %d", elapsed, test.us)
			}
		})
	}
}

func TestUsleepWraparound(t *testing.T) {
	hw, bus := newTimer()
	bus.Tick = 1000
	bus.Poke(hw.Counter.Addr, 0xfffff000)

	hw.Usleep(10000)

	if n := bus.Reads(hw.Counter.Addr); n > 20 {
		t.Fatalf("counter read %d times", n)
	}
}

func TestClock(t *testing.T) {
	var c timer.Clock

	for _, test := range []struct {
		usec uint32
		want int64
	}{
		{0, 0},
		{1000, 1000000},
		{0xffffffff, 0xffffffff * 1000},
		// wrap
		{5, (1<<32 + 5) * 1000},
		{10, (1<<32 + 10) * 1000},
		{0xfffffff0, (1<<32 + 0xfffffff0) * 1000},
		// second wrap
		{0, (2 << 32) * 1000},
	} {
		if got := c.Nanoseconds(test.usec); got != test.want {
			t.Fatalf("Nanoseconds(%#x): got %d, want %d", test.usec, got, test.want)
		}
	}
}
