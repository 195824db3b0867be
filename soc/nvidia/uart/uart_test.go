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

package uart_test

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mirage-tegra/mirage/internal/sim"
	"github.com/mirage-tegra/mirage/soc/nvidia/tegra210"
	"github.com/mirage-tegra/mirage/soc/nvidia/uart"
)

func thr(bus *sim.Tegra) (out []byte) {
	for _, a := range bus.Writes() {
		if a.Addr == tegra210.UARTA_BASE+uart.UART_THR_DLAB {
			out = append(out, byte(a.Val))
		}
	}

	return
}

func TestWrite(t *testing.T) {
	bus := sim.NewTegra()
	bus.Poke(tegra210.UARTA_BASE+uart.UART_LSR, 1<<uart.LSR_THRE)

	hw := &uart.UART{Base: tegra210.UARTA_BASE, Bus: bus}
	hw.Init()

	fmt.Fprintf(hw, "Mirage: %s!\n", "Ready")

	if diff := cmp.Diff([]byte("Mirage: Ready!\n"), thr(bus)); diff != "" {
		t.Fatalf("Got diff: %s", diff)
	}
}

func TestTxTimeout(t *testing.T) {
	bus := sim.NewTegra()

	hw := &uart.UART{Base: tegra210.UARTA_BASE, Bus: bus}
	hw.Init()

	if hw.Tx('x') {
		t.Fatal("expected character to be dropped")
	}

	if out := thr(bus); len(out) != 0 {
		t.Fatalf("unexpected output %q", out)
	}
}
