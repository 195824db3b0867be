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

//go:build tamago && arm && debug

package main

import (
	"log"
	"os"
	_ "unsafe"

	"github.com/mirage-tegra/mirage/soc/nvidia/tegra210"
	"github.com/mirage-tegra/mirage/soc/nvidia/uart"
)

var console *uart.UART

func init() {
	log.SetOutput(os.Stdout)
}

//go:linkname printk runtime.printk
func printk(c byte) {
	if console != nil {
		console.Tx(c)
	}
}

// configureConsole enables UART-A output once its pins are routed.
//
// UART-A is the only controller routed by hwinit.ConfigurePins, output on
// any other port (such as the Joy-Con rail UARTs, released to GPIO during
// bring-up) would never reach a pin.
func configureConsole(soc *tegra210.SoC) {
	console = soc.UARTA
}
