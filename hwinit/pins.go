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

package hwinit

import (
	"github.com/mirage-tegra/mirage/soc/nvidia/gpio"
	"github.com/mirage-tegra/mirage/soc/nvidia/pinmux"
	"github.com/mirage-tegra/mirage/soc/nvidia/tegra210"
)

// Joy-Con rail detection and charger lines
var railPins = []gpio.Pin{
	{Port: gpio.PortG, Num: 0},
	{Port: gpio.PortD, Num: 1},
	{Port: gpio.PortE, Num: 6},
	{Port: gpio.PortH, Num: 6},
}

// Volume buttons
var (
	VolumeUp   = gpio.Pin{Port: gpio.PortX, Num: 6}
	VolumeDown = gpio.Pin{Port: gpio.PortX, Num: 7}
)

// ConfigurePins routes the pins required before the next stage: the
// Joy-Con rail UARTs are released to GPIO, the rail detect lines and volume
// buttons become GPIO inputs, I2C1, I2C5 and UART-A get their pin functions.
//
// Function selection always precedes GPIO mode selection, which precedes
// direction configuration.
func ConfigurePins(soc *tegra210.SoC) {
	soc.PINMUX.Aux(pinmux.PINMUX_AUX_UART2_TX).Set(0)
	soc.PINMUX.Aux(pinmux.PINMUX_AUX_UART3_TX).Set(0)

	soc.PINMUX.Aux(pinmux.PINMUX_AUX_PE6).Set(pinmux.INPUT)
	soc.PINMUX.Aux(pinmux.PINMUX_AUX_PH6).Set(pinmux.INPUT)

	for _, p := range railPins {
		soc.GPIO.SetMode(p, gpio.GPIO)
	}

	for _, p := range railPins {
		soc.GPIO.Configure(p, gpio.Input)
	}

	soc.PINMUX.ConfigureI2C(pinmux.I2C1)
	soc.PINMUX.ConfigureI2C(pinmux.I2C5)
	soc.PINMUX.ConfigureUART(pinmux.UARTA)

	for _, p := range []gpio.Pin{VolumeUp, VolumeDown} {
		soc.GPIO.SetMode(p, gpio.GPIO)
		soc.GPIO.Configure(p, gpio.Input)
	}
}
