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

	"github.com/usbarmory/tamago/dma"

	"github.com/mirage-tegra/mirage/soc/nvidia/tegra210"
)

//go:linkname ramStart runtime.ramStart
var ramStart uint32 = tegra210.IRAM_STACK_START

//go:linkname ramSize runtime.ramSize
var ramSize uint32 = tegra210.IRAM_STACK_SIZE

//go:linkname ramStackOffset runtime.ramStackOffset
var ramStackOffset uint32 = 0x100

// stagingRegion holds the next stage, it is reserved in full so that no
// allocation can ever land on it.
var stagingRegion *dma.Region

func init() {
	var err error

	if stagingRegion, err = dma.NewRegion(tegra210.IRAM_LOW_START, tegra210.IRAM_LOW_SIZE, false); err != nil {
		halt()
	}

	stagingRegion.Reserve(tegra210.IRAM_LOW_SIZE, 0)
}
