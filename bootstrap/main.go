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

// Command bootstrap is the first stage executed on the Boot and Power
// Management Processor (BPMP) of NVIDIA Tegra X1 (T210) SoCs when entering
// through an interrupted boot ROM.
//
// It replays the hardware bring-up skipped by the boot ROM and transfers
// control to the next stage, previously staged in low IRAM.
package main

import (
	"log"
	"runtime"

	"github.com/coreos/go-semver/semver"

	"github.com/mirage-tegra/mirage/hwinit"
	"github.com/mirage-tegra/mirage/mmio"
	"github.com/mirage-tegra/mirage/soc/nvidia/tegra210"
)

// initialized at compile time (see Makefile)
var (
	Build    string
	Revision string
	Version  string
)

var soc *tegra210.SoC

// exec jumps to the next stage entry point, defined in boot.s.
func exec(entry uint32)

// halt parks the processor, there is nothing to return to.
func halt() {
	for {
	}
}

func init() {
	log.SetFlags(0)

	if len(Version) > 0 {
		if _, err := semver.NewVersion(Version); err != nil {
			log.Printf("mirage: invalid version %q (%v)", Version, err)
			halt()
		}
	}

	soc = tegra210.New(mmio.Phys{})
}

func observe(stage hwinit.BootStage) {
	if stage == hwinit.PinsReady {
		configureConsole(soc)
	}

	log.Printf("mirage: %s", stage)
}

func main() {
	o := hwinit.NewOrchestrator(soc, hwinit.Options{
		MBIST:    mbist,
		Observer: observe,
	})

	if err := o.Run(); err != nil {
		log.Printf("mirage: bring-up halted at %s, %v", o.Stage(), err)
		halt()
	}

	log.Printf("%s/%s (%s) • %s %s %s", runtime.GOOS, runtime.GOARCH, runtime.Version(), Version, Revision, Build)
	log.Printf("Mirage: Ready!")

	entry := uint32(stagingRegion.Start())

	if err := o.Handoff(func() { exec(entry) }); err != nil {
		log.Printf("mirage: handoff refused, %v", err)
	}

	halt()
}
