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

//go:build !tamago

// The mirage-sim tool runs the Tegra X1 bring-up sequence against a
// simulated register bank and prints the resulting register trace, only
// useful for development work.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"k8s.io/klog"

	"github.com/mirage-tegra/mirage/hwinit"
	"github.com/mirage-tegra/mirage/internal/sim"
	"github.com/mirage-tegra/mirage/mmio"
	"github.com/mirage-tegra/mirage/soc/nvidia/se"
	"github.com/mirage-tegra/mirage/soc/nvidia/tegra210"
)

var (
	seedFile = flag.String("seed", "", "YAML file seeding fuse words and register values.")
	until    = flag.String("until", hwinit.HandoffReady.String(), "Boot stage to stop at.")
	mbist    = flag.Bool("mbist", false, "Run the MBIST workaround before clock configuration.")
	collapse = flag.Bool("collapse", true, "Collapse consecutive TZRAM scrub writes into a single line.")
	trace    = flag.Bool("trace", true, "Print the register trace.")
)

func parseStage(name string) (hwinit.BootStage, error) {
	for s := hwinit.Reset; s <= hwinit.HandoffReady; s++ {
		if strings.EqualFold(s.String(), name) {
			return s, nil
		}
	}

	return 0, fmt.Errorf("unknown boot stage %q", name)
}

// run performs the bring-up up to the target stage, the orchestrator is
// returned even on failure to report its stage.
func run(bus *sim.Tegra, target hwinit.BootStage, opts hwinit.Options) (*hwinit.Orchestrator, *tegra210.SoC, error) {
	soc := tegra210.New(bus)
	o := hwinit.NewOrchestrator(soc, opts)

	for o.Stage() < target {
		if err := o.Step(); err != nil {
			return o, soc, err
		}
	}

	return o, soc, nil
}

// render prints the access trace, consecutive writes within the TZRAM window
// are collapsed when requested.
func render(w io.Writer, accesses []sim.Access, collapse bool) {
	tzram := mmio.Window{Start: tegra210.TZRAM_START, Size: tegra210.TZRAM_SIZE}

	for i := 0; i < len(accesses); i++ {
		a := accesses[i]

		if !collapse || a.Op != sim.Write || !tzram.Contains(a.Addr) {
			fmt.Fprintln(w, a)
			continue
		}

		j := i

		for j+1 < len(accesses) && accesses[j+1].Op == sim.Write && tzram.Contains(accesses[j+1].Addr) {
			j++
		}

		fmt.Fprintf(w, "%s %-40s %#08x (%d writes to %#08x-%#08x)\n",
			a.Op, "TZRAM", a.Val, j-i+1, a.Addr, accesses[j].Addr+3)

		i = j
	}
}

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	target, err := parseStage(*until)

	if err != nil {
		klog.Exitf("Invalid -until: %v", err)
	}

	bus := sim.NewTegra()

	if len(*seedFile) > 0 {
		seed, err := loadSeed(*seedFile)

		if err != nil {
			klog.Exitf("Failed to load seed: %v", err)
		}

		seed.apply(bus)
	}

	opts := hwinit.Options{
		MBIST: *mbist,
		Observer: func(s hwinit.BootStage) {
			klog.Infof("Reached %s after %d register accesses", s, len(bus.Trace))
		},
	}

	o, soc, err := run(bus, target, opts)

	if *trace {
		render(os.Stdout, bus.Trace, *collapse)
	}

	for _, slot := range []int{se.SBKSlot, se.SSKSlot} {
		klog.Infof("Key slot %d: %s", slot, soc.SE.KeySlotState(slot))
	}

	for _, a := range bus.Rejected {
		klog.Warningf("Rejected: %s", a)
	}

	if err != nil {
		klog.Exitf("Bring-up halted at %s: %v", o.Stage(), err)
	}

	klog.Infof("Bring-up completed at %s", o.Stage())
}
