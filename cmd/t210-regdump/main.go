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

//go:build linux

// The t210-regdump tool prints the bring-up registers of a running Tegra X1
// (T210) board through /dev/mem, all accesses are read-only.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"k8s.io/klog"

	"github.com/mirage-tegra/mirage/mmio/devmem"
	"github.com/mirage-tegra/mirage/soc/nvidia/se"
	"github.com/mirage-tegra/mirage/soc/nvidia/tegra210"
)

var memFile = flag.String("mem", "/dev/mem", "Physical memory device.")

// dumpDevice maps the bring-up register blocks of a memory device and prints
// them, the device is always closed before returning.
func dumpDevice(w io.Writer, path string) (err error) {
	bus, err := devmem.Open(path, false)

	if err != nil {
		return err
	}

	defer func() {
		err = errors.Join(err, bus.Close())
	}()

	for _, b := range blocks {
		if err = bus.Map(b.base, b.size); err != nil {
			return fmt.Errorf("could not map %#08x (%w)", b.base, err)
		}
	}

	soc := tegra210.New(bus)
	dump(w, soc)

	for _, slot := range []int{se.SBKSlot, se.SSKSlot} {
		klog.Infof("Key slot %d read back locked: %v", slot, keySlotLocked(soc, slot))
	}

	return
}

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	if err := dumpDevice(os.Stdout, *memFile); err != nil {
		klog.Exitf("Failed to dump %s: %v", *memFile, err)
	}
}
