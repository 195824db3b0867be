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

package fuse_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mirage-tegra/mirage/internal/sim"
	"github.com/mirage-tegra/mirage/soc/nvidia/fuse"
	"github.com/mirage-tegra/mirage/soc/nvidia/tegra210"
)

func TestPrivateKey(t *testing.T) {
	bus := sim.NewTegra()
	bus.SetPrivateKey(0x11111111, 0x22222222, 0x33333333, 0x44444444, 0x55555555)

	hw := &fuse.FUSE{Base: tegra210.FUSE_BASE, Bus: bus}
	hw.Init()

	want := [fuse.SBKSize]byte{
		0x11, 0x11, 0x11, 0x11,
		0x22, 0x22, 0x22, 0x22,
		0x33, 0x33, 0x33, 0x33,
		0x44, 0x44, 0x44, 0x44,
	}

	if diff := cmp.Diff(want, hw.PrivateKey()); diff != "" {
		t.Fatalf("Got diff: %s", diff)
	}

	if n := bus.Reads(tegra210.FUSE_BASE + fuse.FUSE_PRIVATE_KEY4); n != 0 {
		t.Fatalf("FUSE_PRIVATE_KEY4 read %d times", n)
	}
}

func TestPrivateKeyLayout(t *testing.T) {
	bus := sim.NewTegra()
	// fuse bytes 0x11, 0x22, 0x33, 0x44 in the first private key word
	bus.SetPrivateKey(0x44332211)

	hw := &fuse.FUSE{Base: tegra210.FUSE_BASE, Bus: bus}
	hw.Init()

	want := [fuse.SBKSize]byte{0x11, 0x22, 0x33, 0x44}

	if diff := cmp.Diff(want, hw.PrivateKey()); diff != "" {
		t.Fatalf("Got diff: %s", diff)
	}
}
