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

//go:build tamago && arm && !debug

package main

import (
	"io"
	"log"
	_ "unsafe"

	"github.com/mirage-tegra/mirage/soc/nvidia/tegra210"
)

// Debug output is only available in debug builds, the runtime printk
// function, responsible for all console logging operations (i.e.
// stdout/stderr), is overridden with a NOP so that no key provisioning state
// can leak on the serial lines.

func init() {
	log.SetOutput(io.Discard)
}

//go:linkname printk runtime.printk
func printk(c byte) {}

func configureConsole(_ *tegra210.SoC) {}
