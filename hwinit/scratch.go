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
	"github.com/mirage-tegra/mirage/soc/nvidia/tegra210"
)

// PMC scratch fields
const (
	scratch20Field       = 18
	scratch190Field      = 0
	secureScratch21Field = 4
)

// ConfigureScratch patches the PMC scratch flags consumed by later boot
// stages.
func ConfigureScratch(soc *tegra210.SoC) {
	soc.PMC.Scratch20.ClearN(scratch20Field, 0b11)
	soc.PMC.Scratch190.ClearBit(scratch190Field)
	soc.PMC.SecureScratch21.SetBit(secureScratch21Field)
}
