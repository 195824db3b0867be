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
	"errors"
	"fmt"

	"github.com/mirage-tegra/mirage/mmio"
	"github.com/mirage-tegra/mirage/soc/nvidia/fuse"
	"github.com/mirage-tegra/mirage/soc/nvidia/pmc"
	"github.com/mirage-tegra/mirage/soc/nvidia/se"
	"github.com/mirage-tegra/mirage/soc/nvidia/tegra210"
)

var (
	// ErrAlreadyProvisioned is returned when key provisioning is requested
	// more than once per boot.
	ErrAlreadyProvisioned = errors.New("keys already provisioned")
	// ErrBlankFuses is returned when the private key fuses read as zero.
	ErrBlankFuses = errors.New("private key fuses are blank")
)

// Provisioner programs and locks the Security Engine key slots.
type Provisioner struct {
	FUSE  *fuse.FUSE
	SE    *se.SE
	PMC   *pmc.PMC
	TZRAM mmio.Window

	done bool
}

// NewProvisioner returns a key provisioner for the given SoC.
//
// The provisioner does not track bring-up progress: ConfigureClocks and
// ConfigureScratch must have completed before ProvisionKeys is invoked, as
// the Security Engine key derivation depends on the clock state. Orchestrator
// enforces this order and should be preferred to direct use.
func NewProvisioner(soc *tegra210.SoC) *Provisioner {
	return &Provisioner{
		FUSE:  soc.FUSE,
		SE:    soc.SE,
		PMC:   soc.PMC,
		TZRAM: soc.TZRAM,
	}
}

// Provisioned returns whether ProvisionKeys has been invoked.
func (p *Provisioner) Provisioned() bool {
	return p.done
}

// ProvisionKeys loads the Secure Boot Key (SBK) from fuses into its key slot,
// locks it, scrubs the secure context window, locks the Secure Storage Key
// (SSK) slot and clears the boot reason.
//
// It must be invoked exactly once, after clocks and scratch registers have
// been configured. Any error leaves the hardware in an undefined state and
// must be treated as fatal.
func (p *Provisioner) ProvisionKeys() (err error) {
	if p.done {
		return ErrAlreadyProvisioned
	}

	p.done = true

	sbk := p.FUSE.PrivateKey()
	defer clear(sbk[:])

	if sbk == [fuse.SBKSize]byte{} {
		return ErrBlankFuses
	}

	if err = p.SE.SetAESKeySlot(se.SBKSlot, sbk[:]); err != nil {
		return fmt.Errorf("could not set SBK (%w)", err)
	}

	if err = p.SE.LockSBK(); err != nil {
		return fmt.Errorf("could not lock SBK (%w)", err)
	}

	p.TZRAM.Zero()
	p.PMC.CryptoOp.Set(0)

	if err = p.SE.LockSSK(); err != nil {
		return fmt.Errorf("could not lock SSK (%w)", err)
	}

	p.PMC.Scratch200.Set(0)
	p.PMC.RstStatus.Set(0)

	return
}
