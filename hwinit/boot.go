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

	"github.com/mirage-tegra/mirage/soc/nvidia/tegra210"
)

// ErrNotImplemented is returned by bring-up steps which are not available
// yet, they fail rather than silently leaving the hardware half configured.
var ErrNotImplemented = errors.New("not implemented")

// BootStage represents the bring-up progress.
type BootStage int

const (
	Reset BootStage = iota
	ClocksReady
	PinsReady
	ScratchReady
	KeysProvisioned
	HandoffReady
)

var stageNames = []string{
	Reset:           "Reset",
	ClocksReady:     "ClocksReady",
	PinsReady:       "PinsReady",
	ScratchReady:    "ScratchReady",
	KeysProvisioned: "KeysProvisioned",
	HandoffReady:    "HandoffReady",
}

func (s BootStage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return fmt.Sprintf("BootStage(%d)", int(s))
	}

	return stageNames[s]
}

// StageError is returned when a bring-up transition is requested out of
// order or repeated.
type StageError struct {
	// Current stage
	Stage BootStage
	// Requested target stage
	Target BootStage
}

func (e *StageError) Error() string {
	return fmt.Sprintf("invalid boot stage transition %s -> %s", e.Stage, e.Target)
}

// Options represents the orchestrator configuration.
type Options struct {
	// MBIST enables the memory built-in self test workaround before clock
	// configuration.
	MBIST bool
	// Observer, when set, is invoked after each completed transition.
	Observer func(BootStage)
}

// Orchestrator sequences the bring-up steps of a single boot.
type Orchestrator struct {
	soc   *tegra210.SoC
	opts  Options
	keys  *Provisioner
	stage BootStage
}

// NewOrchestrator returns the bring-up state machine for the given SoC, in
// its Reset stage.
func NewOrchestrator(soc *tegra210.SoC, opts Options) *Orchestrator {
	return &Orchestrator{
		soc:  soc,
		opts: opts,
		keys: NewProvisioner(soc),
	}
}

// Stage returns the current bring-up stage.
func (o *Orchestrator) Stage() BootStage {
	return o.stage
}

func (o *Orchestrator) transition(target BootStage) (err error) {
	switch target {
	case ClocksReady:
		if o.opts.MBIST {
			if err = MBISTWorkaround(o.soc); err != nil {
				return fmt.Errorf("MBIST workaround failed (%w)", err)
			}
		}

		ConfigureClocks(o.soc)
	case PinsReady:
		ConfigurePins(o.soc)
	case ScratchReady:
		ConfigureScratch(o.soc)
	case KeysProvisioned:
		if err = o.keys.ProvisionKeys(); err != nil {
			return fmt.Errorf("key provisioning failed (%w)", err)
		}
	case HandoffReady:
	default:
		return &StageError{Stage: o.stage, Target: target}
	}

	return
}

// Advance performs the transition to the target stage, which must directly
// follow the current one.
//
// A failed transition leaves the stage unchanged, no further transition must
// be attempted as the hardware state is undefined.
func (o *Orchestrator) Advance(target BootStage) (err error) {
	if target != o.stage+1 {
		return &StageError{Stage: o.stage, Target: target}
	}

	if err = o.transition(target); err != nil {
		return
	}

	o.stage = target

	if o.opts.Observer != nil {
		o.opts.Observer(target)
	}

	return
}

// Step performs the next transition.
func (o *Orchestrator) Step() error {
	return o.Advance(o.stage + 1)
}

// Run performs all remaining transitions up to HandoffReady.
func (o *Orchestrator) Run() (err error) {
	for o.stage < HandoffReady {
		if err = o.Step(); err != nil {
			return
		}
	}

	return
}

// Handoff transfers control to the next stage through the jump function,
// which is expected not to return. Control is only transferred once
// HandoffReady has been reached.
func (o *Orchestrator) Handoff(jump func()) error {
	if o.stage != HandoffReady {
		return &StageError{Stage: o.stage, Target: HandoffReady + 1}
	}

	jump()

	return nil
}

// HardwareInit performs the complete early hardware initialization normally
// done by the boot ROM (memory controller, power rails and peripheral
// clocks), it is not implemented.
func HardwareInit(soc *tegra210.SoC) error {
	return ErrNotImplemented
}

// MBISTWorkaround applies the memory built-in self test workaround required
// before display and audio partitions are powered, it is not implemented.
func MBISTWorkaround(soc *tegra210.SoC) error {
	return ErrNotImplemented
}
