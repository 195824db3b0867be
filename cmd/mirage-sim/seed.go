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

package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mirage-tegra/mirage/internal/sim"
)

// Seed describes the register bank state on entry, as left by the boot ROM.
type Seed struct {
	Fuses struct {
		// Private key fuse words, FUSE_PRIVATE_KEY0 first.
		PrivateKey []uint32 `yaml:"private_key"`
	} `yaml:"fuses"`

	// Register values by physical address.
	Registers map[uint32]uint32 `yaml:"registers"`
}

func loadSeed(path string) (*Seed, error) {
	buf, err := os.ReadFile(path)

	if err != nil {
		return nil, err
	}

	s := &Seed{}

	if err = yaml.Unmarshal(buf, s); err != nil {
		return nil, fmt.Errorf("invalid seed %s (%v)", path, err)
	}

	if len(s.Fuses.PrivateKey) > 5 {
		return nil, fmt.Errorf("invalid seed %s, at most 5 private key words", path)
	}

	return s, nil
}

func (s *Seed) apply(bus *sim.Tegra) {
	bus.SetPrivateKey(s.Fuses.PrivateKey...)

	for addr, val := range s.Registers {
		bus.Poke(addr, val)
	}
}
