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
// +build linux

// Package devmem implements an mmio.Bus over a memory mapped /dev/mem, for
// inspecting Tegra210 registers from Linux userspace.
package devmem

import (
	"errors"
	"fmt"
	"os"
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/unix"
)

var errClosed = errors.New("devmem: closed")

type mapping struct {
	base uint32
	data []byte
}

// Bus represents a set of physical memory windows mapped from a memory
// device.
type Bus struct {
	f        *os.File
	writable bool
	maps     []*mapping
}

// Open opens a memory device (usually /dev/mem), windows must then be added
// with Map before any register access.
func Open(path string, writable bool) (*Bus, error) {
	flag := os.O_RDONLY

	if writable {
		flag = os.O_RDWR
	}

	f, err := os.OpenFile(path, flag|os.O_SYNC, 0)

	if err != nil {
		return nil, fmt.Errorf("devmem: could not open %s: %w", path, err)
	}

	return &Bus{
		f:        f,
		writable: writable,
	}, nil
}

// Map maps a physical memory window, base is rounded down to the system page
// size.
func (b *Bus) Map(base uint32, size uint32) error {
	if b.f == nil {
		return errClosed
	}

	page := uint32(unix.Getpagesize())
	start := base &^ (page - 1)
	length := (base - start + size + page - 1) &^ (page - 1)

	prot := unix.PROT_READ

	if b.writable {
		prot |= unix.PROT_WRITE
	}

	data, err := unix.Mmap(int(b.f.Fd()), int64(start), int(length), prot, unix.MAP_SHARED)

	if err != nil {
		return fmt.Errorf("devmem: could not mmap %#x-%#x: %w", start, start+length, err)
	}

	if len(data) != int(length) {
		_ = unix.Munmap(data)
		return fmt.Errorf("devmem: invalid mmap'd data: %d", len(data))
	}

	b.maps = append(b.maps, &mapping{base: start, data: data})

	return nil
}

func (b *Bus) reg(addr uint32) *uint32 {
	if addr&3 != 0 {
		panic(fmt.Sprintf("devmem: unaligned access at %#08x", addr))
	}

	for _, m := range b.maps {
		if addr >= m.base && addr+4 <= m.base+uint32(len(m.data)) {
			return (*uint32)(unsafe.Pointer(&m.data[addr-m.base]))
		}
	}

	panic(fmt.Sprintf("devmem: address %#08x is not mapped", addr))
}

// Read32 performs a 32-bit load, it panics if the address is not mapped.
func (b *Bus) Read32(addr uint32) uint32 {
	return atomic.LoadUint32(b.reg(addr))
}

// Write32 performs a 32-bit store, it panics if the address is not mapped or
// if the bus has been opened read-only.
func (b *Bus) Write32(addr uint32, val uint32) {
	if !b.writable {
		panic(fmt.Sprintf("devmem: write to %#08x on read-only bus", addr))
	}

	atomic.StoreUint32(b.reg(addr), val)
}

// Close unmaps all windows and closes the memory device.
func (b *Bus) Close() (err error) {
	if b.f == nil {
		return errClosed
	}

	for _, m := range b.maps {
		if e := unix.Munmap(m.data); e != nil && err == nil {
			err = e
		}
	}

	b.maps = nil

	if e := b.f.Close(); e != nil && err == nil {
		err = e
	}

	b.f = nil

	return
}
