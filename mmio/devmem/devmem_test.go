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

package devmem

import (
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/sys/unix"
)

func memFile(t *testing.T, size int) string {
	t.Helper()

	buf := make([]byte, size)

	for i := 0; i < size; i += 4 {
		binary.LittleEndian.PutUint32(buf[i:], uint32(i))
	}

	path := filepath.Join(t.TempDir(), "mem")

	if err := os.WriteFile(path, buf, 0600); err != nil {
		t.Fatalf("could not create memory file: %v", err)
	}

	return path
}

func TestReadWrite(t *testing.T) {
	page := unix.Getpagesize()
	path := memFile(t, 2*page)

	b, err := Open(path, true)

	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer b.Close()

	if err = b.Map(uint32(page)+0x10, 0x20); err != nil {
		t.Fatalf("Map: %v", err)
	}

	addr := uint32(page) + 0x14

	if got, want := b.Read32(addr), addr; got != want {
		t.Fatalf("Read32: got %#x, want %#x", got, want)
	}

	b.Write32(addr, 0xdeadbeef)

	if got, want := b.Read32(addr), uint32(0xdeadbeef); got != want {
		t.Fatalf("Read32 after write: got %#x, want %#x", got, want)
	}
}

func TestReadOnly(t *testing.T) {
	path := memFile(t, unix.Getpagesize())

	b, err := Open(path, false)

	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer b.Close()

	if err = b.Map(0, 0x100); err != nil {
		t.Fatalf("Map: %v", err)
	}

	if got, want := b.Read32(0x8), uint32(0x8); got != want {
		t.Fatalf("Read32: got %#x, want %#x", got, want)
	}

	for _, test := range []struct {
		name string
		f    func()
	}{
		{name: "write", f: func() { b.Write32(0x8, 0) }},
		{name: "unmapped", f: func() { b.Read32(uint32(unix.Getpagesize()) * 4) }},
		{name: "unaligned", f: func() { b.Read32(0x2) }},
	} {
		t.Run(test.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Fatal("expected panic")
				}
			}()
			test.f()
		})
	}
}

func TestClosed(t *testing.T) {
	path := memFile(t, unix.Getpagesize())

	b, err := Open(path, false)

	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	if err = b.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if err = b.Map(0, 4); !errors.Is(err, errClosed) {
		t.Fatalf("Map after close: got %v, want %v", err, errClosed)
	}

	if err = b.Close(); !errors.Is(err, errClosed) {
		t.Fatalf("second Close: got %v, want %v", err, errClosed)
	}
}
