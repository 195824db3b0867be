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

package sim

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mirage-tegra/mirage/soc/nvidia/se"
)

func TestKeyTable(t *testing.T) {
	s := NewTegra()

	s.Write32(keytableAddr, 0xe<<se.KEYTABLE_SLOT|1)
	s.Write32(keytableData, 0x11223344)

	if got, want := s.Read32(keytableData), uint32(0x11223344); got != want {
		t.Fatalf("key word: got %#x, want %#x", got, want)
	}

	// revoke read permission
	s.Write32(keytableAcc+0xe*4, se.AccessLocked)

	if !s.Locked(0xe) {
		t.Fatal("slot 14 not locked")
	}

	if got := s.Read32(keytableData); got != 0 {
		t.Fatalf("locked key word: got %#x, want 0", got)
	}

	s.Write32(keytableData, 0xdeadbeef)

	want := []Access{{Op: Write, Addr: keytableData, Val: 0xdeadbeef}}

	if diff := cmp.Diff(want, s.Rejected); diff != "" {
		t.Fatalf("Got diff: %s", diff)
	}

	if got, want := s.KeySlot(0xe)[1], uint32(0x11223344); got != want {
		t.Fatalf("key slot contents changed: got %#x, want %#x", got, want)
	}

	// permissions cannot be granted back
	s.Write32(keytableAcc+0xe*4, se.AccessAll)

	if !s.Locked(0xe) {
		t.Fatal("slot 14 unlocked by write")
	}

	if s.Locked(0xf) {
		t.Fatal("slot 15 locked")
	}
}

func TestTimer(t *testing.T) {
	s := NewTegra()

	a := s.Read32(timerCounter)
	b := s.Read32(timerCounter)

	if got, want := b-a, uint32(1); got != want {
		t.Fatalf("tick: got %d, want %d", got, want)
	}

	s.Tick = 100
	c := s.Read32(timerCounter)

	if got, want := c-b, uint32(100); got != want {
		t.Fatalf("tick: got %d, want %d", got, want)
	}
}

func TestTrace(t *testing.T) {
	s := NewTegra()

	s.Poke(0x7000e5b4, 0x5)
	s.SetPrivateKey(0x11, 0x22)

	if got := len(s.Trace); got != 0 {
		t.Fatalf("Poke recorded %d accesses", got)
	}

	if got, want := s.Read32(privateKey+4), uint32(0x22); got != want {
		t.Fatalf("private key word: got %#x, want %#x", got, want)
	}

	s.Write32(0x7000e5b4, 0)

	want := []Access{
		{Op: Read, Addr: privateKey + 4, Val: 0x22},
		{Op: Write, Addr: 0x7000e5b4, Val: 0},
	}

	if diff := cmp.Diff(want, s.Trace); diff != "" {
		t.Fatalf("Got diff: %s", diff)
	}

	if got, want := s.Reads(privateKey+4), 1; got != want {
		t.Fatalf("Reads: got %d, want %d", got, want)
	}

	if got, want := len(s.Writes()), 1; got != want {
		t.Fatalf("Writes: got %d, want %d", got, want)
	}

	if got, want := s.Trace[1].String(), "W APBDEV_PMC_RST_STATUS "; !strings.HasPrefix(got, want) {
		t.Fatalf("String: got %q, want prefix %q", got, want)
	}

	s.ResetTrace()

	if len(s.Trace) != 0 || s.Peek(0x7000e5b4) != 0 {
		t.Fatal("ResetTrace did not clear the trace only")
	}
}
