// This file is part of gameboy-assembler - https://github.com/MrCairo/gameboy-assembler
//
// Copyright 2024 Mitch Fisher <mitch.fisher@icloud.com>
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

package asm

import (
	"bytes"
	"testing"
)

func TestRegions(t *testing.T) {
	tests := []struct {
		name string
		base int
		size int
		rom  bool
	}{
		{"ROM0", 0x0000, 0x4000, true},
		{"ROMX", 0x4000, 0x4000, true},
		{"VRAM", 0x8000, 0x2000, false},
		{"SRAM", 0xA000, 0x2000, false},
		{"WRAM0", 0xC000, 0x1000, false},
		{"WRAMX", 0xD000, 0x1000, false},
		{"OAM", 0xFE00, 0xA0, false},
		{"HRAM", 0xFF80, 0x7F, false},
	}
	for _, tc := range tests {
		r, ok := parseRegion(tc.name)
		if !ok {
			t.Errorf("parseRegion(%q) failed", tc.name)
			continue
		}
		if regionTab[r].start != tc.base || r.Size() != tc.size || r.IsROM() != tc.rom {
			t.Errorf("%s: base $%04X size %d rom %v", tc.name, regionTab[r].start, r.Size(), r.IsROM())
		}
	}
	if _, ok := parseRegion("ROM1"); ok {
		t.Error("parseRegion(ROM1) unexpectedly succeeded")
	}
}

// Bytes emitted to a ROM section equal that section's IP advance.
func TestSection_emitAdvancesIP(t *testing.T) {
	ss := newSections()
	s, err := ss.open("code", ROM0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if s.IP() != 0x0000 {
		t.Fatalf("fresh ROM0 IP = $%04X", s.IP())
	}
	s.emit([]byte{0x21, 0xDC, 0xFF})
	s.emit([]byte{0x00})
	if s.IP() != 4 || s.Size() != len(s.Bytes()) {
		t.Errorf("IP = %d, size = %d, len = %d", s.IP(), s.Size(), len(s.Bytes()))
	}
	if !bytes.Equal(s.Bytes(), []byte{0x21, 0xDC, 0xFF, 0x00}) {
		t.Errorf("bytes = % X", s.Bytes())
	}
}

// Switching away and back resumes the per-section IP.
func TestSections_switchResumes(t *testing.T) {
	ss := newSections()
	code, _ := ss.open("code", ROM0, 0)
	code.emit([]byte{1})

	data, err := ss.open("data", ROMX, 0)
	if err != nil {
		t.Fatal(err)
	}
	if data.Bank != 1 {
		t.Errorf("default ROMX bank = %d, want 1", data.Bank)
	}
	data.emit([]byte{2})

	again, err := ss.open("code", ROM0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if again != code || again.IP() != 1 {
		t.Errorf("re-open did not resume: IP = %d", again.IP())
	}
}

// Two sections in one region pack: the second starts where the first
// ended, and the first can no longer grow over it.
func TestSections_packing(t *testing.T) {
	ss := newSections()
	a, _ := ss.open("a", ROM0, 0)
	a.emit([]byte{1, 2, 3})
	b, _ := ss.open("b", ROM0, 0)
	if b.Base() != 3 {
		t.Fatalf("b.Base() = %d, want 3", b.Base())
	}
	if err := a.emit([]byte{4}); err == nil {
		t.Error("emit into a after b was created did not fail")
	}
}

func TestSection_overflow(t *testing.T) {
	ss := newSections()
	s, _ := ss.open("high", HRAM, 0)
	if err := s.reserve(0x7F, 0); err != nil {
		t.Fatal(err)
	}
	if err := s.reserve(1, 0); err == nil {
		t.Error("reserve past the end of HRAM did not fail")
	}
}

// RAM-family sections reserve space without emitting bytes.
func TestSection_ramReserve(t *testing.T) {
	ss := newSections()
	s, _ := ss.open("vars", WRAM0, 0)
	if err := s.reserve(8, 0); err != nil {
		t.Fatal(err)
	}
	if s.IP() != 0xC008 || s.Bytes() != nil {
		t.Errorf("IP = $%04X, bytes = %v", s.IP(), s.Bytes())
	}
	if err := s.emit([]byte{1}); err == nil {
		t.Error("emit into WRAM0 did not fail")
	}
}

func TestSections_bankValidation(t *testing.T) {
	ss := newSections()
	if _, err := ss.open("x", ROM0, 2); err == nil {
		t.Error("ROM0 with a bank did not fail")
	}
	if _, err := ss.open("y", WRAMX, 8); err == nil {
		t.Error("WRAMX bank 8 did not fail")
	}
	if _, err := ss.open("z", ROMX, 0x7F); err != nil {
		t.Errorf("ROMX bank $7F: %v", err)
	}
	if _, err := ss.open("z", ROMX, 3); err == nil {
		t.Error("re-open with a different bank did not fail")
	}
}
