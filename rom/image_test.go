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

package rom_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/MrCairo/gameboy-assembler/asm"
	"github.com/MrCairo/gameboy-assembler/rom"
)

func buildImage(t *testing.T, src string) rom.Image {
	t.Helper()
	prog, err := asm.Assemble("test", strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	img, err := rom.Build(prog)
	if err != nil {
		t.Fatal(err)
	}
	return img
}

func TestBuild_layout(t *testing.T) {
	src := `
SECTION "boot", ROM0
 db 1, 2, 3
SECTION "engine", ROMX, BANK[2]
 db 4, 5
SECTION "vars", WRAM0
 ds 16
`
	img := buildImage(t, src)
	// bank 2 forces a 4-bank (64 KiB) image
	if len(img) != 4*rom.BankSize {
		t.Fatalf("image size = %d, want %d", len(img), 4*rom.BankSize)
	}
	if !bytes.Equal(img[0:3], []byte{1, 2, 3}) {
		t.Errorf("ROM0 bytes = % X", img[0:3])
	}
	if !bytes.Equal(img[2*rom.BankSize:2*rom.BankSize+2], []byte{4, 5}) {
		t.Errorf("ROMX bank 2 bytes = % X", img[2*rom.BankSize:2*rom.BankSize+2])
	}
	// RAM sections contribute nothing
	for _, b := range img[3 : 2*rom.BankSize] {
		if b != 0 {
			t.Fatal("gap bytes are not zero filled")
		}
	}
}

func TestBuild_minimumSize(t *testing.T) {
	img := buildImage(t, "SECTION \"main\", ROM0\n nop\n")
	if len(img) != 2*rom.BankSize {
		t.Errorf("image size = %d, want 32 KiB", len(img))
	}
}

func TestWriteHeader(t *testing.T) {
	img := buildImage(t, "SECTION \"main\", ROM0\n nop\n")
	if err := img.WriteHeader("TETRIS"); err != nil {
		t.Fatal(err)
	}
	if img[0x0104] != 0xCE || img[0x0105] != 0xED {
		t.Errorf("logo bytes = % X", img[0x0104:0x0106])
	}
	if got := string(img[0x0134:0x013A]); got != "TETRIS" {
		t.Errorf("title = %q", got)
	}
	if img[0x0148] != 0 {
		t.Errorf("ROM size code = %d, want 0 for 32 KiB", img[0x0148])
	}
	if err := img.Verify(); err != nil {
		t.Errorf("Verify after WriteHeader: %v", err)
	}
	img[0x0134] ^= 0xFF
	if err := img.Verify(); err == nil {
		t.Error("Verify did not notice a corrupted header")
	}
}

func TestWriteHeader_titleTooLong(t *testing.T) {
	img := buildImage(t, "SECTION \"main\", ROM0\n nop\n")
	if err := img.WriteHeader("AN OVERLY LONG GAME TITLE"); err == nil {
		t.Error("overlong title did not fail")
	}
}

func TestSaveLoad(t *testing.T) {
	img := buildImage(t, "SECTION \"main\", ROM0\n db 1, 2, 3\n")
	name := filepath.Join(t.TempDir(), "out.gb")
	if err := rom.Save(name, img); err != nil {
		t.Fatal(err)
	}
	back, err := rom.Load(name)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(img, back) {
		t.Error("loaded image differs from saved image")
	}
	if _, err := os.Stat(name); err != nil {
		t.Fatal(err)
	}
}
