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

// Package rom lays assembled sections out as a Game Boy cartridge image:
// bank placement, padding, the cartridge header, and image file I/O.
package rom

import (
	"bufio"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/MrCairo/gameboy-assembler/asm"
)

// Image is a cartridge ROM image. Build always produces a whole number of
// 16 KiB banks and at least the 32 KiB a bankless cartridge maps; Load
// returns a file's bytes without checking their length.
type Image []byte

// BankSize is the size of one switchable ROM bank.
const BankSize = 0x4000

const minBanks = 2

// Build lays every ROM section of the program into a cartridge image.
// ROM0 sections land in bank 0, ROMX sections at BANK[n]*$4000 plus their
// offset within the region. RAM-family sections reserve target memory and
// contribute no image bytes. Gaps are zero filled.
func Build(p *asm.Program) (Image, error) {
	banks := minBanks
	for _, s := range p.Sections() {
		if s.Region == asm.ROMX && s.Bank+1 > banks {
			banks = s.Bank + 1
		}
	}
	// cartridge mappers address a power-of-two number of banks
	n := minBanks
	for n < banks {
		n *= 2
	}
	img := make(Image, n*BankSize)

	for _, s := range p.Sections() {
		if !s.Region.IsROM() {
			continue
		}
		off := s.Base()
		if s.Region == asm.ROMX {
			off = s.Bank*BankSize + (s.Base() - BankSize)
		}
		copy(img[off:off+s.Size()], s.Bytes())
	}
	return img, nil
}

// Save writes the image to fileName.
func Save(fileName string, img Image) (err error) {
	f, err := os.Create(fileName)
	if err != nil {
		return errors.Wrap(err, "create failed")
	}
	w := bufio.NewWriter(f)
	defer func() {
		w.Flush()
		f.Close()
		// delete file on error
		if err != nil {
			os.Remove(fileName)
		}
	}()
	if _, err = w.Write(img); err != nil {
		return errors.Wrap(err, "write failed")
	}
	return nil
}

// Load reads a cartridge image from fileName.
func Load(fileName string) (Image, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "Load")
	}
	defer f.Close()
	st, err := f.Stat()
	if err != nil {
		return nil, errors.Wrap(err, "Load")
	}
	sz := st.Size()
	if sz > int64((^uint(0))>>1) { // MaxInt
		return nil, errors.Errorf("Load %v: file too large", fileName)
	}
	img := make(Image, sz)
	if _, err := io.ReadFull(bufio.NewReader(f), img); err != nil {
		return nil, errors.Wrap(err, "Load")
	}
	return img, nil
}
