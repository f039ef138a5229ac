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

package rom

import "github.com/pkg/errors"

// Cartridge header layout, $0100-$014F.
const (
	hdrLogo           = 0x0104
	hdrTitle          = 0x0134
	hdrCartType       = 0x0147
	hdrROMSize        = 0x0148
	hdrHeaderChecksum = 0x014D
	hdrGlobalChecksum = 0x014E
	hdrEnd            = 0x0150
)

const maxTitleLen = 15

// nintendoLogo is the bitmap the boot ROM verifies before handing control
// to the cartridge.
var nintendoLogo = [48]byte{
	0xCE, 0xED, 0x66, 0x66, 0xCC, 0x0D, 0x00, 0x0B, 0x03, 0x73, 0x00, 0x83,
	0x00, 0x0C, 0x00, 0x0D, 0x00, 0x08, 0x11, 0x1F, 0x88, 0x89, 0x00, 0x0E,
	0xDC, 0xCC, 0x6E, 0xE6, 0xDD, 0xDD, 0xD9, 0x99, 0xBB, 0xBB, 0x67, 0x63,
	0x6E, 0x0E, 0xEC, 0xCC, 0xDD, 0xDC, 0x99, 0x9F, 0xBB, 0xB9, 0x33, 0x3E,
}

// WriteHeader fills in the cartridge header fields the boot ROM checks:
// the logo, the title, the ROM size code and both checksums. Code bytes
// already assembled into the header area are left alone except for these
// fields, so an entry-point jump at $0100 survives.
func (img Image) WriteHeader(title string) error {
	if len(img) < hdrEnd {
		return errors.Errorf("image of %d bytes has no room for a header", len(img))
	}
	if len(title) > maxTitleLen {
		return errors.Errorf("title %q longer than %d characters", title, maxTitleLen)
	}
	copy(img[hdrLogo:], nintendoLogo[:])
	for i := 0; i < maxTitleLen; i++ {
		if i < len(title) {
			img[hdrTitle+i] = title[i]
		} else {
			img[hdrTitle+i] = 0
		}
	}
	// ROM size code: $00 = 32 KiB, each step doubles.
	code := byte(0)
	for sz := minBanks * BankSize; sz < len(img); sz *= 2 {
		code++
	}
	img[hdrROMSize] = code

	img[hdrHeaderChecksum] = img.headerChecksum()
	sum := img.globalChecksum()
	img[hdrGlobalChecksum] = byte(sum >> 8)
	img[hdrGlobalChecksum+1] = byte(sum)
	return nil
}

// headerChecksum computes the $0134-$014C checksum the boot ROM verifies.
func (img Image) headerChecksum() byte {
	var x byte
	for _, b := range img[hdrTitle:hdrHeaderChecksum] {
		x = x - b - 1
	}
	return x
}

// globalChecksum sums every byte of the image except the two checksum
// bytes themselves. Stored big-endian, and never verified by hardware.
func (img Image) globalChecksum() uint16 {
	var sum uint16
	for i, b := range img {
		if i == hdrGlobalChecksum || i == hdrGlobalChecksum+1 {
			continue
		}
		sum += uint16(b)
	}
	return sum
}

// Verify checks the header checksum, the way the DMG boot ROM does.
func (img Image) Verify() error {
	if len(img) < hdrEnd {
		return errors.New("image too small to hold a header")
	}
	if got, want := img.headerChecksum(), img[hdrHeaderChecksum]; got != want {
		return errors.Errorf("header checksum mismatch: computed $%02X, stored $%02X", got, want)
	}
	return nil
}
