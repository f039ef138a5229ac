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

package main

import (
	"fmt"
	"io"

	"github.com/MrCairo/gameboy-assembler/asm"
)

// writeListing disassembles every populated ROM section.
func writeListing(w io.Writer, prog *asm.Program) error {
	for _, s := range prog.Sections() {
		if !s.Region.IsROM() || s.Size() == 0 {
			continue
		}
		if _, err := fmt.Fprintf(w, "SECTION %q, %s ($%04X-$%04X)\n",
			s.Name, s.Region, s.Base(), s.IP()-1); err != nil {
			return err
		}
		if err := asm.DisassembleAll(s.Bytes(), s.Base(), w); err != nil {
			return err
		}
	}
	return nil
}
