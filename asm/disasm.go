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
	"fmt"
	"io"
	"strings"

	"github.com/MrCairo/gameboy-assembler/internal/gbi"
	"github.com/MrCairo/gameboy-assembler/lr35902"
)

// Disassemble writes a disassembly of the instruction at position pc in
// the given byte slice to the specified io.Writer and returns the position
// of the next instruction and any write error. Bytes that decode to no
// instruction are rendered as "db $xx".
func Disassemble(b []byte, pc int, w io.Writer) (next int, err error) {
	ew, _ := w.(*gbi.ErrWriter)
	if ew == nil {
		ew = gbi.NewErrWriter(w)
	}

	e := lr35902.Decode(b[pc])
	if b[pc] == 0xCB {
		if pc+1 >= len(b) {
			io.WriteString(ew, "db $CB")
			return pc + 1, ew.Err
		}
		e = lr35902.DecodePrefixed(b[pc+1])
	}
	if !e.Valid() {
		fmt.Fprintf(ew, "db $%02X", b[pc])
		return pc + 1, ew.Err
	}
	if pc+e.Length > len(b) {
		io.WriteString(ew, "???")
		return len(b), ew.Err
	}

	imm := b[pc+e.Length-lr35902.ImmBytes(e.Op1)-lr35902.ImmBytes(e.Op2):]
	text := strings.ToLower(e.Mnemonic)
	if op := renderOperand(e.Op1, &imm); op != "" {
		text += " " + op
	}
	if op := renderOperand(e.Op2, &imm); op != "" {
		text += "," + op
	}
	io.WriteString(ew, text)
	return pc + e.Length, ew.Err
}

// renderOperand substitutes immediate bytes into an operand placeholder,
// consuming them from imm.
func renderOperand(form string, imm *[]byte) string {
	take := func(n int) int {
		v := int((*imm)[0])
		if n == 2 {
			v |= int((*imm)[1]) << 8
		}
		*imm = (*imm)[n:]
		return v
	}
	switch form {
	case "":
		return ""
	case "d8":
		return FormatNumber(take(1), 16, 8)
	case "(a8)":
		return "(" + FormatNumber(take(1), 16, 8) + ")"
	case "r8":
		return fmt.Sprintf("%+d", int8(take(1)))
	case "SP+r8":
		return fmt.Sprintf("sp%+d", int8(take(1)))
	case "d16", "a16":
		return FormatNumber(take(2), 16, 16)
	case "(a16)":
		return "(" + FormatNumber(take(2), 16, 16) + ")"
	default:
		return strings.ToLower(form)
	}
}

// DisassembleAll writes a disassembly of all bytes in the given slice to
// the specified io.Writer. The base argument specifies the real address of
// the first byte (b[0]). It will return any write error.
func DisassembleAll(b []byte, base int, w io.Writer) error {
	ew := gbi.NewErrWriter(w)
	for pc := 0; pc < len(b); {
		fmt.Fprintf(ew, "$%04X\t", base+pc)
		pc, _ = Disassemble(b, pc, ew)
		ew.Write([]byte{'\n'})
		if ew.Err != nil {
			return ew.Err
		}
	}
	return nil
}
