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

package lr35902

// Instr describes one instruction form: a mnemonic together with the
// canonical spelling of its operands, and the bytes it encodes to.
//
// Operand spellings follow the usual LR35902 opcode charts: registers and
// indirections are spelled literally ("A", "BC", "(HL+)", "(C)"), immediates
// use the placeholders listed below.
//
//	d8       immediate 8-bit data
//	d16      immediate 16-bit data, little-endian
//	(a8)     8-bit address offset from $FF00 (LDH)
//	a16      16-bit address
//	(a16)    memory at a 16-bit address
//	r8       8-bit signed displacement relative to PC
//	SP+r8    stack pointer plus signed 8-bit displacement
type Instr struct {
	Opcode   byte
	Prefixed bool // lives on the CB page
	Mnemonic string
	Op1, Op2 string
	Length   int // encoded size, prefix and immediate bytes included
	Cycles   int // clock cycles (T-states) when taken
}

// Valid reports whether the entry describes an actual instruction. The
// holes in the base page (0xD3, 0xDB, ...) decode to invalid entries.
func (i Instr) Valid() bool { return i.Mnemonic != "" }

// ImmBytes returns the number of immediate bytes the operand placeholder
// occupies in the instruction encoding: 0 for registers, indirect registers
// and conditions.
func ImmBytes(op string) int {
	switch op {
	case "d8", "(a8)", "r8", "SP+r8":
		return 1
	case "d16", "a16", "(a16)":
		return 2
	}
	return 0
}

// reg8Order is the canonical register ordering baked into the LD, ALU and
// CB opcode blocks.
var reg8Order = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}

// base holds the irregular part of the base page. The regular LD and ALU
// blocks (0x40-0xBF) are filled in by init.
var base = [256]Instr{
	0x00: {Mnemonic: "NOP", Cycles: 4},
	0x01: {Mnemonic: "LD", Op1: "BC", Op2: "d16", Cycles: 12},
	0x02: {Mnemonic: "LD", Op1: "(BC)", Op2: "A", Cycles: 8},
	0x03: {Mnemonic: "INC", Op1: "BC", Cycles: 8},
	0x04: {Mnemonic: "INC", Op1: "B", Cycles: 4},
	0x05: {Mnemonic: "DEC", Op1: "B", Cycles: 4},
	0x06: {Mnemonic: "LD", Op1: "B", Op2: "d8", Cycles: 8},
	0x07: {Mnemonic: "RLCA", Cycles: 4},
	0x08: {Mnemonic: "LD", Op1: "(a16)", Op2: "SP", Cycles: 20},
	0x09: {Mnemonic: "ADD", Op1: "HL", Op2: "BC", Cycles: 8},
	0x0A: {Mnemonic: "LD", Op1: "A", Op2: "(BC)", Cycles: 8},
	0x0B: {Mnemonic: "DEC", Op1: "BC", Cycles: 8},
	0x0C: {Mnemonic: "INC", Op1: "C", Cycles: 4},
	0x0D: {Mnemonic: "DEC", Op1: "C", Cycles: 4},
	0x0E: {Mnemonic: "LD", Op1: "C", Op2: "d8", Cycles: 8},
	0x0F: {Mnemonic: "RRCA", Cycles: 4},
	0x10: {Mnemonic: "STOP", Cycles: 4},
	0x11: {Mnemonic: "LD", Op1: "DE", Op2: "d16", Cycles: 12},
	0x12: {Mnemonic: "LD", Op1: "(DE)", Op2: "A", Cycles: 8},
	0x13: {Mnemonic: "INC", Op1: "DE", Cycles: 8},
	0x14: {Mnemonic: "INC", Op1: "D", Cycles: 4},
	0x15: {Mnemonic: "DEC", Op1: "D", Cycles: 4},
	0x16: {Mnemonic: "LD", Op1: "D", Op2: "d8", Cycles: 8},
	0x17: {Mnemonic: "RLA", Cycles: 4},
	0x18: {Mnemonic: "JR", Op1: "r8", Cycles: 12},
	0x19: {Mnemonic: "ADD", Op1: "HL", Op2: "DE", Cycles: 8},
	0x1A: {Mnemonic: "LD", Op1: "A", Op2: "(DE)", Cycles: 8},
	0x1B: {Mnemonic: "DEC", Op1: "DE", Cycles: 8},
	0x1C: {Mnemonic: "INC", Op1: "E", Cycles: 4},
	0x1D: {Mnemonic: "DEC", Op1: "E", Cycles: 4},
	0x1E: {Mnemonic: "LD", Op1: "E", Op2: "d8", Cycles: 8},
	0x1F: {Mnemonic: "RRA", Cycles: 4},
	0x20: {Mnemonic: "JR", Op1: "NZ", Op2: "r8", Cycles: 12},
	0x21: {Mnemonic: "LD", Op1: "HL", Op2: "d16", Cycles: 12},
	0x22: {Mnemonic: "LD", Op1: "(HL+)", Op2: "A", Cycles: 8},
	0x23: {Mnemonic: "INC", Op1: "HL", Cycles: 8},
	0x24: {Mnemonic: "INC", Op1: "H", Cycles: 4},
	0x25: {Mnemonic: "DEC", Op1: "H", Cycles: 4},
	0x26: {Mnemonic: "LD", Op1: "H", Op2: "d8", Cycles: 8},
	0x27: {Mnemonic: "DAA", Cycles: 4},
	0x28: {Mnemonic: "JR", Op1: "Z", Op2: "r8", Cycles: 12},
	0x29: {Mnemonic: "ADD", Op1: "HL", Op2: "HL", Cycles: 8},
	0x2A: {Mnemonic: "LD", Op1: "A", Op2: "(HL+)", Cycles: 8},
	0x2B: {Mnemonic: "DEC", Op1: "HL", Cycles: 8},
	0x2C: {Mnemonic: "INC", Op1: "L", Cycles: 4},
	0x2D: {Mnemonic: "DEC", Op1: "L", Cycles: 4},
	0x2E: {Mnemonic: "LD", Op1: "L", Op2: "d8", Cycles: 8},
	0x2F: {Mnemonic: "CPL", Cycles: 4},
	0x30: {Mnemonic: "JR", Op1: "NC", Op2: "r8", Cycles: 12},
	0x31: {Mnemonic: "LD", Op1: "SP", Op2: "d16", Cycles: 12},
	0x32: {Mnemonic: "LD", Op1: "(HL-)", Op2: "A", Cycles: 8},
	0x33: {Mnemonic: "INC", Op1: "SP", Cycles: 8},
	0x34: {Mnemonic: "INC", Op1: "(HL)", Cycles: 12},
	0x35: {Mnemonic: "DEC", Op1: "(HL)", Cycles: 12},
	0x36: {Mnemonic: "LD", Op1: "(HL)", Op2: "d8", Cycles: 12},
	0x37: {Mnemonic: "SCF", Cycles: 4},
	0x38: {Mnemonic: "JR", Op1: "C", Op2: "r8", Cycles: 12},
	0x39: {Mnemonic: "ADD", Op1: "HL", Op2: "SP", Cycles: 8},
	0x3A: {Mnemonic: "LD", Op1: "A", Op2: "(HL-)", Cycles: 8},
	0x3B: {Mnemonic: "DEC", Op1: "SP", Cycles: 8},
	0x3C: {Mnemonic: "INC", Op1: "A", Cycles: 4},
	0x3D: {Mnemonic: "DEC", Op1: "A", Cycles: 4},
	0x3E: {Mnemonic: "LD", Op1: "A", Op2: "d8", Cycles: 8},
	0x3F: {Mnemonic: "CCF", Cycles: 4},

	0xC0: {Mnemonic: "RET", Op1: "NZ", Cycles: 20},
	0xC1: {Mnemonic: "POP", Op1: "BC", Cycles: 12},
	0xC2: {Mnemonic: "JP", Op1: "NZ", Op2: "a16", Cycles: 16},
	0xC3: {Mnemonic: "JP", Op1: "a16", Cycles: 16},
	0xC4: {Mnemonic: "CALL", Op1: "NZ", Op2: "a16", Cycles: 24},
	0xC5: {Mnemonic: "PUSH", Op1: "BC", Cycles: 16},
	0xC6: {Mnemonic: "ADD", Op1: "A", Op2: "d8", Cycles: 8},
	0xC7: {Mnemonic: "RST", Op1: "00H", Cycles: 16},
	0xC8: {Mnemonic: "RET", Op1: "Z", Cycles: 20},
	0xC9: {Mnemonic: "RET", Cycles: 16},
	0xCA: {Mnemonic: "JP", Op1: "Z", Op2: "a16", Cycles: 16},
	// 0xCB is the prefix byte itself
	0xCC: {Mnemonic: "CALL", Op1: "Z", Op2: "a16", Cycles: 24},
	0xCD: {Mnemonic: "CALL", Op1: "a16", Cycles: 24},
	0xCE: {Mnemonic: "ADC", Op1: "A", Op2: "d8", Cycles: 8},
	0xCF: {Mnemonic: "RST", Op1: "08H", Cycles: 16},
	0xD0: {Mnemonic: "RET", Op1: "NC", Cycles: 20},
	0xD1: {Mnemonic: "POP", Op1: "DE", Cycles: 12},
	0xD2: {Mnemonic: "JP", Op1: "NC", Op2: "a16", Cycles: 16},
	0xD4: {Mnemonic: "CALL", Op1: "NC", Op2: "a16", Cycles: 24},
	0xD5: {Mnemonic: "PUSH", Op1: "DE", Cycles: 16},
	0xD6: {Mnemonic: "SUB", Op1: "d8", Cycles: 8},
	0xD7: {Mnemonic: "RST", Op1: "10H", Cycles: 16},
	0xD8: {Mnemonic: "RET", Op1: "C", Cycles: 20},
	0xD9: {Mnemonic: "RETI", Cycles: 16},
	0xDA: {Mnemonic: "JP", Op1: "C", Op2: "a16", Cycles: 16},
	0xDC: {Mnemonic: "CALL", Op1: "C", Op2: "a16", Cycles: 24},
	0xDE: {Mnemonic: "SBC", Op1: "A", Op2: "d8", Cycles: 8},
	0xDF: {Mnemonic: "RST", Op1: "18H", Cycles: 16},
	0xE0: {Mnemonic: "LDH", Op1: "(a8)", Op2: "A", Cycles: 12},
	0xE1: {Mnemonic: "POP", Op1: "HL", Cycles: 12},
	0xE2: {Mnemonic: "LD", Op1: "(C)", Op2: "A", Cycles: 8},
	0xE5: {Mnemonic: "PUSH", Op1: "HL", Cycles: 16},
	0xE6: {Mnemonic: "AND", Op1: "d8", Cycles: 8},
	0xE7: {Mnemonic: "RST", Op1: "20H", Cycles: 16},
	0xE8: {Mnemonic: "ADD", Op1: "SP", Op2: "r8", Cycles: 16},
	0xE9: {Mnemonic: "JP", Op1: "(HL)", Cycles: 4},
	0xEA: {Mnemonic: "LD", Op1: "(a16)", Op2: "A", Cycles: 16},
	0xEE: {Mnemonic: "XOR", Op1: "d8", Cycles: 8},
	0xEF: {Mnemonic: "RST", Op1: "28H", Cycles: 16},
	0xF0: {Mnemonic: "LDH", Op1: "A", Op2: "(a8)", Cycles: 12},
	0xF1: {Mnemonic: "POP", Op1: "AF", Cycles: 12},
	0xF2: {Mnemonic: "LD", Op1: "A", Op2: "(C)", Cycles: 8},
	0xF3: {Mnemonic: "DI", Cycles: 4},
	0xF5: {Mnemonic: "PUSH", Op1: "AF", Cycles: 16},
	0xF6: {Mnemonic: "OR", Op1: "d8", Cycles: 8},
	0xF7: {Mnemonic: "RST", Op1: "30H", Cycles: 16},
	0xF8: {Mnemonic: "LD", Op1: "HL", Op2: "SP+r8", Cycles: 12},
	0xF9: {Mnemonic: "LD", Op1: "SP", Op2: "HL", Cycles: 8},
	0xFA: {Mnemonic: "LD", Op1: "A", Op2: "(a16)", Cycles: 16},
	0xFB: {Mnemonic: "EI", Cycles: 4},
	0xFE: {Mnemonic: "CP", Op1: "d8", Cycles: 8},
	0xFF: {Mnemonic: "RST", Op1: "38H", Cycles: 16},
}

var prefixed [256]Instr

// index maps "MNEMONIC op1,op2" to its table entry.
var index = make(map[string]*Instr)

// mnemonics is the set of every known mnemonic, plus the LDHL synonym
// handled by the encoder.
var mnemonics = make(map[string]bool)

func opKey(mnemonic, op1, op2 string) string {
	switch {
	case op2 != "":
		return mnemonic + " " + op1 + "," + op2
	case op1 != "":
		return mnemonic + " " + op1
	}
	return mnemonic
}

func init() {
	// LD r,r' block, 0x40-0x7F. 0x76 would be LD (HL),(HL) and is HALT
	// instead.
	for d := 0; d < 8; d++ {
		for s := 0; s < 8; s++ {
			op := byte(0x40 + d*8 + s)
			if op == 0x76 {
				base[op] = Instr{Mnemonic: "HALT", Cycles: 4}
				continue
			}
			c := 4
			if d == 6 || s == 6 {
				c = 8
			}
			base[op] = Instr{Mnemonic: "LD", Op1: reg8Order[d], Op2: reg8Order[s], Cycles: c}
		}
	}
	// ALU block, 0x80-0xBF.
	alu := []struct {
		mnemonic string
		acc      bool // spelled with an explicit A destination
	}{
		{"ADD", true}, {"ADC", true}, {"SUB", false}, {"SBC", true},
		{"AND", false}, {"XOR", false}, {"OR", false}, {"CP", false},
	}
	for g, a := range alu {
		for s := 0; s < 8; s++ {
			op := byte(0x80 + g*8 + s)
			c := 4
			if s == 6 {
				c = 8
			}
			e := Instr{Mnemonic: a.mnemonic, Op1: reg8Order[s], Cycles: c}
			if a.acc {
				e.Op1, e.Op2 = "A", reg8Order[s]
			}
			base[op] = e
		}
	}
	// The CB page: rotates and shifts, then BIT, RES and SET.
	rot := []string{"RLC", "RRC", "RL", "RR", "SLA", "SRA", "SWAP", "SRL"}
	for g, m := range rot {
		for s := 0; s < 8; s++ {
			c := 8
			if s == 6 {
				c = 16
			}
			prefixed[g*8+s] = Instr{Mnemonic: m, Op1: reg8Order[s], Cycles: c}
		}
	}
	bits := []string{"BIT", "RES", "SET"}
	for g, m := range bits {
		for b := 0; b < 8; b++ {
			for s := 0; s < 8; s++ {
				c := 8
				if s == 6 {
					if m == "BIT" {
						c = 12
					} else {
						c = 16
					}
				}
				op := 0x40 + g*0x40 + b*8 + s
				prefixed[op] = Instr{
					Mnemonic: m,
					Op1:      string('0' + byte(b)),
					Op2:      reg8Order[s],
					Cycles:   c,
				}
			}
		}
	}

	for i := range base {
		e := &base[i]
		if !e.Valid() {
			continue
		}
		e.Opcode = byte(i)
		e.Length = 1 + ImmBytes(e.Op1) + ImmBytes(e.Op2)
		if e.Mnemonic == "STOP" {
			// STOP is followed by a pad byte.
			e.Length = 2
		}
		index[opKey(e.Mnemonic, e.Op1, e.Op2)] = e
		mnemonics[e.Mnemonic] = true
	}
	for i := range prefixed {
		e := &prefixed[i]
		e.Opcode = byte(i)
		e.Prefixed = true
		e.Length = 2
		index[opKey(e.Mnemonic, e.Op1, e.Op2)] = e
		mnemonics[e.Mnemonic] = true
	}
	mnemonics["LDHL"] = true
}

// Lookup finds the instruction form for a mnemonic and the canonical
// spellings of its operands. Mnemonic matching is the caller's business:
// mnemonic must already be upper case.
func Lookup(mnemonic, op1, op2 string) (*Instr, bool) {
	e, ok := index[opKey(mnemonic, op1, op2)]
	return e, ok
}

// IsMnemonic reports whether s names an instruction, ignoring case.
func IsMnemonic(s string) bool {
	return mnemonics[upper(s)]
}

// Forms returns every operand form defined for a mnemonic, for use in
// "no such form" diagnostics. The mnemonic must be upper case.
func Forms(mnemonic string) []string {
	var forms []string
	for i := range base {
		if base[i].Mnemonic == mnemonic {
			forms = append(forms, opKey(mnemonic, base[i].Op1, base[i].Op2))
		}
	}
	for i := range prefixed {
		if prefixed[i].Mnemonic == mnemonic {
			forms = append(forms, opKey(mnemonic, prefixed[i].Op1, prefixed[i].Op2))
		}
	}
	return forms
}

// Decode returns the base-page entry for an opcode byte.
func Decode(op byte) Instr { return base[op] }

// DecodePrefixed returns the CB-page entry for an opcode byte.
func DecodePrefixed(op byte) Instr { return prefixed[op] }

// upper is an ASCII-only strings.ToUpper. Source mnemonics are ASCII by
// construction.
func upper(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - 'a' + 'A'
		}
	}
	return string(b)
}
