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

// Register and condition-code names. These are only reserved words in
// operand position: a source file may still use "C" or "Z" as a plain
// symbol anywhere else.
var (
	reg8  = map[string]bool{"A": true, "B": true, "C": true, "D": true, "E": true, "H": true, "L": true}
	reg16 = map[string]bool{"AF": true, "BC": true, "DE": true, "HL": true, "SP": true, "PC": true}
	conds = map[string]bool{"Z": true, "NZ": true, "C": true, "NC": true}
)

// IsReg8 reports whether s names an 8-bit register, ignoring case.
func IsReg8(s string) bool { return reg8[upper(s)] }

// IsReg16 reports whether s names a 16-bit register pair, ignoring case.
func IsReg16(s string) bool { return reg16[upper(s)] }

// IsReg reports whether s names any register, ignoring case.
func IsReg(s string) bool { return IsReg8(s) || IsReg16(s) }

// IsCond reports whether s names a condition code, ignoring case.
func IsCond(s string) bool { return conds[upper(s)] }

// Canon returns the canonical (upper case) spelling of a register,
// condition code or mnemonic.
func Canon(s string) string { return upper(s) }

// RstTargets lists the eight legal RST vectors.
var RstTargets = [8]int{0x00, 0x08, 0x10, 0x18, 0x20, 0x28, 0x30, 0x38}

// RstOperand returns the table spelling ("18H") for a RST target and
// whether the target is one of the eight legal vectors.
func RstOperand(target int) (string, bool) {
	for _, t := range RstTargets {
		if t == target {
			const hex = "0123456789ABCDEF"
			return string([]byte{hex[target>>4], hex[target&0x0F], 'H'}), true
		}
	}
	return "", false
}
