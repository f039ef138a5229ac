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

// Package lr35902 holds the instruction-set data for the Game Boy CPU: the
// 256-entry base opcode page, the 256-entry CB-prefixed page, and the
// register and condition-code names.
//
// The tables are keyed by (mnemonic, operand form). An operand form is the
// canonical spelling from the usual opcode charts, so
//
//	Lookup("LD", "HL", "d16")   -> 0x21, length 3
//	Lookup("JR", "NZ", "r8")    -> 0x20, length 2
//	Lookup("BIT", "7", "(HL)")  -> CB 7E
//
// The package performs no encoding of its own; classifying source operands
// into forms and binding immediate values is the asm package's job.
package lr35902
