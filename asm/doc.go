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

// Package asm assembles Z80-style source for the LR35902, the CPU of the
// Game Boy and Game Boy Color, into section byte images bound to the
// target's address map.
//
// The assembler is one-shot and two-pass. The first pass tokenizes each
// line, processes directives, defines symbols and encodes instructions;
// an operand that references a symbol with no definition yet emits
// placeholder zeros and queues a fixup. The second pass re-evaluates every
// fixup against the completed symbol table and patches the section
// buffers. The instruction size is always fixed by the mnemonic form in
// the first pass, never inferred from a symbol value.
//
// # Literals
//
// Numeric literals come in four bases, selected by a sigil:
//
//	$FFDC    hexadecimal
//	%101     binary
//	&777     octal (0o777 is also accepted)
//	42       decimal
//
// A single-quoted character literal ('A') is an 8-bit integer. Constant
// expressions combine literals and symbols with + - * / %, unary minus and
// parentheses, with the usual precedence; arithmetic is signed 32-bit and
// narrowing happens when the value binds to an operand.
//
// # Labels and constants
//
//	start:          ; global label
//	start::         ; exported label (global, visible to a future linker)
//	.loop:          ; local label, scoped to the last global label
//	SPEED EQU 42    ; constant, right side evaluated immediately
//	DEF SPEED EQU 42
//
// Symbol names are case-sensitive, start with a letter and run at most 32
// letters, digits or underscores. Redefinition is fatal, except that a
// local label gets a fresh identity under each global, so .loop may
// reappear. A .name reference resolves against the most recently defined
// global label.
//
// # Sections
//
//	SECTION "boot", ROM0
//	SECTION "engine", ROMX, BANK[2]
//	SECTION "variables", WRAM0
//
// A section names a region of the DMG address map (ROM0, ROMX, VRAM,
// SRAM, WRAM0, WRAMX, OAM, HRAM) and owns its own byte buffer and
// instruction pointer. Switching sections is legal at any time; a
// duplicate (name, region) pair re-opens the section and resumes its IP.
// Only ROM regions accept code and data; the RAM family can only reserve
// space with DS.
//
// # Data directives
//
//	DB $FF, "text", 'x'   ; 8-bit values and raw string bytes
//	DW $FFDC, start       ; little-endian 16-bit values
//	DS 16                 ; reserve 16 bytes (fill $00 in ROM)
//	DS 16, $FF            ; reserve with explicit fill
//	INCLUDE "hardware.inc"
//
// INCLUDE splices the named file in place, preserving line order;
// recursive inclusion is detected by path identity and fatal.
//
// # Instructions
//
// Mnemonics are case-insensitive. Operand shapes are classified and
// matched against the opcode table: registers, condition codes (only jp,
// jr, call and ret take one), immediates, indirections through (BC),
// (DE), (HL), (HL+), (HL-), (C) and memory addresses. Both (expr) and
// [expr] spell indirection. When an immediate's value is known the
// narrowest legal form wins; an unresolved operand takes the width the
// mnemonic declares, or 16 bits for addressing operands. jr targets must
// land within [-128, +127] of the following instruction. ldhl sp, n is
// accepted as a synonym for ld hl, sp+n.
package asm
