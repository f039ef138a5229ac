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
	"strconv"

	"github.com/pkg/errors"
)

// The assembler dialect knows four numeric bases, selected by a leading
// sigil:
//
//	$2AF0     hexadecimal
//	%1010     binary
//	&777      octal ("0o777" is accepted as a synonym)
//	1234      decimal, no sigil
//
// ParseNumber is the one authority on literal syntax; the tokenizer and
// the EQU machinery both go through it.
func ParseNumber(text string) (int, error) {
	if text == "" {
		return 0, errors.New("empty numeric literal")
	}
	base := 10
	digits := text
	switch {
	case text[0] == '$':
		base, digits = 16, text[1:]
	case text[0] == '%':
		base, digits = 2, text[1:]
	case text[0] == '&':
		base, digits = 8, text[1:]
	case len(text) > 2 && text[0] == '0' && (text[1] == 'o' || text[1] == 'O'):
		base, digits = 8, text[2:]
	case text[0] >= '0' && text[0] <= '9':
	default:
		return 0, errors.Errorf("bad literal prefix in %q", text)
	}
	n, err := strconv.ParseInt(digits, base, 32)
	if err != nil || n < 0 {
		return 0, errors.Errorf("invalid base-%d literal %q", base, text)
	}
	return int(n), nil
}

// NumberWidth returns the narrowest operand width, in bytes, that can hold
// n: 1 for anything 8-bit-representable, otherwise 2. The classification
// feeds operand-size inference; range errors are reported at operand
// binding, not here.
func NumberWidth(n int) int {
	if n >= -128 && n <= 0xFF {
		return 1
	}
	return 2
}

// FormatNumber renders n in the given base using the dialect's sigils.
// The width parameter is the value's bit width (8 or 16) and controls zero
// padding for the hexadecimal and binary forms.
func FormatNumber(n, base, width int) string {
	switch base {
	case 16:
		if width > 8 {
			return fmt.Sprintf("$%04X", n)
		}
		return fmt.Sprintf("$%02X", n)
	case 2:
		if width > 8 {
			return fmt.Sprintf("%%%016b", n)
		}
		return fmt.Sprintf("%%%08b", n)
	case 8:
		return "&" + strconv.FormatInt(int64(n), 8)
	default:
		return strconv.Itoa(n)
	}
}

// asciiUpper is strings.ToUpper for the ASCII-only words the dialect uses.
func asciiUpper(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - 'a' + 'A'
		}
	}
	return string(b)
}
