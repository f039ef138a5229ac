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

import "text/scanner"

type tokKind int

const (
	tokEOL tokKind = iota
	tokIdent
	tokNumber
	tokString
	tokLabel    // "name:" in leading position
	tokExported // "name::" in leading position
	tokLParen
	tokRParen
	tokComma
	tokOp // text is one of + - * / %
)

// token is a tagged lexical element. Registers, condition codes, mnemonics
// and directives all scan as tokIdent; their role is decided by position
// when the line is parsed.
type token struct {
	kind tokKind
	text string
	val  int // value of a tokNumber
	pos  scanner.Position
}

func (t token) String() string {
	switch t.kind {
	case tokEOL:
		return "end of line"
	case tokString:
		return `"` + t.text + `"`
	default:
		return t.text
	}
}

// isOp reports whether the token is the given operator.
func (t token) isOp(op string) bool {
	return t.kind == tokOp && t.text == op
}

// isIdent reports whether the token is the given identifier, ignoring case.
func (t token) isIdent(name string) bool {
	return t.kind == tokIdent && asciiUpper(t.text) == name
}
