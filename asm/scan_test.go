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

import "testing"

func scan(t *testing.T, line string) []token {
	t.Helper()
	ls := &lineScanner{file: "test", line: line, num: 1}
	toks, err := ls.scanLine()
	if err != nil {
		t.Fatalf("scanLine(%q): %v", line, err)
	}
	return toks
}

func kinds(toks []token) []tokKind {
	ks := make([]tokKind, len(toks))
	for i, t := range toks {
		ks[i] = t.kind
	}
	return ks
}

func equalKinds(a, b []tokKind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestScanLine(t *testing.T) {
	tests := []struct {
		line string
		want []tokKind
	}{
		{"", nil},
		{"; just a comment", nil},
		{"nop", []tokKind{tokIdent}},
		{"start:", []tokKind{tokLabel}},
		{"start::", []tokKind{tokExported}},
		{".loop: jr .loop", []tokKind{tokLabel, tokIdent, tokIdent}},
		{"ld a, $FF", []tokKind{tokIdent, tokIdent, tokComma, tokNumber}},
		{`SECTION "x", ROM0`, []tokKind{tokIdent, tokString, tokComma, tokIdent}},
		{"DB 1, 2 ; trailing", []tokKind{tokIdent, tokNumber, tokComma, tokNumber}},
		{"ld a, (hl)", []tokKind{tokIdent, tokIdent, tokComma, tokLParen, tokIdent, tokRParen}},
		{"ld a, [hl]", []tokKind{tokIdent, tokIdent, tokComma, tokLParen, tokIdent, tokRParen}},
		{"DB 2+3*(4-1)", []tokKind{tokIdent, tokNumber, tokOp, tokNumber, tokOp, tokLParen, tokNumber, tokOp, tokNumber, tokRParen}},
	}
	for _, tc := range tests {
		toks := scan(t, tc.line)
		if !equalKinds(kinds(toks), tc.want) {
			t.Errorf("scanLine(%q) kinds = %v, want %v", tc.line, kinds(toks), tc.want)
		}
	}
}

// '[' and ']' produce the same tokens as '(' and ')'.
func TestScanLine_bracketNormalization(t *testing.T) {
	a := scan(t, "ld a, [hl]")
	b := scan(t, "ld a, (hl)")
	for i := range a {
		if a[i].kind != b[i].kind || a[i].text != b[i].text {
			t.Fatalf("token %d: [%v] vs (%v)", i, a[i], b[i])
		}
	}
}

// '%' is a binary literal only where an operand may start.
func TestScanLine_percent(t *testing.T) {
	toks := scan(t, "DB %101")
	if toks[1].kind != tokNumber || toks[1].val != 5 {
		t.Errorf("%%101 scanned as %v", toks[1])
	}
	toks = scan(t, "DB 7%101")
	if toks[2].kind != tokOp {
		t.Errorf("7%%101: expected modulo operator, got %v", toks[2])
	}
	toks = scan(t, "DB 7 % 2")
	if toks[2].kind != tokOp {
		t.Errorf("7 %% 2: expected modulo operator, got %v", toks[2])
	}
	toks = scan(t, "x: db %11")
	if toks[2].kind != tokNumber || toks[2].val != 3 {
		t.Errorf("%%11 after label and directive scanned as %v", toks[2])
	}
}

func TestScanLine_charLiteral(t *testing.T) {
	toks := scan(t, "DB 'A', '\\n'")
	if toks[1].val != 'A' || toks[3].val != '\n' {
		t.Errorf("char literals scanned as %v, %v", toks[1], toks[3])
	}
}

func TestScanLine_errors(t *testing.T) {
	for _, line := range []string{
		`DB "unterminated`,
		"DB 'x",
		"DB @",
		"DB 12Q34",
	} {
		ls := &lineScanner{file: "test", line: line, num: 1}
		if _, err := ls.scanLine(); err == nil {
			t.Errorf("scanLine(%q): expected error", line)
		}
	}
}

// Errors carry the position of the offending character.
func TestScanLine_errorPosition(t *testing.T) {
	ls := &lineScanner{file: "test", line: "DB 1, @", num: 3}
	_, err := ls.scanLine()
	es, ok := err.(ErrSource)
	if !ok {
		t.Fatalf("expected ErrSource, got %T", err)
	}
	if es.Pos.Line != 3 || es.Pos.Column != 7 {
		t.Errorf("error position = %v, want test:3:7", es.Pos)
	}
}
