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

var directives = map[string]bool{
	"SECTION": true,
	"DB":      true,
	"DW":      true,
	"DS":      true,
	"EQU":     true,
	"DEF":     true,
	"INCLUDE": true,
}

func isDirective(word string) bool { return directives[word] }

// directive dispatches one directive line. toks[0] is the directive word
// itself, except for EQU which is handled by statement directly.
func (p *parser) directive(word string, toks []token) error {
	switch word {
	case "SECTION":
		return p.section(toks)
	case "DB":
		return p.defineBytes(toks, 1)
	case "DW":
		return p.defineBytes(toks, 2)
	case "DS":
		return p.defineSpace(toks)
	case "DEF":
		// DEF name EQU expr
		if len(toks) < 3 || !toks[2].isIdent("EQU") {
			return ErrSource{Pos: toks[0].pos, Msg: "expected DEF name EQU value"}
		}
		return p.equate(toks[1], toks, 3)
	case "EQU":
		return ErrSource{Pos: toks[0].pos, Msg: "EQU without a constant name"}
	case "INCLUDE":
		if len(toks) != 2 || toks[1].kind != tokString {
			return ErrSource{Pos: toks[0].pos, Msg: `expected INCLUDE "path"`}
		}
		return p.include(toks[0].pos, toks[1].text)
	}
	return ErrSource{Pos: toks[0].pos, Msg: "unknown directive " + word}
}

// section handles SECTION "name", REGION [, BANK[n]]. A duplicate
// (name, region) pair re-opens the existing section and resumes its IP.
func (p *parser) section(toks []token) error {
	pos := toks[0].pos
	toks = toks[1:]
	if len(toks) < 3 || toks[0].kind != tokString || toks[1].kind != tokComma || toks[2].kind != tokIdent {
		return ErrSource{Pos: pos, Msg: `expected SECTION "name", REGION`}
	}
	name := toks[0].text
	region, ok := parseRegion(asciiUpper(toks[2].text))
	if !ok {
		return ErrSource{Pos: toks[2].pos, Msg: "unknown region " + toks[2].text}
	}
	bank := 0
	rest := toks[3:]
	if len(rest) > 0 {
		// , BANK[n] — the tokenizer folds '[' ']' into parentheses
		if len(rest) != 5 || rest[0].kind != tokComma || !rest[1].isIdent("BANK") ||
			rest[2].kind != tokLParen || rest[3].kind != tokNumber || rest[4].kind != tokRParen {
			return ErrSource{Pos: rest[0].pos, Msg: "expected BANK[n] after region"}
		}
		bank = rest[3].val
	}
	if _, err := p.secs.open(name, region, bank); err != nil {
		return fatal(pos, err)
	}
	return nil
}

// defineBytes implements DB (width 1) and DW (width 2). String operands
// expand to their raw bytes with no terminator; DW rejects them. Operands
// that reference not-yet-defined symbols emit placeholder zeros and queue
// a fixup.
func (p *parser) defineBytes(toks []token, width int) error {
	sec, err := p.secs.current()
	if err != nil {
		return fatal(toks[0].pos, err)
	}
	i := 1
	if i >= len(toks) {
		return ErrSource{Pos: toks[0].pos, Msg: "expected operand"}
	}
	for {
		t := toks[i]
		if t.kind == tokString && width == 1 {
			if err := sec.emit([]byte(t.text)); err != nil {
				return fatal(t.pos, err)
			}
			i++
		} else {
			v, next, err := evalExpr(toks, i, p.syms.lookupValue)
			if err != nil {
				if _, undef := err.(*errUndefined); !undef {
					return fatal(t.pos, err)
				}
				p.queueFixup(sec, len(sec.buf), width, fixAbsolute, toks[i:next], t.pos)
				v, i = 0, next
			} else {
				i = next
			}
			var b []byte
			switch {
			case width == 1 && (v < -128 || v > 0xFF):
				return ErrSource{Pos: t.pos, Msg: "DB value out of 8-bit range"}
			case width == 1:
				b = []byte{byte(v)}
			case v < -32768 || v > 0xFFFF:
				return ErrSource{Pos: t.pos, Msg: "DW value out of 16-bit range"}
			default:
				b = []byte{byte(v), byte(v >> 8)}
			}
			if err := sec.emit(b); err != nil {
				return fatal(t.pos, err)
			}
		}
		if i >= len(toks) {
			return nil
		}
		if toks[i].kind != tokComma || i+1 >= len(toks) {
			return ErrSource{Pos: toks[i].pos, Msg: "expected , between operands"}
		}
		i++
	}
}

// defineSpace implements DS count [, fill]. The count must be resolvable
// immediately. ROM sections are filled; RAM-family sections only advance
// the IP.
func (p *parser) defineSpace(toks []token) error {
	sec, err := p.secs.current()
	if err != nil {
		return fatal(toks[0].pos, err)
	}
	if len(toks) < 2 {
		return ErrSource{Pos: toks[0].pos, Msg: "expected byte count"}
	}
	count, next, err := evalExpr(toks, 1, p.syms.lookupValue)
	if err != nil {
		return fatal(toks[1].pos, err)
	}
	fill := 0
	if next < len(toks) {
		if toks[next].kind != tokComma || next+1 >= len(toks) {
			return ErrSource{Pos: toks[next].pos, Msg: "expected , fill"}
		}
		var pos scanner.Position = toks[next+1].pos
		fill, next, err = evalExpr(toks, next+1, p.syms.lookupValue)
		if err != nil {
			return fatal(pos, err)
		}
		if next != len(toks) {
			return ErrSource{Pos: toks[next].pos, Msg: "unexpected " + toks[next].String()}
		}
		if fill < 0 || fill > 0xFF {
			return ErrSource{Pos: pos, Msg: "DS fill out of 8-bit range"}
		}
	}
	if err := sec.reserve(count, byte(fill)); err != nil {
		return fatal(toks[1].pos, err)
	}
	return nil
}
