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
	"strings"
	"text/scanner"

	"github.com/MrCairo/gameboy-assembler/lr35902"
)

func isMnemonic(word string) bool { return lr35902.IsMnemonic(word) }

// operand is one classified instruction operand. forms lists the canonical
// table spellings the operand may bind to, narrowest first; the first form
// that completes a table hit wins.
type operand struct {
	forms      []string
	val        int
	unresolved bool // value references a symbol with no definition yet
	expr       []token
	pos        scanner.Position
}

// encodeInstr assembles one instruction line: classify the operands into
// shapes, look the (mnemonic, shapes) pair up in the opcode table, bind the
// immediates and emit. Unresolvable immediates emit placeholder zeros and
// queue a fixup; the instruction size is fixed by the matched form, never
// by symbol-value inference.
func (p *parser) encodeInstr(toks []token) error {
	sec, err := p.secs.current()
	if err != nil {
		return fatal(toks[0].pos, err)
	}
	mnemonic := asciiUpper(toks[0].text)
	groups, err := splitOperands(toks[1:])
	if err != nil {
		return err
	}

	// ldhl sp,n is a synonym for ld hl,sp+n.
	if mnemonic == "LDHL" {
		if len(groups) != 2 || len(groups[0]) != 1 || !groups[0][0].isIdent("SP") {
			return ErrSource{Pos: toks[0].pos, Msg: "ldhl expects sp, n"}
		}
		mnemonic = "LD"
		hl := token{kind: tokIdent, text: "HL", pos: groups[0][0].pos}
		plus := token{kind: tokOp, text: "+", pos: groups[1][0].pos}
		groups = [][]token{
			{hl},
			append([]token{groups[0][0], plus}, groups[1]...),
		}
	}

	if len(groups) > 2 {
		return ErrSource{Pos: toks[0].pos, Msg: mnemonic + " takes at most two operands"}
	}
	ops := make([]operand, len(groups))
	for i, g := range groups {
		op, err := p.classifyOperand(mnemonic, i == 0, g)
		if err != nil {
			return err
		}
		ops[i] = op
	}

	e, op1, op2, binds := matchForm(mnemonic, ops)
	if e == nil {
		forms := lr35902.Forms(mnemonic)
		if len(forms) == 0 {
			return ErrSource{Pos: toks[0].pos, Msg: "unknown mnemonic " + toks[0].text}
		}
		return ErrSource{
			Pos: toks[0].pos,
			Msg: fmt.Sprintf("no matching operands for %s; accepted: %s",
				mnemonic, strings.Join(forms, "; ")),
		}
	}

	return p.emitInstr(sec, toks[0].pos, e, op1, op2, binds)
}

// splitOperands cuts the operand tokens at commas. Parentheses never nest
// commas in this dialect, so the split is flat.
func splitOperands(toks []token) ([][]token, error) {
	if len(toks) == 0 {
		return nil, nil
	}
	var groups [][]token
	start := 0
	for i, t := range toks {
		if t.kind != tokComma {
			continue
		}
		if i == start {
			return nil, ErrSource{Pos: t.pos, Msg: "expected operand"}
		}
		groups = append(groups, toks[start:i])
		start = i + 1
	}
	if start >= len(toks) {
		return nil, ErrSource{Pos: toks[len(toks)-1].pos, Msg: "expected operand after ,"}
	}
	return append(groups, toks[start:]), nil
}

// classifyOperand maps one operand token group to its candidate shapes.
func (p *parser) classifyOperand(mnemonic string, first bool, g []token) (operand, error) {
	pos := g[0].pos

	// Bare register or condition code. "C" is both, but the two share a
	// spelling so the table key is the same either way.
	if len(g) == 1 && g[0].kind == tokIdent &&
		(lr35902.IsReg(g[0].text) || lr35902.IsCond(g[0].text)) {
		c := lr35902.Canon(g[0].text)
		forms := []string{c}
		if mnemonic == "JP" && c == "HL" {
			// jp hl is the chart's jp (HL)
			forms = []string{"(HL)"}
		}
		return operand{forms: forms, pos: pos}, nil
	}

	// Indirection: (reg16), (C), (HL+), (HL-), or a memory address.
	if g[0].kind == tokLParen && g[len(g)-1].kind == tokRParen {
		inner := g[1 : len(g)-1]
		switch {
		case len(inner) == 1 && inner[0].kind == tokIdent && lr35902.IsReg(inner[0].text):
			c := lr35902.Canon(inner[0].text)
			switch c {
			case "BC", "DE", "HL", "C":
				return operand{forms: []string{"(" + c + ")"}, pos: pos}, nil
			}
			return operand{}, ErrSource{Pos: pos, Msg: "cannot address through " + inner[0].text}
		case len(inner) == 2 && inner[0].isIdent("HL") &&
			(inner[1].isOp("+") || inner[1].isOp("-")):
			return operand{forms: []string{"(HL" + inner[1].text + ")"}, pos: pos}, nil
		}
		return p.classifyAddress(mnemonic, inner, pos)
	}

	// SP+disp in ld hl,sp+n.
	if len(g) > 2 && g[0].isIdent("SP") && g[1].isOp("+") {
		v, next, err := evalExpr(g, 2, p.syms.lookupValue)
		if err == nil && next != len(g) {
			return operand{}, ErrSource{Pos: g[next].pos, Msg: "unexpected " + g[next].String()}
		}
		op := operand{forms: []string{"SP+r8"}, val: v, expr: g[2:], pos: pos}
		if err != nil {
			if _, ok := err.(*errUndefined); !ok {
				return operand{}, fatal(pos, err)
			}
			op.unresolved = true
		}
		return op, nil
	}

	// Everything else is a constant expression.
	v, next, err := evalExpr(g, 0, p.syms.lookupValue)
	if err == nil && next != len(g) {
		return operand{}, ErrSource{Pos: g[next].pos, Msg: "unexpected " + g[next].String()}
	}
	unresolved := false
	if err != nil {
		if _, ok := err.(*errUndefined); !ok {
			return operand{}, fatal(pos, err)
		}
		unresolved = true
	}

	// Bit indices and RST vectors must be known up front: both select the
	// opcode byte itself.
	if first {
		switch mnemonic {
		case "BIT", "RES", "SET":
			if unresolved {
				return operand{}, ErrSource{Pos: pos, Msg: "bit index must be a known constant"}
			}
			if v < 0 || v > 7 {
				return operand{}, ErrSource{Pos: pos, Msg: fmt.Sprintf("bit index %d out of range 0-7", v)}
			}
			return operand{forms: []string{string('0' + byte(v))}, val: v, pos: pos}, nil
		case "RST":
			if unresolved {
				return operand{}, ErrSource{Pos: pos, Msg: "rst target must be a known constant"}
			}
			sp, ok := lr35902.RstOperand(v)
			if !ok {
				return operand{}, ErrSource{Pos: pos, Msg: fmt.Sprintf("invalid rst target $%02X", v)}
			}
			return operand{forms: []string{sp}, val: v, pos: pos}, nil
		}
	}

	op := operand{val: v, unresolved: unresolved, expr: g, pos: pos}
	if unresolved {
		// Size comes from the form the mnemonic declares, not from the
		// symbol value.
		op.forms = []string{"r8", "d8", "d16", "a16"}
		return op, nil
	}
	if NumberWidth(v) == 1 {
		op.forms = append(op.forms, "d8")
	}
	op.forms = append(op.forms, "r8") // jump targets are addresses, range-checked at bind
	if v >= -32768 && v <= 0xFFFF {
		op.forms = append(op.forms, "d16", "a16")
	}
	return op, nil
}

// classifyAddress handles a parenthesized memory operand.
func (p *parser) classifyAddress(mnemonic string, inner []token, pos scanner.Position) (operand, error) {
	if len(inner) == 0 {
		return operand{}, ErrSource{Pos: pos, Msg: "empty address operand"}
	}
	v, next, err := evalExpr(inner, 0, p.syms.lookupValue)
	if err == nil && next != len(inner) {
		return operand{}, ErrSource{Pos: inner[next].pos, Msg: "unexpected " + inner[next].String()}
	}
	op := operand{val: v, expr: inner, pos: pos}
	if err != nil {
		if _, ok := err.(*errUndefined); !ok {
			return operand{}, fatal(pos, err)
		}
		op.unresolved = true
		// Addressing operands default to 16 bits when the value is not
		// known yet; ldh declares the short form.
		if mnemonic == "LDH" {
			op.forms = []string{"(a8)"}
		} else {
			op.forms = []string{"(a16)"}
		}
		return op, nil
	}
	if (v >= 0 && v <= 0xFF) || (v >= 0xFF00 && v <= 0xFFFF) {
		op.forms = append(op.forms, "(a8)")
	}
	if v >= 0 && v <= 0xFFFF {
		op.forms = append(op.forms, "(a16)")
	}
	if op.forms == nil {
		return operand{}, ErrSource{Pos: pos, Msg: fmt.Sprintf("address $%X out of range", v)}
	}
	return op, nil
}

// matchForm tries every candidate shape combination against the opcode
// table, in preference order, and returns the first hit. binds holds the
// operands realigned to the matched form's positions, so the implicit
// accumulator of "add $10" and the redundant one of "sub a, b" do not
// shift an immediate under the wrong placeholder.
func matchForm(mnemonic string, ops []operand) (e *lr35902.Instr, op1, op2 string, binds []operand) {
	switch len(ops) {
	case 0:
		if e, ok := lr35902.Lookup(mnemonic, "", ""); ok {
			return e, "", "", nil
		}
	case 1:
		for _, f := range ops[0].forms {
			if e, ok := lr35902.Lookup(mnemonic, f, ""); ok {
				return e, f, "", ops
			}
		}
		// "add b" and friends may also be spelled with an implicit
		// accumulator destination.
		for _, f := range ops[0].forms {
			if e, ok := lr35902.Lookup(mnemonic, "A", f); ok {
				return e, "A", f, []operand{{forms: []string{"A"}}, ops[0]}
			}
		}
	case 2:
		for _, f1 := range ops[0].forms {
			for _, f2 := range ops[1].forms {
				if e, ok := lr35902.Lookup(mnemonic, f1, f2); ok {
					return e, f1, f2, ops
				}
			}
		}
		// "sub a, b": drop the redundant accumulator.
		if len(ops[0].forms) == 1 && ops[0].forms[0] == "A" {
			for _, f := range ops[1].forms {
				if e, ok := lr35902.Lookup(mnemonic, f, ""); ok {
					return e, f, "", ops[1:]
				}
			}
		}
	}
	return nil, "", "", nil
}

// emitInstr writes the instruction bytes and queues fixups for unresolved
// immediates.
func (p *parser) emitInstr(sec *Section, pos scanner.Position, e *lr35902.Instr, op1, op2 string, binds []operand) error {
	type pending struct {
		idx   int
		width int
		kind  fixKind
		expr  []token
		pos   scanner.Position
	}
	var fixes []pending

	code := make([]byte, 0, e.Length)
	if e.Prefixed {
		code = append(code, 0xCB)
	}
	code = append(code, e.Opcode)

	forms := []string{op1, op2}
	ip := sec.IP() // address of the opcode, for relative displacements
	for i, form := range forms {
		if i >= len(binds) || lr35902.ImmBytes(form) == 0 {
			continue
		}
		op := binds[i]
		switch form {
		case "r8":
			if e.Mnemonic == "JR" {
				if op.unresolved {
					fixes = append(fixes, pending{idx: len(code), width: 1, kind: fixRelative8, expr: op.expr, pos: op.pos})
					code = append(code, 0)
					break
				}
				disp := op.val - (ip + e.Length)
				if disp < -128 || disp > 127 {
					return ErrSource{Pos: op.pos, Msg: fmt.Sprintf("relative jump out of range (%+d)", disp)}
				}
				code = append(code, byte(int8(disp)))
				break
			}
			// add sp, n: the operand is the displacement itself
			if op.unresolved {
				fixes = append(fixes, pending{idx: len(code), width: 1, kind: fixAbsolute, expr: op.expr, pos: op.pos})
				code = append(code, 0)
				break
			}
			if op.val < -128 || op.val > 127 {
				return ErrSource{Pos: op.pos, Msg: fmt.Sprintf("displacement %d out of signed 8-bit range", op.val)}
			}
			code = append(code, byte(int8(op.val)))
		case "SP+r8":
			if op.unresolved {
				fixes = append(fixes, pending{idx: len(code), width: 1, kind: fixAbsolute, expr: op.expr, pos: op.pos})
				code = append(code, 0)
				break
			}
			if op.val < -128 || op.val > 127 {
				return ErrSource{Pos: op.pos, Msg: fmt.Sprintf("displacement %d out of signed 8-bit range", op.val)}
			}
			code = append(code, byte(int8(op.val)))
		case "d8", "(a8)":
			if op.unresolved {
				fixes = append(fixes, pending{idx: len(code), width: 1, kind: fixAbsolute, expr: op.expr, pos: op.pos})
				code = append(code, 0)
				break
			}
			v := op.val
			if form == "(a8)" && v >= 0xFF00 && v <= 0xFFFF {
				v &= 0xFF // ldh accepts the full $FF00-page address
			}
			if v < -128 || v > 0xFF {
				return ErrSource{Pos: op.pos, Msg: fmt.Sprintf("value %d does not fit in 8 bits", v)}
			}
			code = append(code, byte(v))
		case "d16", "a16", "(a16)":
			if op.unresolved {
				fixes = append(fixes, pending{idx: len(code), width: 2, kind: fixAbsolute, expr: op.expr, pos: op.pos})
				code = append(code, 0, 0)
				break
			}
			if op.val < -32768 || op.val > 0xFFFF {
				return ErrSource{Pos: op.pos, Msg: fmt.Sprintf("value %d does not fit in 16 bits", op.val)}
			}
			code = append(code, byte(op.val), byte(op.val>>8))
		}
	}
	for len(code) < e.Length {
		code = append(code, 0) // stop pad byte
	}

	base := len(sec.buf)
	if err := sec.emit(code); err != nil {
		return fatal(pos, err)
	}
	for _, f := range fixes {
		p.queueFixup(sec, base+f.idx, f.width, f.kind, f.expr, f.pos)
	}
	return nil
}
