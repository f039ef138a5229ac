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
	"bufio"
	"io"
	"text/scanner"

	"github.com/pkg/errors"
)

// parser owns the state of one assembly run: the symbol table, the section
// registry and the fixup queue are acquired empty at the start of the run
// and dropped with it. Execution is single-threaded; the only deferred
// work is the fixup queue, drained by resolveFixups after the first pass.
type parser struct {
	syms   *symtab
	secs   *sections
	fixups []*fixup
	opts   options

	includes []string // active include chain, for recursion detection
}

func newParser(opts options) *parser {
	return &parser{
		syms: newSymtab(),
		secs: newSections(),
		opts: opts,
	}
}

// fatal wraps a bare error with the source position that produced it.
func fatal(pos scanner.Position, err error) error {
	if _, ok := err.(ErrSource); ok {
		return err
	}
	if u, ok := err.(*errUndefined); ok {
		return ErrSource{Pos: u.pos, Msg: u.Error()}
	}
	return ErrSource{Pos: pos, Msg: err.Error()}
}

// parse runs the first pass over one input stream. INCLUDE re-enters it
// recursively, so the spliced lines land exactly between the surrounding
// lines of the includer.
func (p *parser) parse(name string, r io.Reader) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNum := 0
	off := 0
	for sc.Scan() {
		line := sc.Text()
		lineNum++
		if n := len(line); n > 0 && line[n-1] == '\r' {
			line = line[:n-1]
		}
		ls := &lineScanner{file: name, line: line, num: lineNum, off: off}
		off += len(sc.Text()) + 1
		toks, err := ls.scanLine()
		if err != nil {
			return err
		}
		if err := p.statement(toks); err != nil {
			return err
		}
	}
	return errors.Wrap(sc.Err(), "read failed")
}

// statement processes the token sequence of one line: an optional label
// definition, then a directive, an instruction, or an EQU binding.
func (p *parser) statement(toks []token) error {
	if len(toks) == 0 {
		return nil
	}

	if t := toks[0]; t.kind == tokLabel || t.kind == tokExported {
		if err := p.defineLabel(t); err != nil {
			return fatal(t.pos, err)
		}
		toks = toks[1:]
		if len(toks) == 0 {
			return nil
		}
	}

	t := toks[0]
	if t.kind != tokIdent {
		return ErrSource{Pos: t.pos, Msg: "expected directive or instruction, got " + t.String()}
	}

	word := asciiUpper(t.text)
	switch {
	case isDirective(word):
		return p.directive(word, toks)
	case isMnemonic(word):
		return p.encodeInstr(toks)
	case len(toks) > 1 && toks[1].isIdent("EQU"):
		// bare "name EQU expr" without the DEF introducer
		return p.equate(toks[0], toks, 2)
	default:
		return ErrSource{Pos: t.pos, Msg: "unknown mnemonic or directive " + t.text}
	}
}

// defineLabel binds a label to the current IP. A global label also becomes
// the scope for subsequent ".local" names.
func (p *parser) defineLabel(t token) error {
	sec, err := p.secs.current()
	if err != nil {
		return errors.Wrapf(err, "label %s", t.text)
	}
	kind := SymLabel
	if t.kind == tokExported {
		if t.text[0] == '.' {
			return errors.Errorf("local label %s cannot be exported", t.text)
		}
		kind = SymExported
	}
	_, err = p.syms.define(t.text, kind, sec.IP(), t.pos)
	return err
}

// equate evaluates the right-hand side of an EQU immediately and binds the
// constant. Forward references are not allowed here: a constant's value
// must be known the moment it is defined.
func (p *parser) equate(name token, toks []token, i int) error {
	if name.kind != tokIdent {
		return ErrSource{Pos: name.pos, Msg: "expected constant name, got " + name.String()}
	}
	v, next, err := evalExpr(toks, i, p.syms.lookupValue)
	if err != nil {
		if u, ok := err.(*errUndefined); ok {
			return ErrSource{Pos: u.pos, Msg: "EQU must not forward-reference " + u.name}
		}
		return err
	}
	if next != len(toks) {
		return ErrSource{Pos: toks[next].pos, Msg: "unexpected " + toks[next].String() + " after EQU value"}
	}
	if _, err := p.syms.define(name.text, SymConstant, v, name.pos); err != nil {
		return fatal(name.pos, err)
	}
	return nil
}

// include splices another file into the stream. The loader is supplied by
// the driver; recursion is detected by path identity.
func (p *parser) include(pos scanner.Position, path string) error {
	if p.opts.loader == nil {
		return ErrSource{Pos: pos, Msg: "INCLUDE is not available without a file loader"}
	}
	for _, active := range p.includes {
		if active == path {
			return ErrSource{Pos: pos, Msg: "recursive INCLUDE of " + path}
		}
	}
	if len(p.includes) >= p.opts.maxInclude {
		return ErrSource{Pos: pos, Msg: "INCLUDE nesting too deep"}
	}
	r, err := p.opts.loader(path)
	if err != nil {
		return ErrSource{Pos: pos, Msg: errors.Wrap(err, "INCLUDE").Error()}
	}
	defer r.Close()
	p.includes = append(p.includes, path)
	err = p.parse(path, r)
	p.includes = p.includes[:len(p.includes)-1]
	return err
}

// queueFixup records a deferred operand write at offset within sec. The
// expression token span is copied: the caller's backing slice is reused
// for the next line.
func (p *parser) queueFixup(sec *Section, offset, width int, kind fixKind, expr []token, pos scanner.Position) {
	e := make([]token, len(expr))
	copy(e, expr)
	p.fixups = append(p.fixups, &fixup{
		sec:    sec,
		offset: offset,
		width:  width,
		kind:   kind,
		expr:   e,
		scope:  p.syms.global,
		pos:    pos,
	})
}
