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
	"text/scanner"
)

type fixKind int

const (
	fixAbsolute fixKind = iota
	fixRelative8
)

// fixup is a deferred operand write queued when the first pass meets an
// expression it cannot resolve yet. offset addresses the placeholder bytes
// inside the section buffer.
type fixup struct {
	sec    *Section
	offset int
	width  int // 1 or 2; fixRelative8 is always 1
	kind   fixKind
	expr   []token
	scope  string // global label scope at the point of use
	pos    scanner.Position
}

// resolveFixups is the second pass. Every queued fixup is re-evaluated
// against the now-complete symbol table and patched into its section.
// Unlike the first pass, errors do not abort: all undefined-reference and
// out-of-range sites are collected so the caller can report them together.
func resolveFixups(fixups []*fixup, st *symtab) ErrAsm {
	var errs ErrAsm
	fail := func(pos scanner.Position, format string, args ...interface{}) {
		errs = append(errs, ErrSource{Pos: pos, Msg: fmt.Sprintf(format, args...)})
	}

	savedScope := st.global
	defer func() { st.global = savedScope }()

	for _, f := range fixups {
		st.global = f.scope
		v, _, err := evalExpr(f.expr, 0, st.lookupValue)
		if err != nil {
			if u, ok := err.(*errUndefined); ok {
				fail(u.pos, "undefined reference to %s", u.name)
			} else if es, ok := err.(ErrSource); ok {
				errs = append(errs, es)
			} else {
				fail(f.pos, "%s", err)
			}
			continue
		}

		switch {
		case f.kind == fixRelative8:
			// The displacement is relative to the address just past
			// the displacement byte itself.
			disp := v - (f.sec.Base() + f.offset + 1)
			if disp < -128 || disp > 127 {
				fail(f.pos, "relative jump out of range (%+d)", disp)
				continue
			}
			f.sec.patch(f.offset, []byte{byte(int8(disp))})
		case f.width == 1:
			if v < -128 || v > 0xFF {
				fail(f.pos, "value %d does not fit in 8 bits", v)
				continue
			}
			f.sec.patch(f.offset, []byte{byte(v)})
		default:
			if v < -32768 || v > 0xFFFF {
				fail(f.pos, "value %d does not fit in 16 bits", v)
				continue
			}
			f.sec.patch(f.offset, []byte{byte(v), byte(v >> 8)})
		}
	}
	return errs
}
