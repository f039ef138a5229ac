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

// Constant expressions: integer and symbol leaves, binary + - * / %, unary
// minus, parentheses. "* / %" bind tighter than "+ -", all operators are
// left associative. Arithmetic is signed 32-bit; narrowing to an operand
// width happens at binding time, not here.

// lookupFunc resolves a symbol name to its value.
type lookupFunc func(name string) (int, bool)

type exprEval struct {
	toks   []token
	i      int
	lookup lookupFunc
	undef  *errUndefined // first unresolved leaf, evaluation continues with 0
	err    error         // first hard error
}

// evalExpr evaluates the expression starting at toks[i]. It returns the
// value and the index of the first token past the expression. If the
// expression references an undefined symbol the returned error is an
// *errUndefined and the terminating index is still valid, so the caller
// can queue the token span as a fixup.
func evalExpr(toks []token, i int, lookup lookupFunc) (val, next int, err error) {
	e := &exprEval{toks: toks, i: i, lookup: lookup}
	v := e.sum()
	if e.err != nil {
		return 0, e.i, e.err
	}
	if e.undef != nil {
		return 0, e.i, e.undef
	}
	return int(v), e.i, nil
}

func (e *exprEval) peek() token {
	if e.i < len(e.toks) {
		return e.toks[e.i]
	}
	return token{kind: tokEOL}
}

func (e *exprEval) fail(t token, msg string) {
	if e.err == nil {
		e.err = ErrSource{Pos: t.pos, Msg: msg}
	}
}

func (e *exprEval) sum() int32 {
	v := e.term()
	for e.err == nil {
		switch t := e.peek(); {
		case t.isOp("+"):
			e.i++
			v += e.term()
		case t.isOp("-"):
			e.i++
			v -= e.term()
		default:
			return v
		}
	}
	return v
}

func (e *exprEval) term() int32 {
	v := e.unary()
	for e.err == nil {
		t := e.peek()
		switch {
		case t.isOp("*"):
			e.i++
			v *= e.unary()
		case t.isOp("/"), t.isOp("%"):
			e.i++
			d := e.unary()
			if d == 0 {
				e.fail(t, "division by zero")
				return 0
			}
			if t.text == "/" {
				v /= d
			} else {
				v %= d
			}
		default:
			return v
		}
	}
	return v
}

func (e *exprEval) unary() int32 {
	if e.peek().isOp("-") {
		e.i++
		return -e.unary()
	}
	return e.primary()
}

func (e *exprEval) primary() int32 {
	t := e.peek()
	switch t.kind {
	case tokNumber:
		e.i++
		return int32(t.val)
	case tokIdent:
		e.i++
		if v, ok := e.lookup(t.text); ok {
			return int32(v)
		}
		if e.undef == nil {
			e.undef = &errUndefined{name: t.text, pos: t.pos}
		}
		return 0
	case tokLParen:
		e.i++
		v := e.sum()
		if e.err != nil {
			return 0
		}
		if e.peek().kind != tokRParen {
			e.fail(e.peek(), "expected )")
			return 0
		}
		e.i++
		return v
	default:
		e.fail(t, "expected expression, got "+t.String())
		return 0
	}
}
