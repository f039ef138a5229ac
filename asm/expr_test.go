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

var exprSyms = map[string]int{
	"BIG":   65500,
	"SMALL": 2,
}

func lookupTestSym(name string) (int, bool) {
	v, ok := exprSyms[name]
	return v, ok
}

func evalString(t *testing.T, src string) (int, error) {
	t.Helper()
	ls := &lineScanner{file: "expr", line: src, num: 1}
	toks, err := ls.scanLine()
	if err != nil {
		t.Fatalf("scan %q: %v", src, err)
	}
	v, next, err := evalExpr(toks, 0, lookupTestSym)
	if err == nil && next != len(toks) {
		t.Fatalf("eval %q stopped at token %d of %d", src, next, len(toks))
	}
	return v, err
}

func TestEvalExpr(t *testing.T) {
	tests := []struct {
		src  string
		want int
	}{
		{"42", 42},
		{"$FFDC", 0xFFDC},
		{"2+3*4", 14},
		{"(2+3)*4", 20},
		{"10-2-3", 5},
		{"20/3", 6},
		{"20%3", 2},
		{"-5+10", 5},
		{"2*-3", -6},
		{"BIG", 65500},
		{"BIG+SMALL*2", 65504},
		{"(BIG-$DC)/2", 32640},
		{"'A'+1", 66},
	}
	for _, tc := range tests {
		got, err := evalString(t, tc.src)
		if err != nil {
			t.Errorf("eval %q: %v", tc.src, err)
			continue
		}
		if got != tc.want {
			t.Errorf("eval %q = %d, want %d", tc.src, got, tc.want)
		}
	}
}

// The same tokens and symbol table always yield the same value.
func TestEvalExpr_pure(t *testing.T) {
	for i := 0; i < 3; i++ {
		if v, _ := evalString(t, "BIG+SMALL*2"); v != 65504 {
			t.Fatalf("evaluation %d produced %d", i, v)
		}
	}
}

func TestEvalExpr_divisionByZero(t *testing.T) {
	for _, src := range []string{"1/0", "1%0", "1/(SMALL-2)"} {
		if _, err := evalString(t, src); err == nil {
			t.Errorf("eval %q: expected error", src)
		}
	}
}

func TestEvalExpr_undefined(t *testing.T) {
	_, err := evalString(t, "2+missing")
	u, ok := err.(*errUndefined)
	if !ok {
		t.Fatalf("expected *errUndefined, got %v", err)
	}
	if u.name != "missing" {
		t.Errorf("undefined symbol = %q, want missing", u.name)
	}
}

// The terminating index stays valid even when a symbol is undefined, so
// the span can be queued as a fixup.
func TestEvalExpr_undefinedTerminates(t *testing.T) {
	ls := &lineScanner{file: "expr", line: "missing+1, 5", num: 1}
	toks, err := ls.scanLine()
	if err != nil {
		t.Fatal(err)
	}
	_, next, err := evalExpr(toks, 0, lookupTestSym)
	if _, ok := err.(*errUndefined); !ok {
		t.Fatalf("expected *errUndefined, got %v", err)
	}
	if next != 3 {
		t.Errorf("terminating index = %d, want 3", next)
	}
}
