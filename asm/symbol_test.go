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
	"strings"
	"testing"
	"text/scanner"
)

var noPos scanner.Position

func TestSymtab_defineLookup(t *testing.T) {
	st := newSymtab()
	if _, err := st.define("start", SymLabel, 0x150, noPos); err != nil {
		t.Fatal(err)
	}
	if _, err := st.define("SPEED", SymConstant, 42, noPos); err != nil {
		t.Fatal(err)
	}
	s, ok := st.lookup("start")
	if !ok || s.Value != 0x150 || s.Kind != SymLabel {
		t.Errorf("lookup(start) = %+v, %v", s, ok)
	}
	if v, ok := st.lookupValue("SPEED"); !ok || v != 42 {
		t.Errorf("lookupValue(SPEED) = %d, %v", v, ok)
	}
	if _, ok := st.lookup("missing"); ok {
		t.Error("lookup(missing) unexpectedly succeeded")
	}
}

func TestSymtab_redefinitionFatal(t *testing.T) {
	st := newSymtab()
	st.define("start", SymLabel, 0, noPos)
	if _, err := st.define("start", SymLabel, 8, noPos); err == nil {
		t.Fatal("redefinition of start did not fail")
	}
	// names are case-sensitive, so this is a different symbol
	if _, err := st.define("START", SymLabel, 8, noPos); err != nil {
		t.Fatalf("START after start: %v", err)
	}
}

// ".loop" gets a fresh identity under each global label.
func TestSymtab_localScopes(t *testing.T) {
	st := newSymtab()
	st.define("first", SymLabel, 0x100, noPos)
	if _, err := st.define(".loop", SymLabel, 0x103, noPos); err != nil {
		t.Fatal(err)
	}
	if v, ok := st.lookupValue(".loop"); !ok || v != 0x103 {
		t.Errorf(".loop under first = %d, %v", v, ok)
	}

	st.define("second", SymLabel, 0x200, noPos)
	if _, err := st.define(".loop", SymLabel, 0x203, noPos); err != nil {
		t.Fatalf(".loop under second: %v", err)
	}
	if v, _ := st.lookupValue(".loop"); v != 0x203 {
		t.Errorf(".loop under second = %d, want 0x203", v)
	}

	// same scope: now a redefinition
	if _, err := st.define(".loop", SymLabel, 0x206, noPos); err == nil {
		t.Error("redefinition of .loop under second did not fail")
	}
}

// Constants do not change the local label scope.
func TestSymtab_constantKeepsScope(t *testing.T) {
	st := newSymtab()
	st.define("main", SymLabel, 0x150, noPos)
	st.define(".here", SymLabel, 0x152, noPos)
	st.define("WIDTH", SymConstant, 8, noPos)
	if v, ok := st.lookupValue(".here"); !ok || v != 0x152 {
		t.Errorf(".here after constant = %d, %v", v, ok)
	}
}

func TestValidSymbolName(t *testing.T) {
	valid := []string{"a", "Label", "r2d2", "snake_case", ".loop", strings.Repeat("x", 32)}
	for _, name := range valid {
		if err := validSymbolName(name); err != nil {
			t.Errorf("validSymbolName(%q): %v", name, err)
		}
	}
	invalid := []string{"", ".", "1up", "_private", "has-dash", strings.Repeat("x", 33)}
	for _, name := range invalid {
		if err := validSymbolName(name); err == nil {
			t.Errorf("validSymbolName(%q): expected error", name)
		}
	}
}
