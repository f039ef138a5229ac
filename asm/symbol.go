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
	"text/scanner"

	"github.com/pkg/errors"
)

// SymKind classifies a symbol table entry.
type SymKind int

const (
	// SymConstant is an EQU/DEF binding.
	SymConstant SymKind = iota
	// SymLabel is an address within a section.
	SymLabel
	// SymExported is a label defined with the "::" suffix, visible to
	// other translation units once a linker exists.
	SymExported
)

func (k SymKind) String() string {
	switch k {
	case SymConstant:
		return "constant"
	case SymLabel:
		return "label"
	case SymExported:
		return "exported-label"
	}
	return "unknown"
}

// Symbol is an immutable named binding. Local labels (leading '.') are
// stored under their qualified name "Global.local".
type Symbol struct {
	Name  string
	Kind  SymKind
	Value int
	Pos   scanner.Position // definition site, for diagnostics
}

const maxSymbolLen = 32

// validSymbolName checks the dialect's naming rule: a leading letter, then
// letters, digits and underscores, at most 32 characters. Names are
// case-sensitive. The leading '.' of a local symbol is not part of the
// checked name.
func validSymbolName(name string) error {
	local := len(name) > 0 && name[0] == '.'
	if local {
		name = name[1:]
	}
	if name == "" {
		return errors.New("empty symbol name")
	}
	if len(name) > maxSymbolLen {
		return errors.Errorf("symbol name %q longer than %d characters", name, maxSymbolLen)
	}
	if !isLetter(name[0]) || name[0] == '_' {
		return errors.Errorf("symbol name %q must start with a letter", name)
	}
	for i := 1; i < len(name); i++ {
		if !isIdentRune(name[i]) {
			return errors.Errorf("invalid character %q in symbol name %q", rune(name[i]), name)
		}
	}
	return nil
}

// symtab is the per-run symbol table. global tracks the most recently
// defined global label, which scopes local ".name" definitions and
// references.
type symtab struct {
	syms   map[string]*Symbol
	global string
}

func newSymtab() *symtab {
	return &symtab{syms: make(map[string]*Symbol)}
}

// qualify maps a source-level name to its table key. Local names resolve
// against the current global label scope; before the first global label
// they share an implicit root scope.
func (st *symtab) qualify(name string) string {
	if len(name) == 0 || name[0] != '.' {
		return name
	}
	return st.global + name
}

// define inserts a new symbol. Redefinition is fatal; local labels get a
// fresh identity under each global scope, so ".loop" may reappear under
// different parents.
func (st *symtab) define(name string, kind SymKind, value int, pos scanner.Position) (*Symbol, error) {
	if err := validSymbolName(name); err != nil {
		return nil, err
	}
	key := st.qualify(name)
	if prev, ok := st.syms[key]; ok {
		return nil, errors.Errorf("symbol %s already defined at %s", name, prev.Pos)
	}
	sym := &Symbol{Name: key, Kind: kind, Value: value, Pos: pos}
	st.syms[key] = sym
	if kind != SymConstant && name[0] != '.' {
		st.global = name
	}
	return sym, nil
}

// lookup resolves a name in the current scope.
func (st *symtab) lookup(name string) (*Symbol, bool) {
	s, ok := st.syms[st.qualify(name)]
	return s, ok
}

// lookupValue is the evaluator's view of the table.
func (st *symtab) lookupValue(name string) (int, bool) {
	s, ok := st.lookup(name)
	if !ok {
		return 0, false
	}
	return s.Value, true
}
