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
	"text/scanner"
)

// ErrSource is a diagnostic tied to a source position.
type ErrSource struct {
	Pos scanner.Position
	Msg string
}

func (e ErrSource) Error() string {
	return e.Pos.String() + ": " + e.Msg
}

// ErrAsm is the error type returned by Assemble. The first pass stops at
// its first fatal error, so the slice then holds a single entry; the fixup
// pass collects every unresolved site so the user sees all of them at
// once.
type ErrAsm []ErrSource

func (e ErrAsm) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "\n")
}

// errUndefined marks an expression that references a symbol with no
// definition yet. The first pass turns it into a fixup; the second pass
// turns it into a fatal "undefined reference".
type errUndefined struct {
	name string
	pos  scanner.Position
}

func (e *errUndefined) Error() string {
	return "undefined symbol " + e.name
}
