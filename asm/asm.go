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

import "io"

// Loader resolves an INCLUDE path to its content. Supplied by the driver,
// which owns all file I/O.
type Loader func(path string) (io.ReadCloser, error)

type options struct {
	loader     Loader
	maxInclude int
	maxErrors  int
}

// Option configures an assembly run.
type Option func(*options) error

// WithLoader supplies the INCLUDE file loader. Without one, any INCLUDE
// directive is an error.
func WithLoader(l Loader) Option {
	return func(o *options) error {
		o.loader = l
		return nil
	}
}

// ErrorLimit caps the number of diagnostics collected by the fixup pass.
// The default is 10.
func ErrorLimit(n int) Option {
	return func(o *options) error {
		o.maxErrors = n
		return nil
	}
}

// IncludeDepth caps INCLUDE nesting. The default is 16.
func IncludeDepth(n int) Option {
	return func(o *options) error {
		o.maxInclude = n
		return nil
	}
}

// Program is the result of a successful assembly: every section created
// during the run, in definition order, with its bytes resolved.
type Program struct {
	sections []*Section
}

// Sections returns the program's sections in definition order.
func (p *Program) Sections() []*Section { return p.sections }

// Section returns the named section, or nil.
func (p *Program) Section(name string) *Section {
	for _, s := range p.sections {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// Assemble compiles assembly read from the supplied io.Reader and returns
// the resulting program and error if any.
//
// The name parameter is used only in error messages to name the source of
// the error. If the io.Reader is a file, name should be the file name.
//
// The first pass stops at its first fatal error. The second pass collects
// every undefined-reference and out-of-range site before giving up. Every
// source diagnostic is returned as an ErrAsm value that may contain
// multiple entries (capped by ErrorLimit); a failure to read the input is
// returned as is.
func Assemble(name string, r io.Reader, opts ...Option) (*Program, error) {
	o := options{maxInclude: 16, maxErrors: 10}
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return nil, err
		}
	}
	p := newParser(o)
	if err := p.parse(name, r); err != nil {
		if es, ok := err.(ErrSource); ok {
			return nil, ErrAsm{es}
		}
		return nil, err
	}
	if errs := resolveFixups(p.fixups, p.syms); len(errs) > 0 {
		if len(errs) > o.maxErrors {
			errs = errs[:o.maxErrors]
		}
		return nil, errs
	}
	return &Program{sections: p.secs.list}, nil
}
