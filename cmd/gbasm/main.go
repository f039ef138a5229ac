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

package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/MrCairo/gameboy-assembler/asm"
	"github.com/MrCairo/gameboy-assembler/rom"
)

type dirList []string

func (d *dirList) String() string     { return strings.Join(*d, string(os.PathListSeparator)) }
func (d *dirList) Set(s string) error { *d = append(*d, s); return nil }
func (d *dirList) Get() interface{}   { return *d }

var (
	outFileName string
	title       string
	listing     bool
	debug       bool
	incDirs     dirList
)

// loader resolves INCLUDE paths against the top-level source file's
// directory first, then the -I search path. The assembler detects recursion
// by the path as written in the INCLUDE directive, not by the resolved
// path, so two spellings of one file do not match.
func loader(baseDir string, dirs []string) asm.Loader {
	return func(path string) (io.ReadCloser, error) {
		for _, dir := range append([]string{baseDir}, dirs...) {
			f, err := os.Open(filepath.Join(dir, path))
			if err == nil {
				return f, nil
			}
		}
		return nil, fmt.Errorf("%s not found in include path", path)
	}
}

func atExit(err error) {
	if err == nil {
		return
	}
	if !debug {
		fmt.Fprintf(os.Stderr, "%v\n", err)
	} else {
		fmt.Fprintf(os.Stderr, "%+v\n", err)
	}
	os.Exit(1)
}

func assemble(srcName string) (*asm.Program, error) {
	f, err := os.Open(srcName)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return asm.Assemble(srcName, f,
		asm.WithLoader(loader(filepath.Dir(srcName), incDirs)))
}

func main() {
	var err error
	defer func() { atExit(err) }()

	flag.StringVar(&outFileName, "o", "", "`filename` of the output ROM image")
	flag.StringVar(&title, "title", "", "cartridge `title` for the ROM header")
	flag.BoolVar(&listing, "S", false, "print a per-section disassembly to stdout")
	flag.BoolVar(&debug, "debug", false, "enable debug diagnostics")
	flag.Var(&incDirs, "I", "add `dir` to the INCLUDE search path (can be specified multiple times)")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: gbasm [options] file.asm")
		flag.PrintDefaults()
		os.Exit(2)
	}
	srcName := flag.Arg(0)

	prog, err := assemble(srcName)
	if err != nil {
		return
	}

	if listing {
		if err = writeListing(os.Stdout, prog); err != nil {
			return
		}
	}

	img, err := rom.Build(prog)
	if err != nil {
		return
	}
	if title == "" {
		title = romTitle(srcName)
	}
	if err = img.WriteHeader(title); err != nil {
		return
	}
	if outFileName == "" {
		outFileName = strings.TrimSuffix(srcName, filepath.Ext(srcName)) + ".gb"
	}
	err = rom.Save(outFileName, img)
}

// romTitle derives a header title from the source file name.
func romTitle(srcName string) string {
	t := strings.TrimSuffix(filepath.Base(srcName), filepath.Ext(srcName))
	t = strings.ToUpper(t)
	if len(t) > 15 {
		t = t[:15]
	}
	return t
}
