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

// The gbasm command line tool assembles one LR35902 source file into a
// Game Boy ROM image, using the package github.com/MrCairo/gameboy-assembler/asm.
//
// Usage:
//
//	gbasm [options] file.asm
//
//	-I dir
//		  add dir to the INCLUDE search path (can be specified multiple times)
//	-S
//		  print a per-section disassembly to stdout
//	-debug
//		  enable debug diagnostics
//	-o filename
//		  filename of the output ROM image (default: the source name with a .gb extension)
//	-title title
//		  cartridge title for the ROM header (default: derived from the source name)
//
// The exit status is 0 only when every section assembled and the image was
// written. Diagnostics carry file:line:column positions and are printed to
// standard error; the fixup pass reports every unresolved reference at
// once before giving up.
package main
