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

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"0", 0, true},
		{"42", 42, true},
		{"65500", 65500, true},
		{"$FF", 0xFF, true},
		{"$ffdc", 0xFFDC, true},
		{"%1010", 10, true},
		{"&777", 0o777, true},
		{"0o777", 0o777, true},
		{"", 0, false},
		{"$", 0, false},
		{"#12", 0, false},
		{"12F", 0, false},
		{"%102", 0, false},
		{"&8", 0, false},
	}
	for _, tc := range tests {
		got, err := ParseNumber(tc.in)
		if tc.ok != (err == nil) {
			t.Errorf("ParseNumber(%q): unexpected error state: %v", tc.in, err)
			continue
		}
		if tc.ok && got != tc.want {
			t.Errorf("ParseNumber(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

// parse(format(n, base, width)) == n for every n representable in width.
func TestFormatNumber_roundTrip(t *testing.T) {
	for _, base := range []int{2, 8, 10, 16} {
		for n := 0; n <= 0xFF; n++ {
			got, err := ParseNumber(FormatNumber(n, base, 8))
			if err != nil || got != n {
				t.Fatalf("base %d: round trip of %d gave %d, %v", base, n, got, err)
			}
		}
		for _, n := range []int{0x100, 0x1234, 0xFFDC, 0xFFFF} {
			got, err := ParseNumber(FormatNumber(n, base, 16))
			if err != nil || got != n {
				t.Fatalf("base %d: round trip of %d gave %d, %v", base, n, got, err)
			}
		}
	}
}

func TestNumberWidth(t *testing.T) {
	tests := []struct {
		n, want int
	}{
		{0, 1}, {0xFF, 1}, {-128, 1}, {0x100, 2}, {0xFFDC, 2}, {-129, 2},
	}
	for _, tc := range tests {
		if got := NumberWidth(tc.n); got != tc.want {
			t.Errorf("NumberWidth(%d) = %d, want %d", tc.n, got, tc.want)
		}
	}
}
