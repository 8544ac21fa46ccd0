// Copyright (c) 2025 Niema Moshiri and The Zaparoo Project.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of go-ccd.
//
// go-ccd is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// go-ccd is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with go-ccd.  If not, see <https://www.gnu.org/licenses/>.

package ccd

import (
	"errors"
	"strings"
	"testing"
)

func TestParseControl(t *testing.T) {
	t.Parallel()

	text := "Orphan = Value\n" +
		"\n" +
		"  [Disc]  \n" +
		"TocEntries=4\n" +
		"  catalog =  MixedCase Value  \n" +
		"[entry 0]\n" +
		"Point=0xa0\n" +
		"Point=0xa1\n" +
		"Empty=\n" +
		"[Empty Section]\n"

	sections := mustParse(t, text)

	tests := []struct {
		section string
		key     string
		want    string
	}{
		{"", "ORPHAN", "Value"},
		{"DISC", "TOCENTRIES", "4"},
		{"DISC", "CATALOG", "MixedCase Value"},
		{"ENTRY 0", "POINT", "0xa1"},
		{"ENTRY 0", "EMPTY", ""},
	}
	for _, tt := range tests {
		got, ok := sections[tt.section][tt.key]
		if !ok {
			t.Errorf("[%s] %s missing", tt.section, tt.key)
			continue
		}
		if got != tt.want {
			t.Errorf("[%s] %s = %q, want %q", tt.section, tt.key, got, tt.want)
		}
	}

	if s, ok := sections["EMPTY SECTION"]; !ok || len(s) != 0 {
		t.Errorf("EMPTY SECTION = %v, %v; want empty section", s, ok)
	}
	if len(sections) != 4 {
		t.Errorf("got %d sections, want 4", len(sections))
	}
}

func TestParseControl_SyntaxErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		line int
	}{
		{"empty header", "[Disc]\nA=1\n[]\n", 3},
		{"unterminated header", "[Disc\n", 1},
		{"bracket only", "[\n", 1},
		{"no equals", "[Disc]\n\nTocEntries 4\n", 3},
		{"two equals", "A=B=C\n", 1},
		{"trailing text after header", "[Disc] x\n", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseControl(strings.NewReader(tt.text))
			if !errors.Is(err, ErrSyntax) {
				t.Fatalf("ParseControl() error = %v, want ErrSyntax", err)
			}
			var synErr *SyntaxError
			if !errors.As(err, &synErr) {
				t.Fatalf("ParseControl() error = %T, want *SyntaxError", err)
			}
			if synErr.Line != tt.line {
				t.Errorf("Line = %d, want %d", synErr.Line, tt.line)
			}
			if !strings.Contains(err.Error(), synErr.Text) {
				t.Errorf("Error() = %q does not name the line", err.Error())
			}
		})
	}
}

func TestUpperASCII(t *testing.T) {
	t.Parallel()

	if got := upperASCII("Entry 12 é"); got != "ENTRY 12 é" {
		t.Errorf("upperASCII() = %q", got)
	}
}
