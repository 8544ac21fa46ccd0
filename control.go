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
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Section holds the key/value pairs of one control file section. Keys are
// uppercase; values keep their original case.
type Section map[string]string

// Sections maps uppercase section names to their contents. Pairs that appear
// before the first section header are stored under the empty name.
type Sections map[string]Section

// ParseControl reads a CloneCD control file.
//
// Each line is trimmed and blank lines are skipped. A line starting with '[' is
// a section header and must end with ']' around a non-empty name. Any other line
// must hold exactly one '='. Later duplicates of a key replace earlier ones.
// A malformed line yields a *SyntaxError.
func ParseControl(r io.Reader) (Sections, error) {
	sections := Sections{}
	current := ""

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if line[0] == '[' {
			if len(line) < 3 || line[len(line)-1] != ']' {
				return nil, &SyntaxError{Line: lineNum, Text: line, Reason: "malformed section specifier"}
			}
			current = upperASCII(line[1 : len(line)-1])
			if sections[current] == nil {
				sections[current] = Section{}
			}
			continue
		}

		eq := strings.IndexByte(line, '=')
		if eq < 0 || eq != strings.LastIndexByte(line, '=') {
			return nil, &SyntaxError{Line: lineNum, Text: line, Reason: "malformed value pair specifier"}
		}

		key := upperASCII(strings.TrimSpace(line[:eq]))
		value := strings.TrimSpace(line[eq+1:])

		section := sections[current]
		if section == nil {
			section = Section{}
			sections[current] = section
		}
		section[key] = value
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read control file: %w", err)
	}

	return sections, nil
}

// upperASCII uppercases ASCII letters only, leaving every other byte alone.
func upperASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - 'a' + 'A'
		}
	}
	return string(b)
}
