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
	"path/filepath"
	"strings"
)

// companionExts are the lowercase extensions of the image and subchannel files.
var companionExts = [2]string{"img", "sub"}

// letterCase classifies one extension character.
type letterCase int8

const (
	caseInherit letterCase = iota
	caseLower
	caseUpper
)

// CompanionPaths returns the image and subchannel paths that belong to the
// control file at controlPath. The companions share its directory and base
// name. When the control file has a three character extension, its per-position
// letter case carries over to the companion extensions ("game.CcD" pairs with
// "game.ImG" and "game.SuB"); otherwise they are lowercase.
func CompanionPaths(controlPath string) (imgPath, subPath string) {
	dir, file := filepath.Split(controlPath)
	ext := filepath.Ext(file)
	base := strings.TrimSuffix(file, ext)

	exts := companionExts
	if len(ext) == 4 {
		pattern := casePattern(ext[1:])
		for i := range exts {
			exts[i] = applyCase(exts[i], pattern)
		}
	}

	return filepath.Join(dir, base+"."+exts[0]), filepath.Join(dir, base+"."+exts[1])
}

// companionNames is CompanionPaths for slash-separated paths inside archives.
func companionNames(controlName string) (imgName, subName string) {
	imgPath, subPath := CompanionPaths(filepath.FromSlash(controlName))
	return filepath.ToSlash(imgPath), filepath.ToSlash(subPath)
}

// casePattern classifies the three characters of ext. Non-letters inherit the
// closest explicit class before them; leading non-letters take the last explicit
// class in ext, or lowercase when ext has no letters at all.
func casePattern(ext string) [3]letterCase {
	var pattern [3]letterCase
	for i := range pattern {
		switch c := ext[i]; {
		case c >= 'A' && c <= 'Z':
			pattern[i] = caseUpper
		case c >= 'a' && c <= 'z':
			pattern[i] = caseLower
		}
	}

	last := caseInherit
	for i, c := range pattern {
		if c != caseInherit {
			last = c
		} else {
			pattern[i] = last
		}
	}

	if last == caseInherit {
		last = caseLower
	}
	for i, c := range pattern {
		if c == caseInherit {
			pattern[i] = last
		}
	}

	return pattern
}

// applyCase rewrites the three lowercase letters of ext using pattern.
func applyCase(ext string, pattern [3]letterCase) string {
	b := []byte(ext)
	for i, c := range pattern {
		if c == caseUpper {
			b[i] = b[i] - 'a' + 'A'
		}
	}
	return string(b)
}
