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

package archive

import (
	"fmt"
	"path"
	"slices"
	"strings"
)

// IsControlFile reports whether name has the .ccd extension, in any case.
func IsControlFile(name string) bool {
	return strings.EqualFold(path.Ext(name), ".ccd")
}

// ControlFiles returns the names of all control files in arc, sorted.
func ControlFiles(arc Archive) ([]string, error) {
	files, err := arc.List()
	if err != nil {
		return nil, fmt.Errorf("list archive files: %w", err)
	}

	var names []string
	for _, file := range files {
		if IsControlFile(file.Name) {
			names = append(names, file.Name)
		}
	}
	slices.Sort(names)

	return names, nil
}

// DetectControlFile returns the first control file of arc in name order.
// archiveName is only used in the error when there is none.
func DetectControlFile(arc Archive, archiveName string) (string, error) {
	names, err := ControlFiles(arc)
	if err != nil {
		return "", err
	}
	if len(names) == 0 {
		return "", NoControlFileError{Archive: archiveName}
	}
	return names[0], nil
}
