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

	"github.com/bodgit/sevenzip"
)

// OpenSevenZip opens a 7z archive for reading.
func OpenSevenZip(path string) (Archive, error) {
	reader, err := sevenzip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open 7z archive: %w", err)
	}

	arc := &indexedArchive{closer: reader, format: "7z", path: path}
	for _, file := range reader.File {
		if file.FileInfo().IsDir() {
			continue
		}
		arc.members = append(arc.members, member{
			info: FileInfo{
				Name: file.Name,
				Size: int64(file.UncompressedSize), //nolint:gosec // Sizes above int64 are not real files
			},
			open: file.Open,
		})
	}

	return arc, nil
}
