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
	"io"
	"path/filepath"
	"strings"
)

// member is one file of an archive with a central directory.
type member struct {
	open func() (io.ReadCloser, error)
	info FileInfo
}

// indexedArchive serves formats whose file list is known up front (ZIP, 7z).
type indexedArchive struct {
	closer  io.Closer
	format  string
	path    string
	members []member
}

func (ia *indexedArchive) List() ([]FileInfo, error) {
	files := make([]FileInfo, len(ia.members))
	for i, m := range ia.members {
		files[i] = m.info
	}
	return files, nil
}

func (ia *indexedArchive) Open(name string) (io.ReadCloser, int64, error) {
	name = filepath.ToSlash(name)

	for _, m := range ia.members {
		if !strings.EqualFold(m.info.Name, name) {
			continue
		}
		reader, err := m.open()
		if err != nil {
			return nil, 0, fmt.Errorf("open file in %s: %w", ia.format, err)
		}
		return reader, m.info.Size, nil
	}

	return nil, 0, FileNotFoundError{Archive: ia.path, InternalPath: name}
}

func (ia *indexedArchive) Close() error {
	return ia.closer.Close() //nolint:wrapcheck // Close error passthrough is intentional
}
