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
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nwaples/rardecode/v2"
)

// RARArchive provides access to files in a RAR archive. RAR has no central
// directory, so every List and Open rescans the archive from the start.
type RARArchive struct {
	file *os.File
	path string
}

// OpenRAR opens a RAR archive for reading.
func OpenRAR(path string) (*RARArchive, error) {
	file, err := os.Open(path) //nolint:gosec // User-provided path is expected
	if err != nil {
		return nil, fmt.Errorf("open RAR archive: %w", err)
	}

	return &RARArchive{file: file, path: path}, nil
}

// scan walks the archive headers, calling visit for each regular file until it
// returns true. It returns the reader positioned at the matched file.
func (ra *RARArchive) scan(visit func(*rardecode.FileHeader) bool) (*rardecode.Reader, error) {
	if _, err := ra.file.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek RAR archive: %w", err)
	}

	reader, err := rardecode.NewReader(ra.file)
	if err != nil {
		return nil, fmt.Errorf("create RAR reader: %w", err)
	}

	for {
		header, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return nil, nil //nolint:nilnil // nil reader means no file matched
		}
		if err != nil {
			return nil, fmt.Errorf("read RAR header: %w", err)
		}
		if header.IsDir {
			continue
		}
		if visit(header) {
			return reader, nil
		}
	}
}

// List returns all files in the RAR archive.
func (ra *RARArchive) List() ([]FileInfo, error) {
	var files []FileInfo
	_, err := ra.scan(func(h *rardecode.FileHeader) bool {
		size := h.UnPackedSize
		if h.UnKnownSize {
			size = -1
		}
		files = append(files, FileInfo{Name: filepath.ToSlash(h.Name), Size: size})
		return false
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// Open opens a file within the RAR archive.
func (ra *RARArchive) Open(name string) (io.ReadCloser, int64, error) {
	name = filepath.ToSlash(name)

	var size int64
	reader, err := ra.scan(func(h *rardecode.FileHeader) bool {
		if !strings.EqualFold(filepath.ToSlash(h.Name), name) {
			return false
		}
		size = h.UnPackedSize
		if h.UnKnownSize {
			size = -1
		}
		return true
	})
	if err != nil {
		return nil, 0, err
	}
	if reader == nil {
		return nil, 0, FileNotFoundError{Archive: ra.path, InternalPath: name}
	}

	return io.NopCloser(reader), size, nil
}

// Close closes the RAR archive.
func (ra *RARArchive) Close() error {
	return ra.file.Close() //nolint:wrapcheck // Close error passthrough is intentional
}
