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

// Package archive reads CloneCD image sets stored in ZIP, 7z and RAR archives.
//
// Archive members are decompressed whole into memory; a disc image inside an
// archive is then served like any other in-memory stream.
package archive

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ZaparooProject/go-ccd/internal/stream"
)

// FileInfo describes one file in an archive.
type FileInfo struct {
	Name string // Slash-separated path within the archive
	Size int64  // Uncompressed size, or -1 if the archive does not record it
}

// Archive provides read access to the files in an archive.
type Archive interface {
	// List returns every regular file in the archive.
	List() ([]FileInfo, error)

	// Open opens a file for sequential reading. Names match case-insensitively.
	// It returns the reader and the uncompressed size (-1 if unknown).
	Open(name string) (io.ReadCloser, int64, error)

	// Close closes the archive.
	Close() error
}

// Open opens the archive at path, picking the format from its extension.
func Open(path string) (Archive, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".zip":
		return OpenZIP(path)
	case ".7z":
		return OpenSevenZip(path)
	case ".rar":
		return OpenRAR(path)
	default:
		return nil, FormatError{Format: ext}
	}
}

// IsArchiveExtension reports whether ext names a supported archive format.
func IsArchiveExtension(ext string) bool {
	switch strings.ToLower(ext) {
	case ".zip", ".7z", ".rar":
		return true
	default:
		return false
	}
}

// ReadStream decompresses the named file of arc into memory.
func ReadStream(arc Archive, name string) (stream.Stream, error) {
	reader, size, err := arc.Open(name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = reader.Close() }()

	if size > stream.MaxExpandedSize {
		return nil, fmt.Errorf("%s: %w", name, stream.ErrTooLarge)
	}

	var data []byte
	if size >= 0 {
		data = make([]byte, size)
		_, err = io.ReadFull(reader, data)
	} else {
		data, err = io.ReadAll(io.LimitReader(reader, stream.MaxExpandedSize+1))
		if err == nil && int64(len(data)) > stream.MaxExpandedSize {
			return nil, fmt.Errorf("%s: %w", name, stream.ErrTooLarge)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("read %s from archive: %w", name, err)
	}

	return stream.FromBytes(data), nil
}
