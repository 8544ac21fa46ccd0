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
	"fmt"
	"io"

	"github.com/ZaparooProject/go-ccd/archive"
	"github.com/ZaparooProject/go-ccd/internal/stream"
)

// OpenArchive opens a CloneCD image stored in a ZIP, 7z or RAR archive.
// internalPath names the control file inside the archive; when empty, the first
// .ccd file is used. The companions are looked up next to it inside the archive
// and are always buffered in memory, so the archive is closed before
// OpenArchive returns.
func OpenArchive(archivePath, internalPath string, opts ...Option) (*Image, error) {
	o := applyOptions(opts)

	arc, err := archive.Open(archivePath)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	defer func() { _ = arc.Close() }()

	if internalPath == "" {
		internalPath, err = archive.DetectControlFile(arc, archivePath)
		if err != nil {
			return nil, fmt.Errorf("detect control file: %w", err)
		}
	}

	control, err := archive.ReadStream(arc, internalPath)
	if err != nil {
		return nil, fmt.Errorf("read control file: %w", err)
	}
	sections, err := ParseControl(io.NewSectionReader(control, 0, control.Size()))
	_ = control.Close()
	if err != nil {
		return nil, fmt.Errorf("parse control file %s: %w", internalPath, err)
	}

	imgName, subName := companionNames(internalPath)
	return newImage(sections, imgName, subName, o, func(name string) (stream.Stream, error) {
		return archive.ReadStream(arc, name) //nolint:wrapcheck // Wrapped by caller
	})
}

// OpenPath opens an image from a plain control file path or from a path into an
// archive as understood by archive.ParsePath ("set.zip" or "set.7z/game.ccd").
func OpenPath(path string, opts ...Option) (*Image, error) {
	arcPath, err := archive.ParsePath(path)
	if err != nil {
		return nil, fmt.Errorf("parse path: %w", err)
	}
	if arcPath != nil {
		return OpenArchive(arcPath.ArchivePath, arcPath.InternalPath, opts...)
	}
	return Open(path, opts...)
}
