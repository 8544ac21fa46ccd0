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
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ZaparooProject/go-ccd/archive"
)

// createTestZIP writes a ZIP archive with the given files into dir.
func createTestZIP(t *testing.T, dir, name string, files map[string][]byte) string {
	t.Helper()

	zipPath := filepath.Join(dir, name)
	file, err := os.Create(zipPath) //nolint:gosec // Test temp directory
	if err != nil {
		t.Fatalf("create zip file: %v", err)
	}
	defer func() { _ = file.Close() }()

	writer := zip.NewWriter(file)
	for filename, content := range files {
		w, err := writer.Create(filename)
		if err != nil {
			t.Fatalf("create %s in zip: %v", filename, err)
		}
		if _, err := w.Write(content); err != nil {
			t.Fatalf("write %s: %v", filename, err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close zip writer: %v", err)
	}

	return zipPath
}

func standardSetFiles(base string) map[string][]byte {
	return map[string][]byte{
		base + ".CCD": []byte(controlText(standardEntries(), "")),
		base + ".IMG": imageBytes(testSectors),
		base + ".SUB": subBytes(testSectors, standardTrack),
	}
}

func TestOpenArchive(t *testing.T) {
	t.Parallel()

	files := standardSetFiles("Disc/Game")
	files["readme.txt"] = []byte("not an image")
	zipPath := createTestZIP(t, t.TempDir(), "set.zip", files)

	for _, internal := range []string{"", "Disc/Game.CCD", "disc/game.ccd"} {
		im, err := OpenArchive(zipPath, internal)
		if err != nil {
			t.Fatalf("OpenArchive(%q) error = %v", internal, err)
		}

		if im.SectorCount() != testSectors || im.CheckedSubQ() != testSectors {
			t.Errorf("OpenArchive(%q): sectors %d, checked %d", internal, im.SectorCount(), im.CheckedSubQ())
		}

		buf := make([]byte, RawSectorSize)
		if err := im.ReadRawSector(buf, 10); err != nil {
			t.Fatalf("ReadRawSector() error = %v", err)
		}
		if !bytes.Equal(buf[:SectorSize], sectorData(10)) {
			t.Error("ReadRawSector() data mismatch")
		}
		_ = im.Close()
	}
}

func TestOpenArchive_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	noControl := createTestZIP(t, dir, "empty.zip", map[string][]byte{"game.img": {}})
	var ncErr archive.NoControlFileError
	if _, err := OpenArchive(noControl, ""); !errors.As(err, &ncErr) {
		t.Errorf("no control file: error = %v, want NoControlFileError", err)
	}

	files := standardSetFiles("game")
	delete(files, "game.SUB")
	noSub := createTestZIP(t, dir, "nosub.zip", files)
	var nfErr archive.FileNotFoundError
	if _, err := OpenArchive(noSub, ""); !errors.As(err, &nfErr) {
		t.Errorf("missing subchannel: error = %v, want FileNotFoundError", err)
	}

	if _, err := OpenArchive(filepath.Join(dir, "set.tar"), ""); err == nil {
		t.Error("unsupported archive format: expected error")
	}
}

func TestOpenPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	zipPath := createTestZIP(t, dir, "set.zip", standardSetFiles("Disc/Game"))
	ccdPath := writeStandardImage(t, dir)

	for _, path := range []string{zipPath, zipPath + "/Disc/Game.CCD", ccdPath} {
		im, err := OpenPath(path, WithMemoryCache(true))
		if err != nil {
			t.Fatalf("OpenPath(%q) error = %v", path, err)
		}
		if im.TOC().LastTrack != 2 {
			t.Errorf("OpenPath(%q): wrong TOC", path)
		}
		_ = im.Close()
	}
}
