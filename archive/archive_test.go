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

package archive_test

import (
	"archive/zip"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/ZaparooProject/go-ccd/archive"
	"github.com/ZaparooProject/go-ccd/internal/stream"
)

// createTestZIP creates a ZIP archive in dir with the given files.
//
//nolint:gosec // Test helper creates files in test temp directory
func createTestZIP(t *testing.T, dir, name string, files map[string][]byte) string {
	t.Helper()

	zipPath := filepath.Join(dir, name)
	file, err := os.Create(zipPath)
	if err != nil {
		t.Fatalf("create zip file: %v", err)
	}
	defer func() { _ = file.Close() }()

	writer := zip.NewWriter(file)
	if _, err := writer.Create("empty-dir/"); err != nil {
		t.Fatalf("create directory in zip: %v", err)
	}
	for filename, content := range files {
		fileWriter, err := writer.Create(filename)
		if err != nil {
			t.Fatalf("create file in zip: %v", err)
		}
		if _, err := fileWriter.Write(content); err != nil {
			t.Fatalf("write file content: %v", err)
		}
	}

	if err := writer.Close(); err != nil {
		t.Fatalf("close zip writer: %v", err)
	}

	return zipPath
}

func TestOpen(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	zipPath := createTestZIP(t, dir, "set.zip", map[string][]byte{"game.ccd": []byte("[Disc]\n")})

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"ZIP archive", zipPath, false},
		{"missing ZIP", filepath.Join(dir, "missing.zip"), true},
		{"missing 7z", filepath.Join(dir, "missing.7z"), true},
		{"missing RAR", filepath.Join(dir, "missing.rar"), true},
		{"unsupported format", filepath.Join(dir, "set.tar"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			arc, err := archive.Open(tt.path)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			_ = arc.Close()
		})
	}
}

func TestOpen_UnsupportedFormatError(t *testing.T) {
	t.Parallel()

	_, err := archive.Open("set.tar")
	var formatErr archive.FormatError
	if !errors.As(err, &formatErr) || formatErr.Format != ".tar" {
		t.Errorf("error = %v, want FormatError for .tar", err)
	}
}

func TestIsArchiveExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ext  string
		want bool
	}{
		{".zip", true},
		{".ZIP", true},
		{".7z", true},
		{".rar", true},
		{".tar", false},
		{".gz", false},
		{".ccd", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := archive.IsArchiveExtension(tt.ext); got != tt.want {
			t.Errorf("IsArchiveExtension(%q) = %v, want %v", tt.ext, got, tt.want)
		}
	}
}

func TestZIP_ListAndOpen(t *testing.T) {
	t.Parallel()

	files := map[string][]byte{
		"Game.CCD":        []byte("[Disc]\nSessions=1\n"),
		"Game.IMG":        make([]byte, 2352),
		"extra/notes.txt": []byte("hello"),
	}
	arc, err := archive.Open(createTestZIP(t, t.TempDir(), "set.zip", files))
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = arc.Close() }()

	list, err := arc.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != len(files) {
		t.Fatalf("List() returned %d files, want %d (directories excluded)", len(list), len(files))
	}
	for _, info := range list {
		if want := int64(len(files[info.Name])); info.Size != want {
			t.Errorf("%s size = %d, want %d", info.Name, info.Size, want)
		}
	}

	reader, size, err := arc.Open("game.ccd")
	if err != nil {
		t.Fatalf("Open() case-insensitive error = %v", err)
	}
	data, err := io.ReadAll(reader)
	_ = reader.Close()
	if err != nil || string(data) != "[Disc]\nSessions=1\n" || size != int64(len(data)) {
		t.Errorf("Open() read %q (size %d), %v", data, size, err)
	}

	_, _, err = arc.Open("missing.sub")
	var notFound archive.FileNotFoundError
	if !errors.As(err, &notFound) || notFound.InternalPath != "missing.sub" {
		t.Errorf("Open(missing) error = %v, want FileNotFoundError", err)
	}
}

func TestReadStream(t *testing.T) {
	t.Parallel()

	content := make([]byte, 5000)
	for i := range content {
		content[i] = byte(i)
	}
	arc, err := archive.Open(createTestZIP(t, t.TempDir(), "set.zip", map[string][]byte{"game.img": content}))
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = arc.Close() }()

	s, err := archive.ReadStream(arc, "GAME.IMG")
	if err != nil {
		t.Fatalf("ReadStream() error = %v", err)
	}
	defer func() { _ = s.Close() }()

	if s.Size() != int64(len(content)) {
		t.Errorf("Size() = %d, want %d", s.Size(), len(content))
	}
	buf := make([]byte, 10)
	if err := stream.ReadFullAt(s, buf, 4990); err != nil || buf[0] != content[4990] {
		t.Errorf("ReadFullAt() = %v, %v", buf, err)
	}
	if err := stream.ReadFullAt(s, buf, 4995); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("read past end error = %v", err)
	}

	if _, err := archive.ReadStream(arc, "game.sub"); err == nil {
		t.Error("ReadStream() of missing file succeeded")
	}
}
