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
	"errors"
	"testing"

	"github.com/ZaparooProject/go-ccd/archive"
)

func TestIsControlFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want bool
	}{
		{"game.ccd", true},
		{"GAME.CCD", true},
		{"dir/Game.Ccd", true},
		{"game.img", false},
		{"game.sub", false},
		{"game.ccd.bak", false},
		{"ccd", false},
	}

	for _, tt := range tests {
		if got := archive.IsControlFile(tt.name); got != tt.want {
			t.Errorf("IsControlFile(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestDetectControlFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	arc, err := archive.Open(createTestZIP(t, dir, "set.zip", map[string][]byte{
		"b/Disc 2.ccd": {},
		"a/Disc 1.ccd": {},
		"a/Disc 1.img": {},
	}))
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = arc.Close() }()

	names, err := archive.ControlFiles(arc)
	if err != nil || len(names) != 2 {
		t.Fatalf("ControlFiles() = %v, %v", names, err)
	}

	got, err := archive.DetectControlFile(arc, "set.zip")
	if err != nil {
		t.Fatalf("DetectControlFile() error = %v", err)
	}
	if got != "a/Disc 1.ccd" {
		t.Errorf("DetectControlFile() = %q, want first in name order", got)
	}
}

func TestDetectControlFile_None(t *testing.T) {
	t.Parallel()

	arc, err := archive.Open(createTestZIP(t, t.TempDir(), "set.zip", map[string][]byte{"game.img": {}}))
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = arc.Close() }()

	_, err = archive.DetectControlFile(arc, "set.zip")
	var noControl archive.NoControlFileError
	if !errors.As(err, &noControl) || noControl.Archive != "set.zip" {
		t.Errorf("error = %v, want NoControlFileError", err)
	}
}
