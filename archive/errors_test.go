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
	"testing"

	"github.com/ZaparooProject/go-ccd/archive"
)

func TestErrorMessages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want string
	}{
		{archive.FormatError{Format: ".tar"}, "unsupported archive format: .tar"},
		{archive.FormatError{Format: ".zip", Reason: "truncated"}, "unsupported archive format .zip: truncated"},
		{archive.FileNotFoundError{Archive: "set.zip", InternalPath: "game.sub"}, `file "game.sub" not found in archive "set.zip"`},
		{archive.NoControlFileError{Archive: "set.7z"}, `no .ccd control file found in archive "set.7z"`},
	}

	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}
