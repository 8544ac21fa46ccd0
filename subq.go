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
	"bufio"
	"fmt"
	"io"

	"github.com/ZaparooProject/go-ccd/subchannel"
)

// checkSubQ scans the Q channel of every sector for mode-1 data that passes its
// checksum but holds out of range timecodes, or a track number lower than an
// earlier sector's. Blocks failing the checksum or in another mode are skipped.
// It returns the number of blocks validated.
func checkSubQ(sub io.ReaderAt, sectors int64) (int, error) {
	r := bufio.NewReaderSize(io.NewSectionReader(sub, 0, sectors*subchannel.Size), 64*subchannel.Size)
	block := make([]byte, subchannel.Size)

	checked := 0
	var prevTrack uint8
	for sector := range sectors {
		if _, err := io.ReadFull(r, block); err != nil {
			return checked, fmt.Errorf("read subchannel sector %d: %w", sector, err)
		}

		q := subchannel.Q(block)
		if !subchannel.QChecksumValid(q) || subchannel.ADR(q) != subchannel.ADRPosition {
			continue
		}

		pos, err := subchannel.DecodePosition(q)
		if err != nil {
			return checked, &SubQError{Sector: sector, PrevTrack: prevTrack, Err: err}
		}
		if pos.Track < prevTrack {
			return checked, &SubQError{Sector: sector, Track: pos.Track, PrevTrack: prevTrack, Err: errTrackOrder}
		}
		prevTrack = pos.Track
		checked++
	}

	return checked, nil
}
