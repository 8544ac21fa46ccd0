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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ZaparooProject/go-ccd/subchannel"
)

// testEntry is one [Entry n] section.
type testEntry struct {
	plba    int32
	point   uint8
	control uint8
	pmin    uint8
	psec    uint8
}

// testSectors is the size of the standard test disc: a data track at LBA 0,
// an audio track at LBA 60 and the lead-out at 100.
const testSectors = 100

func standardEntries() []testEntry {
	return []testEntry{
		{point: 0xA0, control: 0x4, pmin: 1, psec: 0x20},
		{point: 0xA1, control: 0x0, pmin: 2},
		{point: 0xA2, control: 0x0, plba: testSectors},
		{point: 1, control: 0x4, plba: 0},
		{point: 2, control: 0x0, plba: 60},
	}
}

// standardTrack returns the track the standard disc has at sector.
func standardTrack(sector int) uint8 {
	if sector < 60 {
		return 1
	}
	return 2
}

// controlText renders a control file in the style CloneCD writes.
func controlText(entries []testEntry, extra string) string {
	var b strings.Builder
	b.WriteString("[CloneCD]\r\nVersion=3\r\n")
	fmt.Fprintf(&b, "[Disc]\r\nTocEntries=%d\r\nSessions=1\r\nDataTracksScrambled=0\r\nCDTextLength=0\r\n", len(entries))
	b.WriteString("[Session 1]\r\nPreGapMode=1\r\nPreGapSubC=0\r\n")
	for i, e := range entries {
		fmt.Fprintf(&b, "[Entry %d]\r\nSession=1\r\nPoint=0x%02x\r\nADR=0x01\r\nControl=0x%02x\r\n", i, e.point, e.control)
		fmt.Fprintf(&b, "TrackNo=0\r\nAMin=0\r\nASec=0\r\nAFrame=0\r\nALBA=-150\r\nZero=0\r\n")
		fmt.Fprintf(&b, "PMin=%d\r\nPSec=%d\r\nPFrame=0\r\nPLBA=%d\r\n", e.pmin, e.psec, e.plba)
	}
	b.WriteString("[TRACK 1]\r\nMODE=1\r\nINDEX 1=0\r\n")
	b.WriteString("[TRACK 2]\r\nMODE=0\r\nINDEX 0=50\r\nINDEX 1=60\r\n")
	b.WriteString(extra)
	return b.String()
}

// sectorData returns the image bytes of sector i.
func sectorData(i int) []byte {
	data := make([]byte, SectorSize)
	for j := range data {
		data[j] = byte(i + j)
	}
	return data
}

// subBlock returns a flat subchannel block with a valid mode-1 Q block for
// track at sector i, and a recognisable pattern in the other channels.
func subBlock(i int, track uint8) []byte {
	block := make([]byte, subchannel.Size)
	for j := range block {
		block[j] = byte(i*3 + j)
	}
	subchannel.EncodePosition(subchannel.Q(block), subchannel.Position{
		Track:    track,
		Index:    1,
		Relative: subchannel.MSFFromLBA(int32(i) - 150), //nolint:gosec // small test values
		Absolute: subchannel.MSFFromLBA(int32(i)),       //nolint:gosec // small test values
	})
	return block
}

func imageBytes(sectors int) []byte {
	data := make([]byte, 0, sectors*SectorSize)
	for i := range sectors {
		data = append(data, sectorData(i)...)
	}
	return data
}

func subBytes(sectors int, track func(int) uint8) []byte {
	data := make([]byte, 0, sectors*subchannel.Size)
	for i := range sectors {
		data = append(data, subBlock(i, track(i))...)
	}
	return data
}

func writeTestFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// writeStandardImage writes the standard test disc into dir and returns the
// control file path.
func writeStandardImage(t *testing.T, dir string) string {
	t.Helper()

	ccdPath := filepath.Join(dir, "game.ccd")
	writeTestFile(t, ccdPath, []byte(controlText(standardEntries(), "")))
	writeTestFile(t, filepath.Join(dir, "game.img"), imageBytes(testSectors))
	writeTestFile(t, filepath.Join(dir, "game.sub"), subBytes(testSectors, standardTrack))
	return ccdPath
}

func mustParse(t *testing.T, text string) Sections {
	t.Helper()
	sections, err := ParseControl(strings.NewReader(text))
	if err != nil {
		t.Fatalf("ParseControl() error = %v", err)
	}
	return sections
}
