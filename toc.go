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
	"strconv"
)

// LeadoutTrack is the TOC slot holding the lead-out.
const LeadoutTrack = 100

// Special TOC entry points.
const (
	pointFirstTrack = 0xA0
	pointLastTrack  = 0xA1
	pointLeadout    = 0xA2
)

// controlData is the CONTROL bit marking a data track.
const controlData = 0x4

// Track is one TOC slot.
type Track struct {
	LBA     int32
	ADR     uint8
	Control uint8
}

// IsData reports whether the track holds data rather than audio.
func (t Track) IsData() bool {
	return t.Control&controlData != 0
}

// TOC is the table of contents of a single-session disc. Tracks is indexed by
// track number; slot LeadoutTrack is the lead-out and slot 0 is unused. When
// LastTrack is below 99, slot LastTrack+1 repeats the lead-out.
type TOC struct {
	Tracks     [LeadoutTrack + 1]Track
	FirstTrack uint8
	LastTrack  uint8
	DiscType   uint8
}

// Leadout returns the lead-out slot.
func (t *TOC) Leadout() Track {
	return t.Tracks[LeadoutTrack]
}

// TrackSpan returns the first LBA of track n and the first LBA after it.
// ok is false if n is not between FirstTrack and LastTrack.
func (t *TOC) TrackSpan(n uint8) (start, end int32, ok bool) {
	if n == 0 || n < t.FirstTrack || n > t.LastTrack || n >= LeadoutTrack {
		return 0, 0, false
	}
	return t.Tracks[n].LBA, t.Tracks[n+1].LBA, true
}

// tocEntry is one [Entry n] section of the control file.
type tocEntry struct {
	session uint32
	plba    int32
	point   uint8
	adr     uint8
	control uint8
	pmin    uint8
	psec    uint8
	pframe  uint8
}

// readEntry decodes section name.
func readEntry(s Section, name string) (tocEntry, error) {
	var e tocEntry
	var err error

	if e.session, err = readInt[uint32](s, name, "SESSION"); err != nil {
		return e, err
	}
	fields := []struct {
		dst  *uint8
		name string
	}{
		{&e.point, "POINT"},
		{&e.adr, "ADR"},
		{&e.control, "CONTROL"},
		{&e.pmin, "PMIN"},
		{&e.psec, "PSEC"},
		{&e.pframe, "PFRAME"},
	}
	for _, f := range fields {
		if *f.dst, err = readInt[uint8](s, name, f.name); err != nil {
			return e, err
		}
	}
	if e.plba, err = readInt[int32](s, name, "PLBA"); err != nil {
		return e, err
	}

	return e, nil
}

// buildTOC builds the TOC from the [Disc] and [Entry n] sections.
func buildTOC(sections Sections) (TOC, error) {
	var toc TOC
	disc := sections["DISC"]

	sessions, err := readInt[uint32](disc, "DISC", "SESSIONS")
	if err != nil {
		return toc, err
	}
	if sessions != 1 {
		return toc, fmt.Errorf("%w: %d sessions", ErrUnsupported, sessions)
	}

	entries, err := readInt[uint32](disc, "DISC", "TOCENTRIES")
	if err != nil {
		return toc, err
	}

	scrambled, err := readInt[uint32](disc, "DISC", "DATATRACKSSCRAMBLED")
	if err != nil {
		return toc, err
	}
	if scrambled != 0 {
		return toc, fmt.Errorf("%w: scrambled data tracks", ErrUnsupported)
	}

	var haveFirst, haveLast, haveLeadout bool
	for i := range entries {
		name := "ENTRY " + strconv.FormatUint(uint64(i), 10)
		e, err := readEntry(sections[name], name)
		if err != nil {
			return toc, err
		}

		if e.session != 1 {
			return toc, fmt.Errorf("%w: [%s] session %d", ErrUnsupported, name, e.session)
		}

		switch {
		case e.point == pointFirstTrack:
			toc.FirstTrack = e.pmin
			toc.DiscType = e.psec
			haveFirst = true
		case e.point == pointLastTrack:
			toc.LastTrack = e.pmin
			haveLast = true
		case e.point == pointLeadout:
			toc.Tracks[LeadoutTrack] = Track{ADR: e.adr, Control: e.control, LBA: e.plba}
			haveLeadout = true
		case e.point >= 1 && e.point <= 99:
			toc.Tracks[e.point] = Track{ADR: e.adr, Control: e.control, LBA: e.plba}
		default:
			return toc, fmt.Errorf("%w: [%s] point %#02x", ErrUnsupported, name, e.point)
		}
	}

	switch {
	case !haveFirst:
		return toc, fmt.Errorf("%w: no TOC entry for point %#02x", ErrFormat, pointFirstTrack)
	case !haveLast:
		return toc, fmt.Errorf("%w: no TOC entry for point %#02x", ErrFormat, pointLastTrack)
	case !haveLeadout:
		return toc, fmt.Errorf("%w: no TOC entry for point %#02x", ErrFormat, pointLeadout)
	}

	if toc.LastTrack < 99 {
		toc.Tracks[toc.LastTrack+1] = toc.Tracks[LeadoutTrack]
	}

	return toc, nil
}
