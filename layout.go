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
	"slices"
	"strconv"
	"strings"
)

// Info holds the optional descriptive fields of a control file.
type Info struct {
	Catalog      string `json:"catalog,omitempty" yaml:"catalog,omitempty"`
	Version      uint32 `json:"version" yaml:"version"`
	CDTextLength uint32 `json:"cdTextLength" yaml:"cdTextLength"`
}

// Index is one INDEX entry of a [Track n] section.
type Index struct {
	LBA    int32 `json:"lba" yaml:"lba"`
	Number uint8 `json:"number" yaml:"number"`
}

// TrackLayout is the contents of a [Track n] section.
type TrackLayout struct {
	ISRC    string  `json:"isrc,omitempty" yaml:"isrc,omitempty"`
	Indexes []Index `json:"indexes" yaml:"indexes"`
	Mode    uint8   `json:"mode" yaml:"mode"`
}

// readInfo decodes [CloneCD] and the optional [Disc] fields.
func readInfo(sections Sections) (Info, error) {
	var info Info
	var err error

	if info.Version, err = readIntDefault[uint32](sections["CLONECD"], "CLONECD", "VERSION", 0); err != nil {
		return info, err
	}
	disc := sections["DISC"]
	if info.CDTextLength, err = readIntDefault[uint32](disc, "DISC", "CDTEXTLENGTH", 0); err != nil {
		return info, err
	}
	info.Catalog = disc["CATALOG"]

	return info, nil
}

// readLayouts decodes the [Track n] sections for every track in toc.
func readLayouts(sections Sections, toc *TOC) (map[uint8]TrackLayout, error) {
	layouts := make(map[uint8]TrackLayout)

	for n := int(toc.FirstTrack); n <= int(toc.LastTrack) && n < LeadoutTrack; n++ {
		if n == 0 {
			continue
		}
		name := "TRACK " + strconv.Itoa(n)
		s, ok := sections[name]
		if !ok {
			continue
		}

		layout, err := readLayout(s, name)
		if err != nil {
			return nil, err
		}
		layouts[uint8(n)] = layout //nolint:gosec // n < LeadoutTrack
	}

	return layouts, nil
}

func readLayout(s Section, name string) (TrackLayout, error) {
	var layout TrackLayout
	var err error

	if layout.Mode, err = readIntDefault[uint8](s, name, "MODE", 0); err != nil {
		return layout, err
	}
	layout.ISRC = s["ISRC"]

	for key := range s {
		num, found := strings.CutPrefix(key, "INDEX ")
		if !found {
			continue
		}
		number, convErr := strconv.ParseUint(num, 10, 8)
		if convErr != nil {
			continue
		}
		lba, err := readInt[int32](s, name, key)
		if err != nil {
			return layout, err
		}
		layout.Indexes = append(layout.Indexes, Index{Number: uint8(number), LBA: lba})
	}

	slices.SortFunc(layout.Indexes, func(a, b Index) int {
		return int(a.Number) - int(b.Number)
	})

	return layout, nil
}
