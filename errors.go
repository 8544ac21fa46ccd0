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
	"errors"
	"fmt"
)

// Common errors for CloneCD images.
var (
	// ErrSyntax indicates a malformed line in the control file.
	ErrSyntax = errors.New("control file syntax error")

	// ErrMissingProperty indicates a required control file property is absent.
	ErrMissingProperty = errors.New("missing property")

	// ErrMalformedInteger indicates a property value is not a valid integer of
	// the expected width.
	ErrMalformedInteger = errors.New("malformed integer")

	// ErrUnsupported indicates a disc feature this reader does not handle.
	ErrUnsupported = errors.New("unsupported feature")

	// ErrFormat indicates the image files disagree with each other or contain
	// corrupt data.
	ErrFormat = errors.New("invalid image format")

	// ErrOutOfRange indicates an LBA outside the image.
	ErrOutOfRange = errors.New("LBA out of range")
)

// errTrackOrder reports a Q track number lower than an earlier one.
var errTrackOrder = errors.New("bad track number")

// SyntaxError describes a control file line that could not be parsed.
type SyntaxError struct {
	Text   string // Trimmed line contents
	Reason string
	Line   int // 1-based line number
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s: %s", e.Line, e.Reason, e.Text)
}

func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}

// PropertyError describes a control file property that is missing or whose
// value could not be decoded. Err is ErrMissingProperty or ErrMalformedInteger.
type PropertyError struct {
	Err      error
	Section  string
	Property string
	Value    string
}

func (e *PropertyError) Error() string {
	name := e.Property
	if e.Section != "" {
		name = "[" + e.Section + "] " + name
	}
	if errors.Is(e.Err, ErrMissingProperty) {
		return fmt.Sprintf("missing property: %s", name)
	}
	return fmt.Sprintf("property %s: %v: %s", name, e.Err, e.Value)
}

func (e *PropertyError) Unwrap() error {
	return e.Err
}

// SubQError reports checksum-valid Q subchannel data that is nonetheless
// garbage. It matches ErrFormat.
type SubQError struct {
	Err       error // *subchannel.TimecodeError or a track order error
	Sector    int64
	Track     uint8 // Decoded track, set for track order errors
	PrevTrack uint8 // Highest track seen before Sector
}

func (e *SubQError) Error() string {
	if errors.Is(e.Err, errTrackOrder) {
		return fmt.Sprintf("garbage subchannel Q data at sector %d: %v (%d after %d)",
			e.Sector, e.Err, e.Track, e.PrevTrack)
	}
	return fmt.Sprintf("garbage subchannel Q data at sector %d: %v", e.Sector, e.Err)
}

func (e *SubQError) Unwrap() []error {
	return []error{ErrFormat, e.Err}
}
