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

package subchannel

import "fmt"

// ADRPosition is the Q mode that carries the current track, index and time.
const ADRPosition = 0x01

// Frames per second and the lead-in offset between MSF time and LBA.
const (
	FramesPerSecond = 75
	PregapFrames    = 150
)

// BCDValid reports whether both nibbles of v are decimal digits.
func BCDValid(v uint8) bool {
	return v&0xF0 <= 0x90 && v&0x0F <= 0x09
}

// BCDToUint8 decodes a two-digit BCD value. The result is undefined if v is not
// valid BCD.
func BCDToUint8(v uint8) uint8 {
	return (v>>4)*10 + v&0x0F
}

// Uint8ToBCD encodes v (0-99) as two-digit BCD.
func Uint8ToBCD(v uint8) uint8 {
	return (v/10)<<4 | v%10
}

// MSF is a minute:second:frame timecode in binary (not BCD) form.
type MSF struct {
	M, S, F uint8
}

// LBA converts an absolute timecode to a logical block address.
func (t MSF) LBA() int32 {
	return (int32(t.M)*60+int32(t.S))*FramesPerSecond + int32(t.F) - PregapFrames
}

func (t MSF) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.M, t.S, t.F)
}

// MSFFromLBA converts a logical block address to an absolute timecode.
// Addresses before -150 clamp to 00:00:00.
func MSFFromLBA(lba int32) MSF {
	frames := lba + PregapFrames
	if frames < 0 {
		frames = 0
	}
	//nolint:gosec // minutes wrap past 255 only for addresses no disc can hold
	return MSF{
		M: uint8(frames / (60 * FramesPerSecond)),
		S: uint8(frames / FramesPerSecond % 60),
		F: uint8(frames % FramesPerSecond),
	}
}

// ADR returns the mode nibble of a Q block.
func ADR(q []byte) uint8 {
	return q[0] & 0x0F
}

// Control returns the control nibble of a Q block.
func Control(q []byte) uint8 {
	return q[0] >> 4
}

// Position is the decoded content of a mode-1 Q block.
type Position struct {
	Relative MSF
	Absolute MSF
	Control  uint8
	Track    uint8
	Index    uint8
}

// LBA returns the logical block address given by the absolute time.
func (p Position) LBA() int32 {
	return p.Absolute.LBA()
}

// TimecodeError reports a mode-1 Q block whose BCD fields are invalid or out of
// range. The timecodes are kept in their raw BCD form.
type TimecodeError struct {
	Relative [3]uint8
	Absolute [3]uint8
}

func (e *TimecodeError) Error() string {
	return fmt.Sprintf("bad BCD/out of range: %02x:%02x:%02x %02x:%02x:%02x",
		e.Relative[0], e.Relative[1], e.Relative[2],
		e.Absolute[0], e.Absolute[1], e.Absolute[2])
}

// Q block byte offsets for mode-1 data.
const (
	qTrack    = 1
	qIndex    = 2
	qRelMin   = 3
	qRelSec   = 4
	qRelFrame = 5
	qAbsMin   = 7
	qAbsSec   = 8
	qAbsFrame = 9
)

// DecodePosition decodes a mode-1 Q block. It does not check the ADR nibble or
// the checksum; callers do that first. Every field must be valid BCD, seconds must
// not exceed 59 and frames must not exceed 74, otherwise a *TimecodeError is
// returned.
func DecodePosition(q []byte) (Position, error) {
	_ = q[qAbsFrame]

	fields := [...]uint8{
		q[qTrack], q[qIndex],
		q[qRelMin], q[qRelSec], q[qRelFrame],
		q[qAbsMin], q[qAbsSec], q[qAbsFrame],
	}

	valid := true
	for _, f := range fields {
		if !BCDValid(f) {
			valid = false
			break
		}
	}
	if q[qRelSec] > 0x59 || q[qRelFrame] > 0x74 || q[qAbsSec] > 0x59 || q[qAbsFrame] > 0x74 {
		valid = false
	}
	if !valid {
		return Position{}, &TimecodeError{
			Relative: [3]uint8{q[qRelMin], q[qRelSec], q[qRelFrame]},
			Absolute: [3]uint8{q[qAbsMin], q[qAbsSec], q[qAbsFrame]},
		}
	}

	return Position{
		Control: Control(q),
		Track:   BCDToUint8(q[qTrack]),
		Index:   BCDToUint8(q[qIndex]),
		Relative: MSF{
			M: BCDToUint8(q[qRelMin]),
			S: BCDToUint8(q[qRelSec]),
			F: BCDToUint8(q[qRelFrame]),
		},
		Absolute: MSF{
			M: BCDToUint8(q[qAbsMin]),
			S: BCDToUint8(q[qAbsSec]),
			F: BCDToUint8(q[qAbsFrame]),
		},
	}, nil
}

// EncodePosition writes p as a mode-1 Q block into q (at least 12 bytes),
// including its checksum.
func EncodePosition(q []byte, p Position) {
	_ = q[ChannelSize-1]

	q[0] = p.Control<<4 | ADRPosition
	q[qTrack] = Uint8ToBCD(p.Track)
	q[qIndex] = Uint8ToBCD(p.Index)
	q[qRelMin] = Uint8ToBCD(p.Relative.M)
	q[qRelSec] = Uint8ToBCD(p.Relative.S)
	q[qRelFrame] = Uint8ToBCD(p.Relative.F)
	q[6] = 0
	q[qAbsMin] = Uint8ToBCD(p.Absolute.M)
	q[qAbsSec] = Uint8ToBCD(p.Absolute.S)
	q[qAbsFrame] = Uint8ToBCD(p.Absolute.F)
	SetQChecksum(q)
}
