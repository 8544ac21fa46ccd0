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

// Package subchannel provides the CD subchannel primitives shared by raw sector
// readers: P-W interleaving, the Q channel checksum, BCD helpers and decoding of
// mode-1 (current position) Q data.
//
// Subchannel data comes in two layouts. The flat layout stores the eight
// channels one after another, 12 bytes each (P, Q, R, S, T, U, V, W); this is how
// CloneCD .sub files store it. The packed layout stores one byte per subchannel
// symbol, with channel P in bit 7 and channel W in bit 0; this is how the 96 bytes
// trailing a 2352-byte sector appear in a raw 2448-byte read.
package subchannel

// Subchannel geometry.
const (
	// Size is the number of subchannel bytes that accompany one sector.
	Size = 96

	// ChannelSize is the length of a single channel in flat layout.
	ChannelSize = 12

	// NumChannels is the number of subchannels (P through W).
	NumChannels = 8
)

// Channel indices in flat layout.
const (
	ChannelP = iota
	ChannelQ
	ChannelR
	ChannelS
	ChannelT
	ChannelU
	ChannelV
	ChannelW
)

// Channel returns the 12-byte slice of channel ch within a flat block.
// The returned slice aliases flat.
func Channel(flat []byte, ch int) []byte {
	off := ch * ChannelSize
	return flat[off : off+ChannelSize : off+ChannelSize]
}

// P returns the P channel of a flat block.
func P(flat []byte) []byte {
	return Channel(flat, ChannelP)
}

// Q returns the Q channel of a flat block.
func Q(flat []byte) []byte {
	return Channel(flat, ChannelQ)
}

// Interleave converts a flat block in src into packed layout in dst.
// Both slices must hold at least Size bytes.
func Interleave(dst, src []byte) {
	_ = dst[Size-1]
	_ = src[Size-1]

	for d := range ChannelSize {
		for bit := range 8 {
			var packed byte
			for ch := range NumChannels {
				packed |= ((src[ch*ChannelSize+d] >> (7 - bit)) & 1) << (7 - ch)
			}
			dst[d*8+bit] = packed
		}
	}
}

// Deinterleave converts a packed block in src into flat layout in dst.
// It is the inverse of Interleave. Both slices must hold at least Size bytes.
func Deinterleave(dst, src []byte) {
	_ = dst[Size-1]
	_ = src[Size-1]

	clear(dst[:Size])
	for ch := range NumChannels {
		for i := range Size {
			dst[ch*ChannelSize+i>>3] |= ((src[i] >> (7 - ch)) & 1) << (7 - (i & 7))
		}
	}
}
