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

import "encoding/binary"

// crcPoly is the CRC-16/CCITT generator used by the Q channel (x^16 + x^12 + x^5 + 1).
const crcPoly = 0x1021

var crcTable = makeCRCTable()

func makeCRCTable() [256]uint16 {
	var table [256]uint16
	for i := range table {
		crc := uint16(i) << 8 //nolint:gosec // i < 256
		for range 8 {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ crcPoly
			} else {
				crc <<= 1
			}
		}
		table[i] = crc
	}
	return table
}

// QChecksum computes the checksum of the first 10 bytes of a Q channel block.
// The value is stored inverted, big-endian, in bytes 10 and 11.
func QChecksum(q []byte) uint16 {
	var crc uint16
	for _, b := range q[:10] {
		crc = crcTable[byte(crc>>8)^b] ^ crc<<8
	}
	return ^crc
}

// QChecksumValid reports whether the checksum stored in q matches its contents.
func QChecksumValid(q []byte) bool {
	return QChecksum(q) == binary.BigEndian.Uint16(q[10:12])
}

// SetQChecksum stores the checksum of q into its last two bytes.
func SetQChecksum(q []byte) {
	binary.BigEndian.PutUint16(q[10:12], QChecksum(q))
}
