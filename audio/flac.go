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

// Package audio exports Red Book audio tracks from raw sector readers.
package audio

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"
	"github.com/mewkiz/flac/meta"

	"github.com/ZaparooProject/go-ccd/subchannel"
)

// CD-DA format.
const (
	SampleRate       = 44100
	Channels         = 2
	BitsPerSample    = 16
	SectorSize       = 2352
	SamplesPerSector = SectorSize / (Channels * BitsPerSample / 8)
)

const rawSectorSize = SectorSize + subchannel.Size

// ErrEmptyRange indicates a sector range with no sectors in it.
var ErrEmptyRange = errors.New("empty sector range")

// SectorReader reads one raw sector with its subchannel data.
type SectorReader interface {
	ReadRawSector(buf []byte, lba int32) error
}

// WriteFLAC encodes the audio sectors in [start, end) of r as a 16-bit stereo
// 44.1 kHz FLAC stream, one frame per sector. Sector data is little-endian
// interleaved left/right samples. ctx is checked between sectors.
func WriteFLAC(ctx context.Context, w io.Writer, r SectorReader, start, end int32) error {
	if end <= start {
		return fmt.Errorf("%w: [%d, %d)", ErrEmptyRange, start, end)
	}
	sectors := int64(end) - int64(start)

	info := &meta.StreamInfo{
		BlockSizeMin:  SamplesPerSector,
		BlockSizeMax:  SamplesPerSector,
		SampleRate:    SampleRate,
		NChannels:     Channels,
		BitsPerSample: BitsPerSample,
		NSamples:      uint64(sectors) * SamplesPerSector, //nolint:gosec // end > start
	}
	enc, err := flac.NewEncoder(w, info)
	if err != nil {
		return fmt.Errorf("create FLAC encoder: %w", err)
	}

	left := make([]int32, SamplesPerSector)
	right := make([]int32, SamplesPerSector)
	buf := make([]byte, rawSectorSize)

	for lba := start; lba < end; lba++ {
		if err := ctx.Err(); err != nil {
			_ = enc.Close()
			return fmt.Errorf("encode FLAC: %w", err)
		}
		if err := r.ReadRawSector(buf, lba); err != nil {
			_ = enc.Close()
			return fmt.Errorf("read sector %d: %w", lba, err)
		}

		splitSamples(buf[:SectorSize], left, right)
		if err := enc.WriteFrame(newFrame(uint64(lba-start), left, right)); err != nil { //nolint:gosec // lba >= start
			_ = enc.Close()
			return fmt.Errorf("write FLAC frame for sector %d: %w", lba, err)
		}
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("close FLAC encoder: %w", err)
	}
	return nil
}

// splitSamples decodes little-endian stereo PCM into per-channel samples.
func splitSamples(pcm []byte, left, right []int32) {
	for i := range SamplesPerSector {
		off := i * 4
		left[i] = int32(int16(binary.LittleEndian.Uint16(pcm[off:])))    //nolint:gosec // reinterpret as signed
		right[i] = int32(int16(binary.LittleEndian.Uint16(pcm[off+2:]))) //nolint:gosec // reinterpret as signed
	}
}

func newFrame(num uint64, left, right []int32) *frame.Frame {
	subframe := func(samples []int32) *frame.Subframe {
		return &frame.Subframe{
			SubHeader: frame.SubHeader{Pred: frame.PredVerbatim},
			Samples:   samples,
			NSamples:  len(samples),
		}
	}

	return &frame.Frame{
		Header: frame.Header{
			HasFixedBlockSize: true,
			BlockSize:         SamplesPerSector,
			SampleRate:        SampleRate,
			Channels:          frame.ChannelsLR,
			BitsPerSample:     BitsPerSample,
			Num:               num,
		},
		Subframes: []*frame.Subframe{subframe(left), subframe(right)},
	}
}
