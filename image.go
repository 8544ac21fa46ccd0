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

// Package ccd reads CloneCD disc images: a text control file (.ccd) describing
// the TOC, a raw sector file (.img) and a raw subchannel file (.sub).
//
// An image is validated once when opened. The control file must describe a
// single-session disc with unscrambled data tracks, the two binary files must
// agree on the sector count, and no sector may carry checksum-valid but garbage
// Q subchannel position data. After that, any sector can be read raw as 2352
// bytes of sector data followed by 96 bytes of packed P-W subchannel data.
package ccd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ZaparooProject/go-ccd/internal/stream"
	"github.com/ZaparooProject/go-ccd/subchannel"
)

// Sector geometry.
const (
	// SectorSize is the size of one raw sector in the image file.
	SectorSize = 2352

	// RawSectorSize is the size of a sector followed by its subchannel data.
	RawSectorSize = SectorSize + subchannel.Size
)

// Access is the read interface shared by disc image and drive backends.
type Access interface {
	// ReadRawSector reads sector lba into buf as RawSectorSize bytes.
	ReadRawSector(buf []byte, lba int32) error

	// TOC returns the disc's table of contents.
	TOC() TOC

	// Eject opens or closes the tray.
	Eject(eject bool) error
}

var _ Access = (*Image)(nil)

// Image is an opened CloneCD image. It is not safe for concurrent use.
type Image struct {
	img      stream.Stream
	sub      stream.Stream
	layouts  map[uint8]TrackLayout
	info     Info
	toc      TOC
	sectors  int64
	checked  int
	subBlock [subchannel.Size]byte
}

// openFunc opens one companion file.
type openFunc func(name string) (stream.Stream, error)

// Open opens the CloneCD image whose control file is at path. The image and
// subchannel files are found next to it with CompanionPaths. If either is
// missing, a compressed copy with a .zst, .xz or .gz suffix is used instead.
func Open(path string, opts ...Option) (*Image, error) {
	o := applyOptions(opts)

	file, err := os.Open(path) //nolint:gosec // Path from user input is expected
	if err != nil {
		return nil, fmt.Errorf("open control file: %w", err)
	}
	sections, err := ParseControl(file)
	_ = file.Close()
	if err != nil {
		return nil, fmt.Errorf("parse control file %s: %w", path, err)
	}

	imgPath, subPath := CompanionPaths(path)
	return newImage(sections, imgPath, subPath, o, func(name string) (stream.Stream, error) {
		return stream.Open(name, o.memcache) //nolint:wrapcheck // Wrapped by caller
	})
}

// Load opens the image at path, buffering the binary files in memory when
// memcache is set.
func Load(path string, memcache bool) (*Image, error) {
	return Open(path, WithMemoryCache(memcache))
}

// newImage builds an image from parsed control data and companion names. On
// failure every stream it opened is closed.
func newImage(sections Sections, imgName, subName string, o *openOptions, open openFunc) (*Image, error) {
	toc, err := buildTOC(sections)
	if err != nil {
		return nil, fmt.Errorf("build TOC: %w", err)
	}
	info, err := readInfo(sections)
	if err != nil {
		return nil, err
	}
	layouts, err := readLayouts(sections, &toc)
	if err != nil {
		return nil, err
	}

	im := &Image{toc: toc, info: info, layouts: layouts}
	if err := im.init(imgName, subName, o, open); err != nil {
		_ = im.Close()
		return nil, err
	}

	return im, nil
}

// init opens and validates both companion files.
func (im *Image) init(imgName, subName string, o *openOptions, open openFunc) error {
	if err := im.openStreams(imgName, subName, open); err != nil {
		return err
	}

	if o.skipSubQC {
		return nil
	}
	checked, err := checkSubQ(im.sub, im.sectors)
	im.checked = checked
	return err
}

// openStreams opens the image and subchannel files and checks their sizes
// against each other.
func (im *Image) openStreams(imgName, subName string, open openFunc) error {
	img, err := open(imgName)
	if err != nil {
		return fmt.Errorf("open image file: %w", err)
	}
	im.img = img

	if img.Size()%SectorSize != 0 {
		return fmt.Errorf("%w: image size %d is not evenly divisible by %d", ErrFormat, img.Size(), SectorSize)
	}
	im.sectors = img.Size() / SectorSize

	sub, err := open(subName)
	if err != nil {
		return fmt.Errorf("open subchannel file: %w", err)
	}
	im.sub = sub

	if want := im.sectors * subchannel.Size; sub.Size() != want {
		return fmt.Errorf("%w: subchannel size %d, want %d for %d sectors", ErrFormat, sub.Size(), want, im.sectors)
	}

	return nil
}

// Close releases both companion files.
func (im *Image) Close() error {
	var errs []error
	if im.img != nil {
		if err := im.img.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close image file: %w", err))
		}
		im.img = nil
	}
	if im.sub != nil {
		if err := im.sub.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close subchannel file: %w", err))
		}
		im.sub = nil
	}
	return errors.Join(errs...)
}

// TOC returns a copy of the table of contents.
func (im *Image) TOC() TOC {
	return im.toc
}

// Info returns the descriptive fields of the control file.
func (im *Image) Info() Info {
	return im.info
}

// TrackLayout returns the [Track n] section of track n, if the control file
// has one.
func (im *Image) TrackLayout(n uint8) (TrackLayout, bool) {
	layout, ok := im.layouts[n]
	return layout, ok
}

// SectorCount returns the number of sectors in the image.
func (im *Image) SectorCount() int64 {
	return im.sectors
}

// CheckedSubQ returns how many sectors carried mode-1 Q data with a valid
// checksum and passed validation when the image was opened.
func (im *Image) CheckedSubQ() int {
	return im.checked
}

// Eject does nothing; an image has no tray.
func (im *Image) Eject(bool) error {
	return nil
}

// ReadRawSector reads sector lba into buf: 2352 bytes of sector data followed
// by 96 bytes of packed P-W subchannel data. buf must hold at least
// RawSectorSize bytes.
func (im *Image) ReadRawSector(buf []byte, lba int32) error {
	if err := im.checkLBA(lba); err != nil {
		return err
	}
	if len(buf) < RawSectorSize {
		return fmt.Errorf("raw sector buffer of %d bytes: %w", len(buf), io.ErrShortBuffer)
	}

	if err := stream.ReadFullAt(im.img, buf[:SectorSize], int64(lba)*SectorSize); err != nil {
		return fmt.Errorf("read sector %d: %w", lba, err)
	}

	return im.readPW(buf[SectorSize:RawSectorSize], lba)
}

// ReadRawPW reads only the packed P-W subchannel data of sector lba into buf,
// which must hold at least 96 bytes.
func (im *Image) ReadRawPW(buf []byte, lba int32) error {
	if err := im.checkLBA(lba); err != nil {
		return err
	}
	if len(buf) < subchannel.Size {
		return fmt.Errorf("subchannel buffer of %d bytes: %w", len(buf), io.ErrShortBuffer)
	}

	return im.readPW(buf, lba)
}

func (im *Image) checkLBA(lba int32) error {
	if lba < 0 || int64(lba) >= im.sectors {
		return fmt.Errorf("%w: %d (sectors: %d)", ErrOutOfRange, lba, im.sectors)
	}
	return nil
}

func (im *Image) readPW(dst []byte, lba int32) error {
	if err := stream.ReadFullAt(im.sub, im.subBlock[:], int64(lba)*subchannel.Size); err != nil {
		return fmt.Errorf("read subchannel of sector %d: %w", lba, err)
	}
	subchannel.Interleave(dst, im.subBlock[:])
	return nil
}
