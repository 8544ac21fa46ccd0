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

package stream

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// MaxExpandedSize bounds the decompressed size of a compressed companion file
// (2 GiB, well above any CD).
const MaxExpandedSize = 2 << 30

// ErrTooLarge indicates a compressed file expands beyond MaxExpandedSize.
var ErrTooLarge = errors.New("decompressed data too large")

// decompressor opens a decompressing reader over a compressed stream.
type decompressor struct {
	open func(io.Reader) (io.ReadCloser, error)
	ext  string
}

// decompressors lists the supported compressed suffixes in lookup order.
var decompressors = []decompressor{
	{ext: ".zst", open: openZstd},
	{ext: ".xz", open: openXZ},
	{ext: ".gz", open: openGzip},
}

func openZstd(r io.Reader) (io.ReadCloser, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("zstd init: %w", err)
	}
	return dec.IOReadCloser(), nil
}

func openXZ(r io.Reader) (io.ReadCloser, error) {
	xr, err := xz.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("xz init: %w", err)
	}
	return io.NopCloser(xr), nil
}

func openGzip(r io.Reader) (io.ReadCloser, error) {
	gr, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("gzip init: %w", err)
	}
	return gr, nil
}

// CompressedExtensions returns the suffixes Open tries when a file is missing.
func CompressedExtensions() []string {
	exts := make([]string, len(decompressors))
	for i, d := range decompressors {
		exts[i] = d.ext
	}
	return exts
}

// openCompressed looks for a compressed sibling of path. ok reports whether one
// was found; err is set when one was found but could not be expanded.
func openCompressed(path string) (s Stream, ok bool, err error) {
	for _, d := range decompressors {
		candidate := path + d.ext
		file, openErr := os.Open(candidate) //nolint:gosec // Path derived from user input is expected
		if errors.Is(openErr, fs.ErrNotExist) {
			continue
		}
		if openErr != nil {
			return nil, true, fmt.Errorf("open %s: %w", candidate, openErr)
		}

		data, expandErr := expand(file, d.open)
		_ = file.Close()
		if expandErr != nil {
			return nil, true, fmt.Errorf("expand %s: %w", candidate, expandErr)
		}
		return FromBytes(data), true, nil
	}
	return nil, false, nil
}

// expand decompresses everything from r using open, up to MaxExpandedSize bytes.
func expand(r io.Reader, open func(io.Reader) (io.ReadCloser, error)) ([]byte, error) {
	dec, err := open(r)
	if err != nil {
		return nil, err
	}
	defer func() { _ = dec.Close() }()

	data, err := io.ReadAll(io.LimitReader(dec, MaxExpandedSize+1))
	if err != nil {
		return nil, fmt.Errorf("decompress: %w", err)
	}
	if int64(len(data)) > MaxExpandedSize {
		return nil, ErrTooLarge
	}
	return data, nil
}
