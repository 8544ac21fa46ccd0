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

// Package stream provides the byte-addressable sources a disc image reads from:
// plain files read on demand, files buffered whole in memory, and compressed
// files expanded into memory.
package stream

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// Stream is a random-access byte source of known size.
type Stream interface {
	io.ReaderAt
	io.Closer

	// Size returns the total number of bytes in the stream.
	Size() int64
}

// fileStream reads directly from an open file.
type fileStream struct {
	file *os.File
	size int64
}

func (f *fileStream) ReadAt(p []byte, off int64) (int, error) {
	return f.file.ReadAt(p, off) //nolint:wrapcheck // ReadAt error passthrough is intentional
}

func (f *fileStream) Size() int64 {
	return f.size
}

func (f *fileStream) Close() error {
	return f.file.Close() //nolint:wrapcheck // Close error passthrough is intentional
}

// memStream serves reads from a byte slice.
type memStream struct {
	*bytes.Reader
}

func (memStream) Close() error { return nil }

// FromBytes returns a Stream backed by data. The slice must not be modified
// while the stream is in use.
func FromBytes(data []byte) Stream {
	return memStream{bytes.NewReader(data)}
}

// readerAtStream adapts an io.ReaderAt with a known size.
type readerAtStream struct {
	io.ReaderAt
	closer io.Closer
	size   int64
}

func (r *readerAtStream) Size() int64 {
	return r.size
}

func (r *readerAtStream) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close() //nolint:wrapcheck // Close error passthrough is intentional
}

// FromReaderAt wraps r as a Stream of the given size. closer may be nil.
func FromReaderAt(r io.ReaderAt, size int64, closer io.Closer) Stream {
	return &readerAtStream{ReaderAt: r, size: size, closer: closer}
}

// Open opens the file at path as a Stream. With memcache set, the whole file is
// read into memory and the file is closed before Open returns.
//
// If path does not exist, compressed siblings (path + ".zst", ".xz", ".gz") are
// tried in that order; a compressed file is always expanded into memory.
func Open(path string, memcache bool) (Stream, error) {
	file, err := os.Open(path) //nolint:gosec // Path from user input is expected
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if s, ok, cerr := openCompressed(path); ok || cerr != nil {
				return s, cerr
			}
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	if !memcache {
		return &fileStream{file: file, size: info.Size()}, nil
	}
	defer func() { _ = file.Close() }()

	data := make([]byte, info.Size())
	if _, err := io.ReadFull(file, data); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return FromBytes(data), nil
}

// ReadFullAt fills buf from r at off. A short read is an error even when the
// underlying reader reports none.
func ReadFullAt(r io.ReaderAt, buf []byte, off int64) error {
	n, err := r.ReadAt(buf, off)
	if n == len(buf) {
		return nil
	}
	if err == nil || errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	return fmt.Errorf("read %d bytes at offset %d: %w", len(buf), off, err)
}
