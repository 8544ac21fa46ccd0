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

// Option configures how an image is opened.
//
// Example:
//
//	img, err := ccd.Open("game.ccd", ccd.WithMemoryCache(true))
type Option func(*openOptions)

// openOptions holds configuration for opening images.
type openOptions struct {
	memcache  bool // Buffer both companion files in memory
	skipSubQC bool // Skip the Q subchannel scan
}

func defaultOptions() *openOptions {
	return &openOptions{}
}

func applyOptions(opts []Option) *openOptions {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithMemoryCache reads the image and subchannel files fully into memory when
// enabled. Reads then never touch the disk; results are the same either way.
func WithMemoryCache(enabled bool) Option {
	return func(o *openOptions) {
		o.memcache = enabled
	}
}

// WithoutSubQCheck skips the scan for garbage Q subchannel data. Use it when
// only the TOC is needed; a corrupt rip is then not detected.
func WithoutSubQCheck() Option {
	return func(o *openOptions) {
		o.skipSubQC = true
	}
}
