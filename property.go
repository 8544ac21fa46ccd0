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

import "strconv"

// integer is the set of types a property can be decoded into.
type integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// readInt decodes the required property name of s as a T.
func readInt[T integer](s Section, section, name string) (T, error) {
	v, ok := s[name]
	if !ok {
		return 0, &PropertyError{Section: section, Property: name, Err: ErrMissingProperty}
	}
	return parseInt[T](section, name, v)
}

// readIntDefault decodes property name of s as a T, or returns def if the
// property is absent.
func readIntDefault[T integer](s Section, section, name string, def T) (T, error) {
	v, ok := s[name]
	if !ok {
		return def, nil
	}
	return parseInt[T](section, name, v)
}

// parseInt decodes v as a T. A "0x" or "0X" prefix selects base 16 for the rest
// of the text; otherwise v is decimal. The whole text must be consumed and the
// result must fit in T.
func parseInt[T integer](section, name, v string) (T, error) {
	base := 10
	digits := v
	if len(v) >= 3 && v[0] == '0' && (v[1] == 'x' || v[1] == 'X') {
		base = 16
		digits = v[2:]
	}

	malformed := &PropertyError{Section: section, Property: name, Value: v, Err: ErrMalformedInteger}

	var zero T
	if ^zero < 0 {
		n, err := strconv.ParseInt(digits, base, 64)
		if err != nil || int64(T(n)) != n {
			return 0, malformed
		}
		return T(n), nil
	}

	n, err := strconv.ParseUint(digits, base, 64)
	if err != nil || uint64(T(n)) != n {
		return 0, malformed
	}
	return T(n), nil
}
