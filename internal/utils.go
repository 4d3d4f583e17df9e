// SPDX-License-Identifier: MIT
//
// Copyright (C) 2025 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

// Package internal provides byte manipulation helpers that are not part of the public API.
package internal

import "encoding/binary"

// Concatenate returns the concatenation of all bytes composing the input elements.
func Concatenate(input ...[]byte) []byte {
	if len(input) == 0 {
		return []byte{}
	}

	if len(input) == 1 {
		if len(input[0]) == 0 {
			return nil
		}

		// shallow clone
		return append(input[0][:0:0], input[0]...)
	}

	length := 0
	for _, in := range input {
		length += len(in)
	}

	buf := make([]byte, 0, length)

	for _, in := range input {
		buf = append(buf, in...)
	}

	return buf
}

// UInt64LE returns the 8 byte little endian byte encoding of i.
func UInt64LE(i uint64) []byte {
	out := [8]byte{}
	binary.LittleEndian.PutUint64(out[:], i)

	return out[:]
}

// UInt32LE returns the 4 byte little endian byte encoding of i.
func UInt32LE(i uint32) []byte {
	out := [4]byte{}
	binary.LittleEndian.PutUint32(out[:], i)

	return out[:]
}
