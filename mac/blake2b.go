// SPDX-License-Identifier: MIT
//
// Copyright (C) 2025 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package mac

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// Blake2b authenticates data with keyed BLAKE2b-256.
type Blake2b struct{}

// NewBlake2b returns the keyed BLAKE2b-256 MAC.
func NewBlake2b() *Blake2b {
	return &Blake2b{}
}

// KeySize returns the expected key length, 32 bytes.
func (*Blake2b) KeySize() int {
	return blake2b.Size256
}

// Tag computes the 32-byte keyed BLAKE2b-256 tag over data.
func (m *Blake2b) Tag(data, key []byte) ([]byte, error) {
	if len(key) != m.KeySize() {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrKeySize, len(key), m.KeySize())
	}

	h, err := blake2b.New256(key)
	if err != nil {
		return nil, fmt.Errorf("initializing keyed blake2b: %w", err)
	}

	h.Write(data)

	return h.Sum(nil), nil
}

// Verify reports whether tag authenticates data under key.
func (m *Blake2b) Verify(data, tag, key []byte) bool {
	if len(key) != m.KeySize() || len(tag) != blake2b.Size256 {
		return false
	}

	computed, err := m.Tag(data, key)
	if err != nil {
		return false
	}

	return subtle.ConstantTimeCompare(computed, tag) == 1
}
