// SPDX-License-Identifier: MIT
//
// Copyright (C) 2025 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package mac

import (
	"crypto/hmac"
	"crypto/sha256"
	"fmt"
)

// HMAC authenticates data with HMAC-SHA256.
type HMAC struct{}

// NewHMAC returns the HMAC-SHA256 MAC.
func NewHMAC() *HMAC {
	return &HMAC{}
}

// KeySize returns the expected key length, 32 bytes.
func (*HMAC) KeySize() int {
	return sha256.Size
}

// Tag computes the 32-byte HMAC-SHA256 tag over data.
func (m *HMAC) Tag(data, key []byte) ([]byte, error) {
	if len(key) != m.KeySize() {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrKeySize, len(key), m.KeySize())
	}

	h := hmac.New(sha256.New, key)
	h.Write(data)

	return h.Sum(nil), nil
}

// Verify reports whether tag authenticates data under key.
func (m *HMAC) Verify(data, tag, key []byte) bool {
	if len(key) != m.KeySize() || len(tag) != sha256.Size {
		return false
	}

	computed, err := m.Tag(data, key)
	if err != nil {
		return false
	}

	return hmac.Equal(computed, tag)
}
