// SPDX-License-Identifier: MIT
//
// Copyright (C) 2025 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

// Package symmetric defines the stream cipher used by the hybrid sharing engine. Stream semantics
// are required: the ciphertext has the exact length of the plaintext, and decryption can start at
// an arbitrary byte offset.
package symmetric

import "errors"

var (
	// ErrCipherKeySize indicates a cipher key of the wrong length.
	ErrCipherKeySize = errors.New("invalid cipher key length")

	// ErrOffsetRange indicates a partial decryption offset beyond the cipher's keystream reach.
	ErrOffsetRange = errors.New("decryption offset out of range")
)

// Cipher provides length-preserving symmetric encryption. Keys are used for a single sharing
// instance only, which is why implementations may run with a fixed nonce.
type Cipher interface {
	// KeySize returns the length in bytes of the expected keys.
	KeySize() int

	// Encrypt returns the ciphertext of data under key, of length len(data).
	Encrypt(data, key []byte) ([]byte, error)

	// Decrypt returns the plaintext of ct under key, of length len(ct).
	Decrypt(ct, key []byte) ([]byte, error)

	// DecryptAt decrypts ct as if it started at the given byte offset of the original
	// ciphertext, enabling partial reconstruction without touching preceding data.
	DecryptAt(ct, key []byte, offset uint64) ([]byte, error)
}
