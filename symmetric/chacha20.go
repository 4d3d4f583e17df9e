// SPDX-License-Identifier: MIT
//
// Copyright (C) 2025 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package symmetric

import (
	"fmt"
	"math"

	"golang.org/x/crypto/chacha20"
)

// chacha20BlockSize is the keystream block granularity used for offset seeking.
const chacha20BlockSize = 64

// ChaCha20 is a Cipher backed by the ChaCha20 stream cipher. The nonce is fixed to zero: every
// sharing instance draws a fresh key, and no key ever encrypts twice.
type ChaCha20 struct{}

// NewChaCha20 returns the ChaCha20 stream cipher.
func NewChaCha20() *ChaCha20 {
	return &ChaCha20{}
}

// KeySize returns the expected key length, 32 bytes.
func (*ChaCha20) KeySize() int {
	return chacha20.KeySize
}

func newStream(key []byte) (*chacha20.Cipher, error) {
	if len(key) != chacha20.KeySize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrCipherKeySize, len(key), chacha20.KeySize)
	}

	nonce := make([]byte, chacha20.NonceSize)

	c, err := chacha20.NewUnauthenticatedCipher(key, nonce)
	if err != nil {
		return nil, fmt.Errorf("initializing chacha20: %w", err)
	}

	return c, nil
}

// Encrypt returns the ChaCha20 ciphertext of data, of length len(data).
func (*ChaCha20) Encrypt(data, key []byte) ([]byte, error) {
	c, err := newStream(key)
	if err != nil {
		return nil, err
	}

	out := make([]byte, len(data))
	c.XORKeyStream(out, data)

	return out, nil
}

// Decrypt returns the plaintext of ct, of length len(ct).
func (e *ChaCha20) Decrypt(ct, key []byte) ([]byte, error) {
	return e.Encrypt(ct, key)
}

// DecryptAt decrypts ct as the keystream window starting at offset. The stream is sought to the
// enclosing 64-byte block and the leading partial block is discarded.
func (*ChaCha20) DecryptAt(ct, key []byte, offset uint64) ([]byte, error) {
	c, err := newStream(key)
	if err != nil {
		return nil, err
	}

	counter := offset / chacha20BlockSize
	if counter > math.MaxUint32 {
		return nil, fmt.Errorf("%w: offset %d", ErrOffsetRange, offset)
	}

	c.SetCounter(uint32(counter))

	skip := int(offset % chacha20BlockSize)
	buf := make([]byte, skip+len(ct))
	copy(buf[skip:], ct)
	c.XORKeyStream(buf, buf)

	return buf[skip:], nil
}
