// SPDX-License-Identifier: MIT
//
// Copyright (C) 2025 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

// Package random defines the entropy source consumed by the sharing engines, and provides the
// default implementation backed by the operating system's CSPRNG.
package random

import (
	cryptorand "crypto/rand"
	"errors"
	"fmt"
)

// ErrEntropy indicates the entropy source could not completely fill a buffer. An operation
// receiving it must abort; retrying key generation risks key reuse.
var ErrEntropy = errors.New("entropy source failure")

// Source produces cryptographically secure randomness. FillBytes either fills buf entirely or
// returns an error, never a partial fill.
type Source interface {
	FillBytes(buf []byte) error
}

// Crypto is a Source drawing from crypto/rand.
type Crypto struct{}

// NewCrypto returns an entropy source backed by crypto/rand.
func NewCrypto() *Crypto {
	return &Crypto{}
}

// FillBytes fills buf with random bytes, or returns ErrEntropy.
func (*Crypto) FillBytes(buf []byte) error {
	n, err := cryptorand.Read(buf)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEntropy, err)
	}

	if n != len(buf) {
		return fmt.Errorf("%w: short read (%d of %d bytes)", ErrEntropy, n, len(buf))
	}

	return nil
}
