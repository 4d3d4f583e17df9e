// SPDX-License-Identifier: MIT
//
// Copyright (C) 2025 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

// Package mac defines the message authentication primitive used for information checking.
// Every tag must be computed under a fresh, independent key.
package mac

import "errors"

// ErrKeySize indicates a MAC key of the wrong length.
var ErrKeySize = errors.New("invalid mac key length")

// Mac computes and verifies authentication tags over byte strings.
type Mac interface {
	// KeySize returns the length in bytes of the keys Tag and Verify expect.
	KeySize() int

	// Tag computes the authentication tag over data under key.
	Tag(data, key []byte) ([]byte, error)

	// Verify reports whether tag authenticates data under key. It returns false on malformed
	// tags or keys instead of erroring, so that a missing or forged tag counts as a plain
	// verification failure.
	Verify(data, tag, key []byte) bool
}
