// SPDX-License-Identifier: MIT
//
// Copyright (C) 2025 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package rss

import (
	"errors"

	"github.com/bytemare/rss/sharing"
)

// ErrWeakSecurity indicates an insecure (k,n) selection, or information checking built over an
// erasure-only base scheme. It is raised at construction, before any share exists.
var ErrWeakSecurity = sharing.ErrWeakSecurity

var (
	// ErrTooFewShares indicates fewer usable shares than the reconstruction threshold.
	ErrTooFewShares = errors.New("not enough shares for reconstruction")

	// ErrDuplicateShare indicates two shares carrying the same identifier.
	ErrDuplicateShare = errors.New("duplicate share identifier")

	// ErrMixedShares indicates shares originating from different sharing instances.
	ErrMixedShares = errors.New("shares belong to different sharing instances")

	// ErrInconsistentShares indicates a share set with malformed or contradictory members.
	ErrInconsistentShares = errors.New("inconsistent share set")

	// ErrOutOfBounds indicates a partial reconstruction offset beyond the payload.
	ErrOutOfBounds = errors.New("offset beyond payload length")

	errInvalidEncoding = errors.New("invalid share encoding")
)
