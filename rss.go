// SPDX-License-Identifier: MIT
//
// Copyright (C) 2025 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

// Package rss implements robust threshold secret sharing: a dealer splits a payload into n
// shares such that any k reconstruct it exactly and fewer than k reveal nothing, and every
// shareholder can detect corrupted or forged shares without a trusted third party.
//
// The Krawczyk engine keeps the cost of sharing large payloads low by encrypting with a fresh
// stream cipher key, secret-sharing only the key with an information-theoretically secure
// scheme, and erasure-coding the ciphertext. The Rabin-Ben-Or information checking protocol
// adds a quadratic matrix of pairwise one-time MAC tags over the share set, tolerating up to
// n-k dishonest shareholders. Robust composes the two.
//
// Engines are pure transformations: distinct sharing instances share no state and may run
// fully in parallel. The only mutation in the package is tag creation writing into the share
// set it is handed, which the dealer completes before any share is distributed.
package rss

import (
	"fmt"
	"math"

	"github.com/bytemare/rss/sharing"
)

// Engine splits a payload into n shares with reconstruction threshold k.
type Engine interface {
	// Share splits data into n shares with identifiers 1..n. It either returns the complete
	// share set or an error, never a partial result.
	Share(data []byte) ([]*Share, error)

	// Reconstruct recovers the payload from at least k shares with distinct identifiers
	// belonging to the same sharing instance. It performs no authentication: when shares carry
	// checking tags, callers run them through CheckShares first and pass the accepted subset.
	Reconstruct(shares []*Share) ([]byte, error)

	// ReconstructPartial recovers the payload from the byte at offset start to the end. It
	// unconditionally resets every passed share's checking mode to CheckingNone: tags
	// authenticate the whole-share canonical form, and verifying one against a partial view
	// would be meaningless.
	ReconstructPartial(shares []*Share, start uint64) ([]byte, error)

	// Threshold returns k, the minimum number of shares needed for reconstruction.
	Threshold() uint

	// Shareholders returns n, the total number of shares produced.
	Shareholders() uint

	// Class returns the security class of the engine's randomized sharing component.
	Class() sharing.SecurityClass
}

// validateShareSet checks count, identifier uniqueness, instance consistency, and payload
// length agreement of a share subset before reconstruction.
func validateShareSet(shares []*Share, k uint) error {
	if uint(len(shares)) < k {
		return fmt.Errorf("%w: have %d, need %d", ErrTooFewShares, len(shares), k)
	}

	seen := make(map[uint64]struct{}, len(shares))

	for _, s := range shares {
		if s == nil || s.ID == 0 {
			return fmt.Errorf("%w: missing or zero share identifier", ErrInconsistentShares)
		}

		if _, ok := seen[s.ID]; ok {
			return fmt.Errorf("%w: %d", ErrDuplicateShare, s.ID)
		}

		seen[s.ID] = struct{}{}

		if s.Instance != shares[0].Instance {
			return fmt.Errorf("%w: share %d", ErrMixedShares, s.ID)
		}

		if s.Length != shares[0].Length {
			return fmt.Errorf("%w: share %d declares payload length %d, share %d declares %d",
				ErrInconsistentShares, s.ID, s.Length, shares[0].ID, shares[0].Length)
		}
	}

	// Length is attacker-controlled through Decode; a forged set agreeing on an absurd value
	// must fail here, not at allocation time.
	if shares[0].Length == 0 || shares[0].Length > math.MaxInt {
		return fmt.Errorf("%w: declared payload length %d", ErrInconsistentShares, shares[0].Length)
	}

	return nil
}

// stripChecking downgrades every share to CheckingNone, discarding tags and verification keys.
// Partial reconstruction calls it before touching any share.
func stripChecking(shares []*Share) {
	for _, s := range shares {
		if s == nil {
			continue
		}

		s.Mode = CheckingNone
		s.Tags = nil
		s.MacKeys = nil
	}
}
