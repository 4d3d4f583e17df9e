// SPDX-License-Identifier: MIT
//
// Copyright (C) 2025 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package rss

import (
	"fmt"

	"github.com/bytemare/rss/mac"
	"github.com/bytemare/rss/random"
	"github.com/bytemare/rss/sharing"
)

// RabinBenOr implements the Rabin-Ben-Or information checking protocol: the dealer tags every
// ordered pair of shares with a one-time MAC, the tag held by the subject and the key by the
// verifier. A shareholder can then detect corrupted or forged shares on its own,
// information-theoretically, as long as fewer than n-k+1 shareholders are dishonest. The tag
// matrix is quadratic in n, acceptable since n is small while the payload is unbounded.
type RabinBenOr struct {
	mac       mac.Mac
	rng       random.Source
	threshold uint
}

// NewRabinBenOr returns an information checking engine for shares produced by the given
// engine. The engine's randomized component must be information-theoretically secure: over a
// deterministic linear erasure code an adversary can predict how a bit flip propagates through
// reconstruction, defeating the tags' unforgeability, so such a base fails with
// ErrWeakSecurity before any share exists.
func NewRabinBenOr(engine Engine, m mac.Mac, rng random.Source) (*RabinBenOr, error) {
	if engine.Class() != sharing.InformationTheoretic {
		return nil, fmt.Errorf("%w: information checking over a %v base scheme", ErrWeakSecurity, engine.Class())
	}

	return &RabinBenOr{mac: m, rng: rng, threshold: engine.Threshold()}, nil
}

// CreateTags computes the full pairwise tag matrix over the share set and writes it into the
// shares: for every ordered pair (i,j), including i=j, a fresh MAC key authenticating share i
// is stored as share i's tag for verifier j and share j's key for subject i. The dealer calls
// it once, holding all n shares, before distributing any of them.
//
// The matrix is staged in full before any share is touched: a single entropy or MAC failure
// aborts the call with every share unchanged, since a partially tagged set would break the
// pairwise completeness the checking step relies on.
func (r *RabinBenOr) CreateTags(shares []*Share) error {
	tags := make([]map[uint64][]byte, len(shares))
	keys := make([]map[uint64][]byte, len(shares))

	for i := range shares {
		tags[i] = make(map[uint64][]byte, len(shares))
		keys[i] = make(map[uint64][]byte, len(shares))
	}

	for i, subject := range shares {
		data := subject.CanonicalForm()

		for j, verifier := range shares {
			key := make([]byte, r.mac.KeySize())
			if err := r.rng.FillBytes(key); err != nil {
				return fmt.Errorf("drawing tag key for pair (%d,%d): %w", subject.ID, verifier.ID, err)
			}

			tag, err := r.mac.Tag(data, key)
			if err != nil {
				return fmt.Errorf("tagging pair (%d,%d): %w", subject.ID, verifier.ID, err)
			}

			tags[i][verifier.ID] = tag
			keys[j][subject.ID] = key
		}
	}

	for i, s := range shares {
		s.Mode = CheckingRabinBenOr
		s.Tags = tags[i]
		s.MacKeys = keys[i]
	}

	return nil
}

// CheckShares verifies every candidate share against all shares present and returns the
// accepted subset, preserving input order and holding at most one share per identifier: only
// the first occurrence of an identifier is considered, later ones are dropped silently like any
// other rejected share. A share is accepted when at least k verifiers confirm its tag over its
// canonical form. Callers must treat fewer than k accepted shares as a reconstruction failure.
//
// The acceptance bound equals the reconstruction threshold on purpose: with fewer than n-k+1
// dishonest shareholders, at least k honest verifiers accept every honest share and reject any
// tampered one.
func (r *RabinBenOr) CheckShares(shares []*Share) []*Share {
	// Duplicates count neither as subjects nor as verifiers: a repeated share must not vote
	// twice toward the acceptance bound.
	distinct := make([]*Share, 0, len(shares))
	seen := make(map[uint64]struct{}, len(shares))

	for _, s := range shares {
		if _, ok := seen[s.ID]; ok {
			continue
		}

		seen[s.ID] = struct{}{}
		distinct = append(distinct, s)
	}

	accepted := make([]*Share, 0, len(distinct))

	for _, subject := range distinct {
		data := subject.CanonicalForm()
		accepts := uint(0)

		for _, verifier := range distinct {
			tag := subject.Tags[verifier.ID]
			key := verifier.MacKeys[subject.ID]

			if r.mac.Verify(data, tag, key) {
				accepts++
			}
		}

		if accepts >= r.threshold {
			accepted = append(accepted, subject)
		}
	}

	return accepted
}
