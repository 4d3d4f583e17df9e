// SPDX-License-Identifier: MIT
//
// Copyright (C) 2025 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

// Package sharing provides the base (k,n) splitting schemes composed by the engines: Shamir
// secret sharing over group scalars, prime-field Shamir over arbitrary byte strings, and plain
// Reed-Solomon erasure coding. Each scheme declares its security class, so that consumers can
// reject compositions that would silently weaken their guarantees.
package sharing

import (
	"errors"
	"fmt"
)

var (
	// ErrWeakSecurity indicates a (k,n) selection, or a scheme composition, that cannot deliver
	// the requested security guarantee.
	ErrWeakSecurity = errors.New("weak security")

	// ErrEmptySecret indicates an attempt to split a zero-length secret.
	ErrEmptySecret = errors.New("secret must not be empty")

	// ErrNotEnoughFragments indicates fewer fragments than the reconstruction threshold.
	ErrNotEnoughFragments = errors.New("not enough fragments")

	// ErrDuplicateFragment indicates two fragments carrying the same identifier.
	ErrDuplicateFragment = errors.New("duplicate fragment identifier")

	// ErrFragmentID indicates a fragment identifier outside 1..n.
	ErrFragmentID = errors.New("fragment identifier out of range")

	// ErrFragmentSize indicates fragments of inconsistent or unexpected length.
	ErrFragmentSize = errors.New("inconsistent fragment length")

	// ErrCorruptFragments indicates fragments that decode to an impossible value, e.g. fragments
	// originating from different splittings.
	ErrCorruptFragments = errors.New("fragments are inconsistent or corrupted")
)

// SecurityClass declares the confidentiality guarantee of a Scheme.
type SecurityClass byte

const (
	// InformationTheoretic schemes are randomized: any subset below the threshold reveals
	// nothing about the secret, regardless of computational power.
	InformationTheoretic SecurityClass = 1 + iota

	// ErasureOnly schemes are deterministic linear codes providing availability, not secrecy.
	ErasureOnly
)

// String implements fmt.Stringer.
func (c SecurityClass) String() string {
	switch c {
	case InformationTheoretic:
		return "information-theoretic"
	case ErasureOnly:
		return "erasure-only"
	default:
		return "unknown"
	}
}

// Fragment is one shareholder's piece of a split secret. Fragments reference each other by
// integer identifier only, never by pointer.
type Fragment struct {
	Data []byte
	ID   uint64
}

// Scheme splits a secret into n fragments such that any k reconstruct it.
type Scheme interface {
	// Share splits secret into n fragments with identifiers 1..n.
	Share(secret []byte) ([]Fragment, error)

	// Reconstruct recovers a secret of the given byte length from at least k fragments with
	// distinct identifiers. It never returns a truncated or padded secret.
	Reconstruct(fragments []Fragment, length int) ([]byte, error)

	// K returns the reconstruction threshold.
	K() uint

	// N returns the total number of fragments produced by Share.
	N() uint

	// Class returns the declared security class.
	Class() SecurityClass
}

// ValidParameters rejects threshold selections providing weak or no security: the threshold must
// be at least 2, strictly below the shareholder count (otherwise no dishonest shareholder can be
// tolerated), and shareholder identifiers must fit a byte.
func ValidParameters(k, n uint) error {
	if k < 2 {
		return fmt.Errorf("%w: threshold %d is below 2", ErrWeakSecurity, k)
	}

	if n <= k {
		return fmt.Errorf("%w: %d shareholders cannot tolerate failures at threshold %d", ErrWeakSecurity, n, k)
	}

	if n > 255 {
		return fmt.Errorf("%w: %d shareholders exceed the 255 maximum", ErrWeakSecurity, n)
	}

	return nil
}

// validateFragments checks the count, identifier range, and uniqueness of a fragment subset
// before reconstruction.
func validateFragments(fragments []Fragment, k, n uint) error {
	if uint(len(fragments)) < k {
		return fmt.Errorf("%w: have %d, need %d", ErrNotEnoughFragments, len(fragments), k)
	}

	seen := make(map[uint64]struct{}, len(fragments))

	for _, f := range fragments {
		if f.ID == 0 || f.ID > uint64(n) {
			return fmt.Errorf("%w: %d", ErrFragmentID, f.ID)
		}

		if _, ok := seen[f.ID]; ok {
			return fmt.Errorf("%w: %d", ErrDuplicateFragment, f.ID)
		}

		seen[f.ID] = struct{}{}
	}

	return nil
}
