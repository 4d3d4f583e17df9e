// SPDX-License-Identifier: MIT
//
// Copyright (C) 2025 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package sharing

import (
	"encoding/hex"
	"fmt"

	sssa "github.com/SSSaaS/sssa-golang"
)

// Block is an information-theoretically secure Scheme over arbitrary-length byte secrets,
// backed by Shamir sharing in a 256-bit prime field. The secret is hex-encoded before
// splitting so the field arithmetic never meets a pathological byte sequence, and decoded
// again after combination.
type Block struct {
	k uint
	n uint
}

// NewBlock returns a prime-field Shamir scheme splitting secrets into n fragments with
// reconstruction threshold k.
func NewBlock(k, n uint) (*Block, error) {
	if err := ValidParameters(k, n); err != nil {
		return nil, err
	}

	return &Block{k: k, n: n}, nil
}

// K returns the reconstruction threshold.
func (b *Block) K() uint {
	return b.k
}

// N returns the total number of fragments produced by Share.
func (b *Block) N() uint {
	return b.n
}

// Class returns InformationTheoretic.
func (*Block) Class() SecurityClass {
	return InformationTheoretic
}

// Share splits secret into n fragments with identifiers 1..n. The shareholder's evaluation
// point is embedded in the fragment data itself, so any k fragments combine without further
// bookkeeping.
func (b *Block) Share(secret []byte) ([]Fragment, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}

	parts, err := sssa.Create(int(b.k), int(b.n), hex.EncodeToString(secret))
	if err != nil {
		return nil, fmt.Errorf("splitting secret: %w", err)
	}

	if uint(len(parts)) != b.n {
		return nil, fmt.Errorf("splitting secret: got %d fragments for %d shareholders", len(parts), b.n)
	}

	fragments := make([]Fragment, b.n)
	for i, part := range parts {
		fragments[i] = Fragment{ID: uint64(i + 1), Data: []byte(part)}
	}

	return fragments, nil
}

// Reconstruct recovers a secret of the given length from at least k fragments.
func (b *Block) Reconstruct(fragments []Fragment, length int) ([]byte, error) {
	if err := validateFragments(fragments, b.k, b.n); err != nil {
		return nil, err
	}

	parts := make([]string, len(fragments))

	for i, f := range fragments {
		part := string(f.Data)
		if !sssa.IsValidShare(part) {
			return nil, fmt.Errorf("%w: fragment %d is malformed", ErrCorruptFragments, f.ID)
		}

		parts[i] = part
	}

	combined, err := sssa.Combine(parts)
	if err != nil {
		return nil, fmt.Errorf("combining fragments: %w", err)
	}

	secret, err := hex.DecodeString(combined)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptFragments, err)
	}

	if len(secret) != length {
		return nil, fmt.Errorf("%w: recovered %d bytes, want %d", ErrCorruptFragments, len(secret), length)
	}

	return secret, nil
}
