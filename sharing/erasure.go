// SPDX-License-Identifier: MIT
//
// Copyright (C) 2025 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package sharing

import (
	"bytes"
	"fmt"

	"github.com/klauspost/reedsolomon"
)

// Erasure is a Scheme backed by Reed-Solomon coding: k data fragments plus n-k parity
// fragments, any k of which recover the input. It provides availability at a cost of
// len(secret)/k bytes per fragment, and no secrecy whatsoever: its class is ErasureOnly and
// consumers requiring confidentiality must reject it.
type Erasure struct {
	enc reedsolomon.Encoder
	k   uint
	n   uint
}

// NewErasure returns a Reed-Solomon scheme producing n fragments with reconstruction
// threshold k.
func NewErasure(k, n uint) (*Erasure, error) {
	if err := ValidParameters(k, n); err != nil {
		return nil, err
	}

	enc, err := reedsolomon.New(int(k), int(n-k))
	if err != nil {
		return nil, fmt.Errorf("initializing reed-solomon: %w", err)
	}

	return &Erasure{enc: enc, k: k, n: n}, nil
}

// K returns the reconstruction threshold.
func (e *Erasure) K() uint {
	return e.k
}

// N returns the total number of fragments produced by Share.
func (e *Erasure) N() uint {
	return e.n
}

// Class returns ErasureOnly.
func (*Erasure) Class() SecurityClass {
	return ErasureOnly
}

// Share encodes secret into n equally sized fragments, the last data fragment zero-padded.
func (e *Erasure) Share(secret []byte) ([]Fragment, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}

	shards, err := e.enc.Split(secret)
	if err != nil {
		return nil, fmt.Errorf("splitting secret: %w", err)
	}

	if err := e.enc.Encode(shards); err != nil {
		return nil, fmt.Errorf("encoding parity: %w", err)
	}

	fragments := make([]Fragment, e.n)
	for i, shard := range shards {
		// Split aliases the input; fragments own their bytes.
		fragments[i] = Fragment{ID: uint64(i + 1), Data: append(shard[:0:0], shard...)}
	}

	return fragments, nil
}

// Reconstruct recovers a secret of the given length from at least k fragments.
func (e *Erasure) Reconstruct(fragments []Fragment, length int) ([]byte, error) {
	if err := validateFragments(fragments, e.k, e.n); err != nil {
		return nil, err
	}

	for _, f := range fragments {
		if len(f.Data) != len(fragments[0].Data) {
			return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrFragmentSize, len(f.Data), len(fragments[0].Data))
		}
	}

	// The fragments carry at most k shards of data; a declared length beyond that is forged,
	// and allocating for it would be an unbounded attacker-controlled allocation.
	if length <= 0 || length > len(fragments[0].Data)*int(e.k) {
		return nil, fmt.Errorf("%w: declared length %d exceeds %d available bytes",
			ErrCorruptFragments, length, len(fragments[0].Data)*int(e.k))
	}

	shards := make([][]byte, e.n)
	for _, f := range fragments {
		shards[f.ID-1] = f.Data
	}

	if err := e.enc.ReconstructData(shards); err != nil {
		return nil, fmt.Errorf("reconstructing data fragments: %w", err)
	}

	out := bytes.NewBuffer(make([]byte, 0, length))
	if err := e.enc.Join(out, shards, length); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptFragments, err)
	}

	return out.Bytes(), nil
}
