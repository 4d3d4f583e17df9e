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

	"github.com/bytemare/rss/internal"
	"github.com/bytemare/rss/random"
	"github.com/bytemare/rss/sharing"
)

// Rabin disperses the payload through plain erasure coding: shares cost len(payload)/k bytes
// each and tolerate n-k losses, but provide no confidentiality at all. Its class is
// ErasureOnly, so information checking refuses to build on it.
type Rabin struct {
	scheme sharing.Scheme
	rng    random.Source
	k      uint
	n      uint
}

// NewRabin returns an erasure-only dispersal engine with threshold k over n shareholders.
func NewRabin(k, n uint) (*Rabin, error) {
	scheme, err := sharing.NewErasure(k, n)
	if err != nil {
		return nil, err
	}

	return &Rabin{scheme: scheme, rng: random.NewCrypto(), k: k, n: n}, nil
}

// Threshold returns k.
func (e *Rabin) Threshold() uint {
	return e.k
}

// Shareholders returns n.
func (e *Rabin) Shareholders() uint {
	return e.n
}

// Class returns ErasureOnly.
func (e *Rabin) Class() sharing.SecurityClass {
	return e.scheme.Class()
}

// Share splits data into n shares. The shares conceal nothing.
func (e *Rabin) Share(data []byte) ([]*Share, error) {
	if len(data) == 0 {
		return nil, sharing.ErrEmptySecret
	}

	instance, err := newInstance(e.rng)
	if err != nil {
		return nil, err
	}

	fragments, err := e.scheme.Share(data)
	if err != nil {
		return nil, fmt.Errorf("coding payload: %w", err)
	}

	shares := make([]*Share, e.n)
	for i, f := range fragments {
		shares[i] = &Share{
			ID:       f.ID,
			Instance: instance,
			Length:   uint64(len(data)),
			Body:     internal.Concatenate(f.Data),
			Mode:     CheckingNone,
		}
	}

	return shares, nil
}

// Reconstruct recovers the payload from at least k shares of the same instance.
func (e *Rabin) Reconstruct(shares []*Share) ([]byte, error) {
	if err := validateShareSet(shares, e.k); err != nil {
		return nil, err
	}

	fragments := make([]sharing.Fragment, len(shares))
	for i, s := range shares {
		fragments[i] = sharing.Fragment{ID: s.ID, Data: s.Body}
	}

	data, err := e.scheme.Reconstruct(fragments, int(shares[0].Length))
	if err != nil {
		return nil, fmt.Errorf("decoding payload: %w", err)
	}

	return data, nil
}

// ReconstructPartial recovers the payload from the byte at offset start to the end. Every
// passed share's checking mode is reset to CheckingNone before use.
func (e *Rabin) ReconstructPartial(shares []*Share, start uint64) ([]byte, error) {
	stripChecking(shares)

	data, err := e.Reconstruct(shares)
	if err != nil {
		return nil, err
	}

	if start > uint64(len(data)) {
		return nil, fmt.Errorf("%w: start %d, payload length %d", ErrOutOfBounds, start, len(data))
	}

	return data[start:], nil
}
