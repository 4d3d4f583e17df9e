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

// Shamir shares the whole payload through an information-theoretically secure scheme. Every
// share is as large as the payload itself, so it suits small secrets; use Krawczyk for bulk
// data.
type Shamir struct {
	scheme sharing.Scheme
	rng    random.Source
	k      uint
	n      uint
}

// NewShamir returns a whole-payload engine with threshold k over n shareholders, backed by
// prime-field Shamir sharing and the crypto/rand entropy source.
func NewShamir(k, n uint) (*Shamir, error) {
	scheme, err := sharing.NewBlock(k, n)
	if err != nil {
		return nil, err
	}

	return NewShamirWith(k, n, scheme, random.NewCrypto())
}

// NewShamirWith returns a whole-payload engine over a caller-provided scheme, which must be
// information-theoretically secure and agree with (k,n).
func NewShamirWith(k, n uint, scheme sharing.Scheme, rng random.Source) (*Shamir, error) {
	if err := sharing.ValidParameters(k, n); err != nil {
		return nil, err
	}

	if scheme.Class() != sharing.InformationTheoretic {
		return nil, fmt.Errorf("%w: scheme is %v, must be information-theoretic", ErrWeakSecurity, scheme.Class())
	}

	if scheme.K() != k || scheme.N() != n {
		return nil, fmt.Errorf("%w: scheme threshold disagrees with (%d,%d)", ErrWeakSecurity, k, n)
	}

	return &Shamir{scheme: scheme, rng: rng, k: k, n: n}, nil
}

// Threshold returns k.
func (e *Shamir) Threshold() uint {
	return e.k
}

// Shareholders returns n.
func (e *Shamir) Shareholders() uint {
	return e.n
}

// Class returns InformationTheoretic.
func (e *Shamir) Class() sharing.SecurityClass {
	return e.scheme.Class()
}

// Share splits data into n shares.
func (e *Shamir) Share(data []byte) ([]*Share, error) {
	if len(data) == 0 {
		return nil, sharing.ErrEmptySecret
	}

	instance, err := newInstance(e.rng)
	if err != nil {
		return nil, err
	}

	fragments, err := e.scheme.Share(data)
	if err != nil {
		return nil, fmt.Errorf("sharing payload: %w", err)
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
func (e *Shamir) Reconstruct(shares []*Share) ([]byte, error) {
	if err := validateShareSet(shares, e.k); err != nil {
		return nil, err
	}

	fragments := make([]sharing.Fragment, len(shares))
	for i, s := range shares {
		fragments[i] = sharing.Fragment{ID: s.ID, Data: s.Body}
	}

	data, err := e.scheme.Reconstruct(fragments, int(shares[0].Length))
	if err != nil {
		return nil, fmt.Errorf("reconstructing payload: %w", err)
	}

	return data, nil
}

// ReconstructPartial recovers the payload from the byte at offset start to the end. Every
// passed share's checking mode is reset to CheckingNone before use.
func (e *Shamir) ReconstructPartial(shares []*Share, start uint64) ([]byte, error) {
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
