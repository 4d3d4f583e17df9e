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

// Robust composes a sharing engine with Rabin-Ben-Or information checking: sharing tags the
// produced set, and reconstruction filters the input through verification first. It implements
// Engine itself.
type Robust struct {
	engine  Engine
	checker *RabinBenOr
}

// NewRobust returns a robust engine wrapping the default Krawczyk engine with keyed BLAKE2b
// tags.
func NewRobust(k, n uint) (*Robust, error) {
	engine, err := NewKrawczyk(k, n)
	if err != nil {
		return nil, err
	}

	return NewRobustWith(engine, mac.NewBlake2b(), random.NewCrypto())
}

// NewRobustWith wraps the given engine with information checking over the given MAC and
// entropy source.
func NewRobustWith(engine Engine, m mac.Mac, rng random.Source) (*Robust, error) {
	checker, err := NewRabinBenOr(engine, m, rng)
	if err != nil {
		return nil, err
	}

	return &Robust{engine: engine, checker: checker}, nil
}

// Threshold returns k.
func (r *Robust) Threshold() uint {
	return r.engine.Threshold()
}

// Shareholders returns n.
func (r *Robust) Shareholders() uint {
	return r.engine.Shareholders()
}

// Class returns the class of the wrapped engine.
func (r *Robust) Class() sharing.SecurityClass {
	return r.engine.Class()
}

// Share splits data into n tagged shares.
func (r *Robust) Share(data []byte) ([]*Share, error) {
	shares, err := r.engine.Share(data)
	if err != nil {
		return nil, err
	}

	if err := r.checker.CreateTags(shares); err != nil {
		return nil, err
	}

	return shares, nil
}

// Check verifies the share set and returns the accepted subset, in input order.
func (r *Robust) Check(shares []*Share) []*Share {
	return r.checker.CheckShares(shares)
}

// Reconstruct verifies the share set and recovers the payload from the accepted subset. It
// fails when fewer than k shares pass verification.
func (r *Robust) Reconstruct(shares []*Share) ([]byte, error) {
	accepted := r.checker.CheckShares(shares)

	if uint(len(accepted)) < r.engine.Threshold() {
		return nil, fmt.Errorf("%w: %d of %d shares accepted, need %d",
			ErrTooFewShares, len(accepted), len(shares), r.engine.Threshold())
	}

	return r.engine.Reconstruct(accepted)
}

// ReconstructPartial recovers the payload window starting at start. Tags cannot authenticate a
// partial view, so the wrapped engine resets every passed share to CheckingNone and no
// verification takes place.
func (r *Robust) ReconstructPartial(shares []*Share, start uint64) ([]byte, error) {
	return r.engine.ReconstructPartial(shares, start)
}
