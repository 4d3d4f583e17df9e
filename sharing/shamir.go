// SPDX-License-Identifier: MIT
//
// Copyright (C) 2025 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package sharing

import (
	"errors"
	"fmt"

	group "github.com/bytemare/crypto"
	secretsharing "github.com/bytemare/secret-sharing"
)

// ErrInvalidGroup indicates a group that cannot carry byte blocks in its scalars.
var ErrInvalidGroup = errors.New("group not available for byte block sharing")

// Shamir is an information-theoretically secure Scheme built on Shamir secret sharing over a
// prime-order group. Secrets of arbitrary length are carried block-wise: each block of
// ScalarLength-1 bytes maps to the low-order bytes of a scalar, which keeps every block strictly
// below the group order, and each block is sharded with a fresh random polynomial.
type Shamir struct {
	group group.Group
	k     uint
	n     uint
}

// availableGroup restricts Shamir to groups with little-endian scalar encodings and an order
// above 2^248, the two properties the block mapping relies on.
func availableGroup(g group.Group) bool {
	switch g {
	case group.Ristretto255Sha512, group.Edwards25519Sha512:
		return true
	default:
		return false
	}
}

// NewShamir returns a Shamir scheme over Ristretto255 splitting secrets into n fragments with
// reconstruction threshold k.
func NewShamir(k, n uint) (*Shamir, error) {
	return NewShamirGroup(group.Ristretto255Sha512, k, n)
}

// NewShamirGroup returns a Shamir scheme over the given group. Only groups with little-endian
// scalar encodings are available.
func NewShamirGroup(g group.Group, k, n uint) (*Shamir, error) {
	if !availableGroup(g) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidGroup, g)
	}

	if err := ValidParameters(k, n); err != nil {
		return nil, err
	}

	return &Shamir{group: g, k: k, n: n}, nil
}

// K returns the reconstruction threshold.
func (s *Shamir) K() uint {
	return s.k
}

// N returns the total number of fragments produced by Share.
func (s *Shamir) N() uint {
	return s.n
}

// Class returns InformationTheoretic.
func (*Shamir) Class() SecurityClass {
	return InformationTheoretic
}

// blockSize returns the number of secret bytes carried per scalar.
func (s *Shamir) blockSize() int {
	return s.group.ScalarLength() - 1
}

// blockToScalar maps up to blockSize bytes into the low-order bytes of a fresh scalar.
func (s *Shamir) blockToScalar(block []byte) (*group.Scalar, error) {
	buf := make([]byte, s.group.ScalarLength())
	copy(buf, block)

	sc := s.group.NewScalar()
	if err := sc.Decode(buf); err != nil {
		return nil, fmt.Errorf("decoding block scalar: %w", err)
	}

	return sc, nil
}

// Share splits secret into n fragments. Each fragment holds one scalar encoding per secret
// block, all blocks sharded independently.
func (s *Shamir) Share(secret []byte) ([]Fragment, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}

	bs := s.blockSize()
	fragments := make([]Fragment, s.n)

	for i := range fragments {
		fragments[i].ID = uint64(i + 1)
	}

	for start := 0; start < len(secret); start += bs {
		end := min(start+bs, len(secret))

		sc, err := s.blockToScalar(secret[start:end])
		if err != nil {
			return nil, err
		}

		shares, err := secretsharing.Shard(s.group, sc, s.k, s.n)
		if err != nil {
			return nil, fmt.Errorf("sharding block: %w", err)
		}

		if uint(len(shares)) != s.n {
			return nil, fmt.Errorf("sharding block: got %d shares for %d shareholders", len(shares), s.n)
		}

		for _, share := range shares {
			id := share.Identifier()
			if id == 0 || id > uint64(s.n) {
				return nil, fmt.Errorf("%w: %d", ErrFragmentID, id)
			}

			fragments[id-1].Data = append(fragments[id-1].Data, share.SecretKey().Encode()...)
		}
	}

	return fragments, nil
}

// Reconstruct recovers a secret of the given length from at least k fragments. Interpolation
// over fragments from mismatched splittings yields scalars outside the block range and is
// reported as corruption.
func (s *Shamir) Reconstruct(fragments []Fragment, length int) ([]byte, error) {
	if length <= 0 {
		return nil, fmt.Errorf("%w: invalid secret length %d", ErrCorruptFragments, length)
	}

	if err := validateFragments(fragments, s.k, s.n); err != nil {
		return nil, err
	}

	bs := s.blockSize()
	sl := s.group.ScalarLength()
	blocks := (length + bs - 1) / bs

	for _, f := range fragments {
		if len(f.Data) != blocks*sl {
			return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrFragmentSize, len(f.Data), blocks*sl)
		}
	}

	secret := make([]byte, 0, blocks*bs)

	for b := 0; b < blocks; b++ {
		shares := make([]secretsharing.Share, len(fragments))

		for i, f := range fragments {
			y := s.group.NewScalar()
			if err := y.Decode(f.Data[b*sl : (b+1)*sl]); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrCorruptFragments, err)
			}

			shares[i] = &secretsharing.KeyShare{
				Secret:         y,
				PublicKeyShare: secretsharing.PublicKeyShare{ID: f.ID, Group: s.group},
			}
		}

		sc, err := secretsharing.CombineShares(s.group, shares)
		if err != nil {
			return nil, fmt.Errorf("combining block: %w", err)
		}

		enc := sc.Encode()
		if enc[sl-1] != 0 {
			return nil, fmt.Errorf("%w: block exceeds carrier range", ErrCorruptFragments)
		}

		secret = append(secret, enc[:bs]...)
	}

	return secret[:length], nil
}
