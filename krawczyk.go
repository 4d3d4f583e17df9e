// SPDX-License-Identifier: MIT
//
// Copyright (C) 2025 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package rss

import (
	"encoding/binary"
	"fmt"

	"github.com/bytemare/rss/internal"
	"github.com/bytemare/rss/random"
	"github.com/bytemare/rss/sharing"
	"github.com/bytemare/rss/symmetric"
)

// Krawczyk is the hybrid sharing engine: the payload is encrypted under a fresh stream cipher
// key, the key is split with an information-theoretically secure scheme at constant cost, and
// the ciphertext is erasure-coded at a cost of len(payload)/k per share. Each share body holds
// the shareholder's key fragment and ciphertext fragment, length-delimited.
type Krawczyk struct {
	keys   sharing.Scheme
	bulk   sharing.Scheme
	cipher symmetric.Cipher
	rng    random.Source
	k      uint
	n      uint
}

// NewKrawczyk returns a hybrid engine with threshold k over n shareholders, wired to Shamir
// sharing over Ristretto255 for the key, Reed-Solomon coding for the ciphertext, ChaCha20, and
// the crypto/rand entropy source.
func NewKrawczyk(k, n uint) (*Krawczyk, error) {
	keys, err := sharing.NewShamir(k, n)
	if err != nil {
		return nil, err
	}

	bulk, err := sharing.NewErasure(k, n)
	if err != nil {
		return nil, err
	}

	return NewKrawczykWith(k, n, keys, bulk, symmetric.NewChaCha20(), random.NewCrypto())
}

// NewKrawczykWith returns a hybrid engine over caller-provided collaborators. The key scheme
// must be information-theoretically secure, and both schemes must agree with (k,n).
func NewKrawczykWith(
	k, n uint,
	keys, bulk sharing.Scheme,
	cipher symmetric.Cipher,
	rng random.Source,
) (*Krawczyk, error) {
	if err := sharing.ValidParameters(k, n); err != nil {
		return nil, err
	}

	if keys.Class() != sharing.InformationTheoretic {
		return nil, fmt.Errorf("%w: key scheme is %v, must be information-theoretic", ErrWeakSecurity, keys.Class())
	}

	if keys.K() != k || keys.N() != n || bulk.K() != k || bulk.N() != n {
		return nil, fmt.Errorf("%w: scheme thresholds disagree with (%d,%d)", ErrWeakSecurity, k, n)
	}

	return &Krawczyk{keys: keys, bulk: bulk, cipher: cipher, rng: rng, k: k, n: n}, nil
}

// Threshold returns k.
func (e *Krawczyk) Threshold() uint {
	return e.k
}

// Shareholders returns n.
func (e *Krawczyk) Shareholders() uint {
	return e.n
}

// Class returns the class of the key scheme, the engine's randomized component.
func (e *Krawczyk) Class() sharing.SecurityClass {
	return e.keys.Class()
}

// Share splits data into n shares. Any failure aborts the call without partial results.
func (e *Krawczyk) Share(data []byte) ([]*Share, error) {
	if len(data) == 0 {
		return nil, sharing.ErrEmptySecret
	}

	instance, err := newInstance(e.rng)
	if err != nil {
		return nil, err
	}

	key := make([]byte, e.cipher.KeySize())
	if err := e.rng.FillBytes(key); err != nil {
		return nil, fmt.Errorf("drawing encryption key: %w", err)
	}

	ct, err := e.cipher.Encrypt(data, key)
	if err != nil {
		return nil, fmt.Errorf("encrypting payload: %w", err)
	}

	keyFragments, err := e.keys.Share(key)
	if err != nil {
		return nil, fmt.Errorf("sharing key: %w", err)
	}

	bulkFragments, err := e.bulk.Share(ct)
	if err != nil {
		return nil, fmt.Errorf("coding ciphertext: %w", err)
	}

	shares := make([]*Share, e.n)

	for i := range shares {
		id := uint64(i + 1)
		if keyFragments[i].ID != id || bulkFragments[i].ID != id {
			return nil, fmt.Errorf("%w: fragment identifiers out of order", ErrInconsistentShares)
		}

		shares[i] = &Share{
			ID:       id,
			Instance: instance,
			Length:   uint64(len(data)),
			Body: internal.Concatenate(
				internal.UInt32LE(uint32(len(keyFragments[i].Data))),
				keyFragments[i].Data,
				bulkFragments[i].Data,
			),
			Mode: CheckingNone,
		}
	}

	return shares, nil
}

// splitBody separates a share body into its key fragment and ciphertext fragment.
func splitBody(s *Share) (sharing.Fragment, sharing.Fragment, error) {
	if len(s.Body) < 4 {
		return sharing.Fragment{}, sharing.Fragment{}, fmt.Errorf("%w: share %d body too short", ErrInconsistentShares, s.ID)
	}

	keyLen := binary.LittleEndian.Uint32(s.Body[:4])
	if uint64(len(s.Body)-4) < uint64(keyLen) {
		return sharing.Fragment{}, sharing.Fragment{}, fmt.Errorf("%w: share %d body truncated", ErrInconsistentShares, s.ID)
	}

	return sharing.Fragment{ID: s.ID, Data: s.Body[4 : 4+keyLen]},
		sharing.Fragment{ID: s.ID, Data: s.Body[4+keyLen:]},
		nil
}

func (e *Krawczyk) reconstructCiphertext(shares []*Share) (ct, key []byte, err error) {
	if err := validateShareSet(shares, e.k); err != nil {
		return nil, nil, err
	}

	keyFragments := make([]sharing.Fragment, len(shares))
	bulkFragments := make([]sharing.Fragment, len(shares))

	for i, s := range shares {
		keyFragments[i], bulkFragments[i], err = splitBody(s)
		if err != nil {
			return nil, nil, err
		}
	}

	key, err = e.keys.Reconstruct(keyFragments, e.cipher.KeySize())
	if err != nil {
		return nil, nil, fmt.Errorf("reconstructing key: %w", err)
	}

	ct, err = e.bulk.Reconstruct(bulkFragments, int(shares[0].Length))
	if err != nil {
		return nil, nil, fmt.Errorf("decoding ciphertext: %w", err)
	}

	return ct, key, nil
}

// Reconstruct recovers the payload from at least k shares of the same instance.
func (e *Krawczyk) Reconstruct(shares []*Share) ([]byte, error) {
	ct, key, err := e.reconstructCiphertext(shares)
	if err != nil {
		return nil, err
	}

	data, err := e.cipher.Decrypt(ct, key)
	if err != nil {
		return nil, fmt.Errorf("decrypting payload: %w", err)
	}

	return data, nil
}

// ReconstructPartial recovers the payload from the byte at offset start to the end. Every
// passed share's checking mode is reset to CheckingNone before use.
func (e *Krawczyk) ReconstructPartial(shares []*Share, start uint64) ([]byte, error) {
	stripChecking(shares)

	ct, key, err := e.reconstructCiphertext(shares)
	if err != nil {
		return nil, err
	}

	if start > uint64(len(ct)) {
		return nil, fmt.Errorf("%w: start %d, payload length %d", ErrOutOfBounds, start, len(ct))
	}

	data, err := e.cipher.DecryptAt(ct[start:], key, start)
	if err != nil {
		return nil, fmt.Errorf("decrypting payload window: %w", err)
	}

	return data, nil
}
