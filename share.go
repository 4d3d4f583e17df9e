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
	"slices"

	"github.com/bytemare/hash"

	"github.com/bytemare/rss/internal"
	"github.com/bytemare/rss/random"
)

// InstanceSize is the byte length of a sharing instance fingerprint.
const InstanceSize = 16

// CheckingMode identifies the information checking protocol a share participates in.
type CheckingMode byte

const (
	// CheckingNone marks a share without authentication metadata.
	CheckingNone CheckingMode = iota

	// CheckingRabinBenOr marks a share carrying Rabin-Ben-Or pairwise tags and keys.
	CheckingRabinBenOr
)

// String implements fmt.Stringer.
func (m CheckingMode) String() string {
	switch m {
	case CheckingNone:
		return "none"
	case CheckingRabinBenOr:
		return "rabin-ben-or"
	default:
		return "unknown"
	}
}

// Share is one shareholder's piece of one sharing instance. All n shares of an instance are
// created together by the dealer; Body is immutable thereafter, and Mode, Tags, and MacKeys
// are written once by tag creation. Shares reference each other by identifier only, never by
// pointer.
type Share struct {
	// Tags maps a verifier's identifier to the tag that verifier checks this share against.
	Tags map[uint64][]byte

	// MacKeys maps a subject's identifier to the key this share's holder uses to verify the
	// subject's tag. No share holds both a tag about itself and the key another shareholder
	// verifies that tag with.
	MacKeys map[uint64][]byte

	// Body is the opaque share payload, owned by the engine that produced it.
	Body []byte

	// ID identifies the shareholder, 1..n, unique within the instance.
	ID uint64

	// Length is the byte length of the shared payload.
	Length uint64

	// Instance fingerprints the sharing instance all sibling shares belong to.
	Instance [InstanceSize]byte

	// Mode is the information checking protocol this share participates in.
	Mode CheckingMode
}

// newInstance derives a fresh instance fingerprint from the entropy source.
func newInstance(rng random.Source) ([InstanceSize]byte, error) {
	var instance [InstanceSize]byte

	seed := make([]byte, InstanceSize)
	if err := rng.FillBytes(seed); err != nil {
		return instance, fmt.Errorf("drawing instance fingerprint: %w", err)
	}

	copy(instance[:], hash.SHA256.Hash(seed))

	return instance, nil
}

// CanonicalForm returns the stable byte serialization of the share excluding authentication
// metadata: identifier, instance fingerprint, payload length, and body. It is the exact MAC
// input for information checking, identical at tag creation and verification time.
func (s *Share) CanonicalForm() []byte {
	return internal.Concatenate(
		internal.UInt64LE(s.ID),
		s.Instance[:],
		internal.UInt64LE(s.Length),
		internal.UInt64LE(uint64(len(s.Body))),
		s.Body,
	)
}

// canonicalHeaderLength is the fixed prefix of CanonicalForm preceding the body.
const canonicalHeaderLength = 8 + InstanceSize + 8 + 8

func appendIDMap(out []byte, m map[uint64][]byte) []byte {
	ids := make([]uint64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}

	slices.Sort(ids)

	out = append(out, internal.UInt32LE(uint32(len(ids)))...)
	for _, id := range ids {
		out = append(out, internal.UInt64LE(id)...)
		out = append(out, internal.UInt32LE(uint32(len(m[id])))...)
		out = append(out, m[id]...)
	}

	return out
}

func decodeIDMap(data []byte) (map[uint64][]byte, []byte, error) {
	if len(data) < 4 {
		return nil, nil, errInvalidEncoding
	}

	count := binary.LittleEndian.Uint32(data[:4])
	data = data[4:]

	if count == 0 {
		return nil, data, nil
	}

	m := make(map[uint64][]byte, count)

	for i := uint32(0); i < count; i++ {
		if len(data) < 12 {
			return nil, nil, errInvalidEncoding
		}

		id := binary.LittleEndian.Uint64(data[:8])
		length := binary.LittleEndian.Uint32(data[8:12])
		data = data[12:]

		if uint32(len(data)) < length {
			return nil, nil, errInvalidEncoding
		}

		if _, ok := m[id]; ok {
			return nil, nil, errInvalidEncoding
		}

		m[id] = append([]byte(nil), data[:length]...)
		data = data[length:]
	}

	return m, data, nil
}

// Encode serializes the share into a compact byte string: the canonical form followed by the
// checking mode and the tag and key maps in ascending identifier order.
func (s *Share) Encode() []byte {
	out := s.CanonicalForm()
	out = append(out, byte(s.Mode))
	out = appendIDMap(out, s.Tags)
	out = appendIDMap(out, s.MacKeys)

	return out
}

// Decode deserializes the compact encoding obtained from Encode(), or returns an error.
func (s *Share) Decode(data []byte) error {
	if len(data) < canonicalHeaderLength+1 {
		return fmt.Errorf("%w: %d bytes", errInvalidEncoding, len(data))
	}

	id := binary.LittleEndian.Uint64(data[:8])
	if id == 0 {
		return fmt.Errorf("%w: zero identifier", errInvalidEncoding)
	}

	var instance [InstanceSize]byte
	copy(instance[:], data[8:8+InstanceSize])

	length := binary.LittleEndian.Uint64(data[8+InstanceSize : 8+InstanceSize+8])
	bodyLen := binary.LittleEndian.Uint64(data[8+InstanceSize+8 : canonicalHeaderLength])

	rest := data[canonicalHeaderLength:]
	if uint64(len(rest)) < bodyLen+1 {
		return fmt.Errorf("%w: truncated body", errInvalidEncoding)
	}

	body := append([]byte(nil), rest[:bodyLen]...)
	rest = rest[bodyLen:]

	mode := CheckingMode(rest[0])
	if mode != CheckingNone && mode != CheckingRabinBenOr {
		return fmt.Errorf("%w: unknown checking mode %d", errInvalidEncoding, rest[0])
	}

	tags, rest, err := decodeIDMap(rest[1:])
	if err != nil {
		return fmt.Errorf("%w: tag map", errInvalidEncoding)
	}

	keys, rest, err := decodeIDMap(rest)
	if err != nil {
		return fmt.Errorf("%w: key map", errInvalidEncoding)
	}

	if len(rest) != 0 {
		return fmt.Errorf("%w: %d trailing bytes", errInvalidEncoding, len(rest))
	}

	s.ID = id
	s.Instance = instance
	s.Length = length
	s.Body = body
	s.Mode = mode
	s.Tags = tags
	s.MacKeys = keys

	return nil
}
