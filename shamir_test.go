// SPDX-License-Identifier: MIT
//
// Copyright (C) 2025 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package rss_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/bytemare/rss"
	"github.com/bytemare/rss/mac"
	"github.com/bytemare/rss/random"
	"github.com/bytemare/rss/sharing"
)

func TestShamirEngine_RoundTrip(t *testing.T) {
	testAll(t, func(t *testing.T, test *tableTest) {
		engine, err := rss.NewShamir(test.k, test.n)
		if err != nil {
			t.Fatal(err)
		}

		for _, length := range []int{1, 16, 32, 33, 64, 100} {
			data := makeData(length)

			shares, err := engine.Share(data)
			if err != nil {
				t.Fatal(err)
			}

			recovered, err := engine.Reconstruct(shares[:test.k])
			if err != nil {
				t.Fatal(err)
			}

			if !bytes.Equal(recovered, data) {
				t.Fatalf("length %d: reconstruction mismatch", length)
			}
		}
	})
}

func TestShamirEngine_ThresholdBoundary(t *testing.T) {
	engine, err := rss.NewShamir(3, 5)
	if err != nil {
		t.Fatal(err)
	}

	shares, err := engine.Share(makeData(48))
	if err != nil {
		t.Fatal(err)
	}

	if _, err = engine.Reconstruct(shares[:2]); !errors.Is(err, rss.ErrTooFewShares) {
		t.Fatalf("expected %q, got %q", rss.ErrTooFewShares, err)
	}
}

func TestShamirEngine_SupportsChecking(t *testing.T) {
	engine, err := rss.NewShamir(2, 3)
	if err != nil {
		t.Fatal(err)
	}

	if engine.Class() != sharing.InformationTheoretic {
		t.Fatal("expected information-theoretic class")
	}

	if _, err = rss.NewRabinBenOr(engine, mac.NewBlake2b(), random.NewCrypto()); err != nil {
		t.Fatal(err)
	}
}

func TestShamirEngine_ScalarScheme(t *testing.T) {
	// The group-scalar Shamir scheme carries whole payloads too.
	scheme, err := sharing.NewShamir(2, 3)
	if err != nil {
		t.Fatal(err)
	}

	engine, err := rss.NewShamirWith(2, 3, scheme, random.NewCrypto())
	if err != nil {
		t.Fatal(err)
	}

	data := makeData(95)

	shares, err := engine.Share(data)
	if err != nil {
		t.Fatal(err)
	}

	recovered, err := engine.Reconstruct([]*rss.Share{shares[2], shares[0]})
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(recovered, data) {
		t.Fatal("reconstruction mismatch")
	}
}

func TestShamirEngine_RejectsErasureScheme(t *testing.T) {
	scheme, err := sharing.NewErasure(2, 3)
	if err != nil {
		t.Fatal(err)
	}

	_, err = rss.NewShamirWith(2, 3, scheme, random.NewCrypto())
	if !errors.Is(err, rss.ErrWeakSecurity) {
		t.Fatalf("expected %q, got %q", rss.ErrWeakSecurity, err)
	}
}

func TestRabinEngine_RoundTrip(t *testing.T) {
	engine, err := rss.NewRabin(3, 5)
	if err != nil {
		t.Fatal(err)
	}

	if engine.Class() != sharing.ErasureOnly {
		t.Fatal("expected erasure-only class")
	}

	data := makeData(1000)

	shares, err := engine.Share(data)
	if err != nil {
		t.Fatal(err)
	}

	// Dispersal shares are small: ceil(1000/3) bytes each.
	for _, s := range shares {
		if len(s.Body) >= len(data)/2 {
			t.Fatalf("erasure share unexpectedly large: %d bytes", len(s.Body))
		}
	}

	recovered, err := engine.Reconstruct([]*rss.Share{shares[4], shares[1], shares[2]})
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(recovered, data) {
		t.Fatal("reconstruction mismatch")
	}

	partial, err := engine.ReconstructPartial([]*rss.Share{shares[0], shares[3], shares[4]}, 500)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(partial, data[500:]) {
		t.Fatal("partial reconstruction mismatch")
	}
}
