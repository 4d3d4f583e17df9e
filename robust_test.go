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
)

func newRobust(t *testing.T, k, n uint) *rss.Robust {
	t.Helper()

	engine, err := rss.NewRobust(k, n)
	if err != nil {
		t.Fatal(err)
	}

	return engine
}

func TestRobust_RoundTrip(t *testing.T) {
	testAll(t, func(t *testing.T, test *tableTest) {
		engine := newRobust(t, test.k, test.n)
		data := makeData(256)

		shares, err := engine.Share(data)
		if err != nil {
			t.Fatal(err)
		}

		for _, s := range shares {
			if s.Mode != rss.CheckingRabinBenOr {
				t.Fatal("expected tagged shares")
			}
		}

		recovered, err := engine.Reconstruct(shares)
		if err != nil {
			t.Fatal(err)
		}

		if !bytes.Equal(recovered, data) {
			t.Fatal("reconstruction mismatch")
		}
	})
}

func TestRobust_TamperedShareIsFiltered(t *testing.T) {
	engine := newRobust(t, 3, 5)
	data := makeData(512)

	shares, err := engine.Share(data)
	if err != nil {
		t.Fatal(err)
	}

	shares[4].Body[0] ^= 0xff

	recovered, err := engine.Reconstruct(shares)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(recovered, data) {
		t.Fatal("reconstruction mismatch despite filtering")
	}
}

func TestRobust_TooManyTampered(t *testing.T) {
	engine := newRobust(t, 3, 5)

	shares, err := engine.Share(makeData(128))
	if err != nil {
		t.Fatal(err)
	}

	// Three corrupted shares leave only two accepted, below k = 3.
	shares[0].Body[1] ^= 1
	shares[2].Body[1] ^= 1
	shares[3].Body[1] ^= 1

	if _, err = engine.Reconstruct(shares); !errors.Is(err, rss.ErrTooFewShares) {
		t.Fatalf("expected %q, got %q", rss.ErrTooFewShares, err)
	}
}

func TestRobust_ForgedTagIsHarmless(t *testing.T) {
	engine := newRobust(t, 3, 5)
	data := makeData(64)

	shares, err := engine.Share(data)
	if err != nil {
		t.Fatal(err)
	}

	// A dishonest shareholder rewrites one of its own tags. It loses one accept but stays
	// above the threshold; reconstruction is unaffected.
	tag := shares[2].Tags[shares[0].ID]
	tag[0] ^= 1

	recovered, err := engine.Reconstruct(shares)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(recovered, data) {
		t.Fatal("reconstruction mismatch")
	}
}
