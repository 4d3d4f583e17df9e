// SPDX-License-Identifier: MIT
//
// Copyright (C) 2025 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package sharing_test

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/bytemare/rss/sharing"
)

type schemeTest struct {
	build func(k, n uint) (sharing.Scheme, error)
	name  string
	class sharing.SecurityClass
}

var schemeTable = []schemeTest{
	{
		name:  "shamir",
		class: sharing.InformationTheoretic,
		build: func(k, n uint) (sharing.Scheme, error) { return sharing.NewShamir(k, n) },
	},
	{
		name:  "block",
		class: sharing.InformationTheoretic,
		build: func(k, n uint) (sharing.Scheme, error) { return sharing.NewBlock(k, n) },
	},
	{
		name:  "erasure",
		class: sharing.ErasureOnly,
		build: func(k, n uint) (sharing.Scheme, error) { return sharing.NewErasure(k, n) },
	},
}

func makeSecret(length int) []byte {
	secret := make([]byte, length)
	for i := range secret {
		secret[i] = byte(i*7 + 3)
	}

	return secret
}

func testAllSchemes(t *testing.T, k, n uint, f func(t *testing.T, test *schemeTest, scheme sharing.Scheme)) {
	for _, test := range schemeTable {
		t.Run(test.name, func(t *testing.T) {
			scheme, err := test.build(k, n)
			if err != nil {
				t.Fatal(err)
			}

			f(t, &test, scheme)
		})
	}
}

func TestSchemes_RoundTrip(t *testing.T) {
	testAllSchemes(t, 3, 5, func(t *testing.T, test *schemeTest, scheme sharing.Scheme) {
		if scheme.Class() != test.class {
			t.Fatalf("expected class %v, got %v", test.class, scheme.Class())
		}

		for _, length := range []int{1, 16, 31, 32, 33, 62, 63, 100} {
			secret := makeSecret(length)

			fragments, err := scheme.Share(secret)
			if err != nil {
				t.Fatal(err)
			}

			if uint(len(fragments)) != scheme.N() {
				t.Fatalf("expected %d fragments, got %d", scheme.N(), len(fragments))
			}

			for i, f := range fragments {
				if f.ID != uint64(i+1) {
					t.Fatalf("expected identifier %d, got %d", i+1, f.ID)
				}
			}

			// A non-prefix k-subset.
			subset := []sharing.Fragment{fragments[4], fragments[0], fragments[2]}

			recovered, err := scheme.Reconstruct(subset, length)
			if err != nil {
				t.Fatal(err)
			}

			if !bytes.Equal(recovered, secret) {
				t.Fatalf("length %d: reconstruction mismatch", length)
			}

			// All fragments work too.
			recovered, err = scheme.Reconstruct(fragments, length)
			if err != nil {
				t.Fatal(err)
			}

			if !bytes.Equal(recovered, secret) {
				t.Fatalf("length %d: full set reconstruction mismatch", length)
			}
		}
	})
}

func TestSchemes_NotEnoughFragments(t *testing.T) {
	testAllSchemes(t, 3, 5, func(t *testing.T, _ *schemeTest, scheme sharing.Scheme) {
		secret := makeSecret(50)

		fragments, err := scheme.Share(secret)
		if err != nil {
			t.Fatal(err)
		}

		_, err = scheme.Reconstruct(fragments[:2], len(secret))
		if !errors.Is(err, sharing.ErrNotEnoughFragments) {
			t.Fatalf("expected %q, got %q", sharing.ErrNotEnoughFragments, err)
		}
	})
}

func TestSchemes_DuplicateFragment(t *testing.T) {
	testAllSchemes(t, 2, 3, func(t *testing.T, _ *schemeTest, scheme sharing.Scheme) {
		fragments, err := scheme.Share(makeSecret(20))
		if err != nil {
			t.Fatal(err)
		}

		_, err = scheme.Reconstruct([]sharing.Fragment{fragments[1], fragments[1]}, 20)
		if !errors.Is(err, sharing.ErrDuplicateFragment) {
			t.Fatalf("expected %q, got %q", sharing.ErrDuplicateFragment, err)
		}
	})
}

func TestSchemes_FragmentIDRange(t *testing.T) {
	testAllSchemes(t, 2, 3, func(t *testing.T, _ *schemeTest, scheme sharing.Scheme) {
		fragments, err := scheme.Share(makeSecret(20))
		if err != nil {
			t.Fatal(err)
		}

		for _, id := range []uint64{0, 4} {
			bad := []sharing.Fragment{fragments[0], {ID: id, Data: fragments[1].Data}}

			if _, err = scheme.Reconstruct(bad, 20); !errors.Is(err, sharing.ErrFragmentID) {
				t.Fatalf("id %d: expected %q, got %q", id, sharing.ErrFragmentID, err)
			}
		}
	})
}

func TestSchemes_EmptySecret(t *testing.T) {
	testAllSchemes(t, 2, 3, func(t *testing.T, _ *schemeTest, scheme sharing.Scheme) {
		if _, err := scheme.Share(nil); !errors.Is(err, sharing.ErrEmptySecret) {
			t.Fatalf("expected %q, got %q", sharing.ErrEmptySecret, err)
		}
	})
}

func TestValidParameters(t *testing.T) {
	for _, test := range []struct {
		k, n uint
		ok   bool
	}{
		{k: 2, n: 3, ok: true},
		{k: 2, n: 255, ok: true},
		{k: 0, n: 3},
		{k: 1, n: 5},
		{k: 3, n: 3},
		{k: 5, n: 3},
		{k: 2, n: 256},
	} {
		t.Run(fmt.Sprintf("%d_of_%d", test.k, test.n), func(t *testing.T) {
			err := sharing.ValidParameters(test.k, test.n)

			if test.ok && err != nil {
				t.Fatalf("expected success, got %q", err)
			}

			if !test.ok && !errors.Is(err, sharing.ErrWeakSecurity) {
				t.Fatalf("expected %q, got %q", sharing.ErrWeakSecurity, err)
			}
		})
	}
}
