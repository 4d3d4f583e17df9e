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
	"fmt"

	"github.com/bytemare/rss"
)

// ExampleKrawczyk shows how to split a payload into shares and recombine it from a subset.
func ExampleKrawczyk() {
	payload := []byte("the vault combination is 13-37-42")

	// Any 2 of 3 shares reconstruct the payload; a single share reveals nothing.
	engine, err := rss.NewKrawczyk(2, 3)
	if err != nil {
		panic(err)
	}

	shares, err := engine.Share(payload)
	if err != nil {
		panic(err)
	}

	recovered, err := engine.Reconstruct([]*rss.Share{shares[2], shares[0]})
	if err != nil {
		panic(err)
	}

	fmt.Println(string(recovered))
	// Output: the vault combination is 13-37-42
}

// ExampleRobust shows information checking filtering out a corrupted share.
func ExampleRobust() {
	payload := []byte("rotate the signing key on friday")

	engine, err := rss.NewRobust(3, 5)
	if err != nil {
		panic(err)
	}

	shares, err := engine.Share(payload)
	if err != nil {
		panic(err)
	}

	// A dishonest shareholder tampers with its share.
	shares[1].Body[0] ^= 0xff

	// Verification drops the corrupted share; the remaining honest shares reconstruct.
	accepted := engine.Check(shares)
	fmt.Println("accepted shares:", len(accepted))

	recovered, err := engine.Reconstruct(shares)
	if err != nil {
		panic(err)
	}

	fmt.Println("intact:", bytes.Equal(recovered, payload))
	// Output: accepted shares: 4
	// intact: true
}
