// Copyright (c) 2025 The UMI core developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ed25519

import (
	"testing"

	"pgregory.net/rapid"
)

// TestSignVerifyRoundTripProperty exercises spec §8's "After tx.sign,
// tx.verify() == true" invariant at the primitive level, across
// random seeds and messages.
func TestSignVerifyRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.SliceOfN(rapid.Byte(), SeedSize, SeedSize).Draw(rt, "seed")
		msg := rapid.SliceOfN(rapid.Byte(), 0, 200).Draw(rt, "msg")

		secret, public := KeypairFromSeed(seed)
		sig := Sign(msg, secret[:])

		if !Verify(sig[:], msg, public[:]) {
			rt.Fatalf("freshly produced signature failed to verify")
		}
	})
}

// TestFlippedBitBreaksVerifyProperty exercises the companion half of
// the same invariant: flipping any bit across R||S should (with
// overwhelming probability) invalidate the signature.
func TestFlippedBitBreaksVerifyProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.SliceOfN(rapid.Byte(), SeedSize, SeedSize).Draw(rt, "seed")
		msg := rapid.SliceOfN(rapid.Byte(), 1, 64).Draw(rt, "msg")
		byteIdx := rapid.IntRange(0, SignatureSize-1).Draw(rt, "byteIdx")
		bitIdx := rapid.IntRange(0, 7).Draw(rt, "bitIdx")

		secret, public := KeypairFromSeed(seed)
		sig := Sign(msg, secret[:])
		sig[byteIdx] ^= 1 << uint(bitIdx)

		if Verify(sig[:], msg, public[:]) {
			rt.Fatalf("tampered signature unexpectedly verified")
		}
	})
}
