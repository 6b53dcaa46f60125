// Copyright (c) 2025 The UMI core developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"crypto/sha256"
	"testing"

	"pgregory.net/rapid"

	"github.com/umi-top/umi-core-go/address"
	"github.com/umi-top/umi-core-go/key"
)

func TestBasicSignVerifyRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.SliceOfN(rapid.Byte(), 32, 32).Draw(rt, "seed")
		sk, err := key.SecretKeyFromSeed(seed)
		if err != nil {
			rt.Fatalf("SecretKeyFromSeed: %v", err)
		}
		sender := address.FromSecretKey(sk)

		var recipientBytes [32]byte
		copy(recipientBytes[:], rapid.SliceOfN(rapid.Byte(), 32, 32).Draw(rt, "recipient_key"))
		recipientKey, err := key.PublicKeyFromBytes(recipientBytes[:])
		if err != nil {
			rt.Fatalf("PublicKeyFromBytes: %v", err)
		}
		recipient := address.FromPublicKey(recipientKey)
		if recipient.Equal(sender) {
			rt.Skip("recipient collided with sender")
		}

		value := uint64(rapid.Int64Range(1, (1<<53)-1).Draw(rt, "value"))
		nonce := uint64(rapid.Int64Range(0, (1<<53)-1).Draw(rt, "nonce"))

		tx := New()
		if err := tx.SetVersion(Basic); err != nil {
			rt.Fatalf("SetVersion: %v", err)
		}
		if err := tx.SetSender(sender); err != nil {
			rt.Fatalf("SetSender: %v", err)
		}
		if err := tx.SetRecipient(recipient); err != nil {
			rt.Fatalf("SetRecipient: %v", err)
		}
		if err := tx.SetValue(value); err != nil {
			rt.Fatalf("SetValue: %v", err)
		}
		if err := tx.SetNonce(nonce); err != nil {
			rt.Fatalf("SetNonce: %v", err)
		}
		if _, err := tx.Sign(sk); err != nil {
			rt.Fatalf("Sign: %v", err)
		}

		ok, err := tx.Verify()
		if err != nil {
			rt.Fatalf("Verify: %v", err)
		}
		if !ok {
			rt.Fatalf("expected valid signature to verify")
		}

		round, err := FromBytes(tx.Bytes())
		if err != nil {
			rt.Fatalf("FromBytes: %v", err)
		}
		ok2, err := round.Verify()
		if err != nil {
			rt.Fatalf("Verify after round trip: %v", err)
		}
		if !ok2 {
			rt.Fatalf("round-tripped transaction failed to verify")
		}
	})
}

func TestHashMatchesSha256OfBytesProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		raw := rapid.SliceOfN(rapid.Byte(), Length, Length).Draw(rt, "raw")
		tx, err := FromBytes(raw)
		if err != nil {
			rt.Fatalf("FromBytes: %v", err)
		}
		h1 := tx.Hash()
		h2 := sha256.Sum256(tx.Bytes())
		if h1 != h2 {
			rt.Fatalf("Hash does not match SHA-256 of Bytes")
		}
	})
}
