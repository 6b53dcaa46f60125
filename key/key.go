// Copyright (c) 2025 The UMI core developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package key implements the PublicKey and SecretKey value objects:
// thin, length-checked wrappers around the byte buffers package
// ed25519 operates on, per spec §4.8.
package key

import (
	"github.com/umi-top/umi-core-go/ed25519"
	"github.com/umi-top/umi-core-go/errkind"
	"github.com/umi-top/umi-core-go/hash"
)

const component = "key"

// maxSeedLength bounds the caller-supplied seed accepted by
// SecretKeyFromSeed before it is hashed down to 32 bytes.
const maxSeedLength = 128

// PublicKey is a 32-byte Ed25519 public key.
type PublicKey [ed25519.PublicKeySize]byte

// SecretKey is the 64-byte combined Ed25519 secret key: 32 bytes of
// seed-derived private material followed by the 32-byte public key.
type SecretKey [ed25519.SecretKeySize]byte

// PublicKeyFromBytes wraps a 32-byte buffer as a PublicKey.
func PublicKeyFromBytes(b []byte) (PublicKey, error) {
	var pk PublicKey
	if len(b) != ed25519.PublicKeySize {
		return pk, errkind.New(errkind.InvalidLength, component, "public key must be exactly 32 bytes")
	}
	copy(pk[:], b)
	return pk, nil
}

// Bytes returns a defensive copy of the public key's raw bytes.
func (pk PublicKey) Bytes() []byte {
	out := make([]byte, ed25519.PublicKeySize)
	copy(out, pk[:])
	return out
}

// VerifySignature checks a detached signature over message against
// this public key.
func (pk PublicKey) VerifySignature(sig, message []byte) bool {
	return ed25519.Verify(sig, message, pk[:])
}

// SecretKeyFromBytes wraps a 64-byte buffer as a SecretKey.
func SecretKeyFromBytes(b []byte) (SecretKey, error) {
	var sk SecretKey
	if len(b) != ed25519.SecretKeySize {
		return sk, errkind.New(errkind.InvalidLength, component, "secret key must be exactly 64 bytes")
	}
	copy(sk[:], b)
	return sk, nil
}

// SecretKeyFromSeed derives a SecretKey from a caller-supplied seed,
// per spec §4.8: a 32-byte seed is used directly; any other length up
// to 128 bytes is first normalized via SHA-256.
func SecretKeyFromSeed(seed []byte) (SecretKey, error) {
	var sk SecretKey

	normalized := seed
	if len(seed) != ed25519.SeedSize {
		if len(seed) > maxSeedLength {
			return sk, errkind.New(errkind.InvalidLength, component, "seed must be at most 128 bytes")
		}
		digest := hash.Sum256(seed)
		normalized = digest[:]
	}

	secret, _ := ed25519.KeypairFromSeed(normalized)
	sk = SecretKey(secret)
	return sk, nil
}

// PublicKey returns the public half of this secret key.
func (sk SecretKey) PublicKey() PublicKey {
	return PublicKey(ed25519.PublicFromSecret(sk[:]))
}

// Sign produces a detached signature over message.
func (sk SecretKey) Sign(message []byte) []byte {
	sig := ed25519.Sign(message, sk[:])
	return sig[:]
}

// Bytes returns a defensive copy of the secret key's raw bytes.
func (sk SecretKey) Bytes() []byte {
	out := make([]byte, ed25519.SecretKeySize)
	copy(out, sk[:])
	return out
}
