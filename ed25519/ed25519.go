// Copyright (c) 2025 The UMI core developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ed25519 implements RFC 8032 Ed25519 (the SHA-512 variant,
// no context string, no prehash) entirely from scratch over a
// portable 16-limb field-element representation — spec §4.2. It
// deliberately does not delegate to crypto/ed25519 or
// golang.org/x/crypto/ed25519: the point of this package is the
// from-scratch, byte-exact, constant-time-discipline primitive the
// rest of the module's wire format depends on.
package ed25519

import "github.com/umi-top/umi-core-go/sha512"

const (
	// SeedSize is the length in bytes of an Ed25519 seed.
	SeedSize = 32
	// PublicKeySize is the length in bytes of an Ed25519 public key.
	PublicKeySize = 32
	// SecretKeySize is the length in bytes of the combined secret-key
	// form: 32 bytes of seed-derived private material followed by the
	// 32-byte public key.
	SecretKeySize = 64
	// SignatureSize is the length in bytes of a detached signature.
	SignatureSize = 64
)

// zero overwrites b with zero bytes. Used to clear scalar scratch
// space on return from Sign (spec §5); not guaranteed against
// compiler reordering, so not a correctness primitive.
func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// clampScalar applies the RFC 8032 clamping to the low 32 bytes of a
// SHA-512 digest: clear the bottom 3 bits of byte 0 (forcing a
// multiple of the cofactor 8), clear the top bit and set bit 254 of
// byte 31 (fixing the scalar's bit length for the ladder).
func clampScalar(d *[64]byte) {
	d[0] &= 248
	d[31] &= 127
	d[31] |= 64
}

// KeypairFromSeed derives the 64-byte secret key and 32-byte public
// key for a 32-byte seed: clamp SHA-512(seed)[0:32] into a scalar,
// multiply the base point by it to get the public key, and
// concatenate seed||public as the secret key (spec §4.2, §4.8).
func KeypairFromSeed(seed []byte) (secret [SecretKeySize]byte, public [PublicKeySize]byte) {
	h := sha512.Sum512(seed)
	clampScalar(&h)

	var scalar [32]byte
	copy(scalar[:], h[:32])

	var p point
	scalarBase(&p, scalar[:])
	pointPack(&public, &p)

	copy(secret[:32], seed)
	copy(secret[32:], public[:])
	return secret, public
}

// PublicFromSecret returns the trailing 32 bytes of a 64-byte secret
// key, i.e. the public key half of the combined form.
func PublicFromSecret(secret []byte) [PublicKeySize]byte {
	var pub [PublicKeySize]byte
	copy(pub[:], secret[32:64])
	return pub
}

// Sign produces a detached 64-byte Ed25519 signature over message
// using the 64-byte combined secret key, per RFC 8032 §5.1.6.
func Sign(message, secret []byte) [SignatureSize]byte {
	seed := secret[:32]
	public := secret[32:64]

	h := sha512.Sum512(seed)
	clampScalar(&h)
	defer zero(h[:])

	var scalar [32]byte
	copy(scalar[:], h[:32])
	defer zero(scalar[:])

	prefixed := make([]byte, 0, 32+len(message))
	prefixed = append(prefixed, h[32:64]...)
	prefixed = append(prefixed, message...)
	rHash := sha512.Sum512(prefixed)
	r := reduceScalar(rHash)

	var rp point
	scalarBase(&rp, r[:])
	var rEnc [32]byte
	pointPack(&rEnc, &rp)

	challenge := make([]byte, 0, 64+len(message))
	challenge = append(challenge, rEnc[:]...)
	challenge = append(challenge, public...)
	challenge = append(challenge, message...)
	hHash := sha512.Sum512(challenge)
	hScalar := reduceScalar(hHash)

	s := scalarMulAdd(hScalar, scalar, r)

	var sig [SignatureSize]byte
	copy(sig[:32], rEnc[:])
	copy(sig[32:], s[:])
	return sig
}

// Verify checks a detached Ed25519 signature over message against a
// 32-byte public key, returning false — never an error — for any
// malformed or invalid input, per spec §4.2.
func Verify(sig, message, public []byte) bool {
	if len(sig) != SignatureSize || len(public) != PublicKeySize {
		return false
	}

	var negA point
	if !pointUnpackNegated(&negA, public) {
		return false
	}

	challenge := make([]byte, 0, 64+len(message))
	challenge = append(challenge, sig[:32]...)
	challenge = append(challenge, public...)
	challenge = append(challenge, message...)
	hHash := sha512.Sum512(challenge)
	hScalar := reduceScalar(hHash)

	var p, q point
	scalarMult(&p, &negA, hScalar[:])
	var sCopy [32]byte
	copy(sCopy[:], sig[32:64])
	scalarBase(&q, sCopy[:])
	pointAdd(&p, &q)

	var check [32]byte
	pointPack(&check, &p)

	return constantTimeEqual(sig[:32], check[:])
}
