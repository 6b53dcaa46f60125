// Copyright (c) 2025 The UMI core developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package hash implements FIPS 180-4 SHA-256 as a standalone,
// dependency-free block compressor. It backs the transaction
// fingerprint (transaction.Transaction.Hash) and seed normalization
// (key.SecretKey, via SHA-256 on oversized or undersized seeds).
package hash

import "encoding/binary"

// Size is the length in bytes of a SHA-256 digest.
const Size = 32

const blockSize = 64

var k = [64]uint32{
	0x428a2f98, 0x71374491, 0xb5c0fbcf, 0xe9b5dba5, 0x3956c25b, 0x59f111f1, 0x923f82a4, 0xab1c5ed5,
	0xd807aa98, 0x12835b01, 0x243185be, 0x550c7dc3, 0x72be5d74, 0x80deb1fe, 0x9bdc06a7, 0xc19bf174,
	0xe49b69c1, 0xefbe4786, 0x0fc19dc6, 0x240ca1cc, 0x2de92c6f, 0x4a7484aa, 0x5cb0a9dc, 0x76f988da,
	0x983e5152, 0xa831c66d, 0xb00327c8, 0xbf597fc7, 0xc6e00bf3, 0xd5a79147, 0x06ca6351, 0x14292967,
	0x27b70a85, 0x2e1b2138, 0x4d2c6dfc, 0x53380d13, 0x650a7354, 0x766a0abb, 0x81c2c92e, 0x92722c85,
	0xa2bfe8a1, 0xa81a664b, 0xc24b8b70, 0xc76c51a3, 0xd192e819, 0xd6990624, 0xf40e3585, 0x106aa070,
	0x19a4c116, 0x1e376c08, 0x2748774c, 0x34b0bcb5, 0x391c0cb3, 0x4ed8aa4a, 0x5b9cca4f, 0x682e6ff3,
	0x748f82ee, 0x78a5636f, 0x84c87814, 0x8cc70208, 0x90befffa, 0xa4506ceb, 0xbef9a3f7, 0xc67178f2,
}

var initH = [8]uint32{
	0x6a09e667, 0xbb67ae85, 0x3c6ef372, 0xa54ff53a,
	0x510e527f, 0x9b05688c, 0x1f83d9ab, 0x5be0cd19,
}

func rotr(x uint32, n uint) uint32 { return x>>n | x<<(32-n) }

// Sum256 returns the SHA-256 digest of b.
func Sum256(b []byte) [Size]byte {
	h := initH

	padded := pad(b)
	var w [64]uint32
	for off := 0; off < len(padded); off += blockSize {
		block := padded[off : off+blockSize]
		for i := 0; i < 16; i++ {
			w[i] = binary.BigEndian.Uint32(block[i*4 : i*4+4])
		}
		for i := 16; i < 64; i++ {
			s0 := rotr(w[i-15], 7) ^ rotr(w[i-15], 18) ^ (w[i-15] >> 3)
			s1 := rotr(w[i-2], 17) ^ rotr(w[i-2], 19) ^ (w[i-2] >> 10)
			w[i] = w[i-16] + s0 + w[i-7] + s1
		}

		a, bb, c, d, e, f, g, hh := h[0], h[1], h[2], h[3], h[4], h[5], h[6], h[7]
		for i := 0; i < 64; i++ {
			s1 := rotr(e, 6) ^ rotr(e, 11) ^ rotr(e, 25)
			ch := (e & f) ^ (^e & g)
			t1 := hh + s1 + ch + k[i] + w[i]
			s0 := rotr(a, 2) ^ rotr(a, 13) ^ rotr(a, 22)
			maj := (a & bb) ^ (a & c) ^ (bb & c)
			t2 := s0 + maj

			hh, g, f, e = g, f, e, d+t1
			d, c, bb, a = c, bb, a, t1+t2
		}
		h[0] += a
		h[1] += bb
		h[2] += c
		h[3] += d
		h[4] += e
		h[5] += f
		h[6] += g
		h[7] += hh
	}

	var out [Size]byte
	for i, hv := range h {
		binary.BigEndian.PutUint32(out[i*4:i*4+4], hv)
	}
	return out
}

// pad appends the FIPS 180-4 message padding: a single 1 bit, zero
// bits until the length is 56 mod 64, then the original bit length as
// a big-endian uint64.
func pad(b []byte) []byte {
	msgLen := uint64(len(b)) * 8

	padLen := blockSize - (len(b)+9)%blockSize
	if padLen == blockSize {
		padLen = 0
	}

	out := make([]byte, 0, len(b)+1+padLen+8)
	out = append(out, b...)
	out = append(out, 0x80)
	out = append(out, make([]byte, padLen)...)

	var lenBuf [8]byte
	binary.BigEndian.PutUint64(lenBuf[:], msgLen)
	out = append(out, lenBuf[:]...)
	return out
}
