// Copyright (c) 2025 The UMI core developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ed25519

// groupOrder is L, the order of the Ed25519 base point, as 32
// little-endian bytes: L = 2^252 + 27742317777372353535851937790883648493.
var groupOrder = [32]int64{
	0xed, 0xd3, 0xf5, 0x5c, 0x1a, 0x63, 0x12, 0x58,
	0xd6, 0x9c, 0xf7, 0xa2, 0xde, 0xf9, 0xde, 0x14,
	0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0x10,
}

// reduceModL reduces the little-endian multi-limb integer x (treated
// as sum x[i]*256^i) modulo L in place, following the standard
// schoolbook reduction that subtracts shifted multiples of L from the
// top limbs down before folding the remainder into 32 bytes.
func reduceModL(r *[32]byte, x []int64) {
	for i := 63; i >= 32; i-- {
		var carry int64
		j := i - 32
		for ; j < i-12; j++ {
			x[j] += carry - 16*x[i]*groupOrder[j-(i-32)]
			carry = (x[j] + 128) >> 8
			x[j] -= carry << 8
		}
		x[j] += carry
		x[i] = 0
	}

	var carry int64
	for j := 0; j < 32; j++ {
		x[j] += carry - (x[31]>>4)*groupOrder[j]
		carry = x[j] >> 8
		x[j] &= 255
	}
	for j := 0; j < 32; j++ {
		x[j] -= carry * groupOrder[j]
	}
	for i := 0; i < 32; i++ {
		x[i+1] += x[i] >> 8
		r[i] = byte(x[i] & 255)
	}
}

// reduceScalar reduces a 64-byte little-endian integer (the raw
// SHA-512 output used throughout RFC 8032) modulo L, returning the
// canonical 32-byte scalar.
func reduceScalar(h [64]byte) [32]byte {
	x := make([]int64, 64)
	for i := 0; i < 64; i++ {
		x[i] = int64(h[i])
	}
	var out [32]byte
	reduceModL(&out, x)
	return out
}

// scalarMulAdd computes (a*b + c) mod L for three 32-byte little-
// endian scalars, the combination step signing needs to fold the
// nonce, the challenge hash, and the clamped private scalar into the
// signature's S component.
func scalarMulAdd(a, b, c [32]byte) [32]byte {
	x := make([]int64, 64)
	for i := 0; i < 32; i++ {
		x[i] = int64(c[i])
	}
	for i := 0; i < 32; i++ {
		for j := 0; j < 32; j++ {
			x[i+j] += int64(a[i]) * int64(b[j])
		}
	}
	var out [32]byte
	reduceModL(&out, x)
	return out
}
