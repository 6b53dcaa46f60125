// Copyright (c) 2025 The UMI core developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ed25519

// point is a group element on the twisted Edwards curve in extended
// projective coordinates (X, Y, Z, T) with x=X/Z, y=Y/Z, xy=T/Z, as
// used by every public Ed25519 reference implementation to make point
// addition a single unified formula (no separate doubling case).
type point [4]fieldElement

var (
	fieldZero = fieldElement{}
	fieldOne  = fieldElement{1}

	// curveD is the twisted Edwards curve parameter d = -121665/121666
	// mod p, precomputed in 16-limb form.
	curveD = fieldElement{
		0x78a3, 0x1359, 0x4dca, 0x75eb, 0xd8ab, 0x4141, 0x0a4d, 0x0070,
		0xe898, 0x7779, 0x4079, 0x8cc7, 0xfe73, 0x2b6f, 0x6cee, 0x5203,
	}
	// curveD2 is 2*d mod p, used directly in point addition.
	curveD2 = fieldElement{
		0xf159, 0x26b2, 0x9b94, 0xebd6, 0xb156, 0x8283, 0x149a, 0x00e0,
		0xd130, 0xeef3, 0x80f2, 0x198e, 0xfce7, 0x56df, 0xd9dc, 0x2406,
	}
	// baseX, baseY are the coordinates of the standard Ed25519 base
	// point B.
	baseX = fieldElement{
		0xd51a, 0x8f25, 0x2d60, 0xc956, 0xa7b2, 0x9525, 0xc760, 0x692c,
		0xdc5c, 0xfdd6, 0xe231, 0xc0a4, 0x53fe, 0xcd6e, 0x36d3, 0x2169,
	}
	baseY = fieldElement{
		0x6658, 0x6666, 0x6666, 0x6666, 0x6666, 0x6666, 0x6666, 0x6666,
		0x6666, 0x6666, 0x6666, 0x6666, 0x6666, 0x6666, 0x6666, 0x6666,
	}
	// sqrtM1 is a fixed square root of -1 mod p, needed to recover the
	// other candidate root during point decompression.
	sqrtM1 = fieldElement{
		0xa0b0, 0x4a0e, 0x1b27, 0xc4ee, 0xe478, 0xad2f, 0x1806, 0x2f43,
		0xd7a7, 0x3dfb, 0x0099, 0x2b4d, 0xdf0b, 0x4fc1, 0x2480, 0x2b83,
	}
)

// pointAdd computes p += q using the unified extended-coordinates
// addition formula (same code path for doubling and general
// addition), following the standard Ed25519 reference structure.
func pointAdd(p, q *point) {
	var a, b, c, d, e, f, g, h, t fieldElement

	fieldSub(&a, &p[1], &p[0])
	fieldSub(&t, &q[1], &q[0])
	fieldMul(&a, &a, &t)

	fieldAdd(&b, &p[0], &p[1])
	fieldAdd(&t, &q[0], &q[1])
	fieldMul(&b, &b, &t)

	fieldMul(&c, &p[3], &q[3])
	fieldMul(&c, &c, &curveD2)

	fieldMul(&d, &p[2], &q[2])
	fieldAdd(&d, &d, &d)

	fieldSub(&e, &b, &a)
	fieldSub(&f, &d, &c)
	fieldAdd(&g, &d, &c)
	fieldAdd(&h, &b, &a)

	fieldMul(&p[0], &e, &f)
	fieldMul(&p[1], &h, &g)
	fieldMul(&p[2], &g, &f)
	fieldMul(&p[3], &e, &h)
}

// pointSelect conditionally swaps every coordinate of p and q in
// constant time, the point-level counterpart of fieldSelect, used by
// the scalar-multiplication ladder below.
func pointSelect(p, q *point, b int64) {
	for i := 0; i < 4; i++ {
		fieldSelect(&p[i], &q[i], b)
	}
}

// scalarMult computes p = s*q for a 256-bit little-endian scalar s
// and an arbitrary (not necessarily base) point q, via a constant-
// time double-and-add ladder with a per-bit conditional swap — spec
// §4.2's "256-bit ladder with a constant-time conditional swap per
// bit". It runs both the identity-seeded accumulator and q+accumulator
// in lockstep so every bit does the same addition and doubling work
// regardless of its value.
func scalarMult(p *point, q *point, s []byte) {
	acc := point{fieldZero, fieldOne, fieldOne, fieldZero}
	work := *q

	for i := 255; i >= 0; i-- {
		b := int64((s[i/8] >> uint(i&7)) & 1)
		pointSelect(&acc, &work, b)
		pointAdd(&work, &acc)
		pointAdd(&acc, &acc)
		pointSelect(&acc, &work, b)
	}
	*p = acc
}

// scalarBase computes p = s*B for the fixed base point B.
func scalarBase(p *point, s []byte) {
	base := point{baseX, baseY, fieldOne, fieldElement{}}
	fieldMul(&base[3], &baseX, &baseY)
	scalarMult(p, &base, s)
}

// pointPack serializes a point to its canonical 32-byte compressed
// form: the y-coordinate with the sign of x folded into the top bit.
func pointPack(r *[32]byte, p *point) {
	var zInv, tx, ty fieldElement
	fieldInverse(&zInv, &p[2])
	fieldMul(&tx, &p[0], &zInv)
	fieldMul(&ty, &p[1], &zInv)
	packField(r, &ty)
	r[31] ^= xParity(&tx) << 7
}

func xParity(a *fieldElement) byte {
	var d [32]byte
	packField(&d, a)
	return d[0] & 1
}

// pointUnpackNegated decompresses a 32-byte encoded point into
// extended coordinates holding its NEGATION (-x, y). Verification
// needs -A (the negated public key) so that sB + h*(-A) computes the
// same combination as sB - hA without a dedicated subtraction. It
// validates the curve equation and returns false for any point that
// does not decompress to a valid curve point, matching spec §4.2's
// point-decompression rejection rule.
func pointUnpackNegated(r *point, enc []byte) bool {
	r[2] = fieldOne
	unpackField(&r[1], enc)

	var num, den, den2, den4, den6, t, chk fieldElement
	fieldSquare(&num, &r[1])
	fieldMul(&den, &num, &curveD)
	fieldSub(&num, &num, &r[2])
	fieldAdd(&den, &r[2], &den)

	fieldSquare(&den2, &den)
	fieldSquare(&den4, &den2)
	fieldMul(&den6, &den4, &den2)
	fieldMul(&t, &den6, &num)
	fieldMul(&t, &t, &den)

	fieldPow2523(&t, &t)
	fieldMul(&t, &t, &num)
	fieldMul(&t, &t, &den)
	fieldMul(&t, &t, &den)
	fieldMul(&r[0], &t, &den)

	fieldSquare(&chk, &r[0])
	fieldMul(&chk, &chk, &den)
	if !fieldEqual(&chk, &num) {
		fieldMul(&r[0], &r[0], &sqrtM1)
	}

	fieldSquare(&chk, &r[0])
	fieldMul(&chk, &chk, &den)
	if !fieldEqual(&chk, &num) {
		return false
	}

	if xParity(&r[0]) == enc[31]>>7 {
		fieldSub(&r[0], &fieldZero, &r[0])
	}

	fieldMul(&r[3], &r[0], &r[1])
	return true
}
