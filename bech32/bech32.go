// Copyright (c) 2025 The UMI core developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package bech32 implements BIP-173 Bech32 (not Bech32m) specialized
// to this module's 34-byte address layout: the human-readable part is
// not a free-form string but the 2-byte version prefix from package
// prefix, per spec §4.4. The exported shape (Encode/Decode) mirrors
// the de facto standard Go bech32 package API
// (github.com/btcsuite/btcd/btcutil/bech32), the house idiom this
// module's teacher imports for its own address encoding.
package bech32

import (
	"strings"

	"github.com/umi-top/umi-core-go/errkind"
	"github.com/umi-top/umi-core-go/prefix"
)

const component = "bech32"

const charset = "qpzry9x8gf2tvdw0s3jn54khce6mua7l"

const separator = '1'

var generator = [5]uint32{0x3b6a57b2, 0x26508e6d, 0x1ea119fa, 0x3d4233dd, 0x2a1462b3}

var charsetIndex = func() map[byte]int {
	m := make(map[byte]int, len(charset))
	for i := 0; i < len(charset); i++ {
		m[charset[i]] = i
	}
	return m
}()

func polymod(values []int) uint32 {
	chk := uint32(1)
	for _, v := range values {
		top := chk >> 25
		chk = (chk&0x1ffffff)<<5 ^ uint32(v)
		for i := 0; i < 5; i++ {
			if (top>>uint(i))&1 == 1 {
				chk ^= generator[i]
			}
		}
	}
	return chk
}

func hrpExpand(hrp string) []int {
	out := make([]int, 0, len(hrp)*2+1)
	for i := 0; i < len(hrp); i++ {
		out = append(out, int(hrp[i])>>5)
	}
	out = append(out, 0)
	for i := 0; i < len(hrp); i++ {
		out = append(out, int(hrp[i])&31)
	}
	return out
}

func createChecksum(hrp string, data []int) []int {
	values := append(hrpExpand(hrp), data...)
	values = append(values, 0, 0, 0, 0, 0, 0)
	mod := polymod(values) ^ 1
	out := make([]int, 6)
	for i := 0; i < 6; i++ {
		out[i] = int(mod>>uint(5*(5-i))) & 31
	}
	return out
}

func verifyChecksum(hrp string, data []int) bool {
	return polymod(append(hrpExpand(hrp), data...)) == 1
}

// convertBits regroups a slice of integers between bit widths frombits
// and tobits, optionally appending a final short group with zero
// padding. It rejects non-zero padding bits and excess padding groups
// on the shrinking direction, matching spec §4.4's decode rule.
func convertBits(data []byte, frombits, tobits uint, pad bool) ([]byte, error) {
	var acc uint32
	var bits uint
	maxv := uint32(1<<tobits) - 1
	var out []byte

	for _, b := range data {
		if uint32(b)>>frombits != 0 {
			return nil, errkind.New(errkind.InvalidBech32, component, "input byte exceeds frombits width")
		}
		acc = acc<<frombits | uint32(b)
		bits += frombits
		for bits >= tobits {
			bits -= tobits
			out = append(out, byte((acc>>bits)&maxv))
		}
	}

	if pad {
		if bits > 0 {
			out = append(out, byte((acc<<(tobits-bits))&maxv))
		}
	} else if bits >= frombits || ((acc<<(tobits-bits))&maxv) != 0 {
		return nil, errkind.New(errkind.InvalidBech32, component, "non-zero padding in converted data")
	}

	return out, nil
}

// Encode renders a 34-byte address (2-byte version, 32-byte public
// key) as its Bech32 string: version decodes to a human-readable
// prefix via package prefix, the 32 key bytes convert to 5-bit groups,
// and a 6-character checksum is appended.
func Encode(addr []byte) (string, error) {
	if len(addr) != 34 {
		return "", errkind.New(errkind.InvalidLength, component, "address must be exactly 34 bytes")
	}

	version := uint16(addr[0])<<8 | uint16(addr[1])
	hrp, err := prefix.ToPrefix(version)
	if err != nil {
		return "", err
	}

	converted, err := convertBits(addr[2:], 8, 5, true)
	if err != nil {
		return "", err
	}

	data := make([]int, len(converted))
	for i, b := range converted {
		data[i] = int(b)
	}
	checksum := createChecksum(hrp, data)

	var sb strings.Builder
	sb.WriteString(hrp)
	sb.WriteByte(separator)
	for _, d := range data {
		sb.WriteByte(charset[d])
	}
	for _, d := range checksum {
		sb.WriteByte(charset[d])
	}
	return sb.String(), nil
}

// Decode parses a Bech32 string back into its 34-byte address form,
// validating case, separator placement, checksum, and padding per
// spec §4.4.
func Decode(s string) ([]byte, error) {
	if strings.ToLower(s) != s && strings.ToUpper(s) != s {
		return nil, errkind.New(errkind.InvalidBech32, component, "mixed case is not allowed")
	}
	lower := strings.ToLower(s)

	sepIdx := strings.LastIndexByte(lower, separator)
	if sepIdx < 1 {
		return nil, errkind.New(errkind.InvalidBech32, component, "missing or misplaced separator")
	}

	hrp := lower[:sepIdx]
	dataPart := lower[sepIdx+1:]
	if len(dataPart) < 6 {
		return nil, errkind.New(errkind.InvalidBech32, component, "data part shorter than the checksum")
	}

	data := make([]int, len(dataPart))
	for i := 0; i < len(dataPart); i++ {
		idx, ok := charsetIndex[dataPart[i]]
		if !ok {
			return nil, errkind.New(errkind.InvalidBech32, component, "data part contains a character outside the bech32 alphabet")
		}
		data[i] = idx
	}

	if !verifyChecksum(hrp, data) {
		return nil, errkind.New(errkind.InvalidBech32, component, "checksum mismatch")
	}

	payload := data[:len(data)-6]
	raw := make([]byte, len(payload))
	for i, d := range payload {
		raw[i] = byte(d)
	}

	keyBytes, err := convertBits(raw, 5, 8, false)
	if err != nil {
		return nil, err
	}
	if len(keyBytes) != 32 {
		return nil, errkind.New(errkind.InvalidLength, component, "decoded key must be exactly 32 bytes")
	}

	version, err := prefix.ToVersion(hrp)
	if err != nil {
		return nil, err
	}

	addr := make([]byte, 0, 34)
	addr = append(addr, byte(version>>8), byte(version))
	addr = append(addr, keyBytes...)
	return addr, nil
}
