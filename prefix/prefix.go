// Copyright (c) 2025 The UMI core developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package prefix implements the bidirectional mapping between a
// 3-lowercase-letter address/structure namespace prefix (or the
// literal "genesis") and the 16-bit version integer it packs into,
// per spec §4.3.
package prefix

import "github.com/umi-top/umi-core-go/errkind"

const component = "prefix"

// Genesis is the reserved version for the "genesis" namespace.
const Genesis uint16 = 0

// ToVersion maps a prefix string to its packed 16-bit version. The
// literal "genesis" maps to 0; any other input must be exactly three
// ASCII lowercase letters, each mapped a=1..z=26 and packed as
// a*1024 + b*32 + c.
func ToVersion(s string) (uint16, error) {
	if s == "genesis" {
		return Genesis, nil
	}

	if len(s) != 3 {
		return 0, errkind.New(errkind.InvalidPrefix, component, "prefix must be exactly 3 letters or \"genesis\"")
	}

	var letters [3]uint16
	for i := 0; i < 3; i++ {
		c := s[i]
		if c < 'a' || c > 'z' {
			return 0, errkind.New(errkind.InvalidPrefix, component, "prefix letters must be lowercase a-z")
		}
		letters[i] = uint16(c-'a') + 1
	}

	return letters[0]*1024 + letters[1]*32 + letters[2], nil
}

// ToPrefix maps a packed 16-bit version back to its prefix string. 0
// maps to "genesis"; any other version must have its high bit clear
// and decompose into three 5-bit fields each in 1..26.
func ToPrefix(v uint16) (string, error) {
	if v == Genesis {
		return "genesis", nil
	}

	if v&0x8000 != 0 {
		return "", errkind.New(errkind.InvalidPrefix, component, "version's high bit must be zero")
	}

	a := (v >> 10) & 31
	b := (v >> 5) & 31
	c := v & 31

	letters := [3]uint16{a, b, c}
	out := make([]byte, 3)
	for i, l := range letters {
		if l < 1 || l > 26 {
			return "", errkind.New(errkind.InvalidPrefix, component, "version does not decode to three a-z letters")
		}
		out[i] = byte(l-1) + 'a'
	}

	return string(out), nil
}
