// Copyright (c) 2025 The UMI core developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package address implements the 34-byte Address record: a 2-byte
// big-endian version word followed by a 32-byte public key, per spec
// §3 and §4.6. It is grounded on the teacher's own address package
// (addresses.ShellAddress and its Taproot/P2SH/P2PKH constructors),
// generalized from three address kinds down to this protocol's single
// fixed layout.
package address

import (
	"github.com/umi-top/umi-core-go/bech32"
	"github.com/umi-top/umi-core-go/errkind"
	"github.com/umi-top/umi-core-go/key"
	"github.com/umi-top/umi-core-go/prefix"
)

const component = "address"

// Length is the size in bytes of an encoded address.
const Length = 34

// Genesis is the reserved version for the genesis namespace.
const Genesis uint16 = 0

// Umi is the canonical mainnet namespace version, 'u'*32² + 'm'*32 + 'i'
// in the base-27 letter scheme (a=1).
const Umi uint16 = 21929

// Address is a 34-byte value type: version (2 bytes, big-endian, high
// bit always zero) followed by a 32-byte public key.
type Address struct {
	buf [Length]byte
}

// New allocates an address pre-initialized with version Umi and a
// zero public key, the same default the teacher's address
// constructors apply before the caller fills in key material.
func New() Address {
	var a Address
	a.buf[0] = byte(Umi >> 8)
	a.buf[1] = byte(Umi & 0xff)
	return a
}

// FromBytes copies a raw 34-byte buffer into an Address with no
// validation beyond length.
func FromBytes(b []byte) (Address, error) {
	var a Address
	if len(b) != Length {
		return a, errkind.New(errkind.InvalidLength, component, "address must be exactly 34 bytes")
	}
	copy(a.buf[:], b)
	return a, nil
}

// FromBech32 parses and validates a Bech32-encoded address string.
func FromBech32(s string) (Address, error) {
	var a Address
	raw, err := bech32.Decode(s)
	if err != nil {
		return a, err
	}
	copy(a.buf[:], raw)
	return a, nil
}

// FromPublicKey constructs an address with the default Umi version
// and the given public key.
func FromPublicKey(pk key.PublicKey) Address {
	a := New()
	copy(a.buf[2:], pk[:])
	return a
}

// FromSecretKey constructs an address with the default Umi version
// and the public key derived from sk.
func FromSecretKey(sk key.SecretKey) Address {
	return FromPublicKey(sk.PublicKey())
}

// Version returns the address's 2-byte version word.
func (a Address) Version() uint16 {
	return uint16(a.buf[0])<<8 | uint16(a.buf[1])
}

// SetVersion validates v through the prefix codec and writes it,
// masking the high bit to zero.
func (a *Address) SetVersion(v uint16) error {
	v &^= 0x8000
	if _, err := prefix.ToPrefix(v); err != nil {
		return err
	}
	a.buf[0] = byte(v >> 8)
	a.buf[1] = byte(v)
	return nil
}

// Prefix returns the address's namespace prefix string.
func (a Address) Prefix() (string, error) {
	return prefix.ToPrefix(a.Version())
}

// SetPrefix resolves s to a version via the prefix codec and writes it.
func (a *Address) SetPrefix(s string) error {
	v, err := prefix.ToVersion(s)
	if err != nil {
		return err
	}
	return a.SetVersion(v)
}

// PublicKey returns the address's 32-byte public key.
func (a Address) PublicKey() key.PublicKey {
	var pk key.PublicKey
	copy(pk[:], a.buf[2:])
	return pk
}

// SetPublicKey overwrites the address's public key bytes.
func (a *Address) SetPublicKey(pk key.PublicKey) {
	copy(a.buf[2:], pk[:])
}

// Bech32 renders the address as its Bech32 string.
func (a Address) Bech32() (string, error) {
	return bech32.Encode(a.buf[:])
}

// SetBech32 parses s and overwrites this address with the result.
func (a *Address) SetBech32(s string) error {
	decoded, err := FromBech32(s)
	if err != nil {
		return err
	}
	a.buf = decoded.buf
	return nil
}

// Bytes returns a defensive copy of the address's 34-byte buffer.
func (a Address) Bytes() []byte {
	out := make([]byte, Length)
	copy(out, a.buf[:])
	return out
}

// Equal reports whether two addresses hold identical bytes.
func (a Address) Equal(b Address) bool {
	return a.buf == b.buf
}
