// Copyright (c) 2025 The UMI core developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package address

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/umi-top/umi-core-go/key"
)

func TestFromBytesRejectsWrongLength(t *testing.T) {
	_, err := FromBytes(make([]byte, 33))
	require.Error(t, err)
}

func TestGenesisBech32Vector(t *testing.T) {
	a, err := FromBytes(make([]byte, Length))
	require.NoError(t, err)

	s, err := a.Bech32()
	require.NoError(t, err)
	if s != "genesis1qqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqkxaddc" {
		t.Fatalf("got %v, want genesis1qqq...kxaddc\naddress bytes: %s", s, spew.Sdump(a.Bytes()))
	}
}

func TestFromPublicKeyZeroKeyBech32Vector(t *testing.T) {
	var pk key.PublicKey
	a := FromPublicKey(pk)

	s, err := a.Bech32()
	require.NoError(t, err)
	require.Equal(t, "umi1qqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqr5zcpj", s)
}

func TestSecretKeyZeroSeedAddressVector(t *testing.T) {
	sk, err := key.SecretKeyFromSeed(make([]byte, 32))
	require.NoError(t, err)

	a := FromSecretKey(sk)
	s, err := a.Bech32()
	require.NoError(t, err)
	require.Equal(t, "umi18d4z00xwk6jz6c4r4rgz5mcdwdjny9thrh3y8f36cpy2rz6emg5s6rxnf6", s)
}

func TestFromBech32RoundTripsExactString(t *testing.T) {
	const s = "aaa1qqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqq48c9jj"
	a, err := FromBech32(s)
	require.NoError(t, err)

	got, err := a.Bech32()
	require.NoError(t, err)
	require.Equal(t, s, got)
}

func TestSetVersionMasksHighBitAndValidates(t *testing.T) {
	a := New()
	require.NoError(t, a.SetVersion(21929|0x8000))
	require.Equal(t, uint16(21929), a.Version())

	require.Error(t, a.SetVersion(1)) // 1 has no valid 3-letter decomposition
}

func TestBytesRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		letterA := rapid.IntRange(1, 26).Draw(rt, "a")
		letterB := rapid.IntRange(1, 26).Draw(rt, "b")
		letterC := rapid.IntRange(1, 26).Draw(rt, "c")
		version := uint16(letterA*1024 + letterB*32 + letterC)
		keyBytes := rapid.SliceOfN(rapid.Byte(), 32, 32).Draw(rt, "key")

		raw := append([]byte{byte(version >> 8), byte(version)}, keyBytes...)
		a, err := FromBytes(raw)
		if err != nil {
			rt.Fatalf("FromBytes: %v", err)
		}

		s, err := a.Bech32()
		if err != nil {
			rt.Fatalf("Bech32: %v", err)
		}

		roundTripped, err := FromBech32(s)
		if err != nil {
			rt.Fatalf("FromBech32: %v", err)
		}
		if !a.Equal(roundTripped) {
			rt.Fatalf("round trip mismatch")
		}
	})
}
