// Copyright (c) 2025 The UMI core developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bech32

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestEncodeKnownVectors(t *testing.T) {
	cases := []struct {
		name string
		addr []byte
		want string
	}{
		{
			name: "genesis zero key",
			addr: make([]byte, 34),
			want: "genesis1qqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqkxaddc",
		},
		{
			name: "umi zero key",
			addr: append([]byte{0x55, 0xa9}, make([]byte, 32)...),
			want: "umi1qqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqr5zcpj",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := Encode(c.addr)
			require.NoError(t, err)
			require.Equal(t, c.want, got)
		})
	}
}

func TestDecodeRoundTripsToSameString(t *testing.T) {
	const s = "aaa1qqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqq48c9jj"

	addr, err := Decode(s)
	require.NoError(t, err)
	require.Len(t, addr, 34)

	got, err := Encode(addr)
	require.NoError(t, err)
	require.Equal(t, s, got)
}

func TestDecodeRejectsMixedCase(t *testing.T) {
	_, err := Decode("aaA1qqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqq48c9jj")
	require.Error(t, err)
}

func TestDecodeRejectsBadChecksum(t *testing.T) {
	_, err := Decode("aaa1qqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqq48c9jk")
	require.Error(t, err)
}

func TestDecodeRejectsMissingSeparator(t *testing.T) {
	_, err := Decode("aaaqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqq48c9jj")
	require.Error(t, err)
}

func TestRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		a := rapid.IntRange(1, 26).Draw(rt, "a")
		b := rapid.IntRange(1, 26).Draw(rt, "b")
		c := rapid.IntRange(1, 26).Draw(rt, "c")
		version := uint16(a*1024 + b*32 + c)
		key := rapid.SliceOfN(rapid.Byte(), 32, 32).Draw(rt, "key")

		addr := append([]byte{byte(version >> 8), byte(version)}, key...)

		s, err := Encode(addr)
		if err != nil {
			rt.Fatalf("encode: %v", err)
		}

		got, err := Decode(s)
		if err != nil {
			rt.Fatalf("decode: %v", err)
		}
		if string(got) != string(addr) {
			rt.Fatalf("round trip mismatch: got %x want %x", got, addr)
		}
	})
}
