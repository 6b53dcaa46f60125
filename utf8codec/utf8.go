// Copyright (c) 2025 The UMI core developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package utf8codec implements a self-contained UTF-8 encoder/decoder
// over Unicode scalar values, independent of any platform transcoder,
// per spec §4.5. The transaction package uses this instead of the
// standard library's unicode/utf8 so that name encoding/decoding is
// traceable as an explicit component of this module rather than an
// implicit stdlib dependency.
package utf8codec

import "github.com/umi-top/umi-core-go/errkind"

const component = "utf8codec"

const (
	surrogateHighStart = 0xD800
	surrogateHighEnd   = 0xDBFF
	surrogateLowStart  = 0xDC00
	surrogateLowEnd    = 0xDFFF
	replacementChar    = 0xFFFD
)

// Encode converts a slice of Unicode code points (scalar values, with
// UTF-16 surrogate pairs already combined by the caller or present as
// raw code points 0..0x10FFFF) into canonical UTF-8 bytes.
func Encode(codepoints []rune) []byte {
	out := make([]byte, 0, len(codepoints)*2)
	for _, cp := range codepoints {
		out = appendRune(out, cp)
	}
	return out
}

func appendRune(out []byte, cp rune) []byte {
	switch {
	case cp < 0x80:
		return append(out, byte(cp))
	case cp < 0x800:
		return append(out,
			byte(0xC0|cp>>6),
			byte(0x80|cp&0x3F),
		)
	case cp < 0x10000:
		return append(out,
			byte(0xE0|cp>>12),
			byte(0x80|(cp>>6)&0x3F),
			byte(0x80|cp&0x3F),
		)
	default:
		return append(out,
			byte(0xF0|cp>>18),
			byte(0x80|(cp>>12)&0x3F),
			byte(0x80|(cp>>6)&0x3F),
			byte(0x80|cp&0x3F),
		)
	}
}

// EncodeString is a convenience wrapper encoding a Go string's
// decoded runes, reconstructing supplementary-plane code points from
// any surrogate pairs present in the input's UTF-16 view is not
// needed here since Go strings are already scalar-value sequences;
// EncodeUTF16 below handles the surrogate-pair input case described
// in spec §4.5.
func EncodeString(s string) []byte {
	return Encode([]rune(s))
}

// EncodeUTF16 encodes a sequence of UTF-16 code units, reconstructing
// surrogate pairs into their combined supplementary-plane scalar
// value before encoding, per spec §4.5's "encoder ... handling
// surrogate pairs in the input".
func EncodeUTF16(units []uint16) ([]byte, error) {
	out := make([]byte, 0, len(units)*2)
	for i := 0; i < len(units); i++ {
		u := units[i]
		switch {
		case u >= surrogateHighStart && u <= surrogateHighEnd:
			if i+1 >= len(units) {
				return nil, errkind.New(errkind.InvalidType, component, "unpaired high surrogate at end of input")
			}
			low := units[i+1]
			if low < surrogateLowStart || low > surrogateLowEnd {
				return nil, errkind.New(errkind.InvalidType, component, "high surrogate not followed by a low surrogate")
			}
			cp := rune(0x10000 + (int32(u)-surrogateHighStart)<<10 + (int32(low) - surrogateLowStart))
			out = appendRune(out, cp)
			i++
		case u >= surrogateLowStart && u <= surrogateLowEnd:
			return nil, errkind.New(errkind.InvalidType, component, "unpaired low surrogate")
		default:
			out = appendRune(out, rune(u))
		}
	}
	return out, nil
}

// Decode parses canonical UTF-8 bytes into Unicode scalar values,
// processing 1-, 2-, 3-, and 4-byte sequences per spec §4.5.
func Decode(b []byte) ([]rune, error) {
	out := make([]rune, 0, len(b))
	for i := 0; i < len(b); {
		c := b[i]
		switch {
		case c < 0x80:
			out = append(out, rune(c))
			i++
		case c&0xE0 == 0xC0:
			r, n, err := decodeN(b, i, 2, 0x1F, 0x80)
			if err != nil {
				return nil, err
			}
			out = append(out, r)
			i += n
		case c&0xF0 == 0xE0:
			r, n, err := decodeN(b, i, 3, 0x0F, 0x800)
			if err != nil {
				return nil, err
			}
			out = append(out, r)
			i += n
		case c&0xF8 == 0xF0:
			r, n, err := decodeN(b, i, 4, 0x07, 0x10000)
			if err != nil {
				return nil, err
			}
			out = append(out, r)
			i += n
		default:
			return nil, errkind.New(errkind.InvalidType, component, "invalid UTF-8 leading byte")
		}
	}
	return out, nil
}

func decodeN(b []byte, start, n int, leadMask byte, minValue rune) (rune, int, error) {
	if start+n > len(b) {
		return 0, 0, errkind.New(errkind.InvalidLength, component, "truncated multi-byte UTF-8 sequence")
	}
	cp := rune(b[start] & leadMask)
	for i := 1; i < n; i++ {
		c := b[start+i]
		if c&0xC0 != 0x80 {
			return 0, 0, errkind.New(errkind.InvalidType, component, "invalid UTF-8 continuation byte")
		}
		cp = cp<<6 | rune(c&0x3F)
	}
	if cp < minValue {
		return 0, 0, errkind.New(errkind.InvalidType, component, "overlong UTF-8 encoding")
	}
	return cp, n, nil
}

// DecodeToUTF16 decodes UTF-8 bytes into a sequence of UTF-16 code
// units, splitting supplementary-plane code points into surrogate
// pairs, per spec §4.5's "decoder ... emits appropriate surrogate
// pairs for supplementary-plane code points".
func DecodeToUTF16(b []byte) ([]uint16, error) {
	runes, err := Decode(b)
	if err != nil {
		return nil, err
	}
	out := make([]uint16, 0, len(runes))
	for _, r := range runes {
		if r < 0x10000 {
			out = append(out, uint16(r))
			continue
		}
		v := int32(r) - 0x10000
		out = append(out,
			uint16(surrogateHighStart+(v>>10)),
			uint16(surrogateLowStart+(v&0x3FF)),
		)
	}
	return out, nil
}
