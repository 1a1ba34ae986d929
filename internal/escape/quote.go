// Copyright (C) 2026 The jton-lib Authors. All Rights Reserved.

package escape

import (
	"unicode/utf8"

	"go4.org/mem"
)

var controlEsc = [...]byte{
	'\b': 'b',
	'\f': 'f',
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
	' ':  ' ', // sentinel
}

var hexDigit = []byte("0123456789abcdef")

// Quote encodes a string for inclusion in a double-quoted JSON string.
// If ascii is true, every rune outside the ASCII range is written as a
// \uXXXX escape (surrogate pairs for runes above the BMP); otherwise
// non-ASCII runes pass through as UTF-8.
func Quote(src mem.RO, ascii bool) []byte {
	buf := make([]byte, 0, src.Len())
	putByte := func(bs ...byte) { buf = append(buf, bs...) }
	putHex4 := func(v uint32) {
		putByte('\\', 'u',
			hexDigit[v>>12&15], hexDigit[v>>8&15], hexDigit[v>>4&15], hexDigit[v&15])
	}

	for src.Len() != 0 {
		r, n := mem.DecodeRune(src)
		src = src.SliceFrom(n)

		if r < utf8.RuneSelf {
			if r < ' ' {
				if b := controlEsc[r]; b != 0 {
					putByte('\\', b)
				} else {
					putHex4(uint32(r))
				}
			} else if r == '\\' || r == '"' {
				putByte('\\', byte(r))
			} else {
				putByte(byte(r))
			}
			continue
		}

		if ascii {
			if r > 0xFFFF {
				// Encode as a UTF-16 surrogate pair.
				v := uint32(r) - 0x10000
				putHex4(0xD800 + v>>10)
				putHex4(0xDC00 + v&0x3FF)
			} else {
				putHex4(uint32(r))
			}
			continue
		}

		var rbuf [6]byte
		nb := utf8.EncodeRune(rbuf[:], r)
		buf = append(buf, rbuf[:nb]...)
	}
	return buf
}
