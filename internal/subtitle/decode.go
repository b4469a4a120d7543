package subtitle

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Encoding names reported by Decode.
const (
	EncodingUTF8    = "utf-8"
	EncodingUTF8BOM = "utf-8-sig"
	EncodingUTF16   = "utf-16"
	Encoding1252    = "windows-1252"
	EncodingLatin1  = "iso-8859-1"
	Encoding1251    = "windows-1251"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Decode converts subtitle bytes to UTF-8 text. Byte order marks are
// honoured; otherwise valid UTF-8 is kept and legacy single-byte encodings
// are tried in order. It returns the text and the encoding that was used.
func Decode(b []byte) (string, string) {
	switch {
	case bytes.HasPrefix(b, utf8BOM):
		return string(b[len(utf8BOM):]), EncodingUTF8BOM
	case bytes.HasPrefix(b, []byte{0xFF, 0xFE}), bytes.HasPrefix(b, []byte{0xFE, 0xFF}):
		dec := unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder()
		if out, err := dec.Bytes(b); err == nil {
			return string(out), EncodingUTF16
		}
	case utf8.Valid(b):
		return string(b), EncodingUTF8
	}

	name, enc := guessLegacy(b)
	out, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		// Single-byte decoders cannot fail; keep the raw bytes if one does.
		return string(b), EncodingUTF8
	}
	return string(out), name
}

// guessLegacy picks a single-byte encoding. Cyrillic text written in
// windows-1251 is dominated by bytes in 0xC0-0xFF, where western text only
// has the occasional accented letter. Otherwise windows-1252 is used unless
// the input holds bytes it leaves undefined.
func guessLegacy(b []byte) (string, encoding.Encoding) {
	var high, letters, ascii int
	undefined1252 := false
	for _, c := range b {
		switch {
		case c < 0x80:
			if ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') {
				ascii++
			}
		case c >= 0xC0:
			high++
			letters++
		default:
			high++
			switch c {
			case 0x81, 0x8D, 0x8F, 0x90, 0x9D:
				undefined1252 = true
			}
		}
	}

	if letters > 0 && letters*4 >= high*3 && letters > ascii {
		return Encoding1251, charmap.Windows1251
	}
	if undefined1252 {
		return EncodingLatin1, charmap.ISO8859_1
	}
	return Encoding1252, charmap.Windows1252
}
