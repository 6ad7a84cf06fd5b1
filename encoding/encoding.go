// Package encoding wraps around the various encoding stuff in
// golang.org/x/text/encoding, so the parser can be handed templates
// written in legacy charsets. Everything is converted to UTF-8 before
// the lexer sees it.
package encoding

import (
	"bytes"
	"strings"

	"github.com/pkg/errors"

	enc "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
)

var ErrUnknownEncoding = errors.New("unknown encoding")

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16BE = []byte{0xFE, 0xFF}
	bomUTF16LE = []byte{0xFF, 0xFE}
)

// Load returns the encoding registered under name, or nil.
func Load(name string) enc.Encoding {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "utf8", "utf-8":
		return unicode.UTF8
	case "utf-16", "utf16":
		return unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM)
	case "utf-16be", "utf16be":
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	case "utf-16le", "utf16le":
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	case "euc-jp":
		return japanese.EUCJP
	case "shift_jis", "shift-jis", "shiftjis", "cp932":
		return japanese.ShiftJIS
	case "jis", "iso-2022-jp":
		return japanese.ISO2022JP
	case "big5":
		return traditionalchinese.Big5
	case "euc-kr":
		return korean.EUCKR
	case "hz-gb2312":
		return simplifiedchinese.HZGB2312
	case "cp437":
		return charmap.CodePage437
	case "cp866":
		return charmap.CodePage866
	case "iso-8859-10":
		return charmap.ISO8859_10
	case "iso-8859-13":
		return charmap.ISO8859_13
	case "iso-8859-14":
		return charmap.ISO8859_14
	case "iso-8859-15":
		return charmap.ISO8859_15
	case "iso-8859-16":
		return charmap.ISO8859_16
	case "iso-8859-2":
		return charmap.ISO8859_2
	case "iso-8859-3":
		return charmap.ISO8859_3
	case "iso-8859-4":
		return charmap.ISO8859_4
	case "iso-8859-5":
		return charmap.ISO8859_5
	case "iso-8859-6":
		return charmap.ISO8859_6
	case "iso-8859-7":
		return charmap.ISO8859_7
	case "iso-8859-8":
		return charmap.ISO8859_8
	case "koi8r":
		return charmap.KOI8R
	case "koi8u", "koir8u":
		return charmap.KOI8U
	case "macintosh":
		return charmap.Macintosh
	case "macintoshcyrillic":
		return charmap.MacintoshCyrillic
	case "windows1250":
		return charmap.Windows1250
	case "windows1251":
		return charmap.Windows1251
	case "iso-8859-1", "windows1252":
		return charmap.Windows1252
	case "windows1253":
		return charmap.Windows1253
	case "windows1254":
		return charmap.Windows1254
	case "windows1255":
		return charmap.Windows1255
	case "windows1256":
		return charmap.Windows1256
	case "windows1257":
		return charmap.Windows1257
	case "windows1258":
		return charmap.Windows1258
	case "windows874":
		return charmap.Windows874
	case "xuserdefined":
		return charmap.XUserDefined
	}
	return nil
}

// DetectBOM inspects the byte order mark at the start of b and returns
// the name of the encoding it announces along with the length of the
// mark. An empty name means no mark was found.
func DetectBOM(b []byte) (string, int) {
	switch {
	case bytes.HasPrefix(b, bomUTF8):
		return "utf-8", len(bomUTF8)
	case bytes.HasPrefix(b, bomUTF16BE):
		return "utf-16be", len(bomUTF16BE)
	case bytes.HasPrefix(b, bomUTF16LE):
		return "utf-16le", len(bomUTF16LE)
	}
	return "", 0
}

// Decode converts b to UTF-8. When name is empty the byte order mark,
// if any, decides the encoding and b is otherwise assumed to be UTF-8.
// A byte order mark is always stripped from the result.
func Decode(name string, b []byte) ([]byte, error) {
	bomName, n := DetectBOM(b)
	if name == "" {
		name = bomName
	}
	if bomName != "" && strings.EqualFold(bomName, canonical(name)) {
		b = b[n:]
	}

	switch canonical(name) {
	case "", "utf-8":
		return b, nil
	}

	e := Load(name)
	if e == nil {
		return nil, errors.Wrapf(ErrUnknownEncoding, "encoding %q", name)
	}
	out, err := e.NewDecoder().Bytes(b)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode input as %s", name)
	}
	return out, nil
}

func canonical(name string) string {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "utf8", "utf-8":
		return "utf-8"
	case "utf16be", "utf-16be":
		return "utf-16be"
	case "utf16le", "utf-16le":
		return "utf-16le"
	case "":
		return ""
	}
	return strings.ToLower(name)
}
