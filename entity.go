package jxtmpl

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// predefinedEntities are the references every document may use.
var predefinedEntities = map[string]rune{
	"lt":   '<',
	"gt":   '>',
	"amp":  '&',
	"apos": '\'',
	"quot": '"',
}

// lookupEntity resolves a named reference. With HTML entities enabled
// any HTML5 name that stands for a single code point is accepted too.
func (ctx *parserCtx) lookupEntity(name string) (rune, bool) {
	if r, ok := predefinedEntities[name]; ok {
		return r, true
	}
	if !ctx.htmlEntities {
		return 0, false
	}
	return lookupHTMLEntity(name)
}

func lookupHTMLEntity(name string) (rune, bool) {
	ref := "&" + name + ";"
	decoded := html.UnescapeString(ref)
	if decoded == ref || utf8.RuneCountInString(decoded) != 1 {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(decoded)
	if r == utf8.RuneError {
		return 0, false
	}
	return r, true
}

// decodeCharRef turns the digits of a numeric reference into the
// character it names. amp is the token the reference started with and
// is where errors point.
func (ctx *parserCtx) decodeCharRef(amp *Token, digits string, base int) (rune, error) {
	v, err := strconv.ParseUint(digits, base, 32)
	if err != nil || !isChar(rune(v)) {
		prefix := "#"
		if base == 16 {
			prefix = "#x"
		}
		return 0, ctx.errorAt(ErrorKindDecode, amp, ErrInvalidCharRef,
			fmt.Sprintf("&%s%s; is not a legal character", prefix, digits))
	}
	return rune(v), nil
}
