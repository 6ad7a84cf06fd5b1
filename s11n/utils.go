package s11n

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

var errQuotedString = errors.New("string contains both single and double quotes")

var (
	qch_dquote = []byte{'"'}
	qch_quote  = []byte{'\''}
)

// directives are the text sequences the lexer would read as template
// syntax. A '#' that starts one of them is written as a reference.
var directives = []string{"#{", "#$", "#if", "#elif", "#else", "#end", "#foreach"}

func startsDirective(s []byte) bool {
	for _, d := range directives {
		if bytes.HasPrefix(s, []byte(d)) {
			return true
		}
	}
	return false
}

// isInCharacterRange checks if rune is in XML Character Range
func isInCharacterRange(r rune) bool {
	return r == 0x09 ||
		r == 0x0A ||
		r == 0x0D ||
		r >= 0x20 && r <= 0xD7FF ||
		r >= 0xE000 && r <= 0xFFFD ||
		r >= 0x10000 && r <= 0x10FFFF
}

func DumpQuotedString(out io.Writer, s string) error {
	dqi := strings.IndexByte(s, qch_dquote[0])
	if dqi < 0 {
		// double quote is allowed, cool!
		if _, err := out.Write(qch_dquote); err != nil {
			return err
		}
		if _, err := io.WriteString(out, s); err != nil {
			return err
		}
		if _, err := out.Write(qch_dquote); err != nil {
			return err
		}
		return nil
	}

	if qi := strings.IndexByte(s, qch_quote[0]); qi < 0 {
		// single quotes, then
		if _, err := out.Write(qch_quote); err != nil {
			return err
		}
		if _, err := io.WriteString(out, s); err != nil {
			return err
		}
		if _, err := out.Write(qch_quote); err != nil {
			return err
		}
		return nil
	}

	// a literal cannot contain both kinds of quote
	return errQuotedString
}

var (
	esc_quot   = []byte("&#34;") // shorter than "&quot;"
	esc_amp    = []byte("&amp;")
	esc_lt     = []byte("&lt;")
	esc_gt     = []byte("&gt;")
	esc_tab    = []byte("&#9;")
	esc_nl     = []byte("&#10;")
	esc_cr     = []byte("&#13;")
	esc_hash   = []byte("&#35;")
	esc_lbrace = []byte("&#123;")
	esc_fffd   = []byte("\uFFFD") // Unicode replacement character
)

// EscapeAttrValue writes s as the literal part of a double quoted
// attribute value. '{' is escaped since it would open an expression.
func EscapeAttrValue(w io.Writer, s []byte) error {
	var esc []byte
	last := 0
	for i := 0; i < len(s); {
		r, width := utf8.DecodeRune(s[i:])
		i += width
		switch r {
		case '"':
			esc = esc_quot
		case '{':
			esc = esc_lbrace
		case '&':
			esc = esc_amp
		case '<':
			esc = esc_lt
		case '>':
			esc = esc_gt
		case '\n':
			esc = esc_nl
		case '\r':
			esc = esc_cr
		case '\t':
			esc = esc_tab
		default:
			if !(0x20 <= r && r < 0x80) { // nolint:staticcheck
				if r < 0xE0 {
					esc = []byte(fmt.Sprintf("&#x%X;", r))
					break
				}
			}
			if !isInCharacterRange(r) || (r == 0xFFFD && width == 1) {
				esc = esc_fffd
				break
			}
			continue
		}

		if _, err := w.Write(s[last : i-width]); err != nil {
			return err
		}
		if _, err := w.Write(esc); err != nil {
			return err
		}
		last = i
	}

	if _, err := w.Write(s[last:]); err != nil {
		return err
	}
	return nil
}

// EscapeText writes to w the properly escaped equivalent of the plain
// text data s. If escapeNewline is true, newline characters will be
// escaped.
func EscapeText(w io.Writer, s []byte, escapeNewline bool) error {
	var esc []byte
	last := 0
	for i := 0; i < len(s); {
		r, width := utf8.DecodeRune(s[i:])
		i += width
		switch r {
		case '&':
			esc = esc_amp
		case '<':
			esc = esc_lt
		case '>':
			esc = esc_gt
		case '\n':
			if !escapeNewline {
				continue
			}
			esc = esc_nl
		case '\r':
			esc = esc_cr
		case '#':
			if !startsDirective(s[i-width:]) {
				continue
			}
			esc = esc_hash
		default:
			if !(r == '\t' || (0x20 <= r && r < 0x80)) { // nolint:staticcheck
				if r < 0xE0 {
					esc = []byte(fmt.Sprintf("&#x%X;", r))
					break
				}
			}
			if !isInCharacterRange(r) || (r == 0xFFFD && width == 1) {
				esc = esc_fffd
				break
			}
			continue
		}

		if _, err := w.Write(s[last : i-width]); err != nil {
			return err
		}
		if _, err := w.Write(esc); err != nil {
			return err
		}
		last = i
	}

	if _, err := w.Write(s[last:]); err != nil {
		return err
	}
	return nil
}
