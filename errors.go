package jxtmpl

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrDuplicateAttribute     = errors.New("duplicate attribute")
	ErrInvalidCharRef         = errors.New("invalid character reference")
	ErrInvalidPubidChar       = errors.New("invalid character in public identifier")
	ErrInvalidUTF8            = errors.New("invalid UTF-8 sequence")
	ErrMismatchedCloseTag     = errors.New("close tag does not match the open element")
	ErrNestingTooDeep         = errors.New("template constructs nested too deeply")
	ErrNoSource               = errors.New("source has neither a reader nor a system identifier")
	ErrStateStackOverflow     = errors.New("lexical state stack overflow")
	ErrStateStackUnbalanced   = errors.New("lexical state stack not empty after parse")
	ErrStateStackUnderflow    = errors.New("lexical state stack underflow")
	ErrUnclosedElement        = errors.New("element not closed")
	ErrUndefinedEntity        = errors.New("undefined entity")
	ErrUnexpectedChar         = errors.New("unexpected character")
	ErrUnexpectedToken        = errors.New("unexpected token")
	ErrUnknownState           = errors.New("unknown lexical state")
	ErrUnterminatedCDATA      = errors.New("unterminated CDATA section")
	ErrUnterminatedComment    = errors.New("unterminated comment")
	ErrUnterminatedExpression = errors.New("unterminated expression")
	ErrUnterminatedLiteral    = errors.New("unterminated literal")
	ErrUnterminatedPI         = errors.New("unterminated processing instruction")
)

// ErrorKind classifies a ParseError.
type ErrorKind int

const (
	// ErrorKindLexical means no token rule of the current lexical state
	// matched the input.
	ErrorKindLexical ErrorKind = iota + 1
	// ErrorKindSyntax means a token was not acceptable at that point
	// of the grammar. Expected lists what would have been.
	ErrorKindSyntax
	// ErrorKindDecode means a well formed token carried an invalid
	// value, such as a character reference outside the legal range.
	ErrorKindDecode
	// ErrorKindInternal means the parser broke one of its own
	// invariants or ran past one of its limits.
	ErrorKindInternal
	// ErrorKindHandler means the sink handler returned an error.
	ErrorKindHandler
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorKindLexical:
		return "lexical error"
	case ErrorKindSyntax:
		return "syntax error"
	case ErrorKindDecode:
		return "decode error"
	case ErrorKindInternal:
		return "internal error"
	case ErrorKindHandler:
		return "handler error"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// ParseError is the single error a failed parse returns.
type ParseError struct {
	Kind     ErrorKind
	Message  string
	Line     int
	Column   int
	PublicID string
	SystemID string
	// Context is the source line the error points into.
	Context string
	// Expected and Found are only set for syntax errors.
	Expected TokenSet
	Found    *Token
	Err      error
}

func (e *ParseError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Kind.String())
	sb.WriteString(": ")
	sb.WriteString(e.Message)
	fmt.Fprintf(&sb, " at line %d, column %d", e.Line, e.Column)
	switch {
	case e.SystemID != "":
		fmt.Fprintf(&sb, " (%s)", e.SystemID)
	case e.PublicID != "":
		fmt.Fprintf(&sb, " (%s)", e.PublicID)
	}

	if e.Context != "" {
		sb.WriteString("\n    ")
		sb.WriteString(e.Context)
		sb.WriteString("\n    ")
		col := 1
		for _, r := range e.Context {
			if col >= e.Column {
				break
			}
			if r == '\t' {
				sb.WriteByte('\t')
			} else {
				sb.WriteByte(' ')
			}
			col++
		}
		sb.WriteByte('^')
	}
	return sb.String()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func syntaxMessage(found *Token, expected TokenSet) string {
	var sb strings.Builder
	sb.WriteString("unexpected ")
	if found == nil || found.Kind == TokenEOF {
		sb.WriteString("end of input")
	} else {
		sb.WriteString(found.Kind.Image())
		if found.Kind.Image() != fmt.Sprintf("%q", found.Image) {
			fmt.Fprintf(&sb, " %q", found.Image)
		}
	}
	switch expected.Len() {
	case 0:
	case 1:
		sb.WriteString(", expecting ")
		sb.WriteString(expected.String())
	default:
		sb.WriteString(", expecting one of: ")
		sb.WriteString(expected.String())
	}
	return sb.String()
}
