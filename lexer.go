package jxtmpl

import (
	"fmt"
	"unicode"
)

// lexer turns the decoded input into tokens. Which rules apply is
// decided by state, which only the parser changes.
type lexer struct {
	cur   cursor
	state LexicalState
	start mark
}

func (l *lexer) reset(src []rune) {
	l.cur.reset(src)
	l.state = StateDefault
	l.start = mark{}
}

// rewind moves the lexer back to the first character of t so that it
// gets scanned again.
func (l *lexer) rewind(t *Token) {
	l.cur.seek(mark{pos: t.Offset, line: t.BeginLine, column: t.BeginColumn})
}

func (l *lexer) nextToken() (*Token, error) {
	l.start = l.cur.mark()
	switch l.state {
	case StateDefault:
		return l.lexDefault()
	case StateDocType:
		return l.lexDocType()
	case StateDocTypeSystem:
		return l.lexSystemLiteral()
	case StateDocTypePublic:
		return l.lexPubidLiteral()
	case StateElement:
		return l.lexElement()
	case StateAttribute:
		return l.lexAttribute()
	case StateAttributeData:
		return l.lexAttributeData()
	case StateEntityRef:
		return l.lexEntityRef()
	case StateComment:
		return l.lexDelimited(TokenCommentData, TokenCommentEnd, "-->", ErrUnterminatedComment)
	case StateCDATA:
		return l.lexDelimited(TokenCDATAData, TokenCDATAEnd, "]]>", ErrUnterminatedCDATA)
	case StateProcInstr:
		return l.lexProcInstr()
	case StateProcInstrData:
		return l.lexDelimited(TokenPIData, TokenPIEnd, "?>", ErrUnterminatedPI)
	case StateExpression:
		return l.lexExpression()
	case StateDirective:
		return l.lexDirective()
	}
	return nil, &ParseError{
		Kind:    ErrorKindInternal,
		Err:     ErrUnknownState,
		Message: fmt.Sprintf("%s: %s", ErrUnknownState, l.state),
		Line:    l.cur.line,
		Column:  l.cur.column,
	}
}

func (l *lexer) emit(kind TokenKind) *Token {
	t := &Token{
		Kind:        kind,
		Image:       string(l.cur.src[l.start.pos:l.cur.pos]),
		BeginLine:   l.start.line,
		BeginColumn: l.start.column,
		EndLine:     l.cur.lastLine,
		EndColumn:   l.cur.lastColumn,
		Offset:      l.start.pos,
	}
	if l.cur.pos == l.start.pos {
		t.EndLine = t.BeginLine
		t.EndColumn = t.BeginColumn
	}
	return t
}

// errorf reports a lexical error at the current position.
func (l *lexer) errorf(err error, format string, args ...any) error {
	msg := err.Error()
	if format != "" {
		msg = msg + ": " + fmt.Sprintf(format, args...)
	}
	return &ParseError{
		Kind:    ErrorKindLexical,
		Err:     err,
		Message: msg,
		Line:    l.cur.line,
		Column:  l.cur.column,
	}
}

func (l *lexer) unexpected() error {
	if l.cur.done() {
		return l.errorf(ErrUnexpectedChar, "unexpected end of input in %s state", l.state)
	}
	return l.errorf(ErrUnexpectedChar, "%q in %s state", l.cur.peek(0), l.state)
}

func (l *lexer) skipBlanks() {
	for isBlank(l.cur.peek(0)) {
		l.cur.advance(1)
	}
	l.start = l.cur.mark()
}

func (l *lexer) skipName() {
	for isNameChar(l.cur.peek(0)) {
		l.cur.advance(1)
	}
}

type directive struct {
	prefix string
	kind   TokenKind
}

// directives are tried in order; longer prefixes sharing a head with
// shorter ones come first. A keyword directive must not run on into a
// name, so "#endnote" is text.
var directives = []directive{
	{prefix: "#{", kind: TokenExprStart},
	{prefix: "#foreach", kind: TokenForEach},
	{prefix: "#elif", kind: TokenElif},
	{prefix: "#else", kind: TokenElse},
	{prefix: "#end", kind: TokenEnd},
	{prefix: "#if", kind: TokenIf},
	{prefix: "#$", kind: TokenVarStart},
}

func (d directive) isKeyword() bool {
	switch d.kind {
	case TokenIf, TokenElif, TokenElse, TokenEnd, TokenForEach:
		return true
	}
	return false
}

func (l *lexer) matchDirective() (directive, bool) {
	if l.cur.peek(0) != '#' {
		return directive{}, false
	}
	for _, d := range directives {
		if !l.cur.hasPrefix(d.prefix) {
			continue
		}
		if d.isKeyword() && isNameChar(l.cur.peek(len(d.prefix))) {
			continue
		}
		return d, true
	}
	return directive{}, false
}

func (l *lexer) lexDefault() (*Token, error) {
	c := &l.cur
	if c.done() {
		return l.emit(TokenEOF), nil
	}

	switch c.peek(0) {
	case '<':
		switch {
		case c.hasPrefix("<!DOCTYPE"):
			c.advance(len("<!DOCTYPE"))
			return l.emit(TokenDocTypeStart), nil
		case c.hasPrefix("<!--"):
			c.advance(len("<!--"))
			return l.emit(TokenCommentStart), nil
		case c.hasPrefix("<![CDATA["):
			c.advance(len("<![CDATA["))
			return l.emit(TokenCDATAStart), nil
		case c.hasPrefix("<?"):
			c.advance(2)
			return l.emit(TokenPIStart), nil
		case c.peek(1) == '/' && isNameStartChar(c.peek(2)):
			c.advance(2)
			l.skipName()
			return l.emit(TokenCloseTag), nil
		case isNameStartChar(c.peek(1)):
			c.advance(1)
			l.skipName()
			return l.emit(TokenOpenTag), nil
		}
		return nil, l.unexpected()
	case '&':
		c.advance(1)
		return l.emit(TokenAmp), nil
	case '#':
		if d, ok := l.matchDirective(); ok {
			c.advance(len(d.prefix))
			if d.kind == TokenElse {
				for isBlank(c.peek(0)) {
					c.advance(1)
				}
			}
			return l.emit(d.kind), nil
		}
	}

	// a '#' that does not start a directive is plain text
	c.advance(1)
	for !c.done() {
		r := c.peek(0)
		if r == '<' || r == '&' {
			break
		}
		if r == '#' {
			if _, ok := l.matchDirective(); ok {
				break
			}
		}
		c.advance(1)
	}
	return l.emit(TokenText), nil
}

func (l *lexer) lexElement() (*Token, error) {
	l.skipBlanks()
	c := &l.cur
	switch r := c.peek(0); {
	case c.done():
		return l.emit(TokenEOF), nil
	case r == '>':
		c.advance(1)
		return l.emit(TokenTagEnd), nil
	case c.hasPrefix("/>"):
		c.advance(2)
		return l.emit(TokenSelfClose), nil
	case isNameStartChar(r):
		l.skipName()
		return l.emit(TokenName), nil
	}
	return nil, l.unexpected()
}

func (l *lexer) lexAttribute() (*Token, error) {
	l.skipBlanks()
	c := &l.cur
	switch c.peek(0) {
	case eofRune:
		return l.emit(TokenEOF), nil
	case '=':
		c.advance(1)
		return l.emit(TokenEquals), nil
	case '"', '\'':
		c.advance(1)
		return l.emit(TokenQuote), nil
	case '{':
		c.advance(1)
		return l.emit(TokenLBrace), nil
	}
	return nil, l.unexpected()
}

// lexDirective scans the header of a directive: the '=' of a variable
// binding and the '{' that opens its expression. Anything else comes
// back as a TEXT run so the parser can say what it expected.
func (l *lexer) lexDirective() (*Token, error) {
	l.skipBlanks()
	c := &l.cur
	switch c.peek(0) {
	case eofRune:
		return l.emit(TokenEOF), nil
	case '=':
		c.advance(1)
		return l.emit(TokenEquals), nil
	case '{':
		c.advance(1)
		return l.emit(TokenLBrace), nil
	}
	for {
		r := c.peek(0)
		if r == eofRune || r == '=' || r == '{' || isBlank(r) {
			return l.emit(TokenText), nil
		}
		c.advance(1)
	}
}

func (l *lexer) lexAttributeData() (*Token, error) {
	c := &l.cur
	switch c.peek(0) {
	case eofRune:
		return nil, l.errorf(ErrUnterminatedLiteral, "attribute value")
	case '"', '\'':
		c.advance(1)
		return l.emit(TokenQuote), nil
	case '&':
		c.advance(1)
		return l.emit(TokenAmp), nil
	case '{':
		c.advance(1)
		return l.emit(TokenLBrace), nil
	case '<':
		return nil, l.errorf(ErrUnexpectedChar, "'<' is not allowed in attribute values")
	}

	for {
		switch c.peek(0) {
		case eofRune, '"', '\'', '&', '{', '<':
			return l.emit(TokenAttrText), nil
		}
		c.advance(1)
	}
}

func (l *lexer) lexEntityRef() (*Token, error) {
	c := &l.cur
	switch r := c.peek(0); {
	case c.done():
		return l.emit(TokenEOF), nil
	case r == ';':
		c.advance(1)
		return l.emit(TokenSemicolon), nil
	case r == '#':
		if c.peek(1) == 'x' && isHexDigit(c.peek(2)) {
			c.advance(2)
			for isHexDigit(c.peek(0)) {
				c.advance(1)
			}
			return l.emit(TokenHexRef), nil
		}
		if isDigit(c.peek(1)) {
			c.advance(1)
			for isDigit(c.peek(0)) {
				c.advance(1)
			}
			return l.emit(TokenDecRef), nil
		}
		return nil, l.errorf(ErrInvalidCharRef, "expected digits after '&#'")
	case isNameStartChar(r):
		l.skipName()
		return l.emit(TokenEntityName), nil
	}
	return nil, l.unexpected()
}

// lexDelimited scans the body of a construct that runs up to a fixed
// terminator, such as comments and CDATA sections.
func (l *lexer) lexDelimited(data, end TokenKind, terminator string, unterminated error) (*Token, error) {
	c := &l.cur
	if c.hasPrefix(terminator) {
		c.advance(len(terminator))
		return l.emit(end), nil
	}
	for !c.hasPrefix(terminator) {
		if c.done() {
			return nil, l.errorf(unterminated, "")
		}
		c.advance(1)
	}
	return l.emit(data), nil
}

func (l *lexer) lexProcInstr() (*Token, error) {
	c := &l.cur
	switch r := c.peek(0); {
	case c.done():
		return nil, l.errorf(ErrUnterminatedPI, "")
	case c.hasPrefix("?>"):
		c.advance(2)
		return l.emit(TokenPIEnd), nil
	case isBlank(r):
		for isBlank(c.peek(0)) {
			c.advance(1)
		}
		return l.emit(TokenPISpace), nil
	case isNameStartChar(r):
		l.skipName()
		return l.emit(TokenPITarget), nil
	}
	return nil, l.unexpected()
}

// lexExpression captures embedded code up to the brace that balances
// the one that opened it. Braces inside string literals do not count.
func (l *lexer) lexExpression() (*Token, error) {
	c := &l.cur
	if c.peek(0) == '}' {
		c.advance(1)
		return l.emit(TokenRBrace), nil
	}

	var depth int
	for {
		r := c.peek(0)
		switch r {
		case eofRune:
			return nil, l.errorf(ErrUnterminatedExpression, "")
		case '{':
			depth++
		case '}':
			if depth == 0 {
				return l.emit(TokenExprCode), nil
			}
			depth--
		case '"', '\'':
			c.advance(1)
			for c.peek(0) != r {
				switch c.peek(0) {
				case eofRune:
					return nil, l.errorf(ErrUnterminatedExpression, "unterminated string literal")
				case '\\':
					c.advance(1)
				}
				c.advance(1)
			}
		}
		c.advance(1)
	}
}

func (l *lexer) lexDocType() (*Token, error) {
	l.skipBlanks()
	c := &l.cur
	switch r := c.peek(0); {
	case c.done():
		return l.emit(TokenEOF), nil
	case r == '>':
		c.advance(1)
		return l.emit(TokenTagEnd), nil
	case r == '"' || r == '\'':
		c.advance(1)
		return l.emit(TokenQuote), nil
	case isNameStartChar(r):
		l.skipName()
		t := l.emit(TokenName)
		switch t.Image {
		case "SYSTEM":
			t.Kind = TokenSystem
		case "PUBLIC":
			t.Kind = TokenPublic
		}
		return t, nil
	}
	return nil, l.unexpected()
}

func (l *lexer) lexSystemLiteral() (*Token, error) {
	c := &l.cur
	switch c.peek(0) {
	case eofRune:
		return nil, l.errorf(ErrUnterminatedLiteral, "system identifier")
	case '"', '\'':
		c.advance(1)
		return l.emit(TokenQuote), nil
	}
	c.advance(1)
	return l.emit(TokenIDChar), nil
}

func (l *lexer) lexPubidLiteral() (*Token, error) {
	c := &l.cur
	switch r := c.peek(0); {
	case r == eofRune:
		return nil, l.errorf(ErrUnterminatedLiteral, "public identifier")
	case r == '"' || r == '\'':
		c.advance(1)
		return l.emit(TokenQuote), nil
	case isPubidChar(r):
		c.advance(1)
		return l.emit(TokenIDChar), nil
	default:
		return nil, l.errorf(ErrInvalidPubidChar, "%q", r)
	}
}

func isBlank(r rune) bool {
	return r == 0x20 || r == 0x9 || r == 0xA || r == 0xD
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isHexDigit(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func isNameStartChar(r rune) bool {
	return r == ':' || r == '_' || unicode.IsLetter(r)
}

func isNameChar(r rune) bool {
	if isNameStartChar(r) || isDigit(r) {
		return true
	}
	switch r {
	case '-', '.', 0xB7:
		return true
	}
	return unicode.In(r, unicode.Mn, unicode.Mc, unicode.Nd)
}

func isPubidChar(r rune) bool {
	switch {
	case r == 0x20 || r == 0xD || r == 0xA:
		return true
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', isDigit(r):
		return true
	}
	switch r {
	case '-', '\'', '(', ')', '+', ',', '.', '/', ':', '=', '?', ';', '!', '*', '#', '@', '$', '_', '%':
		return true
	}
	return false
}

// isChar reports whether r is a legal document character.
func isChar(r rune) bool {
	switch {
	case r == 0x9 || r == 0xA || r == 0xD:
		return true
	case r >= 0x20 && r <= 0xD7FF:
		return true
	case r >= 0xE000 && r <= 0xFFFD:
		return true
	case r >= 0x10000 && r <= 0x10FFFF:
		return true
	}
	return false
}
