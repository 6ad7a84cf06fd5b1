package jxtmpl

import "strconv"

// TokenKind identifies the lexical class of a Token.
type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenDocTypeStart
	TokenCommentStart
	TokenCDATAStart
	TokenPIStart
	TokenCloseTag
	TokenOpenTag
	TokenAmp
	TokenExprStart
	TokenIf
	TokenElif
	TokenElse
	TokenEnd
	TokenForEach
	TokenVarStart
	TokenText
	TokenName
	TokenTagEnd
	TokenSelfClose
	TokenEquals
	TokenQuote
	TokenLBrace
	TokenAttrText
	TokenHexRef
	TokenDecRef
	TokenEntityName
	TokenSemicolon
	TokenCommentData
	TokenCommentEnd
	TokenCDATAData
	TokenCDATAEnd
	TokenPITarget
	TokenPISpace
	TokenPIData
	TokenPIEnd
	TokenExprCode
	TokenRBrace
	TokenSystem
	TokenPublic
	TokenIDChar

	tokenKindMax
)

var tokenKindNames = [...]string{
	TokenEOF:          "EOF",
	TokenDocTypeStart: "DOCTYPE_START",
	TokenCommentStart: "COMMENT_START",
	TokenCDATAStart:   "CDATA_START",
	TokenPIStart:      "PI_START",
	TokenCloseTag:     "CLOSE_TAG",
	TokenOpenTag:      "OPEN_TAG",
	TokenAmp:          "AMP",
	TokenExprStart:    "EXPR_START",
	TokenIf:           "IF",
	TokenElif:         "ELIF",
	TokenElse:         "ELSE",
	TokenEnd:          "END_DIRECTIVE",
	TokenForEach:      "FOREACH",
	TokenVarStart:     "VAR_START",
	TokenText:         "TEXT",
	TokenName:         "NAME",
	TokenTagEnd:       "TAG_END",
	TokenSelfClose:    "SELF_CLOSE",
	TokenEquals:       "EQUALS",
	TokenQuote:        "QUOTE",
	TokenLBrace:       "LBRACE",
	TokenAttrText:     "ATTR_TEXT",
	TokenHexRef:       "HEX_REF",
	TokenDecRef:       "DEC_REF",
	TokenEntityName:   "ENTITY_NAME",
	TokenSemicolon:    "SEMICOLON",
	TokenCommentData:  "COMMENT_DATA",
	TokenCommentEnd:   "COMMENT_END",
	TokenCDATAData:    "CDATA_DATA",
	TokenCDATAEnd:     "CDATA_END",
	TokenPITarget:     "PI_TARGET",
	TokenPISpace:      "PI_SPACE",
	TokenPIData:       "PI_DATA",
	TokenPIEnd:        "PI_END",
	TokenExprCode:     "EXPR_CODE",
	TokenRBrace:       "RBRACE",
	TokenSystem:       "SYSTEM",
	TokenPublic:       "PUBLIC",
	TokenIDChar:       "ID_CHAR",
}

// tokenImages is what diagnostics print for each kind: the literal
// for fixed tokens, a bracketed class name for the rest.
var tokenImages = [...]string{
	TokenEOF:          "<EOF>",
	TokenDocTypeStart: `"<!DOCTYPE"`,
	TokenCommentStart: `"<!--"`,
	TokenCDATAStart:   `"<![CDATA["`,
	TokenPIStart:      `"<?"`,
	TokenCloseTag:     "<CLOSE_TAG>",
	TokenOpenTag:      "<OPEN_TAG>",
	TokenAmp:          `"&"`,
	TokenExprStart:    `"#{"`,
	TokenIf:           `"#if"`,
	TokenElif:         `"#elif"`,
	TokenElse:         `"#else"`,
	TokenEnd:          `"#end"`,
	TokenForEach:      `"#foreach"`,
	TokenVarStart:     `"#$"`,
	TokenText:         "<TEXT>",
	TokenName:         "<NAME>",
	TokenTagEnd:       `">"`,
	TokenSelfClose:    `"/>"`,
	TokenEquals:       `"="`,
	TokenQuote:        "<QUOTE>",
	TokenLBrace:       `"{"`,
	TokenAttrText:     "<ATTR_TEXT>",
	TokenHexRef:       "<HEX_REF>",
	TokenDecRef:       "<DEC_REF>",
	TokenEntityName:   "<ENTITY_NAME>",
	TokenSemicolon:    `";"`,
	TokenCommentData:  "<COMMENT_DATA>",
	TokenCommentEnd:   `"-->"`,
	TokenCDATAData:    "<CDATA_DATA>",
	TokenCDATAEnd:     `"]]>"`,
	TokenPITarget:     "<PI_TARGET>",
	TokenPISpace:      "<PI_SPACE>",
	TokenPIData:       "<PI_DATA>",
	TokenPIEnd:        `"?>"`,
	TokenExprCode:     "<EXPR_CODE>",
	TokenRBrace:       `"}"`,
	TokenSystem:       `"SYSTEM"`,
	TokenPublic:       `"PUBLIC"`,
	TokenIDChar:       "<ID_CHAR>",
}

func (k TokenKind) String() string {
	if k < 0 || k >= tokenKindMax {
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
	return tokenKindNames[k]
}

// Image returns the human readable form of the kind used in error
// messages.
func (k TokenKind) Image() string {
	if k < 0 || k >= tokenKindMax {
		return k.String()
	}
	return tokenImages[k]
}

// Token is one lexeme. Positions are 1-based; the end position is
// that of the last character of the image. Offset is the index of the
// first character in the decoded input and is what the lexer rewinds
// to when a buffered token has to be scanned again.
type Token struct {
	Kind        TokenKind
	Image       string
	BeginLine   int
	BeginColumn int
	EndLine     int
	EndColumn   int
	Offset      int

	// next is the lookahead token fetched after this one, if any
	next *Token
}

func (t *Token) String() string {
	if t == nil {
		return "<nil>"
	}
	if t.Kind == TokenEOF {
		return "<EOF>"
	}
	return t.Kind.String() + " " + strconv.Quote(t.Image)
}
