package jxtmpl

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"unicode/utf8"

	"github.com/lestrrat-go/jxtmpl/internal/debug"
	"github.com/lestrrat-go/jxtmpl/internal/orderedmap"
	"github.com/lestrrat-go/jxtmpl/internal/pool"
	"github.com/lestrrat-go/jxtmpl/internal/stack"
	"github.com/lestrrat-go/jxtmpl/sink"
)

var (
	blockFirst = NewTokenSet(
		TokenText, TokenOpenTag, TokenCloseTag, TokenAmp,
		TokenCommentStart, TokenCDATAStart, TokenPIStart,
		TokenExprStart, TokenIf, TokenForEach, TokenVarStart,
	)
	documentFirst  = blockFirst.Add(TokenDocTypeStart)
	documentFollow = NewTokenSet(TokenEOF)
	ifFollow       = NewTokenSet(TokenElif, TokenElse, TokenEnd)
	endFollow      = NewTokenSet(TokenEnd)
	tagContent     = NewTokenSet(TokenName, TokenTagEnd, TokenSelfClose)
	attrValueFirst = NewTokenSet(TokenAttrText, TokenQuote, TokenAmp, TokenLBrace)
	charRefFirst   = NewTokenSet(TokenHexRef, TokenDecRef, TokenEntityName)
	externalIDNext = NewTokenSet(TokenSystem, TokenPublic, TokenTagEnd)
	idLiteralNext  = NewTokenSet(TokenIDChar, TokenQuote)
	piTargetNext   = NewTokenSet(TokenPISpace, TokenPIEnd)
)

var parserCtxPool = sync.Pool{
	New: func() any {
		return &parserCtx{
			states: newStateStack(),
			open:   stack.New[string](0),
			attrs:  orderedmap.New[string, sink.Attribute](),
		}
	},
}

func getParserCtx() *parserCtx {
	return parserCtxPool.Get().(*parserCtx)
}

func releaseParserCtx(ctx *parserCtx) {
	ctx.release()
	parserCtxPool.Put(ctx)
}

// parserCtx holds everything that lives for the duration of one parse.
// It is also the context.Context and the DocumentLocator handed to the
// sink handler.
type parserCtx struct {
	context.Context

	lexer lexer
	// token is the last consumed token. token.next is the lookahead.
	token  *Token
	states *stack.Stack[LexicalState]

	handler       sink.Handler
	publicID      string
	systemID      string
	htmlEntities  bool
	strictNesting bool

	// open elements, tracked only with strict nesting. scope is the
	// depth at which the current template body started.
	open  *stack.Stack[string]
	scope int
	// depth counts the enclosing #if and #foreach bodies
	depth int
	attrs *orderedmap.Map[string, sink.Attribute]

	// loc is the token that started the event being reported
	loc   *Token
	fault error
}

var _ sink.DocumentLocator = (*parserCtx)(nil)

func (ctx *parserCtx) init(cctx context.Context, p *Parser, handler sink.Handler, publicID, systemID string, b []byte) error {
	ctx.Context = cctx
	ctx.handler = handler
	ctx.publicID = publicID
	ctx.systemID = systemID
	ctx.htmlEntities = p.htmlEntities
	ctx.strictNesting = p.strictNesting
	ctx.token = &Token{}
	ctx.loc = nil
	ctx.fault = nil
	ctx.scope = 0
	ctx.depth = 0
	ctx.states.Reset()
	ctx.open.Reset()
	ctx.attrs.Clear()

	src, err := decodeSource(b)
	ctx.lexer.reset(src)
	if err != nil {
		return ctx.error(err)
	}
	return nil
}

func (ctx *parserCtx) release() {
	ctx.Context = nil
	ctx.handler = nil
	ctx.token = nil
	ctx.loc = nil
	ctx.fault = nil
	ctx.states.Reset()
	ctx.open.Reset()
	ctx.attrs.Clear()
	ctx.lexer.reset(nil)
}

// decodeSource converts UTF-8 input into runes, rejecting malformed
// sequences and characters that may not appear in a document.
func decodeSource(b []byte) ([]rune, error) {
	src := make([]rune, 0, utf8.RuneCount(b))
	line, column := 1, 1
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		var cause error
		switch {
		case r == utf8.RuneError && size <= 1:
			cause = ErrInvalidUTF8
		case !isChar(r):
			cause = ErrUnexpectedChar
		}
		if cause != nil {
			return src, &ParseError{
				Kind:    ErrorKindLexical,
				Err:     cause,
				Message: fmt.Sprintf("%s: byte 0x%02x at offset %d", cause, b[i], i),
				Line:    line,
				Column:  column,
			}
		}
		src = append(src, r)
		if r == '\n' {
			line++
			column = 1
		} else {
			column++
		}
		i += size
	}
	return src, nil
}

func (ctx *parserCtx) LineNumber() int {
	if ctx.loc != nil {
		return ctx.loc.BeginLine
	}
	return ctx.lexer.cur.line
}

func (ctx *parserCtx) ColumnNumber() int {
	if ctx.loc != nil {
		return ctx.loc.BeginColumn
	}
	return ctx.lexer.cur.column
}

func (ctx *parserCtx) PublicID() string {
	return ctx.publicID
}

func (ctx *parserCtx) SystemID() string {
	return ctx.systemID
}

// peek returns the next token without consuming it.
func (ctx *parserCtx) peek() (*Token, error) {
	if ctx.token.next == nil {
		t, err := ctx.lexer.nextToken()
		if err != nil {
			return nil, err
		}
		ctx.token.next = t
	}
	return ctx.token.next, nil
}

func (ctx *parserCtx) consume() (*Token, error) {
	t, err := ctx.peek()
	if err != nil {
		return nil, err
	}
	ctx.token = t
	return t, nil
}

// expect consumes the next token if its kind is in kinds, and fails
// with a syntax error listing kinds otherwise.
func (ctx *parserCtx) expect(kinds TokenSet) (*Token, error) {
	t, err := ctx.peek()
	if err != nil {
		return nil, err
	}
	if !kinds.Has(t.Kind) {
		return nil, ctx.syntaxError(t, kinds)
	}
	ctx.token = t
	return t, nil
}

func (ctx *parserCtx) syntaxError(found *Token, expected TokenSet) error {
	return &ParseError{
		Kind:     ErrorKindSyntax,
		Err:      ErrUnexpectedToken,
		Message:  syntaxMessage(found, expected),
		Line:     found.BeginLine,
		Column:   found.BeginColumn,
		Expected: expected,
		Found:    found,
	}
}

func (ctx *parserCtx) errorAt(kind ErrorKind, t *Token, err error, detail string) error {
	msg := err.Error()
	if detail != "" {
		msg += ": " + detail
	}
	return &ParseError{
		Kind:    kind,
		Err:     err,
		Message: msg,
		Line:    t.BeginLine,
		Column:  t.BeginColumn,
	}
}

func (ctx *parserCtx) internalError(err error) error {
	return &ParseError{
		Kind:    ErrorKindInternal,
		Err:     err,
		Message: err.Error(),
		Line:    ctx.lexer.cur.line,
		Column:  ctx.lexer.cur.column,
	}
}

// handlerError positions an error returned by the sink at the event
// that was being reported.
func (ctx *parserCtx) handlerError(err error) error {
	if _, ok := err.(*ParseError); ok {
		return err
	}
	return &ParseError{
		Kind:    ErrorKindHandler,
		Err:     err,
		Message: err.Error(),
		Line:    ctx.LineNumber(),
		Column:  ctx.ColumnNumber(),
	}
}

// error fills in the source identifiers and the offending line of a
// ParseError. Anything else, such as a cancelled context, is returned
// as is.
func (ctx *parserCtx) error(err error) error {
	perr, ok := err.(*ParseError)
	if !ok {
		return err
	}
	if perr.PublicID == "" {
		perr.PublicID = ctx.publicID
	}
	if perr.SystemID == "" {
		perr.SystemID = ctx.systemID
	}
	if perr.Context == "" {
		perr.Context = ctx.lexer.cur.lineText(perr.Line)
	}
	return perr
}

// start := doctype? block EOF
func (ctx *parserCtx) parseDocument() (err error) {
	if debug.Enabled {
		debug.Printf("START parseDocument")
		defer debug.Printf("END   parseDocument")
	}
	defer func() {
		if err != nil {
			err = ctx.error(err)
		}
	}()

	if err := ctx.handler.SetDocumentLocator(ctx, ctx); err != nil {
		return ctx.handlerError(err)
	}
	if err := ctx.handler.StartDocument(ctx); err != nil {
		return ctx.handlerError(err)
	}

	t, err := ctx.peek()
	if err != nil {
		return err
	}
	switch {
	case t.Kind == TokenDocTypeStart:
		if err := ctx.parseDocType(); err != nil {
			return err
		}
	case !blockFirst.Has(t.Kind):
		return ctx.syntaxError(t, documentFirst)
	}

	if err := ctx.parseBlock(documentFollow); err != nil {
		return err
	}
	eof, err := ctx.expect(documentFollow)
	if err != nil {
		return err
	}
	ctx.loc = eof

	if ctx.strictNesting {
		if name, ok := ctx.open.Peek(); ok {
			return ctx.errorAt(ErrorKindSyntax, eof, ErrUnclosedElement, "<"+name+">")
		}
	}

	if err := ctx.handler.EndDocument(ctx); err != nil {
		return ctx.handlerError(err)
	}

	if ctx.fault != nil {
		return ctx.internalError(ctx.fault)
	}
	if ctx.states.Len() != 0 {
		return ctx.internalError(ErrStateStackUnbalanced)
	}
	return nil
}

// block := item+
//
// The block ends at the first token that cannot start an item. That
// token must be in follow, and is left for the caller to consume.
func (ctx *parserCtx) parseBlock(follow TokenSet) error {
	var n int
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		t, err := ctx.peek()
		if err != nil {
			return err
		}

		if !blockFirst.Has(t.Kind) {
			if n > 0 && follow.Has(t.Kind) {
				return nil
			}
			expected := blockFirst
			if n > 0 {
				expected = expected.Union(follow)
			}
			return ctx.syntaxError(t, expected)
		}

		if err := ctx.parseBlockItem(t); err != nil {
			return err
		}
		n++
	}
}

func (ctx *parserCtx) parseBlockItem(t *Token) error {
	switch t.Kind {
	case TokenText:
		return ctx.parseCharacters()
	case TokenOpenTag, TokenCloseTag:
		return ctx.parseElement()
	case TokenAmp:
		return ctx.parseReference()
	case TokenCommentStart:
		return ctx.parseComment()
	case TokenCDATAStart:
		return ctx.parseCDATA()
	case TokenPIStart:
		return ctx.parseProcessingInstruction()
	case TokenExprStart:
		return ctx.parseExpression()
	case TokenIf:
		return ctx.parseIf()
	case TokenForEach:
		return ctx.parseForEach()
	case TokenVarStart:
		return ctx.parseVariable()
	}
	return ctx.syntaxError(t, blockFirst)
}

// enterTemplate counts one level of template nesting for the construct
// started by t. The returned func leaves it again.
func (ctx *parserCtx) enterTemplate(t *Token) (func(), error) {
	if ctx.depth >= MaxNestingDepth {
		return nil, ctx.errorAt(ErrorKindInternal, t, ErrNestingTooDeep,
			fmt.Sprintf("more than %d levels", MaxNestingDepth))
	}
	ctx.depth++
	return func() { ctx.depth-- }, nil
}

// parseBody parses the block of a template construct. With strict
// nesting the body has to close every element it opens.
func (ctx *parserCtx) parseBody(follow TokenSet) error {
	saved := ctx.scope
	ctx.scope = ctx.open.Len()
	defer func() { ctx.scope = saved }()

	if err := ctx.parseBlock(follow); err != nil {
		return err
	}

	if ctx.strictNesting && ctx.open.Len() > ctx.scope {
		name, _ := ctx.open.Peek()
		t, err := ctx.peek()
		if err != nil {
			return err
		}
		return ctx.errorAt(ErrorKindSyntax, t, ErrUnclosedElement,
			fmt.Sprintf("<%s> must be closed before %s", name, t.Kind.Image()))
	}
	return nil
}

func (ctx *parserCtx) parseCharacters() error {
	t, err := ctx.consume()
	if err != nil {
		return err
	}
	ctx.loc = t
	if err := ctx.handler.Characters(ctx, []byte(t.Image)); err != nil {
		return ctx.handlerError(err)
	}
	return nil
}

// element := CLOSE_TAG '>' | OPEN_TAG attribute* ('>' | '/>')
func (ctx *parserCtx) parseElement() error {
	t, err := ctx.consume()
	if err != nil {
		return err
	}
	if debug.Enabled {
		debug.Printf("START parseElement (%s)", t.Image)
		defer debug.Printf("END   parseElement (%s)", t.Image)
	}

	release, err := ctx.pushState(StateElement)
	if err != nil {
		return err
	}
	defer release()

	if t.Kind == TokenCloseTag {
		name := t.Image[2:]
		if _, err := ctx.expect(NewTokenSet(TokenTagEnd)); err != nil {
			return err
		}
		if ctx.strictNesting {
			if err := ctx.closeElement(t, name); err != nil {
				return err
			}
		}
		ctx.loc = t
		if err := ctx.handler.EndElement(ctx, name); err != nil {
			return ctx.handlerError(err)
		}
		return nil
	}

	name := t.Image[1:]
	ctx.attrs.Clear()
	for {
		next, err := ctx.peek()
		if err != nil {
			return err
		}

		switch next.Kind {
		case TokenName:
			attr, err := ctx.parseAttribute()
			if err != nil {
				return err
			}
			if err := ctx.attrs.Set(attr.Name, attr); err != nil {
				return ctx.errorAt(ErrorKindSyntax, next, ErrDuplicateAttribute,
					fmt.Sprintf("%q on <%s>", attr.Name, name))
			}
		case TokenTagEnd, TokenSelfClose:
			if _, err := ctx.consume(); err != nil {
				return err
			}
			attrs := ctx.attrs.Values(nil)
			ctx.loc = t
			if err := ctx.handler.StartElement(ctx, name, attrs); err != nil {
				return ctx.handlerError(err)
			}
			if next.Kind == TokenSelfClose {
				if err := ctx.handler.EndElement(ctx, name); err != nil {
					return ctx.handlerError(err)
				}
				return nil
			}
			if ctx.strictNesting {
				if err := ctx.open.Push(name); err != nil {
					return ctx.internalError(err)
				}
			}
			return nil
		default:
			return ctx.syntaxError(next, tagContent)
		}
	}
}

func (ctx *parserCtx) closeElement(t *Token, name string) error {
	if ctx.open.Len() <= ctx.scope {
		return ctx.errorAt(ErrorKindSyntax, t, ErrMismatchedCloseTag,
			fmt.Sprintf("</%s> has no open element to close", name))
	}
	if top, _ := ctx.open.Peek(); top != name {
		return ctx.errorAt(ErrorKindSyntax, t, ErrMismatchedCloseTag,
			fmt.Sprintf("</%s> does not close <%s>", name, top))
	}
	if _, err := ctx.open.Pop(); err != nil {
		return ctx.internalError(err)
	}
	return nil
}

// attribute := NAME '=' quote fragment* quote
func (ctx *parserCtx) parseAttribute() (sink.Attribute, error) {
	nameTok, err := ctx.consume()
	if err != nil {
		return sink.Attribute{}, err
	}
	attr := sink.Attribute{Name: nameTok.Image}

	release, err := ctx.pushState(StateAttribute)
	if err != nil {
		return attr, err
	}
	defer release()

	if _, err := ctx.expect(NewTokenSet(TokenEquals)); err != nil {
		return attr, err
	}
	quote, err := ctx.expect(NewTokenSet(TokenQuote))
	if err != nil {
		return attr, err
	}
	ctx.switchTo(StateAttributeData)

	buf := pool.ByteSlice().Get()
	defer func() { pool.ByteSlice().Put(buf) }()
	flush := func() {
		if len(buf) > 0 {
			attr.Fragments = append(attr.Fragments, sink.Fragment{Kind: sink.FragmentText, Text: string(buf)})
			buf = buf[:0]
		}
	}

	for {
		t, err := ctx.peek()
		if err != nil {
			return attr, err
		}

		switch t.Kind {
		case TokenAttrText:
			ctx.token = t
			buf = append(buf, t.Image...)
		case TokenQuote:
			ctx.token = t
			if t.Image == quote.Image {
				flush()
				return attr, nil
			}
			buf = append(buf, t.Image...)
		case TokenAmp:
			ctx.token = t
			r, err := ctx.parseEntityRef(t)
			if err != nil {
				return attr, err
			}
			flush()
			attr.Fragments = append(attr.Fragments, sink.Fragment{Kind: sink.FragmentEntity, Text: string(r)})
		case TokenLBrace:
			ctx.token = t
			code, err := ctx.parseExpressionBody()
			if err != nil {
				return attr, err
			}
			flush()
			attr.Fragments = append(attr.Fragments, sink.Fragment{Kind: sink.FragmentExpression, Text: code})
		default:
			return attr, ctx.syntaxError(t, attrValueFirst)
		}
	}
}

// entityref := '&' (DEC_REF | HEX_REF | ENTITY_NAME) ';'
//
// The '&' has already been consumed and is passed in as amp.
func (ctx *parserCtx) parseEntityRef(amp *Token) (rune, error) {
	release, err := ctx.pushState(StateEntityRef)
	if err != nil {
		return 0, err
	}
	defer release()

	t, err := ctx.expect(charRefFirst)
	if err != nil {
		return 0, err
	}
	if _, err := ctx.expect(NewTokenSet(TokenSemicolon)); err != nil {
		return 0, err
	}

	switch t.Kind {
	case TokenDecRef:
		return ctx.decodeCharRef(amp, t.Image[1:], 10)
	case TokenHexRef:
		return ctx.decodeCharRef(amp, t.Image[2:], 16)
	}

	r, ok := ctx.lookupEntity(t.Image)
	if !ok {
		return 0, ctx.errorAt(ErrorKindDecode, amp, ErrUndefinedEntity, "&"+t.Image+";")
	}
	return r, nil
}

func (ctx *parserCtx) parseReference() error {
	amp, err := ctx.consume()
	if err != nil {
		return err
	}
	r, err := ctx.parseEntityRef(amp)
	if err != nil {
		return err
	}
	ctx.loc = amp
	if err := ctx.handler.Characters(ctx, utf8.AppendRune(nil, r)); err != nil {
		return ctx.handlerError(err)
	}
	return nil
}

// parseExpressionBody reads the code of an embedded expression and the
// closing brace. The opening brace has already been consumed.
func (ctx *parserCtx) parseExpressionBody() (string, error) {
	release, err := ctx.pushState(StateExpression)
	if err != nil {
		return "", err
	}
	defer release()

	code, err := ctx.expect(NewTokenSet(TokenExprCode))
	if err != nil {
		return "", err
	}
	if _, err := ctx.expect(NewTokenSet(TokenRBrace)); err != nil {
		return "", err
	}
	return code.Image, nil
}

// parseCondition reads the '{' expr '}' that follows a directive.
func (ctx *parserCtx) parseCondition() (string, error) {
	release, err := ctx.pushState(StateDirective)
	if err != nil {
		return "", err
	}
	defer release()

	if _, err := ctx.expect(NewTokenSet(TokenLBrace)); err != nil {
		return "", err
	}
	return ctx.parseExpressionBody()
}

// expression := '#{' code '}'
func (ctx *parserCtx) parseExpression() error {
	start, err := ctx.consume()
	if err != nil {
		return err
	}
	code, err := ctx.parseExpressionBody()
	if err != nil {
		return err
	}
	ctx.loc = start
	if err := ctx.handler.Expression(ctx, code); err != nil {
		return ctx.handlerError(err)
	}
	return nil
}

// templateIf := '#if' cond block ('#elif' cond block)* ('#else' block)? '#end'
func (ctx *parserCtx) parseIf() error {
	start, err := ctx.consume()
	if err != nil {
		return err
	}
	if debug.Enabled {
		debug.Printf("START parseIf")
		defer debug.Printf("END   parseIf")
	}
	leave, err := ctx.enterTemplate(start)
	if err != nil {
		return err
	}
	defer leave()

	cond, err := ctx.parseCondition()
	if err != nil {
		return err
	}
	ctx.loc = start
	if err := ctx.handler.StartConditional(ctx); err != nil {
		return ctx.handlerError(err)
	}
	if err := ctx.handler.ConditionalBranch(ctx, cond); err != nil {
		return ctx.handlerError(err)
	}
	if err := ctx.parseBody(ifFollow); err != nil {
		return err
	}

	for {
		t, err := ctx.consume()
		if err != nil {
			return err
		}

		switch t.Kind {
		case TokenElif:
			cond, err := ctx.parseCondition()
			if err != nil {
				return err
			}
			ctx.loc = t
			if err := ctx.handler.ConditionalBranch(ctx, cond); err != nil {
				return ctx.handlerError(err)
			}
			if err := ctx.parseBody(ifFollow); err != nil {
				return err
			}
		case TokenElse:
			ctx.loc = t
			if err := ctx.handler.ConditionalBranch(ctx, ""); err != nil {
				return ctx.handlerError(err)
			}
			if err := ctx.parseBody(endFollow); err != nil {
				return err
			}
			end, err := ctx.expect(endFollow)
			if err != nil {
				return err
			}
			ctx.loc = end
			if err := ctx.handler.EndConditional(ctx); err != nil {
				return ctx.handlerError(err)
			}
			return nil
		case TokenEnd:
			ctx.loc = t
			if err := ctx.handler.EndConditional(ctx); err != nil {
				return ctx.handlerError(err)
			}
			return nil
		default:
			return ctx.internalError(fmt.Errorf("conditional body ended at %s", t))
		}
	}
}

// templateForEach := '#foreach' cond block '#end'
func (ctx *parserCtx) parseForEach() error {
	start, err := ctx.consume()
	if err != nil {
		return err
	}
	leave, err := ctx.enterTemplate(start)
	if err != nil {
		return err
	}
	defer leave()
	expr, err := ctx.parseCondition()
	if err != nil {
		return err
	}
	ctx.loc = start
	if err := ctx.handler.StartForEach(ctx, expr); err != nil {
		return ctx.handlerError(err)
	}
	if err := ctx.parseBody(endFollow); err != nil {
		return err
	}
	end, err := ctx.expect(endFollow)
	if err != nil {
		return err
	}
	ctx.loc = end
	if err := ctx.handler.EndForEach(ctx); err != nil {
		return ctx.handlerError(err)
	}
	return nil
}

// templateVariable := '#$' NAME '=' '{' expr '}'
func (ctx *parserCtx) parseVariable() error {
	start, err := ctx.consume()
	if err != nil {
		return err
	}

	release, err := ctx.pushState(StateElement)
	if err != nil {
		return err
	}
	defer release()

	name, err := ctx.expect(NewTokenSet(TokenName))
	if err != nil {
		return err
	}
	ctx.switchTo(StateDirective)
	if _, err := ctx.expect(NewTokenSet(TokenEquals)); err != nil {
		return err
	}
	if _, err := ctx.expect(NewTokenSet(TokenLBrace)); err != nil {
		return err
	}
	expr, err := ctx.parseExpressionBody()
	if err != nil {
		return err
	}

	TraceEvent(ctx, "template variable binding",
		slog.String("name", name.Image),
		slog.String("expression", expr),
		slog.Int("line", start.BeginLine),
		slog.Int("column", start.BeginColumn),
	)

	ctx.loc = start
	if err := ctx.handler.VariableBinding(ctx, name.Image, expr); err != nil {
		return ctx.handlerError(err)
	}
	return nil
}

// comment := '<!--' COMMENT_DATA? '-->'
func (ctx *parserCtx) parseComment() error {
	start, err := ctx.consume()
	if err != nil {
		return err
	}
	data, err := ctx.parseDelimited(StateComment, TokenCommentData, TokenCommentEnd)
	if err != nil {
		return err
	}
	ctx.loc = start
	if err := ctx.handler.Comment(ctx, []byte(data)); err != nil {
		return ctx.handlerError(err)
	}
	return nil
}

// cdata := '<![CDATA[' CDATA_DATA? ']]>'
func (ctx *parserCtx) parseCDATA() error {
	start, err := ctx.consume()
	if err != nil {
		return err
	}
	data, err := ctx.parseDelimited(StateCDATA, TokenCDATAData, TokenCDATAEnd)
	if err != nil {
		return err
	}
	ctx.loc = start
	if err := ctx.handler.CDATABlock(ctx, []byte(data)); err != nil {
		return ctx.handlerError(err)
	}
	return nil
}

func (ctx *parserCtx) parseDelimited(state LexicalState, data, end TokenKind) (string, error) {
	release, err := ctx.pushState(state)
	if err != nil {
		return "", err
	}
	defer release()

	var value string
	t, err := ctx.peek()
	if err != nil {
		return "", err
	}
	if t.Kind == data {
		ctx.token = t
		value = t.Image
	}
	if _, err := ctx.expect(NewTokenSet(end)); err != nil {
		return "", err
	}
	return value, nil
}

// procinstr := '<?' PI_TARGET (PI_SPACE PI_DATA?)? '?>'
func (ctx *parserCtx) parseProcessingInstruction() error {
	start, err := ctx.consume()
	if err != nil {
		return err
	}

	release, err := ctx.pushState(StateProcInstr)
	if err != nil {
		return err
	}
	defer release()

	target, err := ctx.expect(NewTokenSet(TokenPITarget))
	if err != nil {
		return err
	}

	var data string
	t, err := ctx.expect(piTargetNext)
	if err != nil {
		return err
	}
	if t.Kind == TokenPISpace {
		ctx.switchTo(StateProcInstrData)
		next, err := ctx.peek()
		if err != nil {
			return err
		}
		if next.Kind == TokenPIData {
			ctx.token = next
			data = next.Image
		}
		if _, err := ctx.expect(NewTokenSet(TokenPIEnd)); err != nil {
			return err
		}
	}

	ctx.loc = start
	if err := ctx.handler.ProcessingInstruction(ctx, target.Image, data); err != nil {
		return ctx.handlerError(err)
	}
	return nil
}

// doctype := '<!DOCTYPE' NAME (SYSTEM literal | PUBLIC literal literal)? '>'
func (ctx *parserCtx) parseDocType() error {
	start, err := ctx.consume()
	if err != nil {
		return err
	}

	release, err := ctx.pushState(StateDocType)
	if err != nil {
		return err
	}
	defer release()

	name, err := ctx.expect(NewTokenSet(TokenName))
	if err != nil {
		return err
	}

	var publicID, systemID string
	t, err := ctx.expect(externalIDNext)
	if err != nil {
		return err
	}
	switch t.Kind {
	case TokenSystem:
		if systemID, err = ctx.parseIDLiteral(StateDocTypeSystem); err != nil {
			return err
		}
	case TokenPublic:
		if publicID, err = ctx.parseIDLiteral(StateDocTypePublic); err != nil {
			return err
		}
		if systemID, err = ctx.parseIDLiteral(StateDocTypeSystem); err != nil {
			return err
		}
	}
	if t.Kind != TokenTagEnd {
		if _, err := ctx.expect(NewTokenSet(TokenTagEnd)); err != nil {
			return err
		}
	}

	ctx.loc = start
	if err := ctx.handler.DocType(ctx, name.Image, publicID, systemID); err != nil {
		return ctx.handlerError(err)
	}
	return nil
}

// parseIDLiteral reads a quoted identifier one character at a time in
// the given state, up to the quote that opened it.
func (ctx *parserCtx) parseIDLiteral(state LexicalState) (string, error) {
	quote, err := ctx.expect(NewTokenSet(TokenQuote))
	if err != nil {
		return "", err
	}

	release, err := ctx.pushState(state)
	if err != nil {
		return "", err
	}
	defer release()

	buf := pool.ByteSlice().Get()
	defer func() { pool.ByteSlice().Put(buf) }()
	for {
		t, err := ctx.expect(idLiteralNext)
		if err != nil {
			return "", err
		}
		if t.Kind == TokenQuote && t.Image == quote.Image {
			return string(buf), nil
		}
		buf = append(buf, t.Image...)
	}
}
