package jxtmpl

import (
	"fmt"
	"strconv"

	"github.com/lestrrat-go/jxtmpl/internal/debug"
	"github.com/lestrrat-go/jxtmpl/internal/stack"
)

// LexicalState selects the set of rules the lexer applies.
type LexicalState int

const (
	StateDefault LexicalState = iota
	StateDocType
	StateDocTypeSystem
	StateDocTypePublic
	StateElement
	StateAttribute
	StateAttributeData
	StateEntityRef
	StateComment
	StateCDATA
	StateProcInstr
	StateProcInstrData
	StateExpression
	StateDirective

	lexicalStateMax
)

// MaxStateDepth is how many saved states the parser keeps before it
// gives up with an internal error.
const MaxStateDepth = 4096

// MaxNestingDepth is how deeply #if and #foreach bodies may nest.
// Going past it is an internal error at the directive that opened one
// level too many.
const MaxNestingDepth = 1024

var lexicalStateNames = [...]string{
	StateDefault:       "DEFAULT",
	StateDocType:       "DOCTYPE",
	StateDocTypeSystem: "DOCTYPE_SYSTEM",
	StateDocTypePublic: "DOCTYPE_PUBLIC",
	StateElement:       "ELEMENT",
	StateAttribute:     "ATTRIBUTE",
	StateAttributeData: "ATTRIBUTE_DATA",
	StateEntityRef:     "ENTITYREF",
	StateComment:       "COMMENT",
	StateCDATA:         "CDATA",
	StateProcInstr:     "PROCINSTR",
	StateProcInstrData: "PROCINSTR_DATA",
	StateExpression:    "EXPRESSION",
	StateDirective:     "DIRECTIVE",
}

func (s LexicalState) String() string {
	if s < 0 || s >= lexicalStateMax {
		return "LexicalState(" + strconv.Itoa(int(s)) + ")"
	}
	return lexicalStateNames[s]
}

func newStateStack() *stack.Stack[LexicalState] {
	return stack.New[LexicalState](MaxStateDepth)
}

// switchTo makes the lexer scan with the rules of s from now on. A
// lookahead token that was scanned under the previous rules but not
// consumed yet is dropped, and the lexer goes back to where it started.
func (ctx *parserCtx) switchTo(s LexicalState) {
	if next := ctx.token.next; next != nil {
		if debug.Enabled {
			debug.Printf("switchTo %s: rewinding over %s", s, next)
		}
		ctx.lexer.rewind(next)
		ctx.token.next = nil
	}
	ctx.lexer.state = s
}

// pushState saves the current lexical state and switches to s. The
// returned function restores the saved state; callers defer it so the
// stack unwinds on every return path:
//
//	release, err := ctx.pushState(StateElement)
//	if err != nil {
//		return err
//	}
//	defer release()
func (ctx *parserCtx) pushState(s LexicalState) (func(), error) {
	if err := ctx.states.Push(ctx.lexer.state); err != nil {
		return nil, ctx.internalError(fmt.Errorf("%w: %d states saved", ErrStateStackOverflow, ctx.states.Limit()))
	}
	if debug.Enabled {
		debug.Printf("pushState %s -> %s (depth %d)", ctx.lexer.state, s, ctx.states.Len())
	}
	ctx.switchTo(s)

	var released bool
	return func() {
		if released {
			return
		}
		released = true
		ctx.popState()
	}, nil
}

func (ctx *parserCtx) popState() {
	prev, err := ctx.states.Pop()
	if err != nil {
		// only reachable through a bug in the productions; reported
		// once the parse returns
		if ctx.fault == nil {
			ctx.fault = ErrStateStackUnderflow
		}
		return
	}
	if debug.Enabled {
		debug.Printf("popState %s -> %s (depth %d)", ctx.lexer.state, prev, ctx.states.Len())
	}
	ctx.switchTo(prev)
}
