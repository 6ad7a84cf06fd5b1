// Package exprcheck verifies that the code embedded in a template
// compiles as an expr-lang expression, before anything evaluates it.
package exprcheck

import (
	"context"
	"fmt"
	"regexp"

	"github.com/expr-lang/expr"
	"github.com/lestrrat-go/jxtmpl/sink"
)

// Error reports an expression that failed to compile.
type Error struct {
	Code string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid expression %q: %s", e.Code, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Checker is a sink.Handler that compiles every expression it sees and
// forwards the events to the handler it wraps. The first expression
// that does not compile aborts the parse.
type Checker struct {
	sink.Handler
	options []expr.Option
}

var _ sink.Handler = (*Checker)(nil)

// New wraps next. A nil next discards the events. The options are
// passed to expr.Compile, for example to declare an environment.
func New(next sink.Handler, options ...expr.Option) *Checker {
	if next == nil {
		next = &sink.Funcs{}
	}
	return &Checker{
		Handler: next,
		options: options,
	}
}

func (c *Checker) check(code string) error {
	if _, err := expr.Compile(code, c.options...); err != nil {
		return &Error{Code: code, Err: err}
	}
	return nil
}

// loopHeader matches "item in items" and "item, i in items".
var loopHeader = regexp.MustCompile(`^\s*([A-Za-z_]\w*)(?:\s*,\s*([A-Za-z_]\w*))?\s+in\s+(.+)$`)

// LoopCollection returns the part of a #foreach header that is
// evaluated. Headers that do not name loop variables are evaluated
// as a whole.
func LoopCollection(header string) string {
	if m := loopHeader.FindStringSubmatch(header); m != nil {
		return m[3]
	}
	return header
}

func (c *Checker) StartElement(ctx context.Context, name string, attrs []sink.Attribute) error {
	for _, attr := range attrs {
		for _, f := range attr.Fragments {
			if f.Kind != sink.FragmentExpression {
				continue
			}
			if err := c.check(f.Text); err != nil {
				return err
			}
		}
	}
	return c.Handler.StartElement(ctx, name, attrs)
}

func (c *Checker) Expression(ctx context.Context, code string) error {
	if err := c.check(code); err != nil {
		return err
	}
	return c.Handler.Expression(ctx, code)
}

func (c *Checker) VariableBinding(ctx context.Context, name, code string) error {
	if err := c.check(code); err != nil {
		return err
	}
	return c.Handler.VariableBinding(ctx, name, code)
}

func (c *Checker) ConditionalBranch(ctx context.Context, cond string) error {
	if cond != "" {
		if err := c.check(cond); err != nil {
			return err
		}
	}
	return c.Handler.ConditionalBranch(ctx, cond)
}

func (c *Checker) StartForEach(ctx context.Context, header string) error {
	if err := c.check(LoopCollection(header)); err != nil {
		return err
	}
	return c.Handler.StartForEach(ctx, header)
}
