package jxtmpl

import (
	"context"
	"fmt"

	"github.com/lestrrat-go/jxtmpl/internal/debug"
	"github.com/lestrrat-go/jxtmpl/internal/stack"
	"github.com/lestrrat-go/jxtmpl/node"
	"github.com/lestrrat-go/jxtmpl/sink"
	"github.com/pkg/errors"
)

// TreeBuilder is the handler used when none is given. It builds a
// node.Document out of the events. Unlike the parser, it needs every
// element to be closed inside the template construct that opened it.
type TreeBuilder struct {
	doc   *node.Document
	loc   sink.DocumentLocator
	nodes *stack.Stack[node.Node]
	done  bool
}

var _ sink.Handler = (*TreeBuilder)(nil)

func NewTreeBuilder() *TreeBuilder {
	return &TreeBuilder{
		nodes: stack.New[node.Node](0),
	}
}

// Document returns the document built by the last parse, or nil if it
// did not complete.
func (t *TreeBuilder) Document() *node.Document {
	if !t.done {
		return nil
	}
	return t.doc
}

func (t *TreeBuilder) parent() node.Node {
	if n, ok := t.nodes.Peek(); ok {
		return n
	}
	return t.doc
}

func (t *TreeBuilder) where() string {
	if t.loc == nil {
		return ""
	}
	return fmt.Sprintf(" (line %d, column %d)", t.loc.LineNumber(), t.loc.ColumnNumber())
}

func (t *TreeBuilder) appendChild(n node.Node) error {
	if t.doc == nil {
		return errors.New("event received outside of a document")
	}
	return t.parent().AddChild(n)
}

func (t *TreeBuilder) push(n node.Node) error {
	if err := t.appendChild(n); err != nil {
		return err
	}
	return t.nodes.Push(n)
}

func (t *TreeBuilder) SetDocumentLocator(_ context.Context, loc sink.DocumentLocator) error {
	t.loc = loc
	return nil
}

func (t *TreeBuilder) StartDocument(context.Context) error {
	if debug.Enabled {
		debug.Printf("tree.StartDocument")
	}
	t.doc = node.NewDocument()
	t.done = false
	t.nodes.Reset()
	if t.loc != nil {
		t.doc.SetSource(t.loc.PublicID(), t.loc.SystemID())
	}
	return nil
}

func (t *TreeBuilder) EndDocument(context.Context) error {
	if debug.Enabled {
		debug.Printf("tree.EndDocument")
	}
	if n, ok := t.nodes.Peek(); ok {
		return errors.Errorf("%s %q is not closed at the end of the document", n.Type(), n.LocalName())
	}
	t.done = true
	return nil
}

func (t *TreeBuilder) DocType(_ context.Context, name, publicID, systemID string) error {
	return t.appendChild(t.doc.CreateDocumentType(name, publicID, systemID))
}

func (t *TreeBuilder) StartElement(_ context.Context, name string, attrs []sink.Attribute) error {
	if debug.Enabled {
		debug.Printf("tree.StartElement: %s", name)
	}
	if t.doc == nil {
		return errors.New("element placed outside of a document")
	}

	e := t.doc.CreateElement(name)
	for _, attr := range attrs {
		if err := e.SetAttribute(attr.Name, attr.Fragments...); err != nil {
			return errors.Wrapf(err, "attribute %q on <%s>", attr.Name, name)
		}
	}
	return t.push(e)
}

func (t *TreeBuilder) EndElement(_ context.Context, name string) error {
	if debug.Enabled {
		debug.Printf("tree.EndElement: %s", name)
	}
	e, ok := t.parent().(*node.Element)
	if !ok || e.Name() != name {
		return errors.Errorf("end tag </%s> does not close the current %s%s", name, t.parent().Type(), t.where())
	}
	_, err := t.nodes.Pop()
	return err
}

func (t *TreeBuilder) Characters(_ context.Context, ch []byte) error {
	if t.doc == nil {
		return errors.New("text content placed in wrong location")
	}
	return t.parent().AddContent(ch)
}

func (t *TreeBuilder) Comment(_ context.Context, value []byte) error {
	if t.doc == nil {
		return errors.New("comment placed in wrong location")
	}
	return t.appendChild(t.doc.CreateComment(value))
}

func (t *TreeBuilder) CDATABlock(_ context.Context, value []byte) error {
	if t.doc == nil {
		return errors.New("CDATA section placed in wrong location")
	}
	return t.appendChild(t.doc.CreateCDATASection(value))
}

func (t *TreeBuilder) ProcessingInstruction(_ context.Context, target, data string) error {
	if t.doc == nil {
		return errors.New("processing instruction placed in wrong location")
	}
	return t.appendChild(t.doc.CreatePI(target, data))
}

func (t *TreeBuilder) Expression(_ context.Context, code string) error {
	if t.doc == nil {
		return errors.New("expression placed in wrong location")
	}
	return t.appendChild(t.doc.CreateExpression(code))
}

func (t *TreeBuilder) VariableBinding(_ context.Context, name, expr string) error {
	if t.doc == nil {
		return errors.New("variable binding placed in wrong location")
	}
	return t.appendChild(t.doc.CreateVariableBinding(name, expr))
}

func (t *TreeBuilder) StartConditional(context.Context) error {
	if t.doc == nil {
		return errors.New("conditional placed in wrong location")
	}
	return t.push(t.doc.CreateConditional())
}

// closeBranch pops the branch being built, if any. The conditional it
// belongs to is left on top.
func (t *TreeBuilder) closeBranch() error {
	if _, ok := t.parent().(*node.Branch); ok {
		if _, err := t.nodes.Pop(); err != nil {
			return err
		}
	}
	if _, ok := t.parent().(*node.Conditional); !ok {
		return errors.Errorf("%s %q is not closed before the end of the branch%s", t.parent().Type(), t.parent().LocalName(), t.where())
	}
	return nil
}

func (t *TreeBuilder) ConditionalBranch(_ context.Context, cond string) error {
	if err := t.closeBranch(); err != nil {
		return err
	}
	return t.push(t.doc.CreateBranch(cond))
}

func (t *TreeBuilder) EndConditional(context.Context) error {
	if err := t.closeBranch(); err != nil {
		return err
	}
	_, err := t.nodes.Pop()
	return err
}

func (t *TreeBuilder) StartForEach(_ context.Context, expr string) error {
	if t.doc == nil {
		return errors.New("loop placed in wrong location")
	}
	return t.push(t.doc.CreateForEach(expr))
}

func (t *TreeBuilder) EndForEach(context.Context) error {
	if _, ok := t.parent().(*node.ForEach); !ok {
		return errors.Errorf("%s %q is not closed before the end of the loop%s", t.parent().Type(), t.parent().LocalName(), t.where())
	}
	_, err := t.nodes.Pop()
	return err
}
