package node

import (
	"errors"

	"github.com/lestrrat-go/jxtmpl/internal/orderedmap"
	"github.com/lestrrat-go/jxtmpl/sink"
)

var ErrDuplicateAttribute = errors.New("duplicate attribute")

type Element struct {
	treeNode
	name  string
	attrs *orderedmap.Map[string, *Attribute]
}

var _ Node = (*Element)(nil)

// NewElement creates an element that belongs to no document.
// Document.CreateElement also sets the owner.
func NewElement(name string) *Element {
	return &Element{
		name:  name,
		attrs: orderedmap.New[string, *Attribute](),
	}
}

func (Element) Type() NodeType {
	return ElementNodeType
}

func (e *Element) LocalName() string {
	return e.name
}

func (e *Element) Name() string {
	return e.name
}

func (e *Element) AddChild(child Node) error {
	return addChild(e, child)
}

func (e *Element) AddContent(b []byte) error {
	return addContent(e, b)
}

func (e *Element) AddSibling(sibling Node) error {
	return addSibling(e, sibling)
}

// SetAttribute adds an attribute made of the given fragments. If an
// attribute with the same name already exists, ErrDuplicateAttribute
// is returned.
func (e *Element) SetAttribute(name string, fragments ...sink.Fragment) error {
	attr := &Attribute{
		name:      name,
		fragments: fragments,
		owner:     e,
	}
	if err := e.attrs.Set(name, attr); err != nil {
		if errors.Is(err, orderedmap.ErrDuplicateEntry) {
			return ErrDuplicateAttribute
		}
		return err
	}
	return nil
}

func (e *Element) Attribute(name string) (*Attribute, bool) {
	return e.attrs.Get(name)
}

// Attributes populates the given slice with the attributes
// of the element, in the order they were written. If the slice is
// nil, it will create a new slice and return it.
func (e *Element) Attributes(dst []*Attribute) []*Attribute {
	if dst == nil {
		dst = make([]*Attribute, 0, e.attrs.Len())
	} else {
		dst = dst[:0]
	}
	return e.attrs.Values(dst)
}
