package node

import (
	"strings"

	"github.com/lestrrat-go/jxtmpl/sink"
)

// Attribute is an attribute of an Element. The value is kept as the
// fragments it was written as, so embedded expressions survive.
type Attribute struct {
	name      string
	fragments []sink.Fragment
	owner     *Element
}

func (a *Attribute) Name() string {
	return a.name
}

// Owner returns the element the attribute belongs to.
func (a *Attribute) Owner() *Element {
	return a.owner
}

func (a *Attribute) Fragments() []sink.Fragment {
	return a.fragments
}

// Value renders the attribute value, with expressions in braces.
func (a *Attribute) Value() string {
	var sb strings.Builder
	for _, f := range a.fragments {
		if f.Kind == sink.FragmentExpression {
			sb.WriteByte('{')
			sb.WriteString(f.Text)
			sb.WriteByte('}')
			continue
		}
		sb.WriteString(f.Text)
	}
	return sb.String()
}

// IsLiteral reports whether the value can be known without evaluating
// anything.
func (a *Attribute) IsLiteral() bool {
	for _, f := range a.fragments {
		if f.Kind == sink.FragmentExpression {
			return false
		}
	}
	return true
}
