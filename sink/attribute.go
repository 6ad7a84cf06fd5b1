package sink

import (
	"strconv"
	"strings"
)

// FragmentKind tells what a piece of an attribute value is.
type FragmentKind int

const (
	FragmentText FragmentKind = iota + 1
	// FragmentEntity holds the single character a reference decoded to.
	FragmentEntity
	// FragmentExpression holds raw embedded code, without braces.
	FragmentExpression
)

func (k FragmentKind) String() string {
	switch k {
	case FragmentText:
		return "text"
	case FragmentEntity:
		return "entity"
	case FragmentExpression:
		return "expr"
	}
	return "FragmentKind(" + strconv.Itoa(int(k)) + ")"
}

type Fragment struct {
	Kind FragmentKind
	Text string
}

func (f Fragment) String() string {
	return f.Kind.String() + ":" + strconv.Quote(f.Text)
}

// Attribute is a parsed attribute. Its value is kept as the ordered
// list of fragments it was written as.
type Attribute struct {
	Name      string
	Fragments []Fragment
}

// Value flattens the fragments. Expressions are rendered back in
// braces.
func (a Attribute) Value() string {
	var sb strings.Builder
	for _, f := range a.Fragments {
		if f.Kind == FragmentExpression {
			sb.WriteByte('{')
			sb.WriteString(f.Text)
			sb.WriteByte('}')
			continue
		}
		sb.WriteString(f.Text)
	}
	return sb.String()
}

// IsLiteral reports whether the value contains no expressions.
func (a Attribute) IsLiteral() bool {
	for _, f := range a.Fragments {
		if f.Kind == FragmentExpression {
			return false
		}
	}
	return true
}
