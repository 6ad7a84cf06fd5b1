// Package event materializes the streaming handler calls into values
// that can be compared, stored and printed. Conditionals and loops
// carry their bodies, so a recorded stream is a tree.
package event

import (
	"strconv"
	"strings"

	"github.com/lestrrat-go/jxtmpl/sink"
)

type Event interface {
	String() string
}

type DocType struct {
	Name     string
	PublicID string
	SystemID string
}

type ElementStart struct {
	Name       string
	Attributes []sink.Attribute
}

type ElementEnd struct {
	Name string
}

type Characters struct {
	Text string
}

type Comment struct {
	Text string
}

type CData struct {
	Text string
}

type ProcessingInstruction struct {
	Target string
	Data   string
}

type Expression struct {
	Code string
}

type VariableBinding struct {
	Name       string
	Expression string
}

// Branch is one arm of a Conditional. The else arm has an empty
// Condition.
type Branch struct {
	Condition string
	Body      []Event
}

type Conditional struct {
	Branches []Branch
}

type ForEach struct {
	Expression string
	Body       []Event
}

func (e DocType) String() string {
	return "doctype " + strconv.Quote(e.Name) + " public=" + strconv.Quote(e.PublicID) + " system=" + strconv.Quote(e.SystemID)
}

func (e ElementStart) String() string {
	var sb strings.Builder
	sb.WriteString("start ")
	sb.WriteString(strconv.Quote(e.Name))
	for _, attr := range e.Attributes {
		sb.WriteByte(' ')
		sb.WriteString(attr.Name)
		sb.WriteString("=[")
		for i, f := range attr.Fragments {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(f.String())
		}
		sb.WriteByte(']')
	}
	return sb.String()
}

func (e ElementEnd) String() string {
	return "end " + strconv.Quote(e.Name)
}

func (e Characters) String() string {
	return "chars " + strconv.Quote(e.Text)
}

func (e Comment) String() string {
	return "comment " + strconv.Quote(e.Text)
}

func (e CData) String() string {
	return "cdata " + strconv.Quote(e.Text)
}

func (e ProcessingInstruction) String() string {
	return "pi " + strconv.Quote(e.Target) + " " + strconv.Quote(e.Data)
}

func (e Expression) String() string {
	return "expr " + strconv.Quote(e.Code)
}

func (e VariableBinding) String() string {
	return "var " + strconv.Quote(e.Name) + " " + strconv.Quote(e.Expression)
}

func (b Branch) String() string {
	if b.Condition == "" {
		return "else"
	}
	return "branch " + strconv.Quote(b.Condition)
}

func (e Conditional) String() string {
	return "conditional"
}

func (e ForEach) String() string {
	return "foreach " + strconv.Quote(e.Expression)
}
