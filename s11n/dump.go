// Package s11n writes node trees back out as template source.
package s11n

import (
	"io"

	"github.com/lestrrat-go/jxtmpl/node"
	"github.com/lestrrat-go/jxtmpl/sink"
)

// Dumper serializes a document so that parsing the output again yields
// an equivalent tree.
type Dumper struct{}

func (d *Dumper) DumpDoc(out io.Writer, doc *node.Document) error {
	for e := doc.FirstChild(); e != nil; e = e.NextSibling() {
		if err := d.DumpNode(out, e); err != nil {
			return err
		}
	}
	return nil
}

func (d *Dumper) dumpChildren(out io.Writer, n node.Node) error {
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		if err := d.DumpNode(out, child); err != nil {
			return err
		}
	}
	return nil
}

func (d *Dumper) dumpDocType(out io.Writer, dt *node.DocumentType) error {
	_, _ = io.WriteString(out, "<!DOCTYPE ")
	_, _ = io.WriteString(out, dt.Name())
	switch {
	case dt.PublicID() != "":
		_, _ = io.WriteString(out, " PUBLIC ")
		if err := DumpQuotedString(out, dt.PublicID()); err != nil {
			return err
		}
		_, _ = io.WriteString(out, " ")
		if err := DumpQuotedString(out, dt.SystemID()); err != nil {
			return err
		}
	case dt.SystemID() != "":
		_, _ = io.WriteString(out, " SYSTEM ")
		if err := DumpQuotedString(out, dt.SystemID()); err != nil {
			return err
		}
	}
	_, _ = io.WriteString(out, ">")
	return nil
}

func (d *Dumper) dumpAttribute(out io.Writer, attr *node.Attribute) error {
	_, _ = io.WriteString(out, " ")
	_, _ = io.WriteString(out, attr.Name())
	_, _ = io.WriteString(out, `="`)
	for _, f := range attr.Fragments() {
		switch f.Kind {
		case sink.FragmentExpression:
			_, _ = io.WriteString(out, "{")
			_, _ = io.WriteString(out, f.Text)
			_, _ = io.WriteString(out, "}")
		default:
			if err := EscapeAttrValue(out, []byte(f.Text)); err != nil {
				return err
			}
		}
	}
	_, _ = io.WriteString(out, `"`)
	return nil
}

func (d *Dumper) dumpElement(out io.Writer, e *node.Element) error {
	name := e.Name()
	_, _ = io.WriteString(out, "<")
	_, _ = io.WriteString(out, name)
	for _, attr := range e.Attributes(nil) {
		if err := d.dumpAttribute(out, attr); err != nil {
			return err
		}
	}

	if e.FirstChild() == nil {
		_, _ = io.WriteString(out, "/>")
		return nil
	}
	_, _ = io.WriteString(out, ">")

	if err := d.dumpChildren(out, e); err != nil {
		return err
	}

	_, _ = io.WriteString(out, "</")
	_, _ = io.WriteString(out, name)
	_, _ = io.WriteString(out, ">")
	return nil
}

func (d *Dumper) dumpConditional(out io.Writer, c *node.Conditional) error {
	for i, b := range c.Branches(nil) {
		switch {
		case i == 0:
			_, _ = io.WriteString(out, "#if{")
		case b.IsElse():
			// #else swallows the blanks after it
			_, _ = io.WriteString(out, "#else ")
		default:
			_, _ = io.WriteString(out, "#elif{")
		}
		if i == 0 || !b.IsElse() {
			_, _ = io.WriteString(out, b.Condition())
			_, _ = io.WriteString(out, "}")
		}
		if err := d.dumpChildren(out, b); err != nil {
			return err
		}
	}
	_, _ = io.WriteString(out, "#end")
	return nil
}

func (d *Dumper) DumpNode(out io.Writer, n node.Node) error {
	switch n := n.(type) {
	case *node.Document:
		return d.DumpDoc(out, n)
	case *node.DocumentType:
		return d.dumpDocType(out, n)
	case *node.Element:
		return d.dumpElement(out, n)
	case *node.Text:
		c, err := n.Content(nil)
		if err != nil {
			return err
		}
		return EscapeText(out, c, false)
	case *node.CDATASection:
		c, err := n.Content(nil)
		if err != nil {
			return err
		}
		_, _ = io.WriteString(out, "<![CDATA[")
		_, _ = out.Write(c)
		_, _ = io.WriteString(out, "]]>")
		return nil
	case *node.Comment:
		c, err := n.Content(nil)
		if err != nil {
			return err
		}
		_, _ = io.WriteString(out, "<!--")
		_, _ = out.Write(c)
		_, _ = io.WriteString(out, "-->")
		return nil
	case *node.ProcessingInstruction:
		_, _ = io.WriteString(out, "<?")
		_, _ = io.WriteString(out, n.Target())
		if data := n.Data(); data != "" {
			_, _ = io.WriteString(out, " ")
			_, _ = io.WriteString(out, data)
		}
		_, _ = io.WriteString(out, "?>")
		return nil
	case *node.Expression:
		_, _ = io.WriteString(out, "#{")
		_, _ = io.WriteString(out, n.Code())
		_, _ = io.WriteString(out, "}")
		return nil
	case *node.VariableBinding:
		_, _ = io.WriteString(out, "#$")
		_, _ = io.WriteString(out, n.Name())
		_, _ = io.WriteString(out, "={")
		_, _ = io.WriteString(out, n.Expr())
		_, _ = io.WriteString(out, "}")
		return nil
	case *node.Conditional:
		return d.dumpConditional(out, n)
	case *node.ForEach:
		_, _ = io.WriteString(out, "#foreach{")
		_, _ = io.WriteString(out, n.Expr())
		_, _ = io.WriteString(out, "}")
		if err := d.dumpChildren(out, n); err != nil {
			return err
		}
		_, _ = io.WriteString(out, "#end")
		return nil
	}
	return node.ErrInvalidOperation
}
