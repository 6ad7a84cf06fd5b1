package node

// Document is the root of a parsed template. A template may have
// several top level elements, so it does not single out a document
// element the way an XML document would.
type Document struct {
	treeNode
	publicID string
	systemID string
}

var _ Node = (*Document)(nil)

func NewDocument() *Document {
	doc := &Document{}
	doc.treeNode = treeNode{
		doc: doc,
	}
	return doc
}

// SetSource records the identifiers of the source the document was
// parsed from.
func (d *Document) SetSource(publicID, systemID string) {
	d.publicID = publicID
	d.systemID = systemID
}

func (d *Document) PublicID() string {
	return d.publicID
}

func (d *Document) SystemID() string {
	return d.systemID
}

func (d *Document) CreateElement(name string) *Element {
	e := NewElement(name)
	_ = e.SetOwnerDocument(d)
	return e
}

func (d *Document) CreateText(content []byte) *Text {
	t := NewText(content)
	_ = t.SetOwnerDocument(d)
	return t
}

func (d *Document) CreateCDATASection(content []byte) *CDATASection {
	c := NewCDATASection(content)
	_ = c.SetOwnerDocument(d)
	return c
}

func (d *Document) CreateComment(content []byte) *Comment {
	c := NewComment(content)
	_ = c.SetOwnerDocument(d)
	return c
}

func (d *Document) CreatePI(target, data string) *ProcessingInstruction {
	pi := NewProcessingInstruction(target, data)
	_ = pi.SetOwnerDocument(d)
	return pi
}

func (d *Document) CreateDocumentType(name, publicID, systemID string) *DocumentType {
	dt := NewDocumentType(name, publicID, systemID)
	_ = dt.SetOwnerDocument(d)
	return dt
}

func (d *Document) CreateExpression(code string) *Expression {
	e := NewExpression(code)
	_ = e.SetOwnerDocument(d)
	return e
}

func (d *Document) CreateVariableBinding(name, expr string) *VariableBinding {
	v := NewVariableBinding(name, expr)
	_ = v.SetOwnerDocument(d)
	return v
}

func (d *Document) CreateConditional() *Conditional {
	c := NewConditional()
	_ = c.SetOwnerDocument(d)
	return c
}

func (d *Document) CreateBranch(condition string) *Branch {
	b := NewBranch(condition)
	_ = b.SetOwnerDocument(d)
	return b
}

func (d *Document) CreateForEach(expr string) *ForEach {
	f := NewForEach(expr)
	_ = f.SetOwnerDocument(d)
	return f
}

// DocType returns the document type declaration, or nil if the
// template has none.
func (d *Document) DocType() *DocumentType {
	for n := d.firstChild; n != nil; n = n.NextSibling() {
		if dt, ok := n.(*DocumentType); ok {
			return dt
		}
	}
	return nil
}

// Elements appends the top level elements of the document to dst.
func (d *Document) Elements(dst []*Element) []*Element {
	for n := d.firstChild; n != nil; n = n.NextSibling() {
		if e, ok := n.(*Element); ok {
			dst = append(dst, e)
		}
	}
	return dst
}

func (d *Document) Type() NodeType {
	return DocumentNodeType
}

func (d *Document) LocalName() string {
	return "#document"
}

func (d *Document) AddChild(cur Node) error {
	return addChild(d, cur)
}

func (d *Document) AddContent(b []byte) error {
	return addContent(d, b)
}

func (d *Document) AddSibling(n Node) error {
	return ErrInvalidOperation
}
